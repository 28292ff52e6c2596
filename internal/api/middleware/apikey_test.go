package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newAPIKeyRouter(configuredKey string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/protected", RequireAPIKey(configuredKey), func(ctx *gin.Context) {
		ctx.Status(http.StatusOK)
	})

	return router
}

func TestRequireAPIKey(t *testing.T) {
	tests := []struct {
		name           string
		configuredKey  string
		presentedKey   string
		expectedStatus int
	}{
		{
			name:           "matching key passes",
			configuredKey:  "super-secret",
			presentedKey:   "super-secret",
			expectedStatus: http.StatusOK,
		},
		{
			name:           "wrong key is rejected",
			configuredKey:  "super-secret",
			presentedKey:   "not-the-key",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "missing key is rejected",
			configuredKey:  "super-secret",
			presentedKey:   "",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "empty configured key disables the surface",
			configuredKey:  "",
			presentedKey:   "",
			expectedStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newAPIKeyRouter(tt.configuredKey)

			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tt.presentedKey != "" {
				req.Header.Set("X-API-Key", tt.presentedKey)
			}
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
		})
	}
}
