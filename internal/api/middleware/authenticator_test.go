package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gea-verde/gea-api/internal/pkg/jwthelper"
)

const testUserAgent = "gea-test-client/1.0"

func newAuthRouter(signingKey string) (*gin.Engine, *uint, *bool) {
	gin.SetMode(gin.TestMode)

	var gotUserID uint
	var gotIsAdmin bool

	router := gin.New()
	router.GET("/me", NewAuthenticator(signingKey).VerifyJWT(), func(ctx *gin.Context) {
		gotUserID = ctx.GetUint(ContextKeyUserID)
		gotIsAdmin = ctx.GetBool(ContextKeyIsAdmin)
		ctx.Status(http.StatusOK)
	})

	return router, &gotUserID, &gotIsAdmin
}

func TestVerifyJWTSetsIdentity(t *testing.T) {
	router, gotUserID, gotIsAdmin := newAuthRouter("signing-key")

	token, err := jwthelper.GenerateToken([]byte("signing-key"), 42, true, testUserAgent)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("User-Agent", testUserAgent)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, uint(42), *gotUserID)
	assert.True(t, *gotIsAdmin)
}

func TestVerifyJWTRejectsMissingHeader(t *testing.T) {
	router, _, _ := newAuthRouter("signing-key")

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestVerifyJWTRejectsForeignSignature(t *testing.T) {
	router, _, _ := newAuthRouter("signing-key")

	token, err := jwthelper.GenerateToken([]byte("some-other-key"), 42, false, testUserAgent)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("User-Agent", testUserAgent)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestVerifyJWTRejectsUserAgentMismatch(t *testing.T) {
	router, _, _ := newAuthRouter("signing-key")

	token, err := jwthelper.GenerateToken([]byte("signing-key"), 42, false, testUserAgent)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("User-Agent", "curl/8.0")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
