package v1

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
)

var errNotAuthenticated = errors.New("request is not authenticated")

// Context keys set by the JWT middleware.
const (
	contextKeyUserID  = "userID"
	contextKeyIsAdmin = "isAdmin"
)

func getAuthUserID(ctx *gin.Context) (uint, error) {
	value, exists := ctx.Get(contextKeyUserID)
	if !exists {
		return 0, errNotAuthenticated
	}

	userID, ok := value.(uint)
	if !ok {
		return 0, errNotAuthenticated
	}

	return userID, nil
}

func isAdmin(ctx *gin.Context) bool {
	value, exists := ctx.Get(contextKeyIsAdmin)
	if !exists {
		return false
	}

	admin, ok := value.(bool)

	return ok && admin
}

func parseIDParam(ctx *gin.Context, name string) (uint, error) {
	raw := ctx.Param(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, errors.New(name + " must be a positive integer")
	}

	return uint(id), nil
}
