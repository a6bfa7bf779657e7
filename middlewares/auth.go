package middlewares

import (
	"net/http"
	"strconv"
	"strings"

	"articlelike/utils"

	"github.com/gin-gonic/gin"
)

const userIDKey = "userID"

// Auth resolves the calling user. With a secret configured only bearer JWTs
// are accepted; without one the X-User-Id header is trusted.
func Auth(secret string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		userID, ok := resolveUser(ctx, secret)
		if !ok {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		ctx.Set(userIDKey, userID)
		ctx.Next()
	}
}

func resolveUser(ctx *gin.Context, secret string) (uint, bool) {
	if secret != "" {
		header := ctx.GetHeader("Authorization")
		token, found := strings.CutPrefix(header, "Bearer ")
		if !found || token == "" {
			return 0, false
		}
		userID, err := utils.ParseToken(token, secret)
		return userID, err == nil
	}

	raw := ctx.GetHeader("X-User-Id")
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || v == 0 {
		return 0, false
	}
	return uint(v), true
}

// UserID returns the user resolved by Auth.
func UserID(ctx *gin.Context) (uint, bool) {
	v, ok := ctx.Get(userIDKey)
	if !ok {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok
}
