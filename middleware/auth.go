package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"chess-study/utils"
)

const (
	// ContextUserIDKey is the key used to store the authenticated user ID in Gin context.
	ContextUserIDKey = "user_id"
	// ContextUsernameKey stores the username inside Gin context.
	ContextUsernameKey = "username"
)

// SessionRequired gates a route behind an active session. The session cookie
// carries a signed token; a missing, invalid, or revoked one redirects the
// browser to the login page with no partial data.
func SessionRequired() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		token, err := ctx.Cookie(utils.SessionCookieName)
		if err != nil || token == "" {
			redirectToLogin(ctx)
			return
		}

		claims, err := utils.ParseSessionToken(token)
		if err != nil {
			redirectToLogin(ctx)
			return
		}

		if utils.IsSessionRevoked(claims.ID) {
			redirectToLogin(ctx)
			return
		}

		ctx.Set(ContextUserIDKey, claims.UserID)
		ctx.Set(ContextUsernameKey, claims.Username)
		ctx.Next()
	}
}

func redirectToLogin(ctx *gin.Context) {
	ctx.Redirect(http.StatusFound, "/login")
	ctx.Abort()
}

// UserID extracts the authenticated user ID set by SessionRequired.
func UserID(ctx *gin.Context) (uint, bool) {
	v, ok := ctx.Get(ContextUserIDKey)
	if !ok {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok
}
