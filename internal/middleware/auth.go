package middleware

import (
	"net/http"

	"hybrid-auth-service/internal/session"

	"github.com/gin-gonic/gin"
)

const userContextKey = "auth.user"

// CurrentUser returns the authenticated user projection attached by
// RequireAuth.
func CurrentUser(c *gin.Context) (any, bool) {
	user, ok := c.Get(userContextKey)
	return user, ok
}

// RequireAuth guards a route group: the request must carry a valid
// session cookie, the session must be live, and it must hold an
// identified user under sessionKey. Auth decisions stay session-based
// and provider-agnostic.
func RequireAuth(store session.Store, sessionKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		cookie, err := c.Request.Cookie(session.CookieName)
		if err != nil || cookie.Value == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		sess, err := store.Get(c.Request.Context(), cookie.Value)
		if err != nil || sess == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		if sess.Expired() {
			_ = store.Delete(c.Request.Context(), sess.ID)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		user, ok := sess.Get(sessionKey)
		if !ok || user == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		c.Set(userContextKey, user)
		c.Next()
	}
}
