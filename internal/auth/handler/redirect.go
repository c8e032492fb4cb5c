package handler

import (
	"strings"

	"hybrid-auth-service/internal/session"

	"github.com/gin-gonic/gin"
)

// The query string key used for remembering the referred page when
// getting redirected to login.
const queryRedirect = "redirect"

// Session keys owned by the auth handler.
const (
	sessionRedirectKey = "HybridAuth.redirectUrl"
	sessionProviderKey = "HybridAuth.provider"
)

// rememberRedirect stores the "redirect" query parameter for after the
// handshake. Only server-relative paths are accepted: a target must
// start with a single "/", since "//" is a scheme-relative open
// redirect.
func (h *Handler) rememberRedirect(c *gin.Context, sess *session.Session) {
	sess.Delete(sessionRedirectKey)

	target := c.Query(queryRedirect)
	if target == "" ||
		!strings.HasPrefix(target, "/") ||
		strings.HasPrefix(target, "//") {
		return
	}

	sess.Set(sessionRedirectKey, target)
}

// consumeRedirect reads and clears the remembered redirect target,
// falling back to the configured default. A second read after
// consumption always yields the default.
func (h *Handler) consumeRedirect(sess *session.Session) string {
	if v, ok := sess.Consume(sessionRedirectKey); ok {
		if target, ok := v.(string); ok && target != "" {
			return target
		}
	}
	return h.cfg.LoginRedirect
}
