package handler

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Short-lived cookies carrying the per-handshake CSRF state and PKCE
// verifier between the login action and the provider callback.
const (
	stateCookieName = "__oauth_state"
	pkceCookieName  = "__oauth_pkce"
	handshakeTTL    = 5 * time.Minute
)

func setHandshakeCookie(c *gin.Context, name, value string, maxAge int) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   maxAge,
	})
}

func randomToken() string {
	b := make([]byte, 32)
	_, _ = rand.Read(b)
	return base64.RawURLEncoding.EncodeToString(b)
}

func generateState(c *gin.Context) string {
	state := randomToken()
	setHandshakeCookie(c, stateCookieName, state, int(handshakeTTL.Seconds()))
	return state
}

// validateState compares the state query parameter against the state
// cookie and clears the cookie either way; state is single-use.
func validateState(c *gin.Context) bool {
	cookie, err := c.Request.Cookie(stateCookieName)
	if err != nil {
		return false
	}
	setHandshakeCookie(c, stateCookieName, "", -1)

	state := c.Query("state")
	return state != "" && cookie.Value == state
}

func generatePKCE(c *gin.Context) (verifier string, challenge string) {
	verifier = randomToken()

	hash := sha256.Sum256([]byte(verifier))
	challenge = base64.RawURLEncoding.EncodeToString(hash[:])

	setHandshakeCookie(c, pkceCookieName, verifier, int(handshakeTTL.Seconds()))
	return verifier, challenge
}

// getPKCEVerifier reads the verifier issued at login. An empty return
// is fine: providers that ignore PKCE get an empty parameter.
func getPKCEVerifier(c *gin.Context) string {
	cookie, err := c.Request.Cookie(pkceCookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}
