package session

import (
	"net/http"
	"time"
)

// CookieName uses the __Host- prefix, which browsers only accept for
// secure, host-locked, path-/ cookies.
const CookieName = "__Host-session"

// CookieOptions defines how session cookies are issued.
type CookieOptions struct {
	Path     string
	HttpOnly bool
	Secure   bool
	SameSite http.SameSite
	Domain   string // should usually be empty for __Host- cookies
}

// normalize applies safe defaults without breaking callers
func (o CookieOptions) normalize() CookieOptions {
	if o.Path == "" {
		o.Path = "/" // required for __Host-
	}
	if !o.HttpOnly {
		o.HttpOnly = true
	}
	if o.SameSite == 0 {
		o.SameSite = http.SameSiteLaxMode // survives the provider redirect
	}
	return o
}

func (o CookieOptions) cookie(value string) *http.Cookie {
	o = o.normalize()
	return &http.Cookie{
		Name:     CookieName,
		Value:    value,
		Path:     o.Path,
		Domain:   o.Domain,
		HttpOnly: o.HttpOnly,
		Secure:   o.Secure,
		SameSite: o.SameSite,
	}
}

// Issue writes the session cookie to the client.
func (o CookieOptions) Issue(w http.ResponseWriter, sessionID string, expiresAt time.Time) {
	c := o.cookie(sessionID)
	c.Expires = expiresAt
	http.SetCookie(w, c)
}

// Clear removes the session cookie from the client.
func (o CookieOptions) Clear(w http.ResponseWriter) {
	c := o.cookie("")
	c.MaxAge = -1
	http.SetCookie(w, c)
}
