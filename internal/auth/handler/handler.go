package handler

import (
	"errors"
	"net/http"
	"net/url"

	"hybrid-auth-service/internal/auth"
	"hybrid-auth-service/internal/auth/provider"
	"hybrid-auth-service/internal/auth/resolver"
	"hybrid-auth-service/internal/logger"
	"hybrid-auth-service/internal/session"

	"github.com/gin-gonic/gin"
)

// Config is the handler's slice of the application configuration.
type Config struct {
	BaseURL       *url.URL // absolute base for resolving redirect targets
	RequestMethod string   // verb accepted by the login action
	LoginURL      string   // redirect target on expected failures
	LoginRedirect string   // default post-login redirect
	UserEntity    bool     // structured projection instead of a mapping
	PasswordField string   // field stripped from the projection
	SessionKey    string   // session key for the user projection
	LogErrors     bool
}

// AfterIdentify listeners run after the user is resolved, before the
// projection is written to the session. A non-nil return value replaces
// the projection; listeners run in registration order, so the last
// non-nil result wins.
type AfterIdentify func(user any) any

type Handler struct {
	cfg       Config
	providers *provider.Registry
	sessions  *session.Manager
	resolver  resolver.Resolver
	listeners []AfterIdentify
}

func NewHandler(
	cfg Config,
	registry *provider.Registry,
	sessions *session.Manager,
	resolver resolver.Resolver,
) *Handler {
	return &Handler{
		cfg:       cfg,
		providers: registry,
		sessions:  sessions,
		resolver:  resolver,
	}
}

// AfterIdentify registers a listener. Not safe to call once the handler
// is serving requests.
func (h *Handler) AfterIdentify(fn AfterIdentify) {
	h.listeners = append(h.listeners, fn)
}

// RegisterRoutes connects the two workflow actions. The login route is
// bound to the configured verb only; gin's method-not-allowed handling
// rejects the rest. The bare callback route serves providers that
// redirect without a path parameter.
func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.Handle(h.cfg.RequestMethod, "/hybrid-auth/login/:provider", h.login)
	r.GET("/hybrid-auth/callback/:provider", h.callback)
	r.GET("/hybrid-auth/callback", h.callback)
	r.POST("/auth/logout", h.logout)
}

// login starts the authentication handshake: remember where the user
// wanted to go, remember which provider is in flight, then hand the
// browser to the provider's authorization URL.
func (h *Handler) login(c *gin.Context) {
	providerName := c.Param("provider")

	p, err := h.providers.Get(providerName)
	if err != nil {
		h.failure(c, err)
		return
	}

	sess, err := h.sessions.Load(c.Request.Context(), c.Request)
	if err != nil {
		h.fatal(c, err)
		return
	}

	h.rememberRedirect(c, sess)
	sess.Set(sessionProviderKey, providerName)

	state := generateState(c)
	_, codeChallenge := generatePKCE(c)

	if err := h.sessions.Save(c.Request.Context(), c.Writer, sess); err != nil {
		h.fatal(c, err)
		return
	}

	c.Redirect(http.StatusFound, p.AuthCodeURL(state, codeChallenge))
}

// callback finishes the handshake: exchange the code for an identity,
// reconcile it to a local user, run the after-identify listeners, write
// the projection to the session and send the user on their way.
func (h *Handler) callback(c *gin.Context) {
	ctx := c.Request.Context()

	sess, err := h.sessions.Load(ctx, c.Request)
	if err != nil {
		h.fatal(c, err)
		return
	}

	providerName := c.Param("provider")
	if providerName == "" {
		// Bare callback route: the provider name was stored at login.
		if v, ok := sess.Get(sessionProviderKey); ok {
			providerName, _ = v.(string)
		}
	}

	p, err := h.providers.Get(providerName)
	if err != nil {
		h.failure(c, err)
		return
	}

	if errParam := c.Query("error"); errParam != "" {
		h.failure(c, auth.ProviderFailure(
			errors.New("provider returned error: "+errParam),
		))
		return
	}

	if !validateState(c) {
		h.failure(c, auth.ProviderFailure(errors.New("state mismatch")))
		return
	}

	code := c.Query("code")
	if code == "" {
		h.failure(c, auth.ProviderFailure(errors.New("missing authorization code")))
		return
	}

	identity, err := p.ExchangeCode(ctx, code, getPKCEVerifier(c))
	if err != nil {
		h.authError(c, err)
		return
	}

	user, err := h.resolver.Resolve(ctx, identity, sess)
	if err != nil {
		h.authError(c, err)
		return
	}

	projection := resolver.Project(user, h.cfg.UserEntity, h.cfg.PasswordField)
	for _, listen := range h.listeners {
		if replacement := listen(projection); replacement != nil {
			projection = replacement
		}
	}

	sess.Delete(sessionProviderKey)
	sess.Set(h.cfg.SessionKey, projection)
	target := h.consumeRedirect(sess)

	if err := h.sessions.Save(ctx, c.Writer, sess); err != nil {
		h.fatal(c, err)
		return
	}

	c.Redirect(http.StatusFound, h.absoluteURL(target))
}

func (h *Handler) logout(c *gin.Context) {
	if err := h.sessions.Destroy(c.Request.Context(), c.Writer, c.Request); err != nil {
		logger.Error("logout failed", map[string]any{"error": err.Error()})
	}
	c.Status(http.StatusNoContent)
}

// authError routes a workflow error to the right surface: expected
// failures redirect to the login page with the error code, everything
// else is a server error.
func (h *Handler) authError(c *gin.Context, err error) {
	if _, ok := auth.IsRecoverable(err); ok {
		h.failure(c, err)
		return
	}
	h.fatal(c, err)
}

// failure reports an expected authentication failure: optionally log
// it, then redirect to the login page with "?error=<code>".
func (h *Handler) failure(c *gin.Context, err error) {
	code := auth.CodeProviderFailure
	var body string
	var authErr *auth.Error
	if errors.As(err, &authErr) {
		code = authErr.Code
		body = authErr.Body
	}

	if h.cfg.LogErrors {
		fields := map[string]any{
			"error": err.Error(),
			"url":   c.Request.URL.RequestURI(),
		}
		if referer := c.Request.Referer(); referer != "" {
			fields["referer"] = referer
		}
		if body != "" {
			fields["provider_response"] = body
		}
		logger.Error("authentication failed", fields)
	}

	target, parseErr := url.Parse(h.absoluteURL(h.cfg.LoginURL))
	if parseErr != nil {
		h.fatal(c, parseErr)
		return
	}
	q := target.Query()
	q.Set("error", code)
	target.RawQuery = q.Encode()

	c.Redirect(http.StatusFound, target.String())
}

func (h *Handler) fatal(c *gin.Context, err error) {
	logger.Error("authentication workflow error", map[string]any{
		"error": err.Error(),
		"url":   c.Request.URL.RequestURI(),
	})
	c.AbortWithStatus(http.StatusInternalServerError)
}

// absoluteURL resolves target against the configured base, so every
// redirect leaves as an absolute URL.
func (h *Handler) absoluteURL(target string) string {
	ref, err := url.Parse(target)
	if err != nil {
		return h.cfg.BaseURL.String()
	}
	return h.cfg.BaseURL.ResolveReference(ref).String()
}
