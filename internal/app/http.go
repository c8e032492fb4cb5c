package app

import (
	"context"
	"net/http"

	"hybrid-auth-service/internal/auth/handler"
	"hybrid-auth-service/internal/auth/profile"
	"hybrid-auth-service/internal/auth/provider"
	"hybrid-auth-service/internal/auth/provider/github"
	"hybrid-auth-service/internal/auth/provider/google"
	"hybrid-auth-service/internal/auth/resolver"
	"hybrid-auth-service/internal/auth/users"
	"hybrid-auth-service/internal/config"
	"hybrid-auth-service/internal/logger"
	"hybrid-auth-service/internal/middleware"
	"hybrid-auth-service/internal/session"

	"github.com/gin-gonic/gin"
)

func setupHTTP(ctx context.Context, cfg config.Config) (*gin.Engine, *Infra, error) {

	infra, err := setupInfra(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}

	// ----------------------------
	// Dependencies
	// ----------------------------

	sessionStore := session.NewRedisStore(infra.Redis.Client)
	sessionManager := session.NewManager(
		sessionStore,
		cfg.SessionTTL,
		session.CookieOptions{Secure: true, SameSite: http.SameSiteLaxMode},
	)

	profileRepo := profile.NewPostgres(infra.DB)
	userStore, err := users.NewPostgres(infra.DB, cfg.Finder)
	if err != nil {
		return nil, nil, err
	}

	identityResolver := resolver.NewDBResolver(
		profileRepo,
		userStore,
		users.DefaultGetUser(userStore),
	)

	registry, err := setupProviders(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}

	authHandler := handler.NewHandler(
		handler.Config{
			BaseURL:       cfg.Base(),
			RequestMethod: cfg.RequestMethod,
			LoginURL:      cfg.LoginURL,
			LoginRedirect: cfg.LoginRedirect,
			UserEntity:    cfg.UserEntity,
			PasswordField: cfg.PasswordField,
			SessionKey:    cfg.SessionKey,
			LogErrors:     cfg.LogErrors,
		},
		registry,
		sessionManager,
		identityResolver,
	)

	// ----------------------------
	// Router
	// ----------------------------

	router := gin.New()
	router.Use(gin.Recovery())
	router.HandleMethodNotAllowed = true

	// ----------------------------
	// Public Routes
	// ----------------------------

	authHandler.RegisterRoutes(router)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// ----------------------------
	// Protected API Routes
	// ----------------------------

	api := router.Group("/api")
	api.Use(middleware.RequireAuth(sessionStore, cfg.SessionKey))

	api.GET("/me", func(c *gin.Context) {
		user, _ := middleware.CurrentUser(c)
		c.JSON(http.StatusOK, gin.H{"user": user})
	})

	return router, infra, nil
}

// setupProviders activates every provider with complete credentials and
// skips the rest, so a deployment can run google-only or github-only.
func setupProviders(ctx context.Context, cfg config.Config) (*provider.Registry, error) {
	var list []provider.OAuthProvider

	if cfg.GoogleClientID != "" || cfg.GoogleClientSecret != "" {
		googleProvider, err := google.New(
			ctx,
			cfg.GoogleClientID,
			cfg.GoogleClientSecret,
			cfg.GoogleRedirectURL,
		)
		if err != nil {
			return nil, err
		}
		list = append(list, googleProvider)
	}

	if cfg.GitHubClientID != "" || cfg.GitHubClientSecret != "" {
		githubProvider, err := github.New(
			cfg.GitHubClientID,
			cfg.GitHubClientSecret,
			cfg.GitHubRedirectURL,
		)
		if err != nil {
			return nil, err
		}
		list = append(list, githubProvider)
	}

	registry := provider.NewRegistry(list...)
	logger.Info("oauth providers registered", map[string]any{
		"providers": registry.Names(),
	})

	return registry, nil
}
