package app

import (
	"context"
	"net/http"
	"time"

	"hybrid-auth-service/internal/config"
)

// App owns the HTTP server and the infrastructure handles it serves
// from. Shutdown stops accepting requests first, then releases the
// database and Redis connections.
type App struct {
	httpServer *http.Server
	infra      *Infra
}

func New(ctx context.Context, cfg config.Config) (*App, error) {
	router, infra, err := setupHTTP(ctx, cfg)
	if err != nil {
		return nil, err
	}

	return &App{
		httpServer: &http.Server{
			Addr:              ":" + cfg.AppPort,
			Handler:           router,
			ReadHeaderTimeout: 5 * time.Second,
		},
		infra: infra,
	}, nil
}

func (a *App) Run() error {
	return a.httpServer.ListenAndServe()
}

func (a *App) Shutdown(ctx context.Context) error {
	if err := a.httpServer.Shutdown(ctx); err != nil {
		return err
	}
	return a.infra.Close()
}
