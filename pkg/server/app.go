package server

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	domrepo "StockSight/internal/domain/repository"
	"StockSight/internal/usecase"
	"StockSight/pkg/cache"
	xhttp "StockSight/pkg/http"
	applogger "StockSight/pkg/logger"
)

// App encapsulates the entire application lifecycle.
type App struct {
	l          *applogger.Logger
	httpServer *xhttp.Server
	warmer     *usecase.TrendingWarmer
	publisher  domrepo.ForecastPublisher
	cache      cache.Service
}

// New creates a new App instance with all dependencies.
func New(
	l *applogger.Logger,
	httpServer *xhttp.Server,
	warmer *usecase.TrendingWarmer,
	publisher domrepo.ForecastPublisher,
	c cache.Service,
) *App {
	return &App{
		l:          l,
		httpServer: httpServer,
		warmer:     warmer,
		publisher:  publisher,
		cache:      c,
	}
}

// Run starts the application and blocks until interrupted.
func (a *App) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := a.warmer.Start(); err != nil {
		return err
	}
	if err := a.httpServer.Start(); err != nil {
		a.l.Error("http server start error", applogger.Error(err))
		return err
	}

	<-ctx.Done()
	a.l.Info("shutdown signal received")
	return a.shutdown()
}

// shutdown gracefully stops all services.
func (a *App) shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), a.httpServer.ShutdownTimeout())
	defer cancel()

	var firstErr error
	if err := a.httpServer.Stop(ctx); err != nil {
		a.l.Error("http shutdown error", applogger.Error(err))
		firstErr = err
	}

	a.warmer.Stop(ctx)

	// Flush aggregated logs while the producer is still open.
	a.l.RemoveCollector()

	if err := a.publisher.Close(); err != nil {
		a.l.Warn("forecast publisher close error", applogger.Error(err))
	}
	if err := a.cache.Close(); err != nil {
		a.l.Warn("cache close error", applogger.Error(err))
	}

	a.l.Info("shutdown complete")
	return firstErr
}
