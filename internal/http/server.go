// Package http runs the notification service's HTTP server.
package http

import (
	"context"
	"errors"
	stdhttp "net/http"
	"time"

	"github.com/MixxMasterMike123/b8s-reseller-app-sub004/internal/observability/logger"
)

// ServerConfig holds listener settings.
type ServerConfig struct {
	Addr            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

// Start serves handler until ctx is canceled, then drains in-flight
// requests for at most ShutdownTimeout.
func Start(ctx context.Context, cfg ServerConfig, handler stdhttp.Handler) error {
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = 15 * time.Second
	}
	srv := &stdhttp.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      cfg.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.L().Info("http server listening", logger.String("addr", cfg.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, stdhttp.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.L().Info("http server shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, stdhttp.ErrServerClosed) {
		return err
	}
	return nil
}
