// Package router assembles the chi router for the notification service.
package router

import (
	"net"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MixxMasterMike123/b8s-reseller-app-sub004/internal/http/errors"
	"github.com/MixxMasterMike123/b8s-reseller-app-sub004/internal/http/handlers"
	mw "github.com/MixxMasterMike123/b8s-reseller-app-sub004/internal/http/middlewares"
	"github.com/MixxMasterMike123/b8s-reseller-app-sub004/internal/rate"
)

// Deps contains everything the router wires.
type Deps struct {
	Dispatcher handlers.Dispatcher
	Version    string

	// Metrics is the /metrics handler; nil leaves the route unmounted.
	Metrics http.Handler

	// Auth guards /v1. An empty secret leaves it open.
	Auth mw.AuthConfig

	// RateLimiter throttles /v1 per caller; nil disables it.
	RateLimiter rate.Limiter
	// TrustedProxies may set X-Forwarded-For for the rate limit key.
	TrustedProxies []*net.IPNet
}

// New builds the root handler.
func New(deps Deps) http.Handler {
	r := chi.NewRouter()

	// Request id first so every log line and error body carries it; recover
	// sits inside logging so a panic is logged as a 500.
	r.Use(
		mw.WithRequestID(),
		mw.WithLogging(),
		mw.WithRecover(),
		mw.WithMetrics(),
	)

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		errors.WriteError(w, errors.ErrNotFound)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		errors.WriteError(w, errors.ErrMethodNotAllowed)
	})

	// ─── Probes ───
	health := handlers.NewHealthHandler(deps.Dispatcher, deps.Version)
	r.Get("/healthz", health.Healthz)
	r.Get("/readyz", health.Readyz)
	if deps.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", deps.Metrics)
	}

	// ─── API ───
	notifications := handlers.NewNotificationsHandler(deps.Dispatcher)
	r.Route("/v1", func(r chi.Router) {
		r.Use(mw.RequireBearer(deps.Auth), mw.WithRateLimit(deps.RateLimiter, deps.TrustedProxies...))
		notifications.Register(r)
	})

	return r
}
