package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/MixxMasterMike123/b8s-reseller-app-sub004/internal/app"
	"github.com/MixxMasterMike123/b8s-reseller-app-sub004/internal/config"
	httpserver "github.com/MixxMasterMike123/b8s-reseller-app-sub004/internal/http"
	mw "github.com/MixxMasterMike123/b8s-reseller-app-sub004/internal/http/middlewares"
	"github.com/MixxMasterMike123/b8s-reseller-app-sub004/internal/http/router"
	"github.com/MixxMasterMike123/b8s-reseller-app-sub004/internal/observability/logger"
)

var version = "dev"

func main() {
	configPath := flag.String("config", envOr("CONFIG_PATH", ""), "Path to YAML config (env CONFIG_PATH)")
	envFile := flag.String("env-file", ".env", "dotenv file loaded before config")
	flag.Parse()

	if err := godotenv.Load(*envFile); err != nil && !os.IsNotExist(err) {
		log.Printf("dotenv %s: %v", *envFile, err)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger.Init(logger.Config{
		Env:         cfg.App.Env,
		Level:       cfg.Log.Level,
		ServiceName: "notifyd",
		Version:     version,
	})
	defer func() { _ = logger.Sync() }()
	lg := logger.L()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	bootCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	container, err := app.Build(bootCtx, cfg)
	cancel()
	if err != nil {
		lg.Fatal("startup failed", logger.Err(err))
	}
	defer container.Close()

	metricsHandler, err := mw.RegisterMetrics(mw.MetricsConfig{
		Registry: prometheus.DefaultRegisterer,
		Pool:     container.Pool,
	})
	if err != nil {
		lg.Fatal("metrics registration failed", logger.Err(err))
	}

	proxies, err := mw.ParseTrustedProxies(cfg.Rate.TrustedProxies)
	if err != nil {
		lg.Fatal("invalid rate.trusted_proxies", logger.Err(err))
	}

	handler := router.New(router.Deps{
		Dispatcher:     container.Dispatcher,
		Version:        version,
		Metrics:        metricsHandler,
		RateLimiter:    container.Limiter,
		TrustedProxies: proxies,
		Auth: mw.AuthConfig{
			Secret:   cfg.Auth.JWTSecret,
			Issuer:   cfg.Auth.Issuer,
			Audience: cfg.Auth.Audience,
		},
	})
	if cfg.Auth.JWTSecret == "" {
		lg.Warn("API auth disabled: auth.jwt_secret is empty")
	}

	lg.Info("notifyd starting",
		logger.String("env", cfg.App.Env),
		logger.String("storage", cfg.Storage.Driver),
		logger.String("cache", cfg.Cache.Kind),
		logger.Bool("dry_run", cfg.SMTP.DryRun),
	)
	err = httpserver.Start(ctx, httpserver.ServerConfig{
		Addr:         cfg.Server.Addr,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}, handler)
	if err != nil {
		lg.Fatal("http server stopped", logger.Err(err))
	}
	lg.Info("notifyd stopped")
}

func envOr(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
