// Package app wires config into a ready Dispatcher and owns the resources
// behind it.
package app

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	rdb "github.com/redis/go-redis/v9"

	"github.com/MixxMasterMike123/b8s-reseller-app-sub004/internal/cache"
	"github.com/MixxMasterMike123/b8s-reseller-app-sub004/internal/config"
	"github.com/MixxMasterMike123/b8s-reseller-app-sub004/internal/email"
	"github.com/MixxMasterMike123/b8s-reseller-app-sub004/internal/email/transport"
	"github.com/MixxMasterMike123/b8s-reseller-app-sub004/internal/notify"
	"github.com/MixxMasterMike123/b8s-reseller-app-sub004/internal/observability/logger"
	"github.com/MixxMasterMike123/b8s-reseller-app-sub004/internal/rate"
	"github.com/MixxMasterMike123/b8s-reseller-app-sub004/internal/render"
	"github.com/MixxMasterMike123/b8s-reseller-app-sub004/internal/store"
	"github.com/MixxMasterMike123/b8s-reseller-app-sub004/internal/store/memory"
	"github.com/MixxMasterMike123/b8s-reseller-app-sub004/internal/store/pg"
	migrations "github.com/MixxMasterMike123/b8s-reseller-app-sub004/migrations/postgres"
)

type Container struct {
	Accounts   store.AccountRepository
	Transport  transport.Transport
	Dispatcher *notify.Dispatcher
	// Limiter is nil when rate.max is 0.
	Limiter rate.Limiter

	pg    *pg.Store
	cache cache.Client
	redis *rdb.Client
}

// Build opens storage, cache and transport for cfg and assembles the
// dispatcher. Close releases whatever Build opened.
func Build(ctx context.Context, cfg *config.Config) (_ *Container, err error) {
	log := logger.From(ctx).With(logger.Component("app"))
	c := &Container{}
	defer func() {
		if err != nil {
			c.Close()
		}
	}()

	repo, err := c.openStorage(ctx, cfg)
	if err != nil {
		return nil, err
	}

	if cfg.Cache.Kind != "" && cfg.Cache.Kind != "none" {
		c.cache, err = cache.New(cache.Config{
			Kind:     cfg.Cache.Kind,
			Addr:     cfg.Cache.Redis.Addr,
			Password: cfg.Cache.Redis.Password,
			DB:       cfg.Cache.Redis.DB,
			Prefix:   cfg.Cache.Redis.Prefix,
		})
		if err != nil {
			return nil, err
		}
		if perr := c.cache.Ping(ctx); perr != nil {
			return nil, fmt.Errorf("cache ping: %w", perr)
		}
		log.Info("identity cache enabled", logger.String("kind", cfg.Cache.Kind), logger.Duration(cfg.Cache.IdentityTTL))
	}
	c.Accounts = store.NewCached(repo, c.cache, cfg.Cache.IdentityTTL)

	if cfg.Rate.Max > 0 {
		c.Limiter, err = c.openLimiter(ctx, cfg)
		if err != nil {
			return nil, err
		}
	}

	c.Transport, err = email.NewTransport(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("transport: %w", err)
	}

	renderer, err := render.New(render.Options{BrandName: cfg.Mail.BrandName, BaseURL: cfg.Mail.BaseURL})
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}

	c.Dispatcher = notify.New(
		notify.NewResolver(c.Accounts, cfg.Mail.DefaultLanguage),
		renderer,
		c.Transport,
		notify.Options{
			DefaultLanguage: cfg.Mail.DefaultLanguage,
			ReplyTo:         cfg.Mail.ReplyTo,
			Policy:          notify.NewSenderPolicy(cfg.Mail.SenderDomain, cfg.Mail.DefaultSender, cfg.Mail.SenderPolicy),
		},
	)
	return c, nil
}

func (c *Container) openStorage(ctx context.Context, cfg *config.Config) (store.AccountRepository, error) {
	log := logger.From(ctx).With(logger.Component("app"))

	switch cfg.Storage.Driver {
	case "postgres":
		s, err := pg.New(ctx, cfg.Storage.DSN, pg.PoolConfig{
			MaxConns:        cfg.Storage.Postgres.MaxConns,
			MinConns:        cfg.Storage.Postgres.MinConns,
			ConnMaxLifetime: cfg.Storage.Postgres.ConnMaxLifetime,
		})
		if err != nil {
			return nil, err
		}
		c.pg = s
		if cfg.Storage.Migrate {
			res, err := s.Migrate(ctx, migrations.FS, migrations.Dir)
			if err != nil {
				return nil, fmt.Errorf("migrate: %w", err)
			}
			log.Info("migrations applied", logger.Int("applied", len(res.Applied)), logger.Int("skipped", len(res.Skipped)))
		}
		return s, nil

	default:
		if cfg.Storage.SeedFile == "" {
			log.Warn("memory storage without seed file, only contact info will resolve")
			return memory.New(), nil
		}
		repo, err := memory.LoadSeedFile(cfg.Storage.SeedFile)
		if err != nil {
			return nil, err
		}
		return repo, nil
	}
}

func (c *Container) openLimiter(ctx context.Context, cfg *config.Config) (rate.Limiter, error) {
	if cfg.Cache.Kind != "redis" {
		return rate.NewMemoryLimiter(cfg.Rate.Max, cfg.Rate.Window), nil
	}
	c.redis = rdb.NewClient(&rdb.Options{
		Addr:     cfg.Cache.Redis.Addr,
		Password: cfg.Cache.Redis.Password,
		DB:       cfg.Cache.Redis.DB,
	})
	if err := c.redis.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("rate limiter redis ping: %w", err)
	}
	return rate.NewRedisLimiter(c.redis, cfg.Cache.Redis.Prefix+"rl:", cfg.Rate.Max, cfg.Rate.Window), nil
}

// Pool returns the postgres pool, or nil for the memory driver.
func (c *Container) Pool() *pgxpool.Pool {
	if c == nil || c.pg == nil {
		return nil
	}
	return c.pg.Pool()
}

func (c *Container) Close() {
	if c == nil {
		return
	}
	if c.cache != nil {
		_ = c.cache.Close()
	}
	if c.redis != nil {
		_ = c.redis.Close()
	}
	if c.pg != nil {
		c.pg.Close()
	}
}
