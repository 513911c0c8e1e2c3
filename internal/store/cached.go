package store

import (
	"context"
	"encoding/json"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/MixxMasterMike123/b8s-reseller-app-sub004/internal/cache"
	"github.com/MixxMasterMike123/b8s-reseller-app-sub004/internal/observability/logger"
)

// Cached is a read-through decorator over an AccountRepository. Only found
// records are cached; a miss always goes to the backend. Concurrent misses
// for the same key share one backend call.
type Cached struct {
	next  AccountRepository
	cache cache.Client
	ttl   time.Duration
	sf    singleflight.Group
}

// NewCached wraps next. ttl <= 0 returns next unchanged.
func NewCached(next AccountRepository, c cache.Client, ttl time.Duration) AccountRepository {
	if c == nil || ttl <= 0 {
		return next
	}
	return &Cached{next: next, cache: c, ttl: ttl}
}

func (r *Cached) FindRegisteredAccountByID(ctx context.Context, id string) (*Account, error) {
	var out *Account
	err := r.lookup(ctx, "account:"+id, &out, func() (any, error) {
		return r.next.FindRegisteredAccountByID(ctx, id)
	})
	return out, err
}

func (r *Cached) FindRetailCustomerByID(ctx context.Context, id string) (*RetailCustomer, error) {
	var out *RetailCustomer
	err := r.lookup(ctx, "retail:"+id, &out, func() (any, error) {
		return r.next.FindRetailCustomerByID(ctx, id)
	})
	return out, err
}

// lookup fills dst (a pointer to a record pointer) from cache or load.
func (r *Cached) lookup(ctx context.Context, key string, dst any, load func() (any, error)) error {
	log := logger.From(ctx).With(logger.Layer("store.cached"), logger.String("key", key))

	if b, err := r.cache.Get(ctx, key); err == nil {
		if jerr := json.Unmarshal(b, dst); jerr == nil {
			return nil
		}
		_ = r.cache.Delete(ctx, key)
	} else if !cache.IsNotFound(err) {
		log.Warn("identity cache read failed", logger.Err(err))
	}

	v, err, _ := r.sf.Do(key, func() (any, error) {
		rec, err := load()
		if err != nil {
			return nil, err
		}
		b, err := json.Marshal(rec)
		if err != nil {
			return nil, err
		}
		return b, nil
	})
	if err != nil {
		return err
	}

	b := v.([]byte)
	if err := json.Unmarshal(b, dst); err != nil {
		return err
	}
	// json "null" means not found; do not cache absence
	if string(b) != "null" {
		if err := r.cache.Set(ctx, key, b, r.ttl); err != nil {
			log.Warn("identity cache write failed", logger.Err(err))
		}
	}
	return nil
}
