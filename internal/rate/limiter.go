// Package rate throttles API callers with a fixed-window counter, shared
// through Redis or kept per replica in memory.
package rate

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"
	rdb "github.com/redis/go-redis/v9"
)

type Result struct {
	Allowed    bool
	Remaining  int64
	RetryAfter time.Duration // resto de la ventana
	Hits       int64
}

type Limiter interface {
	Allow(ctx context.Context, key string) (Result, error)
}

func windowKey(prefix, key string, start time.Time) string {
	return fmt.Sprintf("%s%s:%d", prefix, strings.ReplaceAll(key, " ", "_"), start.Unix())
}

func result(hits, max int64, reset time.Duration) Result {
	remaining := max - hits
	if remaining < 0 {
		remaining = 0
	}
	return Result{Allowed: hits <= max, Remaining: remaining, RetryAfter: reset, Hits: hits}
}

// ─── Redis ───

// RedisLimiter: fixed window sencillo (INCR + EXPIRE), compartido entre réplicas.
type RedisLimiter struct {
	Client rdb.Cmdable
	Prefix string
	Max    int64
	Window time.Duration
	now    func() time.Time
}

func NewRedisLimiter(client rdb.Cmdable, prefix string, max int, window time.Duration) *RedisLimiter {
	if prefix == "" {
		prefix = "rl:"
	}
	return &RedisLimiter{Client: client, Prefix: prefix, Max: int64(max), Window: window, now: time.Now}
}

func (l *RedisLimiter) Allow(ctx context.Context, key string) (Result, error) {
	now := l.now().UTC()
	start := now.Truncate(l.Window)
	k := windowKey(l.Prefix, key, start)

	pipe := l.Client.TxPipeline()
	incr := pipe.Incr(ctx, k)
	pipe.Expire(ctx, k, l.Window)
	if _, err := pipe.Exec(ctx); err != nil {
		return Result{}, err
	}
	return result(incr.Val(), l.Max, start.Add(l.Window).Sub(now)), nil
}

// ─── Memory ───

// MemoryLimiter guarda los contadores en go-cache; el límite es por proceso.
type MemoryLimiter struct {
	Max    int64
	Window time.Duration

	mu    sync.Mutex
	store *gocache.Cache
	now   func() time.Time
}

func NewMemoryLimiter(max int, window time.Duration) *MemoryLimiter {
	return &MemoryLimiter{
		Max:    int64(max),
		Window: window,
		store:  gocache.New(window, 2*window),
		now:    time.Now,
	}
}

func (l *MemoryLimiter) Allow(_ context.Context, key string) (Result, error) {
	now := l.now().UTC()
	start := now.Truncate(l.Window)
	k := windowKey("", key, start)

	l.mu.Lock()
	hits, err := l.store.IncrementInt64(k, 1)
	if err != nil {
		hits = 1
		l.store.Set(k, hits, l.Window)
	}
	l.mu.Unlock()

	return result(hits, l.Max, start.Add(l.Window).Sub(now)), nil
}
