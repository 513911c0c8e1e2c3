package cache

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

type memoryClient struct {
	prefix string
	c      *gocache.Cache
}

// NewMemory crea un cliente de cache en memoria. Útil para desarrollo y
// deploys de una sola réplica; las entradas expiradas se purgan cada minuto.
func NewMemory(prefix string) Client {
	return &memoryClient{
		prefix: prefix,
		c:      gocache.New(gocache.NoExpiration, time.Minute),
	}
}

func (m *memoryClient) Get(_ context.Context, key string) ([]byte, error) {
	v, ok := m.c.Get(prefixed(m.prefix, key))
	if !ok {
		return nil, ErrNotFound
	}
	b, _ := v.([]byte)
	return b, nil
}

func (m *memoryClient) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = gocache.NoExpiration
	}
	cp := make([]byte, len(value))
	copy(cp, value)
	m.c.Set(prefixed(m.prefix, key), cp, ttl)
	return nil
}

func (m *memoryClient) Delete(_ context.Context, key string) error {
	m.c.Delete(prefixed(m.prefix, key))
	return nil
}

func (m *memoryClient) Ping(context.Context) error { return nil }

func (m *memoryClient) Close() error {
	m.c.Flush()
	return nil
}
