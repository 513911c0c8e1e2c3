// Package cache provides the key/value backends used by the optional
// identity lookup cache.
//
// Backends:
//   - memory: in-process (go-cache), per replica
//   - redis: shared between replicas
package cache

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Client es el contrato de cache.
type Client interface {
	// Get devuelve ErrNotFound si la key no existe o expiró.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set guarda value. ttl == 0 significa sin expiración.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	Delete(ctx context.Context, key string) error
	Ping(ctx context.Context) error
	Close() error
}

// Config elige y configura un backend.
type Config struct {
	Kind     string // memory | redis
	Addr     string
	Password string
	DB       int
	Prefix   string
}

var ErrNotFound = errors.New("cache: key not found")

// IsNotFound indica si err es un miss.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// New crea un Client según cfg.Kind.
func New(cfg Config) (Client, error) {
	switch cfg.Kind {
	case "redis":
		return NewRedis(cfg)
	case "memory", "":
		return NewMemory(cfg.Prefix), nil
	default:
		return nil, fmt.Errorf("cache: unknown kind %q", cfg.Kind)
	}
}

func prefixed(prefix, k string) string {
	if prefix == "" {
		return k
	}
	return prefix + ":" + k
}
