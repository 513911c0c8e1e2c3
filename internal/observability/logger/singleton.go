package logger

import (
	"sync"

	"go.uber.org/zap"
)

var (
	mu       sync.RWMutex
	once     sync.Once
	instance *zap.Logger
	maskPII  bool
)

// Init construye el singleton. Sólo la primera llamada tiene efecto.
func Init(cfg Config) {
	once.Do(func() {
		l := build(cfg)
		mu.Lock()
		instance = l
		maskPII = cfg.Env == "prod"
		mu.Unlock()
	})
}

// L devuelve el singleton; si nunca se llamó Init, arma uno dev/info.
func L() *zap.Logger {
	mu.RLock()
	l := instance
	mu.RUnlock()
	if l == nil {
		Init(Config{Env: "dev", Level: "info"})
		mu.RLock()
		l = instance
		mu.RUnlock()
	}
	return l
}

// Replace swaps the singleton. Tests use it with zaptest/observer loggers.
func Replace(l *zap.Logger) {
	once.Do(func() {})
	mu.Lock()
	instance = l
	mu.Unlock()
}

// Named returns a child logger tagged with a component name.
func Named(name string) *zap.Logger {
	return L().Named(name)
}

// With returns the singleton with extra fields.
func With(fields ...zap.Field) *zap.Logger {
	return L().With(fields...)
}

// Sync vacía los buffers.
func Sync() error {
	mu.RLock()
	l := instance
	mu.RUnlock()
	if l != nil {
		return l.Sync()
	}
	return nil
}
