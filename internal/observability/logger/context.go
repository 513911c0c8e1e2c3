package logger

import (
	"context"

	"go.uber.org/zap"
)

type ctxKey struct{}

// ToContext guarda un logger con scope en ctx. Los middlewares lo usan para adjuntar campos del request.
func ToContext(ctx context.Context, l *zap.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, l)
}

// From devuelve el logger del contexto, o el singleton.
func From(ctx context.Context) *zap.Logger {
	if ctx == nil {
		return L()
	}
	if l, ok := ctx.Value(ctxKey{}).(*zap.Logger); ok && l != nil {
		return l
	}
	return L()
}
