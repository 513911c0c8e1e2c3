package middlewares

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/MixxMasterMike123/b8s-reseller-app-sub004/internal/http/errors"
	"github.com/MixxMasterMike123/b8s-reseller-app-sub004/internal/observability/logger"
)

// WithRecover captura panics y devuelve un error 500 en lugar de crashear.
func WithRecover() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					if rec == http.ErrAbortHandler {
						panic(rec)
					}
					logger.From(r.Context()).Error("panic recovered",
						logger.RequestID(GetRequestID(r.Context())),
						zap.Any("panic", rec),
						zap.Stack("stack"),
					)
					errors.WriteError(w, errors.ErrInternalServerError)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
