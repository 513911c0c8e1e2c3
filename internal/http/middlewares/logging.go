package middlewares

import (
	"net/http"
	"time"

	"github.com/MixxMasterMike123/b8s-reseller-app-sub004/internal/observability/logger"
)

// statusRecorder captura el status y los bytes escritos.
type statusRecorder struct {
	http.ResponseWriter
	status      int
	bytes       int
	wroteHeader bool
}

func (s *statusRecorder) WriteHeader(code int) {
	if s.wroteHeader {
		return
	}
	s.status = code
	s.wroteHeader = true
	s.ResponseWriter.WriteHeader(code)
}

func (s *statusRecorder) Write(b []byte) (int, error) {
	if !s.wroteHeader {
		s.status = http.StatusOK
		s.wroteHeader = true
	}
	n, err := s.ResponseWriter.Write(b)
	s.bytes += n
	return n, err
}

// WithLogging loguea una línea por request y deja un logger con scope de
// request en el contexto para handlers y dispatcher.
func WithLogging() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			requestID := w.Header().Get("X-Request-ID")
			if requestID == "" {
				requestID = GetRequestID(r.Context())
			}
			reqLog := logger.L().With(
				logger.RequestID(requestID),
				logger.Method(r.Method),
				logger.Path(r.URL.Path),
			)

			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rec, r.WithContext(logger.ToContext(r.Context(), reqLog)))

			dur := time.Since(start)
			switch {
			case rec.status >= 500:
				reqLog.Error("request failed", logger.Status(rec.status), logger.Int("bytes", rec.bytes), logger.Duration(dur))
			case rec.status >= 400:
				reqLog.Warn("request completed with client error", logger.Status(rec.status), logger.Int("bytes", rec.bytes), logger.Duration(dur))
			default:
				reqLog.Info("request completed", logger.Status(rec.status), logger.Int("bytes", rec.bytes), logger.Duration(dur))
			}
		})
	}
}
