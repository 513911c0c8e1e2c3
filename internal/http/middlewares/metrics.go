package middlewares

import (
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/MixxMasterMike123/b8s-reseller-app-sub004/internal/metrics"
)

var (
	metricsOnce sync.Once
	metricsErr  error

	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	httpInflight        *prometheus.GaugeVec
)

// MetricsConfig groups what /metrics needs.
type MetricsConfig struct {
	Registry prometheus.Registerer
	// Pool, when set, exposes pgx pool gauges.
	Pool func() *pgxpool.Pool
}

// RegisterMetrics creates the HTTP collectors, registers them with the
// dispatch collectors, and returns the /metrics handler.
func RegisterMetrics(cfg MetricsConfig) (http.Handler, error) {
	registry := cfg.Registry
	if registry == nil {
		registry = prometheus.DefaultRegisterer
	}

	metricsOnce.Do(func() {
		httpRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "HTTP requests by method, route and status",
		}, []string{"method", "path", "status"})

		httpRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "path"})

		httpInflight = prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "http_inflight_requests",
			Help: "Requests in flight by method",
		}, []string{"method"})

		for _, c := range []prometheus.Collector{httpRequestsTotal, httpRequestDuration, httpInflight} {
			if err := registerCollector(registry, c); err != nil {
				metricsErr = err
				return
			}
		}
	})
	if metricsErr != nil {
		return nil, metricsErr
	}
	if err := metrics.Register(registry); err != nil {
		return nil, err
	}
	if cfg.Pool != nil {
		if err := registerCollector(registry, newPoolCollector(cfg.Pool)); err != nil {
			return nil, err
		}
	}

	if g, ok := registry.(prometheus.Gatherer); ok && registry != prometheus.DefaultRegisterer {
		return promhttp.HandlerFor(g, promhttp.HandlerOpts{}), nil
	}
	return promhttp.Handler(), nil
}

// WithMetrics records request count, latency and in-flight gauge. The path
// label is the chi route pattern so ids do not explode cardinality.
func WithMetrics() Middleware {
	return func(next http.Handler) http.Handler {
		if httpRequestsTotal == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			method := strings.ToUpper(r.Method)
			httpInflight.WithLabelValues(method).Inc()
			start := time.Now()

			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			defer func() {
				httpInflight.WithLabelValues(method).Dec()
				path := routeLabel(r)
				httpRequestDuration.WithLabelValues(method, path).Observe(time.Since(start).Seconds())
				httpRequestsTotal.WithLabelValues(method, path, strconv.Itoa(rec.status)).Inc()
			}()
			next.ServeHTTP(rec, r)
		})
	}
}

func routeLabel(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if p := rctx.RoutePattern(); p != "" {
			return p
		}
	}
	return "unmatched"
}

func registerCollector(reg prometheus.Registerer, c prometheus.Collector) error {
	if err := reg.Register(c); err != nil {
		if _, ok := err.(prometheus.AlreadyRegisteredError); ok {
			return nil
		}
		return err
	}
	return nil
}

// poolCollector exposes pgxpool stats.
type poolCollector struct {
	pool func() *pgxpool.Pool

	acquiredDesc *prometheus.Desc
	idleDesc     *prometheus.Desc
	totalDesc    *prometheus.Desc
}

func newPoolCollector(pool func() *pgxpool.Pool) *poolCollector {
	return &poolCollector{
		pool:         pool,
		acquiredDesc: prometheus.NewDesc("pg_pool_acquired", "Acquired connections", nil, nil),
		idleDesc:     prometheus.NewDesc("pg_pool_idle", "Idle connections", nil, nil),
		totalDesc:    prometheus.NewDesc("pg_pool_total", "Total connections", nil, nil),
	}
}

func (c *poolCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.acquiredDesc
	ch <- c.idleDesc
	ch <- c.totalDesc
}

func (c *poolCollector) Collect(ch chan<- prometheus.Metric) {
	pool := c.pool()
	if pool == nil {
		return
	}
	stat := pool.Stat()
	ch <- prometheus.MustNewConstMetric(c.acquiredDesc, prometheus.GaugeValue, float64(stat.AcquiredConns()))
	ch <- prometheus.MustNewConstMetric(c.idleDesc, prometheus.GaugeValue, float64(stat.IdleConns()))
	ch <- prometheus.MustNewConstMetric(c.totalDesc, prometheus.GaugeValue, float64(stat.TotalConns()))
}
