package middlewares

import (
	"fmt"
	"math"
	"net"
	"net/http"
	"strconv"
	"strings"

	"github.com/MixxMasterMike123/b8s-reseller-app-sub004/internal/http/errors"
	"github.com/MixxMasterMike123/b8s-reseller-app-sub004/internal/observability/logger"
	"github.com/MixxMasterMike123/b8s-reseller-app-sub004/internal/rate"
)

// ParseTrustedProxies acepta CIDRs o IPs sueltas ("10.0.0.0/8", "127.0.0.1").
func ParseTrustedProxies(list []string) ([]*net.IPNet, error) {
	var out []*net.IPNet
	for _, raw := range list {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		if !strings.Contains(raw, "/") {
			ip := net.ParseIP(raw)
			if ip == nil {
				return nil, fmt.Errorf("trusted proxy %q: invalid IP", raw)
			}
			bits := 8 * net.IPv6len
			if ip4 := ip.To4(); ip4 != nil {
				ip, bits = ip4, 8*net.IPv4len
			}
			out = append(out, &net.IPNet{IP: ip, Mask: net.CIDRMask(bits, bits)})
			continue
		}
		_, n, err := net.ParseCIDR(raw)
		if err != nil {
			return nil, fmt.Errorf("trusted proxy %q: %w", raw, err)
		}
		out = append(out, n)
	}
	return out, nil
}

func trustedIP(ip string, trusted []*net.IPNet) bool {
	parsed := net.ParseIP(ip)
	if parsed == nil {
		return false
	}
	for _, n := range trusted {
		if n.Contains(parsed) {
			return true
		}
	}
	return false
}

// clientIP es el peer TCP. X-Forwarded-For sólo cuenta cuando el peer es un
// proxy de confianza; entonces gana el hop más a la derecha que no sea proxy.
func clientIP(r *http.Request, trusted []*net.IPNet) string {
	peer, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		peer = r.RemoteAddr
	}
	if !trustedIP(peer, trusted) {
		return peer
	}
	hops := strings.Split(r.Header.Get("X-Forwarded-For"), ",")
	for i := len(hops) - 1; i >= 0; i-- {
		hop := strings.TrimSpace(hops[i])
		if hop == "" {
			continue
		}
		if !trustedIP(hop, trusted) {
			return hop
		}
		peer = hop
	}
	return peer
}

// rateKey is the authenticated subject, or the client IP when auth is off.
func rateKey(r *http.Request, trusted []*net.IPNet) string {
	if sub := GetSubject(r.Context()); sub != "" {
		return "sub:" + sub
	}
	return "ip:" + clientIP(r, trusted)
}

// WithRateLimit throttles callers. A nil limiter disables it; limiter errors
// let the request through. trusted lists the proxies whose X-Forwarded-For
// is honored.
func WithRateLimit(l rate.Limiter, trusted ...*net.IPNet) Middleware {
	if l == nil {
		return func(next http.Handler) http.Handler { return next }
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := rateKey(r, trusted)
			res, err := l.Allow(r.Context(), key)
			if err != nil {
				logger.From(r.Context()).Warn("rate limiter unavailable", logger.Err(err))
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Set("X-RateLimit-Remaining", strconv.FormatInt(res.Remaining, 10))
			if !res.Allowed {
				secs := int(math.Ceil(res.RetryAfter.Seconds()))
				if secs < 1 {
					secs = 1
				}
				w.Header().Set("Retry-After", strconv.Itoa(secs))
				logger.From(r.Context()).Info("rate limited", logger.String("key", key), logger.Int("hits", int(res.Hits)))
				errors.WriteError(w, errors.ErrRateLimited)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
