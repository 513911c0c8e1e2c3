package middlewares

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/MixxMasterMike123/b8s-reseller-app-sub004/internal/http/errors"
	"github.com/MixxMasterMike123/b8s-reseller-app-sub004/internal/observability/logger"
)

// AuthConfig configures RequireBearer. An empty Secret disables the check.
type AuthConfig struct {
	Secret   string
	Issuer   string
	Audience string
}

// RequireBearer validates "Authorization: Bearer <JWT>" signed with the
// shared HMAC secret. Tokens must carry exp; iss and aud are checked when
// configured. The subject is stored in the context.
func RequireBearer(cfg AuthConfig) Middleware {
	if cfg.Secret == "" {
		return func(next http.Handler) http.Handler { return next }
	}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{"HS256", "HS384", "HS512"}),
		jwt.WithExpirationRequired(),
	}
	if cfg.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(cfg.Issuer))
	}
	if cfg.Audience != "" {
		opts = append(opts, jwt.WithAudience(cfg.Audience))
	}
	parser := jwt.NewParser(opts...)
	key := []byte(cfg.Secret)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ah := strings.TrimSpace(r.Header.Get("Authorization"))
			if len(ah) < 7 || !strings.EqualFold(ah[:7], "bearer ") {
				w.Header().Set("WWW-Authenticate", `Bearer realm="api", error="invalid_token", error_description="missing bearer token"`)
				errors.WriteError(w, errors.ErrTokenMissing)
				return
			}
			raw := strings.TrimSpace(ah[7:])

			var claims jwt.RegisteredClaims
			tok, err := parser.ParseWithClaims(raw, &claims, func(*jwt.Token) (any, error) { return key, nil })
			if err != nil || !tok.Valid {
				logger.From(r.Context()).Debug("bearer token rejected", logger.Err(err))
				w.Header().Set("WWW-Authenticate", `Bearer realm="api", error="invalid_token"`)
				errors.WriteError(w, errors.ErrTokenInvalid)
				return
			}

			next.ServeHTTP(w, r.WithContext(setSubject(r.Context(), claims.Subject)))
		})
	}
}
