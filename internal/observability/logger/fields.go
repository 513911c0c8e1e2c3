package logger

import (
	"strings"
	"time"

	"go.uber.org/zap"
)

// =================================================================================
// HTTP
// =================================================================================

func RequestID(v string) zap.Field { return zap.String("request_id", v) }
func Method(v string) zap.Field    { return zap.String("method", v) }
func Path(v string) zap.Field      { return zap.String("path", v) }
func Status(v int) zap.Field       { return zap.Int("status", v) }

// Duration records elapsed time.
func Duration(v time.Duration) zap.Field { return zap.Duration("duration", v) }

// =================================================================================
// NOTIFICATIONS
// =================================================================================

func EventType(v string) zap.Field    { return zap.String("event_type", v) }
func AccountClass(v string) zap.Field { return zap.String("account_class", v) }
func Language(v string) zap.Field     { return zap.String("language", v) }
func MessageID(v string) zap.Field    { return zap.String("message_id", v) }
func ErrorKind(v string) zap.Field    { return zap.String("error_kind", v) }
func Source(v string) zap.Field       { return zap.String("source", v) }
func Route(v string) zap.Field        { return zap.String("route", v) }

// Recipient loguea una dirección, enmascarada cuando el logger se inicializó para prod.
func Recipient(v string) zap.Field {
	mu.RLock()
	mask := maskPII
	mu.RUnlock()
	if mask {
		v = MaskEmail(v)
	}
	return zap.String("recipient", v)
}

// MaskEmail conserva la primera runa de la parte local y el dominio completo.
func MaskEmail(addr string) string {
	at := strings.LastIndex(addr, "@")
	if at <= 0 {
		return "***"
	}
	local := []rune(addr[:at])
	return string(local[0]) + "***" + addr[at:]
}

// =================================================================================
// SYSTEM
// =================================================================================

func Component(v string) zap.Field { return zap.String("component", v) }
func Op(v string) zap.Field        { return zap.String("op", v) }
func Err(err error) zap.Field      { return zap.Error(err) }

// Layer marca código que loguea con el logger del caller, que ya trae
// component.
func Layer(v string) zap.Field { return zap.String("layer", v) }

func String(key, v string) zap.Field    { return zap.String(key, v) }
func Int(key string, v int) zap.Field   { return zap.Int(key, v) }
func Bool(key string, v bool) zap.Field { return zap.Bool(key, v) }
func Any(key string, v any) zap.Field   { return zap.Any(key, v) }
