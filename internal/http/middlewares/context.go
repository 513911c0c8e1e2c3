package middlewares

import "context"

type ctxKey int

const (
	requestIDKey ctxKey = iota
	subjectKey
)

func setRequestID(ctx context.Context, rid string) context.Context {
	return context.WithValue(ctx, requestIDKey, rid)
}

// GetRequestID devuelve el id puesto por WithRequestID, o "".
func GetRequestID(ctx context.Context) string {
	v, _ := ctx.Value(requestIDKey).(string)
	return v
}

func setSubject(ctx context.Context, sub string) context.Context {
	return context.WithValue(ctx, subjectKey, sub)
}

// GetSubject devuelve el claim "sub" del caller autenticado, o "".
func GetSubject(ctx context.Context) string {
	v, _ := ctx.Value(subjectKey).(string)
	return v
}
