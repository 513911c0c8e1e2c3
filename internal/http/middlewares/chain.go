// Package middlewares holds the http.Handler decorators shared by every
// route: request ids, structured logging, panic recovery, metrics and
// bearer-token auth.
package middlewares

import "net/http"

// Middleware es un decorador de http.Handler
type Middleware func(http.Handler) http.Handler

// Chain aplica middlewares en orden de izquierda a derecha.
// Chain(h, A, B) ejecuta: A -> B -> h
// Es decir, A es el primero en interceptar el request y el último en ver la respuesta.
func Chain(h http.Handler, mws ...Middleware) http.Handler {
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	return h
}
