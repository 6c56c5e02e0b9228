package middleware

import (
	"net/http"
	"slices"
)

// Middleware wraps an http.Handler. The server applies its stack around the
// root mux so every route, Gin or not, passes through it.
type Middleware func(http.Handler) http.Handler

// Chain composes middleware. The first entry is the outermost.
func Chain(middlewares ...Middleware) Middleware {
	return func(h http.Handler) http.Handler {
		for _, mw := range slices.Backward(middlewares) {
			if mw != nil {
				h = mw(h)
			}
		}
		return h
	}
}
