// Package server is the HTTP front of the serve command: a Gin engine behind
// an h2c handler, wrapped in the middleware stack from server/middleware.
//
// The stack runs around the root mux in this order: recovery, request ID,
// CORS, body size limit and request logging. Gin adds the Observe middleware
// so spans and request metrics carry the matched route.
//
// Built-in endpoints (server/endpoint):
//
//   - /health: component health from the registry
//   - /info: service and build version
//   - /metrics: process memory and goroutine counts
//
// Application routes are mounted through Engine.
package server
