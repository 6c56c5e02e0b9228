// Package api serves the timer catalog and live runs over HTTP for a local
// presentation layer. Responses use the {"data": ...} envelope and errors
// use the AppError body with its HTTP status.
//
// Run events reach browsers through the SSE hub. Bridge subscribes to each
// new runner and broadcasts its events to the clients watching that run.
package api
