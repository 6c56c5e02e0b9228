// Package component manages the start, stop and health of the long-lived
// parts of the serve command: the SSE hub, the run manager and the HTTP
// server.
//
// Components start in registration order and stop in reverse, so register
// dependencies first:
//
//	reg := component.NewRegistry()
//	reg.Register(hubComponent)
//	reg.Register(runManager)
//	reg.Register(httpServer)
//	if err := reg.StartAll(ctx); err != nil { ... }
//	defer reg.StopAll(context.Background())
package component
