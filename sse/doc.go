// Package sse streams run events to browsers over Server-Sent Events.
//
// A Hub owns the connected clients. Each client ID has the shape
// "run:<run id>:<connection uuid>", so a broadcast to "run:<id>:*" reaches
// every viewer of one run and "run:*" reaches every viewer.
//
//	hub := sse.NewHub()
//	go hub.Run()
//	hub.Broadcast("run:42:*", "tick", payload)
//
// ServeSSE adapts a single HTTP request into a hub client.
package sse
