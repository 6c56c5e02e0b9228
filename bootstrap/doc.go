// Package bootstrap runs the timer binary's lifecycle: typed config, component
// start in registration order, startup hooks, a ready check, and graceful
// shutdown on SIGINT or SIGTERM.
//
//	app, err := bootstrap.NewApp(&cfg)
//	app.RegisterComponent(hub)
//	app.RegisterComponent(runs)
//	app.OnReady(func(ctx context.Context) error { ... })
//	err = app.Run(ctx)
//
// Run blocks until a signal arrives. RunTask runs a finite task, such as a
// single terminal run, with the same startup and shutdown around it.
package bootstrap
