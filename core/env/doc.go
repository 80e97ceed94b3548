// Package env binds host callback environments to callers.
//
// Native-to-host callbacks such as log forwarding must run with an
// environment the host recognises as belonging to the calling context. A
// Binding keeps the newest environment observed for each caller. Callers are
// identified explicitly through context.Context rather than thread-local
// state, so an environment can never silently migrate between callers.
//
//	ctx = env.WithCaller(ctx, "worker-1", hostEnv)
//	h, err := registry.InitContext(ctx)
package env
