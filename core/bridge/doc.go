// Package bridge implements the handle-based session layer between a host
// runtime and the native asset-import engine.
//
// # Sessions and Handles
//
// A Registry owns every live Session. InitContext attaches the caller's
// environment, creates an importer, takes a reference on the shared log Hub
// and returns an opaque Handle. Handles pack a slot index with a generation
// counter, so a freed or stale handle is rejected in O(1) on every call.
// FreeContext reverses all of it. Hub references always equal the number of
// live sessions.
//
// # Load Protocol
//
// Properties written with SetProperty* wait in the session's PropertyChannel
// and are handed to the importer right before the next Load. A successful
// Load copies the native scene into an independent Scene; a failed Load keeps
// the previous scene. Load blocks for the whole import.
//
// # Entry Points
//
//   - Registry: validated, error-returning API.
//   - Registry.Trusted: the same operations without generation checks.
//   - Boundary: flat status-code surface for host binding glue; returns
//     2^64-1 or 0xffffffff on failure and never lets a panic escape.
//
// # Usage
//
//	reg, _ := bridge.NewRegistry(bridge.Options{Engine: obj.NewFactory(), Hub: hub})
//	ctx = env.WithCaller(ctx, "worker-1", env.Static("worker-1"))
//	h, err := reg.InitContext(ctx)
//	_ = reg.SetPropertyFloat(h, "GLOBAL_SCALE", 0.01)
//	_ = reg.Load(ctx, h, "model.obj", engine.FlagTriangulate)
//	scene, _ := reg.Scene(h)
//	_ = reg.FreeContext(ctx, h)
package bridge
