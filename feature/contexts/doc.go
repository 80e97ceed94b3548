// Package contexts exposes import sessions over HTTP.
//
// Each route maps onto one registry operation. The host caller is named by
// the X-Caller-ID header and defaults to the request's ray id. A free without
// the header releases the binding of the caller that created the context.
//
// # HTTP Endpoints
//
//   - POST /contexts : InitContext, returns {"handle": "..."}.
//   - GET /contexts : live handles and counters.
//   - DELETE /contexts/:handle : FreeContext.
//   - PUT /contexts/:handle/properties/:name : SetProperty, body {"type", "value"}.
//   - POST /contexts/:handle/load : Load, body {"path", "flags"}.
//   - GET /contexts/:handle/scene : current scene summary (?full=true for all of it).
//   - GET /contexts/history : recent import records when a database is configured.
//   - GET /contexts/:handle/history : records of one handle, oldest first.
//
// Errors map to status codes: 404 invalid handle, 409 no scene, 422 import
// failure, 507 allocation failure, 500 environment bind failure.
package contexts
