// Package integrity provides infrastructure health checks for the bridge.
//
// # Checks Provided
//
//   - Storage: the asset bucket has the required folders (materials, models, textures).
//   - Models: every object under models/ has an extension the engine imports.
//   - History: the import_records table has the columns the history store writes.
//
// # HTTP Endpoints
//
//   - GET /integrity : Runs all checks.
//   - GET /integrity/storage : Runs the structure check (supports ?fix=true).
//   - GET /integrity/models : Runs the stored models check.
//   - GET /integrity/history : Runs the history schema check.
package integrity
