// Package middleware groups the HTTP middleware of the Fiber application.
//
//   - auth: API key validation protecting every route except the docs.
//   - rayid: assigns each request a ray id, stored in locals under "ray_id"
//     and echoed in the X-Ray-ID response header.
package middleware
