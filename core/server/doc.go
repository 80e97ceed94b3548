// Package server holds the HTTP server configuration.
//
// The main entry point starts the server; this package only defines the
// settings it reads: the listen port, the API key protecting every route and
// the request body cap.
package server
