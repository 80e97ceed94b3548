// Package logger provides a structured logging facility based on Zap.
//
// It offers a configured logger instance that supports different environments
// (development vs production) and integrates with the Fiber web framework.
//
// # Hub
//
// Hub is the shared, reference-counted sink used by import sessions. Every
// live session holds one reference; the sink is built on the first reference
// and flushed and dropped when the last one is released. The registry owns the
// hub and injects it into sessions, so there is no package-level logger.
//
//	hub := logger.NewHub(logger.FromConfig(cfg.Log), base)
//	sink, err := hub.Acquire()
//	defer hub.Release()
//
// # Context Awareness
//
// The WithRayID helper extracts the RayID from a Fiber context and attaches it
// to the log entry, so all logs related to a request can be correlated.
//
// # Configuration
//
//   - Level: debug, info, warn, error
//   - Format: json (production) or console (development)
package logger
