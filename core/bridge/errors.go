package bridge

import "errors"

var (
	// ErrInvalidHandle is returned when a handle does not name a live session.
	ErrInvalidHandle = errors.New("invalid handle")
	// ErrNoActiveScene is returned when an operation needs a loaded scene.
	ErrNoActiveScene = errors.New("no asset loaded")
	// ErrImportFailure is returned when the engine cannot read the asset.
	ErrImportFailure = errors.New("unable to load asset")
	// ErrAllocationFailure is returned when a session or its host-visible
	// scene cannot be constructed.
	ErrAllocationFailure = errors.New("unable to allocate")
	// ErrEnvironmentBind is returned when the caller's environment cannot be
	// attached.
	ErrEnvironmentBind = errors.New("unable to bind environment")
)
