package bridge

import (
	"context"
	"fmt"
	"strings"
	"time"

	"asset-bridge/core/engine"
	"asset-bridge/core/env"

	"go.uber.org/zap"
)

// Resolver turns a load path into a path the engine can open.
type Resolver interface {
	Resolve(ctx context.Context, path string) (string, error)
}

type passthrough struct{}

func (passthrough) Resolve(_ context.Context, path string) (string, error) { return path, nil }

// Session pairs one native importer with its most recent successful scene.
// A session is driven by one caller at a time.
type Session struct {
	handle   Handle
	caller   env.CallerID
	importer engine.Importer
	props    *PropertyChannel
	scene    *Scene
	native   *engine.Scene
	log      *zap.Logger
	loads    int
}

func newSession(h Handle, caller env.CallerID, imp engine.Importer, log *zap.Logger) *Session {
	return &Session{
		handle:   h,
		caller:   caller,
		importer: imp,
		props:    NewPropertyChannel(),
		log:      log.With(zap.Stringer("handle", h), zap.String("caller", string(caller))),
	}
}

// Scene returns the scene of the last successful load.
func (s *Session) Scene() (*Scene, error) {
	if s.scene == nil {
		return nil, fmt.Errorf("%w: handle %s", ErrNoActiveScene, s.handle)
	}
	return s.scene, nil
}

func (s *Session) setProperty(v PropertyValue) {
	s.props.Set(v)
	if cat, ok := s.importer.(engine.Catalog); ok {
		known := cat.KnownProperties()
		for _, k := range known {
			if k == v.Name {
				return
			}
		}
		fields := []zap.Field{zap.String("property", v.Name)}
		if hint := closestProperty(v.Name, known); hint != "" {
			fields = append(fields, zap.String("did_you_mean", hint))
		}
		s.log.Debug("Property not recognised by importer, it will be ignored", fields...)
	}
}

// load runs one import. A failed import or copy leaves the current scene in
// place.
func (s *Session) load(ctx context.Context, resolver Resolver, path string, flags uint32, maxVertices int) LoadReport {
	start := time.Now()
	path = strings.Clone(path)
	report := LoadReport{Handle: s.handle, Caller: s.caller, Path: path, Flags: flags}

	fail := func(msg string, err error) LoadReport {
		s.log.Error(msg, zap.String("path", path), zap.Uint32("flags", flags), zap.Error(err))
		report.Err = err
		report.Duration = time.Since(start)
		return report
	}

	if path == "" {
		return fail("Unable to get path string", fmt.Errorf("%w: empty path", ErrImportFailure))
	}

	local, err := resolver.Resolve(ctx, path)
	if err != nil {
		return fail("Unable to resolve asset", fmt.Errorf("%w: %w", ErrImportFailure, err))
	}

	effective := s.props.Flush(s.importer)

	native, err := s.importer.Import(local, flags)
	if err != nil {
		return fail("Unable to load asset", fmt.Errorf("%w: %w", ErrImportFailure, err))
	}

	scene, err := copyScene(native, maxVertices)
	if err != nil {
		return fail("Unable to allocate output scene", err)
	}
	scene.Source = path
	scene.Properties = effective
	scene.LoadedAt = time.Now()

	s.scene = scene
	s.native = native
	s.loads++

	sum := scene.Summary()
	report.Meshes = sum.Meshes
	report.Vertices = sum.Vertices
	report.Duration = time.Since(start)
	s.log.Info("Asset loaded",
		zap.String("path", path),
		zap.Int("meshes", sum.Meshes),
		zap.Int("vertices", sum.Vertices),
		zap.Duration("duration", report.Duration))
	return report
}

func (s *Session) close() {
	if err := s.importer.Close(); err != nil {
		s.log.Warn("Importer close failed", zap.Error(err))
	}
	s.scene = nil
	s.native = nil
}

// LoadReport describes the outcome of one Load call.
type LoadReport struct {
	Handle   Handle
	Caller   env.CallerID
	Path     string
	Flags    uint32
	Meshes   int
	Vertices int
	Duration time.Duration
	Err      error
}

// Recorder receives every load outcome.
type Recorder interface {
	RecordLoad(ctx context.Context, report LoadReport) error
}
