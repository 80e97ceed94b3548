package bridge

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"asset-bridge/core/engine"
	"asset-bridge/core/env"
	"asset-bridge/core/logger"

	"github.com/eapache/queue"
	"go.uber.org/zap"
)

// Options configures a Registry.
type Options struct {
	// Engine creates one importer per session. Required.
	Engine engine.Factory
	// Hub is the shared log sink. Required.
	Hub *logger.Hub
	// Binding tracks caller environments. A fresh table is used when nil.
	Binding *env.Binding
	// Resolver maps load paths to local files. Paths are used as-is when nil.
	Resolver Resolver
	// Recorder receives load outcomes. Optional.
	Recorder Recorder
	// MaxSessions caps live sessions; zero means unlimited.
	MaxSessions int
	// MaxSceneVertices caps the vertices of a published scene; zero means
	// unlimited.
	MaxSceneVertices int
}

type slot struct {
	gen     uint32
	session *Session
}

// Stats is a consistent snapshot of registry state.
type Stats struct {
	Active    int  `json:"active"`
	HubRefs   int  `json:"hub_refs"`
	HubActive bool `json:"hub_active"`
	Bindings  int  `json:"bindings"`
}

// Registry owns every live import session and the handles naming them.
// Handles are validated on every call; see Trusted for the unchecked path.
type Registry struct {
	mu    sync.Mutex
	slots []slot
	free  *queue.Queue
	live  int

	factory     engine.Factory
	hub         *logger.Hub
	binding     *env.Binding
	resolver    Resolver
	recorder    Recorder
	maxSessions int
	maxVertices int
}

// NewRegistry creates an empty registry.
func NewRegistry(opts Options) (*Registry, error) {
	if opts.Engine == nil {
		return nil, errors.New("registry requires an engine factory")
	}
	if opts.Hub == nil {
		return nil, errors.New("registry requires a log hub")
	}
	if opts.Binding == nil {
		opts.Binding = env.NewBinding()
	}
	if opts.Resolver == nil {
		opts.Resolver = passthrough{}
	}
	return &Registry{
		free:        queue.New(),
		factory:     opts.Engine,
		hub:         opts.Hub,
		binding:     opts.Binding,
		resolver:    opts.Resolver,
		recorder:    opts.Recorder,
		maxSessions: opts.MaxSessions,
		maxVertices: opts.MaxSceneVertices,
	}, nil
}

// InitContext creates a session for the caller carried by ctx and returns its
// handle. On failure it returns InvalidHandle and leaves nothing behind.
func (r *Registry) InitContext(ctx context.Context) (Handle, error) {
	caller, e, ok := env.FromContext(ctx)
	if !ok {
		err := fmt.Errorf("%w: no caller in context", ErrEnvironmentBind)
		r.hub.Logger().Error("Unable to attach environment", zap.Error(err))
		return InvalidHandle, err
	}

	prev, hadPrev := r.binding.Current(caller)
	if err := r.binding.Attach(caller, e); err != nil {
		err = fmt.Errorf("%w: %w", ErrEnvironmentBind, err)
		r.hub.Logger().Error("Unable to attach environment", zap.String("caller", string(caller)), zap.Error(err))
		return InvalidHandle, err
	}
	rollbackBinding := func() {
		if hadPrev {
			_ = r.binding.Attach(caller, prev)
		} else {
			r.binding.Detach(caller)
		}
	}

	imp, err := r.factory.NewImporter()
	if err != nil {
		rollbackBinding()
		err = fmt.Errorf("%w: importer: %w", ErrAllocationFailure, err)
		r.hub.Logger().Error("Unable to create importer", zap.String("caller", string(caller)), zap.Error(err))
		return InvalidHandle, err
	}

	h, err := r.insert(caller, imp)
	if err != nil {
		_ = imp.Close()
		rollbackBinding()
		r.hub.Logger().Error("Unable to create session", zap.String("caller", string(caller)), zap.Error(err))
		return InvalidHandle, err
	}
	return h, nil
}

// insert takes a hub reference and stores a new session in a free slot. Both
// happen under the registry lock so hub references always match live sessions.
func (r *Registry) insert(caller env.CallerID, imp engine.Importer) (Handle, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.maxSessions > 0 && r.live >= r.maxSessions {
		return InvalidHandle, fmt.Errorf("%w: session limit %d reached", ErrAllocationFailure, r.maxSessions)
	}

	var idx uint32
	if r.free.Length() > 0 {
		idx = r.free.Remove().(uint32)
	} else {
		if uint64(len(r.slots)) >= maxGeneration {
			return InvalidHandle, fmt.Errorf("%w: slot table full", ErrAllocationFailure)
		}
		idx = uint32(len(r.slots))
		r.slots = append(r.slots, slot{gen: 1})
	}

	sink, err := r.hub.Acquire()
	if err != nil {
		r.free.Add(idx)
		return InvalidHandle, fmt.Errorf("%w: %w", ErrAllocationFailure, err)
	}

	h := makeHandle(r.slots[idx].gen, idx)
	r.slots[idx].session = newSession(h, caller, imp, sink)
	r.live++
	sink.Debug("Context created", zap.Stringer("handle", h), zap.String("caller", string(caller)))
	return h, nil
}

// FreeContext destroys the session named by h and detaches the calling
// environment. An invalid handle reports ErrInvalidHandle and changes nothing.
func (r *Registry) FreeContext(ctx context.Context, h Handle) error {
	r.mu.Lock()
	s, ok := r.lookupLocked(h)
	if !ok {
		r.mu.Unlock()
		return r.invalid(h)
	}

	idx := h.slot()
	s.close()
	r.slots[idx].session = nil
	r.slots[idx].gen = nextGeneration(r.slots[idx].gen)
	r.free.Add(idx)
	r.live--
	s.log.Debug("Context freed")
	r.hub.Release()
	r.mu.Unlock()

	caller := s.caller
	if id, _, ok := env.FromContext(ctx); ok {
		caller = id
	}
	r.binding.Detach(caller)
	return nil
}

// Validate reports whether h names a live session. A miss is logged.
func (r *Registry) Validate(h Handle) bool {
	r.mu.Lock()
	_, ok := r.lookupLocked(h)
	r.mu.Unlock()
	if !ok {
		_ = r.invalid(h)
	}
	return ok
}

// Load imports path into the session named by h. On failure the session's
// previous scene is kept. Load blocks for the whole import and must not race
// with FreeContext on the same handle.
func (r *Registry) Load(ctx context.Context, h Handle, path string, flags uint32) error {
	s, err := r.resolve(h)
	if err != nil {
		return err
	}
	return r.load(ctx, s, path, flags)
}

// SetProperty stores v for the next load on h.
func (r *Registry) SetProperty(h Handle, v PropertyValue) error {
	s, err := r.resolve(h)
	if err != nil {
		return err
	}
	s.setProperty(v)
	return nil
}

// SetPropertyInt stores an integer property for the next load on h.
func (r *Registry) SetPropertyInt(h Handle, name string, value int32) error {
	return r.SetProperty(h, IntProperty(name, value))
}

// SetPropertyFloat stores a float property for the next load on h.
func (r *Registry) SetPropertyFloat(h Handle, name string, value float32) error {
	return r.SetProperty(h, FloatProperty(name, value))
}

// SetPropertyString stores a string property for the next load on h.
func (r *Registry) SetPropertyString(h Handle, name, value string) error {
	return r.SetProperty(h, StringProperty(name, value))
}

// Scene returns the scene published by the last successful load on h.
func (r *Registry) Scene(h Handle) (*Scene, error) {
	s, err := r.resolve(h)
	if err != nil {
		return nil, err
	}
	scene, err := s.Scene()
	if err != nil {
		s.log.Error("No asset loaded at the moment")
	}
	return scene, err
}

// PendingProperties returns the properties waiting for the next load on h.
func (r *Registry) PendingProperties(h Handle) ([]PropertyValue, error) {
	s, err := r.resolve(h)
	if err != nil {
		return nil, err
	}
	return s.props.Pending(), nil
}

// Active returns the number of live sessions.
func (r *Registry) Active() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.live
}

// Handles lists the live handles in slot order.
func (r *Registry) Handles() []Handle {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Handle, 0, r.live)
	for idx, sl := range r.slots {
		if sl.session != nil {
			out = append(out, makeHandle(sl.gen, uint32(idx)))
		}
	}
	return out
}

// Stats returns a snapshot taken under the registry lock.
func (r *Registry) Stats() Stats {
	r.mu.Lock()
	defer r.mu.Unlock()
	return Stats{
		Active:    r.live,
		HubRefs:   r.hub.Refs(),
		HubActive: r.hub.Active(),
		Bindings:  r.binding.Len(),
	}
}

// Close frees every live session.
func (r *Registry) Close(ctx context.Context) {
	for _, h := range r.Handles() {
		_ = r.FreeContext(ctx, h)
	}
}

// Trusted returns the unchecked entry points.
func (r *Registry) Trusted() Trusted {
	return Trusted{r: r}
}

func (r *Registry) lookupLocked(h Handle) (*Session, bool) {
	if h == InvalidHandle {
		return nil, false
	}
	idx := h.slot()
	if int(idx) >= len(r.slots) {
		return nil, false
	}
	sl := r.slots[idx]
	if sl.session == nil || sl.gen != h.generation() {
		return nil, false
	}
	return sl.session, true
}

func (r *Registry) resolve(h Handle) (*Session, error) {
	r.mu.Lock()
	s, ok := r.lookupLocked(h)
	r.mu.Unlock()
	if !ok {
		return nil, r.invalid(h)
	}
	return s, nil
}

func (r *Registry) invalid(h Handle) error {
	r.hub.Logger().Error("Invalid context", zap.Stringer("handle", h))
	return fmt.Errorf("%w: %s", ErrInvalidHandle, h)
}

func (r *Registry) load(ctx context.Context, s *Session, path string, flags uint32) error {
	report := s.load(ctx, r.resolver, path, flags, r.maxVertices)
	if r.recorder != nil {
		if err := r.recorder.RecordLoad(ctx, report); err != nil {
			s.log.Warn("Failed to record import", zap.Error(err))
		}
	}
	return report.Err
}

// Trusted skips generation checks for callers that already proved a handle
// is live, for example right after InitContext. It still refuses empty slots
// instead of crashing.
type Trusted struct {
	r *Registry
}

func (t Trusted) session(h Handle) (*Session, error) {
	t.r.mu.Lock()
	defer t.r.mu.Unlock()
	idx := h.slot()
	if int(idx) < len(t.r.slots) {
		if s := t.r.slots[idx].session; s != nil {
			return s, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrInvalidHandle, h)
}

// Load is Registry.Load without validation.
func (t Trusted) Load(ctx context.Context, h Handle, path string, flags uint32) error {
	s, err := t.session(h)
	if err != nil {
		return err
	}
	return t.r.load(ctx, s, path, flags)
}

// SetProperty is Registry.SetProperty without validation.
func (t Trusted) SetProperty(h Handle, v PropertyValue) error {
	s, err := t.session(h)
	if err != nil {
		return err
	}
	s.setProperty(v)
	return nil
}

// Scene is Registry.Scene without validation.
func (t Trusted) Scene(h Handle) (*Scene, error) {
	s, err := t.session(h)
	if err != nil {
		return nil, err
	}
	return s.Scene()
}
