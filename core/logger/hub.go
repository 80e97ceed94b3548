package logger

import (
	"fmt"
	"sync"

	"go.uber.org/zap"
)

// Builder constructs the shared sink when the first reference is taken.
type Builder func() (*zap.Logger, error)

// FromConfig returns a Builder that creates the sink with New.
func FromConfig(cfg Config) Builder {
	return func() (*zap.Logger, error) {
		return New(&cfg)
	}
}

// Hub is a reference-counted log sink shared by every live import session.
// The sink exists only while at least one reference is held.
type Hub struct {
	mu       sync.Mutex
	refs     int
	build    Builder
	sink     *zap.Logger
	fallback *zap.Logger
}

// NewHub creates a hub with no references. Messages logged while the hub has
// no sink go to fallback, which may be nil to discard them.
func NewHub(build Builder, fallback *zap.Logger) *Hub {
	if fallback == nil {
		fallback = zap.NewNop()
	}
	return &Hub{build: build, fallback: fallback}
}

// Acquire takes a reference, installing the sink on the first one.
func (h *Hub) Acquire() (*zap.Logger, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.refs == 0 {
		sink, err := h.build()
		if err != nil {
			return nil, fmt.Errorf("failed to build log sink: %w", err)
		}
		h.sink = sink
	}
	h.refs++
	return h.sink, nil
}

// Release drops a reference. The sink is flushed and uninstalled when the
// count returns to zero. Releasing an idle hub is a no-op.
func (h *Hub) Release() {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.refs == 0 {
		return
	}
	h.refs--
	if h.refs == 0 {
		_ = h.sink.Sync()
		h.sink = nil
	}
}

// Refs returns the current reference count.
func (h *Hub) Refs() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.refs
}

// Active reports whether the sink is installed.
func (h *Hub) Active() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.sink != nil
}

// Logger returns the installed sink, or the fallback when idle.
func (h *Hub) Logger() *zap.Logger {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.sink != nil {
		return h.sink
	}
	return h.fallback
}
