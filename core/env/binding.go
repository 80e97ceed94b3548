package env

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// ErrBindFailed is returned when an environment cannot be attached.
var ErrBindFailed = errors.New("environment bind failed")

// CallerID identifies one logical caller of the bridge.
type CallerID string

// Environment is the host runtime's callback environment for one caller.
type Environment interface {
	// Name identifies the environment in diagnostics.
	Name() string
}

// Static is an Environment identified only by name.
type Static string

// Name implements Environment.
func (s Static) Name() string { return string(s) }

// Binding maps callers to their most recently attached environment.
type Binding struct {
	mu   sync.RWMutex
	envs map[CallerID]Environment
}

// NewBinding creates an empty binding table.
func NewBinding() *Binding {
	return &Binding{envs: make(map[CallerID]Environment)}
}

// Attach stores e as the environment for caller, replacing any previous one.
func (b *Binding) Attach(caller CallerID, e Environment) error {
	if caller == "" {
		return fmt.Errorf("%w: empty caller id", ErrBindFailed)
	}
	if e == nil {
		return fmt.Errorf("%w: nil environment for caller %s", ErrBindFailed, caller)
	}

	b.mu.Lock()
	b.envs[caller] = e
	b.mu.Unlock()
	return nil
}

// Detach clears the environment for caller.
func (b *Binding) Detach(caller CallerID) {
	b.mu.Lock()
	delete(b.envs, caller)
	b.mu.Unlock()
}

// Current returns the environment attached for caller.
func (b *Binding) Current(caller CallerID) (Environment, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	e, ok := b.envs[caller]
	return e, ok
}

// Len returns the number of attached callers.
func (b *Binding) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.envs)
}

type callerKey struct{}

type caller struct {
	id  CallerID
	env Environment
}

// WithCaller returns a context carrying the caller identity and environment.
func WithCaller(ctx context.Context, id CallerID, e Environment) context.Context {
	return context.WithValue(ctx, callerKey{}, caller{id: id, env: e})
}

// FromContext extracts the caller identity and environment set by WithCaller.
func FromContext(ctx context.Context) (CallerID, Environment, bool) {
	c, ok := ctx.Value(callerKey{}).(caller)
	if !ok {
		return "", nil, false
	}
	return c.id, c.env, true
}
