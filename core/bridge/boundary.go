package bridge

import (
	"context"
	"strings"

	"asset-bridge/core/env"

	"go.uber.org/zap"
)

// Status codes returned across the host boundary.
const (
	StatusOK    uint32 = 0
	ErrorReturn uint32 = 0xffffffff
)

// Boundary is the flat entry surface used by host binding glue. Each host
// caller gets its own Boundary carrying its identity and environment, so no
// environment is looked up implicitly. Failures are reported as sentinel
// values and logged; errors and panics never cross the boundary.
type Boundary struct {
	reg *Registry
	ctx context.Context

	// Publish, when set, receives the host-visible scene after every
	// successful Load.
	Publish func(h uint64, s *Scene)
}

// Boundary returns the entry surface for one host caller.
func (r *Registry) Boundary(caller env.CallerID, e env.Environment) *Boundary {
	return &Boundary{
		reg: r,
		ctx: env.WithCaller(context.Background(), env.CallerID(strings.Clone(string(caller))), e),
	}
}

func (b *Boundary) guard(op string, h *uint64, status *uint32) {
	if p := recover(); p != nil {
		b.reg.hub.Logger().Error("Panic at host boundary", zap.String("op", op), zap.Any("panic", p), zap.Stack("stack"))
		if h != nil {
			*h = uint64(InvalidHandle)
		}
		if status != nil {
			*status = ErrorReturn
		}
	}
}

func statusOf(err error) uint32 {
	if err != nil {
		return ErrorReturn
	}
	return StatusOK
}

// InitContext creates a session. It returns 2^64-1 on failure.
func (b *Boundary) InitContext() (h uint64) {
	defer b.guard("InitContext", &h, nil)
	handle, _ := b.reg.InitContext(b.ctx)
	return uint64(handle)
}

// FreeContext destroys a session.
func (b *Boundary) FreeContext(h uint64) (status uint32) {
	defer b.guard("FreeContext", nil, &status)
	return statusOf(b.reg.FreeContext(b.ctx, Handle(h)))
}

// Load imports path into the session and publishes the resulting scene.
func (b *Boundary) Load(h uint64, path string, flags uint32) (status uint32) {
	defer b.guard("Load", nil, &status)
	if err := b.reg.Load(b.ctx, Handle(h), strings.Clone(path), flags); err != nil {
		return ErrorReturn
	}
	if b.Publish != nil {
		scene, err := b.reg.Scene(Handle(h))
		if err != nil {
			return ErrorReturn
		}
		b.Publish(h, scene)
	}
	return StatusOK
}

// SetPropertyInt stores an integer property.
func (b *Boundary) SetPropertyInt(h uint64, name string, value int32) (status uint32) {
	defer b.guard("SetPropertyInt", nil, &status)
	return statusOf(b.reg.SetPropertyInt(Handle(h), strings.Clone(name), value))
}

// SetPropertyFloat stores a float property.
func (b *Boundary) SetPropertyFloat(h uint64, name string, value float32) (status uint32) {
	defer b.guard("SetPropertyFloat", nil, &status)
	return statusOf(b.reg.SetPropertyFloat(Handle(h), strings.Clone(name), value))
}

// SetPropertyString stores a string property.
func (b *Boundary) SetPropertyString(h uint64, name, value string) (status uint32) {
	defer b.guard("SetPropertyString", nil, &status)
	return statusOf(b.reg.SetPropertyString(Handle(h), strings.Clone(name), strings.Clone(value)))
}
