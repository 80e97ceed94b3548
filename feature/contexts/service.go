package contexts

import (
	"context"
	"errors"
	"fmt"

	"asset-bridge/core/bridge"
	"asset-bridge/core/env"
	"asset-bridge/core/history"
	"asset-bridge/core/utils"

	"go.uber.org/zap"
)

// ErrHistoryDisabled is returned when no history store is configured.
var ErrHistoryDisabled = errors.New("import history is disabled")

// Service exposes the session registry to HTTP callers.
type Service struct {
	registry     *bridge.Registry
	history      *history.Store
	logger       *zap.Logger
	historyLimit int
}

// NewService creates a new contexts service. store may be nil.
func NewService(registry *bridge.Registry, store *history.Store, logger *zap.Logger, historyLimit int) *Service {
	return &Service{
		registry:     registry,
		history:      store,
		logger:       logger,
		historyLimit: historyLimit,
	}
}

// Overview lists live sessions and registry counters.
type Overview struct {
	Handles []string     `json:"handles"`
	Stats   bridge.Stats `json:"stats"`
}

func callerContext(ctx context.Context, caller string) context.Context {
	return env.WithCaller(ctx, env.CallerID(caller), env.Static("http:"+caller))
}

// Create opens a session for caller.
func (s *Service) Create(ctx context.Context, caller string) (bridge.Handle, error) {
	return s.registry.InitContext(callerContext(ctx, caller))
}

// Free destroys the session named by h. With an empty caller the binding
// taken at creation is released.
func (s *Service) Free(ctx context.Context, caller string, h bridge.Handle) error {
	if caller != "" {
		ctx = callerContext(ctx, caller)
	}
	return s.registry.FreeContext(ctx, h)
}

// List returns every live handle with the registry counters.
func (s *Service) List() Overview {
	handles := s.registry.Handles()
	out := Overview{Handles: make([]string, 0, len(handles)), Stats: s.registry.Stats()}
	for _, h := range handles {
		out.Handles = append(out.Handles, h.String())
	}
	return out
}

// SetProperty coerces value to typ and stores it for the next load on h.
func (s *Service) SetProperty(h bridge.Handle, name, typ string, value any) (bridge.PropertyValue, error) {
	pt, err := bridge.ParsePropertyType(typ)
	if err != nil {
		return bridge.PropertyValue{}, fmt.Errorf("%w: %w", ErrBadRequest, err)
	}

	var v bridge.PropertyValue
	switch pt {
	case bridge.Integer:
		n, err := utils.ToInt32(value)
		if err != nil {
			return v, fmt.Errorf("%w: %w", ErrBadRequest, err)
		}
		v = bridge.IntProperty(name, n)
	case bridge.Float:
		f, err := utils.ToFloat32(value)
		if err != nil {
			return v, fmt.Errorf("%w: %w", ErrBadRequest, err)
		}
		v = bridge.FloatProperty(name, f)
	default:
		v = bridge.StringProperty(name, utils.ToString(value))
	}

	if err := s.registry.SetProperty(h, v); err != nil {
		return bridge.PropertyValue{}, err
	}
	return v, nil
}

// Load imports path into the session named by h and returns the new scene.
func (s *Service) Load(ctx context.Context, h bridge.Handle, path string, flags uint32) (bridge.SceneSummary, error) {
	if path == "" {
		return bridge.SceneSummary{}, fmt.Errorf("%w: path is required", ErrBadRequest)
	}
	if err := s.registry.Load(ctx, h, path, flags); err != nil {
		return bridge.SceneSummary{}, err
	}
	scene, err := s.registry.Scene(h)
	if err != nil {
		return bridge.SceneSummary{}, err
	}
	return scene.Summary(), nil
}

// Scene returns the current scene of h.
func (s *Service) Scene(h bridge.Handle) (*bridge.Scene, error) {
	return s.registry.Scene(h)
}

// History returns recent import records.
func (s *Service) History(ctx context.Context, limit int) ([]history.ImportRecord, error) {
	if s.history == nil {
		return nil, ErrHistoryDisabled
	}
	if limit <= 0 {
		limit = s.historyLimit
	}
	return s.history.Recent(ctx, limit)
}

// SessionHistory returns the import records of one handle, oldest first.
// Records outlive the session they describe.
func (s *Service) SessionHistory(ctx context.Context, h bridge.Handle) ([]history.ImportRecord, error) {
	if s.history == nil {
		return nil, ErrHistoryDisabled
	}
	return s.history.ForHandle(ctx, h)
}
