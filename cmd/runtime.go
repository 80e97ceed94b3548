package cmd

import (
	"context"
	"fmt"

	"asset-bridge/core/bridge"
	"asset-bridge/core/config"
	"asset-bridge/core/database"
	"asset-bridge/core/engine/obj"
	"asset-bridge/core/env"
	"asset-bridge/core/history"
	"asset-bridge/core/logger"
	"asset-bridge/core/storage"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// runtime is the wiring shared by the commands that open import sessions.
type runtime struct {
	registry *bridge.Registry
	hub      *logger.Hub
	store    storage.Client
	db       *gorm.DB
	history  *history.Store
}

func newRuntime(cfg *config.Config, logg *zap.Logger) (*runtime, error) {
	store, err := storage.NewClient(cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}

	rt := &runtime{
		hub:   logger.NewHub(logger.FromConfig(cfg.Log), logg),
		store: store,
	}

	// History is optional; the bridge runs without it.
	if cfg.Database.Enabled {
		if conn, err := database.Connect(cfg.Database); err != nil {
			logg.Warn("Optional database connection failed", zap.Error(err))
		} else {
			rt.db = conn
			rt.history = history.NewStore(conn)
			if err := rt.history.Migrate(); err != nil {
				logg.Warn("Import history disabled", zap.Error(err))
				rt.history = nil
			}
		}
	}

	opts := bridge.Options{
		Engine:           obj.NewFactory(),
		Hub:              rt.hub,
		Binding:          env.NewBinding(),
		Resolver:         storage.NewFetcher(store, cfg.Storage.CacheDir, logg),
		MaxSessions:      cfg.Bridge.MaxSessions,
		MaxSceneVertices: cfg.Bridge.MaxSceneVertices,
	}
	if rt.history != nil {
		opts.Recorder = rt.history
	}

	rt.registry, err = bridge.NewRegistry(opts)
	if err != nil {
		return nil, err
	}
	return rt, nil
}

// Close frees every live session.
func (rt *runtime) Close(ctx context.Context) {
	rt.registry.Close(ctx)
}
