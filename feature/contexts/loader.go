package contexts

import (
	"asset-bridge/core/bridge"
	"asset-bridge/core/history"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Feature implements loader.Feature for import contexts.
type Feature struct {
	service *Service
}

// NewFeature creates the contexts feature. store may be nil.
func NewFeature(registry *bridge.Registry, store *history.Store, logger *zap.Logger, historyLimit int) *Feature {
	return &Feature{service: NewService(registry, store, logger, historyLimit)}
}

// Name returns the feature name.
func (f *Feature) Name() string {
	return "contexts"
}

// IsEnabled returns true.
func (f *Feature) IsEnabled() bool {
	return true
}

// Load registers the routes.
func (f *Feature) Load(app fiber.Router) error {
	NewHandler(f.service).RegisterRoutes(app)
	return nil
}
