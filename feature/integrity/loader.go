package integrity

import (
	"asset-bridge/core/storage"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Feature implements loader.Feature for integrity checks.
type Feature struct {
	service *Service
}

// NewFeature creates the integrity feature.
func NewFeature(client storage.Client, bucket string, logger *zap.Logger, db *gorm.DB, supported []string) *Feature {
	return &Feature{service: NewService(client, bucket, logger, db, supported)}
}

// Name returns the feature name.
func (f *Feature) Name() string {
	return "integrity"
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
