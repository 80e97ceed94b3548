package integrity

import (
	"context"

	"asset-bridge/core/storage"
	"asset-bridge/feature/integrity/checks"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Service handles integrity checks.
type Service struct {
	client    storage.Client
	bucket    string
	logger    *zap.Logger
	db        *gorm.DB
	supported []string
}

// NewService creates a new integrity service. db may be nil; supported lists
// the model extensions the engine can import.
func NewService(client storage.Client, bucket string, logger *zap.Logger, db *gorm.DB, supported []string) *Service {
	return &Service{
		client:    client,
		bucket:    bucket,
		logger:    logger,
		db:        db,
		supported: supported,
	}
}

// CheckStructure returns a list of missing folders.
func (s *Service) CheckStructure(ctx context.Context) ([]string, error) {
	return checks.CheckStructure(ctx, s.client, s.bucket)
}

// FixStructure creates the missing folders.
func (s *Service) FixStructure(ctx context.Context, missing []string) error {
	return checks.FixStructure(ctx, s.client, s.bucket, s.logger, missing)
}

// CheckModels reports stored models the engine cannot import.
func (s *Service) CheckModels(ctx context.Context) (*checks.ModelReport, error) {
	return checks.CheckModels(ctx, s.client, s.bucket, s.supported)
}

// CheckHistory verifies the import history schema.
func (s *Service) CheckHistory() (*checks.HistoryReport, error) {
	return checks.CheckHistorySchema(s.db)
}
