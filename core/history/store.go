package history

import (
	"context"
	"fmt"
	"time"

	"asset-bridge/core/bridge"

	"gorm.io/gorm"
)

// TableName is the table import records are stored in.
const TableName = "import_records"

// Column widths, in characters.
const (
	callerSize = 255
	pathSize   = 1024
	errorSize  = 1024
)

// ExpectedColumns lists the columns the history check requires.
var ExpectedColumns = []string{
	"id", "handle", "caller", "path", "flags", "success", "error",
	"meshes", "vertices", "duration_ms", "created_at",
}

// ImportRecord is one row of import history.
type ImportRecord struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Handle     string    `gorm:"size:20;index" json:"handle"`
	Caller     string    `gorm:"size:255" json:"caller"`
	Path       string    `gorm:"size:1024" json:"path"`
	Flags      uint32    `json:"flags"`
	Success    bool      `json:"success"`
	Error      string    `gorm:"size:1024" json:"error,omitempty"`
	Meshes     int       `json:"meshes"`
	Vertices   int       `json:"vertices"`
	DurationMS int64     `gorm:"column:duration_ms" json:"duration_ms"`
	CreatedAt  time.Time `json:"created_at"`
}

// TableName implements gorm's tabler interface.
func (ImportRecord) TableName() string { return TableName }

// Store records imports in a database.
type Store struct {
	db *gorm.DB
}

// NewStore creates a store on db.
func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Migrate creates or updates the import_records table.
func (s *Store) Migrate() error {
	if err := s.db.AutoMigrate(&ImportRecord{}); err != nil {
		return fmt.Errorf("failed to migrate import history: %w", err)
	}
	return nil
}

// RecordLoad implements bridge.Recorder.
func (s *Store) RecordLoad(ctx context.Context, report bridge.LoadReport) error {
	rec := ImportRecord{
		Handle:     report.Handle.String(),
		Caller:     truncate(string(report.Caller), callerSize),
		Path:       truncate(report.Path, pathSize),
		Flags:      report.Flags,
		Success:    report.Err == nil,
		Meshes:     report.Meshes,
		Vertices:   report.Vertices,
		DurationMS: report.Duration.Milliseconds(),
	}
	if report.Err != nil {
		rec.Error = truncate(report.Err.Error(), errorSize)
	}
	if err := s.db.WithContext(ctx).Create(&rec).Error; err != nil {
		return fmt.Errorf("failed to record import: %w", err)
	}
	return nil
}

// Recent returns the newest records, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]ImportRecord, error) {
	if limit <= 0 {
		limit = 50
	}
	var out []ImportRecord
	if err := s.db.WithContext(ctx).Order("id desc").Limit(limit).Find(&out).Error; err != nil {
		return nil, fmt.Errorf("failed to list import history: %w", err)
	}
	return out, nil
}

// ForHandle returns the records of one session, oldest first.
func (s *Store) ForHandle(ctx context.Context, h bridge.Handle) ([]ImportRecord, error) {
	var out []ImportRecord
	if err := s.db.WithContext(ctx).Where("handle = ?", h.String()).Order("id asc").Find(&out).Error; err != nil {
		return nil, fmt.Errorf("failed to list import history: %w", err)
	}
	return out, nil
}

// truncate keeps at most n runes of s. varchar widths count characters.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}
