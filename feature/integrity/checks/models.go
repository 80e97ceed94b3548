package checks

import (
	"context"
	"fmt"
	"path"
	"slices"
	"strings"

	"asset-bridge/core/storage"

	"github.com/minio/minio-go/v7"
)

// ModelsPrefix is the folder importable models live under.
const ModelsPrefix = "models/"

// ModelReport summarises the objects under ModelsPrefix.
type ModelReport struct {
	Total       int      `json:"total"`
	Supported   int      `json:"supported"`
	Unsupported []string `json:"unsupported"`
}

// CheckModels lists every object under ModelsPrefix and reports the ones
// whose extension is not in supported (e.g. ".obj").
func CheckModels(ctx context.Context, client storage.Client, bucket string, supported []string) (*ModelReport, error) {
	if err := requireBucket(ctx, client, bucket); err != nil {
		return nil, err
	}

	report := &ModelReport{Unsupported: []string{}}
	opts := minio.ListObjectsOptions{Prefix: ModelsPrefix, Recursive: true}
	for obj := range client.ListObjects(ctx, bucket, opts) {
		if obj.Err != nil {
			return nil, fmt.Errorf("failed to list models: %w", obj.Err)
		}
		if strings.HasSuffix(obj.Key, "/") {
			continue
		}
		report.Total++
		if slices.Contains(supported, strings.ToLower(path.Ext(obj.Key))) {
			report.Supported++
		} else {
			report.Unsupported = append(report.Unsupported, obj.Key)
		}
	}
	return report, nil
}
