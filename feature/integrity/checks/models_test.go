package checks

import (
	"context"
	"testing"

	"asset-bridge/core/storage/mocks"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCheckModels(t *testing.T) {
	mockClient := new(mocks.Client)
	mockClient.On("BucketExists", mock.Anything, "assets").Return(true, nil)
	mockClient.On("ListObjects", mock.Anything, "assets", mock.MatchedBy(func(opts minio.ListObjectsOptions) bool {
		return opts.Prefix == ModelsPrefix && opts.Recursive
	})).Return(listing(
		minio.ObjectInfo{Key: "models/"},
		minio.ObjectInfo{Key: "models/cube.obj"},
		minio.ObjectInfo{Key: "models/chairs/Chair.OBJ"},
		minio.ObjectInfo{Key: "models/readme.txt"},
	))

	report, err := CheckModels(context.Background(), mockClient, "assets", []string{".obj"})
	require.NoError(t, err)
	assert.Equal(t, 3, report.Total)
	assert.Equal(t, 2, report.Supported)
	assert.Equal(t, []string{"models/readme.txt"}, report.Unsupported)
}

func TestCheckModels_ListError(t *testing.T) {
	mockClient := new(mocks.Client)
	mockClient.On("BucketExists", mock.Anything, "assets").Return(true, nil)
	mockClient.On("ListObjects", mock.Anything, "assets", mock.Anything).Return(listing(minio.ObjectInfo{Err: assert.AnError}))

	report, err := CheckModels(context.Background(), mockClient, "assets", []string{".obj"})
	assert.ErrorIs(t, err, assert.AnError)
	assert.Nil(t, report)
}

func TestCheckModels_BucketMissing(t *testing.T) {
	mockClient := new(mocks.Client)
	mockClient.On("BucketExists", mock.Anything, "assets").Return(false, nil)

	_, err := CheckModels(context.Background(), mockClient, "assets", nil)
	assert.Error(t, err)
}
