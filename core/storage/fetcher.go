package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// Scheme is the URI prefix that marks a load path as a remote object.
const Scheme = "s3://"

// ErrBadURI is returned for remote paths without a bucket or object key.
var ErrBadURI = errors.New("invalid object uri")

// Fetcher downloads remote assets into a local cache directory so the import
// engine can read them from disk.
type Fetcher struct {
	client Client
	dir    string
	logger *zap.Logger
	sf     singleflight.Group
}

// NewFetcher creates a fetcher writing into dir.
func NewFetcher(client Client, dir string, logger *zap.Logger) *Fetcher {
	return &Fetcher{client: client, dir: dir, logger: logger}
}

// ParseURI splits s3://bucket/key into its parts.
func ParseURI(uri string) (bucket, key string, err error) {
	rest, ok := strings.CutPrefix(uri, Scheme)
	if !ok {
		return "", "", fmt.Errorf("%w: %q", ErrBadURI, uri)
	}
	bucket, key, _ = strings.Cut(rest, "/")
	key = strings.TrimPrefix(path.Clean("/"+key), "/")
	if bucket == "" || key == "" || key == "." {
		return "", "", fmt.Errorf("%w: %q", ErrBadURI, uri)
	}
	return bucket, key, nil
}

// Resolve returns a local path for p. Local paths are returned unchanged;
// remote ones are downloaded first.
func (f *Fetcher) Resolve(ctx context.Context, p string) (string, error) {
	if !strings.HasPrefix(p, Scheme) {
		return p, nil
	}
	bucket, key, err := ParseURI(p)
	if err != nil {
		return "", err
	}
	return f.Fetch(ctx, bucket, key)
}

// Fetch downloads bucket/key unless it is already cached. Concurrent fetches
// of the same object share one download.
func (f *Fetcher) Fetch(ctx context.Context, bucket, key string) (string, error) {
	local := filepath.Join(f.dir, bucket, filepath.FromSlash(key))

	result, err, shared := f.sf.Do(bucket+"/"+key, func() (interface{}, error) {
		if _, err := os.Stat(local); err == nil {
			return local, nil
		}
		if err := f.download(ctx, bucket, key, local); err != nil {
			return nil, err
		}
		return local, nil
	})
	if err != nil {
		return "", err
	}
	if shared {
		f.logger.Debug("Shared asset download", zap.String("bucket", bucket), zap.String("key", key))
	}
	return result.(string), nil
}

func (f *Fetcher) download(ctx context.Context, bucket, key, local string) error {
	if err := os.MkdirAll(filepath.Dir(local), 0o755); err != nil {
		return fmt.Errorf("failed to create cache directory: %w", err)
	}

	obj, err := f.client.GetObject(ctx, bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return fmt.Errorf("failed to get object %s/%s: %w", bucket, key, err)
	}
	defer obj.Close()

	tmp, err := os.CreateTemp(filepath.Dir(local), ".fetch-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	n, err := io.Copy(tmp, obj)
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return fmt.Errorf("failed to download %s/%s: %w", bucket, key, err)
	}

	if err := os.Rename(tmp.Name(), local); err != nil {
		return fmt.Errorf("failed to move download into cache: %w", err)
	}

	f.logger.Info("Downloaded asset", zap.String("bucket", bucket), zap.String("key", key), zap.Int64("bytes", n))
	return nil
}
