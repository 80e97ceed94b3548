// Package storage provides an abstraction layer for object storage services.
//
// It wraps the MinIO Go client to provide a simplified interface for the
// operations the bridge needs: checking bucket existence, listing and
// uploading objects for the integrity checks, and downloading asset sources.
//
// # Client Interface
//
// The Client interface abstracts the underlying storage provider, making it
// easier to mock storage interactions for unit testing (see storage/mocks).
//
// # Fetcher
//
// Load paths of the form s3://bucket/key are resolved by the Fetcher, which
// downloads the object into a local cache directory before the import engine
// reads it. Concurrent loads of the same object share a single download.
//
// # Usage
//
//	client, err := storage.NewClient(cfg.Storage)
//	fetcher := storage.NewFetcher(client, cfg.Storage.CacheDir, log)
//	local, err := fetcher.Resolve(ctx, "s3://assets/models/chair.obj")
package storage
