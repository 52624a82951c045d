// Package storage wraps the MinIO client for S3 compatible object storage.
//
// The lookup table snapshots are read from and published to a bucket through the
// Client interface, which core/storage/mocks implements for unit tests.
//
// # Usage
//
//	client, err := storage.NewClient(cfg.Storage)
//	if err := storage.EnsureBucket(ctx, client, cfg.Storage.Bucket, cfg.Storage.Region); err != nil {
//	    return err
//	}
package storage
