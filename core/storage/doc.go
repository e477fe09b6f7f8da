// Package storage provides an abstraction layer over S3 compatible object
// storage holding input catalogs and reconcile outputs.
//
// It wraps the MinIO Go client behind the Client interface so services can be
// tested against the testify mock in core/storage/mocks.
//
// # Helpers
//
//   - EnsureBucket: creates the catalog bucket on first use
//   - ListKeys: lists catalog objects under a prefix, filtered by extension
//   - RemovePrefix: clears a previous run's outputs in one batch request
//   - NewObjectWriter: streams a serialized catalog into PutObject
//
// # Usage
//
//	client, err := storage.NewClient(cfg.Storage)
//	keys, err := storage.ListKeys(ctx, client, cfg.Storage.Bucket, "dats/", []string{".dat"})
package storage
