// Package blobstore provides storage abstraction for prototype banks and edit
// results.
//
// Prototype banks are immutable blobs loaded once per process; edit results
// (score records and images) are written once per attempt. Implementations must
// be safe for concurrent use.
//
// # Built-in Implementations
//
//   - LocalStore: Local filesystem with mmap reads
//   - MemoryStore: In-memory store for tests
//   - s3.Store: Amazon S3 with range reads and multipart uploads
//   - minio.Store: MinIO and other S3-compatible storage
//
// # Usage
//
//	store := blobstore.NewLocalStore("./npy")
//	data, err := blobstore.ReadAll(ctx, store, "ffhq/fs3.npy")
package blobstore
