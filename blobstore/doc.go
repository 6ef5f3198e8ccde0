// Package blobstore is where batch files and result documents are read
// from and written to.
//
// # Built-in Implementations
//
//   - LocalStore: a directory on the local file system
//   - MemoryStore: an in-memory map, for tests
//   - s3.Store: Amazon S3 via aws-sdk-go-v2
//   - minio.Store: MinIO and other S3-compatible services via minio-go
//
// Implementations must be safe for concurrent use.
package blobstore
