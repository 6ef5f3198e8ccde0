// Package s3 provides an Amazon S3 implementation of blobstore.Store.
//
// # Usage
//
//	store, err := s3.New(ctx, "my-bucket",
//	    s3.WithPrefix("batches/"),
//	    s3.WithRegion("us-east-1"),
//	)
//
//	data, err := store.Get(ctx, "run-42.nnsb")
//
// # Features
//
//   - Multipart uploads for large batches through the s3 manager
//   - Automatic pagination for listing
//   - Configurable prefix for multi-tenant isolation
//   - Custom endpoints for S3-compatible services
package s3
