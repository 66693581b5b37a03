// Package s3 provides an S3 implementation of the blobstore.BlobStore interface.
//
// # Usage
//
//	store, err := s3.New(ctx, "my-bucket",
//	    s3.WithPrefix("fields/"),
//	    s3.WithRegion("eu-north-1"),
//	)
//
//	f, err := vectorfile.Open(ctx, store, "poro.avf")
//
// # Features
//
//   - Range reads, so partial vector reads only fetch the chunks they need
//   - Multipart uploads for large blobs
//   - CRC32C integrity checksums on upload
//   - Automatic pagination for listing
//   - Configurable prefix for multi-tenant isolation
package s3
