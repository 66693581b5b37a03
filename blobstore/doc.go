// Package blobstore provides the storage abstraction for stored vectors.
//
// A vector blob is written whole with Put and read back in byte ranges, so
// a partial read only transfers the chunks it needs. Implementations must
// be safe for concurrent use.
//
// # Built-in Implementations
//
//   - MemoryStore: in-process, for tests and scratch data
//   - LocalStore: local filesystem, atomic writes via rename
//   - minio.Store: MinIO and other S3-compatible services
//   - s3.Store: Amazon S3 with range reads and multipart uploads
//
// # Custom Implementations
//
//	type BlobStore interface {
//	    Open(ctx, name) (Blob, error)
//	    Put(ctx, name, data) error
//	    Delete(ctx, name) error
//	    List(ctx, prefix) ([]string, error)
//	}
package blobstore
