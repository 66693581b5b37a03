package minio

import (
	"context"
	"io"
	"testing"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/activeset/blobstore"
)

func TestTrimRoot(t *testing.T) {
	tests := []struct {
		key, root, want string
	}{
		{"fields/poro.avf", "fields/", "poro.avf"},
		{"fields/poro.avf", "fields", "poro.avf"},
		{"fields/a/b.avf", "fields/", "a/b.avf"},
		{"poro.avf", "", "poro.avf"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, trimRoot(tt.key, tt.root))
	}
}

func TestListPrefix(t *testing.T) {
	assert.Equal(t, "fields/", listPrefix("fields/", ""))
	assert.Equal(t, "fields/po", listPrefix("fields", "po"))
	assert.Equal(t, "po", listPrefix("", "po"))
}

func TestIsNotFound(t *testing.T) {
	assert.True(t, isNotFound(minio.ErrorResponse{Code: "NoSuchKey"}))
	assert.True(t, isNotFound(minio.ErrorResponse{Code: "NotFound"}))
	assert.False(t, isNotFound(minio.ErrorResponse{Code: "AccessDenied"}))
}

// TestMinioStore_Integration requires a running MinIO instance.
// Skip if not available.
func TestMinioStore_Integration(t *testing.T) {
	endpoint := "localhost:9000"
	accessKey := "minioadmin"
	secretKey := "minioadmin"
	bucket := "test-activeset"

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: false,
	})
	if err != nil {
		t.Skipf("MinIO client creation failed: %v", err)
	}

	ctx := context.Background()

	// Check if MinIO is reachable
	if _, err = client.ListBuckets(ctx); err != nil {
		t.Skipf("MinIO not available: %v", err)
	}

	// Ensure bucket exists
	exists, err := client.BucketExists(ctx, bucket)
	require.NoError(t, err)
	if !exists {
		require.NoError(t, client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}))
	}

	store := NewStore(client, bucket, "test-prefix/")

	// Test Put and Open
	data := []byte("hello minio world")
	require.NoError(t, store.Put(ctx, "test.bin", data))

	blob, err := store.Open(ctx, "test.bin")
	require.NoError(t, err)
	require.Equal(t, int64(len(data)), blob.Size())

	buf := make([]byte, 5)
	n, err := blob.ReadAt(ctx, buf, 6)
	require.NoError(t, err)
	require.Equal(t, 5, n)
	assert.Equal(t, "minio", string(buf))

	buf = make([]byte, 10)
	n, err = blob.ReadAt(ctx, buf, 12)
	require.ErrorIs(t, err, io.EOF)
	assert.Equal(t, "world", string(buf[:n]))
	require.NoError(t, blob.Close())

	// Test List
	names, err := store.List(ctx, "")
	require.NoError(t, err)
	assert.Contains(t, names, "test.bin")

	// Test Delete
	require.NoError(t, store.Delete(ctx, "test.bin"))

	_, err = store.Open(ctx, "test.bin")
	require.ErrorIs(t, err, blobstore.ErrNotFound)
}
