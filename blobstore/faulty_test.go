package blobstore

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFaultyStore(t *testing.T) {
	ctx := context.Background()
	mem := NewMemoryStore()
	require.NoError(t, mem.Put(ctx, "a/blob", []byte("0123456789")))
	require.NoError(t, mem.Put(ctx, "b/blob", []byte("0123456789")))

	faulty := NewFaultyStore(mem)
	custom := errors.New("disk on fire")
	faulty.AddRule("a/", Fault{FailAfterBytes: 6, FailOnPut: true})
	faulty.AddRule("c/", Fault{FailAfterBytes: -1, FailOnOpen: true, Err: custom})

	t.Run("ReadBudget", func(t *testing.T) {
		b, err := faulty.Open(ctx, "a/blob")
		require.NoError(t, err)
		defer b.Close()

		p := make([]byte, 4)
		_, err = b.ReadAt(ctx, p, 0)
		require.NoError(t, err)
		_, err = b.ReadAt(ctx, p, 4)
		assert.ErrorIs(t, err, ErrInjected)
	})

	t.Run("Put", func(t *testing.T) {
		assert.ErrorIs(t, faulty.Put(ctx, "a/other", nil), ErrInjected)
		assert.NoError(t, faulty.Put(ctx, "b/other", nil))
	})

	t.Run("Open", func(t *testing.T) {
		_, err := faulty.Open(ctx, "c/blob")
		assert.ErrorIs(t, err, custom)

		_, err = faulty.Open(ctx, "b/missing")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("Passthrough", func(t *testing.T) {
		b, err := faulty.Open(ctx, "b/blob")
		require.NoError(t, err)
		defer b.Close()

		p := make([]byte, 10)
		n, err := b.ReadAt(ctx, p, 0)
		require.NoError(t, err)
		assert.Equal(t, 10, n)
		assert.Equal(t, int64(14), faulty.BytesRead())

		names, err := faulty.List(ctx, "b/")
		require.NoError(t, err)
		assert.Equal(t, []string{"b/blob", "b/other"}, names)

		require.NoError(t, faulty.Delete(ctx, "b/other"))
	})
}
