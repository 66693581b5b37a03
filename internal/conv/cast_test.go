//go:build amd64 || arm64

package conv

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToUint32(t *testing.T) {
	t.Run("valid zero", func(t *testing.T) {
		got, err := ToUint32(0)
		require.NoError(t, err)
		assert.Equal(t, uint32(0), got)
	})

	t.Run("valid max uint32", func(t *testing.T) {
		got, err := ToUint32(uint64(math.MaxUint32))
		require.NoError(t, err)
		assert.Equal(t, uint32(math.MaxUint32), got)
	})

	t.Run("invalid negative", func(t *testing.T) {
		_, err := ToUint32(-1)
		assert.ErrorIs(t, err, ErrOverflow)
	})

	t.Run("invalid too large", func(t *testing.T) {
		_, err := ToUint32(uint(math.MaxUint32) + 1)
		assert.ErrorIs(t, err, ErrOverflow)
	})
}

func TestToUint64(t *testing.T) {
	got, err := ToUint64(int64(math.MaxInt64))
	require.NoError(t, err)
	assert.Equal(t, uint64(math.MaxInt64), got)

	_, err = ToUint64(int8(-3))
	assert.ErrorIs(t, err, ErrOverflow)
}

func TestToInt(t *testing.T) {
	t.Run("valid negative", func(t *testing.T) {
		got, err := ToInt(int32(-7))
		require.NoError(t, err)
		assert.Equal(t, -7, got)
	})

	t.Run("valid max int", func(t *testing.T) {
		got, err := ToInt(uint64(math.MaxInt))
		require.NoError(t, err)
		assert.Equal(t, math.MaxInt, got)
	})

	t.Run("max uint32", func(t *testing.T) {
		got, err := ToInt(uint32(math.MaxUint32))
		require.NoError(t, err)
		assert.Equal(t, int(math.MaxUint32), got)
	})

	t.Run("invalid too large", func(t *testing.T) {
		_, err := ToInt(uint64(math.MaxInt) + 1)
		assert.ErrorIs(t, err, ErrOverflow)
	})
}
