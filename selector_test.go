package activeset

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func indicesOf(s *Selector) []uint32 {
	return s.Active().AppendTo(nil)
}

func TestSelector(t *testing.T) {
	t.Run("NewIsAllActive", func(t *testing.T) {
		s := New()
		assert.Equal(t, AllActive, s.Mode())
		for _, n := range []int{0, 1, 10, 1 << 20} {
			assert.Equal(t, n, s.ActiveSize(n))
		}
		assert.False(t, s.Active().Valid())
	})

	t.Run("ZeroValueIsAllActive", func(t *testing.T) {
		var s Selector
		assert.Equal(t, AllActive, s.Mode())
		assert.Equal(t, 7, s.ActiveSize(7))
		assert.True(t, s.Equal(New()))
	})

	t.Run("AddIndexSwitchesToPartlyActive", func(t *testing.T) {
		s := New()
		s.AddIndex(3)
		assert.Equal(t, PartlyActive, s.Mode())
		assert.Equal(t, 1, s.ActiveSize(0))
		assert.Equal(t, 1, s.ActiveSize(1000))
	})

	t.Run("AddIndexIsIdempotent", func(t *testing.T) {
		s := New()
		s.AddIndex(2)
		s.AddIndex(2)
		assert.Equal(t, 1, s.ActiveSize(10))
		assert.Equal(t, []uint32{2}, indicesOf(s))
	})

	t.Run("AddIndexFromInactive", func(t *testing.T) {
		s := NewInactive()
		s.AddIndex(9)
		assert.Equal(t, PartlyActive, s.Mode())
		assert.Equal(t, []uint32{9}, indicesOf(s))
	})

	t.Run("InsertionOrderPreserved", func(t *testing.T) {
		s := New()
		s.AddIndices(5, 0, 4, 0, 5)
		assert.Equal(t, []uint32{5, 0, 4}, indicesOf(s))
	})

	t.Run("EndToEnd", func(t *testing.T) {
		s := New()
		s.AddIndex(0)
		s.AddIndex(4)
		s.AddIndex(5)
		assert.Equal(t, PartlyActive, s.Mode())
		assert.Equal(t, 3, s.ActiveSize(10))

		v := s.Active()
		require.True(t, v.Valid())
		require.Equal(t, 3, v.Len())
		var got []uint32
		for i, idx := range v.All() {
			assert.Equal(t, v.At(i), idx)
			got = append(got, idx)
		}
		assert.Equal(t, []uint32{0, 4, 5}, got)
	})
}

func TestSelector_Inactive(t *testing.T) {
	s := NewInactive()
	assert.Equal(t, Inactive, s.Mode())
	for _, n := range []int{0, 1, 100} {
		assert.Equal(t, 0, s.ActiveSize(n))
	}
	for _, pos := range []int{-1, 0, 1, 1 << 30} {
		ok, err := s.IsActive(pos)
		require.NoError(t, err)
		assert.False(t, ok)
	}
	assert.False(t, s.Active().Valid())
	assert.False(t, s.Contains(0))
	assert.Nil(t, s.Bitmap())
}

func TestSelector_IsActive(t *testing.T) {
	t.Run("AllActive", func(t *testing.T) {
		s := New()
		for _, pos := range []int{-5, 0, 3, 1 << 30} {
			ok, err := s.IsActive(pos)
			require.NoError(t, err)
			assert.True(t, ok)
		}
	})

	t.Run("Positional", func(t *testing.T) {
		s := New()
		s.AddIndices(0, 4, 5)

		// Position 0 holds index 0, which reads as false.
		ok, err := s.IsActive(0)
		require.NoError(t, err)
		assert.False(t, ok)

		ok, err = s.IsActive(1)
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = s.IsActive(2)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("OutOfRange", func(t *testing.T) {
		s := New()
		s.AddIndices(0, 4, 5)

		for _, pos := range []int{3, 4, -1} {
			_, err := s.IsActive(pos)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrIndexOutOfRange))

			var oor *IndexOutOfRangeError
			require.ErrorAs(t, err, &oor)
			assert.Equal(t, pos, oor.Index)
			assert.Equal(t, 3, oor.Len)
		}
	})
}

func TestSelector_Contains(t *testing.T) {
	s := New()
	assert.True(t, s.Contains(12345))

	s.AddIndices(0, 4, 5)
	assert.True(t, s.Contains(4))
	assert.False(t, s.Contains(1))

	// Containment and positional lookup answer different questions.
	ok, err := s.IsActive(0)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.True(t, s.Contains(0))
}

func TestSelector_Bitmap(t *testing.T) {
	assert.Nil(t, New().Bitmap())

	s := New()
	s.AddIndices(7, 1, 3)
	bm := s.Bitmap()
	require.NotNil(t, bm)
	assert.Equal(t, []uint32{1, 3, 7}, bm.ToArray())

	bm.Add(100)
	assert.False(t, s.Contains(100))
}

func TestSelector_Copy(t *testing.T) {
	t.Run("Clone", func(t *testing.T) {
		a := New()
		a.AddIndices(0, 4, 5)

		b := a.Clone()
		assert.True(t, a.Equal(b))

		b.AddIndex(9)
		assert.Equal(t, []uint32{0, 4, 5}, indicesOf(a))
		assert.Equal(t, []uint32{0, 4, 5, 9}, indicesOf(b))
		assert.False(t, a.Equal(b))
		assert.False(t, a.Contains(9))
	})

	t.Run("CloneIsIndependentBothWays", func(t *testing.T) {
		a := New()
		a.AddIndex(1)
		b := a.Clone()
		a.AddIndex(2)
		assert.Equal(t, []uint32{1}, indicesOf(b))
	})

	t.Run("CopyFromOverwrites", func(t *testing.T) {
		src := New()
		src.AddIndices(2, 1)

		dst := New()
		dst.AddIndices(8, 9, 10)
		dst.CopyFrom(src)

		assert.True(t, dst.Equal(src))
		assert.Equal(t, []uint32{2, 1}, indicesOf(dst))
		assert.False(t, dst.Contains(9))

		dst.AddIndex(3)
		assert.Equal(t, []uint32{2, 1}, indicesOf(src))
	})

	t.Run("CopyFromModeOnly", func(t *testing.T) {
		dst := New()
		dst.AddIndex(4)
		dst.CopyFrom(NewInactive())
		assert.Equal(t, Inactive, dst.Mode())
		assert.Equal(t, 0, dst.ActiveSize(10))
		assert.False(t, dst.Contains(4))
	})

	t.Run("CopyFromSelf", func(t *testing.T) {
		s := New()
		s.AddIndices(1, 2)
		s.CopyFrom(s)
		assert.Equal(t, []uint32{1, 2}, indicesOf(s))
	})
}

func TestSelector_Equal(t *testing.T) {
	partly := func(idx ...uint32) *Selector {
		s := New()
		s.AddIndices(idx...)
		return s
	}

	tests := []struct {
		name string
		a, b *Selector
		want bool
	}{
		{"BothAllActive", New(), New(), true},
		{"BothInactive", NewInactive(), NewInactive(), true},
		{"AllVsInactive", New(), NewInactive(), false},
		{"AllVsPartly", New(), partly(1), false},
		{"SameOrder", partly(1, 2), partly(1, 2), true},
		{"OrderSensitive", partly(1, 2), partly(2, 1), false},
		{"DifferentLength", partly(1, 2), partly(1, 2, 3), false},
		{"NilOther", New(), nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.Equal(tt.b))
			if tt.b != nil {
				assert.Equal(t, tt.want, tt.b.Equal(tt.a))
			}
		})
	}

	t.Run("Identity", func(t *testing.T) {
		s := partly(3)
		assert.True(t, s.Equal(s))
	})
}

func TestSelector_InvalidModePanics(t *testing.T) {
	s := &Selector{mode: Mode(42)}
	assert.Panics(t, func() { s.ActiveSize(10) })
	assert.False(t, Mode(42).Valid())
	assert.Equal(t, "Mode(42)", Mode(42).String())
}

func TestSelector_Summary(t *testing.T) {
	s := New()
	assert.Equal(t, "NUMBER OF ACTIVE:0,STATUS:ALL_ACTIVE,", s.Summary())

	assert.Equal(t, "NUMBER OF ACTIVE:0,STATUS:INACTIVE,", NewInactive().Summary())

	s.AddIndices(0, 4, 5)
	assert.Equal(t, "NUMBER OF ACTIVE:3,STATUS:PARTLY_ACTIVE,", s.String())

	var buf bytes.Buffer
	require.NoError(t, s.WriteSummary(&buf))
	assert.Equal(t, s.Summary(), buf.String())
}

func TestSelector_LogValue(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	s := New()
	s.AddIndices(1, 2)
	logger.Info("selector", "sel", s)

	assert.Contains(t, buf.String(), "sel.mode=PARTLY_ACTIVE")
	assert.Contains(t, buf.String(), "sel.active=2")
}
