package activeset

import (
	"errors"
	"fmt"
)

var (
	// ErrIndexOutOfRange is matched by every *IndexOutOfRangeError.
	ErrIndexOutOfRange = errors.New("index out of range")

	// ErrSizeMismatch is matched by every *SizeMismatchError.
	ErrSizeMismatch = errors.New("size mismatch")
)

// IndexOutOfRangeError indicates a positional or coordinate lookup beyond
// the bounds of the addressed sequence.
type IndexOutOfRangeError struct {
	Index int
	Len   int
}

func (e *IndexOutOfRangeError) Error() string {
	return fmt.Sprintf("index out of range: %d (len %d)", e.Index, e.Len)
}

// Is makes errors.Is(err, ErrIndexOutOfRange) succeed.
func (e *IndexOutOfRangeError) Is(target error) bool {
	return target == ErrIndexOutOfRange
}

// SizeMismatchError indicates a packed buffer whose length does not match
// the active size of the selector governing it.
type SizeMismatchError struct {
	Expected int
	Actual   int
}

func (e *SizeMismatchError) Error() string {
	return fmt.Sprintf("size mismatch: expected %d active elements, got %d", e.Expected, e.Actual)
}

// Is makes errors.Is(err, ErrSizeMismatch) succeed.
func (e *SizeMismatchError) Is(target error) bool {
	return target == ErrSizeMismatch
}
