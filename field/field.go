package field

import (
	"github.com/hupe1980/activeset"
)

// Number is the set of element types a data vector may hold.
type Number interface {
	~float32 | ~float64 | ~int32 | ~int64
}

// Validate checks that every active index of sel lies inside a vector of
// length totalSize.
func Validate(sel *activeset.Selector, totalSize int) error {
	v := sel.Active()
	if !v.Valid() {
		return nil
	}
	for _, idx := range v.All() {
		if int64(idx) >= int64(totalSize) {
			return &activeset.IndexOutOfRangeError{Index: int(idx), Len: totalSize}
		}
	}
	return nil
}

// Gather returns the active elements of data in selector order.
func Gather[T Number](sel *activeset.Selector, data []T) ([]T, error) {
	return AppendGather(make([]T, 0, sel.ActiveSize(len(data))), sel, data)
}

// AppendGather appends the active elements of data to dst.
func AppendGather[T Number](dst []T, sel *activeset.Selector, data []T) ([]T, error) {
	switch sel.Mode() {
	case activeset.AllActive:
		return append(dst, data...), nil
	case activeset.Inactive:
		return dst, nil
	}
	if err := Validate(sel, len(data)); err != nil {
		return dst, err
	}
	for _, idx := range sel.Active().All() {
		dst = append(dst, data[idx])
	}
	return dst, nil
}

// Scatter writes packed into the active positions of data. packed must hold
// exactly sel.ActiveSize(len(data)) elements; inactive elements of data are
// left untouched.
func Scatter[T Number](sel *activeset.Selector, packed, data []T) error {
	if want := sel.ActiveSize(len(data)); len(packed) != want {
		return &activeset.SizeMismatchError{Expected: want, Actual: len(packed)}
	}
	switch sel.Mode() {
	case activeset.AllActive:
		copy(data, packed)
		return nil
	case activeset.Inactive:
		return nil
	}
	if err := Validate(sel, len(data)); err != nil {
		return err
	}
	for i, idx := range sel.Active().All() {
		data[idx] = packed[i]
	}
	return nil
}
