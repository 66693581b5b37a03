package activeset

import "iter"

// View is a read-only window onto the active indices of a Selector.
//
// The zero View is the absent view returned for AllActive and Inactive
// selectors. A View shares storage with its selector and must not be used
// after the selector is mutated.
type View struct {
	indices []uint32
	valid   bool
}

// Valid reports whether the view carries an index list.
func (v View) Valid() bool {
	return v.valid
}

// Len returns the number of indices in the view.
func (v View) Len() int {
	return len(v.indices)
}

// At returns the i-th active index. It panics if i is out of range.
func (v View) At(i int) uint32 {
	return v.indices[i]
}

// All iterates positions and indices in insertion order.
func (v View) All() iter.Seq2[int, uint32] {
	return func(yield func(int, uint32) bool) {
		for i, idx := range v.indices {
			if !yield(i, idx) {
				return
			}
		}
	}
}

// AppendTo appends the indices to dst and returns the extended slice.
func (v View) AppendTo(dst []uint32) []uint32 {
	return append(dst, v.indices...)
}
