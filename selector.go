package activeset

import (
	"fmt"
	"slices"

	"github.com/RoaringBitmap/roaring/v2"
)

// Mode is the activation policy of a Selector.
type Mode uint8

const (
	// AllActive means every element of the governed vector is active.
	// It is the zero value, so a zero Selector is ready to use.
	AllActive Mode = iota
	// Inactive means no element is active.
	Inactive
	// PartlyActive means exactly the listed indices are active.
	PartlyActive
)

// String returns the label used in summaries.
func (m Mode) String() string {
	switch m {
	case AllActive:
		return "ALL_ACTIVE"
	case Inactive:
		return "INACTIVE"
	case PartlyActive:
		return "PARTLY_ACTIVE"
	default:
		return fmt.Sprintf("Mode(%d)", uint8(m))
	}
}

// Valid reports whether m is one of the defined modes.
func (m Mode) Valid() bool {
	return m <= PartlyActive
}

// Selector records which positions of a fixed-size data vector take part
// in a partial serialize/deserialize.
//
// A Selector is not safe for concurrent mutation. Hand independent copies
// (Clone) to other goroutines instead of sharing one.
type Selector struct {
	mode    Mode
	indices []uint32
	set     *roaring.Bitmap // mirrors indices, nil until the first AddIndex
}

// New returns a selector with every element active.
func New() *Selector {
	return &Selector{mode: AllActive}
}

// NewInactive returns a selector with no active element.
//
// The selector never transitions into Inactive on its own; this constructor
// is the hook for configurations that need to switch a vector off.
func NewInactive() *Selector {
	return &Selector{mode: Inactive}
}

// Clone returns an independent deep copy of s.
func (s *Selector) Clone() *Selector {
	c := &Selector{}
	c.CopyFrom(s)
	return c
}

// CopyFrom overwrites s with the mode and indices of src.
// The previous index storage of s is discarded.
func (s *Selector) CopyFrom(src *Selector) {
	if s == src {
		return
	}
	s.mode = src.mode
	s.indices = slices.Clone(src.indices)
	if src.set != nil {
		s.set = src.set.Clone()
	} else {
		s.set = nil
	}
}

// AddIndex appends index to the active list and switches the selector to
// PartlyActive. Indices already present are not stored twice, but the mode
// switch still happens.
//
// The index is not checked against any vector length; callers must keep it
// inside [0, totalSize).
func (s *Selector) AddIndex(index uint32) {
	s.mode = PartlyActive
	if s.set == nil {
		s.set = roaring.New()
	}
	if s.set.CheckedAdd(index) {
		s.indices = append(s.indices, index)
	}
}

// AddIndices calls AddIndex for every index in order.
func (s *Selector) AddIndices(indices ...uint32) {
	for _, i := range indices {
		s.AddIndex(i)
	}
}

// Mode returns the current activation mode.
func (s *Selector) Mode() Mode {
	return s.mode
}

// ActiveSize returns how many elements of a vector of length totalSize
// take part in a partial transfer. totalSize is only used in AllActive mode.
func (s *Selector) ActiveSize(totalSize int) int {
	switch s.mode {
	case PartlyActive:
		return len(s.indices)
	case Inactive:
		return 0
	case AllActive:
		return totalSize
	default:
		panic(fmt.Sprintf("activeset: selector in invalid mode %d", uint8(s.mode)))
	}
}

// Active returns a read-only view of the active indices in insertion order.
// The view is only valid in PartlyActive mode; for AllActive and Inactive
// the caller should use the full range or nothing instead.
func (s *Selector) Active() View {
	if s.mode != PartlyActive {
		return View{}
	}
	return View{indices: s.indices, valid: true}
}

// IsActive answers a positional query: in PartlyActive mode it reports
// whether the entry stored at position pos of the active list is non-zero.
// It is not a containment test over data vector coordinates; use Contains
// for that.
//
// AllActive always answers true and Inactive always false. A position
// outside the active list returns an *IndexOutOfRangeError.
func (s *Selector) IsActive(pos int) (bool, error) {
	switch s.mode {
	case AllActive:
		return true, nil
	case Inactive:
		return false, nil
	}
	if pos < 0 || pos >= len(s.indices) {
		return false, &IndexOutOfRangeError{Index: pos, Len: len(s.indices)}
	}
	return s.indices[pos] != 0, nil
}

// Contains reports whether the data vector coordinate index takes part in a
// partial transfer.
func (s *Selector) Contains(index uint32) bool {
	switch s.mode {
	case AllActive:
		return true
	case Inactive:
		return false
	}
	return s.set != nil && s.set.Contains(index)
}

// Bitmap returns a copy of the active set, or nil unless the selector is
// PartlyActive.
func (s *Selector) Bitmap() *roaring.Bitmap {
	if s.mode != PartlyActive || s.set == nil {
		return nil
	}
	return s.set.Clone()
}

// Equal reports whether s and o select the same elements in the same order.
// Index lists are only compared in PartlyActive mode.
func (s *Selector) Equal(o *Selector) bool {
	if s == o {
		return true
	}
	if s == nil || o == nil {
		return false
	}
	if s.mode != o.mode {
		return false
	}
	if s.mode == PartlyActive {
		return slices.Equal(s.indices, o.indices)
	}
	return true
}
