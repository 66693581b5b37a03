package vectorfile

import (
	"errors"
	"fmt"
)

var (
	// ErrBadMagic is returned when a blob does not start with the vector file magic.
	ErrBadMagic = errors.New("vectorfile: bad magic")
	// ErrUnsupportedVersion is returned for layouts newer than this package.
	ErrUnsupportedVersion = errors.New("vectorfile: unsupported version")
	// ErrElementKind is returned when the requested element type does not
	// match the stored one.
	ErrElementKind = errors.New("vectorfile: element kind mismatch")
	// ErrCorrupt is returned for structurally invalid blobs.
	ErrCorrupt = errors.New("vectorfile: corrupt blob")
	// ErrChecksum is matched by every *ChecksumError.
	ErrChecksum = errors.New("vectorfile: checksum mismatch")
)

// ChecksumError reports a chunk whose stored bytes fail verification.
type ChecksumError struct {
	Chunk uint32
	Want  uint32
	Got   uint32
}

func (e *ChecksumError) Error() string {
	return fmt.Sprintf("vectorfile: checksum mismatch in chunk %d: want %08x, got %08x", e.Chunk, e.Want, e.Got)
}

// Is makes errors.Is(err, ErrChecksum) succeed.
func (e *ChecksumError) Is(target error) bool {
	return target == ErrChecksum
}

func corruptf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrCorrupt}, args...)...)
}
