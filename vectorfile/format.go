package vectorfile

import (
	"encoding/binary"
	"fmt"
	"math"
)

const (
	magic         = "AVF1"
	formatVersion = 1

	headerSize = 32
	entrySize  = 24
)

// ElementKind identifies the stored element type.
type ElementKind uint8

const (
	// KindFloat32 stores IEEE-754 single precision values.
	KindFloat32 ElementKind = 1
	// KindFloat64 stores IEEE-754 double precision values.
	KindFloat64 ElementKind = 2
)

func (k ElementKind) String() string {
	switch k {
	case KindFloat32:
		return "float32"
	case KindFloat64:
		return "float64"
	default:
		return fmt.Sprintf("ElementKind(%d)", uint8(k))
	}
}

// Size returns the encoded size of one element in bytes.
func (k ElementKind) Size() int {
	switch k {
	case KindFloat32:
		return 4
	case KindFloat64:
		return 8
	default:
		return 0
	}
}

// Float is the set of element types a vector file can hold.
type Float interface {
	float32 | float64
}

func kindOf[T Float]() ElementKind {
	var zero T
	if _, ok := any(zero).(float32); ok {
		return KindFloat32
	}
	return KindFloat64
}

type header struct {
	kind          ElementKind
	compression   Compression
	length        uint64
	chunkElements uint32
	chunkCount    uint32
}

func (h header) marshal(dst []byte) {
	copy(dst[0:4], magic)
	binary.LittleEndian.PutUint16(dst[4:], formatVersion)
	dst[6] = byte(h.kind)
	dst[7] = byte(h.compression)
	binary.LittleEndian.PutUint64(dst[8:], h.length)
	binary.LittleEndian.PutUint32(dst[16:], h.chunkElements)
	binary.LittleEndian.PutUint32(dst[20:], h.chunkCount)
	binary.LittleEndian.PutUint64(dst[24:], 0)
}

func unmarshalHeader(src []byte) (header, error) {
	if len(src) < headerSize {
		return header{}, corruptf("header is %d bytes", len(src))
	}
	if string(src[0:4]) != magic {
		return header{}, ErrBadMagic
	}
	if v := binary.LittleEndian.Uint16(src[4:]); v != formatVersion {
		return header{}, fmt.Errorf("%w: %d", ErrUnsupportedVersion, v)
	}
	h := header{
		kind:          ElementKind(src[6]),
		compression:   Compression(src[7]),
		length:        binary.LittleEndian.Uint64(src[8:]),
		chunkElements: binary.LittleEndian.Uint32(src[16:]),
		chunkCount:    binary.LittleEndian.Uint32(src[20:]),
	}
	if h.kind.Size() == 0 {
		return header{}, corruptf("unknown element kind %d", src[6])
	}
	if !h.compression.Valid() {
		return header{}, corruptf("unknown compression %d", src[7])
	}
	if h.length > 0 && h.chunkElements == 0 {
		return header{}, corruptf("zero chunk size")
	}
	if h.length > math.MaxUint32+1 {
		return header{}, corruptf("length %d exceeds addressable indices", h.length)
	}
	if want := chunkCountFor(h.length, h.chunkElements); uint64(h.chunkCount) != want {
		return header{}, corruptf("chunk count %d, want %d", h.chunkCount, want)
	}
	return h, nil
}

func chunkCountFor(length uint64, chunkElements uint32) uint64 {
	if length == 0 {
		return 0
	}
	ce := uint64(chunkElements)
	return (length + ce - 1) / ce
}

// elementsIn returns the number of elements in chunk c.
func (h header) elementsIn(c uint32) int {
	start := uint64(c) * uint64(h.chunkElements)
	end := min(start+uint64(h.chunkElements), h.length)
	return int(end - start)
}

type chunkEntry struct {
	offset uint64
	stored uint32
	raw    uint32
	crc    uint32
	codec  Compression
}

func (e chunkEntry) marshal(dst []byte) {
	binary.LittleEndian.PutUint64(dst[0:], e.offset)
	binary.LittleEndian.PutUint32(dst[8:], e.stored)
	binary.LittleEndian.PutUint32(dst[12:], e.raw)
	binary.LittleEndian.PutUint32(dst[16:], e.crc)
	dst[20] = byte(e.codec)
	dst[21], dst[22], dst[23] = 0, 0, 0
}

func unmarshalEntry(src []byte) chunkEntry {
	return chunkEntry{
		offset: binary.LittleEndian.Uint64(src[0:]),
		stored: binary.LittleEndian.Uint32(src[8:]),
		raw:    binary.LittleEndian.Uint32(src[12:]),
		crc:    binary.LittleEndian.Uint32(src[16:]),
		codec:  Compression(src[20]),
	}
}

// validateTable checks every entry against the header and the blob size.
func validateTable(h header, entries []chunkEntry, blobSize int64) error {
	elemSize := h.kind.Size()
	dataStart := uint64(headerSize) + uint64(len(entries))*entrySize
	size := uint64(blobSize)
	for i, e := range entries {
		if want := h.elementsIn(uint32(i)) * elemSize; int(e.raw) != want {
			return corruptf("chunk %d raw size %d, want %d", i, e.raw, want)
		}
		if !e.codec.Valid() {
			return corruptf("chunk %d has unknown codec %d", i, e.codec)
		}
		if e.offset < dataStart {
			return corruptf("chunk %d offset %d overlaps header or chunk table", i, e.offset)
		}
		if e.offset > size || uint64(e.stored) > size-e.offset {
			return corruptf("chunk %d extends past end of blob", i)
		}
	}
	return nil
}

func encodeElements[T Float](dst []byte, src []T) {
	switch kindOf[T]() {
	case KindFloat32:
		for i, v := range src {
			binary.LittleEndian.PutUint32(dst[i*4:], math.Float32bits(float32(v)))
		}
	default:
		for i, v := range src {
			binary.LittleEndian.PutUint64(dst[i*8:], math.Float64bits(float64(v)))
		}
	}
}

func decodeElements[T Float](dst []T, src []byte) {
	switch kindOf[T]() {
	case KindFloat32:
		for i := range dst {
			dst[i] = T(math.Float32frombits(binary.LittleEndian.Uint32(src[i*4:])))
		}
	default:
		for i := range dst {
			dst[i] = T(math.Float64frombits(binary.LittleEndian.Uint64(src[i*8:])))
		}
	}
}
