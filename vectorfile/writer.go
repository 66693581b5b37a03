package vectorfile

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/hupe1980/activeset"
	"github.com/hupe1980/activeset/blobstore"
	"github.com/hupe1980/activeset/internal/conv"
	"github.com/hupe1980/activeset/internal/hash"
)

// Info describes a stored vector.
type Info struct {
	Name          string `json:"name"`
	Kind          string `json:"kind"`
	Compression   string `json:"compression"`
	Length        uint64 `json:"length"`
	ChunkElements uint32 `json:"chunk_elements"`
	Chunks        uint32 `json:"chunks"`
	RawBytes      int64  `json:"raw_bytes"`
	StoredBytes   int64  `json:"stored_bytes"`
}

func newInfo(name string, h header, entries []chunkEntry, size int64) Info {
	info := Info{
		Name:          name,
		Kind:          h.kind.String(),
		Compression:   h.compression.String(),
		Length:        h.length,
		ChunkElements: h.chunkElements,
		Chunks:        h.chunkCount,
		StoredBytes:   size,
	}
	for _, e := range entries {
		info.RawBytes += int64(e.raw)
	}
	return info
}

// Write stores data as a new vector blob, replacing any previous blob with
// the same name.
func Write[T Float](ctx context.Context, store blobstore.BlobStore, name string, data []T, optFns ...Option) (info Info, err error) {
	o := applyOptions(optFns)
	start := time.Now()
	defer func() {
		stats := activeset.IOStats{Active: len(data), Chunks: int(info.Chunks), Bytes: info.StoredBytes}
		o.metrics.RecordWrite(stats, time.Since(start), err)
		o.logger.WithBlob(name).LogWrite(ctx, activeset.New(), len(data), int(info.Chunks), err)
	}()

	if !o.compression.Valid() {
		return Info{}, fmt.Errorf("vectorfile: unknown compression %d", o.compression)
	}
	chunkElements, err := conv.ToUint32(o.chunkElements)
	if err != nil || chunkElements > math.MaxUint32/8 {
		return Info{}, fmt.Errorf("vectorfile: chunk size %d too large", o.chunkElements)
	}
	length, err := conv.ToUint64(len(data))
	if err != nil || length > math.MaxUint32+1 {
		return Info{}, fmt.Errorf("vectorfile: vector of %d elements exceeds addressable indices", len(data))
	}

	h := header{
		kind:          kindOf[T](),
		compression:   o.compression,
		length:        length,
		chunkElements: chunkElements,
	}
	h.chunkCount = uint32(chunkCountFor(h.length, h.chunkElements))

	chunks := make([][]byte, h.chunkCount)
	codecs := make([]Compression, h.chunkCount)
	raw := make([]byte, min(o.chunkElements, len(data))*h.kind.Size())
	for c := range h.chunkCount {
		lo := int(c) * o.chunkElements
		hi := lo + h.elementsIn(c)
		buf := raw[:(hi-lo)*h.kind.Size()]
		encodeElements(buf, data[lo:hi])

		stored, codec, err := compressChunk(buf, h.compression)
		if err != nil {
			return Info{}, fmt.Errorf("vectorfile: compress chunk %d: %w", c, err)
		}
		if codec == CompressionNone {
			stored = append([]byte(nil), buf...)
		}
		chunks[c], codecs[c] = stored, codec
	}

	blob, entries := assemble(h, chunks, codecs)
	if err := store.Put(ctx, name, blob); err != nil {
		return Info{}, fmt.Errorf("vectorfile: put %s: %w", name, err)
	}
	return newInfo(name, h, entries, int64(len(blob))), nil
}

// assemble lays out header, chunk table and chunk data in one buffer.
func assemble(h header, chunks [][]byte, codecs []Compression) ([]byte, []chunkEntry) {
	dataStart := headerSize + len(chunks)*entrySize
	total := dataStart
	for _, c := range chunks {
		total += len(c)
	}

	blob := make([]byte, total)
	h.marshal(blob[:headerSize])

	entries := make([]chunkEntry, len(chunks))
	off := dataStart
	elemSize := h.kind.Size()
	for i, c := range chunks {
		entries[i] = chunkEntry{
			offset: uint64(off),
			stored: uint32(len(c)),
			raw:    uint32(h.elementsIn(uint32(i)) * elemSize),
			crc:    hash.CRC32C(c),
			codec:  codecs[i],
		}
		entries[i].marshal(blob[headerSize+i*entrySize:])
		copy(blob[off:], c)
		off += len(c)
	}
	return blob, entries
}
