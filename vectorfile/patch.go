package vectorfile

import (
	"context"
	"fmt"
	"time"

	"github.com/hupe1980/activeset"
	"github.com/hupe1980/activeset/blobstore"
	"github.com/hupe1980/activeset/field"
)

// WriteActive overwrites the active elements of a stored vector with packed,
// which must hold exactly sel.ActiveSize(length) values in selector order.
// Inactive elements keep their stored values. The chunk size and
// compression of the existing blob are preserved.
//
// Untouched chunks are copied without being decoded. An Inactive selector
// writes nothing.
func WriteActive[T Float](ctx context.Context, store blobstore.BlobStore, name string, sel *activeset.Selector, packed []T, optFns ...Option) (info Info, err error) {
	o := applyOptions(optFns)
	start := time.Now()
	var stats activeset.IOStats
	defer func() {
		o.metrics.RecordWrite(stats, time.Since(start), err)
		o.logger.WithBlob(name).LogWrite(ctx, sel, stats.Active, stats.Chunks, err)
	}()

	f, err := Open(ctx, store, name, optFns...)
	if err != nil {
		return Info{}, err
	}
	defer func() { _ = f.Close() }()

	if err := checkKind[T](f); err != nil {
		return Info{}, err
	}
	total := f.Len()
	if want := sel.ActiveSize(total); len(packed) != want {
		return Info{}, &activeset.SizeMismatchError{Expected: want, Actual: len(packed)}
	}
	if err := field.Validate(sel, total); err != nil {
		return Info{}, err
	}
	if sel.Mode() == activeset.Inactive {
		return f.Info(), nil
	}

	touched := f.chunksFor(sel)
	isTouched := make([]bool, f.hdr.chunkCount)
	for _, id := range touched {
		isTouched[id] = true
	}
	var untouched []uint32
	for id, t := range isTouched {
		if !t {
			untouched = append(untouched, uint32(id))
		}
	}

	chunks := make([][]byte, f.hdr.chunkCount)
	codecs := make([]Compression, f.hdr.chunkCount)

	if _, err := f.fetch(ctx, untouched, func(i int, stored []byte) error {
		id := untouched[i]
		chunks[id], codecs[id] = stored, f.entries[id].codec
		return nil
	}); err != nil {
		return Info{}, fmt.Errorf("vectorfile: patch %s: %w", name, err)
	}

	var decoded [][]T
	if sel.Mode() == activeset.AllActive {
		// Every element is overwritten, so there is nothing to read back.
		decoded = make([][]T, f.hdr.chunkCount)
		for _, id := range touched {
			decoded[id] = make([]T, f.hdr.elementsIn(id))
		}
	} else {
		decoded, _, err = readChunks[T](ctx, f, touched)
		if err != nil {
			return Info{}, fmt.Errorf("vectorfile: patch %s: %w", name, err)
		}
	}

	ce := f.hdr.chunkElements
	if sel.Mode() == activeset.AllActive {
		for i, v := range packed {
			decoded[uint32(i)/ce][uint32(i)%ce] = v
		}
	} else {
		for pos, idx := range sel.Active().All() {
			decoded[idx/ce][idx%ce] = packed[pos]
		}
	}

	elemSize := f.hdr.kind.Size()
	for _, id := range touched {
		raw := make([]byte, len(decoded[id])*elemSize)
		encodeElements(raw, decoded[id])
		stored, codec, err := compressChunk(raw, f.hdr.compression)
		if err != nil {
			return Info{}, fmt.Errorf("vectorfile: compress chunk %d: %w", id, err)
		}
		chunks[id], codecs[id] = stored, codec
	}

	blob, entries := assemble(f.hdr, chunks, codecs)
	if err := store.Put(ctx, name, blob); err != nil {
		return Info{}, fmt.Errorf("vectorfile: put %s: %w", name, err)
	}

	stats = activeset.IOStats{Active: len(packed), Chunks: len(touched), Bytes: int64(len(blob))}
	return newInfo(name, f.hdr, entries, int64(len(blob))), nil
}
