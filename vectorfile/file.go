package vectorfile

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync/atomic"
	"time"

	"github.com/RoaringBitmap/roaring/v2"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/hupe1980/activeset"
	"github.com/hupe1980/activeset/blobstore"
	"github.com/hupe1980/activeset/field"
	"github.com/hupe1980/activeset/internal/conv"
	"github.com/hupe1980/activeset/internal/hash"
)

// File is an open vector blob. The header and chunk table are read once by
// Open; element data is fetched on demand.
//
// A File is safe for concurrent reads.
type File struct {
	name    string
	blob    blobstore.Blob
	hdr     header
	entries []chunkEntry
	opts    options
	limiter *rate.Limiter
}

// Open reads the header and chunk table of the named blob.
func Open(ctx context.Context, store blobstore.BlobStore, name string, optFns ...Option) (*File, error) {
	blob, err := store.Open(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("vectorfile: open %s: %w", name, err)
	}
	f, err := newFile(ctx, name, blob, applyOptions(optFns))
	if err != nil {
		_ = blob.Close()
		return nil, fmt.Errorf("vectorfile: open %s: %w", name, err)
	}
	return f, nil
}

func newFile(ctx context.Context, name string, blob blobstore.Blob, o options) (*File, error) {
	buf := make([]byte, headerSize)
	if err := readFull(ctx, blob, buf, 0); err != nil {
		return nil, err
	}
	h, err := unmarshalHeader(buf)
	if err != nil {
		return nil, err
	}
	if _, err := conv.ToInt(h.length); err != nil {
		return nil, corruptf("length %d: %v", h.length, err)
	}

	tableSize := int64(h.chunkCount) * entrySize
	if headerSize+tableSize > blob.Size() {
		return nil, corruptf("chunk table extends past end of blob")
	}
	table := make([]byte, tableSize)
	if err := readFull(ctx, blob, table, headerSize); err != nil {
		return nil, err
	}
	entries := make([]chunkEntry, h.chunkCount)
	for i := range entries {
		entries[i] = unmarshalEntry(table[i*entrySize:])
	}
	if err := validateTable(h, entries, blob.Size()); err != nil {
		return nil, err
	}

	f := &File{
		name:    name,
		blob:    blob,
		hdr:     h,
		entries: entries,
		opts:    o,
	}
	if o.readLimit > 0 {
		f.limiter = rate.NewLimiter(rate.Limit(o.readLimit), int(min(o.readLimit, 1<<30)))
	}
	return f, nil
}

func readFull(ctx context.Context, blob blobstore.Blob, p []byte, off int64) error {
	n, err := blob.ReadAt(ctx, p, off)
	if n == len(p) {
		return nil
	}
	if err == nil || errors.Is(err, io.EOF) {
		return corruptf("short read at offset %d: %d of %d bytes", off, n, len(p))
	}
	return err
}

// Name returns the blob name.
func (f *File) Name() string {
	return f.name
}

// Len returns the number of elements in the stored vector.
func (f *File) Len() int {
	return int(f.hdr.length)
}

// Kind returns the stored element type.
func (f *File) Kind() ElementKind {
	return f.hdr.kind
}

// Info describes the stored vector.
func (f *File) Info() Info {
	return newInfo(f.name, f.hdr, f.entries, f.blob.Size())
}

// Close releases the underlying blob.
func (f *File) Close() error {
	return f.blob.Close()
}

// chunksFor returns the ids of the chunks holding the active elements of
// sel, in ascending order.
func (f *File) chunksFor(sel *activeset.Selector) []uint32 {
	switch sel.Mode() {
	case activeset.Inactive:
		return nil
	case activeset.AllActive:
		ids := make([]uint32, f.hdr.chunkCount)
		for i := range ids {
			ids[i] = uint32(i)
		}
		return ids
	}

	bm := roaring.New()
	ce := f.hdr.chunkElements
	for _, idx := range sel.Active().All() {
		bm.Add(idx / ce)
	}
	return bm.ToArray()
}

// fetch reads and verifies the stored bytes of the given chunks
// concurrently, calling fn with the position of each id in ids. fn may run
// on several goroutines at once. It returns the number of bytes fetched.
func (f *File) fetch(ctx context.Context, ids []uint32, fn func(i int, stored []byte) error) (int64, error) {
	var fetched atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(f.opts.concurrency)
	for i, id := range ids {
		g.Go(func() error {
			e := f.entries[id]
			if err := f.wait(gctx, int(e.stored)); err != nil {
				return err
			}
			stored := make([]byte, e.stored)
			if err := readFull(gctx, f.blob, stored, int64(e.offset)); err != nil {
				return fmt.Errorf("chunk %d: %w", id, err)
			}
			fetched.Add(int64(e.stored))
			if got := hash.CRC32C(stored); got != e.crc {
				return &ChecksumError{Chunk: id, Want: e.crc, Got: got}
			}
			return fn(i, stored)
		})
	}
	err := g.Wait()
	return fetched.Load(), err
}

// wait blocks until the read limiter admits n bytes.
func (f *File) wait(ctx context.Context, n int) error {
	if f.limiter == nil {
		return nil
	}
	burst := f.limiter.Burst()
	for n > 0 {
		step := min(n, burst)
		if err := f.limiter.WaitN(ctx, step); err != nil {
			return err
		}
		n -= step
	}
	return nil
}

func decodeChunk[T Float](f *File, id uint32, stored []byte) ([]T, error) {
	e := f.entries[id]
	raw, err := decompressChunk(stored, e.codec, int(e.raw))
	if err != nil {
		return nil, fmt.Errorf("chunk %d: %w", id, err)
	}
	out := make([]T, f.hdr.elementsIn(id))
	decodeElements(out, raw)
	return out, nil
}

func checkKind[T Float](f *File) error {
	if want := kindOf[T](); f.hdr.kind != want {
		return fmt.Errorf("%w: stored %s, requested %s", ErrElementKind, f.hdr.kind, want)
	}
	return nil
}

// readChunks fetches and decodes the given chunks into a slice indexed by
// chunk id. Chunks not listed stay nil.
func readChunks[T Float](ctx context.Context, f *File, ids []uint32) ([][]T, int64, error) {
	decoded := make([][]T, f.hdr.chunkCount)
	n, err := f.fetch(ctx, ids, func(i int, stored []byte) error {
		vals, err := decodeChunk[T](f, ids[i], stored)
		if err != nil {
			return err
		}
		decoded[ids[i]] = vals
		return nil
	})
	return decoded, n, err
}

// ReadActive returns the active elements of the stored vector in selector
// order, fetching only the chunks that hold them. Every active index must
// lie inside the vector.
func ReadActive[T Float](ctx context.Context, f *File, sel *activeset.Selector) (out []T, err error) {
	start := time.Now()
	var stats activeset.IOStats
	defer func() {
		f.opts.metrics.RecordRead(stats, time.Since(start), err)
		f.opts.logger.WithBlob(f.name).LogRead(ctx, sel, stats.Active, stats.Chunks, err)
	}()

	if err := checkKind[T](f); err != nil {
		return nil, err
	}
	total := f.Len()
	if err := field.Validate(sel, total); err != nil {
		return nil, err
	}

	ids := f.chunksFor(sel)
	decoded, fetched, err := readChunks[T](ctx, f, ids)
	if err != nil {
		return nil, fmt.Errorf("vectorfile: read %s: %w", f.name, err)
	}

	out = make([]T, 0, sel.ActiveSize(total))
	if sel.Mode() == activeset.AllActive {
		for _, c := range decoded {
			out = append(out, c...)
		}
	} else {
		ce := f.hdr.chunkElements
		for _, idx := range sel.Active().All() {
			out = append(out, decoded[idx/ce][idx%ce])
		}
	}

	stats = activeset.IOStats{Active: len(out), Chunks: len(ids), Bytes: fetched}
	return out, nil
}

// ReadAll returns the whole stored vector.
func ReadAll[T Float](ctx context.Context, f *File) ([]T, error) {
	return ReadActive[T](ctx, f, activeset.New())
}
