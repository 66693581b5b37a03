// Package vectorfile stores fixed-size numeric vectors as chunked blobs and
// transfers only the elements an activeset.Selector marks active.
//
// # Layout
//
// All integers are little-endian.
//
//	header   32 bytes   magic "AVF1", version, element kind, compression,
//	                    length, chunk elements, chunk count, reserved
//	table    24 bytes per chunk: offset, stored size, raw size, CRC32C, codec
//	chunks   each chunk compressed on its own (none, LZ4 or ZSTD)
//
// A chunk whose compressed form does not save at least 10% is stored raw.
//
// # Partial I/O
//
//	sel := activeset.New()
//	sel.AddIndices(0, 4, 5)
//
//	f, _ := vectorfile.Open(ctx, store, "poro.avf")
//	vals, _ := vectorfile.ReadActive[float32](ctx, f, sel) // 3 values
//
//	_, _ = vectorfile.WriteActive(ctx, store, "poro.avf", sel, []float32{1, 2, 3})
//
// ReadActive fetches only the chunks holding active indices, concurrently
// and optionally rate limited. WriteActive rewrites the blob, re-encoding
// only the touched chunks and copying the others verbatim.
package vectorfile
