package codec

import (
	"testing"

	"github.com/hupe1980/activeset/testutil"
	"github.com/hupe1980/activeset/vectorfile"
)

func benchmarkMarshal(b *testing.B, c Codec, v any) {
	b.Helper()
	b.ReportAllocs()

	warm, err := c.Marshal(v)
	if err != nil {
		b.Fatal(err)
	}
	b.SetBytes(int64(len(warm)))

	b.ResetTimer()
	for b.Loop() {
		if _, err := c.Marshal(v); err != nil {
			b.Fatal(err)
		}
	}
}

func benchmarkUnmarshal[T any](b *testing.B, c Codec, data []byte) {
	b.Helper()
	b.ReportAllocs()
	b.SetBytes(int64(len(data)))

	b.ResetTimer()
	for b.Loop() {
		var v T
		if err := c.Unmarshal(data, &v); err != nil {
			b.Fatal(err)
		}
	}
}

func benchCodecs() []Codec {
	return []Codec{JSON{}, GoJSON{}}
}

// BenchmarkCodec_Info covers the report printed by write, patch and inspect.
func BenchmarkCodec_Info(b *testing.B) {
	info := vectorfile.Info{
		Name:          "fields/poro.avf",
		Kind:          "float64",
		Compression:   "lz4",
		Length:        1 << 20,
		ChunkElements: vectorfile.DefaultChunkElements,
		Chunks:        256,
		RawBytes:      8 << 20,
		StoredBytes:   7 << 20,
	}
	data := MustMarshal(JSON{}, info)

	for _, c := range benchCodecs() {
		b.Run("marshal/"+c.Name(), func(b *testing.B) { benchmarkMarshal(b, c, info) })
		b.Run("unmarshal/"+c.Name(), func(b *testing.B) { benchmarkUnmarshal[vectorfile.Info](b, c, data) })
	}
}

// BenchmarkCodec_Values covers value files and read output.
func BenchmarkCodec_Values(b *testing.B) {
	values := testutil.NewRNG(4711).GaussianFloat64s(4096)
	data := MustMarshal(JSON{}, values)

	for _, c := range benchCodecs() {
		b.Run("marshal/"+c.Name(), func(b *testing.B) { benchmarkMarshal(b, c, values) })
		b.Run("unmarshal/"+c.Name(), func(b *testing.B) { benchmarkUnmarshal[[]float64](b, c, data) })
	}
}

// BenchmarkCodec_Selector covers selector files.
func BenchmarkCodec_Selector(b *testing.B) {
	indices := testutil.NewRNG(4711).Indices(1024, 1<<20)
	data := MustMarshal(JSON{}, indices)

	for _, c := range benchCodecs() {
		b.Run("unmarshal/"+c.Name(), func(b *testing.B) { benchmarkUnmarshal[[]uint32](b, c, data) })
	}
}
