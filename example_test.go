package activeset_test

import (
	"context"
	"fmt"
	"log"

	"github.com/hupe1980/activeset"
	"github.com/hupe1980/activeset/blobstore"
	"github.com/hupe1980/activeset/field"
	"github.com/hupe1980/activeset/vectorfile"
)

// Example_selector demonstrates the three selector modes.
func Example_selector() {
	sel := activeset.New()
	fmt.Println(sel.Summary(), sel.ActiveSize(10))

	sel.AddIndices(0, 4, 5, 4)
	fmt.Println(sel.Summary(), sel.ActiveSize(10))

	off := activeset.NewInactive()
	fmt.Println(off.Summary(), off.ActiveSize(10))
	// Output:
	// NUMBER OF ACTIVE:0,STATUS:ALL_ACTIVE, 10
	// NUMBER OF ACTIVE:3,STATUS:PARTLY_ACTIVE, 3
	// NUMBER OF ACTIVE:0,STATUS:INACTIVE, 0
}

// Example_isActive shows that IsActive is positional while Contains tests
// membership.
func Example_isActive() {
	sel := activeset.New()
	sel.AddIndices(0, 4, 5)

	first, _ := sel.IsActive(0) // stored index at position 0 is 0
	_, err := sel.IsActive(3)

	fmt.Println(first, sel.Contains(0), err)
	// Output: false true index out of range: 3 (len 3)
}

// Example_gatherScatter updates only the active elements of a vector.
func Example_gatherScatter() {
	data := []float64{10, 11, 12, 13, 14, 15}

	sel := activeset.New()
	sel.AddIndices(0, 4, 5)

	packed, err := field.Gather(sel, data)
	if err != nil {
		log.Fatal(err)
	}
	for i := range packed {
		packed[i] *= -1
	}
	if err := field.Scatter(sel, packed, data); err != nil {
		log.Fatal(err)
	}

	fmt.Println(data)
	// Output: [-10 11 12 13 -14 -15]
}

// Example_vectorFile stores a vector and reads back only the active elements.
func Example_vectorFile() {
	ctx := context.Background()
	store := blobstore.NewMemoryStore()

	data := make([]float32, 10_000)
	for i := range data {
		data[i] = float32(i)
	}
	if _, err := vectorfile.Write(ctx, store, "pressure", data, vectorfile.WithChunkElements(1024)); err != nil {
		log.Fatal(err)
	}

	metrics := &activeset.BasicMetricsCollector{}
	f, err := vectorfile.Open(ctx, store, "pressure", vectorfile.WithMetrics(metrics))
	if err != nil {
		log.Fatal(err)
	}
	defer f.Close()

	sel := activeset.New()
	sel.AddIndices(9999, 3, 1500)

	values, err := vectorfile.ReadActive[float32](ctx, f, sel)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println(values, metrics.GetStats().ReadChunks, "of", f.Info().Chunks, "chunks")
	// Output: [9999 3 1500] 3 of 10 chunks
}
