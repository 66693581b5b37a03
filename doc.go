// Package activeset provides a selector recording which elements of a
// fixed-size data vector take part in a partial serialize/deserialize.
//
// # Modes
//
// A Selector is in one of three modes:
//
//   - AllActive: every element is active (the initial mode)
//   - Inactive: no element is active
//   - PartlyActive: exactly the indices added with AddIndex are active
//
// The selector never stores the vector length. Callers pass it at query
// time:
//
//	sel := activeset.New()
//	sel.AddIndices(0, 4, 5)
//	n := sel.ActiveSize(10) // 3
//
// Active returns a View that is only valid in PartlyActive mode. For the
// other modes callers operate on the full range (AllActive) or on nothing
// (Inactive):
//
//	if v := sel.Active(); v.Valid() {
//	    for _, idx := range v.All() {
//	        // ...
//	    }
//	}
//
// # Partial I/O
//
// The field package gathers and scatters active elements of in-memory
// vectors. The vectorfile package stores vectors as chunked, compressed
// blobs and reads or writes only the chunks holding active elements.
//
// Indices are never validated against the vector length by this package;
// field and vectorfile do that at transfer time.
package activeset
