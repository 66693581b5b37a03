// Package field serializes and deserializes the active elements of
// in-memory data vectors.
//
// Gather packs the elements selected by an activeset.Selector into a dense
// buffer; Scatter writes such a buffer back. Unlike the selector itself,
// both functions check every active index against the vector length.
package field
