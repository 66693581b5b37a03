// Package conv provides checked integer conversions.
//
// Use them where a value crosses from untrusted input (vector file headers,
// command line flags) into a narrower or differently signed type. For
// conversions that are provably safe by construction, use a direct cast.
package conv
