// Package grid owns the shared symbol matrix.
//
// Ownership boundary:
// - bounded cell mutation (out of range reads return Empty, writes are ignored)
// - geometric transforms
// - comparison, difference and accuracy
// - flat row-major serialization
//
// Coordinates are 0-based here; the command grammar converts from 1-based text.
package grid
