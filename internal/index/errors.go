// ABOUTME: Sentinel errors for the vector index lifecycle
// ABOUTME: Callers branch on these with errors.Is to decide on rebuild/recovery
package index

import "errors"

var (
	// ErrNotBuilt indicates Save was called before any successful
	// Build or Load.
	ErrNotBuilt = errors.New("index not built")

	// ErrIndexNotFound indicates a persisted index artifact is missing
	// at the given location. Typically recovered by rebuilding from
	// source documents.
	ErrIndexNotFound = errors.New("index artifacts not found")

	// ErrCorruptIndex indicates the persisted artifacts are internally
	// inconsistent or cannot be parsed.
	ErrCorruptIndex = errors.New("index artifacts corrupt")

	// ErrDimensionMismatch indicates a vector does not match the
	// index's embedding dimension.
	ErrDimensionMismatch = errors.New("embedding dimension mismatch")
)
