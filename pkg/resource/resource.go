package resource

import (
	"context"
	"io"
	"math"
)

// MaxInMemoryRange is the largest byte count ReadRangeAsBytes will
// materialize. Ranges above it must use a streaming or file-backed read.
const MaxInMemoryRange = int64(math.MaxInt32)

// Resource is a random-access view over a byte blob of known, fixed size.
// Ranges are zero-indexed inclusive offsets. One instance serves one caller
// at a time; distinct instances may be read concurrently.
type Resource interface {
	// Size returns the total resource length in bytes, cached at
	// construction.
	Size() int64

	// ReadRange returns a stream of exactly the bytes in [start, end].
	// The range is validated before any I/O.
	ReadRange(ctx context.Context, start, end int64) (io.ReadCloser, error)

	// ReadRangeAsBytes materializes the bytes in [start, end]. Requests
	// larger than MaxInMemoryRange fail with *RangeTooLargeError.
	ReadRangeAsBytes(ctx context.Context, start, end int64) ([]byte, error)
}

// validateRange enforces 0 <= start <= end <= size-1. It runs identically
// for every backend, before any I/O is attempted.
func validateRange(size, start, end int64) error {
	if start < 0 || end < start || end > size-1 {
		return &InvalidRangeError{Start: start, End: end, Size: size}
	}
	return nil
}

// checkInMemory rejects materialized reads above the 31-bit ceiling.
func checkInMemory(start, end int64) error {
	if end-start+1 > MaxInMemoryRange {
		return &RangeTooLargeError{Start: start, End: end}
	}
	return nil
}
