package resource

import "fmt"

// InvalidRangeError reports a malformed or out-of-bounds byte-range request.
// The request was rejected before any I/O.
type InvalidRangeError struct {
	Start int64
	End   int64
	Size  int64
}

func (e *InvalidRangeError) Error() string {
	return fmt.Sprintf("invalid byte range [%d, %d] for resource of size %d", e.Start, e.End, e.Size)
}

// RangeTooLargeError reports a materialized read whose byte count exceeds
// MaxInMemoryRange. Callers should switch to a streaming or file-backed read.
type RangeTooLargeError struct {
	Start int64
	End   int64
}

// Count returns the number of bytes the rejected request asked for.
func (e *RangeTooLargeError) Count() int64 {
	return e.End - e.Start + 1
}

func (e *RangeTooLargeError) Error() string {
	return fmt.Sprintf("number of bytes requested = %d is greater than %d", e.Count(), MaxInMemoryRange)
}

// InsufficientDataError reports a sequential read or skip that asked for more
// bytes than remain in the buffer. The cursor position is unchanged.
type InsufficientDataError struct {
	Requested int
	Available int
}

func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf("insufficient data: requested %d bytes, %d available", e.Requested, e.Available)
}

// ResourceIOError wraps an underlying storage or network fault raised while
// fetching bytes. Retry policy is the caller's decision.
type ResourceIOError struct {
	Op   string // "stat", "open", "seek", "read", "get"
	Name string // file path or bucket/object
	Err  error
}

func (e *ResourceIOError) Error() string {
	return fmt.Sprintf("resource %s %s: %v", e.Op, e.Name, e.Err)
}

func (e *ResourceIOError) Unwrap() error {
	return e.Err
}

// InvalidLocationError reports a malformed object-store location string.
// This is a data error, not a transport fault.
type InvalidLocationError struct {
	Raw    string
	Reason string
}

func (e *InvalidLocationError) Error() string {
	return fmt.Sprintf("invalid object location %q: %s", e.Raw, e.Reason)
}
