package resource

import (
	"bytes"
	"context"
	"io"

	"mxf-reader/internal/metrics"
)

// BytesResource is an in-memory Resource backend. It is the reference
// implementation of the range contract and useful for small artifacts that
// already live in memory.
type BytesResource struct {
	data []byte
}

// NewBytesResource creates a resource over data. The slice is not copied.
func NewBytesResource(data []byte) *BytesResource {
	return &BytesResource{data: data}
}

// Size returns the length of the underlying buffer.
func (r *BytesResource) Size() int64 {
	return int64(len(r.data))
}

// ReadRange returns a stream over the bytes in [start, end].
func (r *BytesResource) ReadRange(_ context.Context, start, end int64) (io.ReadCloser, error) {
	if err := validateRange(r.Size(), start, end); err != nil {
		metrics.RangeReadsTotal.WithLabelValues("bytes", "invalid").Inc()
		return nil, err
	}
	metrics.RangeReadsTotal.WithLabelValues("bytes", "success").Inc()
	return io.NopCloser(bytes.NewReader(r.data[start : end+1])), nil
}

// ReadRangeAsBytes returns a copy of the bytes in [start, end].
func (r *BytesResource) ReadRangeAsBytes(_ context.Context, start, end int64) ([]byte, error) {
	if err := validateRange(r.Size(), start, end); err != nil {
		metrics.RangeReadsTotal.WithLabelValues("bytes", "invalid").Inc()
		return nil, err
	}
	if err := checkInMemory(start, end); err != nil {
		metrics.RangeReadsTotal.WithLabelValues("bytes", "invalid").Inc()
		return nil, err
	}

	out := make([]byte, end-start+1)
	copy(out, r.data[start:end+1])

	metrics.RangeReadsTotal.WithLabelValues("bytes", "success").Inc()
	metrics.RangeReadBytes.WithLabelValues("bytes").Observe(float64(len(out)))
	return out, nil
}
