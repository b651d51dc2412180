package mxf

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"mxf-reader/pkg/errorlog"
	"mxf-reader/pkg/resource"
)

// ErrMalformedBER indicates a BER length field whose declared
// length-of-length is 0 or greater than 8. Framing cannot continue past it.
var ErrMalformedBER = errors.New("malformed BER length")

// StructuralError is a framing failure that aborts decoding of the current
// artifact. It is always recorded in the session log as FATAL before being
// returned.
type StructuralError struct {
	Message string
	Err     error
}

func (e *StructuralError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("structural metadata error: %s: %v", e.Message, e.Err)
	}
	return fmt.Sprintf("structural metadata error: %s", e.Message)
}

func (e *StructuralError) Unwrap() error {
	return e.Err
}

// KLVHeader is one decoded Key-Length-Value envelope header.
type KLVHeader struct {
	// Key is the 16-byte universal label.
	Key UL
	// ValueLength is the decoded BER length of the value.
	ValueLength uint64
	// HeaderSize is the number of bytes the key and length field occupy.
	HeaderSize int
}

// decodeBERLength reads a BER length: one byte short form when the high bit
// is clear, otherwise the low 7 bits give the count of following big-endian
// length bytes. Returns the length and the number of bytes consumed.
func decodeBERLength(cur *resource.ByteCursor) (uint64, int, error) {
	b0, err := cur.GetByte()
	if err != nil {
		return 0, 0, err
	}
	if b0 < 0x80 {
		return uint64(b0), 1, nil
	}

	n := int(b0 & 0x7f)
	if n == 0 || n > 8 {
		return 0, 0, fmt.Errorf("%w: length-of-length %d", ErrMalformedBER, n)
	}

	b, err := cur.GetBytes(n)
	if err != nil {
		return 0, 0, err
	}

	var length uint64
	for _, v := range b {
		length = length<<8 | uint64(v)
	}
	return length, 1 + n, nil
}

// KLVReader walks a byte window, yielding successive KLV envelopes. The
// sequence is lazy, finite and non-restartable; it stops at the end of the
// enclosing extent.
type KLVReader struct {
	cur *resource.ByteCursor
	log *errorlog.Log
}

// NewKLVReader creates a reader over cur, recording framing failures in log.
func NewKLVReader(cur *resource.ByteCursor, log *errorlog.Log) *KLVReader {
	return &KLVReader{cur: cur, log: log}
}

// Next decodes the next envelope, returning its header and value bytes. The
// value aliases the underlying window; callers that retain it across
// envelopes must copy. Returns io.EOF at the end of the extent. Framing
// failures are logged FATAL and returned as *StructuralError.
func (r *KLVReader) Next() (*KLVHeader, []byte, error) {
	if r.cur.Remaining() == 0 {
		return nil, nil, io.EOF
	}

	offset := r.cur.Position()

	keyBytes, err := r.cur.GetBytes(16)
	if err != nil {
		return nil, nil, r.fatal(offset, "truncated KLV key", err)
	}

	length, n, err := decodeBERLength(r.cur)
	if err != nil {
		return nil, nil, r.fatal(offset, "bad KLV length", err)
	}
	if length > uint64(r.cur.Remaining()) {
		return nil, nil, r.fatal(offset, "truncated KLV value",
			&resource.InsufficientDataError{Requested: int(length), Available: r.cur.Remaining()})
	}

	value, err := r.cur.GetBytes(int(length))
	if err != nil {
		return nil, nil, r.fatal(offset, "truncated KLV value", err)
	}

	return &KLVHeader{Key: ulFrom(keyBytes), ValueLength: length, HeaderSize: 16 + n}, value, nil
}

func (r *KLVReader) fatal(offset int, message string, err error) error {
	se := &StructuralError{Message: fmt.Sprintf("%s at offset %d", message, offset), Err: err}
	if r.log != nil {
		r.log.Add(errorlog.CodeEssenceMetadata, errorlog.Fatal, se.Error())
	}
	return se
}

// readUint reads a big-endian unsigned integer of the given byte width.
func readUint(cur *resource.ByteCursor, width int) (uint64, error) {
	b, err := cur.GetBytes(width)
	if err != nil {
		return 0, err
	}
	switch width {
	case 1:
		return uint64(b[0]), nil
	case 2:
		return uint64(binary.BigEndian.Uint16(b)), nil
	case 4:
		return uint64(binary.BigEndian.Uint32(b)), nil
	case 8:
		return binary.BigEndian.Uint64(b), nil
	default:
		var v uint64
		for _, x := range b {
			v = v<<8 | uint64(x)
		}
		return v, nil
	}
}
