package resource

// ByteCursor is a sequential, forward-only reader over an in-memory buffer.
// Failed reads and skips leave the position unchanged. A cursor has a single
// owner; it is not safe for concurrent use.
type ByteCursor struct {
	buf []byte
	pos int
}

// NewByteCursor creates a cursor positioned at the start of buf. The cursor
// does not copy the buffer; the caller must not mutate it while reading.
func NewByteCursor(buf []byte) *ByteCursor {
	return &ByteCursor{buf: buf}
}

// GetBytes returns the next n bytes and advances the position by n. The
// returned slice aliases the underlying buffer. Fails with
// *InsufficientDataError when fewer than n bytes remain.
func (c *ByteCursor) GetBytes(n int) ([]byte, error) {
	if n < 0 || n > c.Remaining() {
		return nil, &InsufficientDataError{Requested: n, Available: c.Remaining()}
	}
	b := c.buf[c.pos : c.pos+n]
	c.pos += n
	return b, nil
}

// GetByte returns the next single byte and advances the position by one.
func (c *ByteCursor) GetByte() (byte, error) {
	b, err := c.GetBytes(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

// SkipBytes advances the position by n without materializing bytes. Fails
// with *InsufficientDataError if n exceeds the remaining length; no partial
// skip occurs on failure.
func (c *ByteCursor) SkipBytes(n int) error {
	if n < 0 || n > c.Remaining() {
		return &InsufficientDataError{Requested: n, Available: c.Remaining()}
	}
	c.pos += n
	return nil
}

// Position returns the current offset from the start of the buffer.
func (c *ByteCursor) Position() int {
	return c.pos
}

// Remaining returns the number of unread bytes.
func (c *ByteCursor) Remaining() int {
	return len(c.buf) - c.pos
}
