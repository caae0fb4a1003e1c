package head

import "bytes"

// Cursor walks the committed headers of a Head in insertion order.
//
//	c := head.NewCursor(h)
//	for c.Next() {
//		if c.Field() == "Content-Length" {
//			// ...
//		}
//	}
//
// Field and Value share memory with the buffer; they are not copies.
// A Cursor never returns bytes of an open Mark.
type Cursor struct {
	head *Head
	pos  int

	field string
	value string
}

// NewCursor returns a cursor positioned before the first header.
func NewCursor(h *Head) *Cursor {
	return &Cursor{head: h}
}

// Next moves to the next header. It returns false at the end of the headers,
// and keeps returning false on later calls.
func (c *Cursor) Next() bool {
	data := c.head.storage[:c.head.committed]
	if c.pos >= len(data) || data[c.pos] == 0 {
		c.field, c.value = "", ""
		return false
	}
	c.field, c.pos = segment(data, c.pos)
	c.value, c.pos = segment(data, c.pos)
	return true
}

// Field returns the current header name, empty before the first Next and
// after the last one.
func (c *Cursor) Field() string {
	return c.field
}

// Value returns the current header value.
func (c *Cursor) Value() string {
	return c.value
}

// segment returns the null-terminated segment at pos and the offset past its
// terminator.
func segment(data []byte, pos int) (string, int) {
	if pos >= len(data) {
		return "", pos
	}
	n := bytes.IndexByte(data[pos:], 0)
	if n < 0 {
		n = len(data) - pos
	}
	return bytesToString(data[pos : pos+n]), pos + n + 1
}
