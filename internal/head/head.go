// Package head implements a fixed-capacity, append-only buffer of HTTP headers.
//
// All headers live in one byte slice allocated at construction. Each header is
// stored as its field name and its value, both followed by a null byte:
//
//	Content-Length\x00123\x00Content-Type\x00application/json\x00\x00
//
// The byte following the last header is always a null sentinel and is not
// counted in Used. Headers can be appended atomically with Push, or piece by
// piece through a Mark, but never edited or removed. Read them back with Find
// or a Cursor.
//
// A Head is not safe for concurrent use. Readers may share a Head as long as
// no goroutine writes to it.
package head

import (
	"bytes"
	"fmt"
	"strings"
)

const (
	// MaxCapacity is the largest buffer New agrees to allocate.
	MaxCapacity = 1 << 30

	// recordReserve covers the field terminator, the value terminator and
	// the trailing sentinel.
	recordReserve = 3
	// valueReserve covers the value terminator and the trailing sentinel.
	valueReserve = 2
	// markReserve is the smallest record: one field byte plus recordReserve.
	markReserve = 4
)

// Head is a flat buffer of HTTP headers with a fixed capacity.
type Head struct {
	storage []byte
	used    int

	// committed is the end of readable data: used at rest, the mark base
	// while a transaction is open.
	committed int
	records   int

	txn *Mark
}

// New allocates an empty buffer of capacity bytes.
//
// One byte is always kept for the trailing sentinel, so a buffer of capacity
// n holds at most n-1 bytes of encoded headers.
func New(capacity int) (*Head, error) {
	if capacity <= 0 || capacity > MaxCapacity {
		return nil, fmt.Errorf("%w: capacity %d", ErrOutOfMemory, capacity)
	}
	return &Head{storage: make([]byte, capacity)}, nil
}

// Release drops the buffer storage. An open Mark is invalidated.
// The Head must not be used afterwards.
func (h *Head) Release() {
	if h.txn != nil {
		h.txn.state = markDone
		h.txn = nil
	}
	h.storage = nil
	h.used, h.committed, h.records = 0, 0, 0
}

// Capacity returns the fixed size of the buffer, 0 once released.
func (h *Head) Capacity() int {
	return len(h.storage)
}

// Used returns the number of encoded bytes, the trailing sentinel excluded.
func (h *Head) Used() int {
	return h.used
}

// Headroom returns the number of bytes still available for writes.
func (h *Head) Headroom() int {
	return len(h.storage) - h.used
}

// Len returns the number of committed headers.
func (h *Head) Len() int {
	return h.records
}

// Push appends one complete header.
//
// Either the whole header is stored or nothing is: on failure Used is exactly
// what it was before the call.
func (h *Head) Push(field, value string) error {
	if h.storage == nil {
		return ErrReleased
	}
	if h.txn != nil {
		return ErrTransactionOpen
	}
	if len(field) == 0 {
		return ErrEmptyFieldName
	}
	if strings.IndexByte(field, 0) >= 0 || strings.IndexByte(value, 0) >= 0 {
		return ErrNullByte
	}

	mark := h.used
	if !h.fits(len(field), recordReserve) {
		return ErrCapacityExceeded
	}
	h.used += copy(h.storage[h.used:], field)
	h.terminate()

	if !h.fits(len(value), valueReserve) {
		h.truncate(mark)
		return ErrCapacityExceeded
	}
	h.used += copy(h.storage[h.used:], value)
	h.terminate()

	h.seal()
	return nil
}

// PushBytes is Push for callers holding byte slices. The bytes are copied.
func (h *Head) PushBytes(field, value []byte) error {
	return h.Push(bytesToString(field), bytesToString(value))
}

// Find returns the value of the first header whose field name matches field,
// ignoring ASCII case. It returns an empty string if there is no such header.
//
// Find scans the buffer from the start on every call. To process all headers
// iterate once with a Cursor instead.
func (h *Head) Find(field string) string {
	c := NewCursor(h)
	for c.Next() {
		if equalFold(c.Field(), field) {
			return c.Value()
		}
	}
	return ""
}

// VisitAll calls visitor for each committed header in insertion order.
// Iteration stops if visitor returns false.
func (h *Head) VisitAll(visitor func(field, value string) bool) {
	c := NewCursor(h)
	for c.Next() {
		if !visitor(c.Field(), c.Value()) {
			return
		}
	}
}

// fits reports whether n bytes can be written while keeping reserve bytes free.
func (h *Head) fits(n, reserve int) bool {
	return len(h.storage)-h.used-reserve >= n
}

// terminate closes the segment being written.
func (h *Head) terminate() {
	h.storage[h.used] = 0
	h.used++
}

// truncate discards everything from off onwards.
func (h *Head) truncate(off int) {
	h.used = off
	h.storage[off] = 0
}

// seal makes the record written since the last seal readable.
func (h *Head) seal() {
	h.storage[h.used] = 0
	h.committed = h.used
	h.records++
}

func nulls(b []byte) int {
	return bytes.Count(b, []byte{0})
}

// equalFold compares two header names ignoring ASCII case.
func equalFold(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := 0; i < len(a); i++ {
		if toLower(a[i]) != toLower(b[i]) {
			return false
		}
	}
	return true
}

func toLower(b byte) byte {
	if b >= 'A' && b <= 'Z' {
		return b + 'a' - 'A'
	}
	return b
}
