package head

type phase uint8

const (
	fieldPhase phase = iota
	valuePhase
)

type markState uint8

const (
	markOpen markState = iota
	// markBroken follows a failed commit; only Cancel is accepted.
	markBroken
	markDone
)

// Mark is an open, uncommitted header write on a Head.
//
// Between Mark and Commit or Cancel the buffer holds bytes that are not yet a
// valid header. Cursors and Find skip them, but no other write is accepted
// until the Mark is consumed.
//
//	m, err := h.Mark()
//	if err != nil {
//		return err
//	}
//	for _, chunk := range chunks {
//		if err := m.PushField(chunk); err != nil {
//			m.Cancel()
//			return err
//		}
//	}
//	...
//	if err := m.Commit(); err != nil {
//		m.Cancel()
//		return err
//	}
type Mark struct {
	head  *Head
	base  int
	phase phase
	state markState
}

// Mark starts a partial write at the end of the buffer.
//
// At least 4 bytes of headroom are required: one field byte, both terminators
// and the trailing sentinel.
func (h *Head) Mark() (*Mark, error) {
	if h.storage == nil {
		return nil, ErrReleased
	}
	if h.txn != nil {
		return nil, ErrTransactionOpen
	}
	if h.Headroom() < markReserve {
		return nil, ErrInsufficientSpace
	}
	m := &Mark{head: h, base: h.used, phase: fieldPhase}
	h.txn = m
	return m, nil
}

// PushField appends b to the field name. It fails with ErrWrongPhase once
// PushValue has been called.
//
// The space check happens before writing: on failure nothing from b is stored.
func (m *Mark) PushField(b []byte) error {
	if err := m.check(); err != nil {
		return err
	}
	if m.phase != fieldPhase {
		return ErrWrongPhase
	}
	h := m.head
	if !h.fits(len(b), recordReserve) {
		return ErrCapacityExceeded
	}
	h.used += copy(h.storage[h.used:], b)
	return nil
}

// PushValue appends b to the value. The first call closes the field name,
// which must not be empty. Values may be empty.
func (m *Mark) PushValue(b []byte) error {
	if err := m.check(); err != nil {
		return err
	}
	h := m.head
	if m.phase == fieldPhase {
		if h.used == m.base {
			return ErrEmptyFieldName
		}
		// the field terminator is still to be written
		if !h.fits(len(b), recordReserve) {
			return ErrCapacityExceeded
		}
		m.closeField()
	} else if !h.fits(len(b), valueReserve) {
		return ErrCapacityExceeded
	}
	h.used += copy(h.storage[h.used:], b)
	return nil
}

// Commit seals the header. A header without any PushValue gets an empty value.
//
// If the written bytes do not form exactly one field and one value (a null
// byte was pushed), Commit returns ErrInvariantViolation and the Mark must be
// cancelled.
func (m *Mark) Commit() error {
	if err := m.check(); err != nil {
		return err
	}
	h := m.head
	if m.phase == fieldPhase {
		if h.used == m.base {
			return ErrEmptyFieldName
		}
		m.closeField()
	}
	h.terminate()

	if nulls(h.storage[m.base:h.used]) != 2 {
		m.state = markBroken
		return ErrInvariantViolation
	}
	h.seal()
	m.finish()
	return nil
}

// Cancel discards every byte written since Mark.
func (m *Mark) Cancel() error {
	if m.state == markDone {
		return ErrInvalidMark
	}
	m.head.truncate(m.base)
	m.finish()
	return nil
}

// Len returns the number of bytes written since Mark.
func (m *Mark) Len() int {
	if m.state == markDone {
		return 0
	}
	return m.head.used - m.base
}

func (m *Mark) check() error {
	switch m.state {
	case markDone:
		return ErrInvalidMark
	case markBroken:
		return ErrInvariantViolation
	}
	return nil
}

func (m *Mark) closeField() {
	m.head.terminate()
	m.phase = valuePhase
}

func (m *Mark) finish() {
	m.state = markDone
	m.head.txn = nil
}
