package head

import "errors"

// Construction and lifetime errors
var (
	// ErrOutOfMemory indicates the requested capacity cannot be allocated.
	// Capacity must be in [1 ... MaxCapacity].
	ErrOutOfMemory = errors.New("head: cannot allocate buffer")

	// ErrReleased indicates the buffer storage has already been released.
	ErrReleased = errors.New("head: buffer released")
)

// Write errors
var (
	// ErrCapacityExceeded indicates an append would overrun the reserved headroom.
	// Nothing from the failed call remains in the buffer.
	ErrCapacityExceeded = errors.New("head: capacity exceeded")

	// ErrInsufficientSpace indicates too little headroom to start a transaction.
	ErrInsufficientSpace = errors.New("head: insufficient space for a new header")

	// ErrEmptyFieldName indicates a value was started (or a header committed)
	// before any field byte was written.
	ErrEmptyFieldName = errors.New("head: empty field name")

	// ErrNullByte indicates a field or value passed to Push contains a null byte.
	ErrNullByte = errors.New("head: field or value contains a null byte")
)

// Transaction errors
var (
	// ErrTransactionOpen indicates another Mark is open on the buffer.
	ErrTransactionOpen = errors.New("head: transaction already open")

	// ErrWrongPhase indicates field bytes were pushed after the value was started.
	ErrWrongPhase = errors.New("head: field bytes pushed in value phase")

	// ErrInvariantViolation indicates the commit-time consistency check failed.
	// The transaction stays open and must be cancelled.
	ErrInvariantViolation = errors.New("head: record terminators are inconsistent")

	// ErrInvalidMark indicates the Mark was already committed or cancelled.
	ErrInvalidMark = errors.New("head: mark already consumed")
)
