package symbol

import (
	"errors"
	"fmt"
)

var (
	// ErrOverflow reports that a pool has no identifiers left for a new value.
	ErrOverflow = errors.New("identifier space exhausted")
	// ErrNotFound reports that a symbol does not refer to an entry of the queried pool.
	ErrNotFound = errors.New("symbol not found")
)

// OverflowError is returned by Intern when the next identifier would not fit.
// The pool is left unchanged.
type OverflowError struct {
	Bits  int    // identifier width
	Limit uint64 // number of identifiers the pool may hand out
}

func (e *OverflowError) Error() string {
	return fmt.Sprintf("%v: %d-bit pool holds at most %d values", ErrOverflow, e.Bits, e.Limit)
}

func (e *OverflowError) Unwrap() error { return ErrOverflow }

// NotFoundError is returned by Resolve for identifiers outside the pool.
type NotFoundError struct {
	ID  uint64 // offending identifier
	Len int    // entries in the queried pool
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%v: id %d out of range (pool has %d entries)", ErrNotFound, e.ID, e.Len)
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }
