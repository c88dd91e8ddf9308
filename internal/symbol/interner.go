// Package symbol defines the capability set shared by every interning strategy:
// identifier widths, the error taxonomy and the Interner interface.
//
// Concrete strategies live in sibling packages:
//
//   - pool: general-purpose interning of any comparable value
//   - short: compact string symbols that carry short values inline
//
// Symbol layouts are strategy-specific and never interchangeable; code that
// wants to stay agnostic of the strategy is written against Interner.
package symbol

import "fmt"

// Interner converts values into symbols and back.
type Interner[T any, S comparable] interface {
	// Intern returns the symbol for value, allocating one when needed.
	Intern(value T) (S, error)
	// Resolve returns the value a symbol stands for.
	Resolve(sym S) (T, error)
}

// Sized is implemented by pools that can report their occupancy.
type Sized interface {
	// Len returns the number of stored values.
	Len() int
	// IsFull reports whether the next new value would overflow.
	IsFull() bool
}

// InternAll interns values in order. On failure it returns the symbols
// produced so far together with the error.
func InternAll[T any, S comparable](in Interner[T, S], values []T) ([]S, error) {
	out := make([]S, 0, len(values))
	for i, v := range values {
		sym, err := in.Intern(v)
		if err != nil {
			return out, fmt.Errorf("intern value #%d: %w", i, err)
		}
		out = append(out, sym)
	}
	return out, nil
}

// ResolveAll resolves syms in order, stopping at the first failure.
func ResolveAll[T any, S comparable](in Interner[T, S], syms []S) ([]T, error) {
	out := make([]T, 0, len(syms))
	for i, s := range syms {
		v, err := in.Resolve(s)
		if err != nil {
			return out, fmt.Errorf("resolve symbol #%d: %w", i, err)
		}
		out = append(out, v)
	}
	return out, nil
}
