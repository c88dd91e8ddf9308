// Package pool implements the general-purpose interning engine: values of any
// comparable type are deduplicated and assigned sequential identifiers of a
// configurable width.
//
// A Pool is not safe for concurrent use. Wrap it in Locked when several
// goroutines intern into the same pool.
package pool

import (
	"fmt"
	"iter"
	"slices"
	"strings"

	"fortio.org/safecast"
	"github.com/cockroachdb/swiss"

	"sympool/internal/symbol"
)

// Pool interns values of type T into symbols carrying identifiers of type I.
// Identifiers are assigned from 0 upwards without gaps and are never reused.
type Pool[T comparable, I symbol.ID] struct {
	values []T              // id -> canonical value
	index  *swiss.Map[T, I] // canonical value -> id
	limit  uint64           // number of ids available
	canon  func(T) T        // applied to values before they are stored
}

var _ symbol.Interner[string, Sym[uint32]] = (*Pool[string, uint32])(nil)

// New returns an empty pool.
func New[T comparable, I symbol.ID](opts ...Option) *Pool[T, I] {
	var cfg config
	for _, opt := range opts {
		opt(&cfg)
	}
	limit := symbol.Capacity[I]()
	if cfg.limit > 0 && cfg.limit < limit {
		limit = cfg.limit
	}
	return &Pool[T, I]{
		values: make([]T, 0, cfg.capHint),
		index:  swiss.New[T, I](cfg.capHint),
		limit:  limit,
	}
}

// NewStrings returns a string pool that stores private copies of interned
// strings, so a short value never pins the caller's larger buffer.
func NewStrings[I symbol.ID](opts ...Option) *Pool[string, I] {
	p := New[string, I](opts...)
	p.canon = strings.Clone
	return p
}

// Intern returns the symbol of value, assigning the next identifier if value
// was not seen before. When the identifier space is exhausted it returns an
// *symbol.OverflowError and the pool is not modified.
func (p *Pool[T, I]) Intern(value T) (Sym[I], error) {
	if id, ok := p.index.Get(value); ok {
		return Sym[I]{id: id}, nil
	}
	if uint64(len(p.values)) >= p.limit {
		return Sym[I]{}, p.overflow()
	}
	id, err := safecast.Conv[I](len(p.values))
	if err != nil {
		return Sym[I]{}, fmt.Errorf("%w: %w", p.overflow(), err)
	}
	if p.canon != nil {
		value = p.canon(value)
	}
	p.values = append(p.values, value)
	p.index.Put(value, id)
	return Sym[I]{id: id}, nil
}

// Lookup returns the symbol of value without interning it.
func (p *Pool[T, I]) Lookup(value T) (Sym[I], bool) {
	id, ok := p.index.Get(value)
	return Sym[I]{id: id}, ok
}

// Resolve returns the canonical value of sym. Symbols whose identifier is
// outside this pool yield an *symbol.NotFoundError.
func (p *Pool[T, I]) Resolve(sym Sym[I]) (T, error) {
	if !p.Has(sym) {
		var zero T
		return zero, &symbol.NotFoundError{ID: uint64(sym.id), Len: len(p.values)}
	}
	return p.values[sym.id], nil
}

// MustResolve is like Resolve but panics on unknown symbols.
func (p *Pool[T, I]) MustResolve(sym Sym[I]) T {
	v, err := p.Resolve(sym)
	if err != nil {
		panic(err)
	}
	return v
}

// Has reports whether sym is in range for this pool.
func (p *Pool[T, I]) Has(sym Sym[I]) bool {
	return uint64(sym.id) < uint64(len(p.values))
}

// Len returns the number of distinct values interned so far.
func (p *Pool[T, I]) Len() int {
	return len(p.values)
}

// IsFull reports whether the next new value would overflow.
func (p *Pool[T, I]) IsFull() bool {
	return uint64(len(p.values)) >= p.limit
}

// Limit returns the number of identifiers the pool may hand out.
func (p *Pool[T, I]) Limit() uint64 {
	return p.limit
}

// Snapshot returns a copy of all values in identifier order.
func (p *Pool[T, I]) Snapshot() []T {
	return slices.Clone(p.values)
}

// All iterates over symbols and their values in identifier order.
// The pool must not be modified during iteration.
func (p *Pool[T, I]) All() iter.Seq2[Sym[I], T] {
	return func(yield func(Sym[I], T) bool) {
		for i, v := range p.values {
			// i < limit, so the conversion cannot truncate
			if !yield(Sym[I]{id: I(i)}, v) {
				return
			}
		}
	}
}

func (p *Pool[T, I]) overflow() *symbol.OverflowError {
	return &symbol.OverflowError{Bits: symbol.Bits[I](), Limit: p.limit}
}
