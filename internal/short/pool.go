// Package short implements compact string interning. Strings that fit into
// the identifier word are encoded into the symbol itself and never stored;
// longer strings go to a nested pool.Pool.
//
// The inline path touches no shared state, so interning and resolving short
// strings is lock-free. Only the fallback pool is guarded by a mutex, which
// makes a Pool safe for concurrent use.
package short

import (
	"sync"

	"sympool/internal/pool"
	"sympool/internal/symbol"
)

// Option configures a Pool at construction time.
type Option func(*config)

type config struct {
	inline  int
	capHint int
}

// WithInlineLimit lowers the inline threshold to n bytes. Values above the
// width's budget are ignored.
func WithInlineLimit(n int) Option {
	return func(c *config) {
		if n >= 0 && n < c.inline {
			c.inline = n
		}
	}
}

// WithFallbackCapacity preallocates the fallback store.
func WithFallbackCapacity(n int) Option {
	return func(c *config) {
		c.capHint = n
	}
}

// Pool interns strings into Sym values of width I.
type Pool[I symbol.ID] struct {
	inline int // fixed for the lifetime of the pool

	mu       sync.RWMutex
	fallback *pool.Pool[string, I]
}

var _ symbol.Interner[string, Sym[uint64]] = (*Pool[uint64])(nil)

// New returns a pool whose inline threshold is MaxInline[I] unless lowered
// with WithInlineLimit.
func New[I symbol.ID](opts ...Option) *Pool[I] {
	cfg := config{inline: MaxInline[I]()}
	for _, opt := range opts {
		opt(&cfg)
	}
	// the tag bit takes one bit from the fallback identifiers
	limit := uint64(1) << (symbol.Bits[I]() - 1)
	return &Pool[I]{
		inline:   cfg.inline,
		fallback: pool.NewStrings[I](pool.WithLimit(limit), pool.WithCapacity(cfg.capHint)),
	}
}

// Intern returns the symbol of s. Strings of at most InlineLimit bytes are
// encoded inline and always produce bit-identical symbols. Longer strings are
// interned into the fallback store, which fails with *symbol.OverflowError
// once exhausted.
func (p *Pool[I]) Intern(s string) (Sym[I], error) {
	if len(s) <= p.inline {
		return encodeInline[I](s), nil
	}
	return p.internFallback(s)
}

// InternBytes is like Intern but takes a byte slice. Inline values are
// encoded without allocating.
func (p *Pool[I]) InternBytes(b []byte) (Sym[I], error) {
	if len(b) <= p.inline {
		return encodeInline[I](b), nil
	}
	return p.internFallback(string(b))
}

func (p *Pool[I]) internFallback(s string) (Sym[I], error) {
	p.mu.RLock()
	sym, ok := p.fallback.Lookup(s)
	p.mu.RUnlock()
	if ok {
		return encodeFallback(sym.ID()), nil
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	sym, err := p.fallback.Intern(s)
	if err != nil {
		return Sym[I]{}, err
	}
	return encodeFallback(sym.ID()), nil
}

// Resolve returns the string of sym. Inline symbols are decoded directly;
// fallback symbols are looked up in the fallback store and fail with
// *symbol.NotFoundError when they do not belong to it.
func (p *Pool[I]) Resolve(sym Sym[I]) (string, error) {
	if v, ok := sym.Resolve(); ok {
		return v, nil
	}
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.fallback.Resolve(pool.MakeSym(sym.fallbackID()))
}

// InlineLimit returns the longest value, in bytes, that is encoded inline.
func (p *Pool[I]) InlineLimit() int { return p.inline }

// Len returns the number of values held by the fallback store.
func (p *Pool[I]) Len() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.fallback.Len()
}

// IsFull reports whether the fallback store has no identifiers left.
// Inline values can still be interned into a full pool.
func (p *Pool[I]) IsFull() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.fallback.IsFull()
}

// FallbackLimit returns the capacity of the fallback store.
func (p *Pool[I]) FallbackLimit() uint64 {
	return p.fallback.Limit()
}
