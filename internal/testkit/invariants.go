package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"sympool/internal/symbol"
)

// CheckInterner interns values into in and checks the interning contract:
// 1) equal values get equal symbols and unequal values distinct symbols
// 2) every symbol resolves back to its value
// 3) interning a value again returns the symbol it got the first time
//
// Errors from Intern, overflow included, are wrapped with %w so callers can
// match them with errors.Is.
func CheckInterner[S comparable](in symbol.Interner[string, S], values []string) error {
	byValue := make(map[string]S, len(values))
	bySym := make(map[S]string, len(values))
	for i, v := range values {
		sym, err := in.Intern(v)
		if err != nil {
			return fmt.Errorf("intern value #%d: %w", i, err)
		}
		if prev, seen := byValue[v]; seen && prev != sym {
			return fmt.Errorf("value %q interned to %v, earlier to %v", v, sym, prev)
		}
		if other, seen := bySym[sym]; seen && other != v {
			return fmt.Errorf("values %q and %q share symbol %v", other, v, sym)
		}
		byValue[v] = sym
		bySym[sym] = v
	}

	// 2) round trip
	for v, sym := range byValue {
		got, err := in.Resolve(sym)
		if err != nil {
			return fmt.Errorf("resolve %v (for %q): %w", sym, v, err)
		}
		if got != v {
			return fmt.Errorf("resolve %v = %q, want %q", sym, got, v)
		}
	}

	// 3) idempotence
	for v, sym := range byValue {
		again, err := in.Intern(v)
		if err != nil {
			return fmt.Errorf("re-intern %q: %w", v, err)
		}
		if again != sym {
			return fmt.Errorf("re-intern %q = %v, want %v", v, again, sym)
		}
	}
	return nil
}

// CheckDense verifies that ids, listed in first-intern order of distinct
// values, are exactly 0, 1, ..., len(ids)-1.
func CheckDense[I symbol.ID](ids []I) error {
	for i, id := range ids {
		want, err := safecast.Conv[I](i)
		if err != nil {
			return fmt.Errorf("id #%d: %w", i, err)
		}
		if id != want {
			return fmt.Errorf("id #%d = %d, want %d", i, id, want)
		}
	}
	return nil
}
