package pool

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"unsafe"

	"github.com/google/go-cmp/cmp"

	"sympool/internal/symbol"
)

func TestPoolCatDog(t *testing.T) {
	p := NewStrings[uint32]()

	cat, err := p.Intern("cat")
	if err != nil {
		t.Fatalf("intern cat: %v", err)
	}
	dog, err := p.Intern("dog")
	if err != nil {
		t.Fatalf("intern dog: %v", err)
	}
	if cat == dog {
		t.Fatalf("cat and dog share symbol %v", cat)
	}
	again, err := p.Intern("cat")
	if err != nil {
		t.Fatalf("intern cat again: %v", err)
	}
	if again != cat {
		t.Errorf("second intern of cat = %v, want %v", again, cat)
	}

	if s, err := p.Resolve(cat); err != nil || s != "cat" {
		t.Errorf("Resolve(cat) = %q, %v", s, err)
	}
	if s, err := p.Resolve(dog); err != nil || s != "dog" {
		t.Errorf("Resolve(dog) = %q, %v", s, err)
	}
	if p.Len() != 2 {
		t.Errorf("Len = %d, want 2", p.Len())
	}
}

func TestPoolUniquenessAndRoundTrip(t *testing.T) {
	p := NewStrings[uint32]()
	values := []string{"", "a", "b", "ab", "ba", "a", "", "long value with spaces", "ab"}

	seen := make(map[string]Sym[uint32])
	for _, v := range values {
		sym, err := p.Intern(v)
		if err != nil {
			t.Fatalf("Intern(%q): %v", v, err)
		}
		if prev, ok := seen[v]; ok && prev != sym {
			t.Errorf("Intern(%q) = %v, earlier %v", v, sym, prev)
		}
		for other, otherSym := range seen {
			if other != v && otherSym == sym {
				t.Errorf("%q and %q share symbol %v", v, other, sym)
			}
		}
		seen[v] = sym

		got, err := p.Resolve(sym)
		if err != nil || got != v {
			t.Errorf("Resolve(Intern(%q)) = %q, %v", v, got, err)
		}
	}
	if p.Len() != len(seen) {
		t.Errorf("Len = %d, want %d distinct values", p.Len(), len(seen))
	}
}

func TestPoolIdempotentIntern(t *testing.T) {
	p := New[int, uint16]()
	first, _ := p.Intern(42)
	before := p.Len()
	second, _ := p.Intern(42)
	if first != second {
		t.Errorf("Intern(42) twice = %v, %v", first, second)
	}
	if p.Len() != before {
		t.Errorf("Len grew from %d to %d on repeated intern", before, p.Len())
	}
}

func TestPoolMonotonicIDs(t *testing.T) {
	p := NewStrings[uint64]()
	for i := range 1000 {
		sym, err := p.Intern(fmt.Sprintf("value_%d", i))
		if err != nil {
			t.Fatalf("intern #%d: %v", i, err)
		}
		if sym.ID() != uint64(i) {
			t.Fatalf("value_%d got id %d, want %d", i, sym.ID(), i)
		}
		// повторы не должны сдвигать счётчик
		if _, err := p.Intern("value_0"); err != nil {
			t.Fatal(err)
		}
	}
}

func TestPoolOverflowByWidth(t *testing.T) {
	p := New[int, uint8]()
	syms := make([]Sym[uint8], 0, 256)
	for i := range 256 {
		sym, err := p.Intern(i)
		if err != nil {
			t.Fatalf("Intern(%d): %v", i, err)
		}
		syms = append(syms, sym)
	}
	if !p.IsFull() {
		t.Error("pool with 256 uint8 ids should be full")
	}

	_, err := p.Intern(256)
	if !errors.Is(err, symbol.ErrOverflow) {
		t.Fatalf("257th Intern error = %v, want ErrOverflow", err)
	}
	var oe *symbol.OverflowError
	if !errors.As(err, &oe) {
		t.Fatalf("error %T is not *OverflowError", err)
	}
	if oe.Bits != 8 || oe.Limit != 256 {
		t.Errorf("OverflowError = %+v, want Bits=8 Limit=256", oe)
	}
	if p.Len() != 256 {
		t.Errorf("failed intern changed Len to %d", p.Len())
	}
	if _, ok := p.Lookup(256); ok {
		t.Error("failed intern left the value indexed")
	}

	for i, sym := range syms {
		v, err := p.Resolve(sym)
		if err != nil || v != i {
			t.Errorf("Resolve(%v) = %d, %v; want %d", sym, v, err, i)
		}
	}
	// existing values still intern when full
	if sym, err := p.Intern(7); err != nil || sym != syms[7] {
		t.Errorf("Intern(7) on full pool = %v, %v", sym, err)
	}
}

func TestPoolOverflowByLimit(t *testing.T) {
	const n = 3
	p := NewStrings[uint32](WithLimit(n))
	for i := range n {
		if _, err := p.Intern(strings.Repeat("x", i+1)); err != nil {
			t.Fatalf("intern #%d: %v", i, err)
		}
	}
	_, err := p.Intern("overflow")
	if !errors.Is(err, symbol.ErrOverflow) {
		t.Fatalf("error = %v, want ErrOverflow", err)
	}
	if p.Limit() != n {
		t.Errorf("Limit = %d, want %d", p.Limit(), n)
	}
}

func TestPoolLimitAboveWidthIsClamped(t *testing.T) {
	p := New[int, uint8](WithLimit(1 << 20))
	if p.Limit() != 256 {
		t.Errorf("Limit = %d, want 256", p.Limit())
	}
}

func TestPoolCrossPoolResolution(t *testing.T) {
	a := NewStrings[uint32]()
	b := NewStrings[uint32]()
	for _, s := range []string{"x", "y", "z"} {
		if _, err := a.Intern(s); err != nil {
			t.Fatal(err)
		}
	}
	foreign, _ := a.Intern("z") // id 2
	if _, err := b.Intern("only"); err != nil {
		t.Fatal(err)
	}

	_, err := b.Resolve(foreign)
	if !errors.Is(err, symbol.ErrNotFound) {
		t.Fatalf("Resolve(foreign) error = %v, want ErrNotFound", err)
	}
	var nf *symbol.NotFoundError
	if !errors.As(err, &nf) || nf.ID != 2 || nf.Len != 1 {
		t.Errorf("NotFoundError = %+v", nf)
	}
	if b.Has(foreign) {
		t.Error("Has(foreign) = true")
	}
}

func TestPoolMustResolvePanics(t *testing.T) {
	p := NewStrings[uint16]()
	defer func() {
		if r := recover(); r == nil {
			t.Error("MustResolve did not panic on unknown symbol")
		}
	}()
	p.MustResolve(MakeSym[uint16](9))
}

func TestPoolSnapshotAndAll(t *testing.T) {
	p := NewStrings[uint32]()
	for _, s := range []string{"alpha", "beta", "alpha", "gamma"} {
		if _, err := p.Intern(s); err != nil {
			t.Fatal(err)
		}
	}

	want := []string{"alpha", "beta", "gamma"}
	snap := p.Snapshot()
	if diff := cmp.Diff(want, snap); diff != "" {
		t.Errorf("Snapshot mismatch (-want +got):\n%s", diff)
	}
	snap[0] = "modified"
	if v := p.MustResolve(MakeSym[uint32](0)); v != "alpha" {
		t.Errorf("Snapshot aliases pool storage: %q", v)
	}

	var got []string
	for sym, v := range p.All() {
		if p.MustResolve(sym) != v {
			t.Errorf("All yielded %v -> %q inconsistent with Resolve", sym, v)
		}
		got = append(got, v)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("All mismatch (-want +got):\n%s", diff)
	}
}

func TestStringPoolCopiesInput(t *testing.T) {
	p := NewStrings[uint32]()

	buf := []byte("original")
	sym, err := InternBytes(p, buf)
	if err != nil {
		t.Fatal(err)
	}
	buf[0] = 'X'
	if s := p.MustResolve(sym); s != "original" {
		t.Errorf("pool kept caller bytes: %q", s)
	}

	big := strings.Repeat("abcdef", 100)
	sub := big[6:12]
	sym, _ = p.Intern(sub)
	stored := p.MustResolve(sym)
	if unsafe.StringData(stored) == unsafe.StringData(sub) {
		t.Error("pool stored a substring of the caller's buffer")
	}
	if again, _ := InternBytes(p, []byte("abcdef")); again != sym {
		t.Errorf("InternBytes = %v, want %v", again, sym)
	}
}

type label string

func TestPoolNamedIDType(t *testing.T) {
	type tokenID uint16
	p := New[label, tokenID]()
	sym, err := p.Intern("kw_fn")
	if err != nil {
		t.Fatal(err)
	}
	if sym.ID() != tokenID(0) {
		t.Errorf("first id = %d", sym.ID())
	}
	if p.Limit() != 1<<16 {
		t.Errorf("Limit = %d", p.Limit())
	}
}

func TestInternAllThroughInterface(t *testing.T) {
	var in symbol.Interner[string, Sym[uint32]] = NewStrings[uint32]()
	values := []string{"a", "b", "a"}
	syms, err := symbol.InternAll(in, values)
	if err != nil {
		t.Fatal(err)
	}
	if syms[0] != syms[2] {
		t.Errorf("InternAll: %v != %v", syms[0], syms[2])
	}
	back, err := symbol.ResolveAll(in, syms)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(values, back); diff != "" {
		t.Errorf("ResolveAll mismatch (-want +got):\n%s", diff)
	}
}

func BenchmarkPoolIntern(b *testing.B) {
	p := NewStrings[uint32]()
	values := make([]string, 1000)
	for i := range values {
		values[i] = fmt.Sprintf("benchmark_string_%d", i)
	}

	i := 0
	for b.Loop() {
		_, _ = p.Intern(values[i%len(values)])
		i++
	}
}

func BenchmarkPoolResolve(b *testing.B) {
	p := NewStrings[uint32]()
	syms := make([]Sym[uint32], 1000)
	for i := range syms {
		syms[i], _ = p.Intern(fmt.Sprintf("string_%d", i))
	}

	i := 0
	for b.Loop() {
		_, _ = p.Resolve(syms[i%len(syms)])
		i++
	}
}
