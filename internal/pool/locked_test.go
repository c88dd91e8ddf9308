package pool

import (
	"fmt"
	"sync"
	"testing"
)

func TestLockedConcurrentIntern(t *testing.T) {
	l := NewLocked(NewStrings[uint32]())
	const numGoroutines = 50
	const numStrings = 500

	var wg sync.WaitGroup
	wg.Add(numGoroutines)
	for range numGoroutines {
		go func() {
			defer wg.Done()
			for i := range numStrings {
				s := fmt.Sprintf("string_%d", i)
				sym, err := l.Intern(s)
				if err != nil {
					t.Errorf("Intern(%q): %v", s, err)
					return
				}
				if got, err := l.Resolve(sym); err != nil || got != s {
					t.Errorf("Resolve(%v) = %q, %v; want %q", sym, got, err, s)
					return
				}
			}
		}()
	}
	wg.Wait()

	if l.Len() != numStrings {
		t.Errorf("Len = %d, want %d", l.Len(), numStrings)
	}
	ids := make(map[Sym[uint32]]string, numStrings)
	for i := range numStrings {
		s := fmt.Sprintf("string_%d", i)
		sym, ok := l.Lookup(s)
		if !ok {
			t.Fatalf("Lookup(%q) missed", s)
		}
		if prev, dup := ids[sym]; dup {
			t.Errorf("%q and %q share %v", s, prev, sym)
		}
		ids[sym] = s
	}
}

func TestLockedNilPool(t *testing.T) {
	l := NewLocked[int, uint8](nil)
	sym, err := l.Intern(5)
	if err != nil {
		t.Fatal(err)
	}
	if v, _ := l.Resolve(sym); v != 5 {
		t.Errorf("Resolve = %d", v)
	}
	if l.IsFull() {
		t.Error("fresh pool reports full")
	}
	if got := l.Snapshot(); len(got) != 1 || got[0] != 5 {
		t.Errorf("Snapshot = %v", got)
	}
}

func TestSharedIsSingleton(t *testing.T) {
	a := Shared()
	b := Shared()
	if a != b {
		t.Fatal("Shared returned distinct pools")
	}
	sym, err := a.Intern("shared_value")
	if err != nil {
		t.Fatal(err)
	}
	if v, err := b.Resolve(sym); err != nil || v != "shared_value" {
		t.Errorf("Resolve through second handle = %q, %v", v, err)
	}
}

func BenchmarkLockedConcurrentIntern(b *testing.B) {
	l := NewLocked(NewStrings[uint32]())
	values := make([]string, 100)
	for i := range values {
		values[i] = fmt.Sprintf("concurrent_string_%d", i)
	}

	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		i := 0
		for pb.Next() {
			_, _ = l.Intern(values[i%len(values)])
			i++
		}
	})
}
