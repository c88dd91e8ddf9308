package short

import (
	"fmt"
	"strconv"

	"sympool/internal/symbol"
)

// Sym is a compact string symbol stored in a single word of type I.
//
// Layout for a W-bit identifier type:
//
//	bit W-1         tag: 0 = inline, 1 = fallback
//	inline:   bits [W-8, W-1)  byte length
//	          bits [0, W-8)    bytes, byte i at bits [8i, 8i+8)
//	fallback: bits [0, W-1)    identifier in the fallback pool
//
// The zero Sym is the inline empty string.
type Sym[I symbol.ID] struct {
	bits I
}

// MaxInline returns how many bytes an inline symbol of type I can carry.
func MaxInline[I symbol.ID]() int {
	return symbol.Bits[I]()/8 - 1
}

// FromBits rebuilds a symbol from the word returned by Sym.Bits.
func FromBits[I symbol.ID](bits I) Sym[I] {
	return Sym[I]{bits: bits}
}

func tag[I symbol.ID]() I {
	return I(1) << (symbol.Bits[I]() - 1)
}

func encodeInline[I symbol.ID, B ~string | ~[]byte](v B) Sym[I] {
	bits := I(len(v)) << (symbol.Bits[I]() - 8)
	for i := range len(v) {
		bits |= I(v[i]) << (8 * i)
	}
	return Sym[I]{bits: bits}
}

func encodeFallback[I symbol.ID](id I) Sym[I] {
	return Sym[I]{bits: tag[I]() | id}
}

// Bits returns the raw word.
func (s Sym[I]) Bits() I { return s.bits }

// IsInline reports whether the symbol carries its value.
func (s Sym[I]) IsInline() bool {
	return s.bits&tag[I]() == 0
}

// Len returns the byte length of an inline symbol.
// ok is false for fallback symbols.
func (s Sym[I]) Len() (n int, ok bool) {
	if !s.IsInline() {
		return 0, false
	}
	return s.inlineLen(), true
}

func (s Sym[I]) inlineLen() int {
	n := int((s.bits >> (symbol.Bits[I]() - 8)) & 0x7f)
	if n > MaxInline[I]() {
		panic(fmt.Sprintf("short: malformed symbol %#x: inline length %d exceeds %d", uint64(s.bits), n, MaxInline[I]()))
	}
	return n
}

func (s Sym[I]) fallbackID() I {
	return s.bits &^ tag[I]()
}

// Resolve decodes an inline symbol without any pool. ok is false for
// fallback symbols, which have to be resolved through their Pool.
// A malformed inline symbol panics.
func (s Sym[I]) Resolve() (value string, ok bool) {
	if !s.IsInline() {
		return "", false
	}
	n := s.inlineLen()
	if n == 0 {
		return "", true
	}
	var buf [8]byte
	for i := range n {
		buf[i] = byte(s.bits >> (8 * i))
	}
	return string(buf[:n]), true
}

func (s Sym[I]) String() string {
	if v, ok := s.Resolve(); ok {
		return strconv.Quote(v)
	}
	return fmt.Sprintf("#%d", uint64(s.fallbackID()))
}
