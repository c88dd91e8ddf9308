// Package workload generates deterministic string sets for interning
// benchmarks: N random strings of a fixed length drawn from an alphabet.
package workload

import (
	"fmt"
	"math/rand/v2"
	"strings"

	"fortio.org/safecast"
	"golang.org/x/text/unicode/norm"
)

// DefaultAlphabet matches the lowercase ASCII letters used by the reference
// benchmarks.
const DefaultAlphabet = "abcdefghijklmnopqrstuvwxyz"

// DefaultCount is the number of strings per set in the reference benchmarks.
const DefaultCount = 100_000

// DefaultLengths are the string lengths of the reference benchmarks.
var DefaultLengths = []int{4, 8, 16, 32}

// Spec describes one generated set.
type Spec struct {
	Count    int    // number of strings
	Length   int    // runes per string
	Alphabet string // source runes; DefaultAlphabet when empty
	Seed     uint64
	// Normalize converts every string to Unicode NFC. Only matters for
	// alphabets with combining marks; lengths may shrink after composition.
	Normalize bool
}

// Set is a generated batch of strings of one nominal length.
type Set struct {
	Length int
	Values []string
	Bytes  int64 // total encoded size of Values
}

// Generate builds the set described by spec. Equal specs produce equal sets.
func Generate(spec Spec) (Set, error) {
	if spec.Count <= 0 {
		return Set{}, fmt.Errorf("workload: count must be positive, got %d", spec.Count)
	}
	if spec.Length < 0 {
		return Set{}, fmt.Errorf("workload: negative length %d", spec.Length)
	}
	alphabet := []rune(spec.Alphabet)
	if len(alphabet) == 0 {
		alphabet = []rune(DefaultAlphabet)
	}

	// каждая длина получает собственный поток случайных чисел
	rng := rand.New(rand.NewPCG(spec.Seed, uint64(spec.Length)))

	values := make([]string, spec.Count)
	var total int64
	var sb strings.Builder
	for i := range values {
		sb.Reset()
		sb.Grow(spec.Length)
		for range spec.Length {
			sb.WriteRune(alphabet[rng.IntN(len(alphabet))])
		}
		s := sb.String()
		if spec.Normalize {
			s = norm.NFC.String(s)
		}
		values[i] = s
		n, err := safecast.Conv[int64](len(s))
		if err != nil {
			return Set{}, fmt.Errorf("workload: %w", err)
		}
		total += n
	}
	return Set{Length: spec.Length, Values: values, Bytes: total}, nil
}

// GenerateAll builds one set per length, sharing the rest of base.
func GenerateAll(base Spec, lengths []int) ([]Set, error) {
	sets := make([]Set, 0, len(lengths))
	for _, l := range lengths {
		spec := base
		spec.Length = l
		set, err := Generate(spec)
		if err != nil {
			return nil, fmt.Errorf("length %d: %w", l, err)
		}
		sets = append(sets, set)
	}
	return sets, nil
}

// Distinct counts the distinct values of a set.
func (s Set) Distinct() int {
	seen := make(map[string]struct{}, len(s.Values))
	for _, v := range s.Values {
		seen[v] = struct{}{}
	}
	return len(seen)
}
