package fuzztests

import (
	"bytes"
	"testing"

	"sympool/internal/workload"
)

const (
	maxFuzzInput = 64 << 10 // 64 KiB
	maxValues    = 4096
)

func addCorpusSeeds(f *testing.F) {
	f.Add([]byte{})
	f.Add([]byte("cat\x00dog\x00cat"))
	// длины вокруг inline-бюджета 16/32/64-битных символов
	f.Add([]byte("a\x00ab\x00abc\x00abcd\x00abcdefg\x00abcdefgh"))
	f.Add([]byte("\x00\x00\xff\xfe\x00\x80"))
	f.Add([]byte("é\x00é"))
	addWorkloadSeeds(f)
}

// addWorkloadSeeds reuses the benchmark generator so the corpus starts with
// the value shapes that get measured.
func addWorkloadSeeds(f *testing.F) {
	for _, length := range workload.DefaultLengths {
		set, err := workload.Generate(workload.Spec{Count: 32, Length: length, Seed: 1})
		if err != nil {
			return
		}
		parts := make([][]byte, len(set.Values))
		for i, v := range set.Values {
			parts[i] = []byte(v)
		}
		f.Add(bytes.Join(parts, []byte{0}))
	}
}

// splitValues turns fuzz input into a value list, NUL-separated.
func splitValues(input []byte) []string {
	if len(input) > maxFuzzInput {
		input = input[:maxFuzzInput]
	}
	parts := bytes.SplitN(input, []byte{0}, maxValues)
	values := make([]string, len(parts))
	for i, p := range parts {
		values[i] = string(p)
	}
	return values
}
