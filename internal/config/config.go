// Package config loads symbench.toml.
package config

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"fortio.org/safecast"
	"github.com/BurntSushi/toml"

	"sympool/internal/bench"
	"sympool/internal/workload"
)

// Config is the resolved benchmark configuration.
type Config struct {
	// Path is the file the values came from; empty for defaults.
	Path string

	Count     int
	Lengths   []int
	Alphabet  string
	Seed      uint64
	Normalize bool

	Width      int
	Strategies []bench.Strategy
	Ops        []bench.Op
	Jobs       int
}

// ErrInvalid marks a configuration that fails validation.
var ErrInvalid = errors.New("invalid configuration")

// Default mirrors the reference benchmarks.
func Default() Config {
	return Config{
		Count:      workload.DefaultCount,
		Lengths:    slices.Clone(workload.DefaultLengths),
		Alphabet:   workload.DefaultAlphabet,
		Seed:       1,
		Width:      32,
		Strategies: []bench.Strategy{bench.StrategyBasic, bench.StrategyShort},
		Ops:        []bench.Op{bench.OpIntern, bench.OpResolve},
		Jobs:       1,
	}
}

type fileConfig struct {
	Workload struct {
		Count     int    `toml:"count"`
		Lengths   []int  `toml:"lengths"`
		Alphabet  string `toml:"alphabet"`
		Seed      int64  `toml:"seed"`
		Normalize bool   `toml:"normalize"`
	} `toml:"workload"`
	Bench struct {
		Width      int      `toml:"width"`
		Strategies []string `toml:"strategies"`
		Ops        []string `toml:"ops"`
		Jobs       int      `toml:"jobs"`
	} `toml:"bench"`
}

// Load reads path on top of Default. Keys absent from the file keep their
// default; unknown keys are rejected.
func Load(path string) (Config, error) {
	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return Config{}, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}

	cfg := Default()
	cfg.Path = path
	if meta.IsDefined("workload", "count") {
		cfg.Count = raw.Workload.Count
	}
	if meta.IsDefined("workload", "lengths") {
		cfg.Lengths = raw.Workload.Lengths
	}
	if meta.IsDefined("workload", "alphabet") {
		cfg.Alphabet = raw.Workload.Alphabet
	}
	if meta.IsDefined("workload", "seed") {
		seed, err := safecast.Conv[uint64](raw.Workload.Seed)
		if err != nil {
			return Config{}, fmt.Errorf("%s: [workload].seed: %w", path, err)
		}
		cfg.Seed = seed
	}
	if meta.IsDefined("workload", "normalize") {
		cfg.Normalize = raw.Workload.Normalize
	}
	if meta.IsDefined("bench", "width") {
		cfg.Width = raw.Bench.Width
	}
	if meta.IsDefined("bench", "strategies") {
		s, err := bench.ParseStrategies(raw.Bench.Strategies)
		if err != nil {
			return Config{}, fmt.Errorf("%s: [bench].strategies: %w", path, err)
		}
		cfg.Strategies = s
	}
	if meta.IsDefined("bench", "ops") {
		ops, err := bench.ParseOps(raw.Bench.Ops)
		if err != nil {
			return Config{}, fmt.Errorf("%s: [bench].ops: %w", path, err)
		}
		cfg.Ops = ops
	}
	if meta.IsDefined("bench", "jobs") {
		cfg.Jobs = raw.Bench.Jobs
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks ranges; flag overrides are validated through it too.
func (c Config) Validate() error {
	switch c.Width {
	case 8, 16, 32, 64:
	default:
		return fmt.Errorf("%w: width %d (expected 8|16|32|64)", ErrInvalid, c.Width)
	}
	if c.Count <= 0 {
		return fmt.Errorf("%w: count must be positive, got %d", ErrInvalid, c.Count)
	}
	if len(c.Lengths) == 0 {
		return fmt.Errorf("%w: no lengths", ErrInvalid)
	}
	for _, l := range c.Lengths {
		if l < 0 {
			return fmt.Errorf("%w: negative length %d", ErrInvalid, l)
		}
	}
	if c.Alphabet == "" {
		return fmt.Errorf("%w: empty alphabet", ErrInvalid)
	}
	if len(c.Strategies) == 0 {
		return fmt.Errorf("%w: no strategies", ErrInvalid)
	}
	if len(c.Ops) == 0 {
		return fmt.Errorf("%w: no ops", ErrInvalid)
	}
	if c.Jobs < 1 {
		return fmt.Errorf("%w: jobs must be at least 1, got %d", ErrInvalid, c.Jobs)
	}
	return nil
}

// Workload returns the generation spec shared by every length.
func (c Config) Workload() workload.Spec {
	return workload.Spec{
		Count:     c.Count,
		Alphabet:  c.Alphabet,
		Seed:      c.Seed,
		Normalize: c.Normalize,
	}
}

// Cases expands the configured combinations.
func (c Config) Cases() []bench.Case {
	return bench.Cases(c.Strategies, c.Ops, c.Lengths)
}
