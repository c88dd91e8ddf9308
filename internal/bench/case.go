package bench

import (
	"fmt"
	"slices"
	"strings"
)

// Strategy selects the interning implementation under test.
type Strategy string

const (
	// StrategyBasic is pool.Pool over strings.
	StrategyBasic Strategy = "basic"
	// StrategyLocked is pool.Locked over strings.
	StrategyLocked Strategy = "locked"
	// StrategyShort is short.Pool.
	StrategyShort Strategy = "short"
)

// Op selects the measured operation.
type Op string

const (
	// OpIntern times Intern over the whole set.
	OpIntern Op = "intern"
	// OpResolve times Resolve over symbols interned beforehand.
	OpResolve Op = "resolve"
	// OpParallelResolve splits OpResolve across Request.Workers goroutines.
	OpParallelResolve Op = "parallel-resolve"
)

var (
	knownStrategies = []Strategy{StrategyBasic, StrategyLocked, StrategyShort}
	knownOps        = []Op{OpIntern, OpResolve, OpParallelResolve}
)

// Case is one measured combination.
type Case struct {
	Strategy Strategy
	Op       Op
	Length   int
}

// Name follows the op_strategy_length scheme, e.g. intern_short_8.
func (c Case) Name() string {
	return fmt.Sprintf("%s_%s_%d", c.Op, c.Strategy, c.Length)
}

// Cases expands every op × strategy × length combination.
func Cases(strategies []Strategy, ops []Op, lengths []int) []Case {
	out := make([]Case, 0, len(strategies)*len(ops)*len(lengths))
	for _, op := range ops {
		for _, s := range strategies {
			for _, l := range lengths {
				out = append(out, Case{Strategy: s, Op: op, Length: l})
			}
		}
	}
	return out
}

// ParseStrategies validates strategy names.
func ParseStrategies(names []string) ([]Strategy, error) {
	out := make([]Strategy, 0, len(names))
	for _, n := range names {
		s := Strategy(strings.ToLower(strings.TrimSpace(n)))
		if !slices.Contains(knownStrategies, s) {
			return nil, fmt.Errorf("unknown strategy %q (expected: basic|locked|short)", n)
		}
		out = append(out, s)
	}
	return out, nil
}

// ParseOps validates operation names.
func ParseOps(names []string) ([]Op, error) {
	out := make([]Op, 0, len(names))
	for _, n := range names {
		op := Op(strings.ToLower(strings.TrimSpace(n)))
		if !slices.Contains(knownOps, op) {
			return nil, fmt.Errorf("unknown op %q (expected: intern|resolve|parallel-resolve)", n)
		}
		out = append(out, op)
	}
	return out, nil
}
