package bench

import (
	"context"
	"fmt"
	"time"

	"github.com/cespare/xxhash/v2"
	"golang.org/x/sync/errgroup"

	"sympool/internal/pool"
	"sympool/internal/short"
	"sympool/internal/symbol"
	"sympool/internal/trace"
	"sympool/internal/workload"
)

// runCase dispatches on the identifier width, since symbol types are
// distinct per width.
func runCase(ctx context.Context, width int, c Case, set workload.Set, workers int) (Result, error) {
	switch width {
	case 8:
		return runWidth[uint8](ctx, c, set, workers)
	case 16:
		return runWidth[uint16](ctx, c, set, workers)
	case 32:
		return runWidth[uint32](ctx, c, set, workers)
	case 64:
		return runWidth[uint64](ctx, c, set, workers)
	default:
		return Result{}, fmt.Errorf("unsupported identifier width %d (expected 8|16|32|64)", width)
	}
}

func runWidth[I symbol.ID](ctx context.Context, c Case, set workload.Set, workers int) (Result, error) {
	res := Result{
		Case:     c.Name(),
		Strategy: string(c.Strategy),
		Op:       string(c.Op),
		Length:   c.Length,
		Width:    symbol.Bits[I](),
		Values:   len(set.Values),
		Bytes:    set.Bytes,
	}
	switch c.Strategy {
	case StrategyBasic:
		return measure[pool.Sym[I]](ctx, res, c.Op, pool.NewStrings[I](), set.Values, nil, workers)
	case StrategyLocked:
		return measure[pool.Sym[I]](ctx, res, c.Op, pool.NewLocked(pool.NewStrings[I]()), set.Values, nil, workers)
	case StrategyShort:
		return measure[short.Sym[I]](ctx, res, c.Op, short.New[I](), set.Values, short.Sym[I].Resolve, workers)
	default:
		return res, fmt.Errorf("unknown strategy %q", c.Strategy)
	}
}

// measure times one op against in. self, when non-nil, resolves a symbol
// without the pool; it is tried first on the resolve paths, mirroring how
// callers use compact symbols.
func measure[S comparable](
	ctx context.Context,
	res Result,
	op Op,
	in symbol.Interner[string, S],
	values []string,
	self func(S) (string, bool),
	workers int,
) (Result, error) {
	tracer := trace.FromContext(ctx)
	parent := trace.CurrentSpan(ctx)

	syms := make([]S, len(values))
	span := trace.Begin(tracer, trace.ScopeOp, "intern", parent)
	start := time.Now()
	for i, v := range values {
		sym, err := in.Intern(v)
		if err != nil {
			// overflow is a property of the configuration, not a harness bug
			span.End(err.Error())
			res.Err = fmt.Sprintf("value #%d: %v", i, err)
			res.Failed = len(values) - i
			return res, nil
		}
		syms[i] = sym
	}
	internDur := time.Since(start)
	span.End("")

	out := make([]string, len(syms))
	resolveOne := func(i int) error {
		if self != nil {
			if v, ok := self(syms[i]); ok {
				out[i] = v
				return nil
			}
		}
		v, err := in.Resolve(syms[i])
		if err != nil {
			return err
		}
		out[i] = v
		return nil
	}

	span = trace.Begin(tracer, trace.ScopeOp, "resolve", parent)
	start = time.Now()
	switch op {
	case OpParallelResolve:
		err := resolveParallel(ctx, len(syms), workers, resolveOne)
		if err != nil {
			span.End(err.Error())
			return res, err
		}
	default:
		for i := range syms {
			if err := resolveOne(i); err != nil {
				span.End(err.Error())
				return res, fmt.Errorf("%s: resolve #%d: %w", res.Case, i, err)
			}
		}
	}
	resolveDur := time.Since(start)
	span.End("")

	elapsed := resolveDur
	if op == OpIntern {
		elapsed = internDur
	}
	res.setTiming(len(values), elapsed)

	res.Checksum = checksum(out)
	if want := checksum(values); res.Checksum != want {
		return res, fmt.Errorf("%s: %w: checksum %016x, want %016x", res.Case, ErrVerify, res.Checksum, want)
	}
	if sz, ok := in.(symbol.Sized); ok {
		res.Entries = sz.Len()
	}
	if self != nil {
		for _, s := range syms {
			if _, ok := self(s); ok {
				res.Inline++
			}
		}
	}
	return res, nil
}

func resolveParallel(ctx context.Context, n, workers int, resolveOne func(int) error) error {
	if n == 0 {
		return nil
	}
	if workers < 1 {
		workers = 1
	}
	chunk := (n + workers - 1) / workers
	g, gctx := errgroup.WithContext(ctx)
	for lo := 0; lo < n; lo += chunk {
		hi := min(lo+chunk, n)
		g.Go(func() error {
			for i := lo; i < hi; i++ {
				if i%4096 == 0 && gctx.Err() != nil {
					return gctx.Err()
				}
				if err := resolveOne(i); err != nil {
					return fmt.Errorf("resolve #%d: %w", i, err)
				}
			}
			return nil
		})
	}
	return g.Wait()
}

// checksum folds values in order so that both content and position count.
func checksum(values []string) uint64 {
	var h uint64
	for _, v := range values {
		h = h*1099511628211 ^ xxhash.Sum64String(v)
	}
	return h
}
