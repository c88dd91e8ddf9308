package bench

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"sympool/internal/trace"
	"sympool/internal/workload"
)

// Request describes one benchmark run.
type Request struct {
	// Width is the identifier width in bits: 8, 16, 32 or 64.
	Width int
	Cases []Case
	// Sets holds one generated workload per length referenced by Cases.
	Sets []workload.Set
	Seed uint64
	// Jobs bounds how many cases run at once; 0 means 1 so timings do not
	// interfere.
	Jobs int
	// Workers is the goroutine count for OpParallelResolve; 0 means GOMAXPROCS.
	Workers  int
	Progress ProgressSink
}

// Run measures every case and returns the report in case order. A case
// that overflows its pool is recorded in Result.Err; verification and
// resolve failures abort the run.
func Run(ctx context.Context, req Request) (*Report, error) {
	if len(req.Cases) == 0 {
		return nil, errors.New("no cases to run")
	}
	sets := make(map[int]workload.Set, len(req.Sets))
	count := 0
	for _, s := range req.Sets {
		sets[s.Length] = s
		count = max(count, len(s.Values))
	}
	for _, c := range req.Cases {
		if _, ok := sets[c.Length]; !ok {
			return nil, fmt.Errorf("case %s: no workload of length %d", c.Name(), c.Length)
		}
	}
	jobs := req.Jobs
	if jobs < 1 {
		jobs = 1
	}
	workers := req.Workers
	if workers < 1 {
		workers = runtime.GOMAXPROCS(0)
	}

	tracer := trace.FromContext(ctx)
	suite := trace.Begin(tracer, trace.ScopeSuite, fmt.Sprintf("width-%d", req.Width), trace.CurrentSpan(ctx)).
		WithExtra("cases", fmt.Sprintf("%d", len(req.Cases)))
	defer suite.End("")
	ctx = trace.WithSpan(ctx, suite)

	for _, c := range req.Cases {
		emit(req.Progress, Event{Case: c.Name(), Status: StatusQueued})
	}

	results := make([]Result, len(req.Cases))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)
	for i, c := range req.Cases {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			name := c.Name()
			emit(req.Progress, Event{Case: name, Status: StatusWorking})
			span := trace.Begin(tracer, trace.ScopeCase, name, suite.ID())
			start := time.Now()
			res, err := runCase(trace.WithSpan(gctx, span), req.Width, c, sets[c.Length], workers)
			elapsed := time.Since(start)
			if err != nil {
				span.End(err.Error())
				trace.Failure(tracer, name, err, suite.ID())
				emit(req.Progress, Event{Case: name, Status: StatusError, Err: err, Elapsed: elapsed})
				return err
			}
			results[i] = res
			if res.Err != "" {
				span.End(res.Err)
				emit(req.Progress, Event{Case: name, Status: StatusError, Err: errors.New(res.Err), Elapsed: elapsed})
				return nil
			}
			span.End("")
			emit(req.Progress, Event{Case: name, Status: StatusDone, Elapsed: elapsed})
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &Report{
		Schema:  reportSchemaVersion,
		Width:   req.Width,
		Count:   count,
		Seed:    req.Seed,
		Created: time.Now().UTC(),
		Results: results,
	}, nil
}
