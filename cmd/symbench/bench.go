package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"sympool/internal/bench"
	"sympool/internal/config"
	"sympool/internal/observ"
	"sympool/internal/trace"
	"sympool/internal/workload"
)

var benchCmd = &cobra.Command{
	Use:   "bench",
	Short: "Run interning benchmarks",
	Long: `Generate random string workloads and measure interning and resolution
for each strategy × op × length. Settings come from symbench.toml (searched
upward from the working directory) and are overridden by flags.`,
	Args: cobra.NoArgs,
	RunE: runBench,
}

func init() {
	registerBenchFlags(benchCmd)
}

func registerBenchFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.String("config", "", "path to symbench.toml (default: search upward)")
	f.Int("width", 32, "identifier width in bits (8|16|32|64)")
	f.Int("count", workload.DefaultCount, "strings per workload")
	f.IntSlice("lengths", workload.DefaultLengths, "string lengths to generate")
	f.Uint64("seed", 1, "workload seed")
	f.StringSlice("strategy", []string{"basic", "short"}, "strategies (basic|locked|short)")
	f.StringSlice("op", []string{"intern", "resolve"}, "operations (intern|resolve|parallel-resolve)")
	f.Int("jobs", 1, "cases measured concurrently")
	f.Int("workers", 0, "goroutines for parallel-resolve (0 = GOMAXPROCS)")
	f.String("format", "pretty", "report format (pretty|json|msgpack)")
	f.String("out", "", "write the report to a file instead of stdout")
	f.String("ui", "auto", "progress view (auto|on|off)")
	f.String("cpuprofile", "", "write a CPU profile")
	f.String("memprofile", "", "write a heap profile after the run")
	f.String("runtime-trace", "", "write a Go runtime trace")
}

func runBench(cmd *cobra.Command, _ []string) error {
	cleanupTrace, err := setupTracing(cmd)
	if err != nil {
		return err
	}
	defer cleanupTrace()

	timer := observ.NewTimer()
	cfg, err := resolveBenchConfig(cmd)
	if err != nil {
		return err
	}

	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return err
	}
	reportFormat, err := bench.ParseFormat(format)
	if err != nil {
		return err
	}
	outPath, err := cmd.Flags().GetString("out")
	if err != nil {
		return err
	}
	uiFlag, err := cmd.Flags().GetString("ui")
	if err != nil {
		return err
	}
	mode, err := readUIMode(uiFlag)
	if err != nil {
		return err
	}
	workers, err := cmd.Flags().GetInt("workers")
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	tracer := trace.FromContext(ctx)
	run := trace.Begin(tracer, trace.ScopeRun, "bench", 0).
		WithExtra("width", fmt.Sprintf("%d", cfg.Width)).
		WithExtra("config", cfg.Path)
	defer run.End("")
	ctx = trace.WithSpan(ctx, run)

	var sets []workload.Set
	err = timer.Measure("generate", func() error {
		var genErr error
		sets, genErr = workload.GenerateAll(cfg.Workload(), cfg.Lengths)
		return genErr
	})
	if err != nil {
		return fmt.Errorf("generate workload: %w", err)
	}

	req := bench.Request{
		Width:   cfg.Width,
		Cases:   cfg.Cases(),
		Sets:    sets,
		Seed:    cfg.Seed,
		Jobs:    cfg.Jobs,
		Workers: workers,
	}

	stopProfiling, err := setupProfiling(cmd)
	if err != nil {
		return err
	}
	defer stopProfiling()

	var rep *bench.Report
	err = timer.Measure("run", func() error {
		var runErr error
		if shouldUseTUI(mode, outPath == "") {
			rep, runErr = runBenchWithUI(ctx, fmt.Sprintf("symbench width=%d", cfg.Width), req)
		} else {
			rep, runErr = bench.Run(ctx, req)
		}
		return runErr
	})
	stopProfiling()
	if err != nil {
		return err
	}

	err = timer.Measure("report", func() error {
		return writeReport(cmd, rep, reportFormat, outPath)
	})
	if err != nil {
		return err
	}

	if timingsEnabled(cmd) {
		printTimings(cmd.ErrOrStderr(), timer)
	}
	if rep.Failed() {
		n := 0
		for _, r := range rep.Results {
			if r.Err != "" {
				n++
			}
		}
		return fmt.Errorf("%d of %d cases failed", n, len(rep.Results))
	}
	return nil
}

func writeReport(cmd *cobra.Command, rep *bench.Report, format bench.Format, outPath string) (err error) {
	if outPath == "" {
		if format == bench.FormatMsgpack && isTerminal(os.Stdout) {
			return errors.New("refusing to write msgpack to a terminal, use --out")
		}
		color, err := useColor(cmd, os.Stdout)
		if err != nil {
			return err
		}
		return rep.Write(cmd.OutOrStdout(), format, color)
	}
	f, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("create report: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close report: %w", cerr)
		}
	}()
	return rep.Write(f, format, false)
}

// resolveBenchConfig loads symbench.toml (explicit or discovered) and applies
// flags that were set on the command line.
func resolveBenchConfig(cmd *cobra.Command) (config.Config, error) {
	flags := cmd.Flags()
	cfg := config.Default()

	path, err := flags.GetString("config")
	if err != nil {
		return cfg, err
	}
	if path == "" {
		found, ok, err := config.Find(".")
		if err != nil {
			return cfg, err
		}
		if ok {
			path = found
		}
	}
	if path != "" {
		if cfg, err = config.Load(path); err != nil {
			return cfg, err
		}
	}

	if flags.Changed("width") {
		if cfg.Width, err = flags.GetInt("width"); err != nil {
			return cfg, err
		}
	}
	if flags.Changed("count") {
		if cfg.Count, err = flags.GetInt("count"); err != nil {
			return cfg, err
		}
	}
	if flags.Changed("lengths") {
		if cfg.Lengths, err = flags.GetIntSlice("lengths"); err != nil {
			return cfg, err
		}
	}
	if flags.Changed("seed") {
		if cfg.Seed, err = flags.GetUint64("seed"); err != nil {
			return cfg, err
		}
	}
	if flags.Changed("strategy") {
		names, err := flags.GetStringSlice("strategy")
		if err != nil {
			return cfg, err
		}
		if cfg.Strategies, err = bench.ParseStrategies(names); err != nil {
			return cfg, fmt.Errorf("--strategy: %w", err)
		}
	}
	if flags.Changed("op") {
		names, err := flags.GetStringSlice("op")
		if err != nil {
			return cfg, err
		}
		if cfg.Ops, err = bench.ParseOps(names); err != nil {
			return cfg, fmt.Errorf("--op: %w", err)
		}
	}
	if flags.Changed("jobs") {
		if cfg.Jobs, err = flags.GetInt("jobs"); err != nil {
			return cfg, err
		}
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("%s: %w", flagSource(cfg.Path), err)
	}
	return cfg, nil
}

func flagSource(path string) string {
	if strings.TrimSpace(path) == "" {
		return "flags"
	}
	return path + " + flags"
}
