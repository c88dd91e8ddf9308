package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"sympool/internal/trace"
)

// traceFlags mirrors the persistent --trace* flags.
type traceFlags struct {
	output       string
	level        string
	levelChanged bool
	mode         string
	ringSize     int
	heartbeat    time.Duration
}

func readTraceFlags(cmd *cobra.Command) (traceFlags, error) {
	fs := cmd.Root().PersistentFlags()
	var tf traceFlags
	var err error
	if tf.output, err = fs.GetString("trace"); err != nil {
		return tf, err
	}
	if tf.level, err = fs.GetString("trace-level"); err != nil {
		return tf, err
	}
	if tf.mode, err = fs.GetString("trace-mode"); err != nil {
		return tf, err
	}
	if tf.ringSize, err = fs.GetInt("trace-ring-size"); err != nil {
		return tf, err
	}
	if tf.heartbeat, err = fs.GetDuration("trace-heartbeat"); err != nil {
		return tf, err
	}
	tf.levelChanged = fs.Changed("trace-level")
	return tf, nil
}

// config turns the flags into a tracer config. A zero Level means tracing is off.
func (tf traceFlags) config() (trace.Config, error) {
	level, err := trace.ParseLevel(tf.level)
	if err != nil {
		return trace.Config{}, fmt.Errorf("--trace-level: %w", err)
	}
	// --trace on its own implies phase tracing
	if level == trace.LevelOff && tf.output != "" && !tf.levelChanged {
		level = trace.LevelPhase
	}
	if level == trace.LevelOff {
		return trace.Config{Level: trace.LevelOff}, nil
	}
	mode, err := trace.ParseMode(tf.mode)
	if err != nil {
		return trace.Config{}, fmt.Errorf("--trace-mode: %w", err)
	}
	return trace.Config{
		Level:      level,
		Mode:       mode,
		OutputPath: tf.output,
		RingSize:   tf.ringSize,
		Heartbeat:  tf.heartbeat,
	}, nil
}

// setupTracing attaches a tracer built from the --trace* flags to the
// command context. The returned cleanup stops the heartbeat, dumps ring-only
// tracers to stderr and closes the output.
func setupTracing(cmd *cobra.Command) (func(), error) {
	tf, err := readTraceFlags(cmd)
	if err != nil {
		return nil, err
	}
	cfg, err := tf.config()
	if err != nil {
		return nil, err
	}
	tracer, err := trace.New(cfg)
	if err != nil {
		return nil, err
	}
	cmd.SetContext(trace.WithTracer(cmd.Context(), tracer))
	if !tracer.Enabled() {
		return func() {}, nil
	}

	var hb *trace.Heartbeat
	if cfg.Heartbeat > 0 {
		hb = trace.StartHeartbeat(tracer, cfg.Heartbeat)
	}
	stderr := cmd.ErrOrStderr()
	return func() {
		if hb != nil {
			hb.Stop()
		}
		if ring, ok := tracer.(*trace.RingTracer); ok {
			if err := ring.Dump(stderr, trace.FormatText); err != nil {
				fmt.Fprintf(stderr, "trace: dump: %v\n", err)
			}
		}
		for _, step := range []struct {
			name string
			fn   func() error
		}{{"flush", tracer.Flush}, {"close", tracer.Close}} {
			if err := step.fn(); err != nil {
				fmt.Fprintf(stderr, "trace: %s: %v\n", step.name, err)
			}
		}
	}, nil
}
