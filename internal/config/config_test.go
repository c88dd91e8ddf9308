package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"sympool/internal/bench"
)

func writeFile(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, FileName)
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("Default().Validate() = %v", err)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeFile(t, t.TempDir(), `
[workload]
count = 500
lengths = [4, 8]
seed = 9

[bench]
width = 64
strategies = ["short", "locked"]
jobs = 2
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	want := Default()
	want.Path = path
	want.Count = 500
	want.Lengths = []int{4, 8}
	want.Seed = 9
	want.Width = 64
	want.Strategies = []bench.Strategy{bench.StrategyShort, bench.StrategyLocked}
	want.Jobs = 2
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}
	if got := len(cfg.Cases()); got != 2*2*2 {
		t.Fatalf("Cases() = %d entries, want 8", got)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"syntax", "[bench\nwidth = 32", "failed to parse TOML"},
		{"unknown key", "[bench]\nwidht = 32", "unknown keys: bench.widht"},
		{"bad width", "[bench]\nwidth = 24", "width 24"},
		{"bad strategy", "[bench]\nstrategies = [\"hash\"]", "[bench].strategies"},
		{"bad op", "[bench]\nops = [\"lookup\"]", "[bench].ops"},
		{"negative seed", "[workload]\nseed = -1", "[workload].seed"},
		{"zero count", "[workload]\ncount = 0", "count must be positive"},
		{"zero jobs", "[bench]\njobs = 0", "jobs must be at least 1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, t.TempDir(), tt.body)
			_, err := Load(path)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) || !strings.HasPrefix(err.Error(), path) {
				t.Fatalf("error %q should start with %q and mention %q", err, path, tt.want)
			}
		})
	}
}

func TestValidateWrapsErrInvalid(t *testing.T) {
	cfg := Default()
	cfg.Alphabet = ""
	if err := cfg.Validate(); !errors.Is(err, ErrInvalid) {
		t.Fatalf("Validate() = %v, want ErrInvalid", err)
	}
}

func TestFindWalksUp(t *testing.T) {
	root := t.TempDir()
	want := writeFile(t, root, "")
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}
	got, ok, err := Find(nested)
	if err != nil || !ok {
		t.Fatalf("Find = %q, %v, %v", got, ok, err)
	}
	if got != want {
		t.Fatalf("Find = %q, want %q", got, want)
	}
}

func TestFindMissing(t *testing.T) {
	dir := t.TempDir()
	if _, ok, err := Find(dir); err != nil {
		t.Fatalf("Find: %v", err)
	} else if ok {
		// a symbench.toml above the temp dir is outside the test's control
		t.Skip("symbench.toml found above temp dir")
	}
}
