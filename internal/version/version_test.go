package version

import (
	"runtime/debug"
	"strings"
	"testing"
)

func TestGetUsesOverrides(t *testing.T) {
	origVersion, origCommit, origDate := Version, GitCommit, BuildDate
	t.Cleanup(func() { Version, GitCommit, BuildDate = origVersion, origCommit, origDate })

	Version = " 1.2.3 "
	GitCommit = "abc123"
	BuildDate = "2024-01-15T10:30:00Z"

	info := Get()
	if info.Version != "1.2.3" || info.GitCommit != "abc123" || info.BuildDate != "2024-01-15T10:30:00Z" {
		t.Fatalf("Get() = %+v", info)
	}
	if info.GoVersion == "" {
		t.Fatal("GoVersion should be set")
	}
}

func TestGetEmptyVersion(t *testing.T) {
	orig := Version
	t.Cleanup(func() { Version = orig })
	Version = ""
	if got := Get().Version; got != "dev" {
		t.Fatalf("Version = %q, want dev", got)
	}
}

func TestFillFromBuildInfo(t *testing.T) {
	settings := []debug.BuildSetting{
		{Key: "vcs.revision", Value: "deadbeef"},
		{Key: "vcs.time", Value: "2025-02-01T00:00:00Z"},
		{Key: "vcs.modified", Value: "true"},
	}
	var info Info
	fillFromBuildInfo(&info, settings)
	if info.GitCommit != "deadbeef" || info.BuildDate != "2025-02-01T00:00:00Z" || !info.Modified {
		t.Fatalf("info = %+v", info)
	}

	info = Info{GitCommit: "fromldflags"}
	fillFromBuildInfo(&info, settings)
	if info.GitCommit != "fromldflags" {
		t.Fatalf("ldflags commit overwritten: %q", info.GitCommit)
	}
}

func TestColorize(t *testing.T) {
	if got := Colorize("0.1.0-dev", false); got != "0.1.0-dev" {
		t.Fatalf("Colorize without colour = %q", got)
	}
	if got := Colorize("nightly", true); got != "nightly" {
		t.Fatalf("Colorize(nightly) = %q", got)
	}
	got := Colorize("0.1.0-dev", true)
	if !strings.Contains(got, "\x1b[") || !strings.HasSuffix(got, "-dev") {
		t.Fatalf("Colorize with colour = %q", got)
	}
}
