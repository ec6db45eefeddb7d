package version

import (
	"strings"
	"testing"
)

func TestColoredPlain(t *testing.T) {
	if got := Colored(false); got != Version {
		t.Fatalf("Colored(false) = %q, want %q", got, Version)
	}
	if got := Colored(true); !strings.Contains(got, "\x1b[") {
		t.Fatalf("Colored(true) has no escapes: %q", got)
	}
}

func TestColoredOddVersion(t *testing.T) {
	orig := Version
	defer func() { Version = orig }()

	Version = "nightly"
	if got := Colored(true); got != "nightly" {
		t.Fatalf("Colored = %q", got)
	}
}

func TestBanner(t *testing.T) {
	origCommit, origDate := GitCommit, BuildDate
	defer func() { GitCommit, BuildDate = origCommit, origDate }()

	GitCommit, BuildDate = "", ""
	if got := Banner(false); got != "candidc "+Version+"\n" {
		t.Fatalf("Banner = %q", got)
	}
	GitCommit, BuildDate = "abc123", "2026-01-15"
	got := Banner(false)
	if !strings.Contains(got, "commit: abc123") || !strings.Contains(got, "built:  2026-01-15") {
		t.Fatalf("Banner = %q", got)
	}
}
