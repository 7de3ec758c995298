package probes

import (
	"context"
	"strings"
	"testing"

	"complyd/pkg/probe"
)

func TestForOSKnownPlatforms(t *testing.T) {
	tests := []struct {
		goos     string
		platform string
	}{
		{"windows", "windows"},
		{"darwin", "darwin"},
		{"linux", "x11"},
	}

	for _, tt := range tests {
		t.Run(tt.goos, func(t *testing.T) {
			set := forOS(tt.goos)
			if set.Platform != tt.platform {
				t.Errorf("Platform = %q, want %q", set.Platform, tt.platform)
			}
			if set.Windows == nil || set.Processes == nil || set.Network == nil {
				t.Error("incomplete probe set")
			}
		})
	}
}

func TestForOSFallback(t *testing.T) {
	set := forOS("plan9")
	if set.Platform != "fallback" {
		t.Errorf("Platform = %q", set.Platform)
	}

	if _, err := set.Processes.ListProcesses(context.Background()); err == nil {
		t.Error("fallback lister should error")
	}

	report := set.Network.Report(context.Background())
	out := report.String()
	if !strings.Contains(out, "not supported on plan9") {
		t.Errorf("fallback network report:\n%s", out)
	}

	if set.Windows.TitlesAvailable() {
		t.Error("fallback enumerator should not claim window titles")
	}
}

func TestNewMatchesRuntime(t *testing.T) {
	set := New()
	if set.Platform == "" {
		t.Error("empty platform")
	}
	t.Logf("selected platform: %s", set.Platform)
}

var _ probe.ProcessLister = unsupportedLister{}
var _ probe.NetworkProber = unsupportedProber{}
