// Package probes selects the concrete probe implementations for the
// running OS. Platform dispatch happens once, here, so the probe code
// itself stays free of runtime.GOOS branching.
package probes

import (
	"context"
	"fmt"
	"runtime"

	"complyd/pkg/integrations/darwin"
	"complyd/pkg/integrations/procfall"
	"complyd/pkg/integrations/winapi"
	"complyd/pkg/integrations/x11"
	"complyd/pkg/probe"
)

// New returns the probe set for the current OS.
func New() probe.Set {
	return forOS(runtime.GOOS)
}

func forOS(goos string) probe.Set {
	switch goos {
	case "windows":
		return probe.Set{
			Windows:   winapi.NewEnumerator(),
			Processes: winapi.NewLister(),
			Network:   winapi.NewProber(),
			Platform:  "windows",
		}
	case "darwin":
		return probe.Set{
			Windows:   darwin.NewEnumerator(),
			Processes: darwin.NewLister(),
			Network:   darwin.NewProber(),
			Platform:  "darwin",
		}
	case "linux":
		return probe.Set{
			Windows:   x11.NewEnumerator(),
			Processes: x11.NewLister(),
			Network:   x11.NewProber(),
			Platform:  "x11",
		}
	default:
		return probe.Set{
			Windows:   procfall.NewEnumerator(fmt.Sprintf("window enumeration not supported on %s", goos)),
			Processes: unsupportedLister{goos},
			Network:   unsupportedProber{goos},
			Platform:  "fallback",
		}
	}
}

type unsupportedLister struct {
	goos string
}

func (u unsupportedLister) ListProcesses(context.Context) ([]probe.ProcessRecord, error) {
	return nil, fmt.Errorf("process listing not supported on %s", u.goos)
}

type unsupportedProber struct {
	goos string
}

func (u unsupportedProber) Report(context.Context) *probe.NetworkReport {
	err := fmt.Errorf("network probing not supported on %s", u.goos)
	return &probe.NetworkReport{
		Interfaces: probe.NetworkSection{Err: err},
		WiFi:       probe.NetworkSection{Err: err},
		Nearby:     probe.NetworkSection{Err: err},
		Neighbors:  probe.NetworkSection{Err: err},
	}
}
