package darwin

import (
	"context"
	"os"
	"strings"
	"time"

	"complyd/pkg/probe"
)

const networkTimeout = 3 * time.Second

// Pre-10.15 location of Apple's airport scanner. Newer systems may drop
// it, in which case the nearby-networks section degrades gracefully.
const airportPath = "/System/Library/PrivateFrameworks/Apple80211.framework" +
	"/Versions/Current/Resources/airport"

// Prober inspects macOS network posture via the standard tools.
type Prober struct{}

// NewProber creates a macOS network prober.
func NewProber() *Prober {
	return &Prober{}
}

// Report runs the four sub-probes. Each one fails independently.
func (p *Prober) Report(ctx context.Context) *probe.NetworkReport {
	return &probe.NetworkReport{
		Interfaces: p.interfaces(ctx),
		WiFi:       p.wifi(ctx),
		Nearby:     p.nearby(ctx),
		Neighbors:  p.neighbors(ctx),
	}
}

func (p *Prober) interfaces(ctx context.Context) probe.NetworkSection {
	out, err := probe.RunCommand(ctx, networkTimeout, "ifconfig")
	if err != nil {
		return probe.NetworkSection{Err: err}
	}
	active := parseActiveInterfaces(out)
	line := "Active Interfaces: none"
	if len(active) > 0 {
		line = "Active Interfaces: " + strings.Join(active, ", ")
	}
	return probe.NetworkSection{Lines: []string{line}}
}

func (p *Prober) wifi(ctx context.Context) probe.NetworkSection {
	out, err := probe.RunCommand(ctx, networkTimeout, "networksetup", "-getairportnetwork", "en0")
	if err != nil {
		return probe.NetworkSection{Err: err}
	}
	return probe.NetworkSection{Lines: []string{"Wi-Fi: " + strings.TrimSpace(out)}}
}

func (p *Prober) nearby(ctx context.Context) probe.NetworkSection {
	if _, err := os.Stat(airportPath); err != nil {
		return probe.NetworkSection{Lines: []string{"Nearby Networks: airport utility not found"}}
	}
	out, err := probe.RunCommand(ctx, networkTimeout, airportPath, "-s")
	if err != nil {
		return probe.NetworkSection{Err: err}
	}
	return probe.NearbySection(parseAirportScan(out))
}

func (p *Prober) neighbors(ctx context.Context) probe.NetworkSection {
	out, err := probe.RunCommand(ctx, networkTimeout, "arp", "-a")
	if err != nil {
		return probe.NetworkSection{Err: err}
	}
	return probe.NeighborSection(parseARPTable(out))
}

// parseActiveInterfaces pairs interface header lines with their
// "status: active" markers.
func parseActiveInterfaces(out string) []string {
	var active []string
	current := ""
	for _, line := range strings.Split(out, "\n") {
		if line != "" && !strings.HasPrefix(line, "\t") && !strings.HasPrefix(line, " ") {
			current = strings.SplitN(line, ":", 2)[0]
		}
		if strings.Contains(line, "status: active") && current != "" {
			active = append(active, current)
		}
	}
	return active
}

// parseAirportScan extracts SSIDs from `airport -s` output, skipping the
// header row.
func parseAirportScan(out string) []string {
	var ssids []string
	lines := strings.Split(out, "\n")
	for i, line := range lines {
		if i == 0 {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) > 0 {
			ssids = append(ssids, fields[0])
		}
	}
	return ssids
}

// parseARPTable keeps resolved neighbor lines and drops incomplete ones.
func parseARPTable(out string) []string {
	var entries []string
	for _, line := range strings.Split(out, "\n") {
		s := strings.TrimSpace(line)
		if s == "" || !strings.Contains(s, " at ") || strings.Contains(s, "incomplete") {
			continue
		}
		entries = append(entries, s)
	}
	return entries
}
