package x11

import (
	"context"
	"fmt"
	"strings"
	"time"

	"complyd/pkg/probe"
)

const networkTimeout = 3 * time.Second

// Prober inspects Linux network posture via ip and nmcli.
type Prober struct{}

// NewProber creates a Linux network prober.
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
	out, err := probe.RunCommand(ctx, networkTimeout, "ip", "-brief", "link")
	if err != nil {
		return probe.NetworkSection{Err: err}
	}
	return probe.NetworkSection{Lines: parseIPLink(out)}
}

func (p *Prober) wifi(ctx context.Context) probe.NetworkSection {
	out, err := probe.RunCommand(ctx, networkTimeout, "nmcli", "-t", "-f", "ACTIVE,SSID", "dev", "wifi")
	if err != nil {
		return probe.NetworkSection{Err: err}
	}
	state, ssid := parseActiveWifi(out)
	return probe.NetworkSection{Lines: []string{
		"Wi-Fi State: " + state,
		"Connected SSID: " + ssid,
	}}
}

func (p *Prober) nearby(ctx context.Context) probe.NetworkSection {
	out, err := probe.RunCommand(ctx, networkTimeout, "nmcli", "-t", "-f", "SSID", "dev", "wifi")
	if err != nil {
		return probe.NetworkSection{Err: err}
	}
	return probe.NearbySection(parseNearbySSIDs(out))
}

func (p *Prober) neighbors(ctx context.Context) probe.NetworkSection {
	out, err := probe.RunCommand(ctx, networkTimeout, "ip", "neigh")
	if err != nil {
		return probe.NetworkSection{Err: err}
	}
	return probe.NeighborSection(parseNeighbors(out))
}

// parseIPLink renders `ip -brief link` output as interface state lines.
func parseIPLink(out string) []string {
	lines := []string{"Interfaces:"}
	for _, line := range strings.Split(out, "\n") {
		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}
		lines = append(lines, fmt.Sprintf("  %s: %s", fields[0], fields[1]))
	}
	return lines
}

// parseActiveWifi extracts connection state and SSID from terse nmcli
// ACTIVE:SSID rows.
func parseActiveWifi(out string) (state, ssid string) {
	for _, line := range strings.Split(out, "\n") {
		parts := strings.SplitN(strings.TrimSpace(line), ":", 2)
		if len(parts) != 2 {
			continue
		}
		if strings.EqualFold(parts[0], "yes") {
			if parts[1] != "" {
				return "connected", parts[1]
			}
			return "connected", "Unknown"
		}
	}
	return "disconnected", "None"
}

// parseNearbySSIDs collects the distinct non-empty SSIDs from terse nmcli
// output.
func parseNearbySSIDs(out string) []string {
	seen := make(map[string]bool)
	var ssids []string
	for _, line := range strings.Split(out, "\n") {
		s := strings.TrimSpace(line)
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		ssids = append(ssids, s)
	}
	return ssids
}

// parseNeighbors keeps resolved `ip neigh` entries, dropping FAILED and
// INCOMPLETE states.
func parseNeighbors(out string) []string {
	var entries []string
	for _, line := range strings.Split(out, "\n") {
		s := strings.TrimSpace(line)
		if s == "" || strings.Contains(s, "FAILED") || strings.Contains(s, "INCOMPLETE") {
			continue
		}
		entries = append(entries, s)
	}
	return entries
}
