package winapi

import (
	"context"
	"regexp"
	"strings"
	"time"

	"complyd/pkg/probe"
)

const networkTimeout = 3 * time.Second

var windowsMACPattern = regexp.MustCompile(`([0-9A-Fa-f]{2}-){5}[0-9A-Fa-f]{2}`)

// Prober inspects Windows network posture via netsh and arp.
type Prober struct{}

// NewProber creates a Windows network prober.
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
	out, err := probe.RunCommand(ctx, networkTimeout, "netsh", "interface", "show", "interface")
	if err != nil {
		return probe.NetworkSection{Err: err}
	}
	return probe.NetworkSection{Lines: parseInterfaceTable(out)}
}

func (p *Prober) wifi(ctx context.Context) probe.NetworkSection {
	out, err := probe.RunCommand(ctx, networkTimeout, "netsh", "wlan", "show", "interfaces")
	if err != nil {
		return probe.NetworkSection{Err: err}
	}
	state, ssid := parseWlanInterfaces(out)
	return probe.NetworkSection{Lines: []string{
		"Wi-Fi State: " + state,
		"Connected SSID: " + ssid,
	}}
}

func (p *Prober) nearby(ctx context.Context) probe.NetworkSection {
	out, err := probe.RunCommand(ctx, networkTimeout, "netsh", "wlan", "show", "networks")
	if err != nil {
		return probe.NetworkSection{Err: err}
	}
	return probe.NearbySection(parseWlanNetworks(out))
}

func (p *Prober) neighbors(ctx context.Context) probe.NetworkSection {
	out, err := probe.RunCommand(ctx, networkTimeout, "arp", "-a")
	if err != nil {
		return probe.NetworkSection{Err: err}
	}
	return probe.NeighborSection(parseARPTable(out))
}

// parseInterfaceTable keeps the netsh rows carrying a connection state.
func parseInterfaceTable(out string) []string {
	lines := []string{"Interfaces:"}
	for _, line := range strings.Split(out, "\n") {
		s := strings.TrimSpace(line)
		if strings.Contains(s, "Connected") || strings.Contains(s, "Disconnected") {
			lines = append(lines, "  "+s)
		}
	}
	return lines
}

// parseWlanInterfaces extracts association state and SSID from
// `netsh wlan show interfaces`, ignoring BSSID rows.
func parseWlanInterfaces(out string) (state, ssid string) {
	state, ssid = "Unknown", "None"
	for _, line := range strings.Split(out, "\n") {
		s := strings.TrimSpace(line)
		if strings.HasPrefix(s, "State") {
			if _, v, ok := strings.Cut(s, ":"); ok && strings.TrimSpace(v) != "" {
				state = strings.TrimSpace(v)
			}
		}
		if strings.Contains(s, "SSID") && !strings.Contains(s, "BSSID") {
			if _, v, ok := strings.Cut(s, ":"); ok && strings.TrimSpace(v) != "" {
				ssid = strings.TrimSpace(v)
			}
		}
	}
	return state, ssid
}

// parseWlanNetworks collects SSID values from `netsh wlan show networks`.
func parseWlanNetworks(out string) []string {
	var ssids []string
	for _, line := range strings.Split(out, "\n") {
		s := strings.TrimSpace(line)
		if !strings.Contains(s, "SSID") || strings.Contains(s, "BSSID") {
			continue
		}
		if _, v, ok := strings.Cut(s, ":"); ok && strings.TrimSpace(v) != "" {
			ssids = append(ssids, strings.TrimSpace(v))
		}
	}
	return ssids
}

// parseARPTable keeps lines that contain a dash-separated MAC address.
func parseARPTable(out string) []string {
	var entries []string
	for _, line := range strings.Split(out, "\n") {
		s := strings.TrimSpace(line)
		if windowsMACPattern.MatchString(s) {
			entries = append(entries, s)
		}
	}
	return entries
}
