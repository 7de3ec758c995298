package probe

import (
	"fmt"
	"strings"
)

// Overflow limits for the rendered network report.
const (
	maxNearbyNetworks = 10
	maxNeighborLines  = 5
)

// NearbySection builds the nearby-networks section from a list of SSIDs,
// applying the overflow marker.
func NearbySection(ssids []string) NetworkSection {
	if len(ssids) == 0 {
		return NetworkSection{Lines: []string{"Nearby Networks: none visible"}}
	}
	lines := []string{"Nearby Networks:"}
	for i, s := range ssids {
		if i == maxNearbyNetworks {
			lines = append(lines, fmt.Sprintf("  * (+%d more)", len(ssids)-maxNearbyNetworks))
			break
		}
		lines = append(lines, "  * "+s)
	}
	return NetworkSection{Lines: lines}
}

// NeighborSection builds the ARP-neighbor section: total count, up to five
// entries, and an overflow count for the remainder.
func NeighborSection(entries []string) NetworkSection {
	lines := []string{fmt.Sprintf("LAN Devices Found: %d", len(entries))}
	for i, e := range entries {
		if i == maxNeighborLines {
			lines = append(lines, fmt.Sprintf("  (+%d more)", len(entries)-maxNeighborLines))
			break
		}
		lines = append(lines, "  "+e)
	}
	return NetworkSection{Lines: lines}
}

// String renders the four sections into the network payload. A failed
// section contributes an inline error line; it never suppresses the others.
func (r *NetworkReport) String() string {
	var out []string
	appendSection := func(label string, s NetworkSection) {
		if s.Err != nil {
			out = append(out, fmt.Sprintf("%s: unavailable (%v)", label, s.Err))
		} else {
			out = append(out, s.Lines...)
		}
		out = append(out, "")
	}

	appendSection("Interfaces", r.Interfaces)
	appendSection("Wi-Fi", r.WiFi)
	appendSection("Nearby Networks", r.Nearby)
	appendSection("LAN Devices", r.Neighbors)

	return strings.TrimRight(strings.Join(out, "\n"), "\n")
}
