package browser

import (
	"fmt"
	"sort"
	"strings"

	"complyd/pkg/probe"
)

const (
	maxExampleTitles = 10
	maxTitleLength   = 120
)

// TruncateTitle shortens a window title to the report limit, marking the
// cut with an ellipsis. The limit counts characters, not bytes, so a
// multibyte title is never cut mid-rune.
func TruncateTitle(title string) string {
	r := []rune(title)
	if len(r) <= maxTitleLength {
		return title
	}
	return string(r[:maxTitleLength-3]) + "..."
}

// FormatWindowReport renders the browser-windows payload from one
// enumeration pass: windows grouped by family with counts, up to ten
// example titles per family, and an overflow marker beyond that. A
// title-less snapshot degrades to a labeled process-presence listing.
func FormatWindowReport(snap *probe.WindowSnapshot) string {
	if snap == nil {
		return "No window data available."
	}

	if snap.Titleless {
		return formatTitleless(snap)
	}

	grouped := make(map[string][]string)
	var order []string
	for _, w := range snap.Windows {
		family, ok := ClassifyWindow(w)
		if !ok {
			continue
		}
		if _, seen := grouped[family]; !seen {
			order = append(order, family)
		}
		grouped[family] = append(grouped[family], strings.TrimSpace(w.Title))
	}

	if len(order) == 0 {
		return "No supported browser windows detected."
	}

	var lines []string
	for _, family := range order {
		titles := grouped[family]
		lines = append(lines, fmt.Sprintf("%s: %d window(s)", family, len(titles)))
		for i, t := range titles {
			if i == maxExampleTitles {
				lines = append(lines, fmt.Sprintf("  * (+%d more)", len(titles)-maxExampleTitles))
				break
			}
			lines = append(lines, "  * "+TruncateTitle(t))
		}
		lines = append(lines, "")
	}
	return strings.TrimRight(strings.Join(lines, "\n"), "\n")
}

func formatTitleless(snap *probe.WindowSnapshot) string {
	note := snap.Note
	if note == "" {
		note = "window titles not available on this platform"
	}

	if len(snap.RunningBrowsers) == 0 {
		return "No supported browser windows detected."
	}

	browsers := append([]string(nil), snap.RunningBrowsers...)
	sort.Strings(browsers)

	lines := []string{fmt.Sprintf("Detected running browsers (%s):", note)}
	for _, b := range browsers {
		lines = append(lines, "  * "+b)
	}
	return strings.Join(lines, "\n")
}
