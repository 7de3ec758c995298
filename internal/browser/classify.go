package browser

import (
	"strings"

	"complyd/pkg/probe"
)

// familyPattern maps a browser family to the title suffixes its windows
// carry. Order matters: more specific suffixes are listed before generic
// ones so "Foo - Microsoft Edge" never classifies as Chrome via " - Edge".
type familyPattern struct {
	Family   string
	Suffixes []string
}

var titlePatterns = []familyPattern{
	{"Chrome", []string{" - google chrome", " - chrome"}},
	{"Brave", []string{" - brave"}},
	{"Edge", []string{" - microsoft edge", " - ms edge", " - edge"}},
	{"Firefox", []string{" - mozilla firefox", " - firefox"}},
	{"Opera", []string{" - opera"}},
	{"Chromium", []string{" - chromium"}},
	{"Vivaldi", []string{" - vivaldi"}},
}

// processNames maps a browser family to the process names it runs under
// across platforms. Used where only process existence is observable.
var processNames = []familyPattern{
	{"Chrome", []string{"google chrome", "chrome", "google-chrome"}},
	{"Brave", []string{"brave browser", "brave", "brave-browser"}},
	{"Edge", []string{"microsoft edge", "msedge", "microsoft-edge"}},
	{"Firefox", []string{"firefox"}},
	{"Safari", []string{"safari"}},
	{"Opera", []string{"opera"}},
	{"Chromium", []string{"chromium", "chromium-browser"}},
	{"Vivaldi", []string{"vivaldi"}},
}

// Classify maps a window title to a browser family by case-insensitive
// suffix match. Returns ok=false for titles that belong to no known
// browser.
func Classify(title string) (family string, ok bool) {
	tl := strings.ToLower(strings.TrimSpace(title))
	if tl == "" {
		return "", false
	}
	for _, p := range titlePatterns {
		for _, suffix := range p.Suffixes {
			if strings.HasSuffix(tl, suffix) {
				return p.Family, true
			}
		}
	}
	return "", false
}

// ClassifyProcess maps a process name to a browser family, case-insensitive.
func ClassifyProcess(name string) (family string, ok bool) {
	nl := strings.ToLower(strings.TrimSpace(name))
	if nl == "" {
		return "", false
	}
	for _, p := range processNames {
		for _, proc := range p.Suffixes {
			if nl == proc || strings.Contains(nl, proc) {
				return p.Family, true
			}
		}
	}
	return "", false
}

// ClassifyWindow resolves a window to a browser family, preferring the
// title suffix and falling back to the owning process name. macOS windows
// rarely carry the " - Browser" title suffix, so the process path matters
// there.
func ClassifyWindow(w probe.WindowRecord) (family string, ok bool) {
	if family, ok = Classify(w.Title); ok {
		return family, true
	}
	return ClassifyProcess(w.Process)
}

// Families returns the known browser family names in table order.
func Families() []string {
	out := make([]string, 0, len(titlePatterns))
	for _, p := range titlePatterns {
		out = append(out, p.Family)
	}
	return out
}
