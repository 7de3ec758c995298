package probe

import "context"

// WindowRecord describes one visible top-level window observed during a poll.
type WindowRecord struct {
	// Handle identifies the window across polls (hwnd, X11 window ID, or a
	// synthetic key on platforms without stable window identifiers).
	Handle string

	// Title is the window title as reported by the OS.
	Title string

	// Process is the owning process name, when the platform exposes it.
	Process string
}

// WindowSnapshot is the result of one window enumeration pass.
type WindowSnapshot struct {
	// Windows lists the titled windows found. Empty when Titleless.
	Windows []WindowRecord

	// Titleless is true when only process presence was observable, because
	// the platform has no window-title API or the required permission is
	// missing.
	Titleless bool

	// RunningBrowsers holds browser family names detected via process
	// existence when Titleless.
	RunningBrowsers []string

	// Note explains degraded output (e.g. the missing permission).
	Note string
}

// ProcessRecord describes one running OS process.
type ProcessRecord struct {
	Name string
	PID  int

	// Memory is the resident memory usage in bytes, 0 when unknown.
	Memory uint64

	// MemoryText is a preformatted memory string for platforms whose
	// listing tool already renders one (e.g. tasklist). Takes precedence
	// over Memory when non-empty.
	MemoryText string
}

// NetworkSection is one independently fault-tolerant part of a network
// report. Err is set when the underlying tool was absent, timed out, or
// failed; Lines carries the rendered output otherwise.
type NetworkSection struct {
	Lines []string
	Err   error
}

// NetworkReport groups the four network sub-probe results. Each section
// fails independently of the others.
type NetworkReport struct {
	Interfaces NetworkSection
	WiFi       NetworkSection
	Nearby     NetworkSection
	Neighbors  NetworkSection
}

// WindowEnumerator lists visible top-level windows for the current OS.
type WindowEnumerator interface {
	// Enumerate returns the current window snapshot. Implementations that
	// cannot read titles return a Titleless snapshot rather than an error.
	Enumerate(ctx context.Context) (*WindowSnapshot, error)

	// TitlesAvailable reports whether this platform can observe window
	// titles at all. When false, activity tracking is not meaningful.
	TitlesAvailable() bool
}

// ProcessLister enumerates running OS processes.
type ProcessLister interface {
	ListProcesses(ctx context.Context) ([]ProcessRecord, error)
}

// NetworkProber inspects local network posture.
type NetworkProber interface {
	Report(ctx context.Context) *NetworkReport
}

// Set bundles the per-platform probe implementations selected at startup.
type Set struct {
	Windows   WindowEnumerator
	Processes ProcessLister
	Network   NetworkProber

	// Platform names the selected implementation ("windows", "darwin",
	// "x11", "fallback").
	Platform string
}
