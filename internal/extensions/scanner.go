// Package extensions approximates installed browser extension counts by
// counting the identifier subdirectories in each known Chromium profile
// directory. Results are cached for a fixed interval because the scan hits
// the disk and the underlying set changes rarely.
package extensions

import (
	"fmt"
	"os"
	"strings"
	"time"
)

const defaultTTL = 10 * time.Second

// Root is one candidate extension directory for a known browser.
type Root struct {
	Browser string
	Path    string
}

// Scanner produces the extension summary with a single-slot TTL cache. It
// is owned by one goroutine; no locking.
type Scanner struct {
	roots []Root
	ttl   time.Duration
	now   func() time.Time

	primed bool
	last   time.Time
	cached string
}

// NewScanner builds a scanner over the given roots with the default
// 10-second cache interval.
func NewScanner(roots []Root) *Scanner {
	return &Scanner{
		roots: roots,
		ttl:   defaultTTL,
		now:   time.Now,
	}
}

// WithClock overrides the time source. Test hook.
func (s *Scanner) WithClock(now func() time.Time) *Scanner {
	s.now = now
	return s
}

// Summary returns the formatted extension listing, recomputing it at most
// once per TTL. Intervening calls return the cached string unchanged, even
// when the prior scan found nothing.
func (s *Scanner) Summary() string {
	now := s.now()
	if s.primed && now.Sub(s.last) < s.ttl {
		return s.cached
	}

	s.cached = s.scan()
	s.last = now
	s.primed = true
	return s.cached
}

func (s *Scanner) scan() string {
	if len(s.roots) == 0 {
		return "  (extension scan not supported on this OS)"
	}

	var lines []string
	for _, root := range s.roots {
		info, err := os.Stat(root.Path)
		if err != nil || !info.IsDir() {
			// Browser not installed or profile absent; skip silently.
			continue
		}

		entries, err := os.ReadDir(root.Path)
		if err != nil {
			lines = append(lines, fmt.Sprintf("  * %s: error scanning (%v)", root.Browser, err))
			continue
		}

		count := 0
		for _, e := range entries {
			if e.IsDir() {
				count++
			}
		}
		lines = append(lines, fmt.Sprintf("  * %s: ~%d extension(s)", root.Browser, count))
	}

	if len(lines) == 0 {
		return "  (no extension roots found)"
	}
	return strings.Join(lines, "\n")
}
