// Package agent owns the background polling loop: on each tick it runs the
// window, activity, process, and network probes, assembles a snapshot, and
// hands it to the configured sink. Probe faults are converted into payload
// text; the loop only ever exits on an explicit stop request.
package agent

import (
	"context"
	"fmt"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"complyd/internal/activity"
	"complyd/internal/browser"
	"complyd/internal/config"
	"complyd/internal/extensions"
	"complyd/internal/models"
	"complyd/internal/programs"
	"complyd/internal/sink"
	"complyd/pkg/probe"
)

// sleepSlice bounds how long a stop request can go unnoticed while the
// loop waits for the next tick.
const sleepSlice = 100 * time.Millisecond

// Agent is a single-use polling scheduler. Once stopped it cannot be
// restarted; construct a fresh instance instead.
type Agent struct {
	interval time.Duration
	flagged  []string
	sink     sink.Sink
	probes   probe.Set
	tracker  *activity.Tracker

	mu      sync.Mutex
	started bool
	stopped bool

	stopOnce sync.Once
	stopCh   chan struct{}
	doneCh   chan struct{}
	cancel   context.CancelFunc

	count        atomic.Uint64
	sessionStart time.Time
}

// New builds an agent from the configuration, sink, and probe set. The
// activity tracker and extension scanner are created here and owned by the
// polling goroutine for their whole lifetime.
func New(cfg *config.Config, s sink.Sink, probes probe.Set) *Agent {
	scanner := extensions.NewScanner(extensions.DefaultRoots())
	return &Agent{
		interval: cfg.Agent.PollInterval,
		flagged:  append([]string(nil), cfg.Agent.FlaggedProcesses...),
		sink:     s,
		probes:   probes,
		tracker:  activity.NewTracker(scanner),
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// WithTracker replaces the activity tracker before Start. Test hook for
// injecting a tracker with a deterministic clock.
func (a *Agent) WithTracker(t *activity.Tracker) *Agent {
	a.tracker = t
	return a
}

// Start launches the background polling goroutine. It fails when the agent
// is already running or has been stopped.
func (a *Agent) Start() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.stopped {
		return fmt.Errorf("agent has been stopped and cannot be restarted")
	}
	if a.started {
		return fmt.Errorf("agent is already running")
	}
	a.started = true
	a.sessionStart = time.Now()

	ctx, cancel := context.WithCancel(context.Background())
	a.cancel = cancel

	log.Printf("Starting integrity agent with %v poll interval on %s", a.interval, a.probes.Platform)
	go a.run(ctx)
	return nil
}

// Stop requests cooperative termination. It never blocks; the loop
// observes the request within one sleep slice. In-flight probe commands
// are cancelled.
func (a *Agent) Stop() {
	a.mu.Lock()
	a.stopped = true
	cancel := a.cancel
	a.mu.Unlock()

	a.stopOnce.Do(func() {
		close(a.stopCh)
		if cancel != nil {
			cancel()
		}
	})
}

// Join blocks until the polling goroutine exits or the timeout elapses.
// Returns true when the agent has fully stopped. A false return means
// "best-effort stop, proceed anyway", not a fatal condition.
func (a *Agent) Join(timeout time.Duration) bool {
	a.mu.Lock()
	started := a.started
	a.mu.Unlock()
	if !started {
		// No goroutine was ever launched; nothing to wait for.
		return true
	}

	select {
	case <-a.doneCh:
		return true
	case <-time.After(timeout):
		return false
	}
}

// SnapshotCount returns the number of snapshots captured so far. Safe to
// call from any goroutine.
func (a *Agent) SnapshotCount() uint64 {
	return a.count.Load()
}

// TotalSwitches exposes the tracker's lifetime switch counter for display.
func (a *Agent) TotalSwitches() uint64 {
	return a.tracker.TotalSwitches()
}

func (a *Agent) run(ctx context.Context) {
	defer close(a.doneCh)

	for {
		select {
		case <-a.stopCh:
			log.Printf("Integrity agent stopped after %d snapshot(s)", a.count.Load())
			return
		default:
		}

		snapshot := a.capture(ctx)
		a.dispatch(snapshot)

		if !a.sleep() {
			log.Printf("Integrity agent stopped after %d snapshot(s)", a.count.Load())
			return
		}
	}
}

// capture assembles one snapshot. Each probe runs inside a recovery
// boundary so a single fault degrades one payload instead of killing the
// loop or the other three payloads.
func (a *Agent) capture(ctx context.Context) *models.Snapshot {
	seq := a.count.Add(1)

	var browserInfo, browserStats string
	capturePayload("browser", func() {
		browserInfo, browserStats = a.captureBrowser(ctx)
	}, func(msg string) {
		browserInfo, browserStats = msg, msg
	})

	var programsInfo string
	capturePayload("programs", func() {
		programsInfo = a.capturePrograms(ctx)
	}, func(msg string) {
		programsInfo = msg
	})

	var networkInfo string
	capturePayload("network", func() {
		networkInfo = a.probes.Network.Report(ctx).String()
	}, func(msg string) {
		networkInfo = msg
	})

	now := time.Now()
	return &models.Snapshot{
		Sequence:     seq,
		ElapsedMS:    now.Sub(a.sessionStart).Milliseconds(),
		Timestamp:    now,
		BrowserInfo:  browserInfo,
		BrowserStats: browserStats,
		NetworkInfo:  networkInfo,
		ProgramsInfo: programsInfo,
	}
}

func (a *Agent) captureBrowser(ctx context.Context) (info, stats string) {
	snap, err := a.probes.Windows.Enumerate(ctx)
	if err != nil {
		msg := fmt.Sprintf("Unable to enumerate browser windows: %v", err)
		return msg, msg
	}
	return browser.FormatWindowReport(snap), a.tracker.Observe(snap)
}

func (a *Agent) capturePrograms(ctx context.Context) string {
	procs, err := a.probes.Processes.ListProcesses(ctx)
	if err != nil {
		return fmt.Sprintf("Error reading process list: %v", err)
	}
	return programs.FormatReport(procs, a.flagged)
}

// dispatch hands the snapshot to the sink. Sink failures are logged and
// swallowed; they must never reach the polling loop.
func (a *Agent) dispatch(snapshot *models.Snapshot) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("Sink panic recovered: %v", r)
		}
	}()

	if err := a.sink.Record(snapshot); err != nil {
		log.Printf("Sink error: %v", err)
	}
}

// sleep waits one poll interval in small slices, returning false as soon
// as a stop request is observed.
func (a *Agent) sleep() bool {
	remaining := a.interval
	for remaining > 0 {
		slice := sleepSlice
		if remaining < slice {
			slice = remaining
		}
		select {
		case <-a.stopCh:
			return false
		case <-time.After(slice):
			remaining -= slice
		}
	}
	return true
}

// capturePayload invokes fn behind a recovery boundary. A panic inside a
// probe is downgraded to a payload message via onFault.
func capturePayload(name string, fn func(), onFault func(msg string)) {
	defer func() {
		if r := recover(); r != nil {
			onFault(fmt.Sprintf("%s probe failed: %v", name, r))
		}
	}()
	fn()
}
