package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"complyd/internal/agent"
	"complyd/internal/config"
	"complyd/internal/daemon"
	"complyd/internal/database"
	"complyd/internal/models"
	"complyd/internal/sink"
	"complyd/pkg/probes"
)

var (
	version = "0.1.0"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]

	switch command {
	case "start":
		startAgent()
	case "stop":
		stopAgent()
	case "status":
		showStatus()
	case "report":
		showReport()
	case "clear":
		clearDatabase()
	case "version":
		fmt.Printf("complyd version %s\n", version)
		fmt.Printf("  commit: %s\n", commit)
		fmt.Printf("  built:  %s\n", date)
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Printf("Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Printf(`complyd - workstation integrity polling agent

Usage:
  complyd <command> [config.yaml]

Commands:
  start [config]     Start the polling agent in the foreground
  stop               Stop a running agent
  status             Show agent status
  report [n]         Show the n most recent snapshots (default 5)
  clear              Clear all captured snapshots from the database
  version            Show version information
  help               Show this help message

Environment Variables:
  COMPLYD_POLL_INTERVAL       Poll interval in seconds (1-300, default 5)
  COMPLYD_FLAGGED_PROCESSES   Comma-separated flagged process substrings
  COMPLYD_DB_PATH             Database file path
  COMPLYD_LOG_DIR             Session log directory
  COMPLYD_SINK_JSONL          Enable JSONL sink (true/false)
  COMPLYD_SINK_DATABASE       Enable database sink (true/false)
  COMPLYD_PID_FILE            PID file path

Version: %s
`, version)
}

func loadConfig(path string) *config.Config {
	cfg, err := config.Load(path)
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	return cfg
}

// loadConfigFromArgs treats the optional trailing argument of `complyd
// start` as a YAML config path.
func loadConfigFromArgs() *config.Config {
	path := ""
	if len(os.Args) > 2 {
		path = os.Args[2]
	}
	return loadConfig(path)
}

func buildSink(cfg *config.Config) (sink.Sink, error) {
	var sinks []sink.Sink

	if cfg.Sink.JSONL {
		js, err := sink.NewJSONLSink(cfg.Sink.LogDir, cfg.Sink.SessionLabel, cfg.Agent.PollInterval)
		if err != nil {
			return nil, err
		}
		log.Printf("Session folder: %s", js.SessionDir())
		sinks = append(sinks, js)
	}

	if cfg.Sink.Database {
		db, err := database.Connect(cfg.Database.Path)
		if err != nil {
			return nil, err
		}
		if err := db.Initialize(); err != nil {
			db.Close()
			return nil, err
		}
		sinks = append(sinks, sink.NewDBSink(db))
	}

	return sink.NewMultiSink(sinks...), nil
}

func startAgent() {
	cfg := loadConfigFromArgs()

	dm := daemon.New(cfg.Daemon.PIDFile)
	running, pid, err := dm.IsRunning()
	if err != nil {
		log.Fatalf("Failed to check agent status: %v", err)
	}
	if running {
		log.Fatalf("Agent is already running (PID: %d)", pid)
	}

	snapshotSink, err := buildSink(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize sinks: %v", err)
	}
	defer snapshotSink.Close()

	if err := dm.WritePID(); err != nil {
		log.Fatalf("Failed to write PID file: %v", err)
	}
	defer dm.RemovePID()

	ag := agent.New(cfg, snapshotSink, probes.New())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	log.Println("Starting complyd agent...")
	log.Printf("Configuration:\n%s", cfg.String())

	if err := ag.Start(); err != nil {
		log.Fatalf("Failed to start agent: %v", err)
	}

	<-sigChan
	log.Println("Received shutdown signal")
	ag.Stop()
	if !ag.Join(2 * time.Second) {
		log.Println("Agent did not stop within 2s, proceeding with shutdown")
	}

	log.Printf("Agent stopped after %d snapshot(s)", ag.SnapshotCount())
}

func stopAgent() {
	cfg := loadConfig("")
	dm := daemon.New(cfg.Daemon.PIDFile)

	running, pid, err := dm.IsRunning()
	if err != nil {
		log.Fatalf("Failed to check agent status: %v", err)
	}
	if !running {
		fmt.Println("Agent is not running")
		return
	}

	fmt.Printf("Stopping agent (PID: %d)...\n", pid)
	if err := dm.Stop(); err != nil {
		log.Fatalf("Failed to stop agent: %v", err)
	}
	fmt.Println("Agent stopped successfully")
}

func showStatus() {
	cfg := loadConfig("")
	dm := daemon.New(cfg.Daemon.PIDFile)

	running, pid, err := dm.IsRunning()
	if err != nil {
		log.Fatalf("Failed to check agent status: %v", err)
	}

	if !running {
		fmt.Println("Status: Not running")
		return
	}
	fmt.Printf("Status: Running (PID: %d)\n", pid)
	fmt.Printf("Poll Interval: %v\n", cfg.Agent.PollInterval)
	fmt.Printf("Database: %s\n", cfg.Database.Path)
}

func showReport() {
	cfg := loadConfig("")

	n := 5
	if len(os.Args) > 2 {
		if parsed, err := fmt.Sscanf(os.Args[2], "%d", &n); err != nil || parsed != 1 {
			n = 5
		}
	}

	db, err := database.Connect(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	repo := database.NewRepository(db)
	snapshots, err := repo.GetRecent(n)
	if err != nil {
		log.Fatalf("Failed to read snapshots: %v", err)
	}
	if len(snapshots) == 0 {
		fmt.Println("No snapshots recorded")
		return
	}

	for _, s := range snapshots {
		fmt.Println(formatSnapshot(s))
	}
}

// formatSnapshot renders one stored snapshot with all four payloads.
func formatSnapshot(s *models.Snapshot) string {
	return fmt.Sprintf("=== Snapshot %d  (%s, +%dms)\n%s\n\n%s\n\n%s\n\n%s\n",
		s.Sequence,
		s.Timestamp.Format("2006-01-02 15:04:05"),
		s.ElapsedMS,
		s.BrowserInfo,
		s.BrowserStats,
		s.ProgramsInfo,
		s.NetworkInfo,
	)
}

func clearDatabase() {
	cfg := loadConfig("")

	db, err := database.Connect(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	repo := database.NewRepository(db)
	if err := repo.Clear(); err != nil {
		log.Fatalf("Failed to clear database: %v", err)
	}
	fmt.Println("All snapshots cleared")
}
