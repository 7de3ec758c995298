package probe

import (
	"context"
	"runtime"
	"strings"
	"testing"
	"time"
)

func TestRunCommand(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("test shells out to POSIX tools")
	}

	out, err := RunCommand(context.Background(), time.Second, "echo", "hello")
	if err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(out) != "hello" {
		t.Errorf("output = %q", out)
	}
}

func TestRunCommandTimeout(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("test shells out to POSIX tools")
	}

	start := time.Now()
	_, err := RunCommand(context.Background(), 100*time.Millisecond, "sleep", "5")
	if err == nil {
		t.Fatal("expected timeout error")
	}
	if !strings.Contains(err.Error(), "timed out after") {
		t.Errorf("error = %v", err)
	}
	if elapsed := time.Since(start); elapsed > 2*time.Second {
		t.Errorf("timeout took %v", elapsed)
	}
}

func TestRunCommandCancelled(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("test shells out to POSIX tools")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := RunCommand(ctx, time.Second, "sleep", "5"); err == nil {
		t.Error("expected error for cancelled context")
	}
}

func TestRunCommandMissingTool(t *testing.T) {
	if _, err := RunCommand(context.Background(), time.Second, "definitely-not-a-real-tool"); err == nil {
		t.Error("expected error for missing tool")
	}
}

func TestCommandExists(t *testing.T) {
	if runtime.GOOS != "windows" && !CommandExists("sh") {
		t.Error("sh should exist on POSIX systems")
	}
	if CommandExists("definitely-not-a-real-tool") {
		t.Error("nonexistent tool reported as present")
	}
}
