package probe

import (
	"context"
	"fmt"
	"os/exec"
	"time"
)

// RunCommand executes an external tool with a hard deadline and returns its
// stdout. Every OS probe goes through this helper so no poll can block
// indefinitely on a wedged tool.
func RunCommand(ctx context.Context, timeout time.Duration, name string, args ...string) (string, error) {
	cctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	out, err := exec.CommandContext(cctx, name, args...).Output()
	if cctx.Err() == context.DeadlineExceeded {
		return "", fmt.Errorf("%s timed out after %v", name, timeout)
	}
	if err != nil {
		return "", fmt.Errorf("%s failed: %w", name, err)
	}
	return string(out), nil
}

// CommandExists reports whether a tool is resolvable on PATH.
func CommandExists(name string) bool {
	_, err := exec.LookPath(name)
	return err == nil
}
