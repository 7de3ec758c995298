package extensions

import (
	"os"
	"path/filepath"
	"runtime"
)

// DefaultRoots returns the candidate Chromium extension directories for
// the current OS. A nil result means the scan is not supported here.
func DefaultRoots() []Root {
	return rootsFor(runtime.GOOS)
}

func rootsFor(goos string) []Root {
	switch goos {
	case "windows":
		local := os.Getenv("LOCALAPPDATA")
		if local == "" {
			return nil
		}
		return []Root{
			{"Chrome", filepath.Join(local, "Google", "Chrome", "User Data", "Default", "Extensions")},
			{"Brave", filepath.Join(local, "BraveSoftware", "Brave-Browser", "User Data", "Default", "Extensions")},
			{"Edge", filepath.Join(local, "Microsoft", "Edge", "User Data", "Default", "Extensions")},
		}
	case "darwin":
		home, err := os.UserHomeDir()
		if err != nil {
			return nil
		}
		support := filepath.Join(home, "Library", "Application Support")
		return []Root{
			{"Chrome", filepath.Join(support, "Google", "Chrome", "Default", "Extensions")},
			{"Brave", filepath.Join(support, "BraveSoftware", "Brave-Browser", "Default", "Extensions")},
			{"Edge", filepath.Join(support, "Microsoft Edge", "Default", "Extensions")},
			{"Chromium", filepath.Join(support, "Chromium", "Default", "Extensions")},
		}
	case "linux":
		home, err := os.UserHomeDir()
		if err != nil {
			return nil
		}
		cfg := filepath.Join(home, ".config")
		return []Root{
			{"Chrome", filepath.Join(cfg, "google-chrome", "Default", "Extensions")},
			{"Brave", filepath.Join(cfg, "BraveSoftware", "Brave-Browser", "Default", "Extensions")},
			{"Edge", filepath.Join(cfg, "microsoft-edge", "Default", "Extensions")},
			{"Chromium", filepath.Join(cfg, "chromium", "Default", "Extensions")},
		}
	default:
		return nil
	}
}
