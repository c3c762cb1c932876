//go:build !windows && !darwin

package browser

import (
	"os"
	"path/filepath"
)

// defaultRoots returns browser profile roots on Linux (XDG config home)
func defaultRoots(home string) map[Kind]string {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		configDir = filepath.Join(home, ".config")
	}

	return map[Kind]string{
		Chrome:   filepath.Join(configDir, "google-chrome"),
		Edge:     filepath.Join(configDir, "microsoft-edge"),
		Brave:    filepath.Join(configDir, "BraveSoftware", "Brave-Browser"),
		Opera:    filepath.Join(configDir, "opera"),
		Vivaldi:  filepath.Join(configDir, "vivaldi"),
		Chromium: filepath.Join(configDir, "chromium"),
		Firefox:  filepath.Join(home, ".mozilla", "firefox"),
	}
}

// executableCandidates returns the usual binary locations on Linux
func executableCandidates(k Kind) []string {
	switch k {
	case Chrome:
		return []string{"/usr/bin/google-chrome-stable", "/usr/bin/google-chrome"}
	case Edge:
		return []string{"/usr/bin/microsoft-edge", "/usr/bin/microsoft-edge-stable"}
	case Brave:
		return []string{"/usr/bin/brave-browser", "/usr/bin/brave"}
	case Opera:
		return []string{"/usr/bin/opera"}
	case Vivaldi:
		return []string{"/usr/bin/vivaldi", "/usr/bin/vivaldi-stable"}
	case Chromium:
		return []string{"/usr/bin/chromium", "/usr/bin/chromium-browser"}
	case Firefox:
		return []string{"/usr/bin/firefox"}
	}
	return nil
}
