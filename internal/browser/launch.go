package browser

import (
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

var ErrExecutableNotFound = errors.New("browser executable not found")

// LaunchSpec is everything a shortcut needs to open a browser in one profile
type LaunchSpec struct {
	Executable string
	Args       []string
	WorkDir    string
	IconPath   string
}

// Launch builds the launch arguments for a profile. Chromium browsers select
// the profile by directory, Firefox by profile name.
func Launch(p Profile, executable, iconPath string) LaunchSpec {
	var args []string
	switch p.Kind.Family() {
	case FirefoxFamily:
		args = []string{"-P", p.Name}
	default:
		args = []string{"--profile-directory=" + p.ID}
	}

	return LaunchSpec{
		Executable: executable,
		Args:       args,
		WorkDir:    filepath.Dir(executable),
		IconPath:   iconPath,
	}
}

// CommandLine renders the spec as a single shell-style string, quoting
// arguments that contain spaces
func (l LaunchSpec) CommandLine() string {
	parts := make([]string, 0, len(l.Args)+1)
	parts = append(parts, quoteArg(l.Executable))
	for _, a := range l.Args {
		parts = append(parts, quoteArg(a))
	}
	return strings.Join(parts, " ")
}

func quoteArg(s string) string {
	if strings.ContainsAny(s, " \t\"") {
		return `"` + strings.ReplaceAll(s, `"`, `\"`) + `"`
	}
	return s
}

// FindExecutable looks for the browser binary in its usual install locations,
// then on PATH
func FindExecutable(k Kind) (string, error) {
	for _, p := range executableCandidates(k) {
		if info, err := os.Stat(p); err == nil && !info.IsDir() {
			return p, nil
		}
	}

	names := map[Kind][]string{
		Chrome:   {"google-chrome-stable", "google-chrome", "chrome"},
		Edge:     {"microsoft-edge", "msedge"},
		Brave:    {"brave-browser", "brave"},
		Opera:    {"opera"},
		Vivaldi:  {"vivaldi"},
		Chromium: {"chromium", "chromium-browser"},
		Firefox:  {"firefox"},
	}
	for _, name := range names[k] {
		if p, err := exec.LookPath(name); err == nil {
			return p, nil
		}
	}
	return "", ErrExecutableNotFound
}
