package platform

import (
	"fmt"
	"os"
	"os/exec"
)

// PlatformFeatures defines the interface for platform-specific features.
// Each platform (Windows, Linux, macOS) must implement this interface.
type PlatformFeatures interface {
	// OpenFolder shows dir in the system file manager
	OpenFolder(dir string) error

	// RefreshIconCache asks the shell to reload icons after files in dir changed
	RefreshIconCache(dir string) error
}

// Start launches a program detached from ProfilePop. The child is not waited on.
func Start(exe string, args []string, workDir string) error {
	cmd := exec.Command(exe, args...)
	cmd.Dir = workDir
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start %s: %w", exe, err)
	}
	go cmd.Wait()
	return nil
}

// ensureDir rejects folders that do not exist before handing them to the shell
func ensureDir(dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", dir)
	}
	return nil
}
