//go:build !windows && !darwin

package platform

import (
	"fmt"
	"log"
	"os"
	"os/exec"
	"time"
)

// LinuxFeatures implements PlatformFeatures for Linux using xdg-utils
type LinuxFeatures struct{}

// NewLinuxFeatures creates a new Linux platform features instance
func NewLinuxFeatures() *LinuxFeatures {
	return &LinuxFeatures{}
}

// OpenFolder opens dir with the desktop's file manager
func (l *LinuxFeatures) OpenFolder(dir string) error {
	if err := ensureDir(dir); err != nil {
		return err
	}
	cmd := exec.Command("xdg-open", dir)
	if err := cmd.Start(); err != nil {
		// Try gio as fallback
		if err2 := exec.Command("gio", "open", dir).Start(); err2 != nil {
			log.Printf("OpenFolder: xdg-open and gio both failed: %v / %v", err, err2)
			return fmt.Errorf("no file manager available (install xdg-utils)")
		}
	}
	return nil
}

// RefreshIconCache touches the folder so file managers reload it. Desktop
// files reference icons by path, so there is no shared cache to rebuild.
func (l *LinuxFeatures) RefreshIconCache(dir string) error {
	now := time.Now()
	return os.Chtimes(dir, now, now)
}

// Global instance
var Features PlatformFeatures = NewLinuxFeatures()
