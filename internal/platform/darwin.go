//go:build darwin

package platform

import (
	"fmt"
	"os"
	"os/exec"
	"time"
)

// DarwinFeatures implements PlatformFeatures for macOS
type DarwinFeatures struct{}

// NewDarwinFeatures creates a new macOS platform features instance
func NewDarwinFeatures() *DarwinFeatures {
	return &DarwinFeatures{}
}

// OpenFolder reveals dir in Finder
func (d *DarwinFeatures) OpenFolder(dir string) error {
	if err := ensureDir(dir); err != nil {
		return err
	}
	if err := exec.Command("open", dir).Run(); err != nil {
		return fmt.Errorf("open failed: %w", err)
	}
	return nil
}

// RefreshIconCache bumps the folder's modification time, which is enough for
// Finder to re-read the icons inside it
func (d *DarwinFeatures) RefreshIconCache(dir string) error {
	now := time.Now()
	return os.Chtimes(dir, now, now)
}

// Global instance
var Features PlatformFeatures = NewDarwinFeatures()
