//go:build windows

package platform

import (
	"fmt"
	"log"
	"os/exec"
	"syscall"
)

var (
	shell32            = syscall.NewLazyDLL("shell32.dll")
	procSHChangeNotify = shell32.NewProc("SHChangeNotify")
)

// Windows constants
const (
	SHCNE_ASSOCCHANGED = 0x08000000
	SHCNF_IDLIST       = 0x0000
	SHCNF_FLUSH        = 0x1000
)

// WindowsFeatures implements PlatformFeatures for Windows
type WindowsFeatures struct{}

// NewWindowsFeatures creates a new Windows platform features instance
func NewWindowsFeatures() *WindowsFeatures {
	return &WindowsFeatures{}
}

// OpenFolder opens dir in Explorer
func (w *WindowsFeatures) OpenFolder(dir string) error {
	if err := ensureDir(dir); err != nil {
		return err
	}
	// explorer exits with status 1 even on success
	_ = exec.Command("explorer", dir).Start()
	return nil
}

// RefreshIconCache broadcasts an association change so Explorer drops cached
// icons, then asks ie4uinit to rebuild the cache
func (w *WindowsFeatures) RefreshIconCache(dir string) error {
	if err := procSHChangeNotify.Find(); err == nil {
		procSHChangeNotify.Call(SHCNE_ASSOCCHANGED, SHCNF_IDLIST|SHCNF_FLUSH, 0, 0)
	}

	cmd := exec.Command("ie4uinit.exe", "-show")
	if err := cmd.Run(); err != nil {
		// ie4uinit -show only exists on Windows 10 and later
		cmd = exec.Command("ie4uinit.exe", "-ClearIconCache")
		if err2 := cmd.Run(); err2 != nil {
			log.Printf("RefreshIconCache: ie4uinit failed: %v / %v", err, err2)
			return fmt.Errorf("icon cache refresh failed: %w", err2)
		}
	}
	return nil
}

// Global instance
var Features PlatformFeatures = NewWindowsFeatures()
