package ui

import (
	"fmt"
	"log"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"

	"profilepop/internal/assets"
)

// TrayManager handles the system tray icon and menu
type TrayManager struct {
	app        fyne.App
	menu       *fyne.Menu
	statusItem *fyne.MenuItem
	onShow     func()
	onScan     func()
	onGenerate func()
	onFolder   func()
	onSettings func()
	onQuit     func()
}

// NewTrayManager creates a new tray manager
func NewTrayManager(app fyne.App) *TrayManager {
	return &TrayManager{app: app}
}

// SetCallbacks sets the callback functions for tray actions
func (t *TrayManager) SetCallbacks(
	onShow, onScan, onGenerate, onFolder, onSettings, onQuit func(),
) {
	t.onShow = onShow
	t.onScan = onScan
	t.onGenerate = onGenerate
	t.onFolder = onFolder
	t.onSettings = onSettings
	t.onQuit = onQuit
}

// Setup initializes the system tray
func (t *TrayManager) Setup() error {
	desk, ok := t.app.(desktop.App)
	if !ok {
		return fmt.Errorf("system tray not supported on this platform")
	}

	t.statusItem = fyne.NewMenuItem("Ready", nil)
	t.statusItem.Disabled = true

	separator := fyne.NewMenuItemSeparator()

	t.menu = fyne.NewMenu("ProfilePop",
		fyne.NewMenuItem("Show ProfilePop", call(&t.onShow)),
		separator,
		t.statusItem,
		separator,
		fyne.NewMenuItem("Scan Profiles", call(&t.onScan)),
		fyne.NewMenuItem("Generate All Icons", call(&t.onGenerate)),
		fyne.NewMenuItem("Open Icons Folder", call(&t.onFolder)),
		fyne.NewMenuItem("Settings...", call(&t.onSettings)),
		separator,
		fyne.NewMenuItem("Quit", call(&t.onQuit)),
	)

	desk.SetSystemTrayMenu(t.menu)
	desk.SetSystemTrayIcon(assets.TrayIcon())
	log.Println("System tray initialized")
	return nil
}

// call defers the nil check until the item is clicked
func call(fn *func()) func() {
	return func() {
		if *fn != nil {
			(*fn)()
		}
	}
}

// UpdateStatus shows the latest status line in the tray menu
func (t *TrayManager) UpdateStatus(text string) {
	if t.statusItem == nil || text == "" {
		return
	}
	if len(text) > 60 {
		text = text[:57] + "..."
	}
	t.statusItem.Label = text
	if t.menu != nil {
		t.menu.Refresh()
	}
}
