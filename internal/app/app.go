package app

import (
	"log"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/theme"

	"profilepop/internal/assets"
	"profilepop/internal/browser"
	"profilepop/internal/config"
	"profilepop/internal/ui"
)

// App is the main application
type App struct {
	fyneApp    fyne.App
	config     *config.Config
	controller *Controller

	// UI components
	tray     *ui.TrayManager
	window   *ui.MainWindow
	settings *ui.SettingsDialog

	// State
	mu      sync.Mutex
	running bool
	hasTray bool
	hidden  bool // main window hidden to the tray
}

var _ ui.Backend = (*Controller)(nil)

// Run starts the application
func Run() error {
	a := &App{}

	// Initialize Fyne app
	a.fyneApp = app.NewWithID("com.profilepop.app")
	a.fyneApp.SetIcon(assets.AppIcon())

	// Load config
	a.config = config.Get()
	a.applyTheme()

	a.controller = NewFromConfig(a.config, browser.NewReader())

	a.initUI()

	// Worker events are applied on the fyne thread
	go a.pump()

	a.running = true
	a.window.Show()
	a.window.Scan()

	// Run the app (blocking)
	a.fyneApp.Run()

	// Cleanup
	a.shutdown()

	return nil
}

// initUI initializes all UI components
func (a *App) initUI() {
	a.window = ui.NewMainWindow(a.fyneApp, a.controller)
	a.window.Setup()
	a.window.SetCallbacks(a.showSettings)

	a.settings = ui.NewSettingsDialog(a.fyneApp, a.window.Window())
	a.settings.SetCallbacks(a.settingsSaved)

	a.tray = ui.NewTrayManager(a.fyneApp)
	a.tray.SetCallbacks(
		a.showWindow,
		a.window.Scan,
		func() { a.window.Generate() },
		a.openFolder,
		a.showSettings,
		a.quit,
	)
	if err := a.tray.Setup(); err != nil {
		log.Printf("Warning: System tray setup failed: %v", err)
	} else {
		a.hasTray = true
	}

	w := a.window.Window()
	w.SetCloseIntercept(func() {
		size := w.Canvas().Size()
		if err := a.config.SetWindowSize(size.Width, size.Height); err != nil {
			log.Printf("Failed to save window size: %v", err)
		}
		if a.hasTray {
			a.hidden = true
			w.Hide()
			return
		}
		a.quit()
	})
}

func (a *App) showWindow() {
	a.hidden = false
	a.window.Show()
}

// pump drains controller events for the life of the process
func (a *App) pump() {
	for ev := range a.controller.Events() {
		fyne.Do(func() {
			a.controller.Apply(ev)
			a.handle(ev)
		})
	}
}

// handle updates the UI after an event was applied
func (a *App) handle(ev Event) {
	switch ev := ev.(type) {
	case ScanDone:
		a.window.Reload()
	case SynthesisProgress:
		a.window.ShowProgress(ev.Done, ev.Total, ev.Name)
	case SynthesisDone:
		a.window.ShowReport(ev.Report)
		a.notify(a.controller.Status())
	}
	a.tray.UpdateStatus(a.controller.Status())
}

// notify raises a desktop notification while the window is in the tray
func (a *App) notify(text string) {
	if !a.hidden {
		return
	}
	a.fyneApp.SendNotification(fyne.NewNotification("ProfilePop", text))
}

func (a *App) applyTheme() {
	switch a.config.Theme {
	case "light":
		a.fyneApp.Settings().SetTheme(theme.LightTheme())
	case "system":
		a.fyneApp.Settings().SetTheme(theme.DefaultTheme())
	default:
		a.fyneApp.Settings().SetTheme(theme.DarkTheme())
	}
}

func (a *App) showSettings() {
	a.settings.Show()
}

func (a *App) settingsSaved() {
	a.applyTheme()
	a.controller.Reconfigure(a.config)
	a.window.Reload()
}

func (a *App) openFolder() {
	if err := a.controller.OpenIconFolder(); err != nil {
		log.Printf("Failed to open icon folder: %v", err)
	}
}

// quit exits the application
func (a *App) quit() {
	a.shutdown()
	a.fyneApp.Quit()
}

// shutdown cleans up resources
func (a *App) shutdown() {
	a.mu.Lock()
	defer a.mu.Unlock()

	if !a.running {
		return
	}
	a.running = false

	log.Println("Shutting down...")

	if err := a.controller.Close(); err != nil {
		log.Printf("Failed to close icon history: %v", err)
	}

	log.Println("Shutdown complete")
}
