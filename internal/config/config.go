package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"

	"profilepop/internal/icon"
	"profilepop/internal/style"
)

// Config holds all application settings
type Config struct {
	OutputDir     string      `json:"output_dir,omitempty"` // empty uses <data dir>/icons
	LogoDir       string      `json:"logo_dir,omitempty"`
	TemplatesFile string      `json:"templates_file,omitempty"`
	Sizes         []int       `json:"sizes"`
	Timestamped   bool        `json:"timestamped"`
	ClearOldIcons bool        `json:"clear_old_icons"`
	RefreshIcons  bool        `json:"refresh_icon_cache"`
	HistoryDB     string      `json:"history_db,omitempty"` // empty uses <data dir>/history.db
	Style         style.Style `json:"style"`
	Theme         string      `json:"theme"` // "dark", "light", "system"
	LastBrowser   string      `json:"last_browser,omitempty"`
	WindowWidth   float32     `json:"window_width"`
	WindowHeight  float32     `json:"window_height"`
}

var (
	instance   *Config
	once       sync.Once
	mu         sync.RWMutex
	configPath string
)

// Default returns the default configuration
func Default() *Config {
	return &Config{
		Sizes:        append([]int(nil), icon.DefaultSizes...),
		Timestamped:  true,
		RefreshIcons: runtime.GOOS == "windows",
		Style:        style.Default(),
		Theme:        "dark",
		WindowWidth:  960,
		WindowHeight: 640,
	}
}

// Get returns the singleton config instance
func Get() *Config {
	once.Do(func() {
		instance = Default()
		_ = instance.Load()
	})
	return instance
}

// Dir returns the platform-appropriate settings directory:
//   - Windows: %APPDATA%\ProfilePop
//   - macOS:   ~/Library/Application Support/ProfilePop
//   - Linux:   ~/.config/profilepop (XDG_CONFIG_HOME)
func Dir() (string, error) {
	var dir string

	switch runtime.GOOS {
	case "windows":
		appData := os.Getenv("APPDATA")
		if appData == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", err
			}
			appData = filepath.Join(home, "AppData", "Roaming")
		}
		dir = filepath.Join(appData, "ProfilePop")

	case "darwin":
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		dir = filepath.Join(home, "Library", "Application Support", "ProfilePop")

	default: // linux and others
		configHome := os.Getenv("XDG_CONFIG_HOME")
		if configHome == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", err
			}
			configHome = filepath.Join(home, ".config")
		}
		dir = filepath.Join(configHome, "profilepop")
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}
	return dir, nil
}

// getConfigPath returns the path to the config file
func getConfigPath() (string, error) {
	if configPath != "" {
		return configPath, nil
	}
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	configPath = filepath.Join(dir, "config.json")
	return configPath, nil
}

// Load reads the config from disk
func (c *Config) Load() error {
	path, err := getConfigPath()
	if err != nil {
		return err
	}
	return c.LoadFrom(path)
}

// LoadFrom reads the config from path. A missing file keeps the current values.
func (c *Config) LoadFrom(path string) error {
	mu.Lock()
	defer mu.Unlock()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // Use defaults
		}
		return err
	}

	if err := json.Unmarshal(data, c); err != nil {
		return err
	}
	c.Style = c.Style.Normalize()
	if len(c.Sizes) == 0 {
		c.Sizes = append([]int(nil), icon.DefaultSizes...)
	}
	return nil
}

// Save writes the config to disk
func (c *Config) Save() error {
	path, err := getConfigPath()
	if err != nil {
		return err
	}
	return c.SaveTo(path)
}

// SaveTo writes the config to path
func (c *Config) SaveTo(path string) error {
	mu.Lock()
	defer mu.Unlock()

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}

// IconDir returns the folder icons are written to
func (c *Config) IconDir() string {
	if c.OutputDir != "" {
		return c.OutputDir
	}
	dir, err := Dir()
	if err != nil {
		return "icons"
	}
	return filepath.Join(dir, "icons")
}

// HistoryPath returns the location of the icon history database
func (c *Config) HistoryPath() string {
	if c.HistoryDB != "" {
		return c.HistoryDB
	}
	dir, err := Dir()
	if err != nil {
		return "history.db"
	}
	return filepath.Join(dir, "history.db")
}

// SetStyle updates the default style and saves
func (c *Config) SetStyle(s style.Style) error {
	if err := s.Validate(); err != nil {
		return fmt.Errorf("invalid style: %w", err)
	}
	c.Style = s.Normalize()
	return c.Save()
}

// SetOutputDir updates the icon folder and saves
func (c *Config) SetOutputDir(dir string) error {
	c.OutputDir = dir
	return c.Save()
}

// SetWindowSize remembers the main window size
func (c *Config) SetWindowSize(w, h float32) error {
	c.WindowWidth = w
	c.WindowHeight = h
	return c.Save()
}

// ToggleTimestamps toggles timestamped icon names
func (c *Config) ToggleTimestamps() error {
	c.Timestamped = !c.Timestamped
	return c.Save()
}
