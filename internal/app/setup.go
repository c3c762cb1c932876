package app

import (
	"log"
	"os"
	"path/filepath"

	"profilepop/internal/assets"
	"profilepop/internal/config"
	"profilepop/internal/platform"
	"profilepop/internal/store"
	"profilepop/internal/style"
	"profilepop/internal/synth"
)

// NewFromConfig wires a controller from saved settings. The icon history
// is optional: when it cannot be opened the controller works without it.
// Close releases it.
func NewFromConfig(cfg *config.Config, reader Discoverer) *Controller {
	c := NewController(reader, &synth.Synthesizer{})

	if path := cfg.HistoryPath(); path != "" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			log.Printf("Icon history disabled: %v", err)
		} else if db, err := store.Open(path); err != nil {
			log.Printf("Icon history disabled: %v", err)
		} else {
			c.History = db
		}
	}

	c.Session.Style = cfg.Style.Normalize()
	c.Reconfigure(cfg)
	return c
}

// Reconfigure applies changed settings. A batch already running keeps the
// settings it started with.
func (c *Controller) Reconfigure(cfg *config.Config) {
	c.Synth.OutDir = cfg.IconDir()
	c.Synth.Sizes = append([]int(nil), cfg.Sizes...)
	c.Synth.Timestamp = cfg.Timestamped
	c.Synth.ClearOld = cfg.ClearOldIcons

	c.Synth.Recorder = nil
	if c.History != nil {
		c.Synth.Recorder = c.History
	}

	c.Synth.RefreshCache = nil
	if cfg.RefreshIcons {
		dir := c.Synth.OutDir
		c.Synth.RefreshCache = func() error {
			return platform.Features.RefreshIconCache(dir)
		}
	}

	c.Logos = style.Logos{Dir: cfg.LogoDir, Builtin: assets.Logo}

	catalog, err := style.LoadCatalog(cfg.TemplatesFile)
	if err != nil {
		log.Printf("Failed to load templates from %s: %v", cfg.TemplatesFile, err)
		catalog = style.Builtin()
	}
	c.Catalog = catalog

	c.Session.Style.Font = cfg.Style.Font
}

// Close releases the icon history
func (c *Controller) Close() error {
	if c.History == nil {
		return nil
	}
	err := c.History.Close()
	c.History = nil
	return err
}
