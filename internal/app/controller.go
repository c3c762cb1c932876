package app

import (
	"errors"
	"fmt"
	"image"
	"log"
	"os"
	"sync/atomic"

	"profilepop/internal/browser"
	"profilepop/internal/icon"
	"profilepop/internal/platform"
	"profilepop/internal/session"
	"profilepop/internal/store"
	"profilepop/internal/style"
	"profilepop/internal/synth"
)

var (
	ErrBusy       = errors.New("operation already in progress")
	ErrNoProfiles = errors.New("no profiles to generate")
)

// Event is sent by a worker to the foreground loop
type Event interface {
	event()
}

// ScanDone carries the result of a discovery scan
type ScanDone struct {
	Results []browser.Discovery
}

// SynthesisProgress is sent after each profile of a batch
type SynthesisProgress struct {
	Done, Total int
	Name        string
}

// SynthesisDone carries the report of a finished batch
type SynthesisDone struct {
	Report *synth.Report
}

func (ScanDone) event()          {}
func (SynthesisProgress) event() {}
func (SynthesisDone) event()     {}

// Discoverer finds browser profiles
type Discoverer interface {
	DiscoverAll(kinds ...browser.Kind) []browser.Discovery
}

// Controller owns the session. Scans and batches run on worker goroutines
// that only report back through events; Apply, called from the foreground
// loop, is the only place session state changes.
type Controller struct {
	Session *session.Session
	Catalog *style.Catalog
	Logos   style.Logos
	Reader  Discoverer
	Synth   *synth.Synthesizer
	History *store.DB // optional

	// Launcher starts a browser; defaults to platform.Start
	Launcher func(browser.LaunchSpec) error
	// Locate finds a browser executable; defaults to browser.FindExecutable
	Locate func(browser.Kind) (string, error)

	events       chan Event
	scanning     atomic.Bool
	synthesizing atomic.Bool

	status     string
	lastReport *synth.Report
}

// NewController creates a controller with an empty session
func NewController(reader Discoverer, syn *synth.Synthesizer) *Controller {
	return &Controller{
		Session: session.New(),
		Catalog: style.Builtin(),
		Reader:  reader,
		Synth:   syn,
		events:  make(chan Event, 64),
	}
}

// Events is the queue drained by the foreground loop
func (c *Controller) Events() <-chan Event {
	return c.events
}

// Busy reports whether a scan or batch is in flight
func (c *Controller) Busy() bool {
	return c.scanning.Load() || c.synthesizing.Load()
}

// Scanning reports whether a discovery scan is in flight
func (c *Controller) Scanning() bool { return c.scanning.Load() }

// Synthesizing reports whether a batch is in flight
func (c *Controller) Synthesizing() bool { return c.synthesizing.Load() }

// State returns the session owned by the controller
func (c *Controller) State() *session.Session { return c.Session }

// Templates returns the style template catalog
func (c *Controller) Templates() *style.Catalog { return c.Catalog }

// Status is the latest user-facing status line
func (c *Controller) Status() string { return c.status }

// LastReport is the report of the most recent batch, nil before the first
func (c *Controller) LastReport() *synth.Report { return c.lastReport }

// StartScan discovers the profiles of kinds in the background
func (c *Controller) StartScan(kinds ...browser.Kind) error {
	if len(kinds) == 0 {
		return fmt.Errorf("%w: no browser selected", browser.ErrUnknownBrowser)
	}
	if !c.scanning.CompareAndSwap(false, true) {
		return ErrBusy
	}
	c.status = "Scanning " + kindList(kinds) + "..."

	go func() {
		c.events <- ScanDone{Results: c.Reader.DiscoverAll(kinds...)}
	}()
	return nil
}

// Installed lists the browsers a scan of "everything" should cover
func (c *Controller) Installed() []browser.Kind {
	if r, ok := c.Reader.(interface{ Installed() []browser.Kind }); ok {
		return r.Installed()
	}
	return browser.AllKinds
}

// Resolver returns a resolver for the session's current style
func (c *Controller) Resolver() *style.Resolver {
	return &style.Resolver{Catalog: c.Catalog, Style: c.Session.Style, Logos: c.Logos}
}

// StartSynthesis renders icons for the selected profiles in the background.
// No keys selects every profile in the session.
func (c *Controller) StartSynthesis(keys ...browser.Key) error {
	if !c.synthesizing.CompareAndSwap(false, true) {
		return ErrBusy
	}

	// resolved here, on the foreground, so the worker never reads the session
	jobs := synth.Jobs(c.Session, c.Resolver(), keys...)
	if len(jobs) == 0 {
		c.synthesizing.Store(false)
		return ErrNoProfiles
	}
	c.status = fmt.Sprintf("Generating %d icons...", len(jobs))

	syn := *c.Synth
	syn.Progress = func(done, total int, name string) {
		c.events <- SynthesisProgress{Done: done, Total: total, Name: name}
	}
	go func() {
		c.events <- SynthesisDone{Report: syn.Run(jobs)}
	}()
	return nil
}

// Apply folds a worker event into the session
func (c *Controller) Apply(ev Event) {
	switch ev := ev.(type) {
	case ScanDone:
		c.applyScan(ev)
		c.scanning.Store(false)
	case SynthesisProgress:
		c.status = fmt.Sprintf("Generated %d/%d icons", ev.Done, ev.Total)
	case SynthesisDone:
		c.lastReport = ev.Report
		c.status = summarize(ev.Report)
		c.synthesizing.Store(false)
	}
}

func (c *Controller) applyScan(ev ScanDone) {
	var found int
	var failed []string
	for _, d := range ev.Results {
		if d.Err != nil {
			log.Printf("Scan of %s failed: %v", d.Kind, d.Err)
			failed = append(failed, StatusFor(d.Err))
			continue
		}
		c.Session.Replace(d.Kind, d.Profiles)
		found += len(d.Profiles)
	}

	switch {
	case len(failed) > 0 && found == 0:
		c.status = failed[0]
	case len(failed) > 0:
		c.status = fmt.Sprintf("Found %d profiles; %s", found, failed[0])
	default:
		c.status = fmt.Sprintf("Found %d profiles", found)
	}
}

// Wait runs the foreground loop until no scan or batch is in flight.
// Used where there is no UI event loop.
func (c *Controller) Wait(onEvent func(Event)) {
	for c.Busy() {
		ev := <-c.events
		c.Apply(ev)
		if onEvent != nil {
			onEvent(ev)
		}
	}
}

// ImportSession replaces the session with the one stored at path
func (c *Controller) ImportSession(path string) error {
	if c.Busy() {
		return ErrBusy
	}
	s, err := session.Load(path)
	if err != nil {
		return err
	}
	c.Session = s
	c.status = fmt.Sprintf("Imported %d profiles", len(s.Profiles))
	return nil
}

// ExportSession writes the session to path
func (c *Controller) ExportSession(path string) error {
	if err := c.Session.Save(path); err != nil {
		return err
	}
	c.status = "Exported to " + path
	return nil
}

// IconFor returns the newest icon generated for a profile
func (c *Controller) IconFor(p browser.Profile) (string, error) {
	if c.History != nil {
		if e, err := c.History.Latest(p.Key()); err == nil {
			if _, statErr := os.Stat(e.Path); statErr == nil {
				return e.Path, nil
			}
			if err := c.History.Forget(e.Path); err != nil {
				log.Printf("Failed to forget missing icon %s: %v", e.Path, err)
			}
		}
	}
	return synth.LatestIcon(c.Synth.OutDir, synth.StemOf(c.Session.Profiles, p), p.Kind)
}

// LaunchProfile opens the browser into the profile
func (c *Controller) LaunchProfile(key browser.Key) error {
	p, ok := c.Session.Profile(key)
	if !ok {
		return fmt.Errorf("unknown profile %s", key)
	}
	locate := c.Locate
	if locate == nil {
		locate = browser.FindExecutable
	}
	exe, err := locate(p.Kind)
	if err != nil {
		return err
	}
	iconPath, _ := c.IconFor(p)
	spec := browser.Launch(p, exe, iconPath)

	launch := c.Launcher
	if launch == nil {
		launch = func(l browser.LaunchSpec) error {
			return platform.Start(l.Executable, l.Args, l.WorkDir)
		}
	}
	if err := launch(spec); err != nil {
		return err
	}
	c.status = "Launched " + p.Name
	return nil
}

// Preview renders a small image of a profile's icon with the current style
func (c *Controller) Preview(p browser.Profile, px int) (image.Image, error) {
	spec, _ := c.Resolver().Resolve(c.Session.Request(p))
	return icon.Preview(spec, px)
}

// OpenIconFolder shows the output folder in the file manager
func (c *Controller) OpenIconFolder() error {
	if err := os.MkdirAll(c.Synth.OutDir, 0755); err != nil {
		return err
	}
	return platform.Features.OpenFolder(c.Synth.OutDir)
}

// StatusFor maps an error to a short message per failure class
func StatusFor(err error) string {
	var re *browser.RegistryError
	switch {
	case err == nil:
		return "Done"
	case errors.Is(err, ErrBusy):
		return "Please wait for the current task to finish"
	case errors.Is(err, ErrNoProfiles):
		return "No profiles selected"
	case errors.As(err, &re):
		return fmt.Sprintf("%s profiles not found", re.Kind.Title())
	case errors.Is(err, browser.ErrExecutableNotFound):
		return "Browser is not installed"
	case errors.Is(err, icon.ErrOutputWrite):
		return "Could not save icon file"
	case errors.Is(err, icon.ErrRenderFailed):
		return "Could not draw icon"
	case errors.Is(err, icon.ErrAssetMissing):
		return "Logo or font missing, drawn without it"
	case errors.Is(err, icon.ErrBadColor):
		return "Invalid color, default used"
	case errors.Is(err, session.ErrBadDocument):
		return "Not a ProfilePop session file"
	default:
		return err.Error()
	}
}

// summarize turns a batch report into one status line
func summarize(r *synth.Report) string {
	if r == nil {
		return ""
	}
	msg := fmt.Sprintf("Generated %d icons in %s", len(r.Generated), r.Dir)

	var degraded int
	for _, g := range r.Generated {
		if len(g.Skipped) > 0 {
			degraded++
		}
	}
	if degraded > 0 {
		msg += fmt.Sprintf("; %d without logo or text", degraded)
	}
	if len(r.Failures) > 0 {
		msg += fmt.Sprintf("; %d failed: %s", len(r.Failures), StatusFor(r.Failures[0]))
	}
	return msg
}

func kindList(kinds []browser.Kind) string {
	if len(kinds) == 1 {
		return kinds[0].Title()
	}
	return fmt.Sprintf("%d browsers", len(kinds))
}
