// Command icongen discovers browser profiles and writes their icons without
// the GUI.
//
//	icongen -browser chrome -out ./icons
//	icongen -browser all -discover
//	icongen -session saved.json -timestamp=false
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"text/tabwriter"

	"profilepop/internal/app"
	"profilepop/internal/browser"
	"profilepop/internal/config"
	"profilepop/internal/icon"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

type options struct {
	browser     string
	root        string
	out         string
	configPath  string
	historyPath string
	sessionPath string
	exportPath  string
	sizes       string
	shape       string
	template    string
	timestamp   bool
	clear       bool
	discover    bool
	printLaunch bool
	debug       bool

	set map[string]bool // flags given on the command line
}

func parseFlags(args []string, stderr io.Writer) (*options, error) {
	o := &options{}
	fs := flag.NewFlagSet("icongen", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&o.browser, "browser", "all", "browser to scan (chrome, edge, firefox, brave, opera, vivaldi, chromium or all)")
	fs.StringVar(&o.root, "root", "", "profile root to read instead of the default location (single browser only)")
	fs.StringVar(&o.out, "out", "", "icon output folder (default from settings)")
	fs.StringVar(&o.configPath, "config", "", "settings file (default platform config dir)")
	fs.StringVar(&o.historyPath, "history", "", "icon history database (default from settings)")
	fs.StringVar(&o.sessionPath, "session", "", "import a saved session instead of scanning")
	fs.StringVar(&o.exportPath, "export", "", "write the session to this file after scanning")
	fs.StringVar(&o.sizes, "sizes", "", "comma separated icon sizes (default from settings)")
	fs.StringVar(&o.shape, "shape", "", "icon shape (rounded, circle, square, hexagon, badge)")
	fs.StringVar(&o.template, "template", "", "style template applied to every profile")
	fs.BoolVar(&o.timestamp, "timestamp", true, "append the batch time to file names (default from settings)")
	fs.BoolVar(&o.clear, "clear", false, "delete earlier icons of the generated profiles (default from settings)")
	fs.BoolVar(&o.discover, "discover", false, "list profiles and exit")
	fs.BoolVar(&o.printLaunch, "print-launch", false, "print the launch command for each profile")
	fs.BoolVar(&o.debug, "debug", false, "log skipped render stages")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	o.set = make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { o.set[f.Name] = true })
	return o, nil
}

// loadConfig reads settings and applies flag overrides
func loadConfig(o *options) (*config.Config, error) {
	cfg := config.Default()
	var err error
	if o.configPath != "" {
		err = cfg.LoadFrom(o.configPath)
	} else {
		err = cfg.Load()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}

	if o.out != "" {
		cfg.OutputDir = o.out
	}
	if o.historyPath != "" {
		cfg.HistoryDB = o.historyPath
	}
	if o.sizes != "" {
		sizes, err := icon.ParseSizes(o.sizes)
		if err != nil {
			return nil, err
		}
		cfg.Sizes = sizes
	}
	if o.shape != "" {
		sh, err := icon.ParseShape(o.shape)
		if err != nil {
			return nil, err
		}
		cfg.Style.Shape = sh
	}
	if o.set["timestamp"] {
		cfg.Timestamped = o.timestamp
	}
	if o.set["clear"] {
		cfg.ClearOldIcons = o.clear
	}
	// the shell cache is refreshed by the GUI only
	cfg.RefreshIcons = false
	return cfg, nil
}

func readerFor(o *options, kinds []browser.Kind) (*browser.Reader, error) {
	reader := browser.NewReader()
	if o.root == "" {
		return reader, nil
	}
	if len(kinds) != 1 {
		return nil, errors.New("-root needs a single -browser")
	}
	reader.Roots = map[browser.Kind]string{kinds[0]: o.root}
	return reader, nil
}

func run(args []string, stdout, stderr io.Writer) int {
	log.SetOutput(stderr)

	o, err := parseFlags(args, stderr)
	if err != nil {
		return 2
	}
	cfg, err := loadConfig(o)
	if err != nil {
		log.Printf("%v", err)
		return 2
	}

	var kinds []browser.Kind
	if o.browser != "all" {
		k, err := browser.ParseKind(o.browser)
		if err != nil {
			log.Printf("%v", err)
			return 2
		}
		kinds = []browser.Kind{k}
	}
	reader, err := readerFor(o, kinds)
	if err != nil {
		log.Printf("%v", err)
		return 2
	}
	if kinds == nil {
		kinds = reader.Installed()
	}

	c := app.NewFromConfig(cfg, reader)
	defer c.Close()

	if o.sessionPath != "" {
		if err := c.ImportSession(o.sessionPath); err != nil {
			log.Printf("Import failed: %v", err)
			return 1
		}
	} else {
		if err := c.StartScan(kinds...); err != nil {
			log.Printf("%s", app.StatusFor(err))
			return 1
		}
		c.Wait(nil)
	}
	fmt.Fprintln(stdout, c.Status())

	s := c.State()
	if len(s.Profiles) == 0 {
		return 1
	}
	if o.template != "" {
		if _, ok := c.Templates().Lookup(o.template); !ok {
			log.Printf("Unknown template %q", o.template)
			return 2
		}
		for _, p := range s.Profiles {
			s.SetTemplate(p.Key(), o.template)
		}
	}

	if o.exportPath != "" {
		if err := c.ExportSession(o.exportPath); err != nil {
			log.Printf("Export failed: %v", err)
			return 1
		}
	}

	if o.discover {
		printProfiles(stdout, c)
		return 0
	}

	if err := c.StartSynthesis(); err != nil {
		log.Printf("%s", app.StatusFor(err))
		return 1
	}
	c.Wait(func(ev app.Event) {
		if p, ok := ev.(app.SynthesisProgress); ok {
			fmt.Fprintf(stdout, "[%d/%d] %s\n", p.Done, p.Total, p.Name)
		}
	})

	report := c.LastReport()
	for _, g := range report.Generated {
		fmt.Fprintln(stdout, g.Path)
		if o.debug {
			for _, skipped := range g.Skipped {
				log.Printf("%s: skipped %v", g.Name, skipped)
			}
		}
	}
	for _, f := range report.Failures {
		log.Printf("%s (%s): %v", f.Name, f.Key, f.Err)
	}
	fmt.Fprintln(stdout, c.Status())

	if o.printLaunch {
		printLaunch(stdout, c)
	}
	if len(report.Failures) > 0 {
		return 1
	}
	return 0
}

func printProfiles(out io.Writer, c *app.Controller) {
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "BROWSER\tID\tNAME\tCOLOR\tDIR")
	s := c.State()
	for _, p := range s.Profiles {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", p.Kind, p.ID, p.Name, s.EffectiveColor(p), p.Dir)
	}
	tw.Flush()
}

func printLaunch(out io.Writer, c *app.Controller) {
	for _, p := range c.State().Profiles {
		exe, err := browser.FindExecutable(p.Kind)
		if err != nil {
			log.Printf("%s: %v", p.Kind, err)
			continue
		}
		iconPath, _ := c.IconFor(p)
		spec := browser.Launch(p, exe, iconPath)
		fmt.Fprintf(out, "%s\t%s\t%s\n", p.Name, spec.CommandLine(), filepath.Base(iconPath))
	}
}
