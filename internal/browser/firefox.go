package browser

import (
	"fmt"
	"log"
	"path/filepath"
	"strings"

	"gopkg.in/ini.v1"
)

// readFirefox parses a Firefox profiles.ini. Sections named Profile* with a
// non-empty Path become profiles; the Path value is the profile id.
func readFirefox(root, index string) ([]Profile, error) {
	cfg, err := ini.LoadSources(ini.LoadOptions{IgnoreInlineComment: true}, index)
	if err != nil {
		return nil, fmt.Errorf("parse profiles.ini: %w", err)
	}

	var profiles []Profile
	for _, sec := range cfg.Sections() {
		if !strings.HasPrefix(sec.Name(), "Profile") {
			continue
		}

		path := strings.TrimSpace(sec.Key("Path").String())
		if path == "" {
			log.Printf("Skipping Firefox section [%s]: empty Path", sec.Name())
			continue
		}

		name := strings.TrimSpace(sec.Key("Name").String())
		if name == "" {
			name = fmt.Sprintf("Profile %d", len(profiles))
		}

		dir := filepath.FromSlash(path)
		if sec.Key("IsRelative").MustInt(1) == 1 && !filepath.IsAbs(dir) {
			dir = filepath.Join(root, dir)
		}

		profiles = append(profiles, Profile{
			Kind: Firefox,
			ID:   path,
			Name: name,
			Dir:  dir,
		})
	}
	return profiles, nil
}
