// Package session holds the in-memory state of one editing session: the
// discovered profiles, the user's per-profile overrides and the batch style.
//
// A Session is owned by the foreground loop. Batches are resolved into jobs
// there and workers never read it.
package session

import (
	"sort"

	"profilepop/internal/browser"
	"profilepop/internal/style"
)

// Override is a user choice for one profile. Empty fields are unset.
type Override struct {
	Color    string `json:"color,omitempty"`
	Template string `json:"template,omitempty"`
	Label    string `json:"label,omitempty"`
}

// IsZero reports whether nothing is overridden
func (o Override) IsZero() bool {
	return o == Override{}
}

// Session is the editable state between scans
type Session struct {
	Browser   browser.Kind // browser last scanned or imported
	Profiles  []browser.Profile
	Overrides map[browser.Key]Override
	Style     style.Style
}

// New returns an empty session with the default style
func New() *Session {
	return &Session{
		Overrides: make(map[browser.Key]Override),
		Style:     style.Default(),
	}
}

// Profile returns the profile with the given key
func (s *Session) Profile(key browser.Key) (browser.Profile, bool) {
	for _, p := range s.Profiles {
		if p.Key() == key {
			return p, true
		}
	}
	return browser.Profile{}, false
}

// Override returns the override for key, zero when unset
func (s *Session) Override(key browser.Key) Override {
	return s.Overrides[key]
}

// SetOverride stores o for key. A zero override clears the entry.
func (s *Session) SetOverride(key browser.Key, o Override) {
	if s.Overrides == nil {
		s.Overrides = make(map[browser.Key]Override)
	}
	if o.IsZero() {
		delete(s.Overrides, key)
		return
	}
	s.Overrides[key] = o
}

// SetColor overrides only the color of one profile
func (s *Session) SetColor(key browser.Key, color string) {
	o := s.Overrides[key]
	o.Color = color
	s.SetOverride(key, o)
}

// SetTemplate applies a catalog template to one profile
func (s *Session) SetTemplate(key browser.Key, template string) {
	o := s.Overrides[key]
	o.Template = template
	s.SetOverride(key, o)
}

// Reset clears every override
func (s *Session) Reset() {
	s.Overrides = make(map[browser.Key]Override)
}

// Replace swaps in a fresh scan of one browser. Profiles of other browsers
// are kept. Overrides survive when the same (browser, id) is still present.
func (s *Session) Replace(k browser.Kind, profiles []browser.Profile) {
	present := make(map[browser.Key]bool, len(profiles))
	for _, p := range profiles {
		present[p.Key()] = true
	}

	kept := make([]browser.Profile, 0, len(s.Profiles)+len(profiles))
	for _, p := range s.Profiles {
		if p.Kind != k {
			kept = append(kept, p)
		}
	}
	s.Profiles = append(kept, profiles...)

	for key := range s.Overrides {
		if key.Kind == k && !present[key] {
			delete(s.Overrides, key)
		}
	}
	s.Browser = k
}

// EffectiveColor is the override color or else the suggested color
func (s *Session) EffectiveColor(p browser.Profile) string {
	if c := s.Overrides[p.Key()].Color; c != "" {
		return c
	}
	return p.SuggestedColor
}

// Request builds the style resolution input for one profile
func (s *Session) Request(p browser.Profile) style.Request {
	o := s.Overrides[p.Key()]
	return style.Request{Profile: p, Color: o.Color, Template: o.Template, Label: o.Label}
}

// Requests returns a request per selected profile, in session order.
// No keys selects every profile.
func (s *Session) Requests(keys ...browser.Key) []style.Request {
	want := make(map[browser.Key]bool, len(keys))
	for _, k := range keys {
		want[k] = true
	}
	var out []style.Request
	for _, p := range s.Profiles {
		if len(keys) == 0 || want[p.Key()] {
			out = append(out, s.Request(p))
		}
	}
	return out
}

// sortedKeys orders override keys for stable output
func (s *Session) sortedKeys() []browser.Key {
	keys := make([]browser.Key, 0, len(s.Overrides))
	for k := range s.Overrides {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].Kind != keys[j].Kind {
			return keys[i].Kind < keys[j].Kind
		}
		return keys[i].ID < keys[j].ID
	})
	return keys
}
