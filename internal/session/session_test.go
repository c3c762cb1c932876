package session

import (
	"bytes"
	"errors"
	"sort"
	"strings"
	"testing"

	"profilepop/internal/browser"
	"profilepop/internal/icon"
)

func sample() []browser.Profile {
	return []browser.Profile{
		{Kind: browser.Chrome, ID: "Default", Name: "Alice", SuggestedColor: "#4285f4"},
		{Kind: browser.Chrome, ID: "Profile 1", Name: "Bob", SuggestedColor: "#57f287"},
	}
}

type record struct{ kind, id, name, color string }

func records(s *Session) []record {
	var out []record
	for _, p := range s.Profiles {
		out = append(out, record{string(p.Kind), p.ID, p.Name, s.EffectiveColor(p)})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].kind != out[j].kind {
			return out[i].kind < out[j].kind
		}
		return out[i].id < out[j].id
	})
	return out
}

func TestExportImportRoundTrip(t *testing.T) {
	s := New()
	s.Replace(browser.Chrome, sample())
	s.Replace(browser.Firefox, []browser.Profile{
		{Kind: browser.Firefox, ID: "abc.default", Name: "default", SuggestedColor: "#ff9500"},
	})
	s.SetColor(browser.Key{Kind: browser.Chrome, ID: "Profile 1"}, "#ff0000")
	s.SetTemplate(browser.Key{Kind: browser.Firefox, ID: "abc.default"}, "work")
	s.Style.Shape = icon.Hexagon
	s.Style.Effects.Glow = true

	var buf bytes.Buffer
	if err := s.Export(&buf); err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	if !strings.Contains(buf.String(), `"version": "2.0"`) {
		t.Errorf("export missing version:\n%s", buf.String())
	}

	got, err := Import(&buf)
	if err != nil {
		t.Fatalf("Import failed: %v", err)
	}

	want := records(s)
	have := records(got)
	if len(have) != len(want) {
		t.Fatalf("imported %d profiles, want %d", len(have), len(want))
	}
	for i := range want {
		if have[i] != want[i] {
			t.Errorf("record %d = %+v, want %+v", i, have[i], want[i])
		}
	}
	if got.Override(browser.Key{Kind: browser.Firefox, ID: "abc.default"}).Template != "work" {
		t.Error("template override lost")
	}
	if got.Style.Shape != icon.Hexagon || !got.Style.Effects.Glow {
		t.Errorf("style lost: %+v", got.Style)
	}
	if got.Browser != browser.Firefox {
		t.Errorf("browser = %s", got.Browser)
	}
}

func TestImportLegacyDocument(t *testing.T) {
	doc := `{
  "version": "1.0.0",
  "browser": "edge",
  "profiles": [
    {"id": "Default", "name": "Home", "color": "#123456"},
    {"id": "Profile 2", "name": "Work"}
  ],
  "settings": {"shape": "circle", "show_text": false, "effects": {"shadow": false, "glow": true, "border": false}}
}`
	s, err := Import(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("Import failed: %v", err)
	}
	if len(s.Profiles) != 2 || s.Profiles[0].Kind != browser.Edge {
		t.Fatalf("profiles = %+v", s.Profiles)
	}
	if c := s.EffectiveColor(s.Profiles[0]); c != "#123456" {
		t.Errorf("legacy color = %s", c)
	}
	if s.Style.Shape != icon.Circle || s.Style.ShowText || !s.Style.Effects.Glow {
		t.Errorf("style = %+v", s.Style)
	}
	// fields absent from old documents keep their defaults
	if s.Style.Margin != icon.DefaultMargin || s.Style.Opacity != 1 {
		t.Errorf("defaults lost: %+v", s.Style)
	}
}

func TestImportRejectsBadDocuments(t *testing.T) {
	tests := map[string]string{
		"not json":         `{`,
		"no version":       `{"profiles": []}`,
		"unknown browser":  `{"version": "2.0", "profiles": [{"browser": "netscape", "id": "x"}]}`,
		"no id":            `{"version": "2.0", "profiles": [{"browser": "chrome", "name": "x"}]}`,
		"override browser": `{"version": "2.0", "profiles": [], "overrides": [{"browser": "netscape", "id": "x", "color": "#ff0000"}]}`,
	}
	for name, doc := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := Import(strings.NewReader(doc)); !errors.Is(err, ErrBadDocument) {
				t.Errorf("err = %v, want ErrBadDocument", err)
			}
		})
	}
}

func TestImportDropsOrphanOverrides(t *testing.T) {
	doc := `{"version": "2.0",
		"profiles": [{"browser": "chrome", "id": "Default", "name": "Alice"}],
		"overrides": [
			{"browser": "chrome", "id": "Default", "color": "#ff0000"},
			{"browser": "chrome", "id": "Profile 9", "color": "#00ff00"}
		]}`
	s, err := Import(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("Import failed: %v", err)
	}
	if len(s.Overrides) != 1 {
		t.Errorf("overrides = %v, want only Alice's", s.Overrides)
	}
	if got := s.Override(browser.Key{Kind: browser.Chrome, ID: "Default"}).Color; got != "#ff0000" {
		t.Errorf("alice color = %q", got)
	}
}

func TestReplaceCarriesOverridesForward(t *testing.T) {
	s := New()
	s.Replace(browser.Chrome, sample())
	s.Replace(browser.Firefox, []browser.Profile{{Kind: browser.Firefox, ID: "x.default", Name: "ff"}})

	alice := browser.Key{Kind: browser.Chrome, ID: "Default"}
	bob := browser.Key{Kind: browser.Chrome, ID: "Profile 1"}
	ff := browser.Key{Kind: browser.Firefox, ID: "x.default"}
	s.SetColor(alice, "#000000")
	s.SetColor(bob, "#111111")
	s.SetColor(ff, "#222222")

	// rescan: Bob's profile is gone, Alice's name changed
	s.Replace(browser.Chrome, []browser.Profile{
		{Kind: browser.Chrome, ID: "Default", Name: "Alice Smith", SuggestedColor: "#4285f4"},
	})

	if got := s.Override(alice).Color; got != "#000000" {
		t.Errorf("alice override = %q, want carried forward", got)
	}
	if _, ok := s.Overrides[bob]; ok {
		t.Error("override of a vanished profile should be dropped")
	}
	if got := s.Override(ff).Color; got != "#222222" {
		t.Error("rescanning chrome must not touch firefox overrides")
	}
	if _, ok := s.Profile(ff); !ok {
		t.Error("firefox profile dropped by a chrome rescan")
	}
	if p, _ := s.Profile(alice); p.Name != "Alice Smith" {
		t.Errorf("profile not refreshed: %+v", p)
	}
}

func TestRequests(t *testing.T) {
	s := New()
	s.Replace(browser.Chrome, sample())
	bob := browser.Key{Kind: browser.Chrome, ID: "Profile 1"}
	s.SetOverride(bob, Override{Color: "#ff0000", Label: "B"})

	reqs := s.Requests(bob)
	if len(reqs) != 1 || reqs[0].Color != "#ff0000" || reqs[0].Label != "B" {
		t.Errorf("Requests(bob) = %+v", reqs)
	}
	if n := len(s.Requests()); n != 2 {
		t.Errorf("Requests() = %d, want all", n)
	}

	s.SetOverride(bob, Override{})
	if _, ok := s.Overrides[bob]; ok {
		t.Error("zero override should clear the entry")
	}
}
