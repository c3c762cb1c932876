package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"profilepop/internal/browser"
	"profilepop/internal/style"
)

// FormatVersion is written into every exported document
const FormatVersion = "2.0"

var ErrBadDocument = errors.New("invalid session document")

// Document is the on-disk export format
type Document struct {
	Version   string          `json:"version"`
	Browser   browser.Kind    `json:"browser,omitempty"`
	Profiles  []ProfileEntry  `json:"profiles"`
	Overrides []OverrideEntry `json:"overrides,omitempty"`
	Settings  style.Style     `json:"settings"`
}

// ProfileEntry is a profile record. Color is only present in documents
// written by older versions, where it held the user's choice.
type ProfileEntry struct {
	browser.Profile
	Color string `json:"color,omitempty"`
}

// OverrideEntry is one override with its profile key
type OverrideEntry struct {
	Kind browser.Kind `json:"browser"`
	ID   string       `json:"id"`
	Override
}

// Document builds the export form of the session
func (s *Session) Document() *Document {
	doc := &Document{
		Version:  FormatVersion,
		Browser:  s.Browser,
		Profiles: make([]ProfileEntry, 0, len(s.Profiles)),
		Settings: s.Style,
	}
	for _, p := range s.Profiles {
		doc.Profiles = append(doc.Profiles, ProfileEntry{Profile: p})
	}
	for _, k := range s.sortedKeys() {
		doc.Overrides = append(doc.Overrides, OverrideEntry{Kind: k.Kind, ID: k.ID, Override: s.Overrides[k]})
	}
	return doc
}

// Export writes the session as indented JSON
func (s *Session) Export(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(s.Document())
}

// Import reads a document written by Export or by an older version
func Import(r io.Reader) (*Session, error) {
	doc := Document{Settings: style.Default()}
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadDocument, err)
	}
	if doc.Version == "" {
		return nil, fmt.Errorf("%w: missing version", ErrBadDocument)
	}

	s := New()
	s.Style = doc.Settings.Normalize()

	s.Browser = doc.Browser
	if s.Browser != "" && !s.Browser.Valid() {
		return nil, fmt.Errorf("%w: %w %q", ErrBadDocument, browser.ErrUnknownBrowser, s.Browser)
	}

	for i, e := range doc.Profiles {
		p := e.Profile
		if p.Kind == "" {
			// old documents only carry the browser at the top level
			p.Kind = s.Browser
		}
		if !p.Kind.Valid() {
			return nil, fmt.Errorf("%w: profile %d: %w %q", ErrBadDocument, i, browser.ErrUnknownBrowser, p.Kind)
		}
		if p.ID == "" {
			return nil, fmt.Errorf("%w: profile %d has no id", ErrBadDocument, i)
		}
		s.Profiles = append(s.Profiles, p)
		if e.Color != "" && !strings.EqualFold(e.Color, p.SuggestedColor) {
			s.SetColor(p.Key(), e.Color)
		}
	}

	for i, o := range doc.Overrides {
		if !o.Kind.Valid() {
			return nil, fmt.Errorf("%w: override %d: %w %q", ErrBadDocument, i, browser.ErrUnknownBrowser, o.Kind)
		}
		key := browser.Key{Kind: o.Kind, ID: o.ID}
		if _, ok := s.Profile(key); !ok {
			log.Printf("Dropping override for unknown profile %s", key)
			continue
		}
		s.SetOverride(key, o.Override)
	}
	return s, nil
}

// Save exports the session to a file
func (s *Session) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := s.Export(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Load imports a session from a file
func Load(path string) (*Session, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Import(f)
}
