package browser

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
)

var (
	ErrRegistryUnavailable = errors.New("browser profile registry unavailable")
	ErrUnknownBrowser      = errors.New("unknown browser")
	ErrNoRoot              = errors.New("no profile directory configured")
)

// RegistryError reports why discovery failed for one browser.
// It matches ErrRegistryUnavailable with errors.Is.
type RegistryError struct {
	Kind Kind
	Path string
	Err  error
}

func (e *RegistryError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%s: %v: %v", e.Kind, ErrRegistryUnavailable, e.Err)
	}
	return fmt.Sprintf("%s: %v at %s: %v", e.Kind, ErrRegistryUnavailable, e.Path, e.Err)
}

func (e *RegistryError) Unwrap() []error {
	return []error{ErrRegistryUnavailable, e.Err}
}

// Profile is one browser profile found on disk
type Profile struct {
	Kind           Kind   `json:"browser"`
	ID             string `json:"id"`
	Name           string `json:"name"`
	Dir            string `json:"dir,omitempty"`
	SuggestedColor string `json:"suggested_color"`
}

// Key identifies a profile across browsers. Display names may collide, keys never do.
type Key struct {
	Kind Kind   `json:"browser"`
	ID   string `json:"id"`
}

func (k Key) String() string {
	return string(k.Kind) + "/" + k.ID
}

// Key returns the (browser, id) pair of the profile
func (p Profile) Key() Key {
	return Key{Kind: p.Kind, ID: p.ID}
}

// Reader discovers profiles from each browser's registry file.
// It only reads from disk and is safe for concurrent use.
type Reader struct {
	Roots map[Kind]string
}

// NewReader creates a reader using the platform's default browser locations
func NewReader() *Reader {
	home, _ := os.UserHomeDir()
	return &Reader{Roots: defaultRoots(home)}
}

// Root returns the profile-storage root configured for a browser
func (r *Reader) Root(k Kind) string {
	return r.Roots[k]
}

// Installed returns the browsers whose profile root exists
func (r *Reader) Installed() []Kind {
	var kinds []Kind
	for _, k := range AllKinds {
		root := r.Roots[k]
		if root == "" {
			continue
		}
		if info, err := os.Stat(root); err == nil && info.IsDir() {
			kinds = append(kinds, k)
		}
	}
	return kinds
}

// Discover reads the registry of one browser. On failure it returns a
// *RegistryError and no profiles.
func (r *Reader) Discover(k Kind) ([]Profile, error) {
	if !k.Valid() {
		return nil, &RegistryError{Kind: k, Err: ErrUnknownBrowser}
	}

	root := r.Roots[k]
	if root == "" {
		return nil, &RegistryError{Kind: k, Err: ErrNoRoot}
	}
	info, err := os.Stat(root)
	if err != nil {
		return nil, &RegistryError{Kind: k, Path: root, Err: err}
	}
	if !info.IsDir() {
		return nil, &RegistryError{Kind: k, Path: root, Err: errors.New("not a directory")}
	}

	index := filepath.Join(root, k.Family().IndexFile())

	var profiles []Profile
	switch k.Family() {
	case ChromiumFamily:
		profiles, err = readChromium(k, root, index)
	case FirefoxFamily:
		profiles, err = readFirefox(root, index)
	}
	if err != nil {
		return nil, &RegistryError{Kind: k, Path: index, Err: err}
	}

	assignColors(k, profiles)
	log.Printf("Found %d %s profiles in %s", len(profiles), k.Title(), index)
	return profiles, nil
}

// Discovery is the outcome of scanning one browser
type Discovery struct {
	Kind     Kind
	Profiles []Profile
	Err      error
}

// DiscoverAll scans several browsers concurrently. A failure for one browser
// is reported in its Discovery and does not affect the others.
func (r *Reader) DiscoverAll(kinds ...Kind) []Discovery {
	results := make([]Discovery, len(kinds))

	var wg sync.WaitGroup
	for i, k := range kinds {
		wg.Add(1)
		go func(i int, k Kind) {
			defer wg.Done()
			profiles, err := r.Discover(k)
			results[i] = Discovery{Kind: k, Profiles: profiles, Err: err}
		}(i, k)
	}
	wg.Wait()

	return results
}
