package browser

import (
	"fmt"
	"strings"
)

// Kind identifies a supported browser
type Kind string

const (
	Chrome   Kind = "chrome"
	Edge     Kind = "edge"
	Brave    Kind = "brave"
	Opera    Kind = "opera"
	Vivaldi  Kind = "vivaldi"
	Chromium Kind = "chromium"
	Firefox  Kind = "firefox"
)

// AllKinds lists every supported browser in menu order
var AllKinds = []Kind{Chrome, Edge, Firefox, Brave, Opera, Vivaldi, Chromium}

// Family is the on-disk profile registry format shared by a group of browsers
type Family int

const (
	ChromiumFamily Family = iota // JSON "Local State" with profile.info_cache
	FirefoxFamily                // profiles.ini
)

// IndexFile returns the name of the registry file inside a browser's root
func (f Family) IndexFile() string {
	if f == FirefoxFamily {
		return "profiles.ini"
	}
	return "Local State"
}

func (f Family) String() string {
	if f == FirefoxFamily {
		return "firefox"
	}
	return "chromium"
}

var titles = map[Kind]string{
	Chrome:   "Google Chrome",
	Edge:     "Microsoft Edge",
	Brave:    "Brave Browser",
	Opera:    "Opera",
	Vivaldi:  "Vivaldi",
	Chromium: "Chromium",
	Firefox:  "Mozilla Firefox",
}

// Family returns the registry format used by the browser
func (k Kind) Family() Family {
	if k == Firefox {
		return FirefoxFamily
	}
	return ChromiumFamily
}

// Valid reports whether k is one of the supported browsers
func (k Kind) Valid() bool {
	_, ok := titles[k]
	return ok
}

// Title returns the product name shown to users
func (k Kind) Title() string {
	if t, ok := titles[k]; ok {
		return t
	}
	return string(k)
}

// Tag is the upper-case form used in generated filenames
func (k Kind) Tag() string {
	return strings.ToUpper(string(k))
}

// ParseKind converts user input such as "Edge" or "firefox" into a Kind
func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	if !k.Valid() {
		return "", fmt.Errorf("unsupported browser %q", s)
	}
	return k, nil
}
