package icon

import (
	"strings"
	"time"
	"unicode"
)

const (
	Extension   = ".ico"
	StampLayout = "20060102_150405"
)

var unsafeChars = strings.NewReplacer(
	" ", "_",
	"/", "_",
	"\\", "_",
	":", "",
	"?", "",
	"*", "",
	"<", "",
	">", "",
	"|", "",
	"\"", "",
)

// Sanitize makes a display name safe to use in a filename.
// Sanitize(Sanitize(s)) == Sanitize(s).
func Sanitize(name string) string {
	s := unsafeChars.Replace(name)
	s = strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, s)
	s = strings.Trim(s, ".")
	if s == "" {
		return "profile"
	}
	return s
}

// FileName composes name_TAG[_stamp].ico. A zero stamp gives the
// untimestamped fallback name.
func FileName(name, tag string, stamp time.Time) string {
	base := Sanitize(name) + "_" + Sanitize(tag)
	if !stamp.IsZero() {
		base += "_" + stamp.Format(StampLayout)
	}
	return base + Extension
}
