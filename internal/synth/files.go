package synth

import (
	"fmt"
	"image"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"profilepop/internal/browser"
	"profilepop/internal/icon"
)

type stemKey struct {
	kind browser.Kind
	name string
}

// foldStem keys a stem the way a case-insensitive filesystem compares it
func foldStem(kind browser.Kind, stem string) stemKey {
	return stemKey{kind, strings.ToLower(icon.Sanitize(stem))}
}

// Stems returns the file stem of each profile. Names that repeat within one
// browser, ignoring case, get the profile id appended, and a counter when
// that still clashes with another stem.
func Stems(profiles []browser.Profile) []string {
	names := make([]string, len(profiles))
	for i, p := range profiles {
		names[i] = p.Name
	}
	return disambiguate(profiles, names)
}

// StemOf returns the stem p gets among profiles
func StemOf(profiles []browser.Profile, p browser.Profile) string {
	stems := Stems(profiles)
	for i, q := range profiles {
		if q.Key() == p.Key() {
			return stems[i]
		}
	}
	return p.Name
}

func disambiguate(profiles []browser.Profile, names []string) []string {
	count := make(map[stemKey]int)
	for i, p := range profiles {
		count[foldStem(p.Kind, names[i])]++
	}

	stems := make([]string, len(profiles))
	taken := make(map[stemKey]bool)
	var repeated []int
	for i, p := range profiles {
		k := foldStem(p.Kind, names[i])
		if count[k] > 1 {
			repeated = append(repeated, i)
			continue
		}
		stems[i] = names[i]
		taken[k] = true
	}

	for _, i := range repeated {
		p := profiles[i]
		base := names[i] + "_" + p.ID
		stem := base
		for n := 2; taken[foldStem(p.Kind, stem)]; n++ {
			stem = fmt.Sprintf("%s_%d", base, n)
		}
		stems[i] = stem
		taken[foldStem(p.Kind, stem)] = true
	}
	return stems
}

// uniqueStems returns a file stem per job, starting from the stems Jobs
// assigned against the whole session
func uniqueStems(jobs []Job) []string {
	profiles := make([]browser.Profile, len(jobs))
	names := make([]string, len(jobs))
	for i, j := range jobs {
		profiles[i] = j.Profile
		names[i] = j.Stem
		if names[i] == "" {
			names[i] = j.Name
		}
	}
	return disambiguate(profiles, names)
}

// writeICO writes to a temporary file first so a failed write never
// leaves a truncated icon behind
func writeICO(path string, images []image.Image) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".icon-*")
	if err != nil {
		return fmt.Errorf("%w: %v", icon.ErrOutputWrite, err)
	}
	defer os.Remove(tmp.Name())

	if err := icon.EncodeICO(tmp, images); err != nil {
		tmp.Close()
		return fmt.Errorf("%w: %s: %v", icon.ErrOutputWrite, path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%w: %s: %v", icon.ErrOutputWrite, path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("%w: %s: %v", icon.ErrOutputWrite, path, err)
	}
	return nil
}

// clearOld deletes earlier icons of the batch's profiles
func (s *Synthesizer) clearOld(jobs []Job, stems []string) {
	for i, j := range jobs {
		for _, p := range iconFiles(s.OutDir, stems[i], j.Profile.Kind.Tag()) {
			if err := os.Remove(p); err != nil {
				log.Printf("Could not delete old icon %s: %v", p, err)
			}
		}
	}
}

// iconFiles lists the plain and timestamped icons for name in dir,
// oldest first with the untimestamped file leading
func iconFiles(dir, name, tag string) []string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}

	plain := icon.FileName(name, tag, time.Time{})
	prefix := strings.TrimSuffix(plain, icon.Extension) + "_"

	var found []string
	hasPlain := false
	for _, e := range entries {
		n := e.Name()
		if e.IsDir() {
			continue
		}
		if n == plain {
			hasPlain = true
			continue
		}
		if !strings.HasPrefix(n, prefix) || !strings.HasSuffix(n, icon.Extension) {
			continue
		}
		stamp := strings.TrimSuffix(strings.TrimPrefix(n, prefix), icon.Extension)
		if _, err := time.Parse(icon.StampLayout, stamp); err != nil {
			continue
		}
		found = append(found, n)
	}
	// stamps sort chronologically
	sort.Strings(found)
	if hasPlain {
		found = append([]string{plain}, found...)
	}

	paths := make([]string, len(found))
	for i, n := range found {
		paths[i] = filepath.Join(dir, n)
	}
	return paths
}

// LatestIcon returns the newest icon written under stem in dir, preferring
// timestamped files over the plain name. See StemOf.
func LatestIcon(dir, stem string, kind browser.Kind) (string, error) {
	files := iconFiles(dir, stem, kind.Tag())
	if len(files) == 0 {
		return "", fmt.Errorf("no icon for %s in %s: %w", stem, dir, os.ErrNotExist)
	}
	last := files[len(files)-1]
	return last, nil
}
