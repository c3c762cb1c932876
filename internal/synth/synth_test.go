package synth

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"profilepop/internal/browser"
	"profilepop/internal/icon"
	"profilepop/internal/session"
	"profilepop/internal/store"
	"profilepop/internal/style"
)

var batchTime = time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC)

type memRecorder struct {
	entries []store.Entry
}

func (m *memRecorder) Record(entries []store.Entry) error {
	m.entries = append(m.entries, entries...)
	return nil
}

func writeLocalState(t *testing.T, root, content string) {
	t.Helper()
	if err := os.MkdirAll(root, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(root, "Local State"), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func smallSynth(dir string) *Synthesizer {
	return &Synthesizer{
		OutDir:    dir,
		Sizes:     []int{256, 32, 16},
		Timestamp: true,
		Now:       func() time.Time { return batchTime },
	}
}

func TestAliceAndBob(t *testing.T) {
	root := t.TempDir()
	writeLocalState(t, root, `{"profile":{"info_cache":{"Default":{"name":"Alice"},"Profile 1":{"name":"Bob"}}}}`)

	reader := &browser.Reader{Roots: map[browser.Kind]string{browser.Chrome: root}}
	profiles, err := reader.Discover(browser.Chrome)
	if err != nil {
		t.Fatal(err)
	}

	s := session.New()
	s.Replace(browser.Chrome, profiles)
	resolver := &style.Resolver{Catalog: style.Builtin(), Style: style.Default()}

	out := t.TempDir()
	rec := &memRecorder{}
	syn := smallSynth(out)
	syn.Recorder = rec

	report := syn.Run(Jobs(s, resolver))
	if err := report.Err(); err != nil {
		t.Fatalf("batch failed: %v", err)
	}
	if len(report.Generated) != 2 {
		t.Fatalf("generated %d icons, want 2", len(report.Generated))
	}

	a, b := report.Generated[0].Path, report.Generated[1].Path
	if a == b {
		t.Fatalf("output files collide: %s", a)
	}
	if filepath.Base(a) != "Alice_CHROME_20240506_070809.ico" || filepath.Base(b) != "Bob_CHROME_20240506_070809.ico" {
		t.Errorf("file names = %s, %s", filepath.Base(a), filepath.Base(b))
	}
	for _, p := range []string{a, b} {
		data, err := os.ReadFile(p)
		if err != nil {
			t.Fatal(err)
		}
		images, err := icon.DecodeICO(data)
		if err != nil || len(images) != 3 {
			t.Errorf("%s: %d images, err %v", p, len(images), err)
		}
	}
	if len(rec.entries) != 2 {
		t.Errorf("recorded %d entries", len(rec.entries))
	}
}

func TestDuplicateNamesGetDistinctFiles(t *testing.T) {
	jobs := []Job{
		{Profile: browser.Profile{Kind: browser.Edge, ID: "Default", Name: "Work"}, Name: "Work", Spec: icon.DefaultSpec()},
		{Profile: browser.Profile{Kind: browser.Edge, ID: "Profile 3", Name: "Work"}, Name: "Work", Spec: icon.DefaultSpec()},
		{Profile: browser.Profile{Kind: browser.Chrome, ID: "Default", Name: "Work"}, Name: "Work", Spec: icon.DefaultSpec()},
	}
	syn := smallSynth(t.TempDir())
	syn.Timestamp = false

	report := syn.Run(jobs)
	if len(report.Generated) != 3 {
		t.Fatalf("generated %d, failures %v", len(report.Generated), report.Failures)
	}
	want := []string{"Work_Default_EDGE.ico", "Work_Profile_3_EDGE.ico", "Work_CHROME.ico"}
	for i, w := range want {
		if got := filepath.Base(report.Generated[i].Path); got != w {
			t.Errorf("file %d = %s, want %s", i, got, w)
		}
	}
}

func TestFailureIsolation(t *testing.T) {
	bad := icon.DefaultSpec()
	bad.Size = 4

	missing := icon.DefaultSpec()
	missing.Overlay = icon.Overlay{Path: filepath.Join(t.TempDir(), "gone.png")}

	jobs := []Job{
		{Profile: browser.Profile{Kind: browser.Chrome, ID: "a", Name: "Broken"}, Name: "Broken", Spec: bad},
		{Profile: browser.Profile{Kind: browser.Chrome, ID: "b", Name: "NoLogo"}, Name: "NoLogo", Spec: missing},
	}
	report := smallSynth(t.TempDir()).Run(jobs)

	if len(report.Failures) != 1 || !errors.Is(report.Failures[0], icon.ErrRenderFailed) {
		t.Fatalf("failures = %v", report.Failures)
	}
	if report.Failures[0].Key.ID != "a" {
		t.Errorf("wrong profile failed: %v", report.Failures[0])
	}
	if len(report.Generated) != 1 {
		t.Fatalf("generated = %d", len(report.Generated))
	}
	if sk := report.Generated[0].Skipped; len(sk) != 1 || !errors.Is(sk[0], icon.ErrAssetMissing) {
		t.Errorf("skipped = %v", sk)
	}
}

func TestOutputWriteFailure(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	if err := os.WriteFile(blocker, nil, 0644); err != nil {
		t.Fatal(err)
	}

	jobs := []Job{{Profile: browser.Profile{Kind: browser.Chrome, ID: "a", Name: "A"}, Name: "A", Spec: icon.DefaultSpec()}}
	report := smallSynth(filepath.Join(blocker, "sub")).Run(jobs)

	if len(report.Failures) != 1 || !errors.Is(report.Err(), icon.ErrOutputWrite) {
		t.Errorf("failures = %v", report.Failures)
	}
}

func TestClearOldAndLatestIcon(t *testing.T) {
	dir := t.TempDir()
	for _, n := range []string{"Alice_CHROME.ico", "Alice_CHROME_20200101_000000.ico", "Alice_FIREFOX.ico", "Alicia_CHROME_20200101_000000.ico"} {
		if err := os.WriteFile(filepath.Join(dir, n), []byte("old"), 0644); err != nil {
			t.Fatal(err)
		}
	}

	latest, err := LatestIcon(dir, "Alice", browser.Chrome)
	if err != nil || filepath.Base(latest) != "Alice_CHROME_20200101_000000.ico" {
		t.Errorf("LatestIcon = %s, %v", latest, err)
	}

	syn := smallSynth(dir)
	syn.ClearOld = true
	refreshed := false
	syn.RefreshCache = func() error { refreshed = true; return nil }

	jobs := []Job{{Profile: browser.Profile{Kind: browser.Chrome, ID: "Default", Name: "Alice"}, Name: "Alice", Spec: icon.DefaultSpec()}}
	if err := syn.Run(jobs).Err(); err != nil {
		t.Fatal(err)
	}
	if !refreshed {
		t.Error("icon cache refresh hook not called")
	}

	for _, gone := range []string{"Alice_CHROME.ico", "Alice_CHROME_20200101_000000.ico"} {
		if _, err := os.Stat(filepath.Join(dir, gone)); !os.IsNotExist(err) {
			t.Errorf("%s should have been cleared", gone)
		}
	}
	for _, kept := range []string{"Alice_FIREFOX.ico", "Alicia_CHROME_20200101_000000.ico"} {
		if _, err := os.Stat(filepath.Join(dir, kept)); err != nil {
			t.Errorf("%s should be untouched: %v", kept, err)
		}
	}

	latest, err = LatestIcon(dir, "Alice", browser.Chrome)
	if err != nil || filepath.Base(latest) != "Alice_CHROME_20240506_070809.ico" {
		t.Errorf("LatestIcon after batch = %s, %v", latest, err)
	}
	if _, err := LatestIcon(dir, "Nobody", browser.Chrome); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("missing icon err = %v", err)
	}
}

func TestProgress(t *testing.T) {
	syn := smallSynth(t.TempDir())
	var calls []int
	syn.Progress = func(done, total int, name string) {
		if total != 2 {
			t.Errorf("total = %d", total)
		}
		calls = append(calls, done)
	}
	jobs := []Job{
		{Profile: browser.Profile{Kind: browser.Chrome, ID: "a", Name: "A"}, Name: "A", Spec: icon.DefaultSpec()},
		{Profile: browser.Profile{Kind: browser.Chrome, ID: "b", Name: "B"}, Name: "B", Spec: icon.DefaultSpec()},
	}
	syn.Run(jobs)
	if len(calls) != 2 || calls[1] != 2 {
		t.Errorf("progress calls = %v", calls)
	}
}

func TestStemsIgnoreCaseAndStayDistinct(t *testing.T) {
	profiles := []browser.Profile{
		{Kind: browser.Chrome, ID: "Default", Name: "Work"},
		{Kind: browser.Chrome, ID: "Profile 1", Name: "work"},
		{Kind: browser.Chrome, ID: "Profile 2", Name: "Bob"},
		{Kind: browser.Chrome, ID: "Default", Name: "Bob"},
		{Kind: browser.Chrome, ID: "Profile 3", Name: "Bob_Default"},
	}
	stems := Stems(profiles)

	want := []string{"Work_Default", "work_Profile 1", "Bob_Profile 2", "Bob_Default_2", "Bob_Default"}
	for i, w := range want {
		if stems[i] != w {
			t.Errorf("stem %d = %q, want %q", i, stems[i], w)
		}
	}

	seen := make(map[string]string)
	for i, stem := range stems {
		name := strings.ToLower(icon.FileName(stem, "CHROME", batchTime))
		if prev, ok := seen[name]; ok {
			t.Errorf("%q and %q share the file %s", prev, profiles[i].Name, name)
		}
		seen[name] = profiles[i].Name
	}
}

func TestLatestIconForRepeatedNames(t *testing.T) {
	dir := t.TempDir()
	// written before the second Bob existed
	if err := os.WriteFile(filepath.Join(dir, "Bob_CHROME_20200101_000000.ico"), []byte("old"), 0644); err != nil {
		t.Fatal(err)
	}

	s := session.New()
	s.Replace(browser.Chrome, []browser.Profile{
		{Kind: browser.Chrome, ID: "Default", Name: "Bob"},
		{Kind: browser.Chrome, ID: "Profile 1", Name: "Bob"},
	})
	resolver := &style.Resolver{Catalog: style.Builtin(), Style: style.Default()}

	// one profile alone still gets the stem it has in the session
	bob1 := browser.Key{Kind: browser.Chrome, ID: "Profile 1"}
	report := smallSynth(dir).Run(Jobs(s, resolver, bob1))
	if len(report.Generated) != 1 {
		t.Fatalf("report = %+v", report)
	}
	if got := filepath.Base(report.Generated[0].Path); got != "Bob_Profile_1_CHROME_20240506_070809.ico" {
		t.Errorf("file = %s", got)
	}

	latest, err := LatestIcon(dir, StemOf(s.Profiles, s.Profiles[1]), browser.Chrome)
	if err != nil || latest != report.Generated[0].Path {
		t.Errorf("LatestIcon = %s, %v", latest, err)
	}
	if _, err := LatestIcon(dir, StemOf(s.Profiles, s.Profiles[0]), browser.Chrome); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("ungenerated duplicate found %v", err)
	}
}
