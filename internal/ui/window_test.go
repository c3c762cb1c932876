package ui

import (
	"errors"
	"image"
	"testing"

	"fyne.io/fyne/v2/test"

	"profilepop/internal/browser"
	"profilepop/internal/session"
	"profilepop/internal/style"
	"profilepop/internal/synth"
)

type fakeBackend struct {
	session   *session.Session
	catalog   *style.Catalog
	status    string
	generated [][]browser.Key
	report    *synth.Report
}

func newFakeBackend() *fakeBackend {
	s := session.New()
	s.Replace(browser.Chrome, []browser.Profile{
		{Kind: browser.Chrome, ID: "Default", Name: "Alice", SuggestedColor: "#4285f4"},
		{Kind: browser.Chrome, ID: "Profile 1", Name: "Bob", SuggestedColor: "#ea4335"},
	})
	return &fakeBackend{session: s, catalog: style.Builtin(), status: "Found 2 profiles"}
}

func (f *fakeBackend) State() *session.Session    { return f.session }
func (f *fakeBackend) Templates() *style.Catalog  { return f.catalog }
func (f *fakeBackend) Status() string             { return f.status }
func (f *fakeBackend) Busy() bool                 { return false }
func (f *fakeBackend) Scanning() bool             { return false }
func (f *fakeBackend) Synthesizing() bool         { return false }
func (f *fakeBackend) Installed() []browser.Kind  { return []browser.Kind{browser.Chrome} }
func (f *fakeBackend) LastReport() *synth.Report  { return f.report }
func (f *fakeBackend) OpenIconFolder() error      { return nil }
func (f *fakeBackend) ImportSession(string) error { return nil }
func (f *fakeBackend) ExportSession(string) error { return nil }

func (f *fakeBackend) StartScan(kinds ...browser.Kind) error { return nil }

func (f *fakeBackend) StartSynthesis(keys ...browser.Key) error {
	f.generated = append(f.generated, keys)
	return nil
}

func (f *fakeBackend) Preview(p browser.Profile, px int) (image.Image, error) {
	return image.NewNRGBA(image.Rect(0, 0, px, px)), nil
}

func (f *fakeBackend) IconFor(browser.Profile) (string, error) {
	return "", errors.New("no icon")
}

func (f *fakeBackend) LaunchProfile(browser.Key) error { return nil }

func newTestWindow(t *testing.T) (*MainWindow, *fakeBackend) {
	t.Helper()
	backend := newFakeBackend()
	w := NewMainWindow(test.NewTempApp(t), backend)
	w.Setup()
	return w, backend
}

func TestMainWindowListsProfiles(t *testing.T) {
	w, _ := newTestWindow(t)

	if n := w.list.Length(); n != 2 {
		t.Fatalf("list length = %d, want 2", n)
	}
	if w.statusText.Text != "Found 2 profiles" {
		t.Errorf("status = %q", w.statusText.Text)
	}
	if !w.generateOneBtn.Disabled() {
		t.Error("Generate Selected should be disabled without a selection")
	}
}

func TestMainWindowEditsSelectedProfile(t *testing.T) {
	w, backend := newTestWindow(t)
	alice := browser.Key{Kind: browser.Chrome, ID: "Default"}

	w.list.OnSelected(0)
	if !w.hasSelected || w.selected != alice {
		t.Fatalf("selected = %v (%v)", w.selected, w.hasSelected)
	}
	if w.colorEntry.Text != "#4285f4" {
		t.Errorf("color entry = %q, want suggested color", w.colorEntry.Text)
	}

	w.setColor("#FF0000")
	if got := backend.State().Override(alice).Color; got != "#ff0000" {
		t.Errorf("override color = %q", got)
	}

	w.setColor("not a color")
	if got := backend.State().Override(alice).Color; got != "#ff0000" {
		t.Errorf("bad color replaced override: %q", got)
	}

	w.templateSelect.SetSelected("Work")
	if got := backend.State().Override(alice).Template; got != "work" {
		t.Errorf("override template = %q", got)
	}

	test.Tap(w.resetBtn)
	if o := backend.State().Override(alice); !o.IsZero() {
		t.Errorf("override after reset = %+v", o)
	}
}

func TestTemplatePickerFilters(t *testing.T) {
	w, backend := newTestWindow(t)
	alice := browser.Key{Kind: browser.Chrome, ID: "Default"}
	w.list.OnSelected(0)

	w.categorySelect.SetSelected("Education & Learning")
	if got := w.templateSelect.Options; len(got) != 3 || got[1] != "Research" || got[2] != "School" {
		t.Errorf("educational options = %v", got)
	}

	w.categorySelect.SetSelected(allCategories)
	w.templateSearch.SetText("client")
	if got := w.templateSelect.Options; len(got) != 3 || got[0] != noTemplate {
		t.Errorf("search options = %v", got)
	}
	w.templateSelect.SetSelected("Client B")
	if got := backend.State().Override(alice).Template; got != "client_b" {
		t.Errorf("override template = %q", got)
	}

	// the chosen template stays selectable while filtered out
	w.templateSearch.SetText("gaming")
	if got := w.templateSelect.Options; len(got) != 3 || got[1] != "Gaming" || got[2] != "Client B" {
		t.Errorf("options = %v", got)
	}
}

func TestMainWindowGenerate(t *testing.T) {
	w, backend := newTestWindow(t)

	test.Tap(w.generateBtn)
	w.list.OnSelected(1)
	test.Tap(w.generateOneBtn)

	if len(backend.generated) != 2 {
		t.Fatalf("StartSynthesis called %d times", len(backend.generated))
	}
	if len(backend.generated[0]) != 0 {
		t.Errorf("Generate All passed keys %v", backend.generated[0])
	}
	bob := browser.Key{Kind: browser.Chrome, ID: "Profile 1"}
	if keys := backend.generated[1]; len(keys) != 1 || keys[0] != bob {
		t.Errorf("Generate Selected passed %v", keys)
	}
}

func TestMainWindowReportMarksFailures(t *testing.T) {
	w, _ := newTestWindow(t)
	bob := browser.Key{Kind: browser.Chrome, ID: "Profile 1"}

	w.ShowReport(&synth.Report{Failures: []*synth.Failure{{Key: bob, Name: "Bob", Err: errors.New("disk full")}}})
	if w.problems[bob] == nil {
		t.Error("failure not recorded against the profile")
	}
	if w.progress.percentage != 100 {
		t.Errorf("progress = %v", w.progress.percentage)
	}
}

func TestStylePanelReportsChanges(t *testing.T) {
	test.NewTempApp(t)
	var got []style.Style
	p := NewStylePanel(style.Default(), nil, func(st style.Style) { got = append(got, st) })

	p.shadow.SetChecked(false)
	p.shapeSelect.SetSelected("circle")

	if len(got) != 2 {
		t.Fatalf("onChange called %d times, want 2", len(got))
	}
	last := got[len(got)-1]
	if last.Effects.Shadow || last.Shape != "circle" {
		t.Errorf("style = %+v", last)
	}

	got = nil
	p.Set(style.Default())
	if len(got) != 0 {
		t.Errorf("Set reported %d changes", len(got))
	}
}

func TestProgressBarSetProgress(t *testing.T) {
	test.NewTempApp(t)
	bar := NewProgressBar()
	bar.SetProgress(1, 4)
	if bar.percentage != 25 {
		t.Errorf("percentage = %v", bar.percentage)
	}
	bar.SetProgress(0, 0)
	if bar.percentage != 0 {
		t.Errorf("empty batch percentage = %v", bar.percentage)
	}
}
