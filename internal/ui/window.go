package ui

import (
	"fmt"
	"image"
	"image/color"
	"log"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"profilepop/internal/browser"
	"profilepop/internal/config"
	"profilepop/internal/icon"
	"profilepop/internal/session"
	"profilepop/internal/style"
	"profilepop/internal/synth"
)

const (
	windowTitle   = "ProfilePop"
	allInstalled  = "All installed"
	noTemplate    = "None"
	allCategories = "All categories"
	editorPreview = 128
)

// Backend is what the window drives. Every call happens on the fyne thread.
type Backend interface {
	State() *session.Session
	Templates() *style.Catalog
	Status() string
	Busy() bool
	Scanning() bool
	Synthesizing() bool
	Installed() []browser.Kind
	StartScan(kinds ...browser.Kind) error
	StartSynthesis(keys ...browser.Key) error
	LastReport() *synth.Report
	Preview(p browser.Profile, px int) (image.Image, error)
	IconFor(p browser.Profile) (string, error)
	LaunchProfile(key browser.Key) error
	ImportSession(path string) error
	ExportSession(path string) error
	OpenIconFolder() error
}

// MainWindow lists discovered profiles and edits their icons
type MainWindow struct {
	app     fyne.App
	window  fyne.Window
	backend Backend
	config  *config.Config

	kindSelect     *widget.Select
	scanBtn        *widget.Button
	generateBtn    *widget.Button
	generateOneBtn *widget.Button
	list           *widget.List

	editorTitle    *canvas.Text
	colorEntry     *widget.Entry
	palette        *fyne.Container
	templateSelect *widget.Select
	categorySelect *widget.Select
	templateSearch *widget.Entry
	labelEntry     *widget.Entry
	bigPreview     *canvas.Image
	launchBtn      *widget.Button
	resetBtn       *widget.Button

	stylePanel *StylePanel

	statusText *canvas.Text
	progress   *ProgressBar

	selected    browser.Key
	hasSelected bool
	previews    map[browser.Key]image.Image
	problems    map[browser.Key]error
	templateIDs map[string]string // display name -> template id
	categoryIDs map[string]string // category title -> category id

	onSettings func()
}

// NewMainWindow creates the main window; call Setup before showing it
func NewMainWindow(app fyne.App, backend Backend) *MainWindow {
	return &MainWindow{
		app:      app,
		backend:  backend,
		config:   config.Get(),
		previews: make(map[browser.Key]image.Image),
		problems: make(map[browser.Key]error),
	}
}

// SetCallbacks sets the callback functions for window actions
func (w *MainWindow) SetCallbacks(onSettings func()) {
	w.onSettings = onSettings
}

// Window returns the underlying fyne window
func (w *MainWindow) Window() fyne.Window {
	return w.window
}

// Setup builds the window content
func (w *MainWindow) Setup() {
	w.window = w.app.NewWindow(windowTitle)
	width, height := w.config.WindowWidth, w.config.WindowHeight
	if width <= 0 || height <= 0 {
		width, height = 960, 640
	}
	w.window.Resize(fyne.NewSize(width, height))

	toolbar := w.buildToolbar()
	w.list = w.buildList()
	editor := w.buildEditor()
	w.stylePanel = NewStylePanel(w.backend.State().Style, w.config, w.styleChanged)

	right := container.NewVScroll(container.NewVBox(
		editor,
		Separator(),
		w.stylePanel.Container(),
	))

	split := container.NewHSplit(w.list, right)
	split.Offset = 0.55

	w.statusText = canvas.NewText("Select a browser and scan", colorGray)
	w.statusText.TextSize = 13
	w.progress = NewProgressBar()
	footer := container.NewBorder(nil, nil, nil,
		container.New(&fixedWidthLayout{width: 200}, container.New(&fixedHeightLayout{height: 10}, w.progress)),
		w.statusText,
	)

	w.window.SetContent(container.NewBorder(
		container.NewVBox(toolbar, Separator()),
		container.NewVBox(Separator(), container.NewPadded(footer)),
		nil, nil,
		split,
	))
	w.Reload()
}

// Show brings the window up
func (w *MainWindow) Show() {
	w.window.Show()
	w.window.RequestFocus()
}

// Hide hides the window without quitting
func (w *MainWindow) Hide() {
	w.window.Hide()
}

func (w *MainWindow) buildToolbar() fyne.CanvasObject {
	options := []string{allInstalled}
	for _, k := range browser.AllKinds {
		options = append(options, k.Title())
	}
	w.kindSelect = widget.NewSelect(options, func(choice string) {
		if k, ok := kindForTitle(choice); ok {
			w.config.LastBrowser = string(k)
		} else {
			w.config.LastBrowser = ""
		}
	})
	if k, err := browser.ParseKind(w.config.LastBrowser); err == nil {
		w.kindSelect.SetSelected(k.Title())
	} else {
		w.kindSelect.SetSelected(allInstalled)
	}

	w.scanBtn = widget.NewButtonWithIcon("Scan", theme.SearchIcon(), w.Scan)
	w.generateBtn = widget.NewButtonWithIcon("Generate All", theme.MediaPlayIcon(), func() {
		w.Generate()
	})
	w.generateBtn.Importance = widget.HighImportance
	w.generateOneBtn = widget.NewButton("Generate Selected", func() {
		if w.hasSelected {
			w.Generate(w.selected)
		}
	})

	folderBtn := widget.NewButtonWithIcon("", theme.FolderOpenIcon(), func() {
		if err := w.backend.OpenIconFolder(); err != nil {
			dialog.ShowError(err, w.window)
		}
	})
	importBtn := widget.NewButtonWithIcon("", theme.DownloadIcon(), w.importSession)
	exportBtn := widget.NewButtonWithIcon("", theme.UploadIcon(), w.exportSession)
	settingsBtn := widget.NewButtonWithIcon("", theme.SettingsIcon(), func() {
		if w.onSettings != nil {
			w.onSettings()
		}
	})

	return container.NewHBox(
		container.New(&fixedWidthLayout{width: 180}, w.kindSelect),
		w.scanBtn,
		layout.NewSpacer(),
		w.generateOneBtn,
		w.generateBtn,
		folderBtn,
		importBtn,
		exportBtn,
		settingsBtn,
	)
}

func (w *MainWindow) buildList() *widget.List {
	list := widget.NewList(
		func() int { return len(w.backend.State().Profiles) },
		func() fyne.CanvasObject { return NewProfileRow() },
		func(id widget.ListItemID, obj fyne.CanvasObject) {
			profiles := w.backend.State().Profiles
			if id < 0 || id >= len(profiles) {
				return
			}
			w.updateRow(obj.(*ProfileRow), profiles[id])
		},
	)
	list.OnSelected = func(id widget.ListItemID) {
		profiles := w.backend.State().Profiles
		if id < 0 || id >= len(profiles) {
			return
		}
		w.selected = profiles[id].Key()
		w.hasSelected = true
		w.refreshEditor()
	}
	list.OnUnselected = func(widget.ListItemID) {
		w.hasSelected = false
		w.refreshEditor()
	}
	return list
}

func (w *MainWindow) updateRow(row *ProfileRow, p browser.Profile) {
	s := w.backend.State()
	name := p.Name
	if o := s.Override(p.Key()); o.Label != "" {
		name = fmt.Sprintf("%s (%s)", p.Name, o.Label)
	}

	preview := w.preview(p)
	detail := string(p.Kind) + " / " + p.ID
	problem := w.problems[p.Key()]
	if problem != nil {
		detail = problem.Error()
	} else if path, err := w.backend.IconFor(p); err == nil {
		detail = profileDetail(string(p.Kind), p.ID, path)
	}
	row.Update(name, detail, s.EffectiveColor(p), preview, problem != nil)
}

// preview returns the cached list preview, rendering it on first use
func (w *MainWindow) preview(p browser.Profile) image.Image {
	key := p.Key()
	if img, ok := w.previews[key]; ok {
		return img
	}
	img, err := w.backend.Preview(p, previewSize)
	if err != nil {
		log.Printf("Preview of %s failed: %v", key, err)
		w.problems[key] = err
		return nil
	}
	w.previews[key] = img
	return img
}

func (w *MainWindow) buildEditor() fyne.CanvasObject {
	w.editorTitle = SectionHeader("No profile selected")

	w.colorEntry = widget.NewEntry()
	w.colorEntry.SetPlaceHolder("#rrggbb")
	w.colorEntry.OnSubmitted = w.setColor
	pickBtn := widget.NewButtonWithIcon("", theme.ColorPaletteIcon(), w.pickColor)

	w.palette = container.NewHBox()

	w.categorySelect = widget.NewSelect(nil, func(string) { w.refreshTemplateOptions() })
	w.templateSearch = widget.NewEntry()
	w.templateSearch.SetPlaceHolder("Search templates")
	w.templateSearch.OnChanged = func(string) { w.refreshTemplateOptions() }

	w.templateSelect = widget.NewSelect(nil, func(choice string) {
		if !w.hasSelected {
			return
		}
		id := w.templateIDs[choice]
		if id == w.backend.State().Override(w.selected).Template {
			return
		}
		w.backend.State().SetTemplate(w.selected, id)
		w.profileChanged()
	})

	w.labelEntry = widget.NewEntry()
	w.labelEntry.SetPlaceHolder("Label (defaults to profile name)")
	w.labelEntry.OnSubmitted = func(text string) {
		if !w.hasSelected {
			return
		}
		o := w.backend.State().Override(w.selected)
		o.Label = text
		w.backend.State().SetOverride(w.selected, o)
		w.profileChanged()
	}

	w.refreshTemplateCategories()

	w.bigPreview = canvas.NewImageFromImage(image.NewNRGBA(image.Rect(0, 0, 1, 1)))
	w.bigPreview.FillMode = canvas.ImageFillContain
	w.bigPreview.SetMinSize(fyne.NewSize(editorPreview, editorPreview))

	w.launchBtn = widget.NewButtonWithIcon("Launch", theme.ComputerIcon(), func() {
		if !w.hasSelected {
			return
		}
		if err := w.backend.LaunchProfile(w.selected); err != nil {
			dialog.ShowError(err, w.window)
		}
		w.refreshStatus()
	})
	w.resetBtn = widget.NewButtonWithIcon("Reset", theme.ContentUndoIcon(), func() {
		if !w.hasSelected {
			return
		}
		w.backend.State().SetOverride(w.selected, session.Override{})
		w.profileChanged()
	})

	form := widget.NewForm(
		widget.NewFormItem("Color", container.NewBorder(nil, nil, nil, pickBtn, w.colorEntry)),
		widget.NewFormItem("Palette", w.palette),
		widget.NewFormItem("Template", container.NewGridWithColumns(2, w.categorySelect, w.templateSearch)),
		widget.NewFormItem("", w.templateSelect),
		widget.NewFormItem("Label", w.labelEntry),
	)

	return container.NewVBox(
		w.editorTitle,
		container.NewHBox(
			container.New(&fixedWidthLayout{width: editorPreview}, w.bigPreview),
			layout.NewSpacer(),
			container.NewVBox(w.launchBtn, w.resetBtn),
		),
		form,
	)
}

func (w *MainWindow) setColor(hex string) {
	if !w.hasSelected {
		return
	}
	if hex != "" {
		c, err := icon.ParseHex(hex)
		if err != nil {
			dialog.ShowError(err, w.window)
			return
		}
		hex = icon.Hex(c)
	}
	w.backend.State().SetColor(w.selected, hex)
	w.profileChanged()
}

func (w *MainWindow) pickColor() {
	if !w.hasSelected {
		return
	}
	p, _ := w.backend.State().Profile(w.selected)
	picker := dialog.NewColorPicker("Profile color", "Choose a color for "+p.Name, func(c color.Color) {
		w.setColor(icon.Hex(color.NRGBAModel.Convert(c).(color.NRGBA)))
	}, w.window)
	picker.Advanced = true
	picker.Show()
}

// refreshEditor shows the selected profile's overrides in the editor
func (w *MainWindow) refreshEditor() {
	s := w.backend.State()
	p, ok := s.Profile(w.selected)
	if !w.hasSelected || !ok {
		w.hasSelected = false
		w.editorTitle.Text = "No profile selected"
		w.editorTitle.Refresh()
		w.colorEntry.SetText("")
		w.labelEntry.SetText("")
		w.templateSelect.SetSelected(noTemplate)
		w.palette.Objects = nil
		w.palette.Refresh()
		w.launchBtn.Disable()
		w.resetBtn.Disable()
		w.generateOneBtn.Disable()
		return
	}

	o := s.Override(w.selected)
	w.editorTitle.Text = p.Name
	w.editorTitle.Refresh()
	w.colorEntry.SetText(s.EffectiveColor(p))
	w.labelEntry.SetText(o.Label)
	w.refreshTemplateOptions()
	w.templateSelect.SetSelected(w.templateName(o.Template))

	w.palette.Objects = nil
	for _, hex := range browser.Palette(p.Kind) {
		w.palette.Add(NewSwatch(hex, 22, w.setColor))
	}
	w.palette.Refresh()

	if img, err := w.backend.Preview(p, editorPreview); err == nil {
		w.bigPreview.Image = img
		w.bigPreview.Refresh()
	} else {
		log.Printf("Preview of %s failed: %v", w.selected, err)
	}

	w.launchBtn.Enable()
	w.resetBtn.Enable()
	if !w.backend.Synthesizing() {
		w.generateOneBtn.Enable()
	}
}

// refreshTemplateCategories rebuilds the category filter from the catalog
func (w *MainWindow) refreshTemplateCategories() {
	catalog := w.backend.Templates()
	w.categoryIDs = make(map[string]string)
	options := []string{allCategories}
	for _, id := range catalog.CategoryIDs() {
		title := catalog.Categories[id]
		if title == "" {
			title = id
		}
		w.categoryIDs[title] = id
		options = append(options, title)
	}
	w.categorySelect.Options = options
	if _, ok := w.categoryIDs[w.categorySelect.Selected]; !ok {
		w.categorySelect.SetSelected(allCategories)
	}
	w.categorySelect.Refresh()
	w.refreshTemplateOptions()
}

// refreshTemplateOptions lists the templates matching the category filter and
// search text. The selected profile's template stays listed.
func (w *MainWindow) refreshTemplateOptions() {
	if w.templateSelect == nil {
		return
	}
	catalog := w.backend.Templates()
	w.templateIDs = make(map[string]string, len(catalog.Templates))
	for _, t := range catalog.Templates {
		w.templateIDs[t.Name] = t.ID
	}

	var matches []style.Template
	category := w.categoryIDs[w.categorySelect.Selected]
	if query := strings.TrimSpace(w.templateSearch.Text); query != "" {
		for _, t := range catalog.Search(query) {
			if category == "" || t.Category == category {
				matches = append(matches, t)
			}
		}
	} else if category != "" {
		matches = catalog.ByCategory(category)
	} else {
		matches = catalog.Templates
	}

	options := []string{noTemplate}
	current := ""
	if w.hasSelected {
		current = w.templateName(w.backend.State().Override(w.selected).Template)
	}
	for _, t := range matches {
		if t.Name == current {
			current = ""
		}
		options = append(options, t.Name)
	}
	if current != "" && current != noTemplate {
		options = append(options, current)
	}
	w.templateSelect.Options = options
	w.templateSelect.Refresh()
}

func (w *MainWindow) templateName(id string) string {
	if id == "" {
		return noTemplate
	}
	if t, ok := w.backend.Templates().Lookup(id); ok {
		return t.Name
	}
	return noTemplate
}

// profileChanged redraws after an override edit on the selected profile
func (w *MainWindow) profileChanged() {
	delete(w.previews, w.selected)
	delete(w.problems, w.selected)
	w.list.Refresh()
	w.refreshEditor()
}

func (w *MainWindow) styleChanged(st style.Style) {
	w.backend.State().Style = st
	w.invalidate()
	w.list.Refresh()
	w.refreshEditor()
}

func (w *MainWindow) invalidate() {
	w.previews = make(map[browser.Key]image.Image)
	w.problems = make(map[browser.Key]error)
}

// Scan starts discovery for the selected browser
func (w *MainWindow) Scan() {
	kinds := w.backend.Installed()
	if k, ok := kindForTitle(w.kindSelect.Selected); ok {
		kinds = []browser.Kind{k}
	}
	if err := w.backend.StartScan(kinds...); err != nil {
		w.setStatus(err.Error(), true)
		return
	}
	if err := w.config.Save(); err != nil {
		log.Printf("Failed to save config: %v", err)
	}
	w.refreshStatus()
}

// Generate starts a batch for keys, or every profile when keys is empty
func (w *MainWindow) Generate(keys ...browser.Key) {
	if err := w.backend.StartSynthesis(keys...); err != nil {
		w.setStatus(err.Error(), true)
		return
	}
	w.progress.SetValue(0)
	w.refreshStatus()
}

// Reload redraws everything from the backend's session
func (w *MainWindow) Reload() {
	w.invalidate()
	w.refreshTemplateCategories()
	w.stylePanel.Set(w.backend.State().Style)
	w.list.Refresh()
	w.refreshEditor()
	w.refreshStatus()
}

// ShowProgress updates the progress bar during a batch
func (w *MainWindow) ShowProgress(done, total int, name string) {
	w.progress.SetProgress(done, total)
	w.setStatus(fmt.Sprintf("%s (%d/%d)", name, done, total), false)
}

// ShowReport shows the outcome of a finished batch
func (w *MainWindow) ShowReport(r *synth.Report) {
	w.progress.SetValue(100)
	w.problems = make(map[browser.Key]error)
	if r != nil {
		for _, f := range r.Failures {
			w.problems[f.Key] = f.Err
		}
		if len(r.Failures) > 0 {
			dialog.ShowError(r.Err(), w.window)
		}
	}
	w.list.Refresh()
	w.refreshStatus()
}

func (w *MainWindow) refreshStatus() {
	w.setStatus(w.backend.Status(), false)
	if w.backend.Scanning() {
		w.scanBtn.Disable()
	} else {
		w.scanBtn.Enable()
	}
	if w.backend.Synthesizing() {
		w.generateBtn.Disable()
		w.generateOneBtn.Disable()
	} else {
		w.generateBtn.Enable()
		if w.hasSelected {
			w.generateOneBtn.Enable()
		}
	}
}

func (w *MainWindow) setStatus(text string, failed bool) {
	if text == "" {
		return
	}
	w.statusText.Text = text
	if failed {
		w.statusText.Color = colorError
	} else {
		w.statusText.Color = colorGray
	}
	w.statusText.Refresh()
}

func (w *MainWindow) importSession() {
	open := dialog.NewFileOpen(func(rc fyne.URIReadCloser, err error) {
		if err != nil {
			dialog.ShowError(err, w.window)
			return
		}
		if rc == nil {
			return
		}
		path := rc.URI().Path()
		rc.Close()
		if err := w.backend.ImportSession(path); err != nil {
			dialog.ShowError(err, w.window)
			return
		}
		w.hasSelected = false
		w.list.UnselectAll()
		w.Reload()
	}, w.window)
	open.SetFilter(storage.NewExtensionFileFilter([]string{".json"}))
	open.Show()
}

func (w *MainWindow) exportSession() {
	save := dialog.NewFileSave(func(wc fyne.URIWriteCloser, err error) {
		if err != nil {
			dialog.ShowError(err, w.window)
			return
		}
		if wc == nil {
			return
		}
		path := wc.URI().Path()
		wc.Close()
		if err := w.backend.ExportSession(path); err != nil {
			dialog.ShowError(err, w.window)
			return
		}
		w.refreshStatus()
	}, w.window)
	save.SetFileName("profilepop-session.json")
	save.SetFilter(storage.NewExtensionFileFilter([]string{".json"}))
	save.Show()
}

func kindForTitle(title string) (browser.Kind, bool) {
	for _, k := range browser.AllKinds {
		if k.Title() == title {
			return k, true
		}
	}
	return "", false
}
