package ui

import (
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"

	"profilepop/internal/config"
	"profilepop/internal/icon"
)

var themes = []string{"dark", "light", "system"}

// SettingsDialog manages the settings window
type SettingsDialog struct {
	app    fyne.App
	parent fyne.Window
	config *config.Config
	onSave func()
}

// NewSettingsDialog creates a new settings dialog
func NewSettingsDialog(app fyne.App, parent fyne.Window) *SettingsDialog {
	return &SettingsDialog{
		app:    app,
		parent: parent,
		config: config.Get(),
	}
}

// SetCallbacks sets the callback functions
func (s *SettingsDialog) SetCallbacks(onSave func()) {
	s.onSave = onSave
}

// Show displays the settings dialog
func (s *SettingsDialog) Show() {
	window := s.app.NewWindow("ProfilePop Settings")
	window.Resize(fyne.NewSize(460, 480))

	// --- Output ---
	outputLabel := widget.NewLabel("Output")
	outputLabel.TextStyle = fyne.TextStyle{Bold: true}

	outputEntry := widget.NewEntry()
	outputEntry.SetText(s.config.OutputDir)
	outputEntry.SetPlaceHolder(s.config.IconDir())

	sizesEntry := widget.NewEntry()
	sizesEntry.SetText(icon.FormatSizes(s.config.Sizes))
	sizesEntry.SetPlaceHolder(icon.FormatSizes(icon.DefaultSizes))

	timestampCheck := widget.NewCheck("Timestamped filenames", nil)
	timestampCheck.SetChecked(s.config.Timestamped)
	clearCheck := widget.NewCheck("Delete previous icons", nil)
	clearCheck.SetChecked(s.config.ClearOldIcons)
	refreshCheck := widget.NewCheck("Refresh shell icon cache", nil)
	refreshCheck.SetChecked(s.config.RefreshIcons)

	outputSection := container.NewVBox(
		outputLabel,
		widget.NewForm(
			widget.NewFormItem("Folder", folderField(outputEntry, window)),
			widget.NewFormItem("Sizes", sizesEntry),
		),
		container.NewGridWithColumns(2, timestampCheck, clearCheck, refreshCheck),
	)

	// --- Assets ---
	assetsLabel := widget.NewLabel("Assets")
	assetsLabel.TextStyle = fyne.TextStyle{Bold: true}

	logoEntry := widget.NewEntry()
	logoEntry.SetText(s.config.LogoDir)
	logoEntry.SetPlaceHolder("built-in logos")

	fontEntry := widget.NewEntry()
	fontEntry.SetText(s.config.Style.Font)
	fontEntry.SetPlaceHolder("built-in font")

	templatesEntry := widget.NewEntry()
	templatesEntry.SetText(s.config.TemplatesFile)
	templatesEntry.SetPlaceHolder("built-in templates only")

	assetsSection := container.NewVBox(
		assetsLabel,
		widget.NewForm(
			widget.NewFormItem("Logos", folderField(logoEntry, window)),
			widget.NewFormItem("Font", fileField(fontEntry, window, ".ttf", ".otf")),
			widget.NewFormItem("Templates", fileField(templatesEntry, window, ".yaml", ".yml")),
		),
	)

	// --- Display ---
	displayLabel := widget.NewLabel("Display")
	displayLabel.TextStyle = fyne.TextStyle{Bold: true}

	themeRadio := widget.NewRadioGroup(themes, nil)
	themeRadio.Horizontal = true
	themeRadio.SetSelected(s.config.Theme)

	displaySection := container.NewVBox(
		displayLabel,
		container.NewHBox(widget.NewLabel("Theme"), layout.NewSpacer(), themeRadio),
	)

	// --- Buttons ---
	saveBtn := widget.NewButton("Save", func() {
		sizes, err := icon.ParseSizes(sizesEntry.Text)
		if err != nil {
			dialog.ShowError(err, window)
			return
		}

		s.config.OutputDir = strings.TrimSpace(outputEntry.Text)
		s.config.Sizes = sizes
		s.config.Timestamped = timestampCheck.Checked
		s.config.ClearOldIcons = clearCheck.Checked
		s.config.RefreshIcons = refreshCheck.Checked
		s.config.LogoDir = strings.TrimSpace(logoEntry.Text)
		s.config.Style.Font = strings.TrimSpace(fontEntry.Text)
		s.config.TemplatesFile = strings.TrimSpace(templatesEntry.Text)
		if themeRadio.Selected != "" {
			s.config.Theme = themeRadio.Selected
		}

		if err := s.config.Save(); err != nil {
			dialog.ShowError(err, window)
			return
		}

		if s.onSave != nil {
			s.onSave()
		}

		dialog.ShowInformation("Saved", "Settings saved", window)
	})
	saveBtn.Importance = widget.HighImportance

	closeBtn := widget.NewButton("Close", func() {
		window.Close()
	})

	buttons := container.NewHBox(layout.NewSpacer(), saveBtn, closeBtn, layout.NewSpacer())

	// --- Layout ---
	content := container.NewVBox(
		outputSection,
		widget.NewSeparator(),
		assetsSection,
		widget.NewSeparator(),
		displaySection,
		widget.NewSeparator(),
		buttons,
	)

	window.SetContent(container.NewPadded(content))
	window.Show()
}

func folderField(entry *widget.Entry, window fyne.Window) fyne.CanvasObject {
	browse := widget.NewButton("...", func() {
		dialog.ShowFolderOpen(func(dir fyne.ListableURI, err error) {
			if err != nil {
				dialog.ShowError(err, window)
				return
			}
			if dir != nil {
				entry.SetText(dir.Path())
			}
		}, window)
	})
	return container.NewBorder(nil, nil, nil, browse, entry)
}

func fileField(entry *widget.Entry, window fyne.Window, extensions ...string) fyne.CanvasObject {
	browse := widget.NewButton("...", func() {
		open := dialog.NewFileOpen(func(rc fyne.URIReadCloser, err error) {
			if err != nil {
				dialog.ShowError(err, window)
				return
			}
			if rc != nil {
				entry.SetText(rc.URI().Path())
				rc.Close()
			}
		}, window)
		open.SetFilter(storage.NewExtensionFileFilter(extensions))
		open.Show()
	})
	return container.NewBorder(nil, nil, nil, browse, entry)
}
