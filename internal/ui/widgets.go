package ui

import (
	"fmt"
	"image"
	"image/color"
	"path/filepath"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"

	"profilepop/internal/icon"
)

// ProfilePop palette
var (
	colorBarTrack  = color.RGBA{55, 57, 61, 255}    // Bar track
	colorBarFill   = color.RGBA{88, 101, 242, 255}  // Blurple fill
	colorBarDone   = color.RGBA{34, 197, 94, 255}   // Green when complete
	colorWhite     = color.RGBA{237, 237, 237, 255} // Header text
	colorGray      = color.RGBA{156, 163, 175, 255} // Subtitle text
	colorError     = color.RGBA{239, 68, 68, 255}   // Failure text
	colorSeparator = color.RGBA{55, 57, 61, 255}    // Divider line
)

const previewSize = 48

// ProgressBar shows batch progress
type ProgressBar struct {
	widget.BaseWidget
	percentage float64
	track      *canvas.Rectangle
	fill       *canvas.Rectangle
}

// NewProgressBar creates a progress bar
func NewProgressBar() *ProgressBar {
	p := &ProgressBar{}
	p.ExtendBaseWidget(p)
	return p
}

// SetValue sets the bar percentage (0-100)
func (p *ProgressBar) SetValue(pct float64) {
	p.percentage = pct
	if p.fill != nil {
		p.fill.FillColor = barColor(pct)
		p.fill.Refresh()
	}
	p.Refresh()
}

// SetProgress sets the bar from a done/total pair
func (p *ProgressBar) SetProgress(done, total int) {
	if total <= 0 {
		p.SetValue(0)
		return
	}
	p.SetValue(100 * float64(done) / float64(total))
}

func (p *ProgressBar) CreateRenderer() fyne.WidgetRenderer {
	p.track = canvas.NewRectangle(colorBarTrack)
	p.track.CornerRadius = 5

	p.fill = canvas.NewRectangle(barColor(p.percentage))
	p.fill.CornerRadius = 5

	return &progressBarRenderer{bar: p}
}

type progressBarRenderer struct {
	bar *ProgressBar
}

func (r *progressBarRenderer) Layout(size fyne.Size) {
	r.bar.track.Resize(size)
	r.bar.track.Move(fyne.NewPos(0, 0))
	r.bar.fill.Resize(fyne.NewSize(fillWidth(size.Width, r.bar.percentage), size.Height))
	r.bar.fill.Move(fyne.NewPos(0, 0))
}

func (r *progressBarRenderer) MinSize() fyne.Size {
	return fyne.NewSize(80, 10)
}

func (r *progressBarRenderer) Refresh() {
	r.bar.fill.FillColor = barColor(r.bar.percentage)
	size := r.bar.track.Size()
	if size.Width > 0 {
		r.bar.fill.Resize(fyne.NewSize(fillWidth(size.Width, r.bar.percentage), size.Height))
	}
	r.bar.fill.Refresh()
	r.bar.track.Refresh()
}

func (r *progressBarRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.bar.track, r.bar.fill}
}

func (r *progressBarRenderer) Destroy() {}

func fillWidth(width float32, pct float64) float32 {
	w := width * float32(pct/100)
	if w < 0 {
		return 0
	}
	if w > width {
		return width
	}
	return w
}

func barColor(pct float64) color.Color {
	if pct >= 100 {
		return colorBarDone
	}
	return colorBarFill
}

// Swatch is a tappable color square
type Swatch struct {
	widget.BaseWidget
	hex      string
	size     float32
	rect     *canvas.Rectangle
	OnTapped func(hex string)
}

// NewSwatch creates a swatch for a "#rrggbb" color
func NewSwatch(hex string, size float32, tapped func(string)) *Swatch {
	s := &Swatch{hex: hex, size: size, OnTapped: tapped}
	s.ExtendBaseWidget(s)
	return s
}

// SetColor changes the displayed color
func (s *Swatch) SetColor(hex string) {
	s.hex = hex
	if s.rect != nil {
		s.rect.FillColor = swatchColor(hex)
		s.rect.Refresh()
	}
}

// Tapped implements fyne.Tappable
func (s *Swatch) Tapped(*fyne.PointEvent) {
	if s.OnTapped != nil {
		s.OnTapped(s.hex)
	}
}

func (s *Swatch) CreateRenderer() fyne.WidgetRenderer {
	s.rect = canvas.NewRectangle(swatchColor(s.hex))
	s.rect.CornerRadius = 4
	s.rect.StrokeColor = colorSeparator
	s.rect.StrokeWidth = 1
	s.rect.SetMinSize(fyne.NewSize(s.size, s.size))
	return widget.NewSimpleRenderer(s.rect)
}

func swatchColor(hex string) color.Color {
	c, err := icon.ParseHex(hex)
	if err != nil {
		return colorBarTrack
	}
	return c
}

// ProfileRow is one line of the profile list:
//
//	[preview] Name                 [swatch] #rrggbb
//	          chrome / Profile 1
type ProfileRow struct {
	widget.BaseWidget

	preview *canvas.Image
	name    *canvas.Text
	detail  *canvas.Text
	hex     *canvas.Text
	swatch  *Swatch
}

// NewProfileRow creates an empty row for list recycling
func NewProfileRow() *ProfileRow {
	r := &ProfileRow{}

	r.preview = canvas.NewImageFromImage(image.NewNRGBA(image.Rect(0, 0, 1, 1)))
	r.preview.FillMode = canvas.ImageFillContain
	r.preview.SetMinSize(fyne.NewSize(previewSize, previewSize))

	r.name = canvas.NewText("", colorWhite)
	r.name.TextSize = 14
	r.name.TextStyle = fyne.TextStyle{Bold: true}

	r.detail = canvas.NewText("", colorGray)
	r.detail.TextSize = 12

	r.hex = canvas.NewText("", colorGray)
	r.hex.TextSize = 12
	r.hex.TextStyle = fyne.TextStyle{Monospace: true}

	r.swatch = NewSwatch("", 18, nil)

	r.ExtendBaseWidget(r)
	return r
}

// Update shows a profile in the row
func (r *ProfileRow) Update(name, detail, hex string, preview image.Image, problem bool) {
	r.name.Text = name
	r.name.Refresh()
	r.detail.Text = detail
	if problem {
		r.detail.Color = colorError
	} else {
		r.detail.Color = colorGray
	}
	r.detail.Refresh()
	r.hex.Text = hex
	r.hex.Refresh()
	r.swatch.SetColor(hex)
	if preview != nil {
		r.preview.Image = preview
		r.preview.Refresh()
	}
}

func (r *ProfileRow) CreateRenderer() fyne.WidgetRenderer {
	row := container.NewHBox(
		container.New(&fixedWidthLayout{width: previewSize}, r.preview),
		container.NewVBox(r.name, r.detail),
		layout.NewSpacer(),
		container.NewCenter(r.swatch),
		container.NewCenter(r.hex),
	)
	return widget.NewSimpleRenderer(row)
}

// SectionHeader creates a bold section header like "Style"
func SectionHeader(text string) *canvas.Text {
	t := canvas.NewText(text, colorWhite)
	t.TextSize = 15
	t.TextStyle = fyne.TextStyle{Bold: true}
	return t
}

// SectionSubtext creates gray subtext
func SectionSubtext(text string) *canvas.Text {
	t := canvas.NewText(text, colorGray)
	t.TextSize = 12
	return t
}

// Separator creates a thin horizontal divider line
func Separator() *canvas.Rectangle {
	sep := canvas.NewRectangle(colorSeparator)
	sep.SetMinSize(fyne.NewSize(0, 1))
	return sep
}

func profileDetail(kind, id, iconPath string) string {
	if iconPath != "" {
		return fmt.Sprintf("%s / %s (%s)", kind, id, filepath.Base(iconPath))
	}
	return kind + " / " + id
}

// fixedWidthLayout forces children to a fixed width
type fixedWidthLayout struct {
	width float32
}

func (l *fixedWidthLayout) MinSize(objects []fyne.CanvasObject) fyne.Size {
	h := float32(10)
	for _, o := range objects {
		h = fyne.Max(h, o.MinSize().Height)
	}
	return fyne.NewSize(l.width, h)
}

func (l *fixedWidthLayout) Layout(objects []fyne.CanvasObject, size fyne.Size) {
	for _, o := range objects {
		o.Resize(fyne.NewSize(l.width, size.Height))
		o.Move(fyne.NewPos(0, 0))
	}
}

// fixedHeightLayout forces children to a fixed height (centered vertically)
type fixedHeightLayout struct {
	height float32
}

func (l *fixedHeightLayout) MinSize(objects []fyne.CanvasObject) fyne.Size {
	w := float32(0)
	for _, o := range objects {
		w = fyne.Max(w, o.MinSize().Width)
	}
	return fyne.NewSize(w, l.height)
}

func (l *fixedHeightLayout) Layout(objects []fyne.CanvasObject, size fyne.Size) {
	for _, o := range objects {
		o.Resize(fyne.NewSize(size.Width, l.height))
		yOff := (size.Height - l.height) / 2
		o.Move(fyne.NewPos(0, yOff))
	}
}
