package ui

import (
	"fmt"
	"log"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/data/binding"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"

	"profilepop/internal/config"
	"profilepop/internal/icon"
	"profilepop/internal/style"
)

var positions = []string{
	string(icon.PositionAuto),
	string(icon.PositionTop),
	string(icon.PositionCenter),
	string(icon.PositionBottom),
}

// StylePanel edits the batch style shared by every icon
type StylePanel struct {
	config   *config.Config
	style    style.Style
	onChange func(style.Style)
	loading  bool

	shapeSelect    *widget.Select
	positionSelect *widget.Select
	showText       *widget.Check
	gradient       *widget.Check
	outline        *widget.Check
	logo           *widget.Check
	shadow         *widget.Check
	glow           *widget.Check
	border         *widget.Check
	opacity        binding.Float
	fontSize       binding.Float

	container *fyne.Container
}

// NewStylePanel creates the panel showing st
func NewStylePanel(st style.Style, cfg *config.Config, onChange func(style.Style)) *StylePanel {
	p := &StylePanel{config: cfg, style: st, onChange: onChange, loading: true}
	p.build()
	p.Set(st)
	return p
}

// Container returns the renderable container
func (p *StylePanel) Container() *fyne.Container {
	return p.container
}

func (p *StylePanel) build() {
	shapes := make([]string, len(icon.Shapes))
	for i, sh := range icon.Shapes {
		shapes[i] = string(sh)
	}
	p.shapeSelect = widget.NewSelect(shapes, func(choice string) {
		p.update(func(st *style.Style) { st.Shape = icon.Shape(choice) })
	})
	p.positionSelect = widget.NewSelect(positions, func(choice string) {
		p.update(func(st *style.Style) { st.TextPosition = icon.Position(choice) })
	})

	check := func(label string, set func(*style.Style, bool)) *widget.Check {
		return widget.NewCheck(label, func(on bool) {
			p.update(func(st *style.Style) { set(st, on) })
		})
	}
	p.showText = check("Label", func(st *style.Style, on bool) { st.ShowText = on })
	p.gradient = check("Gradient", func(st *style.Style, on bool) { st.Gradient = on })
	p.outline = check("Outline", func(st *style.Style, on bool) { st.Outline = on })
	p.logo = check("Browser logo", func(st *style.Style, on bool) { st.Logo = on })
	p.shadow = check("Shadow", func(st *style.Style, on bool) { st.Effects.Shadow = on })
	p.glow = check("Glow", func(st *style.Style, on bool) { st.Effects.Glow = on })
	p.border = check("Border", func(st *style.Style, on bool) { st.Effects.Border = on })

	// Opacity slider with live value label
	p.opacity = binding.NewFloat()
	p.opacity.Set(p.style.Opacity)
	opacitySlider := widget.NewSliderWithData(0.1, 1.0, p.opacity)
	opacitySlider.Step = 0.05
	opacityValueLabel := widget.NewLabel("100%")
	p.opacity.AddListener(binding.NewDataListener(func() {
		v, _ := p.opacity.Get()
		opacityValueLabel.SetText(fmt.Sprintf("%.0f%%", v*100))
		p.update(func(st *style.Style) { st.Opacity = v })
	}))

	// Font size slider; 0 sizes the label to the canvas
	p.fontSize = binding.NewFloat()
	p.fontSize.Set(p.style.FontSize)
	fontSlider := widget.NewSliderWithData(0, 96, p.fontSize)
	fontSlider.Step = 2
	fontValueLabel := widget.NewLabel("auto")
	p.fontSize.AddListener(binding.NewDataListener(func() {
		v, _ := p.fontSize.Get()
		if v == 0 {
			fontValueLabel.SetText("auto")
		} else {
			fontValueLabel.SetText(fmt.Sprintf("%.0fpx", v))
		}
		p.update(func(st *style.Style) { st.FontSize = v })
	}))

	saveBtn := widget.NewButton("Save as Default", func() {
		if err := p.config.SetStyle(p.style); err != nil {
			log.Printf("Failed to save style: %v", err)
		}
	})
	resetBtn := widget.NewButton("Reset Style", func() {
		p.Set(style.Default())
		if p.onChange != nil {
			p.onChange(p.style)
		}
	})

	p.container = container.NewVBox(
		SectionHeader("Style"),
		SectionSubtext("Applies to every icon in the batch"),
		widget.NewForm(
			widget.NewFormItem("Shape", p.shapeSelect),
			widget.NewFormItem("Text position", p.positionSelect),
		),
		container.NewGridWithColumns(2, p.showText, p.gradient, p.outline, p.logo),
		SectionSubtext("Effects"),
		container.NewGridWithColumns(3, p.shadow, p.glow, p.border),
		container.NewHBox(widget.NewLabel("Opacity"), layout.NewSpacer(), opacityValueLabel),
		opacitySlider,
		container.NewHBox(widget.NewLabel("Font size"), layout.NewSpacer(), fontValueLabel),
		fontSlider,
		container.NewHBox(layout.NewSpacer(), resetBtn, saveBtn),
	)
}

// Set shows st without reporting a change
func (p *StylePanel) Set(st style.Style) {
	p.loading = true
	defer func() { p.loading = false }()

	p.style = st
	p.shapeSelect.SetSelected(string(st.Shape))
	p.positionSelect.SetSelected(string(st.TextPosition))
	p.showText.SetChecked(st.ShowText)
	p.gradient.SetChecked(st.Gradient)
	p.outline.SetChecked(st.Outline)
	p.logo.SetChecked(st.Logo)
	p.shadow.SetChecked(st.Effects.Shadow)
	p.glow.SetChecked(st.Effects.Glow)
	p.border.SetChecked(st.Effects.Border)
	p.opacity.Set(st.Opacity)
	p.fontSize.Set(st.FontSize)
}

// Style returns the style currently shown
func (p *StylePanel) Style() style.Style {
	return p.style
}

func (p *StylePanel) update(change func(*style.Style)) {
	if p.loading {
		return
	}
	st := p.style
	change(&st)
	st = st.Normalize()
	if st == p.style {
		return
	}
	p.style = st
	if p.onChange != nil {
		p.onChange(st)
	}
}
