package style

import (
	"fmt"

	"profilepop/internal/icon"
)

// Effects toggles the optional depth effects
type Effects struct {
	Shadow bool `json:"shadow"`
	Glow   bool `json:"glow"`
	Border bool `json:"border"`
}

// Style holds the user-chosen look applied to every icon in a batch
type Style struct {
	Shape        icon.Shape    `json:"shape"`
	CornerRadius float64       `json:"corner_radius"`
	Margin       int           `json:"margin"`
	Gradient     bool          `json:"gradient"`
	ShowText     bool          `json:"show_text"`
	Font         string        `json:"font,omitempty"` // path to a TTF/OTF file
	FontSize     float64       `json:"font_size,omitempty"`
	TextPosition icon.Position `json:"text_position"`
	Outline      bool          `json:"outline"`
	Logo         bool          `json:"logo"`
	Effects      Effects       `json:"effects"`
	Opacity      float64       `json:"opacity"`
}

// Default returns the style used until the user changes anything
func Default() Style {
	return Style{
		Shape:        icon.Rounded,
		CornerRadius: icon.DefaultCornerRadius,
		Margin:       icon.DefaultMargin,
		ShowText:     true,
		TextPosition: icon.PositionBottom,
		Outline:      true,
		Logo:         true,
		Effects:      Effects{Shadow: true},
		Opacity:      1,
	}
}

// Normalize replaces unset or out-of-range fields with their defaults
func (s Style) Normalize() Style {
	d := Default()
	if _, err := icon.ParseShape(string(s.Shape)); err != nil {
		s.Shape = d.Shape
	}
	if s.CornerRadius < 0 {
		s.CornerRadius = d.CornerRadius
	}
	if s.Margin < 0 || 2*s.Margin >= icon.CanonicalSize {
		s.Margin = d.Margin
	}
	switch s.TextPosition {
	case icon.PositionAuto, icon.PositionTop, icon.PositionCenter, icon.PositionBottom:
	default:
		s.TextPosition = d.TextPosition
	}
	if s.Opacity <= 0 || s.Opacity > 1 {
		s.Opacity = d.Opacity
	}
	return s
}

// Validate reports the first invalid field
func (s Style) Validate() error {
	if _, err := icon.ParseShape(string(s.Shape)); err != nil {
		return err
	}
	if s.Margin < 0 || 2*s.Margin >= icon.CanonicalSize {
		return fmt.Errorf("margin %d out of range", s.Margin)
	}
	if s.Opacity < 0 || s.Opacity > 1 {
		return fmt.Errorf("opacity %.2f out of range", s.Opacity)
	}
	return nil
}
