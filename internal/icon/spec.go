package icon

import (
	"fmt"
	"image/color"
)

const (
	CanonicalSize       = 256
	DefaultMargin       = 20
	DefaultCornerRadius = 30
)

// DefaultSizes are the resolutions written into every icon file, largest first
var DefaultSizes = []int{256, 128, 96, 64, 48, 40, 32, 24, 20, 16}

// Shape is the background silhouette
type Shape string

const (
	Rounded Shape = "rounded"
	Circle  Shape = "circle"
	Square  Shape = "square"
	Hexagon Shape = "hexagon"
	Badge   Shape = "badge"
)

// Shapes lists every supported shape
var Shapes = []Shape{Rounded, Circle, Square, Hexagon, Badge}

// ParseShape validates a shape name
func ParseShape(s string) (Shape, error) {
	for _, sh := range Shapes {
		if string(sh) == s {
			return sh, nil
		}
	}
	return "", fmt.Errorf("unknown shape %q", s)
}

// Position places the label
type Position string

const (
	PositionAuto   Position = "auto" // below the glyph, centered when there is none
	PositionTop    Position = "top"
	PositionCenter Position = "center"
	PositionBottom Position = "bottom"
)

// Fill is a solid color or a vertical two-stop gradient
type Fill struct {
	From     color.NRGBA
	To       color.NRGBA
	Gradient bool
}

// Solid returns a single-color fill
func Solid(c color.NRGBA) Fill {
	return Fill{From: c, To: c}
}

// Average is the color used to pick a legible label color
func (f Fill) Average() color.NRGBA {
	if !f.Gradient {
		return f.From
	}
	return Mix(f.From, f.To, 0.5)
}

// Overlay is the source of the logo drawn over the background.
// Path takes precedence over Data. PNG, JPEG, WebP and SVG are accepted.
type Overlay struct {
	Path string
	Data []byte
}

// Empty reports whether no overlay is configured
func (o Overlay) Empty() bool {
	return o.Path == "" && len(o.Data) == 0
}

// Spec is the fully resolved input for rendering one icon
type Spec struct {
	Size         int
	Shape        Shape
	Margin       int
	CornerRadius float64
	Fill         Fill

	Overlay Overlay

	Label    string
	FontPath string // empty uses the embedded Go font
	FontSize float64
	LabelPos Position
	Outline  bool

	Shadow bool
	Glow   bool
	Border bool

	Opacity float64 // 0 means fully opaque
}

// DefaultSpec returns a rounded blue icon at the canonical size
func DefaultSpec() Spec {
	return Spec{
		Size:         CanonicalSize,
		Shape:        Rounded,
		Margin:       DefaultMargin,
		CornerRadius: DefaultCornerRadius,
		Fill:         Solid(color.NRGBA{0x58, 0x65, 0xf2, 0xff}),
		LabelPos:     PositionAuto,
		Opacity:      1,
	}
}
