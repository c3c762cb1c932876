package icon

import (
	"errors"
	"fmt"
	"image"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

const (
	labelGap     = 12 // pixels between glyph and label
	minFontSize  = 10
	fontSizeFrac = 0.11
)

var builtinFont *opentype.Font

func init() {
	f, err := opentype.Parse(goregular.TTF)
	if err != nil {
		panic(fmt.Sprintf("embedded font: %v", err))
	}
	builtinFont = f
}

// loadFont parses the font at path. Any failure falls back to the embedded
// Go font; the returned error says why.
func loadFont(path string) (*opentype.Font, error) {
	if path == "" {
		return builtinFont, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return builtinFont, fmt.Errorf("%w: font %s", ErrAssetMissing, path)
		}
		return builtinFont, err
	}
	f, err := opentype.Parse(data)
	if err != nil {
		return builtinFont, fmt.Errorf("parse font %s: %w", path, err)
	}
	return f, nil
}

func newFace(f *opentype.Font, size float64) (font.Face, error) {
	return opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
}

// fitLabel picks the largest face up to size that fits width, truncating
// the text when even the minimum size is too wide
func fitLabel(f *opentype.Font, text string, size float64, width int) (font.Face, string, error) {
	for s := size; ; s -= 2 {
		if s < minFontSize {
			s = minFontSize
		}
		face, err := newFace(f, s)
		if err != nil {
			return nil, "", err
		}
		if font.MeasureString(face, text).Ceil() <= width {
			return face, text, nil
		}
		if s == minFontSize {
			return face, truncate(face, text, width), nil
		}
		face.Close()
	}
}

func truncate(face font.Face, text string, width int) string {
	const ellipsis = "..."
	for len(text) > 0 {
		_, n := utf8.DecodeLastRuneInString(text)
		text = strings.TrimSpace(text[:len(text)-n])
		if font.MeasureString(face, text+ellipsis).Ceil() <= width {
			return text + ellipsis
		}
	}
	return ""
}

// labelBaseline returns the baseline y for the label
func labelBaseline(spec Spec, m font.Metrics, glyph image.Rectangle) int {
	ascent := m.Ascent.Ceil()
	descent := m.Descent.Ceil()
	inner := spec.Margin + labelGap/2

	var y int
	switch spec.LabelPos {
	case PositionTop:
		y = inner + ascent
	case PositionCenter:
		y = (spec.Size + ascent - descent) / 2
	case PositionBottom:
		y = spec.Size - inner - descent
	default:
		if glyph.Empty() {
			y = (spec.Size + ascent - descent) / 2
		} else {
			y = glyph.Max.Y + labelGap + ascent
		}
	}

	// Keep the whole line on the canvas
	if y+descent > spec.Size {
		y = spec.Size - descent
	}
	if y-ascent < 0 {
		y = ascent
	}
	return y
}

// drawLabel writes the centered label, outlined when spec.Outline is set
func drawLabel(dst *image.NRGBA, spec Spec, glyph image.Rectangle) error {
	f, fontErr := loadFont(spec.FontPath)

	size := spec.FontSize
	if size <= 0 {
		size = float64(spec.Size) * fontSizeFrac
	}
	width := spec.Size - 2*spec.Margin - labelGap

	face, text, err := fitLabel(f, spec.Label, size, width)
	if err != nil {
		return err
	}
	defer face.Close()
	if text == "" {
		return fontErr
	}

	x := (spec.Size - font.MeasureString(face, text).Ceil()) / 2
	y := labelBaseline(spec, face.Metrics(), glyph)

	bg := spec.Fill.Average()
	if spec.Outline {
		outline := image.NewUniform(OutlineColor(bg))
		for _, d := range []image.Point{{-1, -1}, {-1, 1}, {1, -1}, {1, 1}} {
			drawText(dst, face, outline, text, x+d.X, y+d.Y)
		}
	}
	drawText(dst, face, image.NewUniform(LabelColor(bg)), text, x, y)

	return fontErr
}

func drawText(dst *image.NRGBA, face font.Face, src image.Image, text string, x, y int) {
	d := &font.Drawer{
		Dst:  dst,
		Src:  src,
		Face: face,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(text)
}
