package icon

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"math"
	"os"
	"path/filepath"
	"strings"

	_ "image/jpeg"
	_ "image/png"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

// Fractions of the margin-reduced canvas the glyph may occupy
const (
	glyphFraction          = 0.75
	glyphFractionWithLabel = 0.50
)

// readOverlay returns the overlay bytes and whether they are SVG
func readOverlay(o Overlay) ([]byte, bool, error) {
	if o.Path != "" {
		data, err := os.ReadFile(o.Path)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return nil, false, fmt.Errorf("%w: %s", ErrAssetMissing, o.Path)
			}
			return nil, false, err
		}
		return data, strings.EqualFold(filepath.Ext(o.Path), ".svg") || looksLikeSVG(data), nil
	}
	return o.Data, looksLikeSVG(o.Data), nil
}

func looksLikeSVG(data []byte) bool {
	head := data
	if len(head) > 512 {
		head = head[:512]
	}
	return bytes.Contains(head, []byte("<svg"))
}

// loadGlyph decodes the overlay and fits it inside a box x box square,
// preserving aspect ratio
func loadGlyph(o Overlay, box int) (image.Image, error) {
	data, isSVG, err := readOverlay(o)
	if err != nil {
		return nil, err
	}
	if isSVG {
		return renderSVG(data, box)
	}

	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode overlay: %w", err)
	}
	return fitImage(src, box), nil
}

// fitSize scales w x h to fit inside box, keeping the aspect ratio
func fitSize(w, h float64, box int) (int, int) {
	if w <= 0 || h <= 0 {
		return box, box
	}
	scale := math.Min(float64(box)/w, float64(box)/h)
	fw := int(math.Round(w * scale))
	fh := int(math.Round(h * scale))
	return max(fw, 1), max(fh, 1)
}

func fitImage(src image.Image, box int) image.Image {
	b := src.Bounds()
	w, h := fitSize(float64(b.Dx()), float64(b.Dy()), box)
	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Over, nil)
	return dst
}

func renderSVG(data []byte, box int) (image.Image, error) {
	svg, err := oksvg.ReadIconStream(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parse svg overlay: %w", err)
	}

	w, h := fitSize(svg.ViewBox.W, svg.ViewBox.H, box)
	svg.SetTarget(0, 0, float64(w), float64(h))

	rgba := image.NewRGBA(image.Rect(0, 0, w, h))
	gv := rasterx.NewScannerGV(w, h, rgba, rgba.Bounds())
	dasher := rasterx.NewDasher(w, h, gv)
	svg.Draw(dasher, 1.0)

	return rgba, nil
}

// glyphBox returns the side of the square the glyph must fit in
func glyphBox(spec Spec, withLabel bool) int {
	avail := spec.Size - 2*spec.Margin
	frac := glyphFraction
	if withLabel {
		frac = glyphFractionWithLabel
	}
	return max(int(float64(avail)*frac), 1)
}

// glyphOrigin centres the glyph horizontally. With a label it sits in the
// upper part of the canvas (lower part when the label is on top).
func glyphOrigin(spec Spec, w, h int, withLabel bool) image.Point {
	avail := spec.Size - 2*spec.Margin
	x := (spec.Size - w) / 2

	bias := 0.5
	if withLabel {
		switch spec.LabelPos {
		case PositionTop:
			bias = 0.75
		case PositionCenter:
			bias = 0.5
		default:
			bias = 0.25
		}
	}
	y := spec.Margin + int(float64(avail-h)*bias)
	return image.Pt(x, y)
}

// drawOverlay composites the glyph and returns the rectangle it covers
func drawOverlay(dst *image.NRGBA, spec Spec, withLabel bool) (image.Rectangle, error) {
	glyph, err := loadGlyph(spec.Overlay, glyphBox(spec, withLabel))
	if err != nil {
		return image.Rectangle{}, err
	}

	gb := glyph.Bounds()
	at := glyphOrigin(spec, gb.Dx(), gb.Dy(), withLabel)
	r := image.Rectangle{Min: at, Max: at.Add(gb.Size())}
	draw.Draw(dst, r, glyph, gb.Min, draw.Over)
	return r, nil
}
