package icon

import (
	"image"
	"image/color"

	"github.com/disintegration/imaging"
	"golang.org/x/image/draw"
)

const (
	shadowOffset = 4
	shadowSigma  = 3
	shadowAlpha  = 100
	glowSigma    = 5
	glowBoost    = 1.5
	borderWidth  = 6
)

// Effect transforms a finished layer. Effects that add depth paint behind
// the layer, never over it.
type Effect func(layer *image.NRGBA, spec Spec) *image.NRGBA

// Effects returns the enabled effects in application order
func Effects(spec Spec) []Effect {
	var fx []Effect
	if spec.Border {
		fx = append(fx, Border)
	}
	if spec.Shadow {
		fx = append(fx, Shadow)
	}
	if spec.Glow {
		fx = append(fx, Glow)
	}
	return fx
}

// behind composites layer over background
func behind(background, layer *image.NRGBA) *image.NRGBA {
	out := imaging.Clone(background)
	draw.Draw(out, out.Bounds(), layer, layer.Bounds().Min, draw.Over)
	return out
}

// Shadow puts a blurred dark ellipse, offset down-right, behind the layer
func Shadow(layer *image.NRGBA, spec Spec) *image.NRGBA {
	shadow := image.NewNRGBA(layer.Bounds())
	r := shapeRect(spec)
	r = rect{r.x0 + shadowOffset, r.y0 + shadowOffset, r.x1 + shadowOffset, r.y1 + shadowOffset}
	fillPaths(shadow, image.NewUniform(color.NRGBA{0, 0, 0, shadowAlpha}), ellipsePath(r))

	return behind(imaging.Blur(shadow, shadowSigma), layer)
}

// Glow puts a blurred, brightened copy of the layer behind itself
func Glow(layer *image.NRGBA, spec Spec) *image.NRGBA {
	glow := imaging.Blur(layer, glowSigma)
	glow = imaging.AdjustFunc(glow, func(c color.NRGBA) color.NRGBA {
		return Brighten(c, glowBoost)
	})
	return behind(glow, layer)
}

// Border strokes the shape boundary in the label color
func Border(layer *image.NRGBA, spec Spec) *image.NRGBA {
	out := imaging.Clone(layer)
	outer := shapeRect(spec)
	inner := outer.inset(borderWidth)

	stroke := LabelColor(spec.Fill.Average())
	stroke.A = 0xc0

	fillPaths(out, image.NewUniform(stroke),
		outline(spec.Shape, outer, spec.CornerRadius),
		outline(spec.Shape, inner, spec.CornerRadius-borderWidth).reversed(),
	)
	return out
}

// applyOpacity scales the alpha channel in place
func applyOpacity(img *image.NRGBA, opacity float64) {
	if opacity <= 0 || opacity >= 1 {
		return
	}
	for i := 3; i < len(img.Pix); i += 4 {
		img.Pix[i] = uint8(float64(img.Pix[i])*opacity + 0.5)
	}
}
