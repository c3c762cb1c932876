package icon

import (
	"fmt"
	"image"
	"log"
)

// Result is a rendered canvas plus the optional stages that were skipped
type Result struct {
	Image   *image.NRGBA
	Skipped []error
}

// Render draws the icon described by spec. Missing fonts, missing overlays
// and broken assets only skip their stage; they are listed in Result.Skipped.
func Render(spec Spec) (res *Result, err error) {
	if spec.Size < 16 {
		return nil, fmt.Errorf("%w: canvas size %d", ErrRenderFailed, spec.Size)
	}
	if spec.Margin < 0 || 2*spec.Margin >= spec.Size {
		return nil, fmt.Errorf("%w: margin %d", ErrRenderFailed, spec.Margin)
	}

	defer func() {
		if r := recover(); r != nil {
			res = nil
			err = fmt.Errorf("%w: %v", ErrRenderFailed, r)
		}
	}()

	res = &Result{}
	canvas := image.NewNRGBA(image.Rect(0, 0, spec.Size, spec.Size))

	drawBackground(canvas, spec)

	withLabel := spec.Label != ""
	var glyph image.Rectangle
	if !spec.Overlay.Empty() {
		r, err := drawOverlay(canvas, spec, withLabel)
		if err != nil {
			log.Printf("Overlay skipped: %v", err)
			res.Skipped = append(res.Skipped, &StageError{Stage: "overlay", Err: err})
		} else {
			glyph = r
		}
	}

	if withLabel {
		if err := drawLabel(canvas, spec, glyph); err != nil {
			log.Printf("Label degraded: %v", err)
			res.Skipped = append(res.Skipped, &StageError{Stage: "label", Err: err})
		}
	}

	for _, fx := range Effects(spec) {
		canvas = fx(canvas, spec)
	}
	applyOpacity(canvas, spec.Opacity)

	res.Image = canvas
	return res, nil
}

// Preview renders the icon and scales it to px for on-screen display
func Preview(spec Spec, px int) (image.Image, error) {
	res, err := Render(spec)
	if err != nil {
		return nil, err
	}
	if px <= 0 || px == spec.Size {
		return res.Image, nil
	}
	return Resample(res.Image, px), nil
}
