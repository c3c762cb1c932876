package icon

import (
	"image"
	"image/color"
	"testing"
)

func background(t *testing.T, spec Spec) *image.NRGBA {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, spec.Size, spec.Size))
	drawBackground(img, spec)
	return img
}

func alphaAt(img *image.NRGBA, x, y int) uint8 {
	return img.NRGBAAt(x, y).A
}

func TestShapes(t *testing.T) {
	for _, shape := range Shapes {
		t.Run(string(shape), func(t *testing.T) {
			spec := DefaultSpec()
			spec.Shape = shape
			img := background(t, spec)

			if a := alphaAt(img, 0, 0); a != 0 {
				t.Errorf("canvas corner alpha = %d, want 0", a)
			}
			if a := alphaAt(img, spec.Size-1, spec.Size-1); a != 0 {
				t.Errorf("far corner alpha = %d, want 0", a)
			}
			mid := spec.Size / 2
			if c := img.NRGBAAt(mid, mid); c != spec.Fill.From {
				t.Errorf("centre = %v, want fill %v", c, spec.Fill.From)
			}
		})
	}
}

func TestRoundedCornerIsCut(t *testing.T) {
	spec := DefaultSpec()
	img := background(t, spec)

	m := spec.Margin
	if a := alphaAt(img, m+1, m+1); a != 0 {
		t.Errorf("rounded corner alpha = %d, want transparent", a)
	}

	spec.Shape = Square
	img = background(t, spec)
	if a := alphaAt(img, m+1, m+1); a != 0xff {
		t.Errorf("square corner alpha = %d, want opaque", a)
	}
}

func TestHexagonPointsSideways(t *testing.T) {
	spec := DefaultSpec()
	spec.Shape = Hexagon
	img := background(t, spec)

	mid := spec.Size / 2
	// vertex on the horizontal axis, flat edges top and bottom
	if a := alphaAt(img, spec.Margin+2, mid); a == 0 {
		t.Error("left vertex should be filled")
	}
	if a := alphaAt(img, spec.Margin+2, spec.Margin+2); a != 0 {
		t.Error("top-left corner should be empty")
	}
}

func TestGradientFill(t *testing.T) {
	spec := DefaultSpec()
	spec.Shape = Square
	spec.Fill = Fill{
		From:     color.NRGBA{0xff, 0, 0, 0xff},
		To:       color.NRGBA{0, 0, 0xff, 0xff},
		Gradient: true,
	}
	img := background(t, spec)

	top := img.NRGBAAt(spec.Size/2, spec.Margin+1)
	bottom := img.NRGBAAt(spec.Size/2, spec.Size-spec.Margin-2)
	if top.R <= top.B {
		t.Errorf("top should be red-dominant, got %v", top)
	}
	if bottom.B <= bottom.R {
		t.Errorf("bottom should be blue-dominant, got %v", bottom)
	}
}
