package icon

import (
	"image"
	"reflect"
	"testing"
)

func squareLayer(t *testing.T) (*image.NRGBA, Spec) {
	t.Helper()
	spec := DefaultSpec()
	spec.Shape = Square
	return background(t, spec), spec
}

func TestEffectsOrder(t *testing.T) {
	spec := DefaultSpec()
	spec.Shadow, spec.Glow, spec.Border = true, true, true

	got := Effects(spec)
	want := []Effect{Border, Shadow, Glow}
	if len(got) != len(want) {
		t.Fatalf("got %d effects, want %d", len(got), len(want))
	}
	for i := range want {
		if reflect.ValueOf(got[i]).Pointer() != reflect.ValueOf(want[i]).Pointer() {
			t.Errorf("effect %d out of order", i)
		}
	}

	if fx := Effects(DefaultSpec()); len(fx) != 0 {
		t.Errorf("default spec enables %d effects", len(fx))
	}
}

func TestShadow(t *testing.T) {
	layer, spec := squareLayer(t)
	edge := spec.Size - spec.Margin + 2
	mid := spec.Size / 2
	if alphaAt(layer, edge, mid) != 0 {
		t.Fatal("pixel outside the shape should start transparent")
	}

	out := Shadow(layer, spec)
	if alphaAt(out, edge, mid) == 0 {
		t.Error("shadow should darken the area just outside the shape")
	}
	if c := out.NRGBAAt(mid, mid); c != spec.Fill.From {
		t.Errorf("shadow painted over the layer: centre = %v", c)
	}
}

func TestGlow(t *testing.T) {
	layer, spec := squareLayer(t)
	edge := spec.Size - spec.Margin + 1
	mid := spec.Size / 2

	out := Glow(layer, spec)
	if alphaAt(out, edge, mid) == 0 {
		t.Error("glow should spill past the shape edge")
	}
	if alphaAt(out, 0, 0) != 0 {
		t.Error("glow should fade out before the canvas corner")
	}
	if c := out.NRGBAAt(mid, mid); c != spec.Fill.From {
		t.Errorf("glow painted over the layer: centre = %v", c)
	}
}

func TestBorder(t *testing.T) {
	layer, spec := squareLayer(t)
	mid := spec.Size / 2

	out := Border(layer, spec)
	ring := out.NRGBAAt(spec.Margin+2, mid)
	if ring.R <= spec.Fill.From.R {
		t.Errorf("border on a dark fill should be lighter, got %v", ring)
	}
	if c := out.NRGBAAt(mid, mid); c != spec.Fill.From {
		t.Errorf("border touched the inside: centre = %v", c)
	}
	if layer.NRGBAAt(spec.Margin+2, mid) != spec.Fill.From {
		t.Error("Border modified its input")
	}
}

func TestApplyOpacity(t *testing.T) {
	layer, spec := squareLayer(t)
	mid := spec.Size / 2

	applyOpacity(layer, 0.5)
	if a := alphaAt(layer, mid, mid); a < 126 || a > 129 {
		t.Errorf("alpha after 0.5 opacity = %d", a)
	}

	layer, _ = squareLayer(t)
	applyOpacity(layer, 0)
	if a := alphaAt(layer, mid, mid); a != 0xff {
		t.Errorf("zero opacity means unset, alpha = %d", a)
	}
}
