package icon

import (
	"errors"
	"image/color"
	"testing"
)

func TestParseHex(t *testing.T) {
	tests := []struct {
		in   string
		want color.NRGBA
	}{
		{"#5865f2", color.NRGBA{0x58, 0x65, 0xf2, 0xff}},
		{"5865F2", color.NRGBA{0x58, 0x65, 0xf2, 0xff}},
		{"#fff", color.NRGBA{0xff, 0xff, 0xff, 0xff}},
		{"#00000080", color.NRGBA{0, 0, 0, 0x80}},
	}
	for _, tt := range tests {
		got, err := ParseHex(tt.in)
		if err != nil {
			t.Errorf("ParseHex(%q) error: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseHex(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}

	for _, bad := range []string{"", "#12", "#gggggg", "blue"} {
		if _, err := ParseHex(bad); !errors.Is(err, ErrBadColor) {
			t.Errorf("ParseHex(%q) err = %v, want ErrBadColor", bad, err)
		}
	}
}

func TestLabelColor(t *testing.T) {
	white := color.NRGBA{0xff, 0xff, 0xff, 0xff}
	black := color.NRGBA{0, 0, 0, 0xff}

	if got := LabelColor(white); got != DarkText {
		t.Errorf("label on white = %v, want dark", got)
	}
	if got := LabelColor(black); got != LightText {
		t.Errorf("label on black = %v, want light", got)
	}
	if got := OutlineColor(black); got != DarkText {
		t.Errorf("outline on black = %v, want dark", got)
	}
	if !IsLight(color.NRGBA{0xfe, 0xb4, 0x7b, 0xff}) {
		t.Error("#feb47b should count as light")
	}
	if IsLight(color.NRGBA{0x58, 0x65, 0xf2, 0xff}) {
		t.Error("#5865f2 should count as dark")
	}
}

func TestHexRoundTrip(t *testing.T) {
	c := color.NRGBA{0x12, 0xab, 0xef, 0xff}
	got, err := ParseHex(Hex(c))
	if err != nil || got != c {
		t.Errorf("round trip = %v, %v", got, err)
	}
}
