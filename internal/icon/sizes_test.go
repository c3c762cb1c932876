package icon

import (
	"reflect"
	"testing"
)

func TestParseSizes(t *testing.T) {
	tests := []struct {
		in      string
		want    []int
		wantErr bool
	}{
		{"256,128,16", []int{256, 128, 16}, false},
		{" 48 32px; 16 ", []int{48, 32, 16}, false},
		{"", DefaultSizes, false},
		{"0", nil, true},
		{"512", nil, true},
		{"big", nil, true},
	}
	for _, tt := range tests {
		got, err := ParseSizes(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseSizes(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && !reflect.DeepEqual(got, tt.want) {
			t.Errorf("ParseSizes(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestFormatSizesRoundTrip(t *testing.T) {
	text := FormatSizes([]int{256, 48, 16})
	if text != "256, 48, 16" {
		t.Errorf("FormatSizes = %q", text)
	}
	got, err := ParseSizes(text)
	if err != nil || !reflect.DeepEqual(got, []int{256, 48, 16}) {
		t.Errorf("ParseSizes(%q) = %v, %v", text, got, err)
	}
}
