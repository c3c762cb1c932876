package browser

// Every palette starts with the browser's brand color followed by a shared
// tail, so the first profiles of each browser get visually distinct defaults.
var paletteTail = []string{"#57f287", "#feb47b", "#ff7eb9", "#c44569", "#f8b500"}

var brandColors = map[Kind]string{
	Chrome:   "#4285f4",
	Edge:     "#5865f2",
	Firefox:  "#ff9500",
	Brave:    "#fb542b",
	Opera:    "#ff1b2d",
	Vivaldi:  "#ef3939",
	Chromium: "#4b8bf5",
}

// Palette returns the default color cycle for a browser
func Palette(k Kind) []string {
	brand, ok := brandColors[k]
	if !ok {
		brand = brandColors[Edge]
	}
	return append([]string{brand}, paletteTail...)
}

// DefaultColor returns the palette entry for the profile at position index
func DefaultColor(k Kind, index int) string {
	p := Palette(k)
	if index < 0 {
		index = -index
	}
	return p[index%len(p)]
}

func assignColors(k Kind, profiles []Profile) {
	for i := range profiles {
		profiles[i].SuggestedColor = DefaultColor(k, i)
	}
}
