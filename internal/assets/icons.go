// Package assets embeds the application artwork and the built-in browser
// glyphs drawn over generated icons.
package assets

import (
	"embed"

	"fyne.io/fyne/v2"

	"profilepop/internal/browser"
)

//go:embed tray.svg
var trayIconData []byte

//go:embed app.svg
var appIconData []byte

//go:embed logos/*.svg
var logos embed.FS

// TrayIcon returns the system tray icon resource
func TrayIcon() fyne.Resource {
	return fyne.NewStaticResource("tray.svg", trayIconData)
}

// AppIcon returns the application icon resource
func AppIcon() fyne.Resource {
	return fyne.NewStaticResource("app.svg", appIconData)
}

// AppIconSVG returns the raw application icon
func AppIconSVG() []byte {
	return appIconData
}

// Logo returns the built-in SVG glyph for a browser, nil when there is none
func Logo(k browser.Kind) []byte {
	data, err := logos.ReadFile("logos/" + string(k) + ".svg")
	if err != nil {
		return nil
	}
	return data
}

// LogoResource returns the browser glyph as a fyne resource
func LogoResource(k browser.Kind) fyne.Resource {
	data := Logo(k)
	if data == nil {
		return AppIcon()
	}
	return fyne.NewStaticResource(string(k)+".svg", data)
}
