//go:build darwin

package browser

import "path/filepath"

// defaultRoots returns browser profile roots on macOS
func defaultRoots(home string) map[Kind]string {
	appSupport := filepath.Join(home, "Library", "Application Support")

	return map[Kind]string{
		Chrome:   filepath.Join(appSupport, "Google", "Chrome"),
		Edge:     filepath.Join(appSupport, "Microsoft Edge"),
		Brave:    filepath.Join(appSupport, "BraveSoftware", "Brave-Browser"),
		Opera:    filepath.Join(appSupport, "com.operasoftware.Opera"),
		Vivaldi:  filepath.Join(appSupport, "Vivaldi"),
		Chromium: filepath.Join(appSupport, "Chromium"),
		Firefox:  filepath.Join(appSupport, "Firefox"),
	}
}

// executableCandidates returns the app bundle binaries on macOS
func executableCandidates(k Kind) []string {
	bundles := map[Kind]string{
		Chrome:   "/Applications/Google Chrome.app/Contents/MacOS/Google Chrome",
		Edge:     "/Applications/Microsoft Edge.app/Contents/MacOS/Microsoft Edge",
		Brave:    "/Applications/Brave Browser.app/Contents/MacOS/Brave Browser",
		Opera:    "/Applications/Opera.app/Contents/MacOS/Opera",
		Vivaldi:  "/Applications/Vivaldi.app/Contents/MacOS/Vivaldi",
		Chromium: "/Applications/Chromium.app/Contents/MacOS/Chromium",
		Firefox:  "/Applications/Firefox.app/Contents/MacOS/firefox",
	}
	if p, ok := bundles[k]; ok {
		return []string{p}
	}
	return nil
}
