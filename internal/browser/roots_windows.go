//go:build windows

package browser

import (
	"os"
	"path/filepath"
)

// defaultRoots returns browser profile roots on Windows
func defaultRoots(home string) map[Kind]string {
	localAppData := os.Getenv("LOCALAPPDATA")
	if localAppData == "" {
		localAppData = filepath.Join(home, "AppData", "Local")
	}
	appData := os.Getenv("APPDATA")
	if appData == "" {
		appData = filepath.Join(home, "AppData", "Roaming")
	}

	return map[Kind]string{
		Chrome:   filepath.Join(localAppData, "Google", "Chrome", "User Data"),
		Edge:     filepath.Join(localAppData, "Microsoft", "Edge", "User Data"),
		Brave:    filepath.Join(localAppData, "BraveSoftware", "Brave-Browser", "User Data"),
		Opera:    filepath.Join(appData, "Opera Software", "Opera Stable"),
		Vivaldi:  filepath.Join(localAppData, "Vivaldi", "User Data"),
		Chromium: filepath.Join(localAppData, "Chromium", "User Data"),
		Firefox:  filepath.Join(appData, "Mozilla", "Firefox"),
	}
}

// executableCandidates returns the usual install locations on Windows
func executableCandidates(k Kind) []string {
	programFiles := os.Getenv("ProgramFiles")
	if programFiles == "" {
		programFiles = `C:\Program Files`
	}
	programFilesX86 := os.Getenv("ProgramFiles(x86)")
	if programFilesX86 == "" {
		programFilesX86 = `C:\Program Files (x86)`
	}
	localAppData := os.Getenv("LOCALAPPDATA")

	switch k {
	case Chrome:
		return []string{
			filepath.Join(programFiles, "Google", "Chrome", "Application", "chrome.exe"),
			filepath.Join(programFilesX86, "Google", "Chrome", "Application", "chrome.exe"),
			filepath.Join(localAppData, "Google", "Chrome", "Application", "chrome.exe"),
		}
	case Edge:
		return []string{
			filepath.Join(programFilesX86, "Microsoft", "Edge", "Application", "msedge.exe"),
			filepath.Join(programFiles, "Microsoft", "Edge", "Application", "msedge.exe"),
		}
	case Brave:
		return []string{
			filepath.Join(programFiles, "BraveSoftware", "Brave-Browser", "Application", "brave.exe"),
			filepath.Join(localAppData, "BraveSoftware", "Brave-Browser", "Application", "brave.exe"),
		}
	case Opera:
		return []string{
			filepath.Join(programFiles, "Opera", "opera.exe"),
			filepath.Join(localAppData, "Programs", "Opera", "opera.exe"),
		}
	case Vivaldi:
		return []string{
			filepath.Join(programFiles, "Vivaldi", "Application", "vivaldi.exe"),
			filepath.Join(localAppData, "Vivaldi", "Application", "vivaldi.exe"),
		}
	case Chromium:
		return []string{filepath.Join(localAppData, "Chromium", "Application", "chrome.exe")}
	case Firefox:
		return []string{
			filepath.Join(programFiles, "Mozilla Firefox", "firefox.exe"),
			filepath.Join(programFilesX86, "Mozilla Firefox", "firefox.exe"),
		}
	}
	return nil
}
