package platform

import (
	"os"
	"path/filepath"
	"testing"
)

func TestEnsureDir(t *testing.T) {
	dir := t.TempDir()
	if err := ensureDir(dir); err != nil {
		t.Errorf("ensureDir(%s) = %v", dir, err)
	}

	file := filepath.Join(dir, "f")
	os.WriteFile(file, nil, 0644)
	if err := ensureDir(file); err == nil {
		t.Error("a file is not a folder")
	}
	if err := ensureDir(filepath.Join(dir, "missing")); !os.IsNotExist(err) {
		t.Errorf("missing folder err = %v", err)
	}
}

func TestStartMissingProgram(t *testing.T) {
	if err := Start(filepath.Join(t.TempDir(), "no-such-browser"), nil, ""); err == nil {
		t.Error("starting a missing program should fail")
	}
}
