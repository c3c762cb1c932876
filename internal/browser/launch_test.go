package browser

import (
	"path/filepath"
	"testing"
)

func TestLaunch(t *testing.T) {
	exe := filepath.Join("/opt", "browser", "bin")
	tests := []struct {
		name    string
		profile Profile
		args    []string
	}{
		{"chromium uses directory", Profile{Kind: Edge, ID: "Profile 3", Name: "Work"}, []string{"--profile-directory=Profile 3"}},
		{"firefox uses name", Profile{Kind: Firefox, ID: "Profiles/x.work", Name: "Work Stuff"}, []string{"-P", "Work Stuff"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec := Launch(tt.profile, exe, "/tmp/icon.ico")
			if len(spec.Args) != len(tt.args) {
				t.Fatalf("args = %q, want %q", spec.Args, tt.args)
			}
			for i := range tt.args {
				if spec.Args[i] != tt.args[i] {
					t.Errorf("arg %d = %q, want %q", i, spec.Args[i], tt.args[i])
				}
			}
			if spec.WorkDir != filepath.Dir(exe) {
				t.Errorf("workdir = %q", spec.WorkDir)
			}
			if spec.IconPath != "/tmp/icon.ico" {
				t.Errorf("icon = %q", spec.IconPath)
			}
		})
	}
}

func TestCommandLineQuotes(t *testing.T) {
	spec := LaunchSpec{Executable: "/usr/bin/firefox", Args: []string{"-P", "Work Stuff"}}
	if got := spec.CommandLine(); got != `/usr/bin/firefox -P "Work Stuff"` {
		t.Errorf("CommandLine() = %s", got)
	}
}
