package pkg

import (
	"errors"
	"path/filepath"
	"testing"
)

func TestPrefixOf(t *testing.T) {
	tests := []struct {
		exe, want string
	}{
		{"/usr/local/bin/qjsc", "qjsc"},
		{"/tmp/qjsc.exe", "qjsc"},
		{"/work/__debug_bin3412", Name},
		{"/home/u/.qjsc-dev", "qjsc-dev"},
		{"/tmp/...", Name},
	}

	for _, tt := range tests {
		t.Run(tt.exe, func(t *testing.T) {
			if got := prefixOf(tt.exe); got != tt.want {
				t.Errorf("prefixOf(%q) = %q, want %q", tt.exe, got, tt.want)
			}
		})
	}
}

func TestUserDir(t *testing.T) {
	base := t.TempDir()

	got := userDir(func() (string, error) { return base, nil }, ".config")
	if want := filepath.Join(base, Prefix()); got != want {
		t.Errorf("userDir = %q, want %q", got, want)
	}

	home := t.TempDir()
	t.Setenv("HOME", home)

	got = userDir(func() (string, error) { return "", errors.New("unset") }, ".cache")
	if want := filepath.Join(home, ".cache", Prefix()); got != want {
		t.Errorf("userDir fallback = %q, want %q", got, want)
	}
}
