package pkg

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
)

//nolint:gochecknoglobals
var (
	debugBin   = regexp.MustCompile(`^__debug_bin\d*$`)
	leadingDot = regexp.MustCompile(`^\.+`)
)

// Prefix returns the directory name qjsc keeps its configuration, explore
// history and profiles under.
//
// It is the executable's base name without extension. A dlv build
// ("__debug_bin…") maps to [Name] and leading dots are dropped, so a hidden
// copy of the binary shares the regular directories.
//
//nolint:gochecknoglobals
var Prefix = sync.OnceValue(func() string {
	exe, err := os.Executable()
	if err != nil {
		exe = os.Args[0]
	}

	return prefixOf(exe)
})

func prefixOf(exe string) string {
	base := leadingDot.ReplaceAllString(filepath.Base(exe), "")
	base = strings.TrimSuffix(base, filepath.Ext(base))

	if base == "" || debugBin.MatchString(base) {
		return Name
	}

	return base
}

// ConfigDir returns the directory holding config.yaml.
//
//nolint:gochecknoglobals
var ConfigDir = sync.OnceValue(func() string {
	return userDir(os.UserConfigDir, ".config")
})

// CacheDir returns the directory holding the explore history and profiles.
//
//nolint:gochecknoglobals
var CacheDir = sync.OnceValue(func() string {
	return userDir(os.UserCacheDir, ".cache")
})

// userDir joins [Prefix] to the platform directory from lookup. When lookup
// fails it falls back to hidden below the home directory, then to the
// working directory.
func userDir(lookup func() (string, error), hidden string) string {
	dir, err := lookup()
	if err != nil {
		if home, herr := os.UserHomeDir(); herr == nil {
			dir = filepath.Join(home, hidden)
		} else if dir, err = os.Getwd(); err != nil {
			dir = "."
		}
	}

	return filepath.Join(dir, Prefix())
}
