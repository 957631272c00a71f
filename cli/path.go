package cli

import (
	"os"
	"path/filepath"
	"slices"

	"github.com/ardnew/mung"

	"github.com/ardnew/qjsc/pkg"
)

const (
	// baseConfig is the base name of the user configuration file.
	baseConfig = "config.yaml"
	// localConfig is the project configuration file in the working directory.
	localConfig = pkg.Name + ".yaml"
	// dotenv holds project environment variables in the working directory.
	dotenv = ".env"
	// searchPathEnv lists additional project directories.
	searchPathEnv = pkg.EnvPrefix + "PATH"
)

// defaultDirMode is the permission mode for created directories.
//
//nolint:gochecknoglobals
var defaultDirMode os.FileMode = 0o700

// configPath returns the path formed by joining the configuration directory
// with the given path elements.
func configPath(elem ...string) string {
	return filepath.Join(append([]string{pkg.ConfigDir()}, elem...)...)
}

// mkdirAllRequired creates all required runtime directories.
func mkdirAllRequired() error {
	for _, dir := range []string{pkg.ConfigDir(), pkg.CacheDir()} {
		err := os.MkdirAll(dir, defaultDirMode)
		if err != nil {
			return err
		}
	}

	return nil
}

// searchPath returns the project directories: dirs followed by the entries
// of the PATH-like $QJSC_PATH. Entries that are not existing directories are
// dropped, and only the first occurrence of each directory is kept.
func searchPath(dirs []string) []string {
	path := mung.Make(
		mung.WithSubjectItems(os.Getenv(searchPathEnv)),
		mung.WithDelim(string(os.PathListSeparator)),
		mung.WithPrefixItems(dirs...),
		mung.WithFilter(isDir),
	).String()

	var out []string

	for _, dir := range filepath.SplitList(path) {
		if dir == "" || !isDir(dir) {
			continue
		}

		dir = filepath.Clean(dir)
		if !slices.Contains(out, dir) {
			out = append(out, dir)
		}
	}

	return out
}

func isDir(path string) bool {
	info, err := os.Stat(path)

	return err == nil && info.IsDir()
}
