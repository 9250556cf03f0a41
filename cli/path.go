package cli

import (
	"os"
	"path/filepath"

	"github.com/ardnew/santa/pkg"
)

// configFile is the base name of the configuration file.
const configFile = "config." + pkg.Name

// manualDir is the cache subdirectory holding tutorial progress and the
// manual.
const manualDir = "manual"

// defaultDirMode is the permission mode for created directories.
var defaultDirMode os.FileMode = 0o700

// configPath returns the path formed by joining the configuration directory
// with the given path elements.
func configPath(elem ...string) string {
	return filepath.Join(append([]string{pkg.ConfigDir()}, elem...)...)
}

// mkdirAllRequired creates the configuration and cache directories.
func mkdirAllRequired() error {
	for _, dir := range []string{pkg.ConfigDir(), pkg.CacheDir()} {
		if err := os.MkdirAll(dir, defaultDirMode); err != nil {
			return err
		}
	}

	return nil
}
