package pkg

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// Environment variables that override the directories returned by
// [ConfigDir] and [CacheDir].
const (
	ConfigDirEnv = "SANTA_CONFIG_DIR"
	CacheDirEnv  = "SANTA_CACHE_DIR"
)

// Prefix is the executable's base name without extension or leading dots.
// It names the per-user directories below. Binaries built by the delve
// debugger ("__debug_bin1234") use [Name] instead.
//
//nolint:gochecknoglobals
var Prefix = sync.OnceValue(func() string {
	exe, err := os.Executable()
	if err != nil {
		exe = os.Args[0]
	}

	return prefixOf(exe)
})

// ConfigDir is where the CLI reads its configuration script.
//
//nolint:gochecknoglobals
var ConfigDir = sync.OnceValue(func() string {
	return resolveDir(os.Getenv(ConfigDirEnv), os.UserConfigDir, ".config", Prefix())
})

// CacheDir holds the parse cache, profiles and the manual.
//
//nolint:gochecknoglobals
var CacheDir = sync.OnceValue(func() string {
	return resolveDir(os.Getenv(CacheDirEnv), os.UserCacheDir, ".cache", Prefix())
})

func prefixOf(path string) string {
	base := filepath.Base(path)
	base = strings.TrimSuffix(base, filepath.Ext(base))

	if strings.HasPrefix(base, "__debug_bin") {
		return Name
	}

	if base = strings.TrimLeft(base, "."); base == "" {
		return Name
	}

	return base
}

// resolveDir returns override if set. Otherwise it returns the prefix
// directory inside the platform user directory, falling back to a hidden
// directory in $HOME and finally the working directory.
func resolveDir(override string, user func() (string, error), hidden, prefix string) string {
	if override != "" {
		return filepath.Clean(override)
	}

	if dir, err := user(); err == nil {
		return filepath.Join(dir, prefix)
	}

	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, hidden, prefix)
	}

	if wd, err := os.Getwd(); err == nil {
		return filepath.Join(wd, prefix)
	}

	return prefix
}
