//nolint:gochecknoglobals
package pkg

import (
	_ "embed"
	"strconv"
	"strings"
)

// Version is the semantic version of the santa module embedded at build time.
// It is printed by the CLI when users pass the version flag.
//
//go:embed VERSION
var Version string

const (
	// Name is the canonical command and module identifier used across the
	// project. For example, it appears in help text and default config paths.
	Name = "santa"
	// Description is a short, human-readable summary of the project used in
	// help output and documentation.
	Description = "Interpreter for the santa naughty-or-nice scripting language"
)

// VersionCode returns [Version] packed into a single integer as
// major*10000 + minor*100 + patch, the form scripts see as SANTA_VERSION.
//
// Missing or malformed components count as zero, and any pre-release or
// build suffix ("1.2.0-rc1+abc") is ignored.
func VersionCode() int64 {
	return ParseVersionCode(Version)
}

// ParseVersionCode packs a semantic version string the same way as
// [VersionCode].
func ParseVersionCode(version string) int64 {
	version = strings.TrimPrefix(strings.TrimSpace(version), "v")

	if i := strings.IndexAny(version, "-+"); i >= 0 {
		version = version[:i]
	}

	var code int64

	part := strings.SplitN(version, ".", 3)
	for i, weight := range []int64{10000, 100, 1} {
		if i >= len(part) {
			break
		}

		n, err := strconv.ParseInt(part[i], 10, 64)
		if err != nil || n < 0 {
			n = 0
		}

		code += n * weight
	}

	return code
}

// AuthorInfo represents an individual author's name and email address.
type AuthorInfo struct {
	// Name is the author's preferred name or handle.
	Name string
	// Email is the author's contact email address.
	Email string
}

// Author lists the primary author(s) of the project for display in metadata.
//
//nolint:gochecknoglobals
var Author = []AuthorInfo{
	{"ardnew", "andrew@ardnew.com"},
}
