// Package cmd implements the santa subcommands: run, eval, fmt, db, repl,
// init and manual, plus the hidden RESET.
//
// Commands that evaluate santa code share a [Host], stored in the command
// context with [WithHost], that builds fully populated environments.
package cmd

var (
	// CacheIdentifier is the kong variable identifier containing the path to
	// the runtime cache directory.
	CacheIdentifier = "cache"

	// ConfigIdentifier is the kong variable identifier containing the path to
	// the configuration file.
	ConfigIdentifier = "config"
)
