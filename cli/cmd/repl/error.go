package repl

import "github.com/ardnew/santa/lang"

var (
	// ErrOutOfBounds is returned for a history index with no entry.
	ErrOutOfBounds = lang.NewError("history index out of range")
	// ErrEditDeclined ends an edit whose result the user chose not to keep.
	ErrEditDeclined = lang.NewError("edit declined")
	// ErrNoEnv is returned when a session has no way to build its
	// environment.
	ErrNoEnv = lang.NewError("no environment for session")
)
