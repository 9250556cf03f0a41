package cmd

import "github.com/ardnew/santa/lang"

// Command failures. They share [lang.Error] with the interpreter, so every
// error a command returns logs the same way and matches its sentinel with
// errors.Is after Wrap or With.
var (
	ErrReadSource  = lang.NewError("read source")
	ErrMarshal     = lang.NewError("marshal")
	ErrWriteConfig = lang.NewError("write configuration file")
	ErrFileExists  = lang.NewError("file exists (use --force to overwrite)")
	ErrNoContext   = lang.NewError("command context unavailable")
	ErrNoTutor     = lang.NewError("tutorial progress unavailable")
)
