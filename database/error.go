package database

import (
	"errors"

	"github.com/ardnew/santa/lang"
)

// ErrDatabase is the sentinel for every failure reported by a database or
// its builtins. It is a [lang.Error], so failures carry structured
// attributes and match with [errors.Is].
var ErrDatabase = lang.NewError("database error")

var (
	errRecordSize = errors.New("Record size did not match")
	errNoColumn   = errors.New("Column doesn't exist")
	errNoTable    = errors.New("Table doesn't exist")
)
