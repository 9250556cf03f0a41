package network

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/ardnew/santa/database"
	"github.com/ardnew/santa/lang"
)

var (
	errNoRecords = errors.New("replica has no records")
	errNoID      = errors.New("replica has no id column")
	errMessage   = errors.New("malformed update message")
)

// Update is a single change to one record, identified by its id column.
type Update struct {
	ID     lang.Value
	Column string
	Value  lang.Value
}

// String returns the wire form of u, for example
// "update id 4; set isnaughty=<true>".
func (u Update) String() string {
	return fmt.Sprintf("update id %s; set %s=<%s>", u.ID, u.Column, u.Value)
}

// ParseUpdate parses the wire form produced by [Update.String].
//
// Integer ids and the values true and false are decoded to their santa
// kinds. Any other value is a String.
func ParseUpdate(msg string) (Update, error) {
	malformed := func() (Update, error) {
		return Update{}, database.ErrDatabase.Wrap(fmt.Errorf("%w: %q", errMessage, msg))
	}

	rest, ok := strings.CutPrefix(msg, "update id ")
	if !ok {
		return malformed()
	}

	id, rest, ok := strings.Cut(rest, "; set ")
	if !ok {
		return malformed()
	}

	column, value, ok := strings.Cut(rest, "=<")
	if !ok || column == "" || !strings.HasSuffix(value, ">") {
		return malformed()
	}

	return Update{
		ID:     decode(id),
		Column: column,
		Value:  decode(strings.TrimSuffix(value, ">")),
	}, nil
}

func decode(s string) lang.Value {
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return lang.Integer(n)
	}

	switch s {
	case "true":
		return lang.Boolean(true)
	case "false":
		return lang.Boolean(false)
	}

	return lang.String(s)
}
