package network

import (
	"context"
	"errors"

	"github.com/ardnew/santa/database"
	"github.com/ardnew/santa/lang"
)

// Register binds listen, register_network_handler and parse_update into
// env, all operating on l.
func Register(env *lang.Env, l *Listener) error {
	for _, b := range []struct {
		name   string
		params lang.ParameterList
		native lang.Native
	}{
		{"listen", nil, l.builtinListen},
		{"register_network_handler", lang.Params("function"), l.builtinRegister},
		{"parse_update", lang.Params("message"), builtinParseUpdate},
	} {
		if err := env.Register(b.name, b.params, b.native); err != nil {
			return err
		}
	}

	return nil
}

func (l *Listener) builtinListen(ctx context.Context, _ *lang.Env) (lang.Value, error) {
	return nil, l.Listen(ctx)
}

func (l *Listener) builtinRegister(_ context.Context, env *lang.Env) (lang.Value, error) {
	v, err := env.Lookup("function")
	if err != nil {
		return nil, err
	}

	fn, ok := v.(*lang.Function)
	if !ok {
		return nil, database.ErrDatabase.Wrap(
			errors.New("register_network_handler expected a function as argument"),
		)
	}

	l.Register(fn)

	return nil, nil
}

// builtinParseUpdate returns the [id, column, value] triple of a message.
func builtinParseUpdate(_ context.Context, env *lang.Env) (lang.Value, error) {
	v, err := env.Lookup("message")
	if err != nil {
		return nil, err
	}

	msg, ok := v.(lang.String)
	if !ok {
		return nil, lang.ErrInvalidOperation.Wrap(
			errors.New("parse_update expected a string as argument"),
		)
	}

	u, err := ParseUpdate(string(msg))
	if err != nil {
		return nil, err
	}

	return lang.NewList(u.ID, lang.String(u.Column), u.Value), nil
}
