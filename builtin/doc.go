// Package builtin provides the core functions every santa program can call:
// print, len, list_push, assert, exit and path_prefix, plus the
// SANTA_VERSION constant.
//
// Builtins are bound into an environment with [Register]. Where a builtin
// touches the outside world (standard output, process exit) the target is
// configurable with functional options, so hosts and tests can capture it:
//
//	var out bytes.Buffer
//	env := lang.NewEnv()
//	err := builtin.Register(env, builtin.WithOutput(&out), builtin.WithExit(func(int) {}))
package builtin
