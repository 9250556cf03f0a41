//go:build pprof

package profile

import (
	"maps"
	"slices"
	"sync"

	"github.com/pkg/profile"

	_ "net/http/pprof" // register HTTP handlers
)

// Modes returns the list of supported profiling modes when built with the
// pprof build tag.
var Modes = sync.OnceValue(
	func() []string {
		return slices.Sorted(maps.Keys(mode))
	},
)

var mode = map[string]func(*profile.Profile){
	"block":     profile.BlockProfile,
	"cpu":       profile.CPUProfile,
	"clock":     profile.ClockProfile,
	"goroutine": profile.GoroutineProfile,
	"mem":       profile.MemProfile,
	"allocs":    profile.MemProfileAllocs,
	"heap":      profile.MemProfileHeap,
	"mutex":     profile.MutexProfile,
	"thread":    profile.ThreadcreationProfile,
	"trace":     profile.TraceProfile,
}

// option appends a [profile.Profile] setting derived from a Profiler field.
type option func(p Profiler, opts []func(*profile.Profile)) []func(*profile.Profile)

func withMode(p Profiler, opts []func(*profile.Profile)) []func(*profile.Profile) {
	if fn, ok := mode[p.Mode]; ok {
		opts = append(opts, fn)
	}

	return opts
}

func withPath(p Profiler, opts []func(*profile.Profile)) []func(*profile.Profile) {
	if p.Path != "" {
		opts = append(opts, profile.ProfilePath(p.Path))
	}

	return opts
}

func withQuiet(p Profiler, opts []func(*profile.Profile)) []func(*profile.Profile) {
	if p.Quiet {
		opts = append(opts, profile.Quiet)
	}

	return opts
}

// withoutHook keeps pkg/profile from installing its own SIGINT handler.
// The CLI stops the profiler when its context is done.
func withoutHook(_ Profiler, opts []func(*profile.Profile)) []func(*profile.Profile) {
	return append(opts, profile.NoShutdownHook)
}

func start(p Profiler) Stopper {
	opts := withMode(p, nil)
	if len(opts) == 0 {
		return ignore{}
	}

	for _, o := range []option{withPath, withQuiet, withoutHook} {
		opts = o(p, opts)
	}

	return profile.Start(opts...)
}
