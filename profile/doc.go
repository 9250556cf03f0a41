// Package profile provides optional runtime profiling for the santa
// interpreter.
//
// # Overview
//
// This package integrates [github.com/pkg/profile] to provide runtime profiling
// with conditional compilation support. Profiling must be enabled at build
// time using the "pprof" build tag:
//
//	go build -tags pprof .
//
// When built without the tag, [Profiler.Start] is a no-op and [Modes] is
// empty.
//
// # Available Profiling Modes
//
//   - allocs:    Memory allocation profiling (all allocations)
//   - block:     Block (synchronization) profiling
//   - clock:     Wall-clock profiling
//   - cpu:       CPU profiling
//   - goroutine: Goroutine profiling
//   - heap:      Heap memory profiling (live allocations)
//   - mem:       General memory profiling
//   - mutex:     Mutex contention profiling
//   - thread:    Thread creation profiling
//   - trace:     Execution trace profiling
//
// # Usage
//
//	p := profile.Profiler{Mode: "cpu", Path: "/tmp/profiles", Quiet: true}
//	defer p.Start().Stop()
//
// From the command line:
//
//	santa --pprof-mode cpu run slow.santa
//	go tool pprof -http=: $XDG_CACHE_HOME/santa/pprof/cpu.pprof
//
// Profile files are named after the profiling mode (cpu.pprof, mem.pprof).
package profile
