// Package profile provides optional runtime profiling for qjsc.
//
// Profiling uses [github.com/pkg/profile] and is compiled in only with the
// "pprof" build tag:
//
//	go build -tags pprof -o qjsc .
//	qjsc --pprof-mode=cpu build app
//
// Without the tag every [Profiler] is a no-op and [Modes] is empty.
//
// Profile files are written to [Profiler.Path] with names matching the mode
// (e.g. cpu.pprof, mem.pprof) and can be inspected with "go tool pprof".
package profile

// Tag is the build tag required to enable pprof profiling.
const Tag = `pprof`
