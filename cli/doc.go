// Package cli contains the command line interface for qjsc.
//
// # Usage
//
//	qjsc [flags] build [app] [-o out.js]
//	qjsc [flags] resolve [--from pkg] <ref>
//	qjsc [flags] order
//	qjsc [flags] explore
//	qjsc [flags] init [--force]
//
// # Projects
//
// Declarations, imports, and translations are loaded from every directory
// given with --project-dir (default ".") followed by the entries of the
// PATH-like $QJSC_PATH. A .env file in the working directory is loaded first.
//
// # Configuration
//
// Flag defaults are read from ~/.config/qjsc/config.yaml and then from
// qjsc.yaml in the working directory. Both are flat YAML mappings from flag
// name to value. "qjsc init" writes the current flag values to the former.
//
// # Logging Options
//
//   - --log-level: Set minimum log level (trace, debug, info, warn, error)
//   - --log-format: Set log output format (text, json)
//   - --log-time-layout: Set timestamp format (RFC3339, Kitchen, none, ...)
//   - --[no-]log-caller: Include caller information in log output
//   - --[no-]log-pretty: Colourise text output
//
// # Profiling Options
//
// Profiling is only available when built with the pprof build tag:
//
//	go build -tags pprof -o qjsc .
//	qjsc --pprof-mode=cpu build app
package cli
