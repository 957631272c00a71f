// Package log provides the structured logger used throughout qjsc.
//
// It is a thin layer over [log/slog] configured with functional options:
//
//	logger := log.Make(os.Stderr,
//		log.WithLevel(log.LevelDebug),
//		log.WithFormat(log.FormatText),
//		log.WithCaller(true))
//
//	logger.Debug("component registered", slog.String("name", "core.Item"))
//
// A package-level default logger backs the [Debug], [Info], [Warn], [Error]
// (and *Context) functions. The CLI reconfigures it with [Config] as flags are
// parsed, so even errors raised during flag parsing are logged in the
// requested format.
//
// Levels are [LevelTrace], [LevelDebug], [LevelInfo], [LevelWarn] and
// [LevelError]. Output formats are [FormatText] and [FormatJSON]; text output
// may be colourised with [WithPretty].
package log
