package compiler

import (
	"log/slog"
	"strings"
)

// Predefined errors (sentinel values). Every failure returned by a [Session]
// matches exactly one of these with [errors.Is].
var (
	ErrDuplicateComponent = NewError("duplicate component")
	ErrDuplicateImport    = NewError("duplicate import")
	ErrComponentNotFound  = NewError("component not found")
	ErrAmbiguousComponent = NewError("ambiguous component")
	ErrInheritanceCycle   = NewError("inheritance cycle")
	ErrInternal           = NewError("internal invariant violation")
	ErrGenerate           = NewError("component generation failed")
	ErrRender             = NewError("template rendering failed")
)

// Error represents an error with optional structured logging attributes.
// It implements both error and slog.LogValuer.
type Error struct {
	msg   string
	err   error
	attrs []slog.Attr
}

// NewError creates a new Error with a message.
func NewError(msg string) *Error {
	return &Error{msg: msg}
}

// WrapError converts err into an *Error, returning err itself when it
// already is one.
func WrapError(err error) *Error {
	if ee, ok := err.(*Error); ok { //nolint:errorlint
		return ee
	}

	return &Error{err: err}
}

// Error implements the error interface.
//
// The message is "<msg>: <err>" when both are set, otherwise whichever one is.
func (e *Error) Error() string {
	part := make([]string, 0, 2)

	if e.msg != "" {
		part = append(part, e.msg)
	}

	if e.err != nil {
		part = append(part, e.err.Error())
	}

	return strings.Join(part, ": ")
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *Error) Unwrap() error { return e.err }

// Is reports whether target is the sentinel e was derived from. Errors built
// with [Error.Wrap] or [Error.With] keep the identity of their origin.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok || t.msg == "" {
		return false
	}

	return t.msg == e.msg && t.err == nil && len(t.attrs) == 0
}

// LogValue implements slog.LogValuer.
func (e *Error) LogValue() slog.Value {
	attrs := make([]slog.Attr, 0, len(e.attrs)+2)

	if e.msg != "" {
		attrs = append(attrs, slog.String("error", e.msg))
	}

	if e.err != nil {
		attrs = append(attrs, slog.String("cause", e.err.Error()))
	}

	return slog.GroupValue(append(attrs, e.attrs...)...)
}

// Wrap creates a new Error wrapping another error.
func (e *Error) Wrap(err error) *Error {
	return &Error{
		msg:   e.msg,
		err:   err,
		attrs: e.attrs,
	}
}

// With adds attributes to the error for structured logging.
// The receiver is not modified.
func (e *Error) With(attrs ...slog.Attr) *Error {
	newAttrs := make([]slog.Attr, len(e.attrs)+len(attrs))
	copy(newAttrs, e.attrs)
	copy(newAttrs[len(e.attrs):], attrs)

	return &Error{
		msg:   e.msg,
		err:   e.err,
		attrs: newAttrs,
	}
}

// AmbiguousError reports a reference that matched several packages with no
// applicable preference. Candidates holds every fully qualified match, sorted,
// so the user can pick one explicitly.
type AmbiguousError struct {
	Reference  string
	Package    string
	Candidates []string
}

// Error implements the error interface.
func (e *AmbiguousError) Error() string {
	return "ambiguous component " + e.Reference +
		", you have to specify one of the packages explicitly: " +
		strings.Join(e.Candidates, " ")
}

// Unwrap returns [ErrAmbiguousComponent].
func (e *AmbiguousError) Unwrap() error { return ErrAmbiguousComponent }

// LogValue implements slog.LogValuer.
func (e *AmbiguousError) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("error", ErrAmbiguousComponent.msg),
		slog.String("reference", e.Reference),
		slog.String("package", e.Package),
		slog.Any("candidates", e.Candidates),
	)
}

// NotFoundError reports a reference that no registered package declares.
// Suggestions lists registered components with a similar name, best first.
type NotFoundError struct {
	Reference   string
	Package     string
	Suggestions []string
}

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	msg := "component " + e.Reference + " was not found"
	if len(e.Suggestions) > 0 {
		msg += " (did you mean " + strings.Join(e.Suggestions, ", ") + "?)"
	}

	return msg
}

// Unwrap returns [ErrComponentNotFound].
func (e *NotFoundError) Unwrap() error { return ErrComponentNotFound }

// LogValue implements slog.LogValuer.
func (e *NotFoundError) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("error", ErrComponentNotFound.msg),
		slog.String("reference", e.Reference),
		slog.String("package", e.Package),
		slog.Any("suggestions", e.Suggestions),
	)
}
