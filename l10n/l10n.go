// Package l10n collects translated strings into the table embedded in the
// generated program.
package l10n

import (
	"encoding/json"
	"iter"
	"log/slog"
	"strings"
)

// StateJustObsoleted marks a message whose source text was recently
// superseded. Only messages in this state are carried into the table; the
// runtime uses them to translate strings whose source text no longer exists
// in the current declarations.
const StateJustObsoleted = "just-obsoleted"

// Message is a single translatable entry.
type Message struct {
	Source string
	State  string
	Text   string
}

// Context groups the messages of one translation context (usually a
// component name).
type Context struct {
	Name     string
	Messages []Message
}

// Source is a parsed translation file. The file format is owned by the
// caller.
type Source interface {
	// Name identifies the source in diagnostics, e.g. its file path.
	Name() string
	// Language returns the target language, or "" if the source declares
	// none.
	Language() string
	// Contexts iterates over the translation contexts in file order.
	Contexts() iter.Seq[Context]
}

// Table maps language -> source text -> context name -> translated text.
type Table map[string]map[string]map[string]string

// ErrNoLanguage is returned by [Table.Merge] for a source without a target
// language. It is the only recoverable condition of a compilation: callers
// log it and continue.
var ErrNoLanguage = &Error{msg: "no language in translation, translation ignored"}

// Error is a translation merge error carrying the offending source name.
type Error struct {
	msg    string
	source string
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.source == "" {
		return e.msg
	}

	return e.msg + ": " + e.source
}

// Is matches any *Error with the same message.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)

	return ok && t.msg == e.msg
}

// LogValue implements slog.LogValuer.
func (e *Error) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("error", e.msg),
		slog.String("source", e.source),
	)
}

// Merge records every just-obsoleted message of src under the source's
// language. A source without a language returns an error matching
// [ErrNoLanguage] and leaves the table untouched. Merging a language a
// second time replaces its previous entries.
func (t Table) Merge(src Source) error {
	lang := strings.TrimSpace(src.Language())
	if lang == "" {
		return &Error{msg: ErrNoLanguage.msg, source: src.Name()}
	}

	data := make(map[string]map[string]string)

	for ctx := range src.Contexts() {
		for _, msg := range ctx.Messages {
			if msg.State != StateJustObsoleted {
				continue
			}

			texts, ok := data[msg.Source]
			if !ok {
				texts = make(map[string]string)
				data[msg.Source] = texts
			}

			texts[ctx.Name] = msg.Text
		}
	}

	if len(data) > 0 {
		t[lang] = data
	}

	return nil
}

// JSON encodes the table with sorted keys. A nil or empty table encodes
// as "{}".
func (t Table) JSON() (string, error) {
	if len(t) == 0 {
		return "{}", nil
	}

	b, err := json.Marshal(map[string]map[string]map[string]string(t))
	if err != nil {
		return "", err
	}

	return string(b), nil
}
