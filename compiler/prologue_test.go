package compiler

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrologue_EachPrefixOnce(t *testing.T) {
	s := newSession(t)
	s.mark("core.widgets.forms.Input", "core.widgets.forms")
	s.mark("core.Item", "core")
	s.mark("core.widgets.Button", "core.widgets")

	got, err := s.Prologue()
	require.NoError(t, err)

	assert.Equal(t, strings.Join([]string{
		"if (!_globals.core) /** @const */ _globals.core = {}",
		"if (!_globals.core.widgets) /** @const */ _globals.core.widgets = {}",
		"if (!_globals.core.widgets.forms) /** @const */ _globals.core.widgets.forms = {}",
	}, "\n"), got)
}

func TestPrologue_SortedAndEscaped(t *testing.T) {
	s := newSession(t)
	s.mark("zeta.Z", "zeta")
	s.mark("alpha.default.A", "alpha.default")
	s.mark("alpha.B", "alpha")
	s.mark("Root", "")

	got, err := s.Prologue()
	require.NoError(t, err)

	assert.Equal(t, strings.Join([]string{
		"if (!_globals.alpha) /** @const */ _globals.alpha = {}",
		"if (!_globals.alpha.default$) /** @const */ _globals.alpha.default$ = {}",
		"if (!_globals.zeta) /** @const */ _globals.zeta = {}",
	}, "\n"), got)
}

func TestPrologue_EmptySegment(t *testing.T) {
	s := newSession(t)
	s.mark("a..Broken", "a.")

	_, err := s.Prologue()
	require.ErrorIs(t, err, ErrInternal)
}

func TestPrologue_Imports(t *testing.T) {
	s := newSession(t)
	require.NoError(t, s.AddImport("utils/string.js", "exports.trim = 1"))
	require.NoError(t, s.AddImport("core/core.js", "exports.core = 1"))

	got, err := s.Prologue()
	require.NoError(t, err)

	assert.Equal(t, "if (!_globals.core) /** @const */ _globals.core = {}\n"+
		"if (!_globals.utils) /** @const */ _globals.utils = {}\n"+
		"_globals.core.core = (function() {/** @const */\nvar exports = _globals;\n"+
		"//=====[import core/core.js]=====================\n\n"+
		"exports.core = 1\nreturn exports;\n} )()", got)

	assert.Equal(t, "_globals.utils.string = (function() {/** @const */\nvar exports = {};\n"+
		"//=====[import utils/string.js]=====================\n\n"+
		"exports.trim = 1\nreturn exports;\n} )()\n", s.ImportsText())
}

func TestImportsText_Order(t *testing.T) {
	s := newSession(t)
	require.NoError(t, s.AddImport("b.js", "b"))
	require.NoError(t, s.AddImport("a.js", "a"))

	text := s.ImportsText()
	assert.Less(t, strings.Index(text, "_globals.b ="), strings.Index(text, "_globals.a ="))
}
