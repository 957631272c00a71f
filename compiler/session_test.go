package compiler

import (
	"iter"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ardnew/qjsc/l10n"
)

func TestSession_AddComponent_Duplicate(t *testing.T) {
	s := newSession(t)

	require.NoError(t, s.AddComponent("core.Button", &body{}, true))

	err := s.AddComponent("core.Button", &body{}, true)
	require.ErrorIs(t, err, ErrDuplicateComponent)
	assert.NotErrorIs(t, err, ErrDuplicateImport)
}

func TestSession_AddComponent_Root(t *testing.T) {
	s := newSession(t)

	require.NoError(t, s.AddComponent("main.app", &body{base: "Item"}, false))

	c, ok := s.Component("main.UiApp")
	require.True(t, ok)
	assert.Equal(t, "main", c.Package)
	assert.Equal(t, "UiApp", c.Short)
	assert.False(t, c.Declaration)

	assert.Equal(t, []string{"main.UiApp"}, s.Reachable())
	assert.Equal(t, []string{
		"\tcontext.start(new qml.main.UiApp(context))",
		"\tcontext.run()",
	}, s.Startup())
}

func TestSession_AddComponent_EscapesPackage(t *testing.T) {
	s := newSession(t)

	require.NoError(t, s.AddComponent("controls.default.Button", &body{}, true))
	assert.Equal(t, []string{"controls.default$.Button"}, s.Components())
	assert.Equal(t, []string{"controls.default$"}, s.Packages())
}

func TestSession_AddComponent_NilBody(t *testing.T) {
	err := newSession(t).AddComponent("core.Item", nil, true)
	require.ErrorIs(t, err, ErrInternal)
}

func TestSession_AddImport(t *testing.T) {
	s := newSession(t)

	require.NoError(t, s.AddImport("b.js", "b"))
	require.NoError(t, s.AddImport("a.js", "a"))
	require.ErrorIs(t, s.AddImport("b.js", "again"), ErrDuplicateImport)

	assert.Equal(t, []Import{{Name: "b.js", Code: "b"}, {Name: "a.js", Code: "a"}}, s.Imports())
}

func TestSession_ReserveID(t *testing.T) {
	s := newSession(t)

	assert.Equal(t, "context$1", s.ReserveID("context"))
	assert.Equal(t, "model$1", s.ReserveID("model"))
	assert.Equal(t, "item", s.ReserveID("item"))
	assert.Equal(t, "item$1", s.ReserveID("item"))
	assert.Equal(t, "item$2", s.ReserveID("item"))
	assert.Equal(t, "new$", s.ReserveID("new"))
}

type translation struct {
	lang     string
	contexts []l10n.Context
}

func (tr translation) Name() string                     { return "test.l10n.yaml" }
func (tr translation) Language() string                 { return tr.lang }
func (tr translation) Contexts() iter.Seq[l10n.Context] { return slices.Values(tr.contexts) }

func TestSession_AddTranslation(t *testing.T) {
	s := newSession(t)

	require.NoError(t, s.AddTranslation(translation{}))
	assert.Empty(t, s.L10n())

	require.NoError(t, s.AddTranslation(translation{
		lang: "ru",
		contexts: []l10n.Context{{Name: "App", Messages: []l10n.Message{
			{Source: "Hi", State: l10n.StateJustObsoleted, Text: "Привет"},
		}}},
	}))
	assert.Equal(t, l10n.Table{"ru": {"Hi": {"App": "Привет"}}}, s.L10n())
}

func TestSessions_AreIndependent(t *testing.T) {
	a, b := newSession(t), newSession(t)

	register(t, a, [2]string{"core.Item", ""})

	_, err := b.Lookup("", "Item")
	require.ErrorIs(t, err, ErrComponentNotFound)
}
