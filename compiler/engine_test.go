package compiler

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// app registers a small library plus a root application component.
func app(t *testing.T) (*Session, map[string]*body) {
	t.Helper()

	s := newSession(t)
	bodies := register(t, s,
		[2]string{"core.Context", "CoreObject"},
		[2]string{"core.Item", "CoreObject"},
		[2]string{"core.Rectangle", "Item"},
		[2]string{"core.Text", "Item"},
		[2]string{"core.Unused", "Item"},
	)

	root := &body{base: "Rectangle"}
	require.NoError(t, s.AddComponent("main.app", root, false))

	bodies["main.UiApp"] = root

	return s, bodies
}

func types(gen []Generated) []string {
	out := make([]string, len(gen))
	for i, g := range gen {
		out[i] = g.Type
	}

	return out
}

func TestGenerateComponents_Order(t *testing.T) {
	s, _ := app(t)

	gen, err := s.GenerateComponents(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{
		"core.Context",
		"core.Item",
		"core.Rectangle",
		"main.UiApp",
	}, types(gen))

	assert.Equal(t, Generated{
		Type:      "core.Item",
		Code:      "code core.Item",
		Prototype: "proto core.Item",
	}, gen[1])
}

func TestGenerateComponents_Properties(t *testing.T) {
	s, bodies := app(t)
	bodies["main.UiApp"].refs = []string{"Text"}
	bodies["core.Rectangle"].uses = []string{"Item"}

	gen, err := s.GenerateComponents(context.Background())
	require.NoError(t, err)

	order := types(gen)
	pos := make(map[string]int, len(order))

	for i, name := range order {
		_, dup := pos[name]
		require.False(t, dup, "emitted twice: %s", name)

		pos[name] = i
	}

	for _, name := range order {
		// Resolution of an emitted name is the identity.
		got, err := s.Lookup("", name)
		require.NoError(t, err)
		assert.Equal(t, name, got)

		// Bases precede derived components.
		c, _ := s.Component(name)

		base, err := s.Lookup(c.Package, c.Body.Base())
		require.NoError(t, err)

		if base != DefaultRootType {
			assert.Less(t, pos[base], pos[name], "%s before %s", base, name)
		}
	}

	// Discovered during generation.
	assert.Contains(t, order, "core.Text")
	assert.NotContains(t, order, "core.Unused")
	assert.NotContains(t, order, DefaultRootType)

	// The reachable set is exactly what was emitted.
	assert.ElementsMatch(t, order, s.Reachable())

	for name, b := range bodies {
		if _, ok := pos[name]; ok {
			assert.Equal(t, 1, b.calls, name)
		}
	}
}

func TestGenerateComponents_Rerun(t *testing.T) {
	s, _ := app(t)

	first, err := s.Order(context.Background())
	require.NoError(t, err)

	second, err := s.Order(context.Background())
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestGenerateComponents_BuildIdentifier(t *testing.T) {
	s, bodies := app(t)
	bodies["core.Context"].props = map[string]string{"buildIdentifier": `""`}

	_, err := s.GenerateComponents(context.Background())
	require.NoError(t, err)

	assert.Equal(t, `"build-1"`, bodies["core.Context"].props["buildIdentifier"])
}

func TestGenerateComponents_MissingContext(t *testing.T) {
	s := newSession(t)
	register(t, s, [2]string{"core.Item", ""})

	_, err := s.GenerateComponents(context.Background())
	require.ErrorIs(t, err, ErrComponentNotFound)
}

func TestGenerateComponents_MissingBase(t *testing.T) {
	s, bodies := app(t)
	bodies["core.Rectangle"].base = "Shape"

	_, err := s.GenerateComponents(context.Background())
	require.ErrorIs(t, err, ErrComponentNotFound)
}

func TestGenerateComponents_AmbiguousBase(t *testing.T) {
	s, _ := app(t)
	register(t, s,
		[2]string{"a.Widget", ""},
		[2]string{"b.Widget", ""},
	)
	require.NoError(t, s.AddComponent("main.Form", &body{base: "Widget"}, false))

	_, err := s.GenerateComponents(context.Background())
	require.ErrorIs(t, err, ErrAmbiguousComponent)

	var amb *AmbiguousError
	require.True(t, errors.As(err, &amb))
	assert.Equal(t, []string{"a.Widget", "b.Widget"}, amb.Candidates)
}

func TestGenerateComponents_Cycle(t *testing.T) {
	s := newSession(t)
	register(t, s,
		[2]string{"core.Context", "CoreObject"},
		[2]string{"core.A", "B"},
		[2]string{"core.B", "A"},
	)
	require.NoError(t, s.AddComponent("main.app", &body{base: "A"}, false))

	_, err := s.GenerateComponents(context.Background())
	require.ErrorIs(t, err, ErrInheritanceCycle)
}

func TestGenerateComponents_BodyError(t *testing.T) {
	s, bodies := app(t)
	cause := errors.New("bad property")
	bodies["core.Item"].fail = cause

	_, err := s.GenerateComponents(context.Background())
	require.ErrorIs(t, err, ErrGenerate)
	require.ErrorIs(t, err, cause)
}

func TestGenerateComponents_Canceled(t *testing.T) {
	s, _ := app(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.GenerateComponents(ctx)
	require.ErrorIs(t, err, context.Canceled)
}

func TestScanUsing(t *testing.T) {
	s, _ := app(t)
	require.NoError(t, s.AddImport("utils/text.js", "/* @using { core.Text } */\nvar x = 1"))

	require.NoError(t, s.ScanUsing())

	order, err := s.Order(context.Background())
	require.NoError(t, err)
	assert.Contains(t, order, "core.Text")

	require.NoError(t, s.AddImport("broken.js", "// @using {core.Nope}"))
	require.ErrorIs(t, s.ScanUsing(), ErrComponentNotFound)
}

func TestGenerateComponents_BuildIdentifierLiteral(t *testing.T) {
	s, bodies := app(t)
	s.buildID = "v\U000E0001"
	bodies["core.Context"].props = map[string]string{"buildIdentifier": `""`}

	_, err := s.GenerateComponents(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "\"v\U000E0001\"", bodies["core.Context"].props["buildIdentifier"])
}
