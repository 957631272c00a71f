package compiler

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve(t *testing.T) {
	idx := index{
		"a.b":  {"Foo": {}, "Bar": {}},
		"x.b":  {"Foo": {}},
		"core": {"Foo": {}, "Item": {}},
		"b":    {"Bar": {}},
		"a.c":  {"Bar": {}},
	}

	tests := []struct {
		name    string
		current string
		ref     string
		want    string
		err     error
	}{
		{name: "single candidate", current: "z", ref: "Item", want: "core"},
		{name: "local preferred", current: "a.b", ref: "Foo", want: "a.b"},
		{name: "default namespace fallback", current: "z", ref: "Foo", want: "core"},
		{name: "exact hint", current: "z", ref: "x.b.Foo", want: "x.b"},
		{name: "suffix hint", current: "z", ref: "c.Bar", want: "a.c"},
		{name: "hint filters local", current: "a.b", ref: "x.b.Foo", want: "x.b"},
		{name: "exact hint before local", current: "a.b", ref: "b.Bar", want: "b"},
		{name: "not found", current: "z", ref: "Missing", err: ErrComponentNotFound},
		{name: "hint excludes all", current: "z", ref: "q.Foo", err: ErrComponentNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := resolve(idx, tt.current, tt.ref, "core")
			if tt.err != nil {
				require.ErrorIs(t, err, tt.err)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolve_Ambiguous(t *testing.T) {
	idx := index{
		"x.b": {"Foo": {}},
		"a.b": {"Foo": {}},
	}

	_, err := resolve(idx, "z", "Foo", "core")
	require.ErrorIs(t, err, ErrAmbiguousComponent)

	var amb *AmbiguousError
	require.True(t, errors.As(err, &amb))
	assert.Equal(t, []string{"a.b.Foo", "x.b.Foo"}, amb.Candidates)
	assert.Contains(t, err.Error(), "a.b.Foo x.b.Foo")

	// Suffix hint matching both packages is still ambiguous.
	_, err = resolve(idx, "z", "b.Foo", "core")
	require.ErrorIs(t, err, ErrAmbiguousComponent)
}

func TestSession_Find_Marks(t *testing.T) {
	s := newSession(t)
	register(t, s,
		[2]string{"a.b.Foo", ""},
		[2]string{"x.b.Foo", ""},
		[2]string{"core.Foo", ""},
	)

	got, err := s.Lookup("a.b", "Foo")
	require.NoError(t, err)
	assert.Equal(t, "a.b.Foo", got)
	assert.Empty(t, s.Reachable())

	got, err = s.Find("z", "Foo")
	require.NoError(t, err)
	assert.Equal(t, "core.Foo", got)
	assert.Equal(t, []string{"core.Foo"}, s.Reachable())
	assert.Contains(t, s.used, "core")
}

func TestSession_Find_Root(t *testing.T) {
	s := newSession(t)

	for _, ref := range []string{"CoreObject", "core.CoreObject", ""} {
		got, err := s.Find("anything", ref)
		require.NoError(t, err)
		assert.Equal(t, DefaultRootType, got)
	}

	assert.Empty(t, s.Reachable())
	assert.Empty(t, s.used)
}

func TestSession_Find_CustomRoot(t *testing.T) {
	s := newSession(t, WithRootType("base.Object"))

	got, err := s.Find("", "Object")
	require.NoError(t, err)
	assert.Equal(t, "base.Object", got)
}

func TestSession_Find_Suggestions(t *testing.T) {
	s := newSession(t)
	register(t, s,
		[2]string{"core.Button", ""},
		[2]string{"core.Item", ""},
	)

	_, err := s.Find("main", "Buton")
	require.ErrorIs(t, err, ErrComponentNotFound)

	var nf *NotFoundError
	require.True(t, errors.As(err, &nf))
	assert.Equal(t, "Buton", nf.Reference)
	assert.Equal(t, "main", nf.Package)
	assert.Contains(t, nf.Suggestions, "core.Button")
	assert.NotContains(t, nf.Suggestions, "core.Item")
	assert.Contains(t, err.Error(), "did you mean core.Button")
}

func TestSession_Find_WithDefaultNamespace(t *testing.T) {
	s := newSession(t, WithDefaultNamespace("controls"))
	register(t, s,
		[2]string{"core.Foo", ""},
		[2]string{"controls.Foo", ""},
	)

	got, err := s.Lookup("z", "Foo")
	require.NoError(t, err)
	assert.Equal(t, "controls.Foo", got)
}
