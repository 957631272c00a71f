package decl

import (
	"context"
	"encoding/json"
	"fmt"
	"iter"
	"log/slog"
	"maps"
	"slices"

	"github.com/goccy/go-yaml"

	"github.com/ardnew/qjsc/l10n"
	"github.com/ardnew/qjsc/pkg"
)

// File is a parsed "*.qjs.yaml" declaration file.
type File struct {
	Path       string      `yaml:"-"`
	Package    string      `yaml:"package"`
	Components []Component `yaml:"components"`
}

// Component is one declared component.
type Component struct {
	Properties  map[string]any `yaml:"properties,omitempty"`
	Declaration *bool          `yaml:"declaration,omitempty"`
	Name        string         `yaml:"name"`
	Base        string         `yaml:"base,omitempty"`
	Uses        []string       `yaml:"uses,omitempty"`
	Children    []Child        `yaml:"children,omitempty"`
}

// IsDeclaration reports whether the component is a library declaration
// rather than the application root. Components are declarations unless
// stated otherwise.
func (c Component) IsDeclaration() bool {
	return c.Declaration == nil || *c.Declaration
}

// Child is a component instance owned by its parent.
type Child struct {
	Properties map[string]any `yaml:"properties,omitempty"`
	ID         string         `yaml:"id,omitempty"`
	Type       string         `yaml:"type"`
}

// Property is a named property with its expression text.
type Property struct {
	Name  string
	Value string
}

// sortedProperties returns m as a slice sorted by name. String values are
// expression text; other scalars and collections are JSON encoded.
func sortedProperties(m map[string]any) ([]Property, error) {
	out := make([]Property, 0, len(m))

	for _, k := range slices.Sorted(maps.Keys(m)) {
		var value string

		switch v := m[k].(type) {
		case string:
			value = v
		default:
			b, err := json.Marshal(v)
			if err != nil {
				return nil, fmt.Errorf("property %s: %w", k, err)
			}

			value = string(b)
		}

		out = append(out, Property{Name: k, Value: value})
	}

	return out, nil
}

// ParseFile decodes a declaration file.
func ParseFile(ctx context.Context, path string, data []byte) (*File, error) {
	var f File

	if err := yaml.UnmarshalContext(ctx, data, &f, yaml.DisallowUnknownField()); err != nil {
		return nil, pkg.ErrParse.Wrap(err).Wrapf("%s", path)
	}

	f.Path = path

	for i, c := range f.Components {
		if c.Name == "" {
			return nil, pkg.ErrInvalidFormat.Wrapf("%s: component %d has no name", path, i)
		}

		for _, ch := range c.Children {
			if ch.Type == "" {
				return nil, pkg.ErrInvalidFormat.Wrapf("%s: child of %s has no type", path, c.Name)
			}
		}
	}

	return &f, nil
}

// Translation is a parsed "*.l10n.yaml" translation source. It implements
// [l10n.Source].
type Translation struct {
	Path    string               `yaml:"-"`
	Lang    string               `yaml:"language,omitempty"`
	Entries []TranslationContext `yaml:"contexts"`
}

// TranslationContext is one translation context of a [Translation].
type TranslationContext struct {
	Name     string               `yaml:"name"`
	Messages []TranslationMessage `yaml:"messages"`
}

// TranslationMessage is one translated message.
type TranslationMessage struct {
	Source string `yaml:"source"`
	State  string `yaml:"state,omitempty"`
	Text   string `yaml:"text"`
}

// ParseTranslation decodes a translation file.
func ParseTranslation(ctx context.Context, path string, data []byte) (*Translation, error) {
	var t Translation

	if err := yaml.UnmarshalContext(ctx, data, &t); err != nil {
		return nil, pkg.ErrParse.Wrap(err).Wrapf("%s", path)
	}

	t.Path = path

	return &t, nil
}

// Name implements [l10n.Source].
func (t *Translation) Name() string { return t.Path }

// Language implements [l10n.Source].
func (t *Translation) Language() string { return t.Lang }

// Contexts implements [l10n.Source].
func (t *Translation) Contexts() iter.Seq[l10n.Context] {
	return func(yield func(l10n.Context) bool) {
		for _, c := range t.Entries {
			msgs := make([]l10n.Message, len(c.Messages))
			for i, m := range c.Messages {
				msgs[i] = l10n.Message{Source: m.Source, State: m.State, Text: m.Text}
			}

			if !yield(l10n.Context{Name: c.Name, Messages: msgs}) {
				return
			}
		}
	}
}

// LogValue implements slog.LogValuer.
func (t *Translation) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("path", t.Path),
		slog.String("language", t.Lang),
		slog.Int("contexts", len(t.Entries)),
	)
}
