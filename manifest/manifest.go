// Package manifest flattens the nested application manifest into the
// top-level "$manifest$…" variable declarations of the generated program.
package manifest

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/goccy/go-yaml"
)

// Prefix is the name prefix shared by all manifest declarations.
const Prefix = "$manifest"

// exprMarker introduces a string value evaluated as an expression.
const exprMarker = "="

// Declaration is one flattened manifest property.
type Declaration struct {
	Key   string // dotted path, e.g. "a.b"
	Name  string // declared variable, e.g. "$manifest$a$b"
	Value string // JSON encoding of the value
}

// Option is a functional option for [Flatten].
type Option func(config) config

type config struct {
	escape func(string) string
	env    map[string]any
}

// WithEscape sets the function applied to each key segment to make it a
// valid identifier.
func WithEscape(fn func(string) string) Option {
	return func(c config) config {
		c.escape = fn

		return c
	}
}

// WithExpressions enables evaluation of string values beginning with "="
// as expressions over env. For example "= release ? 0 : 3" yields a number.
// Evaluation results must be JSON encodable.
func WithExpressions(env map[string]any) Option {
	return func(c config) config {
		c.env = env

		return c
	}
}

// Flatten walks m depth-first with keys sorted at every level and returns
// one declaration per scalar (non-map) value.
func Flatten(m map[string]any, opts ...Option) ([]Declaration, error) {
	cfg := config{escape: func(s string) string { return s }}
	for _, opt := range opts {
		if opt != nil {
			cfg = opt(cfg)
		}
	}

	var out []Declaration

	if err := cfg.flatten(&out, nil, m); err != nil {
		return nil, err
	}

	return out, nil
}

func (c config) flatten(out *[]Declaration, path []string, m map[string]any) error {
	for _, k := range slices.Sorted(maps.Keys(m)) {
		key := append(slices.Clip(path), k)

		val := m[k]

		if v, ok := val.(string); ok && c.env != nil && strings.HasPrefix(v, exprMarker) {
			r, err := c.eval(strings.TrimPrefix(v, exprMarker))
			if err != nil {
				return fmt.Errorf("manifest %s: %w", strings.Join(key, "."), err)
			}

			val = r
		}

		if sub, ok := val.(map[string]any); ok {
			if err := c.flatten(out, key, sub); err != nil {
				return err
			}

			continue
		}

		value, err := encode(val)
		if err != nil {
			return fmt.Errorf("manifest %s: %w", strings.Join(key, "."), err)
		}

		*out = append(*out, Declaration{
			Key:   strings.Join(key, "."),
			Name:  c.name(key),
			Value: value,
		})
	}

	return nil
}

// encode returns the JSON encoding of v without HTML escaping.
func encode(v any) (string, error) {
	var b strings.Builder

	enc := json.NewEncoder(&b)
	enc.SetEscapeHTML(false)

	if err := enc.Encode(v); err != nil {
		return "", err
	}

	return strings.TrimSuffix(b.String(), "\n"), nil
}

func (c config) name(key []string) string {
	var b strings.Builder

	b.WriteString(Prefix)

	for _, k := range key {
		b.WriteByte('$')
		b.WriteString(c.escape(k))
	}

	return b.String()
}

func (c config) eval(src string) (any, error) {
	prog, err := expr.Compile(strings.TrimSpace(src), expr.Env(c.env))
	if err != nil {
		return nil, err
	}

	return expr.Run(prog, c.env)
}

// Text renders the declarations as variable statements, one per line.
func Text(decls []Declaration) string {
	var b strings.Builder

	for _, d := range decls {
		fmt.Fprintf(&b, "var %s = %s\n", d.Name, d.Value)
	}

	return b.String()
}

// Load decodes a YAML manifest from r.
func Load(ctx context.Context, r io.Reader) (map[string]any, error) {
	var m map[string]any

	if err := yaml.NewDecoder(r).DecodeContext(ctx, &m); err != nil {
		if err == io.EOF { //nolint:errorlint
			return map[string]any{}, nil
		}

		return nil, fmt.Errorf("manifest: %w", err)
	}

	if m == nil {
		m = map[string]any{}
	}

	return normalize(m), nil
}

// normalize converts YAML-decoded nested mappings to map[string]any.
func normalize(m map[string]any) map[string]any {
	for k, v := range m {
		m[k] = normalizeValue(v)
	}

	return m
}

func normalizeValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		return normalize(t)
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, v := range t {
			out[fmt.Sprint(k)] = normalizeValue(v)
		}

		return out
	case []any:
		for i := range t {
			t[i] = normalizeValue(t[i])
		}

		return t
	default:
		return v
	}
}
