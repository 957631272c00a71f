// Package render produces the final program text from a
// [compiler.RenderContext] using the embedded program template.
package render

import (
	"bytes"
	"context"
	_ "embed"
	"text/template"

	"github.com/ardnew/qjsc/compiler"
)

//go:embed template.js
var programText string

//nolint:gochecknoglobals
var funcs = template.FuncMap{"quote": compiler.QuoteString}

// Template renders programs. It is safe for concurrent use.
type Template struct {
	tmpl *template.Template
}

// New returns the default program template.
func New() *Template {
	return &Template{
		tmpl: template.Must(template.New("template.js").Funcs(funcs).Parse(programText)),
	}
}

// Parse returns a template for custom program text. The text is executed
// with a [compiler.RenderContext] and should contain
// [compiler.InitPlaceholder] where platform initialization belongs. The
// function "quote" formats a string as a string literal.
func Parse(text string) (*Template, error) {
	t, err := template.New("program").Funcs(funcs).Parse(text)
	if err != nil {
		return nil, err
	}

	return &Template{tmpl: t}, nil
}

// Render implements [compiler.Renderer].
func (t *Template) Render(ctx context.Context, rc compiler.RenderContext) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	var buf bytes.Buffer

	if err := t.tmpl.Execute(&buf, rc); err != nil {
		return "", err
	}

	return buf.String(), nil
}
