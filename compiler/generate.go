package compiler

import (
	"context"
	"log/slog"
	"strings"

	"github.com/ardnew/qjsc/compiler/macro"
	"github.com/ardnew/qjsc/manifest"
)

// InitPlaceholder is replaced in the rendered program with the platform
// initialization text.
const InitPlaceholder = "/* ${init.js} */"

// RenderContext is everything a [Renderer] needs to produce the program.
type RenderContext struct {
	NS          string
	App         string
	Prologue    string
	Imports     string
	Manifest    string
	Startup     string
	L10n        string // JSON
	ContextType string
	BuildID     string
	Components  []Generated
	Strict      bool
	Release     bool
}

// Renderer turns a [RenderContext] into program text.
type Renderer interface {
	Render(ctx context.Context, rc RenderContext) (string, error)
}

// RendererFunc adapts a function to [Renderer].
type RendererFunc func(ctx context.Context, rc RenderContext) (string, error)

// Render calls f.
func (f RendererFunc) Render(ctx context.Context, rc RenderContext) (string, error) {
	return f(ctx, rc)
}

// GenerateOptions controls [Session.Generate].
type GenerateOptions struct {
	// Manifest holds the nested application properties.
	Manifest map[string]any
	// ManifestEnv, if non-nil, enables "=" expressions in manifest values.
	// The variables release, strict, ns, app, and buildId are added.
	ManifestEnv map[string]any
	// InitJS is the platform initialization text.
	InitJS  string
	Strict  bool
	Release bool
}

// Generate runs the whole pipeline for the application app and returns the
// final program text.
func (s *Session) Generate(
	ctx context.Context,
	app string,
	r Renderer,
	opts GenerateOptions,
) (string, error) {
	logger := s.log.With(slog.String("app", app))
	logger.InfoContext(ctx, "generating",
		slog.Int("components", len(s.components)),
		slog.Int("imports", len(s.imports)),
	)

	initJS, err := macro.Expand(opts.InitJS)
	if err != nil {
		return "", ErrGenerate.With(slog.String("source", "init")).Wrap(err)
	}

	decls, err := manifest.Flatten(opts.Manifest, s.manifestOptions(app, opts)...)
	if err != nil {
		return "", ErrGenerate.Wrap(err)
	}

	if err := s.ScanUsing(); err != nil {
		return "", err
	}

	components, err := s.GenerateComponents(ctx)
	if err != nil {
		return "", err
	}

	prologue, err := s.Prologue()
	if err != nil {
		return "", err
	}

	l10n, err := s.l10n.JSON()
	if err != nil {
		return "", ErrInternal.Wrap(err)
	}

	contextType, err := s.ContextType()
	if err != nil {
		return "", err
	}

	text, err := r.Render(ctx, RenderContext{
		NS:          s.ns,
		App:         app,
		Prologue:    prologue,
		Imports:     s.ImportsText(),
		Manifest:    manifest.Text(decls),
		Startup:     strings.Join(s.startup, "\n"),
		L10n:        l10n,
		ContextType: contextType,
		BuildID:     s.buildID,
		Components:  components,
		Strict:      opts.Strict,
		Release:     opts.Release,
	})
	if err != nil {
		return "", ErrRender.Wrap(err)
	}

	text = strings.ReplaceAll(text, InitPlaceholder, initJS)

	text, err = macro.Expand(text)
	if err != nil {
		return "", ErrGenerate.Wrap(err)
	}

	logger.DebugContext(ctx, "generated",
		slog.Int("emitted", len(components)),
		slog.Int("bytes", len(text)),
	)

	return text, nil
}

func (s *Session) manifestOptions(app string, opts GenerateOptions) []manifest.Option {
	mo := []manifest.Option{manifest.WithEscape(EscapeID)}

	if opts.ManifestEnv != nil {
		env := make(map[string]any, len(opts.ManifestEnv)+5)
		for k, v := range opts.ManifestEnv {
			env[k] = v
		}

		env["release"] = opts.Release
		env["strict"] = opts.Strict
		env["ns"] = s.ns
		env["app"] = app
		env["buildId"] = s.buildID

		mo = append(mo, manifest.WithExpressions(env))
	}

	return mo
}
