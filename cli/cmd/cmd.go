package cmd

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"github.com/ardnew/qjsc/compiler"
	"github.com/ardnew/qjsc/decl"
	"github.com/ardnew/qjsc/log"
)

type (
	contextKey struct{}
	projectKey struct{}
	outputKey  struct{}
)

// WithContext returns a new context.Context containing the given kong.Context.
func WithContext(ctx context.Context, ktx *kong.Context) context.Context {
	return context.WithValue(ctx, contextKey{}, ktx)
}

func kongContextFrom(ctx context.Context) *kong.Context {
	ktx, ok := ctx.Value(contextKey{}).(*kong.Context)
	if !ok || ktx == nil {
		return nil
	}

	return ktx
}

// Project identifies the inputs of one compilation.
type Project struct {
	// Dirs are the project directories, in search order.
	Dirs []string
	// NS is the global object holding the generated program.
	NS string
}

// WithProject returns a new context.Context carrying p.
func WithProject(ctx context.Context, p Project) context.Context {
	return context.WithValue(ctx, projectKey{}, p)
}

func projectFrom(ctx context.Context) Project {
	p, _ := ctx.Value(projectKey{}).(Project)
	if p.NS == "" {
		p.NS = "qml"
	}

	if len(p.Dirs) == 0 {
		p.Dirs = []string{"."}
	}

	return p
}

// WithOutput returns a new context.Context whose commands print to w
// instead of standard output.
func WithOutput(ctx context.Context, w io.Writer) context.Context {
	return context.WithValue(ctx, outputKey{}, w)
}

func outputFrom(ctx context.Context) io.Writer {
	if w, ok := ctx.Value(outputKey{}).(io.Writer); ok && w != nil {
		return w
	}

	return os.Stdout
}

// load reads the project carried by ctx into a new compiler session.
// An empty buildID selects the content hash of the project.
func load(ctx context.Context, buildID string) (*compiler.Session, *decl.Tree, error) {
	p := projectFrom(ctx)

	tree, err := decl.LoadTree(ctx, p.Dirs...)
	if err != nil {
		return nil, nil, ErrLoadProject.With(slog.Any("dirs", p.Dirs)).Wrap(err)
	}

	if buildID == "" {
		buildID = decl.BuildID(tree)
	}

	s := compiler.New(p.NS, buildID,
		compiler.WithLogger(log.Default().With(slog.String("ns", p.NS))),
	)

	err = decl.Register(s, tree)
	if err != nil {
		return nil, nil, ErrLoadProject.With(slog.Any("dirs", p.Dirs)).Wrap(err)
	}

	log.DebugContext(ctx, "project loaded",
		slog.Int("files", len(tree.Files)),
		slog.Int("imports", len(tree.Imports)),
		slog.Int("translations", len(tree.Translations)),
		slog.String("build_id", buildID),
	)

	return s, tree, nil
}
