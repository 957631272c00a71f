package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/google/uuid"

	"github.com/ardnew/qjsc/compiler"
	"github.com/ardnew/qjsc/log"
	"github.com/ardnew/qjsc/manifest"
	"github.com/ardnew/qjsc/render"
)

// randomBuildID requests a random build identifier.
const randomBuildID = "random"

// Build compiles the project into one program.
type Build struct {
	App      string `arg:"" default:"main" help:"Application name"                                        optional:""`
	Output   string `       default:"-"    help:"Output file or '-' for stdout"                                       short:"o"`
	Manifest string `                      help:"YAML manifest of application properties"                            short:"m" type:"existingfile"`
	BuildID  string `                      help:"Build identifier ('random' for a UUID, default content hash)"   name:"build-id"`
	Strict   bool   `       default:"true" help:"Emit strict mode directive"                                                             negatable:""`
	Release  bool   `                      help:"Omit debug-only code"                                                short:"r"`
	Eval     bool   `       default:"true" help:"Evaluate '=' expressions in manifest values"                                           negatable:""`
}

// Run executes the build command.
func (b *Build) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	s, tree, err := load(ctx, b.buildID())
	if err != nil {
		return err
	}

	m, err := b.manifest(ctx)
	if err != nil {
		return err
	}

	opts := compiler.GenerateOptions{
		Manifest: m,
		InitJS:   tree.InitJS,
		Strict:   b.Strict,
		Release:  b.Release,
	}

	if b.Eval {
		opts.ManifestEnv = map[string]any{"env": environ()}
	}

	text, err := s.Generate(ctx, b.App, render.New(), opts)
	if err != nil {
		return compiler.WrapError(err).With(slog.String("command", "build"))
	}

	err = b.write(ctx, text)
	if err != nil {
		return err
	}

	log.InfoContext(ctx, "build complete",
		slog.String("app", b.App),
		slog.String("output", b.Output),
		slog.Int("bytes", len(text)),
		slog.Int("components", len(s.Reachable())),
	)

	return nil
}

func (b *Build) buildID() string {
	if b.BuildID == randomBuildID {
		return uuid.NewString()
	}

	return b.BuildID
}

func (b *Build) manifest(ctx context.Context) (map[string]any, error) {
	if b.Manifest == "" {
		return nil, nil //nolint:nilnil
	}

	file, err := os.Open(b.Manifest)
	if err != nil {
		return nil, ErrLoadManifest.With(slog.String("file", b.Manifest)).Wrap(err)
	}
	defer file.Close()

	m, err := manifest.Load(ctx, file)
	if err != nil {
		return nil, ErrLoadManifest.With(slog.String("file", b.Manifest)).Wrap(err)
	}

	return m, nil
}

func (b *Build) write(ctx context.Context, text string) error {
	if b.Output == "-" {
		_, err := fmt.Fprint(outputFrom(ctx), text)
		if err != nil {
			return ErrWriteOutput.Wrap(err)
		}

		return nil
	}

	err := os.WriteFile(b.Output, []byte(text), 0o644) //nolint:gosec
	if err != nil {
		return ErrWriteOutput.With(slog.String("file", b.Output)).Wrap(err)
	}

	return nil
}

// environ returns the process environment as a map.
func environ() map[string]string {
	env := make(map[string]string)

	for _, kv := range os.Environ() {
		if k, v, ok := strings.Cut(kv, "="); ok {
			env[k] = v
		}
	}

	return env
}
