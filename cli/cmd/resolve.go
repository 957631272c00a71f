package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ardnew/qjsc/compiler"
)

// Resolve prints the fully qualified name of a component reference.
type Resolve struct {
	Ref  string `arg:"" help:"Component reference, e.g. Rectangle or controls.Button"`
	From string `       help:"Package the reference is seen from"                     short:"f"`
}

// Run executes the resolve command.
func (r *Resolve) Run(ctx context.Context) error {
	s, _, err := load(ctx, "")
	if err != nil {
		return err
	}

	name, err := s.Lookup(compiler.EscapePackage(r.From), r.Ref)
	if err != nil {
		return compiler.WrapError(err).With(
			slog.String("command", "resolve"),
			slog.String("from", r.From),
		)
	}

	_, err = fmt.Fprintln(outputFrom(ctx), name)
	if err != nil {
		return ErrWriteOutput.Wrap(err)
	}

	return nil
}
