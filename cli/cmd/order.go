package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ardnew/qjsc/compiler"
)

// Order prints the components that would be emitted, in emission order.
type Order struct {
	All bool `help:"List every registered component instead, sorted" short:"a"`
}

// Run executes the order command.
func (o *Order) Run(ctx context.Context) error {
	s, _, err := load(ctx, "")
	if err != nil {
		return err
	}

	names := s.Components()

	if !o.All {
		names, err = s.Order(ctx)
		if err != nil {
			return compiler.WrapError(err).With(slog.String("command", "order"))
		}
	}

	w := outputFrom(ctx)

	for _, name := range names {
		_, err = fmt.Fprintln(w, name)
		if err != nil {
			return ErrWriteOutput.Wrap(err)
		}
	}

	return nil
}
