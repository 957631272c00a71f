package cmd

import (
	"context"

	"github.com/ardnew/qjsc/cli/cmd/explore"
	"github.com/ardnew/qjsc/compiler"
	"github.com/ardnew/qjsc/log"
)

// Explore resolves component references interactively.
type Explore struct {
	From string `help:"Initial package references are seen from" short:"f"`
}

// Run executes the explore command.
func (e *Explore) Run(ctx context.Context) error {
	s, _, err := load(ctx, "")
	if err != nil {
		return err
	}

	var cacheDir string
	if ktx := kongContextFrom(ctx); ktx != nil {
		cacheDir = ktx.Model.Vars()[CacheIdentifier]
	}

	return explore.Run(ctx, s, explore.Options{
		From:     compiler.EscapePackage(e.From),
		CacheDir: cacheDir,
		Logger:   log.Default(),
	})
}
