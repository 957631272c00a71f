package main

//go:generate go tool fieldalignment -fix ./...

import (
	"context"
	"log/slog"
	"os"

	"github.com/ardnew/qjsc/cli"
	"github.com/ardnew/qjsc/log"
)

func main() {
	err := cli.Run(context.Background(), os.Exit, os.Args[1:]...)
	if err != nil {
		log.Error(
			"run failed",
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
