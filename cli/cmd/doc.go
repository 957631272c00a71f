// Package cmd implements the qjsc subcommands.
//
// Every command loads the project directories carried by the context (see
// [WithProject]) into a fresh compiler session before doing its work.
package cmd

//nolint:gochecknoglobals
var (
	// CacheIdentifier is the kong variable identifier containing the path to
	// the runtime cache directory.
	CacheIdentifier = "cache"

	// ConfigIdentifier is the kong variable identifier containing the path to
	// the user configuration file.
	ConfigIdentifier = "config"
)
