package compiler

import "github.com/ardnew/qjsc/log"

// Defaults for a new [Session].
const (
	DefaultRootType         = "core.CoreObject"
	DefaultContextComponent = "core.Context"
	DefaultNamespace        = "core"
)

// Option is a functional option for configuring a [Session].
type Option func(config) config

type config struct {
	logger    log.Logger
	rootType  string
	context   string
	defaultNS string
}

func makeConfig(opts ...Option) config {
	c := config{
		logger:    log.Default(),
		rootType:  DefaultRootType,
		context:   DefaultContextComponent,
		defaultNS: DefaultNamespace,
	}

	for _, opt := range opts {
		if opt != nil {
			c = opt(c)
		}
	}

	return c
}

// WithLogger sets the logger used to trace registration, resolution, and
// emission.
func WithLogger(logger log.Logger) Option {
	return func(c config) config {
		c.logger = logger

		return c
	}
}

// WithRootType sets the fully qualified name of the universal root base
// type. Its short name is the sentinel that resolves without search.
func WithRootType(name string) Option {
	return func(c config) config {
		if name != "" {
			c.rootType = name
		}

		return c
	}
}

// WithContextComponent sets the component used as the first entry point and
// receiving the build identifier.
func WithContextComponent(name string) Option {
	return func(c config) config {
		if name != "" {
			c.context = name
		}

		return c
	}
}

// WithDefaultNamespace sets the package preferred when a reference is
// otherwise ambiguous.
func WithDefaultNamespace(ns string) Option {
	return func(c config) config {
		c.defaultNS = ns

		return c
	}
}
