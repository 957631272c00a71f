package log

// Option changes one setting of a logger configuration. Options are applied
// in order, so a later option overrides an earlier one.
type Option func(config) config

func apply(c config, opts ...Option) config {
	for _, opt := range opts {
		if opt != nil {
			c = opt(c)
		}
	}

	return c
}
