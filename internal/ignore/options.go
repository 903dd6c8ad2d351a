package ignore

import "github.com/bethropolis/robotfiles/internal/utils"

type parseOptions struct {
	logger utils.Logger
}

// Option configures how patterns are parsed into a Spec.
type Option func(*parseOptions)

// WithLogger reports patterns that yield no rule at debug level.
func WithLogger(logger utils.Logger) Option {
	return func(o *parseOptions) {
		if logger != nil {
			o.logger = logger
		}
	}
}

func makeParseOptions(opts []Option) parseOptions {
	o := parseOptions{logger: utils.NoopLogger{}}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
