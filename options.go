package arena

import "go.uber.org/zap"

// Option configures an Arena.
type Option func(*options)

type options struct {
	logger *zap.Logger
}

// WithLogger sets the logger used for debug events such as rejected
// pushes, failed batch constructors, resets and releases.
// A nil logger disables logging.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

func buildOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = zap.NewNop()
	}
	return o
}
