package hierarchy

import (
	"github.com/rs/zerolog"

	"github.com/agentstation/regionmap/pkg/errors"
)

type options struct {
	logger   *zerolog.Logger
	validate bool
}

func defaultOptions() *options {
	return &options{
		validate: true,
	}
}

// Option is a function that configures a Synthesizer.
type Option func(*options) error

func (o *options) apply(opts ...Option) (*options, error) {
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, err
		}
	}
	return o, nil
}

// WithLogger sets the logger used when the context carries none.
func WithLogger(logger *zerolog.Logger) Option {
	return func(o *options) error {
		if logger == nil {
			return &errors.ValidationError{
				Field:   "logger",
				Message: "cannot be nil",
			}
		}
		o.logger = logger
		return nil
	}
}

// WithValidation enables or disables the final invariant check.
func WithValidation(enabled bool) Option {
	return func(o *options) error {
		o.validate = enabled
		return nil
	}
}
