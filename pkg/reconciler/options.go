package reconciler

import (
	"github.com/rs/zerolog"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/bookroll/bookroll/pkg/errors"
)

// options configures a reconciler.
type options struct {
	collator *collate.Collator
	logger   *zerolog.Logger
}

func defaultOptions() *options {
	return &options{
		collator: collate.New(language.TraditionalChinese),
	}
}

// Option is a function that configures a Reconciler.
type Option func(*options) error

func (options *options) apply(opts ...Option) (*options, error) {
	for _, opt := range opts {
		if err := opt(options); err != nil {
			return nil, err
		}
	}
	return options, nil
}

// newOptions returns reconciler options with default values.
func newOptions(opts ...Option) (*options, error) {
	return defaultOptions().apply(opts...)
}

// WithCollator overrides the collator used for course and category
// ordering. The default collates Traditional Chinese.
func WithCollator(c *collate.Collator) Option {
	return func(o *options) error {
		if c == nil {
			return &errors.ValidationError{
				Field:   "collator",
				Message: "cannot be nil",
			}
		}
		o.collator = c
		return nil
	}
}

// WithLogger sets a fixed logger instead of the one carried by the
// request context.
func WithLogger(logger *zerolog.Logger) Option {
	return func(o *options) error {
		o.logger = logger
		return nil
	}
}
