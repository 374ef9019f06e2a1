package bookroll

import (
	"time"

	"golang.org/x/text/collate"

	"github.com/bookroll/bookroll/pkg/errors"
	"github.com/bookroll/bookroll/pkg/sheets"
	"github.com/bookroll/bookroll/pkg/sources"
)

// config holds the assembled options for a Bookroll instance.
type config struct {
	workbookPath  string
	store         sheets.Store
	names         sources.SheetNames
	curriculumTTL time.Duration
	collator      *collate.Collator
}

func defaultConfig() *config {
	return &config{
		workbookPath: "bookroll.xlsx",
		names:        sources.DefaultSheetNames(),
	}
}

// Option is a function that configures a Bookroll instance.
type Option func(*config) error

// options applies the given options to the instance config.
func (b *bookroll) options(opts ...Option) error {
	for _, opt := range opts {
		if err := opt(b.config); err != nil {
			return err
		}
	}
	return nil
}

// WithWorkbook points the instance at a workbook file on disk.
func WithWorkbook(path string) Option {
	return func(c *config) error {
		if path == "" {
			return &errors.ValidationError{
				Field:   "workbook",
				Message: "cannot be empty",
			}
		}
		c.workbookPath = path
		return nil
	}
}

// WithStore supplies an already-open backing store. The caller keeps
// ownership; Close will not touch it.
func WithStore(store sheets.Store) Option {
	return func(c *config) error {
		if store == nil {
			return &errors.ValidationError{
				Field:   "store",
				Message: "cannot be nil",
			}
		}
		c.store = store
		return nil
	}
}

// WithSheetNames overrides the three source sheet names.
func WithSheetNames(names sources.SheetNames) Option {
	return func(c *config) error {
		c.names = names
		return nil
	}
}

// WithCurriculumTTL overrides how long curriculum reads stay cached.
func WithCurriculumTTL(ttl time.Duration) Option {
	return func(c *config) error {
		c.curriculumTTL = ttl
		return nil
	}
}

// WithCollator overrides the collator used to order merge results.
func WithCollator(collator *collate.Collator) Option {
	return func(c *config) error {
		c.collator = collator
		return nil
	}
}
