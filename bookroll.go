// Package bookroll ties the textbook-reporting pipeline together: a
// workbook-backed store, the three source tiers, the reconciliation
// engine, and editing sessions over the merged view.
package bookroll

import (
	"context"
	"fmt"

	"github.com/bookroll/bookroll/pkg/reconciler"
	"github.com/bookroll/bookroll/pkg/session"
	"github.com/bookroll/bookroll/pkg/sheets"
	"github.com/bookroll/bookroll/pkg/sources"
)

// Bookroll is the top-level entry point for callers embedding the
// reconciliation pipeline.
type Bookroll interface {
	// Merge reconciles one query scope into an ordered view.
	Merge(ctx context.Context, q reconciler.Query) (*reconciler.Result, error)

	// Preview reconciles a whole department without padding.
	Preview(ctx context.Context, department string, useHistory bool, period string) (*reconciler.Result, error)

	// Periods lists the historical school years available for merging,
	// newest first, excluding the given current year.
	Periods(ctx context.Context, currentYear string) ([]string, error)

	// SyncHistory copies one department's rows for a period into the
	// submission sheet, returning how many were written.
	SyncHistory(ctx context.Context, department, period, schoolYear string) (int, error)

	// Session starts an editing session for a scope. Feed it a merged
	// view with SetTable; its Save and Delete take the Writer.
	Session(scope session.Scope) *session.Session

	// Writer exposes the submission writer for session saves.
	Writer() *sources.Writer

	// Close releases the backing store.
	Close() error
}

// bookroll is the internal implementation of the Bookroll interface.
type bookroll struct {
	config *config
	store  sheets.Store
	reader *sources.Reader
	writer *sources.Writer
	engine reconciler.Reconciler
}

// New creates a Bookroll instance with the given options.
func New(opts ...Option) (Bookroll, error) {
	b := &bookroll{config: defaultConfig()}

	if err := b.options(opts...); err != nil {
		return nil, fmt.Errorf("applying options: %w", err)
	}

	// Use the provided store or open the configured workbook
	if b.config.store != nil {
		b.store = b.config.store
	} else {
		store, err := sheets.OpenWorkbook(b.config.workbookPath)
		if err != nil {
			return nil, fmt.Errorf("opening workbook: %w", err)
		}
		b.store = store
	}

	readerOpts := []sources.ReaderOption{
		sources.WithSheetNames(b.config.names),
	}
	if b.config.curriculumTTL > 0 {
		readerOpts = append(readerOpts, sources.WithCurriculumTTL(b.config.curriculumTTL))
	}
	b.reader = sources.NewReader(b.store, readerOpts...)
	b.writer = sources.NewWriter(b.store, sources.WithWriterSheetNames(b.config.names))

	engineOpts := []reconciler.Option{}
	if b.config.collator != nil {
		engineOpts = append(engineOpts, reconciler.WithCollator(b.config.collator))
	}
	engine, err := reconciler.New(b.reader, engineOpts...)
	if err != nil {
		return nil, fmt.Errorf("creating reconciler: %w", err)
	}
	b.engine = engine

	return b, nil
}

// Merge reconciles one query scope into an ordered view.
func (b *bookroll) Merge(ctx context.Context, q reconciler.Query) (*reconciler.Result, error) {
	return b.engine.Merge(ctx, q)
}

// Preview reconciles a whole department without padding.
func (b *bookroll) Preview(ctx context.Context, department string, useHistory bool, period string) (*reconciler.Result, error) {
	return b.engine.Preview(ctx, department, useHistory, period)
}

// Periods lists the historical school years available for merging.
func (b *bookroll) Periods(ctx context.Context, currentYear string) ([]string, error) {
	return b.reader.HistoryPeriods(ctx, currentYear)
}

// SyncHistory copies one department's rows for a period into the
// submission sheet.
func (b *bookroll) SyncHistory(ctx context.Context, department, period, schoolYear string) (int, error) {
	return sources.SyncHistory(ctx, b.reader, b.writer, department, period, schoolYear)
}

// Session starts an editing session for a scope.
func (b *bookroll) Session(scope session.Scope) *session.Session {
	return session.NewSession(scope)
}

// Writer exposes the submission writer for session saves.
func (b *bookroll) Writer() *sources.Writer {
	return b.writer
}

// Close releases the backing store when we own it.
func (b *bookroll) Close() error {
	if closer, ok := b.store.(interface{ Close() error }); ok && b.config.store == nil {
		return closer.Close()
	}
	return nil
}
