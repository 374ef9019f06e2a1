// Package reconciler merges the three source tiers into one consistent
// view per query. Submission rows are authoritative; history rows fill
// in only where submission is silent; the curriculum template only
// synthesizes placeholders for courses nobody has reported yet. Every
// merged record carries a stable identity and a resolved category, and
// the result order is deterministic for identical inputs.
package reconciler

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"golang.org/x/text/collate"

	"github.com/bookroll/bookroll/pkg/errors"
	"github.com/bookroll/bookroll/pkg/logging"
	"github.com/bookroll/bookroll/pkg/records"
	"github.com/bookroll/bookroll/pkg/sources"
	"github.com/bookroll/bookroll/pkg/tabular"
)

// Reconciler merges submission, history, and curriculum rows into one
// ordered view.
type Reconciler interface {
	// Merge runs a full reconciliation for the query scope.
	Merge(ctx context.Context, q Query) (*Result, error)

	// Preview reconciles the whole department with padding disabled:
	// a preview shows only rows that truly exist in a source, never
	// synthesized blanks.
	Preview(ctx context.Context, department string, useHistory bool, period string) (*Result, error)
}

// reconciler is the default implementation of Reconciler.
type reconciler struct {
	reader   *sources.Reader
	collator *collate.Collator
	logger   *zerolog.Logger
}

// New creates a Reconciler over a source reader.
func New(reader *sources.Reader, opts ...Option) (Reconciler, error) {
	if reader == nil {
		return nil, &errors.ValidationError{
			Field:   "reader",
			Message: "cannot be nil",
		}
	}
	options, err := newOptions(opts...)
	if err != nil {
		return nil, err
	}
	return &reconciler{
		reader:   reader,
		collator: options.collator,
		logger:   options.logger,
	}, nil
}

// mergeContext holds shared state for one reconciliation pass.
type mergeContext struct {
	query  Query
	logger *zerolog.Logger
	result *Result

	curriculum *curriculumIndex

	// identities and courses accumulate what the merged view already
	// represents, so lower tiers never duplicate a record. base holds
	// only the submission identities, which outrank everything.
	identities map[string]struct{}
	base       map[string]struct{}
	courses    map[string]struct{}
	merged     []records.Record
}

// Merge performs reconciliation with a step-by-step flow.
func (r *reconciler) Merge(ctx context.Context, q Query) (*Result, error) {
	// Step 1: validate and initialize
	mctx, err := r.initialize(ctx, q)
	if err != nil {
		return nil, err
	}

	// Step 2: base set from submission
	if err := r.collectSubmission(ctx, mctx); err != nil {
		return nil, err
	}

	// Step 3: history fallback
	if q.UseHistory {
		if err := r.mergeHistory(ctx, mctx); err != nil {
			return nil, err
		}
	}

	// Step 4: curriculum padding
	if q.PadFromCurriculum {
		r.padFromCurriculum(mctx)
	}

	// Step 5: category resolution
	for i := range mctx.merged {
		mctx.merged[i].Category = mctx.curriculum.resolveCategory(mctx.merged[i])
	}

	// Step 6: deterministic ordering
	sortRecords(mctx.merged, r.collator)

	// Step 7: build result
	return r.finish(mctx), nil
}

// Preview widens the scope to the whole department and never pads.
func (r *reconciler) Preview(ctx context.Context, department string, useHistory bool, period string) (*Result, error) {
	return r.Merge(ctx, Query{
		Department: department,
		UseHistory: useHistory,
		Period:     period,
	})
}

// initialize validates the query and loads the curriculum scope. The
// template is read up front because category resolution needs it even
// when padding is off.
func (r *reconciler) initialize(ctx context.Context, q Query) (*mergeContext, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}

	logger := r.logger
	if logger == nil {
		logger = logging.FromContext(ctx)
	}

	curriculum, err := r.reader.Curriculum(ctx)
	if err != nil {
		return nil, err
	}

	return &mergeContext{
		query:      q,
		logger:     logger,
		result:     NewResult(),
		curriculum: newCurriculumIndex(curriculum, q),
		identities: map[string]struct{}{},
		base:       map[string]struct{}{},
		courses:    map[string]struct{}{},
	}, nil
}

// collectSubmission builds the base set. Submission rows always carry
// an identity once created; a blank one cannot be safely reconciled,
// so the row is skipped with a warning.
func (r *reconciler) collectSubmission(ctx context.Context, mctx *mergeContext) error {
	table, err := r.reader.Submission(ctx)
	if err != nil {
		return err
	}

	for _, row := range table.Rows {
		if !mctx.query.matches(row) {
			continue
		}
		rec := records.FromRow(row)
		if rec.Identity == "" {
			mctx.result.Warnings = append(mctx.result.Warnings,
				fmt.Sprintf("submission row for %q has no identity, skipped", rec.Course))
			mctx.result.Metadata.Stats.SkippedBlank++
			mctx.logger.Warn().
				Str("course", rec.Course).
				Msg("Submission row without identity skipped")
			continue
		}
		mctx.append(rec)
		mctx.base[rec.Identity] = struct{}{}
		mctx.result.Metadata.Stats.FromSubmission++
	}
	return nil
}

// mergeHistory appends history rows for the selected period that the
// base set does not already own. An identity already present belongs
// to submission and the history version is dropped. A duplicate
// identity within history itself gets a fresh one minted so both rows
// survive as distinct records.
func (r *reconciler) mergeHistory(ctx context.Context, mctx *mergeContext) error {
	table, err := r.reader.History(ctx)
	if err != nil {
		return err
	}
	if !table.Empty() && !table.Has(tabular.ColSchoolYear) {
		return errors.NewSchemaError(sources.DefaultSheetNames().History, tabular.ColSchoolYear.String())
	}

	for _, row := range table.Rows {
		if !mctx.query.matches(row) {
			continue
		}
		if row.Get(tabular.ColSchoolYear) != mctx.query.Period {
			continue
		}

		rec := records.FromRow(row)
		if _, owned := mctx.base[rec.Identity]; owned {
			continue
		}
		if rec.Identity == "" {
			rec.Identity = records.MintIdentity()
		} else if _, taken := mctx.identities[rec.Identity]; taken {
			old := rec.Identity
			rec.Identity = records.MintIdentity()
			mctx.result.Metadata.Stats.Reidentified++
			mctx.logger.Warn().
				Str("identity", old).
				Str("course", rec.Course).
				Msg("Duplicate identity in history, minted a new one")
		}

		rec.Selected = false
		mctx.append(rec)
		mctx.result.Metadata.Stats.FromHistory++
	}
	return nil
}

// padFromCurriculum synthesizes a placeholder for each template course
// the merged view does not yet cover by name.
func (r *reconciler) padFromCurriculum(mctx *mergeContext) {
	for _, entry := range mctx.curriculum.ordered {
		if _, covered := mctx.courses[entry.course]; covered {
			continue
		}
		mctx.append(records.Record{
			Identity:   records.MintIdentity(),
			Department: mctx.query.Department,
			Grade:      entry.grade,
			Semester:   entry.semester,
			Course:     entry.course,
			Category:   entry.category,
			Classes:    entry.defaults,
		})
		mctx.result.Metadata.Stats.Padded++
	}
}

// finish assembles the result.
func (r *reconciler) finish(mctx *mergeContext) *Result {
	result := mctx.result
	result.Records = mctx.merged
	result.Courses = mctx.curriculum.courses()
	result.Finalize()

	mctx.logger.Info().
		Str("department", mctx.query.Department).
		Int("records", len(result.Records)).
		Int("from_submission", result.Metadata.Stats.FromSubmission).
		Int("from_history", result.Metadata.Stats.FromHistory).
		Int("padded", result.Metadata.Stats.Padded).
		Dur("duration", result.Metadata.Duration).
		Msg("Reconciliation complete")

	return result
}

// append adds a record to the merged view and marks its identity and
// course name as covered.
func (m *mergeContext) append(rec records.Record) {
	m.identities[rec.Identity] = struct{}{}
	if !tabular.IsBlank(rec.Course) {
		m.courses[rec.Course] = struct{}{}
	}
	m.merged = append(m.merged, rec)
}
