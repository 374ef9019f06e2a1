package reconciler

import (
	"fmt"
	"time"

	"github.com/bookroll/bookroll/pkg/records"
)

// Result is the outcome of one reconciliation.
type Result struct {
	// Records is the merged view, in final display order.
	Records []records.Record

	// Courses lists the curriculum course names inside the query
	// scope, for populating course pickers. Present even when the
	// query did not ask for padding.
	Courses []string

	// Metadata describes the run itself: timing and source counts.
	Metadata ResultMetadata

	// Warnings collects non-fatal oddities found while merging,
	// such as skipped blank-identity rows.
	Warnings []string
}

// ResultMetadata describes the reconciliation run itself.
type ResultMetadata struct {
	StartTime time.Time
	EndTime   time.Time
	Duration  time.Duration

	Stats ResultStatistics
}

// ResultStatistics counts where the merged records came from.
type ResultStatistics struct {
	FromSubmission int
	FromHistory    int
	Padded         int
	Reidentified   int
	SkippedBlank   int
}

// Summary returns a human-readable summary of the result.
func (r *Result) Summary() string {
	s := r.Metadata.Stats
	return fmt.Sprintf("%d records (%d submission, %d history, %d padded) in %s",
		len(r.Records), s.FromSubmission, s.FromHistory, s.Padded,
		r.Metadata.Duration.Round(time.Millisecond))
}

// NewResult creates a new result with defaults.
func NewResult() *Result {
	return &Result{
		Records:  []records.Record{},
		Courses:  []string{},
		Warnings: []string{},
		Metadata: ResultMetadata{
			StartTime: time.Now(),
		},
	}
}

// Finalize calculates duration and marks completion.
func (r *Result) Finalize() {
	r.Metadata.EndTime = time.Now()
	r.Metadata.Duration = r.Metadata.EndTime.Sub(r.Metadata.StartTime)
}
