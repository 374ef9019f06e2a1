// Package sources reads the three source tiers of the reconciliation
// (live submissions, frozen history, and the curriculum template) from
// the backing store, normalizing each into canonical tabular form. The
// tiers carry a fixed precedence order; the reconciler never consults a
// lower tier for a record the tier above already owns.
package sources

import (
	"slices"

	"github.com/bookroll/bookroll/pkg/constants"
)

// ID identifies one source tier.
type ID string

// String returns the string representation of a source ID.
func (id ID) String() string {
	return string(id)
}

// The three source tiers, fixed for this system.
const (
	// SubmissionID is the live user-maintained table; authoritative for
	// any identity it contains.
	SubmissionID ID = "submission"

	// HistoryID holds frozen prior-period submissions; fallback content
	// only, opt-in.
	HistoryID ID = "history"

	// CurriculumID is the expected-course catalog; only ever
	// synthesizes placeholders.
	CurriculumID ID = "curriculum"
)

// IDs returns all source tiers in precedence order, highest first.
func IDs() []ID {
	return []ID{SubmissionID, HistoryID, CurriculumID}
}

// IsValid returns true if the ID is one of the defined tiers.
func (id ID) IsValid() bool {
	return slices.Contains(IDs(), id)
}

// SheetNames maps each tier to its sheet in the backing workbook.
type SheetNames struct {
	Submission string
	History    string
	Curriculum string
}

// DefaultSheetNames returns the standard workbook layout.
func DefaultSheetNames() SheetNames {
	return SheetNames{
		Submission: constants.SheetSubmission,
		History:    constants.SheetHistory,
		Curriculum: constants.SheetCurriculum,
	}
}

// Name returns the sheet name for a tier.
func (n SheetNames) Name(id ID) string {
	switch id {
	case SubmissionID:
		return n.Submission
	case HistoryID:
		return n.History
	case CurriculumID:
		return n.Curriculum
	default:
		return ""
	}
}
