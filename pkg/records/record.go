// Package records defines the reconciled course-offering record: the
// fixed, statically-shaped type every source row is mapped into at the
// normalizer boundary. Raw rows never travel past this package.
package records

import (
	"strings"

	"github.com/google/uuid"

	"github.com/bookroll/bookroll/pkg/classes"
	"github.com/bookroll/bookroll/pkg/tabular"
)

// CategoryCustom is the category assigned to records that exist in the
// submission table but not in the curriculum template.
const CategoryCustom = "自訂/新增"

// BookSlot is one textbook priority slot on a record.
type BookSlot struct {
	Title     string
	Volume    string
	Publisher string
	Approval  string
}

// Empty reports whether the slot carries no book at all.
func (b BookSlot) Empty() bool {
	return b.Title == "" && b.Volume == "" && b.Publisher == "" && b.Approval == ""
}

// Record is one logical course offering in the merged view.
type Record struct {
	// Identity is an opaque globally-unique token, assigned once and
	// preserved across edits and merges.
	Identity string

	Department string
	Grade      string
	Semester   string
	Course     string
	Category   string
	Classes    classes.Set
	Books      [2]BookSlot
	Notes      [2]string

	// Selected marks the row under edit. UI-only; never persisted.
	Selected bool
}

// MintIdentity returns a freshly minted record identity.
func MintIdentity() string {
	return uuid.NewString()
}

// FromRow maps a normalized source row into a Record, backfilling the
// book slots from known legacy column names when the canonical ones are
// absent.
func FromRow(row tabular.Row) Record {
	return Record{
		Identity:   value(row.Get(tabular.ColIdentity)),
		Department: value(row.Get(tabular.ColDepartment)),
		Grade:      value(row.Get(tabular.ColGrade)),
		Semester:   value(row.Get(tabular.ColSemester)),
		Course:     value(row.Get(tabular.ColCourse)),
		Category:   value(row.Get(tabular.ColCategory)),
		Classes:    classes.Parse(value(row.Get(tabular.ColClasses))),
		Books: [2]BookSlot{
			{
				Title:     value(row.GetWithFallback(tabular.ColBook1)),
				Volume:    value(row.GetWithFallback(tabular.ColVolume1)),
				Publisher: value(row.GetWithFallback(tabular.ColPublisher1)),
				Approval:  value(row.GetWithFallback(tabular.ColApproval1)),
			},
			{
				Title:     value(row.GetWithFallback(tabular.ColBook2)),
				Volume:    value(row.Get(tabular.ColVolume2)),
				Publisher: value(row.Get(tabular.ColPublisher2)),
				Approval:  value(row.GetWithFallback(tabular.ColApproval2)),
			},
		},
		Notes: cleanNotes(row.Get(tabular.ColNote1), row.Get(tabular.ColNote2)),
	}
}

// Row maps the record back onto its canonical columns.
func (r Record) Row() tabular.Row {
	return tabular.Row{
		tabular.ColIdentity:   r.Identity,
		tabular.ColDepartment: r.Department,
		tabular.ColGrade:      r.Grade,
		tabular.ColSemester:   r.Semester,
		tabular.ColCourse:     r.Course,
		tabular.ColCategory:   r.Category,
		tabular.ColClasses:    r.Classes.String(),
		tabular.ColBook1:      r.Books[0].Title,
		tabular.ColVolume1:    r.Books[0].Volume,
		tabular.ColPublisher1: r.Books[0].Publisher,
		tabular.ColApproval1:  r.Books[0].Approval,
		tabular.ColBook2:      r.Books[1].Title,
		tabular.ColVolume2:    r.Books[1].Volume,
		tabular.ColPublisher2: r.Books[1].Publisher,
		tabular.ColApproval2:  r.Books[1].Approval,
		tabular.ColNote1:      r.Notes[0],
		tabular.ColNote2:      r.Notes[1],
	}
}

// Clone returns a decoupled copy of the record. The class set is copied,
// not shared, so edits to the clone never reach the merged table.
func (r Record) Clone() Record {
	clone := r
	clone.Classes = classes.Of(r.Classes.List()...)
	return clone
}

// value normalizes blank-ish source cells to the empty string.
func value(v string) string {
	if tabular.IsBlank(v) {
		return ""
	}
	return v
}

// cleanNotes strips newlines, trims, and collapses a second note that
// duplicates the first.
func cleanNotes(note1, note2 string) [2]string {
	n1 := cleanNote(note1)
	n2 := cleanNote(note2)
	if n1 != "" && n1 == n2 {
		n2 = ""
	}
	return [2]string{n1, n2}
}

func cleanNote(note string) string {
	if tabular.IsBlank(note) {
		return ""
	}
	return strings.TrimSpace(strings.ReplaceAll(note, "\n", " "))
}
