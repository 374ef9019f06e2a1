package reconciler

import (
	"github.com/bookroll/bookroll/pkg/errors"
	"github.com/bookroll/bookroll/pkg/tabular"
)

// Query scopes one reconciliation. Department is required; Grade and
// Semester narrow the scope when set. Period selects which historical
// school year to merge from and is required whenever UseHistory is set:
// guessing a "most recent" period silently is worse than making the
// caller choose.
type Query struct {
	Department string
	Grade      string
	Semester   string

	UseHistory bool
	Period     string

	PadFromCurriculum bool
}

// Validate checks the query before any source is read.
func (q Query) Validate() error {
	if q.Department == "" {
		return &errors.ValidationError{
			Field:   "department",
			Message: "cannot be empty",
		}
	}
	if q.UseHistory && q.Period == "" {
		return &errors.ValidationError{
			Field:   "period",
			Message: "required when history is enabled",
		}
	}
	return nil
}

// matches reports whether a source row falls inside the query scope.
func (q Query) matches(row tabular.Row) bool {
	if row.Get(tabular.ColDepartment) != q.Department {
		return false
	}
	if q.Grade != "" && row.Get(tabular.ColGrade) != q.Grade {
		return false
	}
	if q.Semester != "" && row.Get(tabular.ColSemester) != q.Semester {
		return false
	}
	return true
}
