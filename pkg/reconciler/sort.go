package reconciler

import (
	"sort"

	"golang.org/x/text/collate"

	"github.com/bookroll/bookroll/pkg/records"
)

// sortRecords orders the merged view for display: grade ascending,
// semester ascending, category descending, course name ascending.
// Category and course compare under the collator; the descending
// category pass keeps curriculum-defined categories apart from the
// custom bucket. Ties keep arrival order.
func sortRecords(recs []records.Record, c *collate.Collator) {
	sort.SliceStable(recs, func(i, j int) bool {
		a, b := recs[i], recs[j]
		if a.Grade != b.Grade {
			return a.Grade < b.Grade
		}
		if a.Semester != b.Semester {
			return a.Semester < b.Semester
		}
		if cmp := c.CompareString(a.Category, b.Category); cmp != 0 {
			return cmp > 0
		}
		if cmp := c.CompareString(a.Course, b.Course); cmp != 0 {
			return cmp < 0
		}
		return false
	})
}
