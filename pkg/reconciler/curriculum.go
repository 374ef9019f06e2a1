package reconciler

import (
	"github.com/bookroll/bookroll/pkg/classes"
	"github.com/bookroll/bookroll/pkg/records"
	"github.com/bookroll/bookroll/pkg/tabular"
)

// curriculumEntry is one expected course from the template: a name, a
// default category, and a default class-list. Never any book data.
type curriculumEntry struct {
	course   string
	grade    string
	semester string
	category string
	defaults classes.Set
	order    int
}

// curriculumIndex holds the template entries for one query scope,
// keyed by course name, each course's entries in sheet order.
type curriculumIndex struct {
	byCourse map[string][]curriculumEntry
	ordered  []curriculumEntry
}

func newCurriculumIndex(table tabular.Table, q Query) *curriculumIndex {
	idx := &curriculumIndex{byCourse: map[string][]curriculumEntry{}}
	for i, row := range table.Rows {
		if !q.matches(row) {
			continue
		}
		entry := curriculumEntry{
			course:   row.Get(tabular.ColCourse),
			grade:    row.Get(tabular.ColGrade),
			semester: row.Get(tabular.ColSemester),
			category: row.Get(tabular.ColCategory),
			defaults: classes.Parse(row.Get(tabular.ColDefaultClasses)),
			order:    i,
		}
		if tabular.IsBlank(entry.course) {
			continue
		}
		idx.byCourse[entry.course] = append(idx.byCourse[entry.course], entry)
		idx.ordered = append(idx.ordered, entry)
	}
	return idx
}

// entriesFor returns the template entries matching a record's course
// and position, in sheet order.
func (idx *curriculumIndex) entriesFor(rec records.Record) []curriculumEntry {
	var matched []curriculumEntry
	for _, entry := range idx.byCourse[rec.Course] {
		if entry.grade != rec.Grade || entry.semester != rec.Semester {
			continue
		}
		matched = append(matched, entry)
	}
	return matched
}

// resolveCategory picks a record's category from the template. Entries
// sharing the record's course key can differ by class-list; the one
// whose default classes overlap the record's classes wins, then the
// first match. Records the template does not know keep their stored
// category, or become custom when they have none.
func (idx *curriculumIndex) resolveCategory(rec records.Record) string {
	entries := idx.entriesFor(rec)
	if len(entries) == 0 {
		if tabular.IsBlank(rec.Category) {
			return records.CategoryCustom
		}
		return rec.Category
	}
	for _, entry := range entries {
		if classes.Overlaps(entry.defaults, rec.Classes) {
			return entry.category
		}
	}
	return entries[0].category
}

// courses lists the distinct course names in the scope, in sheet order.
func (idx *curriculumIndex) courses() []string {
	seen := map[string]struct{}{}
	var names []string
	for _, entry := range idx.ordered {
		if _, ok := seen[entry.course]; ok {
			continue
		}
		seen[entry.course] = struct{}{}
		names = append(names, entry.course)
	}
	return names
}
