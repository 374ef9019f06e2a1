// Package tabular maps raw spreadsheet rows into tables keyed by
// canonical column identifiers. All column-name drift between the three
// source sheets is resolved here; nothing past this boundary sees a raw
// header string.
package tabular

import "strings"

// Column is a canonical column identifier. The value is the header name
// written back to the backing sheets.
type Column string

// String returns the column's header representation.
func (c Column) String() string {
	return string(c)
}

// Canonical columns for submission, history, and curriculum sheets.
const (
	// ColIdentity is the opaque per-record token. Never duplicated,
	// never split by normalization.
	ColIdentity Column = "uuid"

	ColTimestamp  Column = "填報時間"
	ColSchoolYear Column = "學年度"
	ColDepartment Column = "科別"
	ColSemester   Column = "學期"
	ColGrade      Column = "年級"
	ColCourse     Column = "課程名稱"
	ColCategory   Column = "課程類別"
	ColClasses    Column = "適用班級"

	// ColDefaultClasses appears only in the curriculum template
	ColDefaultClasses Column = "預設適用班級"

	ColBook1      Column = "教科書(優先1)"
	ColVolume1    Column = "冊次(1)"
	ColPublisher1 Column = "出版社(1)"
	ColApproval1  Column = "審定字號(1)"
	ColBook2      Column = "教科書(優先2)"
	ColVolume2    Column = "冊次(2)"
	ColPublisher2 Column = "出版社(2)"
	ColApproval2  Column = "審定字號(2)"
	ColNote1      Column = "備註1"
	ColNote2      Column = "備註2"
)

// synonyms maps legacy and shorthand spellings onto canonical columns.
// Many-to-one: three generations of the book-1 column all landed on
// different names in old sheets.
var synonyms = map[string]Column{
	"教科書(1)": ColBook1,
	"教科書":    ColBook1,
	"字號(1)":  ColApproval1,
	"字號":     ColApproval1,
	"審定字號":   ColApproval1,
	"教科書(2)": ColBook2,
	"字號(2)":  ColApproval2,
	"備註":     ColNote1,
}

// legacyFallbacks lists, per canonical slot column, the raw header names
// a history row may still carry its value under. Used to backfill slot
// fields when a source predates the canonical names.
var legacyFallbacks = map[Column][]Column{
	ColBook1:      {"教科書(1)", "教科書"},
	ColVolume1:    {"冊次"},
	ColPublisher1: {"出版社"},
	ColApproval1:  {"字號(1)", "字號"},
	ColBook2:      {"教科書(2)"},
	ColApproval2:  {"字號(2)"},
}

// LegacyFallbacks returns the legacy header names that may hold the value
// of the given canonical column.
func LegacyFallbacks(c Column) []Column {
	return legacyFallbacks[c]
}

// Canonicalize maps one raw header cell to its canonical column.
// Whitespace is trimmed; the identity column also matches
// case-insensitively.
func Canonicalize(raw string) Column {
	name := strings.TrimSpace(raw)
	if strings.EqualFold(name, string(ColIdentity)) {
		return ColIdentity
	}
	if canonical, ok := synonyms[name]; ok {
		return canonical
	}
	if name == "備註1" {
		return ColNote1
	}
	return Column(name)
}
