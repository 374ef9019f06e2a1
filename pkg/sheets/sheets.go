// Package sheets abstracts the tabular backing store used as the
// system's database. A Store holds named sheets; each sheet is read and
// written whole-row, with row 1 always the header. The store is not
// transactional and offers no row-level locking: concurrent editors of
// the same row race last-writer-wins, which callers accept by design of
// the backing spreadsheet.
package sheets

// Sheet is one named table in the backing store.
type Sheet interface {
	// Name returns the sheet's name.
	Name() string

	// ReadAll returns every row including the header row.
	ReadAll() ([][]string, error)

	// AppendRow appends a data row after the last row.
	AppendRow(values []string) error

	// UpdateRow overwrites the row at the given 1-based index. Row 1 is
	// the header. Cells past len(values) are cleared.
	UpdateRow(index int, values []string) error

	// DeleteRow removes the row at the given 1-based index.
	DeleteRow(index int) error
}

// Store provides access to named sheets.
type Store interface {
	// Sheet returns an existing sheet, or errors.ErrNotFound.
	Sheet(name string) (Sheet, error)

	// EnsureSheet returns the named sheet, creating it with the given
	// header row when absent.
	EnsureSheet(name string, header []string) (Sheet, error)
}
