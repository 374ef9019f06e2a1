package sources

import (
	"context"
	"time"

	"github.com/bookroll/bookroll/pkg/constants"
	"github.com/bookroll/bookroll/pkg/errors"
	"github.com/bookroll/bookroll/pkg/logging"
	"github.com/bookroll/bookroll/pkg/records"
	"github.com/bookroll/bookroll/pkg/sheets"
	"github.com/bookroll/bookroll/pkg/tabular"
)

// SubmissionHeader is the header row written when the submission sheet
// is created from scratch.
var SubmissionHeader = []string{
	string(tabular.ColIdentity),
	string(tabular.ColTimestamp),
	string(tabular.ColSchoolYear),
	string(tabular.ColDepartment),
	string(tabular.ColSemester),
	string(tabular.ColGrade),
	string(tabular.ColCourse),
	string(tabular.ColCategory),
	string(tabular.ColBook1),
	string(tabular.ColVolume1),
	string(tabular.ColPublisher1),
	string(tabular.ColApproval1),
	string(tabular.ColBook2),
	string(tabular.ColVolume2),
	string(tabular.ColPublisher2),
	string(tabular.ColApproval2),
	string(tabular.ColClasses),
	string(tabular.ColNote1),
	string(tabular.ColNote2),
}

// Writer persists edits back to the submission sheet. Writes race
// last-writer-wins when two sessions edit the same identity; the store
// offers no row locking, and this limitation is accepted rather than
// masked.
type Writer struct {
	store sheets.Store
	names SheetNames
	now   func() time.Time
}

// WriterOption configures a Writer.
type WriterOption func(*Writer)

// WithWriterSheetNames overrides the workbook sheet layout.
func WithWriterSheetNames(names SheetNames) WriterOption {
	return func(w *Writer) { w.names = names }
}

// withClock injects a clock for tests.
func withClock(now func() time.Time) WriterOption {
	return func(w *Writer) { w.now = now }
}

// NewWriter creates a Writer over the given store.
func NewWriter(store sheets.Store, opts ...WriterOption) *Writer {
	w := &Writer{
		store: store,
		names: DefaultSheetNames(),
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Save writes the record as the submission row for its identity:
// update-in-place when the identity exists, append otherwise. The row is
// stamped with the write time and the current school year. The in-memory
// merged table must only be updated after Save returns nil.
func (w *Writer) Save(ctx context.Context, rec records.Record, schoolYear string) error {
	if rec.Identity == "" {
		return errors.NewValidationError("identity", rec.Identity, "cannot be empty")
	}

	sheet, err := w.store.EnsureSheet(w.names.Submission, SubmissionHeader)
	if err != nil {
		return err
	}

	rows, err := sheets.WithRetry(sheet).ReadAll()
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		if err := sheet.AppendRow(SubmissionHeader); err != nil {
			return err
		}
		rows = [][]string{SubmissionHeader}
	}

	header := rows[0]
	identityIdx := identityIndex(header)
	if identityIdx < 0 {
		return errors.NewSchemaError(w.names.Submission, tabular.ColIdentity.String())
	}

	values := w.rowValues(header, rec, schoolYear)

	for i := 1; i < len(rows); i++ {
		if identityIdx < len(rows[i]) && rows[i][identityIdx] == rec.Identity {
			if err := sheet.UpdateRow(i+1, values); err != nil {
				return err
			}
			logging.Ctx(ctx).Info().
				Str("identity", rec.Identity).
				Int("row", i+1).
				Msg("Submission updated")
			return nil
		}
	}

	// Unknown identity degrades to append: the record is new to the
	// submission table even if it came from history or the template.
	if err := sheet.AppendRow(values); err != nil {
		return err
	}
	logging.Ctx(ctx).Info().
		Str("identity", rec.Identity).
		Msg("Submission appended")
	return nil
}

// Delete removes the submission row for the identity. Deleting an
// identity that is not in the submission table (a placeholder never
// saved) is an idempotent no-op.
func (w *Writer) Delete(ctx context.Context, identity string) error {
	if identity == "" {
		return errors.NewValidationError("identity", identity, "cannot be empty")
	}

	sheet, err := w.store.Sheet(w.names.Submission)
	if err != nil {
		if errors.IsNotFound(err) {
			return nil
		}
		return err
	}

	rows, err := sheets.WithRetry(sheet).ReadAll()
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		return nil
	}

	identityIdx := identityIndex(rows[0])
	if identityIdx < 0 {
		return nil
	}

	for i := 1; i < len(rows); i++ {
		if identityIdx < len(rows[i]) && rows[i][identityIdx] == identity {
			if err := sheet.DeleteRow(i + 1); err != nil {
				return err
			}
			logging.Ctx(ctx).Info().
				Str("identity", identity).
				Int("row", i+1).
				Msg("Submission deleted")
			return nil
		}
	}

	logging.Ctx(ctx).Debug().
		Str("identity", identity).
		Msg("Delete target not in submission, already satisfied")
	return nil
}

// rowValues lays the record out along the sheet's live header, so
// legacy-named sheets keep their column order and spelling.
func (w *Writer) rowValues(header []string, rec records.Record, schoolYear string) []string {
	row := rec.Row()
	row[tabular.ColTimestamp] = w.now().Format(constants.TimestampLayout)
	row[tabular.ColSchoolYear] = schoolYear

	values := make([]string, len(header))
	noteSeen := 0
	for i, cell := range header {
		canonical := tabular.Canonicalize(cell)
		if canonical == tabular.ColNote1 {
			// A second bare 備註 column receives the second note
			noteSeen++
			if noteSeen > 1 {
				canonical = tabular.ColNote2
			}
		}
		values[i] = row[canonical]
	}
	return values
}

// identityIndex locates the single identity column in a raw header.
func identityIndex(header []string) int {
	for i, cell := range header {
		if tabular.Canonicalize(cell) == tabular.ColIdentity {
			return i
		}
	}
	return -1
}
