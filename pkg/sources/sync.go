package sources

import (
	"context"

	"github.com/bookroll/bookroll/pkg/errors"
	"github.com/bookroll/bookroll/pkg/logging"
	"github.com/bookroll/bookroll/pkg/records"
	"github.com/bookroll/bookroll/pkg/tabular"
)

// SyncHistory copies a department's rows for one historical period into
// the submission table, skipping identities the submission table already
// owns. Rows arriving without an identity get a freshly minted one.
// Returns the number of rows written.
func SyncHistory(ctx context.Context, reader *Reader, writer *Writer, department, period, schoolYear string) (int, error) {
	if period == "" {
		return 0, errors.NewValidationError("period", period, "cannot be empty")
	}

	history, err := reader.History(ctx)
	if err != nil {
		return 0, err
	}
	if history.Empty() {
		return 0, nil
	}
	if !history.Has(tabular.ColSchoolYear) {
		return 0, errors.NewSchemaError(reader.names.History, tabular.ColSchoolYear.String())
	}

	submission, err := reader.Submission(ctx)
	if err != nil {
		return 0, err
	}
	existing := map[string]struct{}{}
	for _, row := range submission.Rows {
		if id := row.Get(tabular.ColIdentity); !tabular.IsBlank(id) {
			existing[id] = struct{}{}
		}
	}

	written := 0
	for _, row := range history.Rows {
		if row.Get(tabular.ColDepartment) != department || row.Get(tabular.ColSchoolYear) != period {
			continue
		}
		rec := records.FromRow(row)
		if rec.Identity == "" {
			rec.Identity = records.MintIdentity()
		} else if _, ok := existing[rec.Identity]; ok {
			continue
		}

		if err := writer.Save(ctx, rec, schoolYear); err != nil {
			return written, err
		}
		existing[rec.Identity] = struct{}{}
		written++
	}

	logging.Ctx(ctx).Info().
		Str("department", department).
		Str("period", period).
		Int("rows", written).
		Msg("History synced to submission")

	return written, nil
}
