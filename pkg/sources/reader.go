package sources

import (
	"context"
	"sort"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/bookroll/bookroll/pkg/constants"
	"github.com/bookroll/bookroll/pkg/errors"
	"github.com/bookroll/bookroll/pkg/logging"
	"github.com/bookroll/bookroll/pkg/sheets"
	"github.com/bookroll/bookroll/pkg/tabular"
)

// requiredColumns lists the columns a non-empty source must carry for a
// merge to be meaningful. A missing one is a hard SchemaError, never
// silently ignored.
var requiredColumns = map[ID][]tabular.Column{
	SubmissionID: {tabular.ColIdentity, tabular.ColDepartment, tabular.ColGrade, tabular.ColSemester, tabular.ColCourse},
	HistoryID:    {tabular.ColDepartment},
	CurriculumID: {tabular.ColDepartment, tabular.ColGrade, tabular.ColSemester, tabular.ColCourse, tabular.ColCategory},
}

// Reader fetches the three source tiers. Submission and History are read
// fresh on every call because merge correctness depends on their current
// state; Curriculum goes through a TTL cache since the template changes
// rarely.
type Reader struct {
	store sheets.Store
	names SheetNames
	cache *gocache.Cache
	ttl   time.Duration
}

// ReaderOption configures a Reader.
type ReaderOption func(*Reader)

// WithSheetNames overrides the workbook sheet layout.
func WithSheetNames(names SheetNames) ReaderOption {
	return func(r *Reader) { r.names = names }
}

// WithCurriculumTTL overrides how long a fetched curriculum is reused.
func WithCurriculumTTL(ttl time.Duration) ReaderOption {
	return func(r *Reader) { r.ttl = ttl }
}

// NewReader creates a Reader over the given store.
func NewReader(store sheets.Store, opts ...ReaderOption) *Reader {
	r := &Reader{
		store: store,
		names: DefaultSheetNames(),
		ttl:   constants.CurriculumTTL,
	}
	for _, opt := range opts {
		opt(r)
	}
	r.cache = gocache.New(r.ttl, constants.CacheCleanupInterval)
	return r
}

// Submission reads the live submission table.
func (r *Reader) Submission(ctx context.Context) (tabular.Table, error) {
	return r.read(ctx, SubmissionID)
}

// History reads the frozen prior-period table.
func (r *Reader) History(ctx context.Context) (tabular.Table, error) {
	return r.read(ctx, HistoryID)
}

// Curriculum reads the expected-course catalog through the TTL cache.
func (r *Reader) Curriculum(ctx context.Context) (tabular.Table, error) {
	if cached, ok := r.cache.Get(string(CurriculumID)); ok {
		logging.Ctx(ctx).Debug().
			Str("sheet", r.names.Curriculum).
			Msg("Curriculum served from cache")
		return cached.(tabular.Table), nil
	}

	table, err := r.read(ctx, CurriculumID)
	if err != nil {
		return tabular.Table{}, err
	}
	r.cache.Set(string(CurriculumID), table, gocache.DefaultExpiration)
	return table, nil
}

// InvalidateCurriculum drops the cached curriculum so the next read hits
// the store.
func (r *Reader) InvalidateCurriculum() {
	r.cache.Delete(string(CurriculumID))
}

// HistoryPeriods returns the distinct period tags present in History,
// excluding the current school year, most recent first.
func (r *Reader) HistoryPeriods(ctx context.Context, currentYear string) ([]string, error) {
	table, err := r.History(ctx)
	if err != nil {
		return nil, err
	}
	if table.Empty() || !table.Has(tabular.ColSchoolYear) {
		return nil, nil
	}

	unique := map[string]struct{}{}
	for _, row := range table.Rows {
		year := row.Get(tabular.ColSchoolYear)
		if tabular.IsBlank(year) || year == currentYear {
			continue
		}
		unique[year] = struct{}{}
	}

	periods := make([]string, 0, len(unique))
	for year := range unique {
		periods = append(periods, year)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(periods)))
	return periods, nil
}

// read fetches and normalizes one tier, enforcing its required columns.
func (r *Reader) read(ctx context.Context, id ID) (tabular.Table, error) {
	name := r.names.Name(id)

	sheet, err := r.store.Sheet(name)
	if err != nil {
		return tabular.Table{}, errors.WrapMerge(id.String(), err)
	}

	rows, err := sheets.WithRetry(sheet).ReadAll()
	if err != nil {
		return tabular.Table{}, errors.WrapMerge(id.String(), err)
	}
	if len(rows) == 0 {
		return tabular.Table{}, nil
	}

	table := tabular.New(rows[0], rows[1:])
	if len(table.Rows) == 0 {
		return table, nil
	}

	for _, col := range requiredColumns[id] {
		if !table.Has(col) {
			return tabular.Table{}, errors.NewSchemaError(name, col.String())
		}
	}

	logging.Ctx(ctx).Debug().
		Str("sheet", name).
		Int("rows", len(table.Rows)).
		Msg("Source read")

	return table, nil
}
