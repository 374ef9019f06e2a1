package reconciler

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookroll/bookroll/pkg/errors"
	"github.com/bookroll/bookroll/pkg/records"
	"github.com/bookroll/bookroll/pkg/sheets"
	"github.com/bookroll/bookroll/pkg/sources"
)

var (
	submissionHeader = []string{"uuid", "科別", "年級", "學期", "課程名稱", "課程類別", "適用班級", "教科書(優先1)"}
	historyHeader    = []string{"uuid", "學年度", "科別", "年級", "學期", "課程名稱", "適用班級", "教科書(優先1)"}
	curriculumHeader = []string{"科別", "年級", "學期", "課程名稱", "課程類別", "預設適用班級"}
)

// newTestReconciler seeds a store with the three sheets and returns a
// reconciler over it. Any nil rows slice leaves that sheet header-only.
func newTestReconciler(t *testing.T, submission, history, curriculum [][]string) Reconciler {
	t.Helper()

	store := sheets.NewMemoryStore()
	names := sources.DefaultSheetNames()
	store.Seed(names.Submission, append([][]string{submissionHeader}, submission...))
	store.Seed(names.History, append([][]string{historyHeader}, history...))
	store.Seed(names.Curriculum, append([][]string{curriculumHeader}, curriculum...))

	r, err := New(sources.NewReader(store))
	require.NoError(t, err)
	return r
}

func identities(recs []records.Record) []string {
	ids := make([]string, len(recs))
	for i, rec := range recs {
		ids[i] = rec.Identity
	}
	return ids
}

func byCourse(recs []records.Record) map[string]records.Record {
	m := make(map[string]records.Record, len(recs))
	for _, rec := range recs {
		m[rec.Course] = rec
	}
	return m
}

func TestNewRequiresReader(t *testing.T) {
	_, err := New(nil)
	assert.True(t, errors.IsValidationError(err))
}

func TestMergeValidatesQuery(t *testing.T) {
	r := newTestReconciler(t, nil, nil, nil)

	tests := []struct {
		name  string
		query Query
	}{
		{"empty department", Query{}},
		{"history without period", Query{Department: "機械科", UseHistory: true}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := r.Merge(context.Background(), tt.query)
			assert.True(t, errors.IsValidationError(err))
		})
	}
}

func TestMergeSubmissionWinsOverHistory(t *testing.T) {
	r := newTestReconciler(t,
		[][]string{
			{"A1", "機械科", "1", "1", "物理", "", "一機甲", "普物"},
		},
		[][]string{
			{"A1", "113", "機械科", "1", "1", "物理", "一機甲,一機乙", "舊普物"},
			{"H9", "113", "機械科", "1", "1", "化學", "一機甲", "基礎化學"},
		},
		nil,
	)

	result, err := r.Merge(context.Background(), Query{
		Department: "機械科",
		Grade:      "1",
		Semester:   "1",
		UseHistory: true,
		Period:     "113",
	})
	require.NoError(t, err)
	require.Len(t, result.Records, 2)

	recs := byCourse(result.Records)
	physics := recs["物理"]
	assert.Equal(t, "A1", physics.Identity)
	assert.Equal(t, []string{"一機甲"}, physics.Classes.List())
	assert.Equal(t, "普物", physics.Books[0].Title)

	chemistry := recs["化學"]
	assert.Equal(t, "H9", chemistry.Identity)
	assert.Equal(t, "基礎化學", chemistry.Books[0].Title)
	assert.False(t, chemistry.Selected)

	assert.Equal(t, 1, result.Metadata.Stats.FromSubmission)
	assert.Equal(t, 1, result.Metadata.Stats.FromHistory)
}

func TestMergeReidentifiesDuplicateHistoryRows(t *testing.T) {
	r := newTestReconciler(t,
		nil,
		[][]string{
			{"B2", "113", "機械科", "1", "1", "物理", "一機甲", ""},
			{"B2", "113", "機械科", "1", "1", "化學", "一機乙", ""},
		},
		nil,
	)

	result, err := r.Merge(context.Background(), Query{
		Department: "機械科",
		UseHistory: true,
		Period:     "113",
	})
	require.NoError(t, err)
	require.Len(t, result.Records, 2)

	ids := identities(result.Records)
	assert.Contains(t, ids, "B2")
	assert.NotEqual(t, ids[0], ids[1])
	for _, id := range ids {
		assert.NotEmpty(t, id)
	}
	assert.Equal(t, 1, result.Metadata.Stats.Reidentified)
}

func TestMergeFiltersHistoryByPeriod(t *testing.T) {
	r := newTestReconciler(t,
		nil,
		[][]string{
			{"H1", "113", "機械科", "1", "1", "物理", "", ""},
			{"H2", "112", "機械科", "1", "1", "化學", "", ""},
		},
		nil,
	)

	result, err := r.Merge(context.Background(), Query{
		Department: "機械科",
		UseHistory: true,
		Period:     "113",
	})
	require.NoError(t, err)
	require.Len(t, result.Records, 1)
	assert.Equal(t, "H1", result.Records[0].Identity)
}

func TestMergeHistoryWithoutPeriodColumnFails(t *testing.T) {
	store := sheets.NewMemoryStore()
	names := sources.DefaultSheetNames()
	store.Seed(names.Submission, [][]string{submissionHeader})
	store.Seed(names.History, [][]string{
		{"uuid", "科別", "年級", "學期", "課程名稱"},
		{"H1", "機械科", "1", "1", "物理"},
	})
	store.Seed(names.Curriculum, [][]string{curriculumHeader})

	r, err := New(sources.NewReader(store))
	require.NoError(t, err)

	_, err = r.Merge(context.Background(), Query{
		Department: "機械科",
		UseHistory: true,
		Period:     "113",
	})
	assert.True(t, errors.IsMissingColumn(err))
}

func TestMergeSkipsBlankSubmissionIdentity(t *testing.T) {
	r := newTestReconciler(t,
		[][]string{
			{"", "機械科", "1", "1", "幽靈課", "", "", ""},
			{"A1", "機械科", "1", "1", "物理", "", "", ""},
		},
		nil, nil,
	)

	result, err := r.Merge(context.Background(), Query{Department: "機械科"})
	require.NoError(t, err)
	require.Len(t, result.Records, 1)
	assert.Equal(t, "A1", result.Records[0].Identity)
	assert.Equal(t, 1, result.Metadata.Stats.SkippedBlank)
	assert.NotEmpty(t, result.Warnings)
}

func TestMergePadsFromCurriculum(t *testing.T) {
	r := newTestReconciler(t,
		nil, nil,
		[][]string{
			{"機械科", "1", "1", "國文", "部定必修", "一機甲,一機乙"},
		},
	)

	result, err := r.Merge(context.Background(), Query{
		Department:        "機械科",
		Grade:             "1",
		Semester:          "1",
		PadFromCurriculum: true,
	})
	require.NoError(t, err)
	require.Len(t, result.Records, 1)

	placeholder := result.Records[0]
	assert.NotEmpty(t, placeholder.Identity)
	assert.Equal(t, "國文", placeholder.Course)
	assert.Equal(t, "部定必修", placeholder.Category)
	assert.Equal(t, []string{"一機乙", "一機甲"}, placeholder.Classes.List())
	assert.True(t, placeholder.Books[0].Empty())
	assert.True(t, placeholder.Books[1].Empty())
	assert.False(t, placeholder.Selected)
	assert.Equal(t, 1, result.Metadata.Stats.Padded)
}

func TestMergePaddingSkipsCoveredCourses(t *testing.T) {
	r := newTestReconciler(t,
		[][]string{
			{"A1", "機械科", "1", "1", "國文", "", "一機甲", "翰林國文"},
		},
		nil,
		[][]string{
			{"機械科", "1", "1", "國文", "部定必修", ""},
			{"機械科", "1", "1", "英文", "部定必修", ""},
		},
	)

	query := Query{
		Department:        "機械科",
		Grade:             "1",
		Semester:          "1",
		PadFromCurriculum: true,
	}

	result, err := r.Merge(context.Background(), query)
	require.NoError(t, err)
	require.Len(t, result.Records, 2)

	recs := byCourse(result.Records)
	assert.Equal(t, "A1", recs["國文"].Identity)
	assert.Equal(t, "翰林國文", recs["國文"].Books[0].Title)
	assert.Equal(t, 1, result.Metadata.Stats.Padded)

	// Coverage by course name is stable across repeated merges even
	// though placeholder identities are minted fresh each time.
	again, err := r.Merge(context.Background(), query)
	require.NoError(t, err)
	assert.ElementsMatch(t,
		[]string{"國文", "英文"},
		[]string{again.Records[0].Course, again.Records[1].Course})
	assert.Equal(t, "A1", byCourse(again.Records)["國文"].Identity)
}

func TestMergeCategoryResolution(t *testing.T) {
	curriculum := [][]string{
		{"機械科", "1", "1", "專題實作", "校訂必修", "一機甲"},
		{"機械科", "1", "1", "專題實作", "校訂選修", "一機乙"},
	}

	tests := []struct {
		name     string
		row      []string
		course   string
		expected string
	}{
		{
			name:     "class overlap preferred",
			row:      []string{"A1", "機械科", "1", "1", "專題實作", "", "一機乙", ""},
			course:   "專題實作",
			expected: "校訂選修",
		},
		{
			name:     "first match when nothing overlaps",
			row:      []string{"A2", "機械科", "1", "1", "專題實作", "", "一機丙", ""},
			course:   "專題實作",
			expected: "校訂必修",
		},
		{
			name:     "stored category kept when template is silent",
			row:      []string{"A3", "機械科", "1", "1", "進階製圖", "校訂深化", "", ""},
			course:   "進階製圖",
			expected: "校訂深化",
		},
		{
			name:     "custom when neither template nor record knows",
			row:      []string{"A4", "機械科", "1", "1", "神祕課程", "", "", ""},
			course:   "神祕課程",
			expected: records.CategoryCustom,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newTestReconciler(t, [][]string{tt.row}, nil, curriculum)

			result, err := r.Merge(context.Background(), Query{Department: "機械科"})
			require.NoError(t, err)
			require.Len(t, result.Records, 1)
			assert.Equal(t, tt.expected, result.Records[0].Category)
		})
	}
}

func TestMergeOrdering(t *testing.T) {
	r := newTestReconciler(t,
		[][]string{
			{"A1", "機械科", "2", "1", "製圖", "b", "", ""},
			{"A2", "機械科", "1", "2", "製圖", "b", "", ""},
			{"A3", "機械科", "1", "1", "製圖", "a", "", ""},
			{"A4", "機械科", "1", "1", "製圖", "b", "", ""},
		},
		nil, nil,
	)

	result, err := r.Merge(context.Background(), Query{Department: "機械科"})
	require.NoError(t, err)

	// Grade ascending, semester ascending, category descending.
	assert.Equal(t, []string{"A4", "A3", "A2", "A1"}, identities(result.Records))
}

func TestMergeTiesKeepArrivalOrder(t *testing.T) {
	r := newTestReconciler(t,
		[][]string{
			{"A1", "機械科", "1", "1", "製圖", "b", "一機甲", ""},
			{"A2", "機械科", "1", "1", "製圖", "b", "一機乙", ""},
		},
		nil, nil,
	)

	for range 3 {
		result, err := r.Merge(context.Background(), Query{Department: "機械科"})
		require.NoError(t, err)
		assert.Equal(t, []string{"A1", "A2"}, identities(result.Records))
	}
}

func TestMergeMissingSubmissionSheetFails(t *testing.T) {
	store := sheets.NewMemoryStore()
	names := sources.DefaultSheetNames()
	store.Seed(names.Curriculum, [][]string{curriculumHeader})

	r, err := New(sources.NewReader(store))
	require.NoError(t, err)

	result, err := r.Merge(context.Background(), Query{Department: "機械科"})
	assert.Error(t, err)
	assert.Nil(t, result)
}

func TestMergeCollectsCourseOptions(t *testing.T) {
	r := newTestReconciler(t,
		nil, nil,
		[][]string{
			{"機械科", "1", "1", "國文", "部定必修", ""},
			{"機械科", "1", "1", "英文", "部定必修", ""},
			{"機械科", "1", "1", "國文", "部定必修", "一機乙"},
			{"電機科", "1", "1", "電子學", "部定必修", ""},
		},
	)

	result, err := r.Merge(context.Background(), Query{
		Department: "機械科",
		Grade:      "1",
		Semester:   "1",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"國文", "英文"}, result.Courses)
}

func TestPreviewNeverPads(t *testing.T) {
	r := newTestReconciler(t,
		[][]string{
			{"A1", "機械科", "1", "1", "物理", "", "", ""},
			{"A2", "機械科", "3", "2", "專題", "", "", ""},
		},
		nil,
		[][]string{
			{"機械科", "1", "1", "國文", "部定必修", ""},
		},
	)

	result, err := r.Preview(context.Background(), "機械科", false, "")
	require.NoError(t, err)

	// Whole-department scope, nothing synthesized.
	assert.Len(t, result.Records, 2)
	assert.Equal(t, 0, result.Metadata.Stats.Padded)
}
