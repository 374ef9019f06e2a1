package bookroll

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookroll/bookroll/pkg/reconciler"
	"github.com/bookroll/bookroll/pkg/session"
	"github.com/bookroll/bookroll/pkg/sheets"
	"github.com/bookroll/bookroll/pkg/sources"
)

func seededStore() *sheets.MemoryStore {
	store := sheets.NewMemoryStore()
	names := sources.DefaultSheetNames()
	store.Seed(names.Submission, [][]string{
		{"uuid", "科別", "年級", "學期", "課程名稱", "課程類別", "適用班級", "教科書(優先1)"},
		{"a1", "機械科", "1", "1", "物理", "", "一機甲", "普物"},
	})
	store.Seed(names.History, [][]string{
		{"uuid", "學年度", "科別", "年級", "學期", "課程名稱", "適用班級", "教科書(優先1)"},
		{"h9", "113", "機械科", "1", "1", "化學", "一機甲", "基礎化學"},
	})
	store.Seed(names.Curriculum, [][]string{
		{"科別", "年級", "學期", "課程名稱", "課程類別", "預設適用班級"},
		{"機械科", "1", "1", "物理", "部定必修", ""},
		{"機械科", "1", "1", "國文", "部定必修", ""},
	})
	return store
}

func TestNewRejectsBadOptions(t *testing.T) {
	_, err := New(WithWorkbook(""))
	assert.Error(t, err)

	_, err = New(WithStore(nil))
	assert.Error(t, err)
}

func TestMergeThroughFacade(t *testing.T) {
	b, err := New(WithStore(seededStore()))
	require.NoError(t, err)
	defer func() { _ = b.Close() }()

	result, err := b.Merge(context.Background(), reconciler.Query{
		Department:        "機械科",
		Grade:             "1",
		Semester:          "1",
		UseHistory:        true,
		Period:            "113",
		PadFromCurriculum: true,
	})
	require.NoError(t, err)

	// a1 from submission, h9 from history, 國文 padded; 物理 is
	// already covered so the template adds nothing for it.
	require.Len(t, result.Records, 3)
	assert.Equal(t, 1, result.Metadata.Stats.FromSubmission)
	assert.Equal(t, 1, result.Metadata.Stats.FromHistory)
	assert.Equal(t, 1, result.Metadata.Stats.Padded)
	assert.Equal(t, []string{"物理", "國文"}, result.Courses)
}

func TestEditRoundTripThroughFacade(t *testing.T) {
	store := seededStore()
	b, err := New(WithStore(store))
	require.NoError(t, err)

	ctx := context.Background()
	result, err := b.Merge(ctx, reconciler.Query{Department: "機械科"})
	require.NoError(t, err)

	sess := b.Session(session.Scope{Department: "機械科"})
	sess.SetTable(result.Records)
	require.NoError(t, sess.Select("a1"))

	sess.Buffer().Record.Books[0].Title = "新普物"
	require.NoError(t, sess.Save(ctx, b.Writer(), "114"))

	again, err := b.Merge(ctx, reconciler.Query{Department: "機械科"})
	require.NoError(t, err)
	require.Len(t, again.Records, 1)
	assert.Equal(t, "新普物", again.Records[0].Books[0].Title)
	assert.Equal(t, "a1", again.Records[0].Identity)
}

func TestSyncAndPeriodsThroughFacade(t *testing.T) {
	b, err := New(WithStore(seededStore()))
	require.NoError(t, err)

	ctx := context.Background()
	periods, err := b.Periods(ctx, "114")
	require.NoError(t, err)
	assert.Equal(t, []string{"113"}, periods)

	written, err := b.SyncHistory(ctx, "機械科", "113", "114")
	require.NoError(t, err)
	assert.Equal(t, 1, written)

	result, err := b.Merge(ctx, reconciler.Query{Department: "機械科"})
	require.NoError(t, err)
	assert.Len(t, result.Records, 2)
}
