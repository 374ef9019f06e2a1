package sources

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookroll/bookroll/pkg/sheets"
)

func TestSyncHistory(t *testing.T) {
	store := sheets.NewMemoryStore()
	store.Seed(DefaultSheetNames().Submission, [][]string{
		{"uuid", "科別", "年級", "學期", "課程名稱"},
		{"a1", "機械科", "1", "1", "物理"},
	})
	store.Seed(DefaultSheetNames().History, [][]string{
		{"uuid", "學年度", "科別", "年級", "學期", "課程名稱", "教科書(1)"},
		{"a1", "113", "機械科", "1", "1", "物理", "舊物理"},
		{"h9", "113", "機械科", "1", "1", "化學", "基礎化學"},
		{"h8", "112", "機械科", "1", "1", "化學", "更舊化學"},
		{"x1", "113", "電機科", "1", "1", "電子學", "電子學"},
		{"", "113", "機械科", "2", "1", "製圖", "製圖"},
	})
	store.Seed(DefaultSheetNames().Curriculum, [][]string{
		{"科別", "年級", "學期", "課程名稱", "課程類別"},
	})

	reader := NewReader(store)
	writer := NewWriter(store)
	ctx := context.Background()

	written, err := SyncHistory(ctx, reader, writer, "機械科", "113", "114")
	require.NoError(t, err)

	// a1 already in submission, wrong department and wrong period
	// skipped; the blank-identity row gets a minted identity
	assert.Equal(t, 2, written)

	sheet, _ := store.Sheet(DefaultSheetNames().Submission)
	rows, _ := sheet.ReadAll()
	require.Len(t, rows, 4)

	ids := map[string]bool{}
	for _, row := range rows[1:] {
		assert.NotEmpty(t, row[0])
		ids[row[0]] = true
	}
	assert.True(t, ids["a1"])
	assert.True(t, ids["h9"])
	assert.Len(t, ids, 3)
}

func TestSyncHistoryRequiresPeriod(t *testing.T) {
	store := sheets.NewMemoryStore()
	reader := NewReader(store)
	writer := NewWriter(store)

	_, err := SyncHistory(context.Background(), reader, writer, "機械科", "", "114")
	assert.Error(t, err)
}
