package session

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookroll/bookroll/pkg/classes"
	"github.com/bookroll/bookroll/pkg/errors"
	"github.com/bookroll/bookroll/pkg/records"
)

type fakeWriter struct {
	saved   []records.Record
	deleted []string
	fail    error
}

func (w *fakeWriter) Save(_ context.Context, rec records.Record, _ string) error {
	if w.fail != nil {
		return w.fail
	}
	w.saved = append(w.saved, rec)
	return nil
}

func (w *fakeWriter) Delete(_ context.Context, identity string) error {
	if w.fail != nil {
		return w.fail
	}
	w.deleted = append(w.deleted, identity)
	return nil
}

func testTable() []records.Record {
	return []records.Record{
		{
			Identity:   "a1",
			Department: "機械科",
			Grade:      "1",
			Semester:   "1",
			Course:     "物理",
			Classes:    classes.Of("一機甲"),
		},
		{
			Identity:   "b2",
			Department: "機械科",
			Grade:      "2",
			Semester:   "1",
			Course:     "製圖",
			Classes:    classes.Of("二機甲", "二機乙"),
		},
	}
}

func testScope() Scope {
	return Scope{Department: "機械科"}
}

func selectedCount(recs []records.Record) int {
	n := 0
	for _, rec := range recs {
		if rec.Selected {
			n++
		}
	}
	return n
}

func TestSelectSnapshotsRecord(t *testing.T) {
	s := NewSession(testScope())
	s.SetTable(testTable())

	require.NoError(t, s.Select("a1"))
	require.True(t, s.Editing())

	buf := s.Buffer()
	assert.Equal(t, "a1", buf.Identity)
	assert.Equal(t, "物理", buf.Record.Course)

	// The buffer is decoupled: edits stay out of the table until save.
	buf.Record.Course = "進階物理"
	assert.Equal(t, "物理", s.Records()[0].Course)
}

func TestSelectEnforcesSingleSelection(t *testing.T) {
	s := NewSession(testScope())
	s.SetTable(testTable())

	require.NoError(t, s.Select("a1"))
	require.NoError(t, s.Select("b2"))

	assert.Equal(t, 1, selectedCount(s.Records()))
	assert.True(t, s.Records()[1].Selected)
	assert.Equal(t, "b2", s.Buffer().Identity)
}

func TestSelectUnknownIdentity(t *testing.T) {
	s := NewSession(testScope())
	s.SetTable(testTable())

	err := s.Select("nope")
	assert.True(t, errors.IsNotFound(err))
	assert.False(t, s.Editing())
}

func TestDeselect(t *testing.T) {
	s := NewSession(testScope())
	s.SetTable(testTable())
	require.NoError(t, s.Select("a1"))

	s.Deselect()
	assert.False(t, s.Editing())
	assert.Equal(t, 0, selectedCount(s.Records()))
}

func TestSetTableResolvesConflictingSelections(t *testing.T) {
	s := NewSession(testScope())

	table := testTable()
	table[0].Selected = true
	table[1].Selected = true
	s.SetTable(table)

	assert.Equal(t, 1, selectedCount(s.Records()))
}

func TestSetTableDropsStaleBuffer(t *testing.T) {
	s := NewSession(testScope())
	s.SetTable(testTable())
	require.NoError(t, s.Select("a1"))

	s.SetTable(testTable()[1:])
	assert.False(t, s.Editing())
}

func TestSetScopeDepartmentChangeEndsEdit(t *testing.T) {
	s := NewSession(testScope())
	s.SetTable(testTable())
	require.NoError(t, s.Select("a1"))

	s.SetScope(Scope{Department: "電機科"})
	assert.False(t, s.Editing())
	assert.Equal(t, 0, selectedCount(s.Records()))
}

func TestSetScopeGradeChange(t *testing.T) {
	t.Run("record still visible keeps classes", func(t *testing.T) {
		s := NewSession(testScope())
		s.SetTable(testTable())
		require.NoError(t, s.Select("a1"))

		s.SetScope(Scope{Department: "機械科", Grade: "1"})
		require.True(t, s.Editing())
		assert.Equal(t, []string{"一機甲"}, s.Buffer().Classes.List())
	})

	t.Run("record hidden clears class state", func(t *testing.T) {
		s := NewSession(testScope())
		s.SetTable(testTable())
		require.NoError(t, s.Select("a1"))

		s.SetScope(Scope{Department: "機械科", Grade: "2"})
		require.True(t, s.Editing())
		assert.True(t, s.Buffer().Classes.Empty())
	})
}

func TestSaveWritesThroughThenApplies(t *testing.T) {
	s := NewSession(testScope())
	s.SetTable(testTable())
	require.NoError(t, s.Select("a1"))

	s.Buffer().Record.Books[0].Title = "普通物理"
	s.Buffer().Classes = classes.Of("一機甲", "一機乙")

	w := &fakeWriter{}
	require.NoError(t, s.Save(context.Background(), w, "114"))

	require.Len(t, w.saved, 1)
	assert.Equal(t, "普通物理", w.saved[0].Books[0].Title)

	assert.False(t, s.Editing())
	assert.Equal(t, "普通物理", s.Records()[0].Books[0].Title)
	assert.Equal(t, []string{"一機乙", "一機甲"}, s.Records()[0].Classes.List())
	assert.Equal(t, 0, selectedCount(s.Records()))
}

func TestSaveFailureLeavesTableUntouched(t *testing.T) {
	s := NewSession(testScope())
	s.SetTable(testTable())
	require.NoError(t, s.Select("a1"))
	s.Buffer().Record.Books[0].Title = "普通物理"

	w := &fakeWriter{fail: errors.New("store down")}
	err := s.Save(context.Background(), w, "114")
	require.Error(t, err)

	assert.True(t, s.Editing())
	assert.Empty(t, s.Records()[0].Books[0].Title)
}

func TestSaveRequiresSelection(t *testing.T) {
	s := NewSession(testScope())
	s.SetTable(testTable())

	err := s.Save(context.Background(), &fakeWriter{}, "114")
	assert.Error(t, err)
}

func TestDeleteRemovesRow(t *testing.T) {
	s := NewSession(testScope())
	s.SetTable(testTable())
	require.NoError(t, s.Select("a1"))

	w := &fakeWriter{}
	require.NoError(t, s.Delete(context.Background(), w))

	assert.Equal(t, []string{"a1"}, w.deleted)
	assert.False(t, s.Editing())
	require.Len(t, s.Records(), 1)
	assert.Equal(t, "b2", s.Records()[0].Identity)
}

func TestDeleteFailureKeepsRow(t *testing.T) {
	s := NewSession(testScope())
	s.SetTable(testTable())
	require.NoError(t, s.Select("a1"))

	w := &fakeWriter{fail: errors.New("store down")}
	require.Error(t, s.Delete(context.Background(), w))

	assert.True(t, s.Editing())
	assert.Len(t, s.Records(), 2)
}
