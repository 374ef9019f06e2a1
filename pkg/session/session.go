// Package session tracks which row of a merged view is being edited.
// At most one row is selected at a time; selecting snapshots the row
// into a decoupled edit buffer so in-progress edits never touch the
// merged table until an explicit save. Scope changes invalidate the
// buffer when they make the edited record invisible.
package session

import (
	"context"

	"github.com/bookroll/bookroll/pkg/classes"
	"github.com/bookroll/bookroll/pkg/errors"
	"github.com/bookroll/bookroll/pkg/records"
)

// RecordWriter persists one record to the live submission source.
type RecordWriter interface {
	Save(ctx context.Context, rec records.Record, schoolYear string) error
	Delete(ctx context.Context, identity string) error
}

// Scope is the query scope the merged table was built for.
type Scope struct {
	Department string
	Grade      string
	Semester   string
}

// EditBuffer is a decoupled snapshot of the record under edit. Callers
// mutate it freely; nothing reaches the merged table or the backing
// store until Save.
type EditBuffer struct {
	Identity string
	Record   records.Record
	Classes  classes.Set
}

// Session holds the merged table, the current scope, and at most one
// edit buffer.
type Session struct {
	scope   Scope
	records []records.Record
	buffer  *EditBuffer
}

// NewSession creates an idle session for a scope.
func NewSession(scope Scope) *Session {
	return &Session{scope: scope}
}

// Scope returns the current scope.
func (s *Session) Scope() Scope {
	return s.scope
}

// Records returns the merged table in display order.
func (s *Session) Records() []records.Record {
	return s.records
}

// Editing reports whether a row is selected.
func (s *Session) Editing() bool {
	return s.buffer != nil
}

// Buffer returns the edit buffer, or nil when idle.
func (s *Session) Buffer() *EditBuffer {
	return s.buffer
}

// SetTable replaces the merged table. Rows are cloned so later source
// merges cannot mutate the session's view. An edit buffer pointing at
// an identity no longer in the table is discarded.
func (s *Session) SetTable(recs []records.Record) {
	s.records = make([]records.Record, len(recs))
	for i, rec := range recs {
		s.records[i] = rec.Clone()
	}
	if s.buffer != nil && s.find(s.buffer.Identity) < 0 {
		s.buffer = nil
	}
	s.enforceSelection()
}

// Select marks one row selected and snapshots it into the edit buffer.
// Any previously selected row is deselected first.
func (s *Session) Select(identity string) error {
	i := s.find(identity)
	if i < 0 {
		return errors.NewNotFoundError("record", identity)
	}
	for j := range s.records {
		s.records[j].Selected = j == i
	}
	snapshot := s.records[i].Clone()
	snapshot.Selected = true
	s.buffer = &EditBuffer{
		Identity: identity,
		Record:   snapshot,
		Classes:  snapshot.Classes,
	}
	return nil
}

// Deselect clears the selection and discards the edit buffer.
func (s *Session) Deselect() {
	for i := range s.records {
		s.records[i].Selected = false
	}
	s.buffer = nil
}

// SetScope moves the session to a new scope. A department change ends
// any edit outright. A grade or semester change keeps the buffer but
// clears its class state when the edited record is no longer visible
// under the new scope.
func (s *Session) SetScope(scope Scope) {
	if scope == s.scope {
		return
	}
	departmentChanged := scope.Department != s.scope.Department
	s.scope = scope

	if s.buffer == nil {
		return
	}
	if departmentChanged {
		s.Deselect()
		return
	}
	if !s.visible(s.buffer.Record) {
		s.buffer.Classes = classes.Set{}
		s.buffer.Record.Classes = classes.Set{}
	}
}

// Save writes the edit buffer through to the submission source, then
// applies the same values onto the merged table and returns to idle.
// The table is only touched after the store write succeeds.
func (s *Session) Save(ctx context.Context, writer RecordWriter, schoolYear string) error {
	if s.buffer == nil {
		return errors.New("no record selected")
	}

	rec := s.buffer.Record.Clone()
	rec.Classes = s.buffer.Classes
	rec.Selected = false

	if err := writer.Save(ctx, rec, schoolYear); err != nil {
		return err
	}

	if i := s.find(s.buffer.Identity); i >= 0 {
		s.records[i] = rec.Clone()
	}
	s.Deselect()
	return nil
}

// Delete removes the edited record from the submission source and the
// merged table. Records never saved to submission delete cleanly too:
// the store treats a missing identity as already satisfied.
func (s *Session) Delete(ctx context.Context, writer RecordWriter) error {
	if s.buffer == nil {
		return errors.New("no record selected")
	}

	if err := writer.Delete(ctx, s.buffer.Identity); err != nil {
		return err
	}

	if i := s.find(s.buffer.Identity); i >= 0 {
		s.records = append(s.records[:i], s.records[i+1:]...)
	}
	s.Deselect()
	return nil
}

// find returns the table index of an identity, or -1.
func (s *Session) find(identity string) int {
	for i := range s.records {
		if s.records[i].Identity == identity {
			return i
		}
	}
	return -1
}

// visible reports whether a record matches the current scope.
func (s *Session) visible(rec records.Record) bool {
	if s.scope.Department != "" && rec.Department != s.scope.Department {
		return false
	}
	if s.scope.Grade != "" && rec.Grade != s.scope.Grade {
		return false
	}
	if s.scope.Semester != "" && rec.Semester != s.scope.Semester {
		return false
	}
	return true
}

// enforceSelection keeps at most one row selected; when the incoming
// table carries several, the buffered row wins, else the last one set.
func (s *Session) enforceSelection() {
	keep := -1
	for i := range s.records {
		if !s.records[i].Selected {
			continue
		}
		if s.buffer != nil && s.records[i].Identity == s.buffer.Identity {
			keep = i
			break
		}
		keep = i
	}
	for i := range s.records {
		s.records[i].Selected = i == keep && keep >= 0
	}
}
