package sheets

import (
	"sync"

	"github.com/bookroll/bookroll/pkg/errors"
)

// MemoryStore is an in-memory Store used by tests and as a scratch
// workbook.
type MemoryStore struct {
	mu     sync.RWMutex
	sheets map[string]*memorySheet
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sheets: make(map[string]*memorySheet)}
}

// Sheet returns an existing sheet, or errors.ErrNotFound.
func (s *MemoryStore) Sheet(name string) (Sheet, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sheet, ok := s.sheets[name]
	if !ok {
		return nil, errors.NewNotFoundError("sheet", name)
	}
	return sheet, nil
}

// EnsureSheet returns the named sheet, creating it with the header when
// absent.
func (s *MemoryStore) EnsureSheet(name string, header []string) (Sheet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sheet, ok := s.sheets[name]; ok {
		return sheet, nil
	}
	sheet := &memorySheet{name: name}
	if len(header) > 0 {
		sheet.rows = [][]string{append([]string(nil), header...)}
	}
	s.sheets[name] = sheet
	return sheet, nil
}

// Seed creates or replaces a sheet with the given rows. Test helper.
func (s *MemoryStore) Seed(name string, rows [][]string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sheet := &memorySheet{name: name}
	for _, row := range rows {
		sheet.rows = append(sheet.rows, append([]string(nil), row...))
	}
	s.sheets[name] = sheet
}

type memorySheet struct {
	mu   sync.RWMutex
	name string
	rows [][]string
}

func (m *memorySheet) Name() string { return m.name }

func (m *memorySheet) ReadAll() ([][]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	rows := make([][]string, len(m.rows))
	for i, row := range m.rows {
		rows[i] = append([]string(nil), row...)
	}
	return rows, nil
}

func (m *memorySheet) AppendRow(values []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rows = append(m.rows, append([]string(nil), values...))
	return nil
}

func (m *memorySheet) UpdateRow(index int, values []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if index < 1 || index > len(m.rows) {
		return errors.NewSheetError("update_row", m.name, errors.ErrNotFound)
	}
	width := len(values)
	if w := len(m.rows[index-1]); w > width {
		width = w
	}
	row := make([]string, width)
	copy(row, values)
	m.rows[index-1] = row
	return nil
}

func (m *memorySheet) DeleteRow(index int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if index < 1 || index > len(m.rows) {
		return errors.NewSheetError("delete_row", m.name, errors.ErrNotFound)
	}
	m.rows = append(m.rows[:index-1], m.rows[index:]...)
	return nil
}
