package sheets

import (
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"github.com/bookroll/bookroll/pkg/constants"
	"github.com/bookroll/bookroll/pkg/errors"
)

// XLSXStore is a Store backed by an .xlsx workbook on disk. Every
// mutation saves the whole workbook; reads reopen nothing and see the
// in-process state.
type XLSXStore struct {
	path string
	file *excelize.File
}

// OpenWorkbook opens an existing workbook, or creates a new one when the
// path does not exist yet.
func OpenWorkbook(path string) (*XLSXStore, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, constants.DirPermissions); err != nil {
				return nil, errors.WrapIO("create", dir, err)
			}
		}
		file := excelize.NewFile()
		if err := file.SaveAs(path); err != nil {
			return nil, errors.WrapIO("create", path, err)
		}
		return &XLSXStore{path: path, file: file}, nil
	}

	file, err := excelize.OpenFile(path)
	if err != nil {
		return nil, errors.WrapIO("open", path, err)
	}
	return &XLSXStore{path: path, file: file}, nil
}

// Close releases the underlying workbook handle.
func (s *XLSXStore) Close() error {
	return s.file.Close()
}

// Sheet returns an existing sheet, or errors.ErrNotFound.
func (s *XLSXStore) Sheet(name string) (Sheet, error) {
	index, err := s.file.GetSheetIndex(name)
	if err != nil {
		return nil, errors.WrapSheet("lookup", name, err)
	}
	if index < 0 {
		return nil, errors.NewNotFoundError("sheet", name)
	}
	return &xlsxSheet{store: s, name: name}, nil
}

// EnsureSheet returns the named sheet, creating it with the header row
// when absent.
func (s *XLSXStore) EnsureSheet(name string, header []string) (Sheet, error) {
	index, err := s.file.GetSheetIndex(name)
	if err != nil {
		return nil, errors.WrapSheet("lookup", name, err)
	}
	if index >= 0 {
		return &xlsxSheet{store: s, name: name}, nil
	}

	if _, err := s.file.NewSheet(name); err != nil {
		return nil, errors.WrapSheet("create", name, err)
	}
	sheet := &xlsxSheet{store: s, name: name}
	if len(header) > 0 {
		if err := sheet.writeRow(1, header); err != nil {
			return nil, err
		}
	}
	if err := s.save(); err != nil {
		return nil, err
	}
	return sheet, nil
}

func (s *XLSXStore) save() error {
	if err := s.file.SaveAs(s.path); err != nil {
		return errors.WrapIO("write", s.path, err)
	}
	return nil
}

type xlsxSheet struct {
	store *XLSXStore
	name  string
}

func (x *xlsxSheet) Name() string { return x.name }

func (x *xlsxSheet) ReadAll() ([][]string, error) {
	rows, err := x.store.file.GetRows(x.name)
	if err != nil {
		return nil, errors.WrapSheet("read_all", x.name, err)
	}
	return rows, nil
}

func (x *xlsxSheet) AppendRow(values []string) error {
	rows, err := x.store.file.GetRows(x.name)
	if err != nil {
		return errors.WrapSheet("append_row", x.name, err)
	}
	if err := x.writeRow(len(rows)+1, values); err != nil {
		return err
	}
	return x.store.save()
}

func (x *xlsxSheet) UpdateRow(index int, values []string) error {
	rows, err := x.store.file.GetRows(x.name)
	if err != nil {
		return errors.WrapSheet("update_row", x.name, err)
	}
	if index < 1 || index > len(rows) {
		return errors.NewSheetError("update_row", x.name, errors.ErrNotFound)
	}

	// Pad to the old width so stale cells are cleared
	width := len(values)
	if w := len(rows[index-1]); w > width {
		width = w
	}
	row := make([]string, width)
	copy(row, values)

	if err := x.writeRow(index, row); err != nil {
		return err
	}
	return x.store.save()
}

func (x *xlsxSheet) DeleteRow(index int) error {
	if err := x.store.file.RemoveRow(x.name, index); err != nil {
		return errors.WrapSheet("delete_row", x.name, err)
	}
	return x.store.save()
}

func (x *xlsxSheet) writeRow(index int, values []string) error {
	cell, err := excelize.CoordinatesToCellName(1, index)
	if err != nil {
		return errors.WrapSheet("write_row", x.name, err)
	}
	cells := make([]interface{}, len(values))
	for i, v := range values {
		cells[i] = v
	}
	if err := x.store.file.SetSheetRow(x.name, cell, &cells); err != nil {
		return errors.WrapSheet("write_row", x.name, err)
	}
	return nil
}
