package source

import (
	"errors"
	"fmt"
	"strings"

	"github.com/andresuchdata/fcd-dashboard/backend-go/internal/domain"
	"github.com/xuri/excelize/v2"
)

// ReadXLSX reads the first sheet of an XLSX workbook into a Table.
// The first row is expected to be the header, like the CSV sources.
func ReadXLSX(path string) (*Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open xlsx file %s: %w", path, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, &domain.ParseError{File: path, Err: errors.New("workbook has no sheets")}
	}
	sheet := sheets[0]

	rows, err := f.Rows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read rows from sheet %s: %w", sheet, err)
	}
	defer rows.Close()

	t := &Table{File: path}
	for rows.Next() {
		record, err := rows.Columns()
		if err != nil {
			return nil, &domain.ParseError{File: path, Err: err}
		}
		if t.Header == nil {
			if isBlank(record) {
				continue
			}
			for i := range record {
				record[i] = strings.TrimSpace(record[i])
			}
			t.Header = record
			continue
		}
		if isBlank(record) {
			continue
		}
		t.Rows = append(t.Rows, record)
	}
	if err := rows.Error(); err != nil {
		return nil, fmt.Errorf("error iterating rows in %s: %w", path, err)
	}

	if t.Header == nil {
		return nil, &domain.ParseError{File: path, Err: errors.New("sheet is empty, header row expected")}
	}
	return t, nil
}
