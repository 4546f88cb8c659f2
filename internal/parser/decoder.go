package parser

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

// DecodeError marks a buffer that could not be read as a spreadsheet
// with at least one data row. It is fatal to the current upload.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode spreadsheet: %v", e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// Decode reads the first sheet of a spreadsheet, using its first row
// as the header, and returns one RawRow per data row. Pure over the
// input bytes. Empty cells are omitted from the row map so alias
// lookups can distinguish absent from blank.
func Decode(r io.Reader) ([]RawRow, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, &DecodeError{Err: err}
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, &DecodeError{Err: fmt.Errorf("workbook has no sheets")}
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, &DecodeError{Err: err}
	}
	if len(rows) < 2 {
		return nil, &DecodeError{Err: fmt.Errorf("sheet %q has no data rows", sheet)}
	}

	headers := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		headers[i] = strings.TrimSpace(h)
	}

	out := make([]RawRow, 0, len(rows)-1)
	for i := 1; i < len(rows); i++ {
		raw := RawRow{Row: i, Cells: make(map[string]Cell)}
		empty := true
		for col, val := range rows[i] {
			if col >= len(headers) || headers[col] == "" {
				continue
			}
			cell := NewCell(val)
			if cell.Empty() {
				continue
			}
			raw.Cells[headers[col]] = cell
			empty = false
		}
		if empty {
			continue // trailing blank rows are not data
		}
		raw.Row = len(out) + 1
		out = append(out, raw)
	}

	if len(out) == 0 {
		return nil, &DecodeError{Err: fmt.Errorf("sheet %q has no data rows", sheet)}
	}
	return out, nil
}
