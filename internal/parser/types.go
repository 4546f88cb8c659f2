package parser

import (
	"strconv"
	"strings"
)

// Cell is one spreadsheet cell as read from the file: the display
// string, plus the numeric reading when the text parses as a number.
// Whether the numeric reading is used is decided per field, never by
// implicit coercion.
type Cell struct {
	Text  string
	Num   float64
	IsNum bool
}

// NewCell builds a Cell from the raw display string.
func NewCell(text string) Cell {
	c := Cell{Text: strings.TrimSpace(text)}
	if c.Text == "" {
		return c
	}
	n := strings.ReplaceAll(c.Text, ",", "")
	if v, err := strconv.ParseFloat(n, 64); err == nil {
		c.Num = v
		c.IsNum = true
	}
	return c
}

// Empty reports whether the cell holds no value.
func (c Cell) Empty() bool {
	return c.Text == ""
}

// RawRow is one decoded data row: cells keyed by header label.
// Row is 1-based over data rows (the header row is not counted).
type RawRow struct {
	Row   int
	Cells map[string]Cell
}

// ExtractedRow is the semantic reading of a RawRow after alias
// resolution. ProviderID is zero when the column is absent; the raw
// strings are kept for error messages.
type ExtractedRow struct {
	Row         int
	ItemID      int64
	ItemRaw     string
	Quantity    float64
	QuantityRaw string
	ProviderID  int64
	ProviderRaw string
	Date        string // YYYY-MM-DD, optional
	Time        string // HH:MM, optional
	Note        string // optional
}
