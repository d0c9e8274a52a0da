// Package template reads channel layout templates from .xlsx workbooks.
//
// A template is a 2-D grid whose cells either hold a channel number or are
// empty. The mapper turns the first sheet into a position -> channel mapping
// plus the bounding extent of the populated cells.
package template

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Position is a 1-based (row, column) coordinate in the template grid.
type Position struct {
	Row int
	Col int
}

// Mapping assigns channel numbers to grid positions. MaxRow and MaxCol are
// the running maxima over all mapped positions; a zero extent means the
// template held no integer cells, which callers may treat as fatal or not.
type Mapping struct {
	Channels map[Position]int
	MaxRow   int
	MaxCol   int
}

// Empty reports whether the template contained no integer cells.
func (m Mapping) Empty() bool {
	return m.MaxRow == 0 || m.MaxCol == 0
}

// Build constructs a Mapping from raw cell values, row by row. Cells whose
// content does not parse as an integer are skipped. A channel appearing in
// more than one cell keeps every position; a position written twice keeps the
// last value.
func Build(rows [][]string) Mapping {
	m := Mapping{Channels: make(map[Position]int)}
	for i, row := range rows {
		for j, cell := range row {
			chnl, err := strconv.Atoi(strings.TrimSpace(cell))
			if err != nil {
				continue
			}
			pos := Position{Row: i + 1, Col: j + 1}
			m.Channels[pos] = chnl
			if pos.Row > m.MaxRow {
				m.MaxRow = pos.Row
			}
			if pos.Col > m.MaxCol {
				m.MaxCol = pos.Col
			}
		}
	}
	return m
}

// ReadFile loads the first sheet of an .xlsx template. A missing file is
// reported as the wrapped open error; an all-empty sheet returns a
// zero-extent Mapping, not an error.
func ReadFile(path string) (Mapping, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return Mapping{}, fmt.Errorf("failed to open template file: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return Mapping{Channels: make(map[Position]int)}, nil
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return Mapping{}, fmt.Errorf("failed to read template sheet %q: %w", sheet, err)
	}

	return Build(rows), nil
}
