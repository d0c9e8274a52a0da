// Package grid lays test blocks out into a single spreadsheet-shaped grid.
//
// The composed grid stacks one section per data set: the cross-block average
// first, then every block in parse order. Each section is a title row followed
// by the template's rows, with one blank separator row between sections.
package grid

// Cell is a 1-based (row, column) coordinate in the output grid.
type Cell struct {
	Row int
	Col int
}

// Title is a section heading occupying one grid row, merged across columns
// 1..Span when rendered.
type Title struct {
	Row  int
	Text string
	Span int
}

// Grid is a sparse numeric grid plus its section titles. A position absent
// from Values was never written, which is distinct from a written zero.
type Grid struct {
	Values map[Cell]float64
	Titles []Title

	maxRow int
	maxCol int
}

// New returns an empty grid.
func New() *Grid {
	return &Grid{Values: make(map[Cell]float64)}
}

// Set writes a value at the given cell, growing the occupied rectangle.
func (g *Grid) Set(row, col int, v float64) {
	g.Values[Cell{Row: row, Col: col}] = v
	g.grow(row, col)
}

// AddTitle records a section heading at the given row spanning columns
// 1..span. A span below one still occupies column one.
func (g *Grid) AddTitle(row int, text string, span int) {
	if span < 1 {
		span = 1
	}
	g.Titles = append(g.Titles, Title{Row: row, Text: text, Span: span})
	g.grow(row, span)
}

// Value returns the value at (row, col) and whether one was written.
func (g *Grid) Value(row, col int) (float64, bool) {
	v, ok := g.Values[Cell{Row: row, Col: col}]
	return v, ok
}

// MaxRow returns the last occupied row, counting title rows.
func (g *Grid) MaxRow() int { return g.maxRow }

// MaxCol returns the last occupied column, counting title spans.
func (g *Grid) MaxCol() int { return g.maxCol }

func (g *Grid) grow(row, col int) {
	if row > g.maxRow {
		g.maxRow = row
	}
	if col > g.maxCol {
		g.maxCol = col
	}
}
