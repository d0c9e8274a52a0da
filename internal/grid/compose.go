package grid

import (
	"fmt"

	"github.com/jackzampolin/thermomap/internal/logparse"
	"github.com/jackzampolin/thermomap/internal/template"
)

// AverageTitle is the heading of the leading average section.
const AverageTitle = "Average Temperature Map"

// Composed bundles the laid-out grid with every numeric value written into
// it, in write order. The value list feeds the color scale.
type Composed struct {
	Grid   *Grid
	Values []float64
}

// Composer stacks titled sections into one output grid. Sections are written
// top to bottom: the average first, then each block in parse order, separated
// by one blank row.
type Composer struct {
	mapping template.Mapping
	out     *Composed
	row     int
	blocks  int
}

// NewComposer returns a composer whose first section lands at row 1.
func NewComposer(m template.Mapping) *Composer {
	return &Composer{
		mapping: m,
		out:     &Composed{Grid: New()},
		row:     1,
	}
}

// WriteAverage writes the average section.
func (c *Composer) WriteAverage(avgs map[int]float64) {
	c.writeSection(AverageTitle, avgs)
}

// WriteBlock writes the next block section. Blocks are numbered by call
// order, starting at 1.
func (c *Composer) WriteBlock(b logparse.Block) {
	c.blocks++
	c.writeSection(fmt.Sprintf("Block %d (#####%s#####)", c.blocks, b.Title), b.Temps)
}

// Result returns the composed grid and its written values.
func (c *Composer) Result() *Composed {
	return c.out
}

// writeSection writes one titled section at the current row and moves the
// cursor past the section body plus one blank separator row. The body spans
// the template's extent even when some or all cells stay unwritten: a channel
// that is mapped but missing from temps leaves its cell absent.
func (c *Composer) writeSection(title string, temps map[int]float64) {
	c.out.Grid.AddTitle(c.row, title, c.mapping.MaxCol)
	c.row++

	for pos, chnl := range c.mapping.Channels {
		temp, ok := temps[chnl]
		if !ok {
			continue
		}
		c.out.Grid.Set(c.row+pos.Row-1, pos.Col, temp)
		c.out.Values = append(c.out.Values, temp)
	}

	c.row += c.mapping.MaxRow + 1
}

// Compose builds the unified output grid in one call: the average section at
// row 1, then each block in parse order. Section N's title row sits maxRow+2
// rows below section N-1's.
func Compose(m template.Mapping, avgs map[int]float64, blocks []logparse.Block) *Composed {
	c := NewComposer(m)
	c.WriteAverage(avgs)
	for _, b := range blocks {
		c.WriteBlock(b)
	}
	return c.Result()
}
