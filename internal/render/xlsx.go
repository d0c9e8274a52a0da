// Package render serializes a composed grid into an .xlsx workbook.
package render

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/xuri/excelize/v2"

	"github.com/jackzampolin/thermomap/internal/grid"
)

// SheetName is the single sheet the result workbook contains.
const SheetName = "result"

// Workbook builds an in-memory workbook from the grid: merged bold section
// titles, numeric cells at every written position, and, when a scale is
// given, a three-color conditional format over the occupied rectangle.
func Workbook(g *grid.Grid, scale *grid.ColorScale) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to name result sheet: %w", err)
	}

	titleStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 12},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create title style: %w", err)
	}

	for _, title := range g.Titles {
		if err := writeTitle(f, title, titleStyle); err != nil {
			f.Close()
			return nil, err
		}
	}

	for cell, v := range g.Values {
		axis, err := excelize.CoordinatesToCellName(cell.Col, cell.Row)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to resolve cell (%d,%d): %w", cell.Row, cell.Col, err)
		}
		if err := f.SetCellValue(SheetName, axis, v); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to write cell %s: %w", axis, err)
		}
	}

	if scale != nil && g.MaxRow() > 0 && g.MaxCol() > 0 {
		if err := applyColorScale(f, g, scale); err != nil {
			f.Close()
			return nil, err
		}
	}

	return f, nil
}

// WriteFile renders the grid and saves it at path, creating the parent
// directory if needed. An existing file at path is overwritten.
func WriteFile(g *grid.Grid, scale *grid.ColorScale, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	f, err := Workbook(g, scale)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save result workbook: %w", err)
	}
	return nil
}

func writeTitle(f *excelize.File, title grid.Title, style int) error {
	start, err := excelize.CoordinatesToCellName(1, title.Row)
	if err != nil {
		return fmt.Errorf("failed to resolve title row %d: %w", title.Row, err)
	}
	if err := f.SetCellValue(SheetName, start, title.Text); err != nil {
		return fmt.Errorf("failed to write title at %s: %w", start, err)
	}
	if err := f.SetCellStyle(SheetName, start, start, style); err != nil {
		return fmt.Errorf("failed to style title at %s: %w", start, err)
	}

	if title.Span > 1 {
		end, err := excelize.CoordinatesToCellName(title.Span, title.Row)
		if err != nil {
			return fmt.Errorf("failed to resolve title span %d: %w", title.Span, err)
		}
		if err := f.MergeCell(SheetName, start, end); err != nil {
			return fmt.Errorf("failed to merge title row %d: %w", title.Row, err)
		}
	}
	return nil
}

func applyColorScale(f *excelize.File, g *grid.Grid, scale *grid.ColorScale) error {
	end, err := excelize.CoordinatesToCellName(g.MaxCol(), g.MaxRow())
	if err != nil {
		return fmt.Errorf("failed to resolve scale range: %w", err)
	}

	err = f.SetConditionalFormat(SheetName, "A1:"+end, []excelize.ConditionalFormatOptions{
		{
			Type:     "3_color_scale",
			Criteria: "=",
			MinType:  "num",
			MinValue: formatFloat(scale.Min),
			MinColor: "#" + grid.ColorLow,
			MidType:  "num",
			MidValue: formatFloat(scale.Mid),
			MidColor: "#" + grid.ColorMid,
			MaxType:  "num",
			MaxValue: formatFloat(scale.Max),
			MaxColor: "#" + grid.ColorHigh,
		},
	})
	if err != nil {
		return fmt.Errorf("failed to apply color scale: %w", err)
	}
	return nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
