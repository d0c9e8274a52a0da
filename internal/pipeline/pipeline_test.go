package pipeline

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/jackzampolin/thermomap/internal/render"
)

const testLog = `#####1#####
chnl 1, valid 1, temp 20.0
chnl 2, valid 1, temp 30.0
#####2#####
chnl 1, valid 1, temp 22.0
`

// writeFixtures lays down a log and a 1x2 template {(1,1):1, (1,2):2}.
func writeFixtures(t *testing.T) (dataFile, templateFile, outDir string) {
	t.Helper()
	dir := t.TempDir()

	dataFile = filepath.Join(dir, "data1.txt")
	if err := os.WriteFile(dataFile, []byte(testLog), 0o644); err != nil {
		t.Fatalf("failed to write log fixture: %v", err)
	}

	f := excelize.NewFile()
	defer f.Close()
	if err := f.SetCellValue("Sheet1", "A1", 1); err != nil {
		t.Fatalf("failed to set template cell: %v", err)
	}
	if err := f.SetCellValue("Sheet1", "B1", 2); err != nil {
		t.Fatalf("failed to set template cell: %v", err)
	}
	templateFile = filepath.Join(dir, "template.xlsx")
	if err := f.SaveAs(templateFile); err != nil {
		t.Fatalf("failed to save template fixture: %v", err)
	}

	return dataFile, templateFile, filepath.Join(dir, "result")
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRun(t *testing.T) {
	dataFile, templateFile, outDir := writeFixtures(t)

	var stages []Stage
	res, err := Run(context.Background(), Request{
		DataFile:     dataFile,
		TemplateFile: templateFile,
		OutputDir:    outDir,
		Logger:       quietLogger(),
		OnProgress:   func(p Progress) { stages = append(stages, p.Stage) },
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	t.Run("summary counts", func(t *testing.T) {
		if res.Blocks != 2 {
			t.Errorf("expected 2 blocks, got %d", res.Blocks)
		}
		if res.MappedPositions != 2 {
			t.Errorf("expected 2 mapped positions, got %d", res.MappedPositions)
		}
		if res.AveragedChannels != 2 {
			t.Errorf("expected 2 averaged channels, got %d", res.AveragedChannels)
		}
		// Two averages + two block-1 values + one block-2 value.
		if res.WrittenValues != 5 {
			t.Errorf("expected 5 written values, got %d", res.WrittenValues)
		}
		if res.MinTemp == nil || *res.MinTemp != 20.0 {
			t.Errorf("expected min 20.0, got %v", res.MinTemp)
		}
		if res.MaxTemp == nil || *res.MaxTemp != 30.0 {
			t.Errorf("expected max 30.0, got %v", res.MaxTemp)
		}
		if res.RunID == "" {
			t.Error("expected a run ID")
		}
	})

	t.Run("progress checkpoints", func(t *testing.T) {
		want := []Stage{StageParse, StageTemplate, StageAggregate,
			StageCompose, StageCompose, StageSave}
		if len(stages) != len(want) {
			t.Fatalf("expected %d checkpoints, got %d: %v", len(want), len(stages), stages)
		}
		for i, s := range want {
			if stages[i] != s {
				t.Errorf("checkpoint %d: expected %s, got %s", i, s, stages[i])
			}
		}
	})

	t.Run("artifact layout", func(t *testing.T) {
		f, err := excelize.OpenFile(res.Artifact)
		if err != nil {
			t.Fatalf("failed to open artifact: %v", err)
		}
		defer f.Close()

		// Section titles at rows 1, 4, 7.
		for _, tc := range []struct {
			axis string
			want string
		}{
			{"A1", "Average Temperature Map"},
			{"A4", "Block 1 (#####1#####)"},
			{"A7", "Block 2 (#####2#####)"},
			{"A2", "21"}, // chnl 1 average of 20 and 22
			{"B2", "30"}, // chnl 2 average of a single block
			{"A5", "20"}, // block 1
			{"B5", "30"}, // block 1
			{"A8", "22"}, // block 2
			{"B8", ""},   // chnl 2 absent from block 2
		} {
			v, err := f.GetCellValue(render.SheetName, tc.axis)
			if err != nil {
				t.Fatalf("failed to read %s: %v", tc.axis, err)
			}
			if v != tc.want {
				t.Errorf("%s: expected %q, got %q", tc.axis, tc.want, v)
			}
		}
	})
}

func TestRun_Deterministic(t *testing.T) {
	// Re-running on identical inputs yields the same grid content.
	dataFile, templateFile, outDir := writeFixtures(t)

	req := Request{
		DataFile:     dataFile,
		TemplateFile: templateFile,
		OutputDir:    outDir,
		Logger:       quietLogger(),
	}

	read := func() [][]string {
		res, err := Run(context.Background(), req)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		f, err := excelize.OpenFile(res.Artifact)
		if err != nil {
			t.Fatalf("failed to open artifact: %v", err)
		}
		defer f.Close()
		rows, err := f.GetRows(render.SheetName)
		if err != nil {
			t.Fatalf("failed to read rows: %v", err)
		}
		return rows
	}

	first := read()
	second := read()
	if len(first) != len(second) {
		t.Fatalf("row counts differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if len(first[i]) != len(second[i]) {
			t.Fatalf("row %d lengths differ", i)
		}
		for j := range first[i] {
			if first[i][j] != second[i][j] {
				t.Errorf("cell (%d,%d) differs: %q vs %q", i, j, first[i][j], second[i][j])
			}
		}
	}
}

func TestRun_MissingInputs(t *testing.T) {
	dataFile, templateFile, outDir := writeFixtures(t)

	t.Run("missing data file", func(t *testing.T) {
		_, err := Run(context.Background(), Request{
			DataFile:     filepath.Join(t.TempDir(), "absent.txt"),
			TemplateFile: templateFile,
			OutputDir:    outDir,
			Logger:       quietLogger(),
		})
		if !errors.Is(err, fs.ErrNotExist) {
			t.Errorf("expected fs.ErrNotExist, got %v", err)
		}
	})

	t.Run("missing template file", func(t *testing.T) {
		_, err := Run(context.Background(), Request{
			DataFile:     dataFile,
			TemplateFile: filepath.Join(t.TempDir(), "absent.xlsx"),
			OutputDir:    outDir,
			Logger:       quietLogger(),
		})
		if !errors.Is(err, fs.ErrNotExist) {
			t.Errorf("expected fs.ErrNotExist, got %v", err)
		}
	})
}
