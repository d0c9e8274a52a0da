// Package pipeline runs the full log-to-workbook transformation.
//
// A run parses the temperature log, reads the layout template, computes
// per-channel averages, composes the output grid, and saves the result
// workbook. Each invocation is independent and allocates fresh state; a run
// either completes or fails, with no mid-run cancellation.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/jackzampolin/thermomap/internal/aggregate"
	"github.com/jackzampolin/thermomap/internal/grid"
	"github.com/jackzampolin/thermomap/internal/home"
	"github.com/jackzampolin/thermomap/internal/logparse"
	"github.com/jackzampolin/thermomap/internal/render"
	"github.com/jackzampolin/thermomap/internal/template"
)

// Stage identifies a progress checkpoint within a run.
type Stage string

const (
	StageParse     Stage = "parse"
	StageTemplate  Stage = "template"
	StageAggregate Stage = "aggregate"
	StageCompose   Stage = "compose"
	StageSave      Stage = "save"
)

// Progress is delivered synchronously to the caller's callback at each
// checkpoint. Block and Blocks are set during StageCompose only.
type Progress struct {
	Stage   Stage
	Message string
	Block   int
	Blocks  int
}

// ProgressFunc receives progress notifications. Callers invoking Run off
// their main thread are responsible for marshaling these back themselves.
type ProgressFunc func(Progress)

// Request contains the parameters for one pipeline run. All paths are
// explicit; nothing is looked up implicitly.
type Request struct {
	DataFile     string       // temperature log to parse
	TemplateFile string       // layout template workbook
	OutputDir    string       // directory the result workbook is written to
	Logger       *slog.Logger // optional logger for progress updates
	OnProgress   ProgressFunc // optional checkpoint callback
}

// Result contains the result of a successful pipeline run.
type Result struct {
	RunID            string   `json:"run_id" yaml:"run_id"`
	Artifact         string   `json:"artifact" yaml:"artifact"`
	Blocks           int      `json:"blocks" yaml:"blocks"`
	MappedPositions  int      `json:"mapped_positions" yaml:"mapped_positions"`
	TemplateRows     int      `json:"template_rows" yaml:"template_rows"`
	TemplateCols     int      `json:"template_cols" yaml:"template_cols"`
	AveragedChannels int      `json:"averaged_channels" yaml:"averaged_channels"`
	WrittenValues    int      `json:"written_values" yaml:"written_values"`
	MinTemp          *float64 `json:"min_temp,omitempty" yaml:"min_temp,omitempty"`
	MaxTemp          *float64 `json:"max_temp,omitempty" yaml:"max_temp,omitempty"`
}

// Run executes the pipeline synchronously and returns the path of the
// written artifact inside the Result. Missing input files abort before any
// processing; an empty template is not fatal and produces title-only
// sections. The destination file is always overwritten.
func Run(ctx context.Context, req Request) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	log := req.Logger
	if log == nil {
		log = slog.Default()
	}
	progress := req.OnProgress
	if progress == nil {
		progress = func(Progress) {}
	}

	// Both inputs must be present before any processing happens.
	for _, p := range []string{req.DataFile, req.TemplateFile} {
		if _, err := os.Stat(p); err != nil {
			return nil, fmt.Errorf("input file not found: %w", err)
		}
	}

	runID := uuid.New().String()
	log.Info("starting run", "run_id", runID, "data", req.DataFile, "template", req.TemplateFile)

	progress(Progress{Stage: StageParse, Message: "parsing data file"})
	blocks, diag, err := logparse.ParseFile(req.DataFile)
	if err != nil {
		return nil, err
	}
	log.Info("parsed data file", "blocks", len(blocks), "readings", diag.Readings,
		"invalid", diag.InvalidReadings, "ignored", diag.Ignored)

	progress(Progress{Stage: StageTemplate, Message: "reading template mapping"})
	mapping, err := template.ReadFile(req.TemplateFile)
	if err != nil {
		return nil, err
	}
	if mapping.Empty() {
		log.Warn("template has no channel cells; sections will be title-only")
	} else {
		log.Info("read template mapping", "rows", mapping.MaxRow, "cols", mapping.MaxCol,
			"positions", len(mapping.Channels))
	}

	progress(Progress{Stage: StageAggregate, Message: "computing channel averages"})
	avgs := aggregate.Average(blocks)
	log.Info("computed averages", "channels", len(avgs))

	composer := grid.NewComposer(mapping)
	composer.WriteAverage(avgs)
	for i, b := range blocks {
		progress(Progress{
			Stage:   StageCompose,
			Message: fmt.Sprintf("writing block %d (#####%s#####)", i+1, b.Title),
			Block:   i + 1,
			Blocks:  len(blocks),
		})
		composer.WriteBlock(b)
	}
	composed := composer.Result()

	scale := grid.PlanColorScale(composed.Values)
	if scale != nil {
		log.Info("planned color scale", "min", scale.Min, "mid", scale.Mid, "max", scale.Max)
	}

	artifact := filepath.Join(req.OutputDir, home.ResultFileName)
	progress(Progress{Stage: StageSave, Message: "saving result workbook"})
	if err := render.WriteFile(composed.Grid, scale, artifact); err != nil {
		return nil, err
	}
	log.Info("saved result workbook", "path", artifact)

	res := &Result{
		RunID:            runID,
		Artifact:         artifact,
		Blocks:           len(blocks),
		MappedPositions:  len(mapping.Channels),
		TemplateRows:     mapping.MaxRow,
		TemplateCols:     mapping.MaxCol,
		AveragedChannels: len(avgs),
		WrittenValues:    len(composed.Values),
	}
	if scale != nil {
		res.MinTemp = &scale.Min
		res.MaxTemp = &scale.Max
	}
	return res, nil
}
