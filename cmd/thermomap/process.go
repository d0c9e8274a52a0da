package main

import (
	"github.com/spf13/cobra"

	"github.com/jackzampolin/thermomap/internal/api"
	"github.com/jackzampolin/thermomap/internal/config"
	"github.com/jackzampolin/thermomap/internal/pipeline"
)

var (
	processData     string
	processTemplate string
	processOut      string
)

var processCmd = &cobra.Command{
	Use:   "process",
	Short: "Process a temperature log into a result workbook",
	Long: `Parse a temperature test log, map its channels onto the layout template,
and write result.xlsx with the average map, every test block, and a
green-yellow-red color scale.

Paths not given as flags fall back to the config file and then to the
conventional home layout (~/.thermomap/data, ~/.thermomap/template,
~/.thermomap/result).

Examples:
  thermomap process
  thermomap process --data run7.txt --template layouts/board-b.xlsx
  thermomap process --out /tmp/reports -o json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, cm, err := setup()
		if err != nil {
			return err
		}

		req := resolveRequest(cm.Get())
		res, err := pipeline.Run(cmd.Context(), req)
		if err != nil {
			return err
		}

		return api.Output(res)
	},
}

// resolveRequest applies flag overrides on top of the configured paths.
func resolveRequest(cfg *config.Config) pipeline.Request {
	req := pipeline.Request{
		DataFile:     cfg.DataFile,
		TemplateFile: cfg.TemplateFile,
		OutputDir:    cfg.OutputDir,
		Logger:       newLogger(cfg.LogLevel),
	}
	if processData != "" {
		req.DataFile = processData
	}
	if processTemplate != "" {
		req.TemplateFile = processTemplate
	}
	if processOut != "" {
		req.OutputDir = processOut
	}
	return req
}

func init() {
	processCmd.Flags().StringVar(&processData, "data", "", "temperature log file")
	processCmd.Flags().StringVar(&processTemplate, "template", "", "layout template workbook")
	processCmd.Flags().StringVar(&processOut, "out", "", "output directory for result.xlsx")

	rootCmd.AddCommand(processCmd)
}
