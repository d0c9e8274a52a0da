package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/jackzampolin/thermomap/internal/api"
	"github.com/jackzampolin/thermomap/internal/config"
	"github.com/jackzampolin/thermomap/internal/home"
	"github.com/jackzampolin/thermomap/version"
)

var (
	cfgFile      string
	homeDir      string
	outputFormat string
)

var rootCmd = &cobra.Command{
	Use:   "thermomap",
	Short: "Temperature log to spreadsheet heat map converter",
	Long: `Thermomap turns flat-text temperature test logs into a single .xlsx
workbook that lays every test block out on the physical channel grid.

The pipeline includes:
  - Test-block log parsing with valid-flag filtering
  - Channel position mapping from an .xlsx layout template
  - Per-channel averaging across all blocks
  - A green-yellow-red color scale over the written temperatures`,
	Version: version.GitRelease,
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile, "config", "", "config file (default: ./config.yaml or ~/.thermomap/config.yaml)",
	)
	rootCmd.PersistentFlags().StringVar(
		&homeDir, "home", "", "thermomap home directory (default: ~/.thermomap)",
	)
	rootCmd.PersistentFlags().StringVarP(
		&outputFormat, "output", "o", "yaml", "output format: yaml or json",
	)

	// Set output format before any command runs
	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		api.SetOutputFormat(outputFormat)
	}

	rootCmd.AddCommand(versionCmd)
}

// setup resolves the home layout and configuration shared by the processing
// commands.
func setup() (*home.Dir, *config.Manager, error) {
	h, err := home.New(homeDir)
	if err != nil {
		return nil, nil, err
	}
	if err := h.EnsureExists(); err != nil {
		return nil, nil, err
	}

	cm, err := config.NewManager(cfgFile, h)
	if err != nil {
		return nil, nil, err
	}
	return h, cm, nil
}

// newLogger builds the CLI logger at the configured level.
func newLogger(level string) *slog.Logger {
	var l slog.Level
	switch level {
	case "debug":
		l = slog.LevelDebug
	case "warn":
		l = slog.LevelWarn
	case "error":
		l = slog.LevelError
	default:
		l = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: l}))
}
