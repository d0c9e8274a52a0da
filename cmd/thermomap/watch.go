package main

import (
	"errors"
	"io/fs"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/jackzampolin/thermomap/internal/pipeline"
)

var watchDebounce time.Duration

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Re-run processing whenever the data file changes",
	Long: `Watch the temperature log and regenerate result.xlsx every time the
acquisition side rewrites it. The same path resolution as the process
command applies, and config file changes are picked up between runs.

Stops on Ctrl+C or SIGTERM.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		_, cm, err := setup()
		if err != nil {
			return err
		}
		cm.WatchConfig()

		// Paths are re-resolved on every run so a config reload takes
		// effect; the watched location itself stays fixed.
		dataFile := resolveRequest(cm.Get()).DataFile
		log := newLogger(cm.Get().LogLevel)

		watcher, err := fsnotify.NewWatcher()
		if err != nil {
			return err
		}
		defer watcher.Close()

		// Watch the directory, not the file: editors and the acquisition
		// tool replace the file, which would drop a direct watch.
		if err := watcher.Add(filepath.Dir(dataFile)); err != nil {
			return err
		}

		run := func() {
			req := resolveRequest(cm.Get())
			req.Logger = log
			res, err := pipeline.Run(ctx, req)
			if err != nil {
				if errors.Is(err, fs.ErrNotExist) {
					log.Warn("inputs not ready", "error", err)
					return
				}
				log.Error("run failed", "error", err)
				return
			}
			log.Info("run complete", "run_id", res.RunID, "artifact", res.Artifact)
		}

		// Process once up front, then on every settled change.
		run()
		log.Info("watching for changes", "data", dataFile)

		var timer *time.Timer
		pending := make(chan struct{}, 1)
		for {
			select {
			case <-ctx.Done():
				return nil
			case ev, ok := <-watcher.Events:
				if !ok {
					return nil
				}
				if ev.Name != dataFile || ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
					continue
				}
				// Debounce bursts of writes into one run.
				if timer != nil {
					timer.Stop()
				}
				timer = time.AfterFunc(watchDebounce, func() {
					select {
					case pending <- struct{}{}:
					default:
					}
				})
			case <-pending:
				run()
			case err, ok := <-watcher.Errors:
				if !ok {
					return nil
				}
				log.Error("watch error", "error", err)
			}
		}
	},
}

func init() {
	watchCmd.Flags().StringVar(&processData, "data", "", "temperature log file")
	watchCmd.Flags().StringVar(&processTemplate, "template", "", "layout template workbook")
	watchCmd.Flags().StringVar(&processOut, "out", "", "output directory for result.xlsx")
	watchCmd.Flags().DurationVar(&watchDebounce, "debounce", 500*time.Millisecond, "quiet period before re-running")

	rootCmd.AddCommand(watchCmd)
}
