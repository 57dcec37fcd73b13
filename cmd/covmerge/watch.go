// cmd/covmerge/watch.go
// Implements `covmerge watch <dir> -o <out>`: an fsnotify-driven loop that
// re-runs the merge whenever the directory's file set changes, falling
// back to interval polling with exponential backoff when fsnotify fails to
// start (e.g. the directory is transiently unreadable while the
// instrumented process is still writing to it). Each run is logged via
// internal/logging tagged with a ULID run ID.
package main

import (
	"context"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/Voskan/covmerge/internal/logging"
	"github.com/Voskan/covmerge/internal/scandir"
	"github.com/Voskan/covmerge/internal/store"
	"github.com/Voskan/covmerge/internal/util"
	"github.com/Voskan/covmerge/pkg/cov"
)

func newWatchCmd() *cobra.Command {
	var (
		outPath  string
		pretty   bool
		interval time.Duration
	)

	cmd := &cobra.Command{
		Use:   "watch <dir>",
		Short: "Re-run the merge whenever coverage files in a directory change",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := args[0]
			log := logging.Sugar()

			runOnce := func() error {
				rlog := logging.ForRun(util.MustNewRunID())
				processes, err := scandir.LoadAll(dir)
				if err != nil {
					store.Global.RecordError()
					return fmt.Errorf("watch: %w", err)
				}

				merged := cov.MergeProcesses(processes)
				var functionCount int64
				for _, s := range merged.Result {
					functionCount += int64(len(s.Functions))
				}
				store.Global.RecordRun(functionCount)
				rlog.Infow("watch: merge run", "scripts", len(merged.Result), "functions", functionCount)

				return writeOutput(outPath, merged, formatJSON, pretty, false, false)
			}

			watcher, err := fsnotify.NewWatcher()
			if err != nil {
				log.Warnw("watch: fsnotify unavailable, falling back to polling", "err", err)
				return pollLoop(cmd.Context(), interval, runOnce)
			}
			defer watcher.Close()

			if err := watcher.Add(dir); err != nil {
				log.Warnw("watch: cannot watch directory, falling back to polling", "err", err)
				return pollLoop(cmd.Context(), interval, runOnce)
			}

			if err := runOnce(); err != nil {
				log.Errorw("watch: initial merge failed", "err", err)
			}

			for {
				select {
				case <-cmd.Context().Done():
					return nil
				case _, ok := <-watcher.Events:
					if !ok {
						return nil
					}
					if err := runOnce(); err != nil {
						log.Errorw("watch: merge failed", "err", err)
					}
				case err, ok := <-watcher.Errors:
					if !ok {
						return nil
					}
					log.Errorw("watch: fsnotify error", "err", err)
				}
			}
		},
	}

	cmd.Flags().StringVarP(&outPath, "output", "o", "", "Output file path, rewritten on every run")
	_ = cmd.MarkFlagRequired("output")
	cmd.Flags().BoolVar(&pretty, "json", false, "Pretty-print the output JSON")
	cmd.Flags().DurationVar(&interval, "interval", 5*time.Second, "Polling interval used when fsnotify is unavailable")
	return cmd
}

// pollLoop re-runs fn on a fixed interval with exponential backoff applied
// whenever fn fails, continuing until ctx is cancelled.
func pollLoop(ctx context.Context, interval time.Duration, fn func() error) error {
	log := logging.Sugar()
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = interval
	bo.MaxInterval = interval * 10

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if err := fn(); err != nil {
				log.Errorw("watch: poll failed, backing off", "err", err)
				time.Sleep(bo.NextBackOff())
				continue
			}
			bo.Reset()
		}
	}
}
