// cmd/covmerge/merge.go
// Implements the `covmerge merge` command: scans/reads ProcessCov JSON
// files (plain or gzipped), calls cov.MergeProcesses, and writes the merged
// report as canonical JSON (optionally gzipped, optionally pretty-printed)
// or, with --format proto, in internal/wire's compact binary encoding.
package main

import (
	"compress/gzip"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/Voskan/covmerge/internal/logging"
	"github.com/Voskan/covmerge/internal/metrics"
	"github.com/Voskan/covmerge/internal/rangetree"
	"github.com/Voskan/covmerge/internal/scandir"
	"github.com/Voskan/covmerge/internal/store"
	"github.com/Voskan/covmerge/internal/telemetry"
	"github.com/Voskan/covmerge/internal/util"
	"github.com/Voskan/covmerge/internal/wire"
	"github.com/Voskan/covmerge/pkg/cov"
	"github.com/Voskan/covmerge/pkg/v8coverage"
)

func newMergeCmd() *cobra.Command {
	var (
		outPath   string
		format    string
		pretty    bool
		gzipOut   bool
		noClobber bool
		metricsOn bool
		tracingOn bool
	)

	cmd := &cobra.Command{
		Use:   "merge <dir|file...>",
		Short: "Merge one or more V8 coverage reports into a single normalized report",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != formatJSON && format != formatProto {
				return fmt.Errorf("merge: unknown format %q (want %s or %s)", format, formatJSON, formatProto)
			}
			log := logging.ForRun(util.MustNewRunID())

			if metricsOn {
				metrics.Register()
			}
			shutdown, err := telemetry.Init(cmd.Context(), tracingOn)
			if err != nil {
				return fmt.Errorf("merge: init telemetry: %w", err)
			}
			defer shutdown(context.Background())

			processes, err := loadInputs(args)
			if err != nil {
				return fmt.Errorf("merge: %w", err)
			}
			metrics.InputReportsLoaded.Set(float64(len(processes)))
			log.Infow("loaded coverage reports", "count", len(processes))

			splitsBefore := rangetree.SplitOps.Load()
			_, span := telemetry.StartSpan(cmd.Context(), "mergeProcesses")
			start := time.Now()
			merged := cov.MergeProcesses(processes)
			elapsed := time.Since(start)
			span.End()

			metrics.ObserveMerge("process", elapsed.Seconds())
			metrics.SplitOpsTotal.Add(float64(rangetree.SplitOps.Load() - splitsBefore))
			var functionCount int64
			for _, s := range merged.Result {
				functionCount += int64(len(s.Functions))
			}
			metrics.FunctionsMergedTotal.Add(float64(functionCount))
			store.Global.RecordRun(functionCount)

			log.Infow("merge complete", "scripts", len(merged.Result), "functions", functionCount, "elapsed", elapsed)

			if outPath == "" {
				data, err := encodeOutput(merged, format, pretty)
				if err != nil {
					return err
				}
				_, err = os.Stdout.Write(data)
				return err
			}

			return writeOutput(outPath, merged, format, pretty, gzipOut, noClobber)
		},
	}

	cmd.Flags().StringVarP(&outPath, "output", "o", "", "Output file path (default: stdout)")
	cmd.Flags().StringVar(&format, "format", formatJSON, "Output encoding: json or proto")
	cmd.Flags().BoolVar(&pretty, "json", false, "Pretty-print the output JSON (json format only)")
	cmd.Flags().BoolVar(&gzipOut, "gzip", false, "Gzip-compress the output file")
	cmd.Flags().BoolVar(&noClobber, "no-clobber", false, "Refuse to overwrite an existing output file")
	cmd.Flags().BoolVar(&metricsOn, "metrics", false, "Record Prometheus metrics for this run")
	cmd.Flags().BoolVar(&tracingOn, "trace", false, "Emit OpenTelemetry spans (stdout exporter) for this run")
	return cmd
}

// loadInputs accepts either a single directory or a list of files, mirroring
// scandir's filename-sorted directory scan for the directory case.
func loadInputs(args []string) ([]cov.ProcessCov, error) {
	if len(args) == 1 {
		info, err := os.Stat(args[0])
		if err != nil {
			return nil, err
		}
		if info.IsDir() {
			return scandir.LoadAll(args[0])
		}
	}

	out := make([]cov.ProcessCov, 0, len(args))
	for _, path := range args {
		p, err := scandir.LoadFile(scandir.Entry{Path: path, Gzipped: strings.HasSuffix(path, ".gz")})
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		out = append(out, p)
	}
	return out, nil
}

const (
	formatJSON  = "json"
	formatProto = "proto"
)

func encodeOutput(p cov.ProcessCov, format string, pretty bool) ([]byte, error) {
	if format == formatProto {
		return wire.Marshal(p), nil
	}
	if pretty {
		return v8coverage.MarshalIndent(p)
	}
	return v8coverage.Marshal(p)
}

func writeOutput(path string, p cov.ProcessCov, format string, pretty, gzipOut, noClobber bool) error {
	flags := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	if noClobber {
		flags = os.O_WRONLY | os.O_CREATE | os.O_EXCL
	}

	f, err := os.OpenFile(path, flags, 0o644)
	if err != nil {
		return fmt.Errorf("merge: open output: %w", err)
	}
	defer f.Close()

	data, err := encodeOutput(p, format, pretty)
	if err != nil {
		return fmt.Errorf("merge: encode output: %w", err)
	}

	if !gzipOut {
		_, err = f.Write(data)
		return err
	}

	gw := gzip.NewWriter(f)
	if _, err := gw.Write(data); err != nil {
		_ = gw.Close()
		return fmt.Errorf("merge: write gzip stream: %w", err)
	}
	return gw.Close()
}
