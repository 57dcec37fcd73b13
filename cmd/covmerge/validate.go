// cmd/covmerge/validate.go
// Implements `covmerge validate <file...>`: decodes coverage files and
// checks the structural invariants a normalized coverage report must
// satisfy (sorted ranges, proper nesting, root present), reporting the
// first violation with an offset. Files are JSON by default; --format
// proto reads internal/wire's binary encoding as produced by
// `covmerge merge --format proto`.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Voskan/covmerge/internal/scandir"
	"github.com/Voskan/covmerge/internal/validate"
	"github.com/Voskan/covmerge/internal/wire"
	"github.com/Voskan/covmerge/pkg/cov"
)

func newValidateCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "validate <file...>",
		Short: "Check coverage files for structural invariant violations",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != formatJSON && format != formatProto {
				return fmt.Errorf("validate: unknown format %q (want %s or %s)", format, formatJSON, formatProto)
			}

			var failed []string
			for _, path := range args {
				p, err := loadForValidation(path, format)
				if err != nil {
					failed = append(failed, path)
					fmt.Printf("%s: decode error: %v\n", path, err)
					continue
				}

				if err := validate.Process(p); err != nil {
					err.File = path
					failed = append(failed, path)
					fmt.Printf("%s (offset %d)\n", err.Error(), err.Offset)
					continue
				}
				fmt.Printf("%s: ok\n", path)
			}

			if len(failed) > 0 {
				return fmt.Errorf("validate: %d of %d files failed", len(failed), len(args))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", formatJSON, "Input encoding: json or proto")
	return cmd
}

func loadForValidation(path, format string) (cov.ProcessCov, error) {
	if format == formatProto {
		data, err := os.ReadFile(path)
		if err != nil {
			return cov.ProcessCov{}, err
		}
		return wire.Unmarshal(data)
	}
	return scandir.LoadFile(scandir.Entry{Path: path, Gzipped: strings.HasSuffix(path, ".gz")})
}
