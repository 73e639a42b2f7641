// Package reporter writes apply and extract results in the supported
// output formats.
package reporter

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/yaklabco/jdkup/pkg/config"
	"github.com/yaklabco/jdkup/pkg/runner"
)

// Compile-time interface checks.
var (
	_ Reporter = (*TextReporter)(nil)
	_ Reporter = (*JSONReporter)(nil)
	_ Reporter = (*DiffReporter)(nil)
	_ Reporter = (*TableReporter)(nil)
)

// Reporter formats and writes run results.
type Reporter interface {
	// ReportApply writes the outcome of an apply run.
	ReportApply(ctx context.Context, result *runner.ApplyResult) error

	// ReportExtract writes the blocks found by an extract run.
	ReportExtract(ctx context.Context, result *runner.ExtractResult) error
}

// New creates a Reporter for the specified options.
func New(opts Options) (Reporter, error) {
	defaults := DefaultOptions()
	if opts.Writer == nil {
		opts.Writer = defaults.Writer
	}
	if opts.ErrorWriter == nil {
		opts.ErrorWriter = defaults.ErrorWriter
	}

	format, err := config.ParseFormat(string(opts.Format))
	if err != nil {
		return nil, err
	}
	opts.Format = format

	switch format {
	case config.FormatJSON:
		return NewJSONReporter(opts), nil
	case config.FormatDiff:
		return NewDiffReporter(opts), nil
	case config.FormatTable:
		return NewTableReporter(opts), nil
	default:
		return NewTextReporter(opts), nil
	}
}

// displayPath converts path to a slash path relative to workingDir (or
// the process working directory). Paths that would need more than two
// parent traversals are shown as-is.
func displayPath(workingDir, path string) string {
	if !filepath.IsAbs(path) {
		return filepath.ToSlash(path)
	}

	base := workingDir
	if base == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return filepath.ToSlash(path)
		}
		base = cwd
	}

	rel, err := filepath.Rel(base, path)
	if err != nil || strings.Count(rel, "..") > 2 {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(rel)
}
