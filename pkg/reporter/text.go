package reporter

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"github.com/yaklabco/jdkup/internal/ui/pretty"
	"github.com/yaklabco/jdkup/pkg/runner"
)

// TextReporter formats results as styled terminal output.
type TextReporter struct {
	opts   Options
	styles *pretty.Styles
	bw     *bufio.Writer
}

// NewTextReporter creates a new text reporter.
func NewTextReporter(opts Options) *TextReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &TextReporter{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// ReportApply implements Reporter. Files are listed with one line per
// change. Dry-run results also show the diff that would be written.
func (r *TextReporter) ReportApply(_ context.Context, result *runner.ApplyResult) (err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil {
		return nil
	}

	for _, file := range result.Files {
		path := displayPath(r.opts.WorkingDir, file.Path)

		if file.Error != nil && file.Result == nil {
			fmt.Fprintf(r.bw, "%s: %s\n",
				r.styles.FilePath.Render(path),
				r.styles.Error.Render(fmt.Sprintf("error: %v", file.Error)),
			)
			continue
		}
		if file.Result == nil {
			continue
		}

		fmt.Fprintln(r.bw, r.styles.FormatFileHeader(path, file.Result.Summary()))
		for _, outcome := range file.Result.Outcomes {
			fmt.Fprint(r.bw, r.styles.FormatOutcome(outcome))
		}
		fmt.Fprintln(r.bw)

		if !file.Result.Written && file.Result.Diff.HasChanges() {
			writeDiff(r.bw, r.styles, path, file.Result.Diff)
		}
	}

	for _, runErr := range result.Errors {
		fmt.Fprintln(r.bw, r.styles.Error.Render(fmt.Sprintf("error: %v", runErr)))
	}

	if r.opts.ShowSummary {
		fmt.Fprint(r.bw, r.styles.FormatApplySummary(result.Stats))
		if result.Quit {
			fmt.Fprintln(r.bw, r.styles.Warning.Render("Stopped at user request; remaining changes were not attempted."))
		}
	}

	return nil
}

// ReportExtract implements Reporter.
func (r *TextReporter) ReportExtract(_ context.Context, result *runner.ExtractResult) (err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil {
		return nil
	}

	for _, file := range result.Files {
		if file.Error != nil {
			fmt.Fprintf(r.bw, "%s: %s\n",
				r.styles.FilePath.Render(file.File.Rel),
				r.styles.Error.Render(fmt.Sprintf("error: %v", file.Error)),
			)
			continue
		}
		if len(file.Blocks) == 0 {
			continue
		}

		fmt.Fprintln(r.bw, r.styles.FormatFileHeader(file.File.Rel, describeFile(file)))
		for _, block := range file.Blocks {
			fmt.Fprint(r.bw, r.styles.FormatBlock(block, r.opts.ShowContent))
		}
		for _, warning := range file.Warnings {
			fmt.Fprint(r.bw, r.styles.FormatWarning(warning))
		}
		fmt.Fprintln(r.bw)
	}

	if r.opts.ShowSummary {
		fmt.Fprint(r.bw, r.styles.FormatExtractSummary(result.Stats))
	}

	return nil
}

// describeFile returns "<category>[, <language>], N block(s)".
func describeFile(file runner.FileBlocks) string {
	parts := []string{file.File.Category.String()}
	if file.Language != "" {
		parts = append(parts, string(file.Language))
	}

	word := "blocks"
	if len(file.Blocks) == 1 {
		word = "block"
	}
	parts = append(parts, fmt.Sprintf("%d %s", len(file.Blocks), word))

	return strings.Join(parts, ", ")
}
