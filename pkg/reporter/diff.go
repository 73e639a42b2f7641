package reporter

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/yaklabco/jdkup/internal/ui/pretty"
	"github.com/yaklabco/jdkup/pkg/diff"
	"github.com/yaklabco/jdkup/pkg/runner"
)

// DiffReporter formats apply results as unified diffs in git style.
type DiffReporter struct {
	opts   Options
	styles *pretty.Styles
	bw     *bufio.Writer
}

// NewDiffReporter creates a new diff reporter.
func NewDiffReporter(opts Options) *DiffReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &DiffReporter{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// ReportApply implements Reporter.
func (r *DiffReporter) ReportApply(_ context.Context, result *runner.ApplyResult) (err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil {
		return nil
	}

	var filesWithDiffs int
	var totalAdditions, totalDeletions int

	for _, file := range result.Files {
		path := displayPath(r.opts.WorkingDir, file.Path)

		if file.Error != nil && file.Result == nil {
			fmt.Fprintf(r.bw, "%s: %s\n",
				r.styles.FilePath.Render(path),
				r.styles.Error.Render(fmt.Sprintf("error: %v", file.Error)),
			)
			continue
		}

		if file.Result == nil || !file.Result.Diff.HasChanges() {
			continue
		}

		filesWithDiffs++
		totalAdditions += file.Result.Diff.Additions
		totalDeletions += file.Result.Diff.Deletions
		writeDiff(r.bw, r.styles, path, file.Result.Diff)
	}

	if filesWithDiffs > 0 && r.opts.ShowSummary {
		writeDiffSummary(r.bw, r.styles, filesWithDiffs, totalAdditions, totalDeletions)
	}

	return nil
}

// ReportExtract implements Reporter. Extraction has nothing to diff, so
// blocks are written as text.
func (r *DiffReporter) ReportExtract(ctx context.Context, result *runner.ExtractResult) error {
	return NewTextReporter(r.opts).ReportExtract(ctx, result)
}

// writeDiff outputs a single file's diff with formatting.
func writeDiff(out io.Writer, styles *pretty.Styles, displayPath string, fileDiff *diff.Diff) {
	header := fmt.Sprintf("diff --git a/%s b/%s", displayPath, displayPath)
	fmt.Fprintln(out, styles.DiffHeader.Render(header))

	fmt.Fprintln(out, styles.DiffRemove.Render("--- a/"+displayPath))
	fmt.Fprintln(out, styles.DiffAdd.Render("+++ b/"+displayPath))

	// Skip the --- and +++ lines from String(); they carry the absolute path.
	for _, line := range strings.Split(fileDiff.String(), "\n") {
		if line == "" || strings.HasPrefix(line, "--- ") || strings.HasPrefix(line, "+++ ") {
			continue
		}
		writeDiffLine(out, styles, line)
	}

	fmt.Fprintln(out)
}

// writeDiffLine formats a single diff line with color.
func writeDiffLine(out io.Writer, styles *pretty.Styles, line string) {
	var styled string

	switch {
	case strings.HasPrefix(line, "@@"):
		styled = styles.DiffHunk.Render(line)
	case strings.HasPrefix(line, "+"):
		styled = styles.DiffAdd.Render(line)
	case strings.HasPrefix(line, "-"):
		styled = styles.DiffRemove.Render(line)
	default:
		styled = styles.DiffContext.Render(line)
	}

	fmt.Fprintln(out, styled)
}

// writeDiffSummary writes a summary line at the end.
func writeDiffSummary(out io.Writer, styles *pretty.Styles, files, additions, deletions int) {
	var parts []string

	fileWord := "files"
	if files == 1 {
		fileWord = "file"
	}
	parts = append(parts, fmt.Sprintf("%d %s changed", files, fileWord))

	if additions > 0 {
		insertionWord := "insertions"
		if additions == 1 {
			insertionWord = "insertion"
		}
		parts = append(parts, styles.DiffAdd.Render(fmt.Sprintf("%d %s(+)", additions, insertionWord)))
	}

	if deletions > 0 {
		deletionWord := "deletions"
		if deletions == 1 {
			deletionWord = "deletion"
		}
		parts = append(parts, styles.DiffRemove.Render(fmt.Sprintf("%d %s(-)", deletions, deletionWord)))
	}

	fmt.Fprintln(out, strings.Join(parts, ", "))
}
