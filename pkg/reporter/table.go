package reporter

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"golang.org/x/term"

	"github.com/yaklabco/jdkup/internal/ui/pretty"
	"github.com/yaklabco/jdkup/pkg/runner"
)

// minColumnWidth is the narrowest wrapped column on a terminal.
const minColumnWidth = 20

// TableReporter formats results as a table with one row per change or block.
type TableReporter struct {
	opts      Options
	styles    *pretty.Styles
	termWidth int
	bw        *bufio.Writer
}

// NewTableReporter creates a new table reporter.
func NewTableReporter(opts Options) *TableReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)

	return &TableReporter{
		opts:      opts,
		styles:    pretty.NewStyles(colorEnabled),
		termWidth: getTerminalWidth(opts.Writer),
		bw:        bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// ReportApply implements Reporter.
func (r *TableReporter) ReportApply(_ context.Context, result *runner.ApplyResult) (err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil {
		return nil
	}

	table := r.newTable([]string{"File", "Lines", "Type", "Status", "Stage", "Message"})

	for _, file := range result.Files {
		path := displayPath(r.opts.WorkingDir, file.Path)

		if file.Error != nil && file.Result == nil {
			table.Append([]string{path, "-", "-", "error", "-", file.Error.Error()})
			continue
		}
		if file.Result == nil {
			continue
		}

		for _, outcome := range file.Result.Outcomes {
			lines, kind := "-", "-"
			if outcome.Change != nil {
				lines = strings.TrimPrefix(strings.TrimPrefix(pretty.FormatLocation(outcome.Change.Where()), "lines "), "line ")
				kind = outcome.Change.Kind().String()
			}
			table.Append([]string{
				path,
				lines,
				kind,
				outcome.Status.String(),
				outcome.Stage.String(),
				outcome.Message,
			})
		}
	}

	for _, runErr := range result.Errors {
		table.Append([]string{"-", "-", "-", "error", "-", runErr.Error()})
	}

	if table.NumLines() > 0 {
		table.Render()
	}

	if r.opts.ShowSummary {
		fmt.Fprintln(r.bw)
		fmt.Fprint(r.bw, r.styles.FormatApplySummary(result.Stats))
	}

	return nil
}

// ReportExtract implements Reporter.
func (r *TableReporter) ReportExtract(_ context.Context, result *runner.ExtractResult) (err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil {
		return nil
	}

	table := r.newTable([]string{"File", "Category", "Lines", "Size", "Keywords"})

	for _, file := range result.Files {
		if file.Error != nil {
			table.Append([]string{file.File.Rel, file.File.Category.String(), "-", "-", "error: " + file.Error.Error()})
			continue
		}

		large := make(map[int]bool, len(file.Warnings))
		for _, warning := range file.Warnings {
			large[warning.Block.StartLine] = true
		}

		for _, block := range file.Blocks {
			size := strconv.Itoa(block.LineCount())
			if large[block.StartLine] {
				size += " (large)"
			}
			table.Append([]string{
				file.File.Rel,
				file.File.Category.String(),
				fmt.Sprintf("%d-%d", block.StartLine, block.EndLine),
				size,
				strings.Join(block.Keywords, " "),
			})
		}
	}

	if table.NumLines() > 0 {
		table.Render()
	}

	if r.opts.ShowSummary {
		fmt.Fprintln(r.bw)
		fmt.Fprint(r.bw, r.styles.FormatExtractSummary(result.Stats))
	}

	return nil
}

func (r *TableReporter) newTable(header []string) *tablewriter.Table {
	table := tablewriter.NewWriter(r.bw)
	table.SetHeader(header)
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)

	if r.termWidth > 0 {
		table.SetColWidth(max(minColumnWidth, r.termWidth/len(header)))
	} else {
		table.SetAutoWrapText(false)
	}

	return table
}

// getTerminalWidth returns the terminal width, or 0 when the writer is not
// a terminal.
func getTerminalWidth(writer io.Writer) int {
	if f, ok := writer.(*os.File); ok {
		if width, _, err := term.GetSize(int(f.Fd())); err == nil && width > 0 {
			return width
		}
	}
	return 0
}
