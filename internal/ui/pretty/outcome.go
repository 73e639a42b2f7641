package pretty

import (
	"fmt"
	"strings"

	"github.com/yaklabco/jdkup/pkg/apply"
	"github.com/yaklabco/jdkup/pkg/change"
	"github.com/yaklabco/jdkup/pkg/extract"
)

// FormatStatus returns a styled status label.
func (s *Styles) FormatStatus(status apply.Status) string {
	switch status {
	case apply.StatusApplied:
		return s.Applied.Render("applied")
	case apply.StatusPending:
		return s.Pending.Render("pending")
	case apply.StatusSkipped:
		return s.Skipped.Render("skipped")
	case apply.StatusFailed:
		return s.Failed.Render("failed")
	default:
		return status.String()
	}
}

// FormatLocation formats the proposed lines of a change.
func FormatLocation(loc change.Location) string {
	if loc.EndLine <= loc.StartLine {
		return fmt.Sprintf("line %d", loc.StartLine)
	}
	return fmt.Sprintf("lines %d-%d", loc.StartLine, loc.EndLine)
}

// FormatOutcome formats the outcome of one change for terminal output.
func (s *Styles) FormatOutcome(outcome apply.Outcome) string {
	var builder strings.Builder

	location := "unknown location"
	kind := ""
	reason := ""
	if outcome.Change != nil {
		location = FormatLocation(outcome.Change.Where())
		kind = outcome.Change.Kind().String()
		reason = outcome.Change.Why()
	}

	// Main line: location  status  kind  message  (stage)
	line := fmt.Sprintf("  %s  %s  %s  %s",
		s.Location.Render(location),
		s.FormatStatus(outcome.Status),
		kind,
		s.Message.Render(outcome.Message),
	)
	if outcome.Stage != apply.StageNone {
		line += "  " + s.Stage.Render("("+outcome.Stage.String()+")")
	}
	builder.WriteString(line + "\n")

	if reason != "" {
		builder.WriteString("    " + s.Dim.Render("Reason:") + " " + s.Reason.Render(reason) + "\n")
	}

	return builder.String()
}

// FormatFileHeader formats a file header for grouped output.
func (s *Styles) FormatFileHeader(path, summary string) string {
	header := s.FilePath.Render(path)
	if summary != "" {
		header += s.Dim.Render(" (" + summary + ")")
	}
	return header
}

// FormatBlock formats one extracted block as a header line followed by its
// content with line numbers.
func (s *Styles) FormatBlock(block extract.Block, showContent bool) string {
	var builder strings.Builder

	header := fmt.Sprintf("  %s  %s",
		s.Location.Render(fmt.Sprintf("lines %d-%d", block.StartLine, block.EndLine)),
		s.Dim.Render(fmt.Sprintf("(%d lines)", block.LineCount())),
	)
	if len(block.Keywords) > 0 {
		header += "  " + s.Reason.Render(strings.Join(block.Keywords, ", "))
	}
	builder.WriteString(header + "\n")

	if !showContent {
		return builder.String()
	}

	width := len(fmt.Sprint(block.EndLine))
	for idx, text := range strings.Split(block.Content, "\n") {
		number := fmt.Sprintf("%*d", width, block.StartLine+idx)
		builder.WriteString("    " + s.Dim.Render(number) + "  " + s.SourceLine.Render(text) + "\n")
	}

	return builder.String()
}

// FormatWarning formats a large-block warning.
func (s *Styles) FormatWarning(warning extract.Warning) string {
	return fmt.Sprintf("  %s  %s\n",
		s.Warning.Render("warning"),
		s.Message.Render(fmt.Sprintf("large block at lines %d-%d (%d lines, limit %d)",
			warning.Block.StartLine, warning.Block.EndLine, warning.Block.LineCount(), warning.Limit)),
	)
}
