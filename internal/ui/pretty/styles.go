// Package pretty renders change outcomes, extracted blocks and run summaries
// for a terminal using Lipgloss.
package pretty

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// Styles holds the renderers used by the text reporter and the prompt.
type Styles struct {
	Error   lipgloss.Style
	Warning lipgloss.Style
	Success lipgloss.Style

	// Change and block components.
	FilePath   lipgloss.Style
	Location   lipgloss.Style
	Stage      lipgloss.Style
	Message    lipgloss.Style
	Reason     lipgloss.Style
	SourceLine lipgloss.Style

	// Outcome statuses.
	Applied lipgloss.Style
	Pending lipgloss.Style
	Skipped lipgloss.Style
	Failed  lipgloss.Style

	DiffHeader  lipgloss.Style
	DiffHunk    lipgloss.Style
	DiffAdd     lipgloss.Style
	DiffRemove  lipgloss.Style
	DiffContext lipgloss.Style

	Dim  lipgloss.Style
	Bold lipgloss.Style
}

// ANSI palette indexes.
const (
	red    = lipgloss.Color("9")
	green  = lipgloss.Color("10")
	yellow = lipgloss.Color("11")
	blue   = lipgloss.Color("12")
	cyan   = lipgloss.Color("14")
	grey   = lipgloss.Color("8")
	silver = lipgloss.Color("7")
)

// NewStyles returns colored styles, or plain ones when colorEnabled is false.
func NewStyles(colorEnabled bool) *Styles {
	if !colorEnabled {
		plain := lipgloss.NewStyle()
		return &Styles{
			Error: plain, Warning: plain, Success: plain,
			FilePath: plain, Location: plain, Stage: plain, Message: plain, Reason: plain, SourceLine: plain,
			Applied: plain, Pending: plain, Skipped: plain, Failed: plain,
			DiffHeader: plain, DiffHunk: plain, DiffAdd: plain, DiffRemove: plain, DiffContext: plain,
			Dim: plain, Bold: plain,
		}
	}

	fg := func(c lipgloss.Color) lipgloss.Style { return lipgloss.NewStyle().Foreground(c) }
	bold := lipgloss.NewStyle().Bold(true)

	return &Styles{
		Error:   fg(red).Bold(true),
		Warning: fg(yellow).Bold(true),
		Success: fg(green).Bold(true),

		FilePath:   bold,
		Location:   fg(grey),
		Stage:      fg(grey),
		Message:    lipgloss.NewStyle(),
		Reason:     fg(blue).Italic(true),
		SourceLine: fg(silver),

		Applied: fg(green).Bold(true),
		Pending: fg(cyan).Bold(true),
		Skipped: fg(yellow).Bold(true),
		Failed:  fg(red).Bold(true),

		DiffHeader:  bold,
		DiffHunk:    fg(cyan),
		DiffAdd:     fg(green),
		DiffRemove:  fg(red),
		DiffContext: fg(grey),

		Dim:  fg(grey),
		Bold: bold,
	}
}

// IsColorEnabled reports whether output to writer should be colored.
// mode is "always", "never" or "auto"; anything else means auto, which
// colors only terminals and honours NO_COLOR.
func IsColorEnabled(mode string, writer io.Writer) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	}

	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := writer.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
