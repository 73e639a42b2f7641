package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/yaklabco/jdkup/internal/ui/pretty"
	"github.com/yaklabco/jdkup/pkg/apply"
	"github.com/yaklabco/jdkup/pkg/change"
)

const promptQuestion = "Apply this change? [y]es/[n]o/[a]ll/[q]uit: "

// PromptApprover asks on a line-oriented terminal whether each change
// should be applied. Answering "all" approves every later change of the
// run without asking again.
type PromptApprover struct {
	in     *bufio.Reader
	out    io.Writer
	styles *pretty.Styles
	all    bool
}

// NewPromptApprover creates an approver reading answers from in and
// writing change previews and questions to out.
func NewPromptApprover(in io.Reader, out io.Writer, styles *pretty.Styles) *PromptApprover {
	if styles == nil {
		styles = pretty.NewStyles(false)
	}
	return &PromptApprover{
		in:     bufio.NewReader(in),
		out:    out,
		styles: styles,
	}
}

// Approve shows the change and waits for an answer. Unrecognised answers
// repeat the question; end of input quits the run.
func (p *PromptApprover) Approve(ctx context.Context, path string, c change.Change) (apply.Decision, error) {
	if p.all {
		return apply.Accept, nil
	}

	if err := p.preview(path, c); err != nil {
		return apply.Quit, err
	}

	for {
		if err := ctx.Err(); err != nil {
			return apply.Quit, err
		}

		if _, err := io.WriteString(p.out, promptQuestion); err != nil {
			return apply.Quit, fmt.Errorf("write prompt: %w", err)
		}

		line, err := p.in.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return apply.Quit, fmt.Errorf("read answer: %w", err)
		}

		decision, ok := parseAnswer(line)
		if ok {
			if decision == apply.AcceptAll {
				p.all = true
			}
			return decision, nil
		}
		if errors.Is(err, io.EOF) {
			_, _ = io.WriteString(p.out, "\n")
			return apply.Quit, nil
		}
	}
}

func (p *PromptApprover) preview(path string, c change.Change) error {
	var sb strings.Builder

	loc := c.Where()
	sb.WriteString("\n")
	sb.WriteString(p.styles.FilePath.Render(path))
	sb.WriteString("  ")
	sb.WriteString(p.styles.Location.Render(pretty.FormatLocation(loc)))
	sb.WriteString("  ")
	sb.WriteString(p.styles.Bold.Render(c.Kind().String()))
	sb.WriteString("\n")

	if reason := strings.TrimSpace(c.Why()); reason != "" {
		sb.WriteString("  ")
		sb.WriteString(p.styles.Reason.Render(reason))
		sb.WriteString("\n")
	}

	writeLines(&sb, change.Before(c), "- ", p.styles.DiffRemove.Render)
	writeLines(&sb, change.After(c), "+ ", p.styles.DiffAdd.Render)

	if _, err := io.WriteString(p.out, sb.String()); err != nil {
		return fmt.Errorf("write preview: %w", err)
	}
	return nil
}

func writeLines(sb *strings.Builder, text, prefix string, render func(...string) string) {
	text = strings.TrimRight(text, "\r\n")
	if strings.TrimSpace(text) == "" {
		return
	}
	for _, line := range strings.Split(text, "\n") {
		sb.WriteString("  ")
		sb.WriteString(render(prefix + strings.TrimSuffix(line, "\r")))
		sb.WriteString("\n")
	}
}

// parseAnswer converts a typed answer into a decision.
func parseAnswer(line string) (apply.Decision, bool) {
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return apply.Accept, true
	case "n", "no":
		return apply.Skip, true
	case "a", "all":
		return apply.AcceptAll, true
	case "q", "quit":
		return apply.Quit, true
	default:
		return apply.Skip, false
	}
}

// isTerminal reports whether r is a file attached to a terminal.
func isTerminal(r io.Reader) bool {
	file, ok := r.(*os.File)
	return ok && term.IsTerminal(int(file.Fd())) //nolint:gosec // fd fits in int
}
