package apply

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/yaklabco/jdkup/internal/logging"
	"github.com/yaklabco/jdkup/pkg/change"
	"github.com/yaklabco/jdkup/pkg/indent"
	"github.com/yaklabco/jdkup/pkg/match"
	"github.com/yaklabco/jdkup/pkg/source"
)

// resolve locates c in buf and applies it. The buffer is mutated only
// when the returned outcome is applied.
func (a *Applicator) resolve(ctx context.Context, buf *source.Buffer, c change.Change) Outcome {
	logger := logging.FromContext(ctx)
	loc := c.Where()

	err := loc.Validate(c.Kind(), buf.Len())

	if ins, ok := c.(change.Insert); ok {
		if err != nil {
			return failed(c, err)
		}
		return insert(buf, ins)
	}

	var bounds *change.BoundsError
	if errors.As(err, &bounds) && !a.opts.RelocateOutOfBounds {
		return failed(c, err)
	}

	before := change.Before(c)

	if err == nil {
		got := buf.Text(loc.StartLine-1, loc.EndLine)
		if sameText(got, before) || before == "" ||
			match.MatchesAt(buf.Strings(), loc.StartLine-1, loc.EndLine, before) {
			return replace(buf, c, loc.StartLine-1, loc.EndLine, StageLineNumber)
		}
		err = &ContentMismatchError{Location: loc, Want: before, Got: got}
	}

	if strings.TrimSpace(before) == "" {
		return failed(c, err)
	}

	lines := buf.Strings()
	found, ok := a.matcher.Find(lines, before)
	if !ok {
		notFound := &NotFoundError{Location: loc, Snippet: before, Cause: err}
		if candidate, ok := match.Closest(lines, before); ok {
			notFound.Closest = &candidate
		}
		logger.Debug("change target not found",
			logging.FieldPath, loc.FilePath,
			logging.FieldKind, c.Kind(),
			logging.FieldStartLine, loc.StartLine,
			logging.FieldError, err,
		)
		return failed(c, notFound)
	}

	stage := StageContentExact
	if found.Stage == match.StageFuzzy {
		stage = StageContentFuzzy
	}

	logger.Debug("change relocated",
		logging.FieldPath, loc.FilePath,
		logging.FieldKind, c.Kind(),
		logging.FieldStartLine, loc.StartLine,
		logging.FieldFoundLine, found.Start+1,
		logging.FieldStage, stage,
	)

	outcome := replace(buf, c, found.Start, found.End, stage)
	if found.Start == loc.StartLine-1 && found.End == loc.EndLine {
		outcome.Message = fmt.Sprintf("%s (%s)", outcome.Message, found.Confidence())
	} else {
		outcome.Message = fmt.Sprintf("%s (relocated from %s, %s)",
			outcome.Message, lineRange(loc.StartLine, loc.EndLine), found.Confidence())
	}
	return outcome
}

// insert places the change's text before its start line, indented like
// the lines around it.
func insert(buf *source.Buffer, c change.Insert) Outcome {
	at := c.Location.StartLine - 1
	lines := indent.Preserve(c.After, indent.BaseAt(buf.Strings(), at))
	buf.Insert(at, lines)

	end := c.Location.StartLine + len(lines) - 1
	return Outcome{
		Change:  c,
		Status:  StatusApplied,
		Stage:   StageLineNumber,
		Start:   c.Location.StartLine,
		End:     end,
		Message: "inserted at " + lineRange(c.Location.StartLine, end),
	}
}

// replace applies an update or delete to the 0-based half-open range.
func replace(buf *source.Buffer, c change.Change, start, end int, stage Stage) Outcome {
	outcome := Outcome{
		Change: c,
		Status: StatusApplied,
		Stage:  stage,
		Start:  start + 1,
		End:    end,
	}

	switch c := c.(type) {
	case change.Update:
		buf.Replace(start, end, indent.PreserveFrom(c.After, buf.Strings(), start, end))
		outcome.Message = "updated " + lineRange(start+1, end)
	case change.Delete:
		buf.Delete(start, end)
		outcome.Message = "deleted " + lineRange(start+1, end)
	}
	return outcome
}

func failed(c change.Change, err error) Outcome {
	return Outcome{
		Change:  c,
		Status:  StatusFailed,
		Err:     err,
		Message: err.Error(),
	}
}

// sameText compares two snippets ignoring trailing line terminators.
func sameText(got, want string) bool {
	want = strings.ReplaceAll(want, "\r\n", "\n")
	return strings.TrimRight(got, "\n") == strings.TrimRight(want, "\n")
}

func lineRange(start, end int) string {
	if start >= end {
		return fmt.Sprintf("line %d", start)
	}
	return fmt.Sprintf("lines %d-%d", start, end)
}
