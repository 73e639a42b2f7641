// Package diff renders unified diffs between the original and rewritten
// content of a file. Line alignment comes from diffmatchpatch's line mode.
package diff

import (
	"fmt"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// ContextLines is the number of unchanged lines shown around each change.
const ContextLines = 3

// LineKind tells whether a diff line is kept, added or removed.
type LineKind int

const (
	// Context is an unchanged line.
	Context LineKind = iota

	// Added is a line present only in the new content.
	Added

	// Removed is a line present only in the old content.
	Removed
)

// Line is one line of a hunk, without its prefix or terminator.
type Line struct {
	Kind LineKind
	Text string
}

// Hunk is a run of changes with surrounding context.
type Hunk struct {
	OldStart int
	OldCount int
	NewStart int
	NewCount int
	Lines    []Line
}

// Diff is the unified diff of one file.
type Diff struct {
	Path      string
	Hunks     []Hunk
	Additions int
	Deletions int
}

// Compute returns the diff between before and after, or nil when they
// hold the same lines.
func Compute(path string, before, after []byte) *Diff {
	ops := lineOps(string(before), string(after))

	changed := false
	for _, op := range ops {
		if op.Kind != Context {
			changed = true
			break
		}
	}
	if !changed {
		return nil
	}

	d := &Diff{Path: path, Hunks: hunks(ops)}
	for _, op := range ops {
		switch op.Kind {
		case Added:
			d.Additions++
		case Removed:
			d.Deletions++
		case Context:
		}
	}
	return d
}

// HasChanges reports whether the diff has at least one hunk.
func (d *Diff) HasChanges() bool {
	return d != nil && len(d.Hunks) > 0
}

// String renders the diff in unified format with a/ and b/ prefixes.
func (d *Diff) String() string {
	if !d.HasChanges() {
		return ""
	}

	path := strings.TrimPrefix(d.Path, "/")

	var sb strings.Builder
	fmt.Fprintf(&sb, "--- a/%s\n", path)
	fmt.Fprintf(&sb, "+++ b/%s\n", path)

	for _, hunk := range d.Hunks {
		fmt.Fprintf(&sb, "@@ -%d,%d +%d,%d @@\n", hunk.OldStart, hunk.OldCount, hunk.NewStart, hunk.NewCount)
		for _, line := range hunk.Lines {
			sb.WriteByte(prefix(line.Kind))
			sb.WriteString(line.Text)
			sb.WriteByte('\n')
		}
	}

	return sb.String()
}

func prefix(kind LineKind) byte {
	switch kind {
	case Added:
		return '+'
	case Removed:
		return '-'
	default:
		return ' '
	}
}

// lineOps aligns the two texts line by line.
func lineOps(before, after string) []Line {
	dmp := diffmatchpatch.New()

	chars1, chars2, lineArray := dmp.DiffLinesToChars(terminate(before), terminate(after))
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(chars1, chars2, false), lineArray)

	var ops []Line
	for _, d := range diffs {
		kind := Context
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			kind = Added
		case diffmatchpatch.DiffDelete:
			kind = Removed
		case diffmatchpatch.DiffEqual:
		}

		for _, text := range strings.SplitAfter(d.Text, "\n") {
			if text == "" {
				continue
			}
			ops = append(ops, Line{Kind: kind, Text: strings.TrimRight(text, "\r\n")})
		}
	}
	return ops
}

// hunks groups ops into hunks, merging changes separated by no more than
// twice the context size.
func hunks(ops []Line) []Hunk {
	type span struct{ start, end int }

	var changes []span
	for idx := 0; idx < len(ops); {
		if ops[idx].Kind == Context {
			idx++
			continue
		}
		start := idx
		for idx < len(ops) && ops[idx].Kind != Context {
			idx++
		}
		changes = append(changes, span{start, idx})
	}

	var out []Hunk
	for idx := 0; idx < len(changes); {
		last := idx
		for last+1 < len(changes) && changes[last+1].start-changes[last].end <= 2*ContextLines {
			last++
		}
		out = append(out, buildHunk(ops, changes[idx].start, changes[last].end))
		idx = last + 1
	}
	return out
}

func buildHunk(ops []Line, changeStart, changeEnd int) Hunk {
	start := max(changeStart-ContextLines, 0)
	end := min(changeEnd+ContextLines, len(ops))

	hunk := Hunk{OldStart: 1, NewStart: 1}
	for _, op := range ops[:start] {
		if op.Kind != Added {
			hunk.OldStart++
		}
		if op.Kind != Removed {
			hunk.NewStart++
		}
	}

	for _, op := range ops[start:end] {
		hunk.Lines = append(hunk.Lines, op)
		if op.Kind != Added {
			hunk.OldCount++
		}
		if op.Kind != Removed {
			hunk.NewCount++
		}
	}

	// Unified format numbers an empty side from the line before it.
	if hunk.OldCount == 0 {
		hunk.OldStart--
	}
	if hunk.NewCount == 0 {
		hunk.NewStart--
	}
	return hunk
}

func terminate(text string) string {
	if text != "" && !strings.HasSuffix(text, "\n") {
		return text + "\n"
	}
	return text
}
