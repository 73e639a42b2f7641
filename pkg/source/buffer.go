// Package source holds the in-memory line buffer that a file is edited
// through. Lines are addressed by 0-based index internally and by 1-based
// line number at the API boundary, matching how change locations are
// expressed.
package source

import "strings"

// Line endings recognised by Parse.
const (
	LF   = "\n"
	CRLF = "\r\n"
)

// Line is a single line of text and the terminator that followed it.
// The terminator is empty only for a final line without a trailing newline.
type Line struct {
	Text string
	EOL  string
}

// Buffer is an ordered, mutable sequence of lines.
// It is not safe for concurrent use; a buffer is owned by one apply pass.
type Buffer struct {
	lines []Line
	eol   string
}

// Parse splits content into lines, recording each line's terminator.
// The buffer's default terminator is taken from the first line ending found
// and falls back to LF.
func Parse(content []byte) *Buffer {
	buf := &Buffer{eol: LF}
	if len(content) == 0 {
		return buf
	}

	text := string(content)
	start := 0
	detected := false

	for idx := 0; idx < len(text); idx++ {
		if text[idx] != '\n' {
			continue
		}

		end := idx
		eol := LF
		if idx > start && text[idx-1] == '\r' {
			end = idx - 1
			eol = CRLF
		}
		if !detected {
			buf.eol = eol
			detected = true
		}

		buf.lines = append(buf.lines, Line{Text: text[start:end], EOL: eol})
		start = idx + 1
	}

	if start < len(text) {
		buf.lines = append(buf.lines, Line{Text: text[start:]})
	}

	return buf
}

// FromStrings builds an LF buffer with one line per element.
// Every line is terminated.
func FromStrings(lines ...string) *Buffer {
	buf := &Buffer{eol: LF, lines: make([]Line, 0, len(lines))}
	for _, text := range lines {
		buf.lines = append(buf.lines, Line{Text: text, EOL: LF})
	}
	return buf
}

// Len returns the number of lines.
func (b *Buffer) Len() int {
	return len(b.lines)
}

// EOL returns the terminator used for lines added to the buffer.
func (b *Buffer) EOL() string {
	return b.eol
}

// Line returns the text of a 1-based line number without its terminator.
// It returns "" when n is out of range.
func (b *Buffer) Line(n int) string {
	if n < 1 || n > len(b.lines) {
		return ""
	}
	return b.lines[n-1].Text
}

// Strings returns the text of every line without terminators.
func (b *Buffer) Strings() []string {
	out := make([]string, len(b.lines))
	for idx, line := range b.lines {
		out[idx] = line.Text
	}
	return out
}

// Slice returns the text of lines in the 0-based half-open range [start, end).
func (b *Buffer) Slice(start, end int) []string {
	start, end = b.clamp(start, end)
	out := make([]string, 0, end-start)
	for _, line := range b.lines[start:end] {
		out = append(out, line.Text)
	}
	return out
}

// Text joins the lines in [start, end) with LF, regardless of the
// terminators stored in the buffer.
func (b *Buffer) Text(start, end int) string {
	return strings.Join(b.Slice(start, end), LF)
}

// Replace substitutes the lines in [start, end) with repl.
// Replacement lines may carry a trailing "\n" or "\r\n"; it is stripped
// and the buffer's own terminator is used instead. A replaced final line
// that had no terminator leaves the last replacement line unterminated.
func (b *Buffer) Replace(start, end int, repl []string) {
	start, end = b.clamp(start, end)

	tailEOL := b.eol
	replacingTail := end == len(b.lines) && end > start && b.lines[end-1].EOL == ""
	if replacingTail {
		tailEOL = ""
	}

	added := make([]Line, 0, len(repl))
	for _, text := range repl {
		added = append(added, Line{Text: trimEOL(text), EOL: b.eol})
	}

	switch {
	case len(added) > 0 && replacingTail:
		added[len(added)-1].EOL = tailEOL
	case len(added) > 0 && end == len(b.lines) && start == end && start > 0 && b.lines[start-1].EOL == "":
		// Appending after an unterminated last line.
		b.lines[start-1].EOL = b.eol
		added[len(added)-1].EOL = ""
	case len(added) == 0 && replacingTail && start > 0:
		// Deleting the tail keeps the file without a trailing newline.
		b.lines[start-1].EOL = ""
	}

	lines := make([]Line, 0, len(b.lines)-(end-start)+len(added))
	lines = append(lines, b.lines[:start]...)
	lines = append(lines, added...)
	lines = append(lines, b.lines[end:]...)
	b.lines = lines
}

// Insert places lines before the 0-based index at.
// An index equal to Len appends.
func (b *Buffer) Insert(at int, lines []string) {
	b.Replace(at, at, lines)
}

// Delete removes the lines in [start, end).
func (b *Buffer) Delete(start, end int) {
	b.Replace(start, end, nil)
}

// Bytes renders the buffer with each line's recorded terminator.
func (b *Buffer) Bytes() []byte {
	size := 0
	for _, line := range b.lines {
		size += len(line.Text) + len(line.EOL)
	}

	out := make([]byte, 0, size)
	for _, line := range b.lines {
		out = append(out, line.Text...)
		out = append(out, line.EOL...)
	}
	return out
}

// Clone returns an independent copy of the buffer.
func (b *Buffer) Clone() *Buffer {
	lines := make([]Line, len(b.lines))
	copy(lines, b.lines)
	return &Buffer{lines: lines, eol: b.eol}
}

func (b *Buffer) clamp(start, end int) (int, int) {
	start = max(start, 0)
	end = min(end, len(b.lines))
	if start > end {
		start = end
	}
	return start, end
}

func trimEOL(text string) string {
	text = strings.TrimSuffix(text, "\n")
	return strings.TrimSuffix(text, "\r")
}
