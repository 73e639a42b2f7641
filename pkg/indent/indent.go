// Package indent reflows replacement text so that it lines up with the code
// around it.
package indent

import (
	"strings"
	"unicode"
)

// neighbours is how many non-blank lines on each side of an insertion
// point take part in the indentation vote.
const neighbours = 2

// Leading returns the leading whitespace of line.
func Leading(line string) string {
	return line[:len(line)-len(strings.TrimLeftFunc(line, unicode.IsSpace))]
}

// Preserve prefixes every non-blank line of newText with base unless the
// line already starts with it. Lines that carry some other indentation
// keep it after the base prefix. Blank lines pass through. Every returned
// line ends with a single "\n". Blank newText yields nil.
func Preserve(newText, base string) []string {
	lines := splitLines(newText)
	if lines == nil {
		return nil
	}
	return reflow(lines, base)
}

// PreserveFrom reflows newText to replace original[start:end]. A single
// line replacing a single line takes that line's exact indentation.
// Otherwise the base is the narrowest indentation among the non-blank
// original lines, taken verbatim from the first of them so that a tab and
// space mix is kept.
func PreserveFrom(newText string, original []string, start, end int) []string {
	lines := splitLines(newText)
	if lines == nil {
		return nil
	}

	start = max(start, 0)
	end = min(end, len(original))
	if start >= end {
		return reflow(lines, "")
	}

	if end-start == 1 && len(lines) == 1 {
		return []string{Leading(trimEOL(original[start])) + strings.TrimSpace(lines[0]) + "\n"}
	}

	return reflow(lines, Base(original[start:end]))
}

// Base returns the common indentation of the non-blank lines: the prefix
// of the first non-blank line cut to the narrowest indentation width.
func Base(lines []string) string {
	narrowest := -1
	first := ""
	seen := false

	for _, line := range lines {
		line = trimEOL(line)
		if strings.TrimSpace(line) == "" {
			continue
		}
		width := len(Leading(line))
		if !seen {
			first = line
			seen = true
		}
		if narrowest < 0 || width < narrowest {
			narrowest = width
		}
	}

	if !seen {
		return ""
	}
	return first[:narrowest]
}

// BaseAt picks the indentation for text inserted before lines[index] by
// majority vote among the nearest non-blank lines, up to two above and two
// below. Candidates are visited outward, alternating above and below, and
// a tie goes to the indentation seen first.
func BaseAt(lines []string, index int) string {
	index = min(max(index, 0), len(lines))

	up := nearestNonBlank(lines, index-1, -1)
	down := nearestNonBlank(lines, index, 1)

	var order []string
	counts := make(map[string]int)
	vote := func(line string) {
		indent := Leading(trimEOL(line))
		if counts[indent] == 0 {
			order = append(order, indent)
		}
		counts[indent]++
	}

	for idx := range max(len(up), len(down)) {
		if idx < len(up) {
			vote(up[idx])
		}
		if idx < len(down) {
			vote(down[idx])
		}
	}

	best, bestCount := "", 0
	for _, indent := range order {
		if counts[indent] > bestCount {
			best, bestCount = indent, counts[indent]
		}
	}
	return best
}

// nearestNonBlank walks from index in direction step and returns up to
// neighbours non-blank lines.
func nearestNonBlank(lines []string, index, step int) []string {
	var found []string
	for idx := index; idx >= 0 && idx < len(lines) && len(found) < neighbours; idx += step {
		if !isBlank(lines[idx]) {
			found = append(found, lines[idx])
		}
	}
	return found
}

func reflow(lines []string, base string) []string {
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		if !isBlank(line) {
			own := Leading(line)
			switch {
			case len(own) >= len(base) && strings.HasPrefix(line, base):
			case own != "":
				line = base + line
			default:
				line = base + strings.TrimSpace(line)
			}
		}
		out = append(out, line+"\n")
	}
	return out
}

// splitLines splits text into lines without terminators. It returns nil
// for text that is blank.
func splitLines(text string) []string {
	if isBlank(text) {
		return nil
	}
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.TrimSuffix(text, "\n")
	return strings.Split(text, "\n")
}

func trimEOL(line string) string {
	return strings.TrimRight(line, "\r\n")
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
