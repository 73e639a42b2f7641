// Package match locates a snippet of code inside a file whose line numbers
// can no longer be trusted.
//
// Matching runs in two passes. The exact pass compares the snippet's
// non-blank lines against each run of as many consecutive file lines and
// forgives differences in whitespace only. When that fails, the fuzzy pass scores every window
// of the file by how many identifiers, quoted strings and version numbers
// from the snippet it contains.
package match

import (
	"fmt"
	"math"
	"strings"
)

// Default fuzzy acceptance parameters.
const (
	DefaultFuzzyRatio    = 0.7
	DefaultMinFuzzyScore = 2
)

// Stage identifies the pass that produced a match.
type Stage int

const (
	// StageExact is a whitespace-tolerant line-by-line match.
	StageExact Stage = iota + 1

	// StageFuzzy is a key-pattern overlap match.
	StageFuzzy
)

func (s Stage) String() string {
	switch s {
	case StageExact:
		return "exact"
	case StageFuzzy:
		return "fuzzy"
	default:
		return "none"
	}
}

// Match is a located range of file lines, 0-based and half-open.
type Match struct {
	Start int
	End   int
	Stage Stage

	// Score is the number of key patterns found in the window for fuzzy
	// matches, and the number of matched lines for exact matches.
	Score int

	// Required is the minimum fuzzy score the window had to reach.
	Required float64

	// Patterns is the number of distinct key patterns considered.
	Patterns int
}

// Confidence describes the match for display.
func (m Match) Confidence() string {
	if m.Stage == StageFuzzy {
		return fmt.Sprintf("fuzzy match with %d/%d patterns", m.Score, m.Patterns)
	}
	return "exact match"
}

// Matcher holds the fuzzy acceptance parameters.
type Matcher struct {
	fuzzy    bool
	ratio    float64
	minScore int
}

// New returns a Matcher with the default parameters adjusted by opts.
func New(opts ...Option) *Matcher {
	m := &Matcher{
		fuzzy:    true,
		ratio:    DefaultFuzzyRatio,
		minScore: DefaultMinFuzzyScore,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Find locates target in lines using the package defaults.
func Find(lines []string, target string, opts ...Option) (Match, bool) {
	return New(opts...).Find(lines, target)
}

// FindContentMatch returns the 0-based half-open range of target in lines.
func FindContentMatch(lines []string, target string) (int, int, bool) {
	m, ok := Find(lines, target)
	if !ok {
		return 0, 0, false
	}
	return m.Start, m.End, true
}

// Find locates target in lines. A blank target never matches. The exact
// pass is tried first and the earliest matching window wins. The fuzzy
// pass runs only when the exact pass finds nothing.
func (m *Matcher) Find(lines []string, target string) (Match, bool) {
	if strings.TrimSpace(target) == "" {
		return Match{}, false
	}

	targetLines := splitLines(target)
	pattern := nonBlank(targetLines)
	normalized := normalizeAll(lines)

	if found, ok := exactMatch(normalized, pattern, targetLines); ok {
		return found, true
	}

	if !m.fuzzy {
		return Match{}, false
	}
	return m.fuzzyMatch(normalized, pattern)
}

// MatchesAt reports whether lines[start:end] holds target line for line,
// with the whitespace tolerances of the exact pass. The range must have as
// many lines as target.
func MatchesAt(lines []string, start, end int, target string) bool {
	targetLines := splitLines(target)
	if start < 0 || end > len(lines) || end-start != len(targetLines) {
		return false
	}
	for i, want := range targetLines {
		if !linesMatch(normalizeLine(lines[start+i]), normalizeLine(want)) {
			return false
		}
	}
	return true
}

// splitLines splits text the way a line reader would: a final terminator
// does not produce an extra empty line.
func splitLines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.TrimSuffix(text, "\n")
	return strings.Split(text, "\n")
}

func nonBlank(lines []string) []string {
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		if strings.TrimSpace(line) != "" {
			out = append(out, normalizeLine(line))
		}
	}
	return out
}

func normalizeAll(lines []string) []string {
	out := make([]string, len(lines))
	for idx, line := range lines {
		out[idx] = normalizeLine(line)
	}
	return out
}

// normalizeLine drops the line terminator and trailing whitespace.
func normalizeLine(line string) string {
	return strings.TrimRightFunc(line, isSpace)
}

func requiredScore(patterns int, ratio float64, minScore int) float64 {
	return math.Max(float64(patterns)*ratio, float64(minScore))
}
