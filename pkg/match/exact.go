package match

import (
	"regexp"
	"strings"
	"unicode"
)

var whitespaceRun = regexp.MustCompile(`\s+`)

// lineTolerances are tried in order; a line pair matches if any of them
// makes the two lines equal.
var lineTolerances = []func(string) string{
	removeAllSpace,
	strings.TrimSpace,
	collapseSpace,
}

// exactMatch slides a window of len(pattern) lines over the file and
// returns the first window where every line matches its pattern line. The
// end is pushed past the window by the target's trailing blank lines.
func exactMatch(lines, pattern, targetLines []string) (Match, bool) {
	if len(pattern) == 0 {
		return Match{}, false
	}

	for start := 0; start+len(pattern) <= len(lines); start++ {
		if !matchAt(lines, pattern, start) {
			continue
		}
		end := min(start+len(pattern)+trailingBlanks(targetLines), len(lines))
		return Match{Start: start, End: end, Stage: StageExact, Score: len(pattern)}, true
	}

	return Match{}, false
}

func matchAt(lines, pattern []string, start int) bool {
	for i, want := range pattern {
		if !linesMatch(lines[start+i], want) {
			return false
		}
	}
	return true
}

func linesMatch(fileLine, targetLine string) bool {
	for _, normalize := range lineTolerances {
		if normalize(fileLine) == normalize(targetLine) {
			return true
		}
	}
	return false
}

func trailingBlanks(target []string) int {
	n := 0
	for idx := len(target) - 1; idx >= 0 && isBlank(target[idx]); idx-- {
		n++
	}
	return n
}

func removeAllSpace(s string) string {
	return strings.Join(strings.FieldsFunc(s, isSpace), "")
}

func collapseSpace(s string) string {
	return whitespaceRun.ReplaceAllString(strings.TrimSpace(s), " ")
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

func isSpace(r rune) bool {
	return unicode.IsSpace(r)
}
