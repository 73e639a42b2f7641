package match

import (
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// Candidate is the file window that most resembles a target that could
// not be matched. It is used for diagnostics only.
type Candidate struct {
	Start      int
	End        int
	Similarity float64
	Text       string
}

// Closest returns the window of lines with the highest character-level
// similarity to target's non-blank lines. Lines are compared with leading
// and trailing whitespace removed.
func Closest(lines []string, target string) (Candidate, bool) {
	pattern := nonBlank(splitLines(target))
	if len(pattern) == 0 || len(lines) == 0 {
		return Candidate{}, false
	}

	want := joinTrimmed(pattern)
	size := min(len(pattern), len(lines))
	dmp := diffmatchpatch.New()

	best := Candidate{}
	for start := 0; start+size <= len(lines); start++ {
		got := joinTrimmed(lines[start : start+size])
		score := similarity(dmp, got, want)
		if score > best.Similarity {
			best = Candidate{
				Start:      start,
				End:        start + size,
				Similarity: score,
				Text:       strings.Join(lines[start:start+size], "\n"),
			}
		}
	}

	return best, best.Similarity > 0
}

func similarity(dmp *diffmatchpatch.DiffMatchPatch, a, b string) float64 {
	if a == b {
		return 1
	}
	if a == "" || b == "" {
		return 0
	}

	distance := dmp.DiffLevenshtein(dmp.DiffMain(a, b, false))
	longest := max(len([]rune(a)), len([]rune(b)))
	return 1 - float64(distance)/float64(longest)
}

func joinTrimmed(lines []string) string {
	trimmed := make([]string, len(lines))
	for idx, line := range lines {
		trimmed[idx] = strings.TrimSpace(line)
	}
	return strings.Join(trimmed, "\n")
}
