package match

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

var (
	wordToken    = regexp.MustCompile(`[\p{L}\p{N}_]+`)
	quotedToken  = regexp.MustCompile(`["']([^"']+)["']`)
	versionToken = regexp.MustCompile(`\d+\.\d+(?:\.\d+)?`)
)

// stopwords are too common in JVM sources to help locate a snippet.
var stopwords = map[string]struct{}{
	"the": {}, "and": {}, "or": {}, "if": {}, "then": {}, "else": {},
	"for": {}, "while": {}, "do": {}, "return": {},
	"public": {}, "private": {}, "static": {}, "final": {},
	"class": {}, "import": {}, "package": {},
}

// KeyPatterns returns the distinct identifiers, quoted strings and version
// numbers of lines in first-seen order. Stopwords and single-character
// tokens are dropped.
func KeyPatterns(lines []string) []string {
	seen := make(map[string]struct{})
	var patterns []string

	add := func(token string) {
		if utf8.RuneCountInString(token) <= 1 {
			return
		}
		if _, stop := stopwords[strings.ToLower(token)]; stop {
			return
		}
		if _, dup := seen[token]; dup {
			return
		}
		seen[token] = struct{}{}
		patterns = append(patterns, token)
	}

	for _, line := range lines {
		for _, token := range wordToken.FindAllString(line, -1) {
			add(token)
		}
		for _, sub := range quotedToken.FindAllStringSubmatch(line, -1) {
			add(sub[1])
		}
		for _, token := range versionToken.FindAllString(line, -1) {
			add(token)
		}
	}

	return patterns
}

// fuzzyMatch scores each window of len(pattern) lines by the number of key
// patterns that occur in the window's space-joined text. The highest score
// wins if it reaches the required score; the first window wins ties.
func (m *Matcher) fuzzyMatch(lines, pattern []string) (Match, bool) {
	if len(pattern) == 0 {
		return Match{}, false
	}

	keys := KeyPatterns(pattern)
	if len(keys) == 0 {
		return Match{}, false
	}

	required := requiredScore(len(keys), m.ratio, m.minScore)
	size := len(pattern)

	best := Match{}
	found := false

	for start := 0; start+size <= len(lines); start++ {
		section := strings.Join(lines[start:start+size], " ")

		score := 0
		for _, key := range keys {
			if strings.Contains(section, key) {
				score++
			}
		}

		if score > best.Score && float64(score) >= required {
			best = Match{
				Start:    start,
				End:      start + size,
				Stage:    StageFuzzy,
				Score:    score,
				Required: required,
				Patterns: len(keys),
			}
			found = true
		}
	}

	return best, found
}
