package extract

import (
	"slices"
)

// MergeGap is the largest number of lines between two blocks that still
// causes them to be merged.
const MergeGap = 2

// Span is a 1-based inclusive line range with the keywords found in it.
type Span struct {
	Start    int
	End      int
	Keywords []string
}

// Merge sorts spans by start line and merges any span that starts within
// MergeGap lines of the end of the previous one, or overlaps it. Keywords
// are unioned in first-seen order. Merging an already merged list returns
// an equal list.
func Merge(spans []Span) []Span {
	if len(spans) == 0 {
		return nil
	}

	sorted := slices.Clone(spans)
	slices.SortStableFunc(sorted, func(a, b Span) int {
		return a.Start - b.Start
	})

	merged := make([]Span, 0, len(sorted))
	current := Span{Start: sorted[0].Start, End: sorted[0].End, Keywords: appendUnique(nil, sorted[0].Keywords...)}

	for _, span := range sorted[1:] {
		if span.Start <= current.End+MergeGap {
			current.End = max(current.End, span.End)
			current.Keywords = appendUnique(current.Keywords, span.Keywords...)
			continue
		}
		merged = append(merged, current)
		current = Span{Start: span.Start, End: span.End, Keywords: appendUnique(nil, span.Keywords...)}
	}

	return append(merged, current)
}

func appendUnique(dst []string, values ...string) []string {
	for _, value := range values {
		if !slices.Contains(dst, value) {
			dst = append(dst, value)
		}
	}
	return dst
}
