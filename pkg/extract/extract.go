// Package extract narrows a source file down to the brace-delimited blocks
// that surround keyword hits, so that downstream analysis only sees code
// that is likely to need an upgrade.
package extract

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/yaklabco/jdkup/pkg/change"
)

// DefaultMaxBlockLines is the block size above which a warning is emitted.
const DefaultMaxBlockLines = 20

var (
	// openingLine matches a trimmed line that ends with an opening brace.
	openingLine = regexp.MustCompile(`[{]\s*$`)

	// boundaryLine matches a trimmed line that ends the backward search:
	// the end of a previous block, a package or import statement, or an
	// annotation.
	boundaryLine = regexp.MustCompile(`[}]\s*$|^package\s|^import\s|^@\w+`)

	doubleQuoted = regexp.MustCompile(`"[^"]*"`)
	singleQuoted = regexp.MustCompile(`'[^']*'`)
)

// Block is a contiguous span of a file surrounding one or more keyword hits.
type Block struct {
	// Path is the file the block was extracted from.
	Path string

	// StartLine and EndLine are 1-based and inclusive.
	StartLine int
	EndLine   int

	// Content is lines StartLine..EndLine joined with "\n".
	Content string

	// Keywords lists the patterns that matched inside the block, in first-seen order.
	Keywords []string
}

// LineCount returns the number of lines in the block.
func (b Block) LineCount() int {
	return b.EndLine - b.StartLine + 1
}

// Translate converts a change whose location is relative to the block
// content into one addressed against the whole file.
func (b Block) Translate(c change.Change) change.Change {
	c = change.Offset(c, b.StartLine-1)
	if c.Where().FilePath == "" {
		c = change.WithFilePath(c, b.Path)
	}
	return c
}

// Warning reports a block that is larger than the configured threshold.
// The block is still returned by Extract.
type Warning struct {
	Block Block
	Limit int
}

func (w Warning) String() string {
	return fmt.Sprintf("large code block in %s: lines %d-%d (%d lines, limit %d), keywords: %s",
		w.Block.Path, w.Block.StartLine, w.Block.EndLine, w.Block.LineCount(), w.Limit,
		strings.Join(w.Block.Keywords, ", "))
}

// hit is a line that matched a keyword pattern.
type hit struct {
	line    int
	keyword string
}

// Extractor finds keyword hits and expands them to their enclosing blocks.
// An Extractor is safe for concurrent use once constructed.
type Extractor struct {
	patterns      []*regexp.Regexp
	maxBlockLines int
	warn          []func(Warning)
}

// New compiles patterns and returns an Extractor. Patterns use RE2 syntax
// and are matched anywhere in a line.
func New(patterns []string, opts ...Option) (*Extractor, error) {
	compiled := make([]*regexp.Regexp, 0, len(patterns))
	for _, pattern := range patterns {
		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("%w %q: %w", ErrInvalidPattern, pattern, err)
		}
		compiled = append(compiled, re)
	}

	ext := &Extractor{
		patterns:      compiled,
		maxBlockLines: DefaultMaxBlockLines,
	}
	for _, opt := range opts {
		opt(ext)
	}

	return ext, nil
}

// Extract returns the merged blocks of content ordered by start line.
// Blocks longer than the configured limit are reported to the warning
// callback and kept in the result.
func (e *Extractor) Extract(path string, content []byte) []Block {
	lines := splitLines(string(content))

	hits := e.findHits(lines)
	if len(hits) == 0 {
		return nil
	}

	spans := make([]Span, 0, len(hits))
	for _, h := range hits {
		start, end := enclosingBlock(lines, h.line)
		spans = append(spans, Span{Start: start, End: end, Keywords: []string{h.keyword}})
	}

	merged := Merge(spans)

	blocks := make([]Block, 0, len(merged))
	for _, span := range merged {
		block := Block{
			Path:      path,
			StartLine: span.Start,
			EndLine:   span.End,
			Content:   strings.Join(lines[span.Start-1:span.End], "\n"),
			Keywords:  span.Keywords,
		}
		blocks = append(blocks, block)

		if e.maxBlockLines > 0 && block.LineCount() > e.maxBlockLines {
			for _, fn := range e.warn {
				fn(Warning{Block: block, Limit: e.maxBlockLines})
			}
		}
	}

	return blocks
}

// findHits records at most one hit per line: the first pattern that matches.
func (e *Extractor) findHits(lines []string) []hit {
	var hits []hit
	for idx, line := range lines {
		for _, re := range e.patterns {
			if re.MatchString(line) {
				hits = append(hits, hit{line: idx + 1, keyword: re.String()})
				break
			}
		}
	}
	return hits
}

// enclosingBlock returns the 1-based inclusive range of the block around
// lineNum. When no complete block containing lineNum is found, the range
// is the line itself.
func enclosingBlock(lines []string, lineNum int) (int, int) {
	start := blockStart(lines, lineNum)
	end := blockEnd(lines, start)

	if start < end && end >= lineNum {
		return start, end
	}
	return lineNum, lineNum
}

// blockStart scans backward from lineNum, the hit line included, for a
// line ending in "{". Comment lines are passed over.
func blockStart(lines []string, lineNum int) int {
	for idx := lineNum - 1; idx >= 0; idx-- {
		code, ok := codeOnly(lines[idx])
		if !ok {
			continue
		}
		line := strings.TrimSpace(code)
		if openingLine.MatchString(line) {
			return idx + 1
		}
		if boundaryLine.MatchString(line) {
			break
		}
	}
	return lineNum
}

// blockEnd scans forward from start until the brace count returns to zero
// after at least one opening brace. It returns start when the braces never
// balance.
func blockEnd(lines []string, start int) int {
	depth := 0
	opened := false

	for idx := start - 1; idx < len(lines); idx++ {
		code, ok := codeOnly(lines[idx])
		if !ok {
			continue
		}

		opens := strings.Count(code, "{")
		depth += opens - strings.Count(code, "}")
		if opens > 0 {
			opened = true
		}

		if opened && depth == 0 {
			return idx + 1
		}
	}

	return start
}

// codeOnly strips quoted literals and trailing line comments from line.
// It reports false for lines that are entirely comments.
func codeOnly(line string) (string, bool) {
	code := doubleQuoted.ReplaceAllString(line, "")
	code = singleQuoted.ReplaceAllString(code, "")

	trimmed := strings.TrimSpace(code)
	if strings.HasPrefix(trimmed, "//") || strings.HasPrefix(trimmed, "/*") || strings.HasPrefix(trimmed, "*") {
		return "", false
	}

	if idx := strings.Index(code, "//"); idx >= 0 {
		code = code[:idx]
	}
	return code, true
}

// splitLines splits text on "\n", dropping a trailing "\r" from each line
// and ignoring a final empty segment.
func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	lines := strings.Split(text, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	for idx, line := range lines {
		lines[idx] = strings.TrimSuffix(line, "\r")
	}
	return lines
}
