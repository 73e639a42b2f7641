package extract

import (
	"errors"

	"github.com/charmbracelet/log"

	"github.com/yaklabco/jdkup/internal/logging"
)

// ErrInvalidPattern is returned by New when a keyword pattern does not compile.
var ErrInvalidPattern = errors.New("invalid keyword pattern")

// Option configures an Extractor.
type Option func(*Extractor)

// WithMaxBlockLines sets the warning threshold. Zero or a negative value
// disables the warning.
func WithMaxBlockLines(n int) Option {
	return func(e *Extractor) {
		e.maxBlockLines = n
	}
}

// WithWarnFunc adds a callback that receives large-block warnings.
// Callbacks run in the order they were added.
func WithWarnFunc(fn func(Warning)) Option {
	return func(e *Extractor) {
		if fn != nil {
			e.warn = append(e.warn, fn)
		}
	}
}

// WithLogger routes large-block warnings to logger at warn level.
func WithLogger(logger *log.Logger) Option {
	return WithWarnFunc(func(w Warning) {
		logger.Warn("large code block",
			logging.FieldPath, w.Block.Path,
			logging.FieldStartLine, w.Block.StartLine,
			logging.FieldEndLine, w.Block.EndLine,
			"lines", w.Block.LineCount(),
			"limit", w.Limit,
			"keywords", w.Block.Keywords,
		)
	})
}
