package config

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownFormat is returned for report formats other than the known ones.
var ErrUnknownFormat = errors.New("unknown output format")

// ParseFormat parses a report format name. Empty means text.
func ParseFormat(name string) (OutputFormat, error) {
	switch OutputFormat(strings.ToLower(strings.TrimSpace(name))) {
	case "", FormatText:
		return FormatText, nil
	case FormatJSON:
		return FormatJSON, nil
	case FormatDiff:
		return FormatDiff, nil
	case FormatTable:
		return FormatTable, nil
	default:
		return "", fmt.Errorf("%w: %q (valid: text, json, diff, table)", ErrUnknownFormat, name)
	}
}

// IsValid reports whether f is a known format.
func (f OutputFormat) IsValid() bool {
	_, err := ParseFormat(string(f))
	return err == nil
}
