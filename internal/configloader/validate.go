package configloader

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/yaklabco/jdkup/pkg/config"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	// Field is the path to the invalid field (e.g., "matching.fuzzy_ratio").
	Field string

	// Value is the invalid value.
	Value any

	// Message describes the validation error.
	Message string

	// FilePath is the config file containing the error (if known).
	FilePath string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	var parts []string

	if e.FilePath != "" {
		parts = append(parts, e.FilePath)
	}
	if e.Field != "" {
		parts = append(parts, e.Field)
	}
	parts = append(parts, e.Message)

	return strings.Join(parts, ": ")
}

// ValidationResult contains all validation findings.
type ValidationResult struct {
	// Errors are validation failures that prevent loading.
	Errors []ValidationError

	// Warnings are non-fatal issues.
	Warnings []ValidationError
}

// Valid returns true if there are no errors.
func (r *ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

// Err joins all errors, or returns nil when the configuration is valid.
func (r *ValidationResult) Err() error {
	if r.Valid() {
		return nil
	}
	errs := make([]error, 0, len(r.Errors))
	for idx := range r.Errors {
		errs = append(errs, &r.Errors[idx])
	}
	return errors.Join(errs...)
}

// knownBackupModes lists valid backup mode values.
//
//nolint:gochecknoglobals // Read-only lookup table.
var knownBackupModes = map[string]bool{
	"sidecar": true,
	"none":    true,
}

func (r *ValidationResult) add(field string, value any, format string, args ...any) {
	r.Errors = append(r.Errors, ValidationError{Field: field, Value: value, Message: fmt.Sprintf(format, args...)})
}

func (r *ValidationResult) warn(field string, value any, format string, args ...any) {
	r.Warnings = append(r.Warnings, ValidationError{Field: field, Value: value, Message: fmt.Sprintf(format, args...)})
}

// Validate checks a configuration for errors and warnings. Zero values are
// treated as unset so that partial configuration files validate.
func Validate(cfg *config.Config) *ValidationResult {
	result := &ValidationResult{}
	if cfg == nil {
		return result
	}

	if cfg.TargetJDK != "" {
		release, err := strconv.Atoi(cfg.TargetJDK)
		switch {
		case err != nil:
			result.add("target_jdk", cfg.TargetJDK, "invalid JDK release %q; must be a number such as 17 or 21", cfg.TargetJDK)
		case release < 11:
			result.warn("target_jdk", cfg.TargetJDK, "target JDK %d is older than most upgrade keywords assume", release)
		}
	}

	if cfg.MaxBlockLines < 0 {
		result.add("max_block_lines", cfg.MaxBlockLines, "max_block_lines must be > 0")
	}

	if cfg.Format != "" && !cfg.Format.IsValid() {
		result.add("format", cfg.Format, "invalid format %q; must be one of: text, json, diff, table", cfg.Format)
	}

	if cfg.Backups.Mode != "" && !knownBackupModes[cfg.Backups.Mode] {
		result.add("backups.mode", cfg.Backups.Mode, "invalid backup mode %q; must be one of: sidecar, none", cfg.Backups.Mode)
	}

	if cfg.Matching.FuzzyRatio < 0 || cfg.Matching.FuzzyRatio > 1 {
		result.add("matching.fuzzy_ratio", cfg.Matching.FuzzyRatio, "fuzzy_ratio must be between 0 and 1")
	}
	if cfg.Matching.MinFuzzyScore < 0 {
		result.add("matching.min_fuzzy_score", cfg.Matching.MinFuzzyScore, "min_fuzzy_score must be >= 0")
	}

	validatePatterns("include.source", cfg.Include.Source, result)
	validatePatterns("include.build", cfg.Include.Build, result)
	validatePatterns("include.ci", cfg.Include.CI, result)
	validatePatterns("skip", cfg.Skip, result)

	validateKeywords("keywords.java", cfg.Keywords.Java, result)
	validateKeywords("keywords.groovy", cfg.Keywords.Groovy, result)
	validateKeywords("keywords.kotlin", cfg.Keywords.Kotlin, result)

	return result
}

// validatePatterns checks that glob patterns are well formed.
func validatePatterns(field string, patterns []string, result *ValidationResult) {
	for i, pattern := range patterns {
		if !doublestar.ValidatePattern(pattern) {
			result.add(fmt.Sprintf("%s[%d]", field, i), pattern, "invalid glob pattern %q", pattern)
		}
	}
}

// validateKeywords checks that keyword patterns compile. An explicitly
// empty list is allowed but means the language is never scanned.
func validateKeywords(field string, patterns []string, result *ValidationResult) {
	if patterns != nil && len(patterns) == 0 {
		result.warn(field, patterns, "no keywords configured; files in this language will be skipped")
	}
	for i, pattern := range patterns {
		if _, err := regexp.Compile(pattern); err != nil {
			result.add(fmt.Sprintf("%s[%d]", field, i), pattern, "invalid regular expression: %v", err)
		}
	}
}

// ValidateWithFile validates configuration and includes file path in errors.
func ValidateWithFile(cfg *config.Config, filePath string) *ValidationResult {
	result := Validate(cfg)

	for i := range result.Errors {
		result.Errors[i].FilePath = filePath
	}
	for i := range result.Warnings {
		result.Warnings[i].FilePath = filePath
	}

	return result
}

// IsValidBackupMode returns true if the backup mode is valid.
func IsValidBackupMode(mode string) bool {
	return knownBackupModes[mode]
}
