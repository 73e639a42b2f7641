// Package config defines the configuration types for jdkup.
// These are plain data structures; loading and layering live in configloader.
package config

import "github.com/yaklabco/jdkup/pkg/langdetect"

// DefaultTargetJDK is the JDK release upgrades aim for.
const DefaultTargetJDK = "21"

// DefaultMaxBlockLines is the block size above which extraction warns.
const DefaultMaxBlockLines = 20

// Matching defaults.
const (
	DefaultFuzzyRatio    = 0.7
	DefaultMinFuzzyScore = 2
)

// IncludeConfig lists the glob patterns that select files, by category.
type IncludeConfig struct {
	Source []string `yaml:"source,omitempty"`
	Build  []string `yaml:"build,omitempty"`
	CI     []string `yaml:"ci,omitempty"`
}

// KeywordsConfig holds the regular expressions that mark upgrade candidates.
type KeywordsConfig struct {
	Java   []string `yaml:"java,omitempty"`
	Groovy []string `yaml:"groovy,omitempty"`
	Kotlin []string `yaml:"kotlin,omitempty"`
}

// For returns the keyword patterns for lang, or nil for unknown languages.
func (k KeywordsConfig) For(lang langdetect.Language) []string {
	switch lang {
	case langdetect.Java:
		return k.Java
	case langdetect.Groovy:
		return k.Groovy
	case langdetect.Kotlin:
		return k.Kotlin
	default:
		return nil
	}
}

// MatchingConfig tunes how stale change locations are relocated.
type MatchingConfig struct {
	FuzzyRatio    float64 `yaml:"fuzzy_ratio,omitempty"`
	MinFuzzyScore int     `yaml:"min_fuzzy_score,omitempty"`

	// RelocateOutOfBounds searches by content for updates and deletes whose
	// line numbers fall outside the file instead of rejecting them.
	RelocateOutOfBounds bool `yaml:"relocate_out_of_bounds,omitempty"`
}

// BackupsConfig controls backups of files before they are rewritten.
type BackupsConfig struct {
	Enabled *bool  `yaml:"enabled,omitempty"`
	Mode    string `yaml:"mode,omitempty"` // "sidecar" or "none"
}

// OutputFormat specifies how results are reported.
type OutputFormat string

const (
	FormatText  OutputFormat = "text"
	FormatJSON  OutputFormat = "json"
	FormatDiff  OutputFormat = "diff"
	FormatTable OutputFormat = "table"
)

// Config is the root configuration structure.
type Config struct {
	// TargetJDK is the JDK release the upgrade aims for.
	TargetJDK string `yaml:"target_jdk,omitempty"`

	// MaxBlockLines is the extracted block size above which a warning is emitted.
	MaxBlockLines int `yaml:"max_block_lines,omitempty"`

	Include  IncludeConfig  `yaml:"include"`
	Skip     []string       `yaml:"skip,omitempty"`
	Keywords KeywordsConfig `yaml:"keywords"`
	Matching MatchingConfig `yaml:"matching"`
	Backups  BackupsConfig  `yaml:"backups"`

	// CLI-level options (not persisted to config files).

	// DryRun renders changes without writing files.
	DryRun bool `yaml:"-"`

	// AutoApprove applies changes without prompting.
	AutoApprove bool `yaml:"-"`

	// NoBackups disables backups regardless of Backups.
	NoBackups bool `yaml:"-"`

	// Format is the report format.
	Format OutputFormat `yaml:"-"`
}

// NewConfig returns a Config with the built-in defaults.
func NewConfig() *Config {
	enabled := true
	return &Config{
		TargetJDK:     DefaultTargetJDK,
		MaxBlockLines: DefaultMaxBlockLines,
		Include: IncludeConfig{
			Source: clone(DefaultSourceFiles),
			Build:  clone(DefaultBuildFiles),
			CI:     clone(DefaultCIFiles),
		},
		Skip: clone(DefaultSkipPatterns),
		Keywords: KeywordsConfig{
			Java:   clone(DefaultJavaKeywords),
			Groovy: clone(DefaultGroovyKeywords),
			Kotlin: clone(DefaultKotlinKeywords),
		},
		Matching: MatchingConfig{
			FuzzyRatio:    DefaultFuzzyRatio,
			MinFuzzyScore: DefaultMinFuzzyScore,
		},
		Backups: BackupsConfig{
			Enabled: &enabled,
			Mode:    "sidecar",
		},
		Format: FormatText,
	}
}

// BackupsEnabled reports whether backups should be made, taking the CLI
// override into account. Unset means enabled.
func (c *Config) BackupsEnabled() bool {
	if c.NoBackups || c.Backups.Mode == "none" {
		return false
	}
	return c.Backups.Enabled == nil || *c.Backups.Enabled
}

func clone(values []string) []string {
	if values == nil {
		return nil
	}
	out := make([]string, len(values))
	copy(out, values)
	return out
}
