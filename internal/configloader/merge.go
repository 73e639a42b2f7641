package configloader

import "github.com/yaklabco/jdkup/pkg/config"

// merge combines two configurations, with override taking precedence over base.
// The merge follows these rules:
//   - Scalar values: override overwrites base if override is non-zero
//   - Pointers: override overwrites base if non-nil
//   - Slices: override replaces base entirely if override is non-nil
//   - CLI booleans: only true values override
func merge(base, override *config.Config) *config.Config {
	if base == nil {
		return override
	}
	if override == nil {
		return base
	}

	result := *base

	if override.TargetJDK != "" {
		result.TargetJDK = override.TargetJDK
	}
	if override.MaxBlockLines != 0 {
		result.MaxBlockLines = override.MaxBlockLines
	}
	if override.Format != "" {
		result.Format = override.Format
	}

	if override.Include.Source != nil {
		result.Include.Source = override.Include.Source
	}
	if override.Include.Build != nil {
		result.Include.Build = override.Include.Build
	}
	if override.Include.CI != nil {
		result.Include.CI = override.Include.CI
	}
	if override.Skip != nil {
		result.Skip = override.Skip
	}

	if override.Keywords.Java != nil {
		result.Keywords.Java = override.Keywords.Java
	}
	if override.Keywords.Groovy != nil {
		result.Keywords.Groovy = override.Keywords.Groovy
	}
	if override.Keywords.Kotlin != nil {
		result.Keywords.Kotlin = override.Keywords.Kotlin
	}

	if override.Matching.FuzzyRatio != 0 {
		result.Matching.FuzzyRatio = override.Matching.FuzzyRatio
	}
	if override.Matching.MinFuzzyScore != 0 {
		result.Matching.MinFuzzyScore = override.Matching.MinFuzzyScore
	}
	if override.Matching.RelocateOutOfBounds {
		result.Matching.RelocateOutOfBounds = true
	}

	if override.Backups.Enabled != nil {
		result.Backups.Enabled = override.Backups.Enabled
	}
	if override.Backups.Mode != "" {
		result.Backups.Mode = override.Backups.Mode
	}

	if override.DryRun {
		result.DryRun = true
	}
	if override.AutoApprove {
		result.AutoApprove = true
	}
	if override.NoBackups {
		result.NoBackups = true
	}

	return &result
}

// MergeAll merges multiple configurations in order, with later configs taking precedence.
func MergeAll(configs ...*config.Config) *config.Config {
	if len(configs) == 0 {
		return nil
	}

	result := configs[0]
	for i := 1; i < len(configs); i++ {
		result = merge(result, configs[i])
	}
	return result
}
