// Package runner orchestrates extraction and change application across a
// repository.
package runner

import (
	"github.com/yaklabco/jdkup/pkg/apply"
	"github.com/yaklabco/jdkup/pkg/config"
	"github.com/yaklabco/jdkup/pkg/discovery"
	"github.com/yaklabco/jdkup/pkg/fsutil"
	"github.com/yaklabco/jdkup/pkg/match"
)

// ExtractOptions controls a repository extraction run.
type ExtractOptions struct {
	// Paths are the user-specified files or directories to scan.
	// If empty, WorkingDir is scanned.
	Paths []string

	// WorkingDir is the base directory used to resolve relative Paths.
	// If empty, the current process working directory is used.
	WorkingDir string

	// FollowSymlinks controls whether directory symlinks are traversed.
	FollowSymlinks bool

	// Jobs controls the maximum number of concurrent workers. 1 reads
	// files in discovery order; 0 or negative means runtime.NumCPU().
	Jobs int

	// Config is the resolved configuration for this run.
	Config *config.Config
}

// discoveryOptions converts the run options into discovery options.
func (o ExtractOptions) discoveryOptions() discovery.Options {
	cfg := o.effectiveConfig()
	return discovery.Options{
		Paths:          o.Paths,
		WorkingDir:     o.WorkingDir,
		Source:         cfg.Include.Source,
		Build:          cfg.Include.Build,
		CI:             cfg.Include.CI,
		Skip:           cfg.Skip,
		FollowSymlinks: o.FollowSymlinks,
	}
}

func (o ExtractOptions) effectiveConfig() *config.Config {
	if o.Config == nil {
		return config.NewConfig()
	}
	return o.Config
}

// ApplyOptions controls an apply run.
type ApplyOptions struct {
	// WorkingDir resolves relative change file paths.
	// If empty, the current process working directory is used.
	WorkingDir string

	// Config is the resolved configuration for this run.
	Config *config.Config

	// Approver answers per-change prompts when the run is interactive.
	// A run is interactive unless Config.DryRun or Config.AutoApprove is set.
	Approver apply.Approver
}

func (o ApplyOptions) effectiveConfig() *config.Config {
	if o.Config == nil {
		return config.NewConfig()
	}
	return o.Config
}

// ApplicatorOptions derives applicator settings from cfg.
func ApplicatorOptions(cfg *config.Config, approver apply.Approver) apply.Options {
	opts := apply.DefaultOptions()

	switch {
	case cfg.DryRun:
		opts.Mode = apply.ModeDryRun
	case cfg.AutoApprove:
		opts.Mode = apply.ModeAuto
	default:
		opts.Mode = apply.ModeInteractive
		opts.Approver = approver
	}

	opts.Backup = fsutil.BackupConfig{
		Enabled: cfg.BackupsEnabled(),
		Mode:    fsutil.BackupMode(cfg.Backups.Mode),
	}
	if opts.Backup.Mode == "" {
		opts.Backup.Mode = fsutil.BackupModeSidecar
	}

	if cfg.Matching.FuzzyRatio > 0 {
		opts.Match = append(opts.Match, match.WithFuzzyRatio(cfg.Matching.FuzzyRatio))
	}
	if cfg.Matching.MinFuzzyScore > 0 {
		opts.Match = append(opts.Match, match.WithMinFuzzyScore(cfg.Matching.MinFuzzyScore))
	}
	opts.RelocateOutOfBounds = cfg.Matching.RelocateOutOfBounds

	return opts
}
