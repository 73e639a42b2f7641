package runner

import (
	"github.com/yaklabco/jdkup/pkg/apply"
	"github.com/yaklabco/jdkup/pkg/discovery"
	"github.com/yaklabco/jdkup/pkg/extract"
	"github.com/yaklabco/jdkup/pkg/langdetect"
)

// FileBlocks is the extraction outcome for one file.
type FileBlocks struct {
	// File is the discovered file.
	File discovery.File

	// Language is the detected language. It is empty for build and CI
	// files, which are analysed whole.
	Language langdetect.Language

	// Blocks are the extracted blocks, addressed by File.Rel.
	Blocks []extract.Block

	// Warnings lists blocks larger than the configured limit.
	Warnings []extract.Warning

	// Error is set if the file could not be read.
	Error error
}

// ExtractStats captures aggregate information about an extraction run.
type ExtractStats struct {
	FilesDiscovered int
	FilesWithBlocks int
	FilesErrored    int
	Blocks          int
	LargeBlocks     int
}

// ExtractResult is the overall extraction result.
type ExtractResult struct {
	// Files are ordered deterministically (by path).
	Files []FileBlocks

	Stats ExtractStats
}

func (r *ExtractResult) accumulate(outcome FileBlocks) {
	r.Files = append(r.Files, outcome)

	if outcome.Error != nil {
		r.Stats.FilesErrored++
		return
	}
	if len(outcome.Blocks) > 0 {
		r.Stats.FilesWithBlocks++
	}
	r.Stats.Blocks += len(outcome.Blocks)
	r.Stats.LargeBlocks += len(outcome.Warnings)
}

// FileOutcome wraps an apply result with its resolved path.
type FileOutcome struct {
	// Path is the absolute path of the file.
	Path string

	// Result holds per-change outcomes. It may be set even when Error is,
	// for example when the run was quit after the file was written.
	Result *apply.FileResult

	// Error is set if the file could not be processed.
	Error error
}

// ApplyStats captures aggregate information about an apply run.
type ApplyStats struct {
	FilesTotal     int
	FilesModified  int
	FilesErrored   int
	BackupsCreated int

	ChangesTotal   int
	ChangesApplied int
	ChangesPending int
	ChangesFailed  int
	ChangesSkipped int
}

// ApplyResult is the overall apply result.
type ApplyResult struct {
	// Files are ordered deterministically (by path).
	Files []FileOutcome

	Stats ApplyStats

	// Session is the bookkeeping for this run.
	Session *Session

	// Quit is true when the user stopped the run from a prompt.
	Quit bool

	// Errors holds problems that are not tied to one file.
	Errors []error
}

// HasFailures reports whether any change or file failed.
func (r *ApplyResult) HasFailures() bool {
	if r == nil {
		return false
	}
	return r.Stats.ChangesFailed > 0 || r.Stats.FilesErrored > 0 || len(r.Errors) > 0
}

func (r *ApplyResult) accumulate(outcome FileOutcome, changes int) {
	r.Files = append(r.Files, outcome)
	r.Stats.FilesTotal++
	r.Stats.ChangesTotal += changes

	if res := outcome.Result; res != nil {
		r.Stats.ChangesApplied += res.Applied
		r.Stats.ChangesPending += res.Pending
		r.Stats.ChangesFailed += res.Failed
		r.Stats.ChangesSkipped += res.Skipped
		if res.Written {
			r.Stats.FilesModified++
		}
		if res.BackupCreated {
			r.Stats.BackupsCreated++
		}
	}

	if outcome.Error != nil && outcome.Result == nil {
		r.Stats.FilesErrored++
		r.Stats.ChangesFailed += changes
	}
}
