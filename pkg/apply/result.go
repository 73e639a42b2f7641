package apply

import (
	"fmt"

	"github.com/yaklabco/jdkup/pkg/change"
	"github.com/yaklabco/jdkup/pkg/diff"
)

// Status is the outcome of a single change.
type Status int

const (
	// StatusPending means the change resolved but was not written (dry run).
	StatusPending Status = iota

	// StatusApplied means the change was applied to the file content.
	StatusApplied

	// StatusSkipped means the change was declined or never attempted.
	StatusSkipped

	// StatusFailed means the change could not be located.
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusApplied:
		return "applied"
	case StatusSkipped:
		return "skipped"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// MarshalText encodes the status by name.
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Stage is the resolution step that located a change.
type Stage int

const (
	// StageNone means the change was not located.
	StageNone Stage = iota

	// StageLineNumber means the proposed line numbers were correct.
	StageLineNumber

	// StageContentExact means the target was relocated by exact content.
	StageContentExact

	// StageContentFuzzy means the target was relocated by key patterns.
	StageContentFuzzy
)

func (s Stage) String() string {
	switch s {
	case StageLineNumber:
		return "line-number"
	case StageContentExact:
		return "content-exact"
	case StageContentFuzzy:
		return "content-fuzzy"
	default:
		return "none"
	}
}

// MarshalText encodes the stage by name.
func (s Stage) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Outcome records what happened to one change.
type Outcome struct {
	Change change.Change
	Status Status
	Stage  Stage

	// Start and End are the 1-based inclusive lines the change was applied
	// to, as numbered when it was applied. Zero when not located.
	Start int
	End   int

	Err     error
	Message string
}

// OK reports whether the change resolved.
func (o Outcome) OK() bool {
	return o.Status == StatusApplied || o.Status == StatusPending
}

// FileResult is the result of applying a file's changes.
type FileResult struct {
	Path     string
	Outcomes []Outcome

	Applied int
	Pending int
	Failed  int
	Skipped int

	// Modified is true when the resulting content differs from the original.
	Modified bool

	// Written is true when the content was stored on disk.
	Written bool

	// BackupCreated is true when a backup of the original was made.
	BackupCreated bool

	// Diff is the unified diff of the change, nil when not modified.
	Diff *diff.Diff

	// Content is the resulting content, nil when not modified.
	Content []byte
}

// Summary returns a short human-readable description of the result.
func (r *FileResult) Summary() string {
	switch {
	case r.Written && r.BackupCreated:
		return fmt.Sprintf("%d applied (backup created)", r.Applied)
	case r.Written:
		return fmt.Sprintf("%d applied", r.Applied)
	case r.Pending > 0:
		return fmt.Sprintf("%d pending", r.Pending)
	case r.Failed > 0:
		return fmt.Sprintf("%d failed", r.Failed)
	default:
		return "unchanged"
	}
}

func (r *FileResult) record(outcome Outcome) {
	switch outcome.Status {
	case StatusApplied:
		r.Applied++
	case StatusPending:
		r.Pending++
	case StatusSkipped:
		r.Skipped++
	case StatusFailed:
		r.Failed++
	}
	r.Outcomes = append(r.Outcomes, outcome)
}
