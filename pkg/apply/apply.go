// Package apply writes proposed changes into source files.
//
// A file is read once, its changes are applied to an in-memory buffer in
// descending order of start line, and the result is written back once.
// Each change is first tried at its proposed line numbers and then, if the
// lines there no longer hold the expected text, relocated by content.
package apply

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/yaklabco/jdkup/internal/logging"
	"github.com/yaklabco/jdkup/pkg/change"
	"github.com/yaklabco/jdkup/pkg/diff"
	"github.com/yaklabco/jdkup/pkg/fsutil"
	"github.com/yaklabco/jdkup/pkg/match"
	"github.com/yaklabco/jdkup/pkg/source"
)

// Mode selects how changes are approved and whether files are written.
type Mode int

const (
	// ModeAuto applies every change without asking.
	ModeAuto Mode = iota

	// ModeInteractive asks the Approver before each change.
	ModeInteractive

	// ModeDryRun resolves every change and renders a diff without writing.
	ModeDryRun
)

func (m Mode) String() string {
	switch m {
	case ModeInteractive:
		return "interactive"
	case ModeDryRun:
		return "dry-run"
	default:
		return "auto"
	}
}

// Options controls the applicator.
type Options struct {
	Mode Mode

	// Approver is consulted for each change in interactive mode.
	Approver Approver

	// Backup configures backups of the original file before it is rewritten.
	Backup fsutil.BackupConfig

	// StrictRaceDetection compares content hashes instead of size and
	// modification time when checking for concurrent edits.
	StrictRaceDetection bool

	// Match tunes content matching.
	Match []match.Option

	// RelocateOutOfBounds lets updates and deletes whose line numbers fall
	// outside the file be located by content instead of rejected.
	RelocateOutOfBounds bool
}

// DefaultOptions returns auto mode with backups and strict race detection.
func DefaultOptions() Options {
	return Options{
		Mode:                ModeAuto,
		Backup:              fsutil.DefaultBackupConfig(),
		StrictRaceDetection: true,
	}
}

// Applicator applies changes to files.
type Applicator struct {
	opts    Options
	matcher *match.Matcher
}

// New returns an Applicator configured by opts.
func New(opts Options) *Applicator {
	return &Applicator{
		opts:    opts,
		matcher: match.New(opts.Match...),
	}
}

// ApplyFile applies changes to the file at path.
//
// The steps are:
//  1. Read and hash the file.
//  2. Apply each change to an in-memory buffer.
//  3. Render a diff and stop when in dry-run mode.
//  4. Check that the file was not modified in the meantime.
//  5. Back up the original if enabled.
//  6. Write the new content atomically.
//
// Per-change failures are reported in the result. A returned error means
// the file as a whole could not be processed; ErrQuit is returned together
// with a result whose accepted changes have been written.
func (a *Applicator) ApplyFile(ctx context.Context, path string, changes []change.Change) (*FileResult, error) {
	original, snap, err := fsutil.Read(ctx, path)
	if err != nil {
		return nil, categorizeError(err)
	}

	result, runErr := a.ApplyContent(ctx, path, original, changes)
	if runErr != nil && !errors.Is(runErr, ErrQuit) {
		return nil, runErr
	}

	if !result.Modified || a.opts.Mode == ModeDryRun {
		return result, runErr
	}

	changed, err := snap.Changed(ctx, a.opts.StrictRaceDetection)
	if err != nil {
		return nil, fmt.Errorf("check modified: %w", categorizeError(err))
	}
	if changed {
		return nil, fmt.Errorf("%w: %s", ErrModifiedDuringApply, path)
	}

	if a.opts.Backup.Active() {
		created, err := fsutil.Backup(ctx, path, original, snap.Mode, a.opts.Backup)
		if err != nil {
			return nil, fmt.Errorf("create backup: %w", err)
		}
		result.BackupCreated = created
	}

	if err := fsutil.WriteAtomic(ctx, path, result.Content, snap.Mode); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrWriteFailure, err)
	}
	result.Written = true

	logging.FromContext(ctx).Debug("file written",
		logging.FieldPath, path,
		logging.FieldApplied, result.Applied,
		logging.FieldBackup, result.BackupCreated,
	)

	return result, runErr
}

// ApplyContent applies changes to content without touching the disk.
// The result holds the new content and its diff when anything changed.
func (a *Applicator) ApplyContent(
	ctx context.Context,
	path string,
	content []byte,
	changes []change.Change,
) (*FileResult, error) {
	if a.opts.Mode == ModeInteractive && a.opts.Approver == nil {
		return nil, ErrNoApprover
	}

	result := &FileResult{Path: path}
	buf := source.Parse(content)

	ordered := make([]change.Change, len(changes))
	copy(ordered, changes)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Where().StartLine > ordered[j].Where().StartLine
	})

	ask := a.opts.Mode == ModeInteractive
	var runErr error

	for idx, c := range ordered {
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("apply cancelled: %w", ctx.Err())
		default:
		}

		if ask {
			decision, err := a.opts.Approver.Approve(ctx, path, c)
			if err != nil {
				return nil, fmt.Errorf("approve change at %s: %w", c.Where(), err)
			}

			switch decision {
			case Skip:
				result.record(Outcome{Change: c, Status: StatusSkipped, Message: "skipped"})
				continue
			case Quit:
				for _, rest := range ordered[idx:] {
					result.record(Outcome{Change: rest, Status: StatusSkipped, Message: "not attempted: quit"})
				}
				runErr = ErrQuit
			case AcceptAll:
				ask = false
			case Accept:
			}
			if runErr != nil {
				break
			}
		}

		outcome := a.resolve(ctx, buf, c)
		if outcome.Status == StatusApplied && a.opts.Mode == ModeDryRun {
			outcome.Status = StatusPending
		}
		result.record(outcome)
	}

	if updated := buf.Bytes(); !bytes.Equal(updated, content) {
		result.Modified = true
		result.Content = updated
		result.Diff = diff.Compute(path, content, updated)
	}

	return result, runErr
}

// categorizeError wraps a read error with the matching sentinel.
func categorizeError(err error) error {
	switch {
	case errors.Is(err, fsutil.ErrNotFound) || errors.Is(err, os.ErrNotExist):
		return fmt.Errorf("%w: %w", ErrFileNotFound, err)
	case errors.Is(err, fsutil.ErrPermissionDenied) || errors.Is(err, os.ErrPermission):
		return fmt.Errorf("%w: %w", ErrPermissionDenied, err)
	case errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded):
		return err
	default:
		return fmt.Errorf("%w: %w", ErrReadFailure, err)
	}
}
