package runner

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/yaklabco/jdkup/internal/logging"
	"github.com/yaklabco/jdkup/pkg/apply"
	"github.com/yaklabco/jdkup/pkg/change"
)

// ErrMissingFilePath is reported for changes that do not name a file.
var ErrMissingFilePath = errors.New("change has no file path")

// Session holds the bookkeeping of one apply run. A new Session is
// created for every run; nothing is shared between runs.
type Session struct {
	// Started is when the run began.
	Started time.Time

	attempts map[string]int
}

func newSession() *Session {
	return &Session{Started: time.Now(), attempts: make(map[string]int)}
}

// attempt adds n attempted changes for path.
func (s *Session) attempt(path string, n int) {
	s.attempts[path] += n
}

// Attempts returns the number of changes attempted against path.
func (s *Session) Attempts(path string) int {
	return s.attempts[path]
}

// Paths returns every path the session touched, sorted.
func (s *Session) Paths() []string {
	paths := make([]string, 0, len(s.attempts))
	for path := range s.attempts {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	return paths
}

// Apply groups changes by file and applies each group with one read and
// at most one write per file. Files are processed one at a time in path
// order. Relative change paths are resolved against opts.WorkingDir.
//
// Per-file problems are recorded in the result and do not stop the run.
// The run stops early when the context is cancelled or the user quits
// from a prompt; the partial result is returned with the error.
func Apply(ctx context.Context, changes []change.Change, opts ApplyOptions) (*ApplyResult, error) {
	cfg := opts.effectiveConfig()
	logger := logging.FromContext(ctx)

	applyOpts := ApplicatorOptions(cfg, opts.Approver)
	if applyOpts.Mode == apply.ModeInteractive && applyOpts.Approver == nil {
		return nil, apply.ErrNoApprover
	}

	workDir, err := resolveWorkDir(opts.WorkingDir)
	if err != nil {
		return nil, err
	}

	result := &ApplyResult{Session: newSession()}
	groups, missing := groupByFile(changes, workDir)
	for _, c := range missing {
		result.Errors = append(result.Errors, fmt.Errorf("%w: %s", ErrMissingFilePath, c.Where()))
	}
	result.Stats.ChangesTotal += len(missing)
	result.Stats.ChangesFailed += len(missing)

	paths := make([]string, 0, len(groups))
	for path := range groups {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	applicator := apply.New(applyOpts)

	logger.Debug("applying changes",
		logging.FieldFiles, len(paths),
		logging.FieldChangesTotal, len(changes),
		logging.FieldMode, applyOpts.Mode,
	)

	for _, path := range paths {
		if ctx.Err() != nil {
			return result, fmt.Errorf("apply cancelled: %w", ctx.Err())
		}

		group := groups[path]
		result.Session.attempt(path, len(group))

		res, err := applicator.ApplyFile(ctx, path, group)
		result.accumulate(FileOutcome{Path: path, Result: res, Error: err}, len(group))

		switch {
		case errors.Is(err, apply.ErrQuit):
			result.Quit = true
			return result, err
		case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
			return result, err
		case err != nil:
			logger.Warn("file not processed", logging.FieldPath, path, logging.FieldError, err)
		}
	}

	logger.Debug("apply finished",
		logging.FieldFilesModified, result.Stats.FilesModified,
		logging.FieldChangesApplied, result.Stats.ChangesApplied,
		logging.FieldChangesFailed, result.Stats.ChangesFailed,
	)

	return result, nil
}

// groupByFile buckets changes by absolute file path, keeping input order
// within each bucket. Changes without a path are returned separately.
func groupByFile(changes []change.Change, workDir string) (map[string][]change.Change, []change.Change) {
	groups := make(map[string][]change.Change)
	var missing []change.Change

	for _, c := range changes {
		path := c.Where().FilePath
		if path == "" {
			missing = append(missing, c)
			continue
		}
		if !filepath.IsAbs(path) {
			path = filepath.Join(workDir, filepath.FromSlash(path))
		}
		path = filepath.Clean(path)
		groups[path] = append(groups[path], c)
	}

	return groups, missing
}

func resolveWorkDir(dir string) (string, error) {
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
		return wd, nil
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolve working directory: %w", err)
	}
	return abs, nil
}
