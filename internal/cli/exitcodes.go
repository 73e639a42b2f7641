package cli

import (
	"errors"
	"io/fs"

	"github.com/yaklabco/jdkup/internal/configloader"
	"github.com/yaklabco/jdkup/pkg/apply"
	"github.com/yaklabco/jdkup/pkg/fsutil"
	"github.com/yaklabco/jdkup/pkg/runner"
)

// Exit codes for jdkup.
const (
	// ExitSuccess indicates every change was applied, skipped, or rendered.
	ExitSuccess = 0

	// ExitChangesFailed indicates at least one change could not be applied.
	ExitChangesFailed = 1

	// ExitQuit indicates the user stopped an interactive run.
	ExitQuit = 2

	// ExitInvalidUsage indicates invalid command-line usage.
	ExitInvalidUsage = 64

	// ExitConfigError indicates bad configuration or malformed change input.
	ExitConfigError = 65

	// ExitInternalError indicates an internal error.
	ExitInternalError = 70

	// ExitIOError indicates file I/O errors.
	ExitIOError = 74
)

// Sentinel errors that select an exit code.
var (
	// ErrChangesFailed is returned when a run finished with failed changes.
	ErrChangesFailed = errors.New("some changes could not be applied")

	// ErrUsage marks invalid command-line usage.
	ErrUsage = errors.New("invalid usage")

	// ErrConfig marks configuration and change input errors.
	ErrConfig = errors.New("invalid configuration")

	// ErrIO marks file system errors.
	ErrIO = errors.New("i/o error")
)

// ExitCode maps an error returned by a command to a process exit code.
func ExitCode(err error) int {
	var validation *configloader.ValidationError

	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, ErrChangesFailed):
		return ExitChangesFailed
	case errors.Is(err, apply.ErrQuit):
		return ExitQuit
	case errors.Is(err, ErrUsage), errors.Is(err, apply.ErrNoApprover):
		return ExitInvalidUsage
	case errors.Is(err, ErrConfig), errors.As(err, &validation):
		return ExitConfigError
	case errors.Is(err, ErrIO), errors.Is(err, fsutil.ErrNotFound), errors.Is(err, fsutil.ErrNoBackup),
		errors.Is(err, fs.ErrNotExist):
		return ExitIOError
	default:
		return ExitInternalError
	}
}

// ExitCodeFromResult determines the exit code of a finished apply run.
func ExitCodeFromResult(result *runner.ApplyResult) int {
	switch {
	case result == nil:
		return ExitSuccess
	case result.Quit:
		return ExitQuit
	case result.HasFailures():
		return ExitChangesFailed
	default:
		return ExitSuccess
	}
}
