package apply

import (
	"errors"
	"fmt"
	"strings"

	"github.com/yaklabco/jdkup/pkg/change"
	"github.com/yaklabco/jdkup/pkg/match"
)

// File-level errors. Per-change problems are reported in Outcome.Err and
// never abort the file.
var (
	// ErrFileNotFound indicates the target file does not exist.
	ErrFileNotFound = errors.New("file not found")

	// ErrPermissionDenied indicates the file cannot be read or written.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrReadFailure indicates any other failure to read the file.
	ErrReadFailure = errors.New("read failure")

	// ErrWriteFailure indicates the rewritten content could not be stored.
	ErrWriteFailure = errors.New("write failure")

	// ErrModifiedDuringApply indicates the file changed on disk while its
	// changes were being applied in memory.
	ErrModifiedDuringApply = errors.New("file modified during apply")

	// ErrQuit is returned when the approver asks to stop the whole run.
	ErrQuit = errors.New("apply aborted by user")

	// ErrNoApprover is returned for interactive mode without an Approver.
	ErrNoApprover = errors.New("interactive mode requires an approver")
)

// BoundsError reports a location outside the file.
type BoundsError = change.BoundsError

// ContentMismatchError reports that the lines at a change's location do
// not hold its expected text.
type ContentMismatchError struct {
	Location change.Location
	Want     string
	Got      string
}

func (e *ContentMismatchError) Error() string {
	return fmt.Sprintf("content at %s does not match: want %q, got %q",
		e.Location, firstLine(e.Want), firstLine(e.Got))
}

// NotFoundError reports a change whose target text could not be located
// by line number or by content.
type NotFoundError struct {
	Location change.Location
	Snippet  string

	// Closest is the most similar window of the file, if any.
	Closest *match.Candidate

	// Cause is the reason the line-number attempt failed.
	Cause error
}

func (e *NotFoundError) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "target of %s not found: %q", e.Location, firstLine(e.Snippet))
	if e.Closest != nil {
		fmt.Fprintf(&sb, " (closest: lines %d-%d, %.0f%% similar)",
			e.Closest.Start+1, e.Closest.End, e.Closest.Similarity*100)
	}
	return sb.String()
}

func (e *NotFoundError) Unwrap() error {
	return e.Cause
}

func firstLine(text string) string {
	text = strings.TrimSpace(text)
	if idx := strings.IndexByte(text, '\n'); idx >= 0 {
		return strings.TrimSpace(text[:idx]) + " ..."
	}
	return text
}
