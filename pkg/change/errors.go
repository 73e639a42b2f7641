package change

import (
	"errors"
	"fmt"
)

// ErrUnknownKind is returned for change types other than insert, update and delete.
var ErrUnknownKind = errors.New("unknown change type")

// ErrNoChanges is returned when a document holds no change records at all.
var ErrNoChanges = errors.New("no changes found")

// ValidationError describes a change that breaks the rules for its kind.
type ValidationError struct {
	Kind     Kind
	Location Location
	Message  string
}

func (e *ValidationError) Error() string {
	if e.Kind == 0 {
		return fmt.Sprintf("invalid change at %s: %s", e.Location, e.Message)
	}
	return fmt.Sprintf("invalid %s change at %s: %s", e.Kind, e.Location, e.Message)
}

// BoundsError reports a location outside the lines of the file.
type BoundsError struct {
	Location Location
	Total    int
}

func (e *BoundsError) Error() string {
	return fmt.Sprintf("lines %d-%d out of bounds for %s (%d lines)",
		e.Location.StartLine, e.Location.EndLine, e.Location.FilePath, e.Total)
}
