package apply

import (
	"context"

	"github.com/yaklabco/jdkup/pkg/change"
)

// Decision is an approver's answer for one change.
type Decision int

const (
	// Skip leaves the change out.
	Skip Decision = iota

	// Accept applies the change.
	Accept

	// AcceptAll applies this change and every remaining one in the file.
	AcceptAll

	// Quit stops the run. Changes already accepted for the file are kept.
	Quit
)

func (d Decision) String() string {
	switch d {
	case Accept:
		return "accept"
	case AcceptAll:
		return "accept-all"
	case Quit:
		return "quit"
	default:
		return "skip"
	}
}

// Approver decides whether a change should be applied. It is consulted
// before the change is resolved against the file.
type Approver interface {
	Approve(ctx context.Context, path string, c change.Change) (Decision, error)
}

// ApproverFunc adapts a function to the Approver interface.
type ApproverFunc func(ctx context.Context, path string, c change.Change) (Decision, error)

// Approve calls f.
func (f ApproverFunc) Approve(ctx context.Context, path string, c change.Change) (Decision, error) {
	return f(ctx, path, c)
}
