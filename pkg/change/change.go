// Package change defines the edits proposed against a source file.
//
// A Change is one of three concrete kinds: Insert, Update, or Delete.
// Each kind carries only the text it needs, and the constructors reject
// values that break the rules for that kind, so code that receives a
// Change never has to re-check them.
package change

import (
	"fmt"
	"strings"
)

// Kind identifies the type of a change.
type Kind int

const (
	// KindInsert adds lines before Location.StartLine.
	KindInsert Kind = iota + 1

	// KindUpdate replaces lines StartLine..EndLine.
	KindUpdate

	// KindDelete removes lines StartLine..EndLine.
	KindDelete
)

// String returns the wire name of the kind.
func (k Kind) String() string {
	switch k {
	case KindInsert:
		return "insert"
	case KindUpdate:
		return "update"
	case KindDelete:
		return "delete"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	switch k {
	case KindInsert, KindUpdate, KindDelete:
		return []byte(k.String()), nil
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownKind, int(k))
	}
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(text []byte) error {
	parsed, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// ParseKind converts a change type name into a Kind. Matching is
// case-insensitive and tolerates surrounding whitespace.
func ParseKind(name string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "insert", "add":
		return KindInsert, nil
	case "update", "replace", "modify":
		return KindUpdate, nil
	case "delete", "remove":
		return KindDelete, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownKind, name)
	}
}

// Location is where a change applies as proposed. Lines are 1-based and
// inclusive. The numbers may be stale with respect to the current file.
type Location struct {
	FilePath  string `json:"file_path"  yaml:"file_path"`
	StartLine int    `json:"start_line" yaml:"start_line"`
	EndLine   int    `json:"end_line"   yaml:"end_line"`
}

// String formats the location as path:start-end.
func (l Location) String() string {
	if l.StartLine == l.EndLine {
		return fmt.Sprintf("%s:%d", l.FilePath, l.StartLine)
	}
	return fmt.Sprintf("%s:%d-%d", l.FilePath, l.StartLine, l.EndLine)
}

// Offset shifts both line numbers by delta.
func (l Location) Offset(delta int) Location {
	l.StartLine += delta
	l.EndLine += delta
	return l
}

// Validate checks the location against a file of total lines. Inserts may
// target one line past the end; the other kinds must name existing lines.
func (l Location) Validate(kind Kind, total int) error {
	limit := total
	if kind == KindInsert {
		limit = total + 1
	}

	if l.StartLine < 1 || l.StartLine > limit {
		return &BoundsError{Location: l, Total: total}
	}
	if kind != KindInsert && (l.EndLine < l.StartLine || l.EndLine > total) {
		return &BoundsError{Location: l, Total: total}
	}
	return nil
}

// Change is a proposed edit. The concrete types are Insert, Update and Delete.
type Change interface {
	// Kind reports which concrete type the change is.
	Kind() Kind

	// Where returns the proposed location.
	Where() Location

	// Why returns the human-readable reason for the change.
	Why() string

	relocate(loc Location) Change
}

// Insert adds After before the line at Location.StartLine.
type Insert struct {
	Location Location
	After    string
	Reason   string
}

// Update replaces the lines holding Before with After.
type Update struct {
	Location Location
	Before   string
	After    string
	Reason   string
}

// Delete removes the lines StartLine..EndLine. Before, when set, is used
// to confirm or relocate the range.
type Delete struct {
	Location Location
	Before   string
	Reason   string
}

func (Insert) Kind() Kind { return KindInsert }
func (Update) Kind() Kind { return KindUpdate }
func (Delete) Kind() Kind { return KindDelete }

func (c Insert) Where() Location { return c.Location }
func (c Update) Where() Location { return c.Location }
func (c Delete) Where() Location { return c.Location }

func (c Insert) Why() string { return c.Reason }
func (c Update) Why() string { return c.Reason }
func (c Delete) Why() string { return c.Reason }

func (c Insert) relocate(loc Location) Change { c.Location = loc; return c }
func (c Update) relocate(loc Location) Change { c.Location = loc; return c }
func (c Delete) relocate(loc Location) Change { c.Location = loc; return c }

// NewInsert builds an insert change. After must contain non-whitespace text.
func NewInsert(loc Location, after, reason string) (Insert, error) {
	if isBlank(after) {
		return Insert{}, &ValidationError{Kind: KindInsert, Location: loc, Message: "after text is empty"}
	}
	if loc.EndLine < loc.StartLine {
		loc.EndLine = loc.StartLine
	}
	return Insert{Location: loc, After: after, Reason: reason}, nil
}

// NewUpdate builds an update change. Both texts must contain non-whitespace text.
func NewUpdate(loc Location, before, after, reason string) (Update, error) {
	if isBlank(before) {
		return Update{}, &ValidationError{Kind: KindUpdate, Location: loc, Message: "before text is empty"}
	}
	if isBlank(after) {
		return Update{}, &ValidationError{Kind: KindUpdate, Location: loc, Message: "after text is empty"}
	}
	return Update{Location: loc, Before: before, After: after, Reason: reason}, nil
}

// NewDelete builds a delete change.
func NewDelete(loc Location, before, reason string) (Delete, error) {
	return Delete{Location: loc, Before: before, Reason: reason}, nil
}

// New builds a change of the given kind and rejects text that the kind
// does not allow: an insert carrying before text, or a delete carrying
// after text.
func New(kind Kind, loc Location, before, after, reason string) (Change, error) {
	switch kind {
	case KindInsert:
		if !isBlank(before) {
			return nil, &ValidationError{Kind: kind, Location: loc, Message: "insert must not carry before text"}
		}
		return NewInsert(loc, after, reason)
	case KindUpdate:
		return NewUpdate(loc, before, after, reason)
	case KindDelete:
		if !isBlank(after) {
			return nil, &ValidationError{Kind: kind, Location: loc, Message: "delete must not carry after text"}
		}
		return NewDelete(loc, before, reason)
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownKind, int(kind))
	}
}

// Before returns the text a change expects to find, or "" for inserts.
func Before(c Change) string {
	switch typed := c.(type) {
	case Update:
		return typed.Before
	case Delete:
		return typed.Before
	default:
		return ""
	}
}

// After returns the replacement text, or "" for deletes.
func After(c Change) string {
	switch typed := c.(type) {
	case Insert:
		return typed.After
	case Update:
		return typed.After
	default:
		return ""
	}
}

// WithFilePath returns a copy of c with Location.FilePath set to path.
func WithFilePath(c Change, path string) Change {
	loc := c.Where()
	loc.FilePath = path
	return c.relocate(loc)
}

// Offset returns a copy of c with both line numbers shifted by delta.
func Offset(c Change, delta int) Change {
	if delta == 0 {
		return c
	}
	return c.relocate(c.Where().Offset(delta))
}

func isBlank(text string) bool {
	return strings.TrimSpace(text) == ""
}
