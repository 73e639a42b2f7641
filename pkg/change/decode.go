package change

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Record is the wire form of a single change as emitted by the analysis step.
type Record struct {
	ChangeType string   `json:"change_type,omitempty" yaml:"change_type,omitempty"`
	Reason     string   `json:"reason"                yaml:"reason"`
	Location   Location `json:"location"              yaml:"location"`
	Before     string   `json:"before"                yaml:"before"`
	After      string   `json:"after"                 yaml:"after"`

	// BlockStartLine is set when the location is relative to an extracted
	// block rather than to the whole file. Lines are shifted by
	// BlockStartLine-1 during conversion.
	BlockStartLine int `json:"block_start_line,omitempty" yaml:"block_start_line,omitempty"`
}

// Response is one structured analysis response.
type Response struct {
	Summary string   `json:"summary" yaml:"summary"`
	Changes []Record `json:"changes" yaml:"changes"`
}

// Batch is the result of decoding one or more responses.
type Batch struct {
	// Summaries holds the non-empty summary of every response.
	Summaries []string

	// Changes holds every record that converted to a valid change, in input order.
	Changes []Change

	// Invalid holds one error per record that could not be converted.
	Invalid []error
}

// Change converts the record into a typed change. When ChangeType is
// empty the kind is inferred from which texts are present.
func (r Record) Change() (Change, error) {
	kind, err := r.kind()
	if err != nil {
		return nil, err
	}

	loc := r.Location
	if loc.EndLine == 0 {
		loc.EndLine = loc.StartLine
	}
	if r.BlockStartLine > 0 {
		loc = loc.Offset(r.BlockStartLine - 1)
	}

	return New(kind, loc, r.Before, r.After, r.Reason)
}

func (r Record) kind() (Kind, error) {
	if strings.TrimSpace(r.ChangeType) != "" {
		return ParseKind(r.ChangeType)
	}
	switch {
	case isBlank(r.Before) && !isBlank(r.After):
		return KindInsert, nil
	case !isBlank(r.Before) && isBlank(r.After):
		return KindDelete, nil
	case !isBlank(r.Before):
		return KindUpdate, nil
	default:
		return 0, &ValidationError{Location: r.Location, Message: "cannot infer change type without before or after text"}
	}
}

// Decode parses change responses from data. JSON objects and arrays,
// YAML documents (including multi-document streams), and Markdown with
// fenced json or yaml code blocks are accepted.
func Decode(data []byte) (*Batch, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, ErrNoChanges
	}

	var (
		responses []Response
		err       error
	)

	switch {
	case trimmed[0] == '{' || trimmed[0] == '[':
		responses, err = decodeJSON(trimmed)
	case looksLikeMarkdown(trimmed):
		responses, err = decodeMarkdown(trimmed)
	default:
		responses, err = decodeYAML(trimmed)
	}
	if err != nil {
		return nil, err
	}

	return collect(responses)
}

// DecodeFile reads and decodes a change file. Files with a Markdown
// extension are always parsed as Markdown.
func DecodeFile(path string) (*Batch, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read change file: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".md", ".markdown":
		responses, err := decodeMarkdown(data)
		if err != nil {
			return nil, fmt.Errorf("decode %s: %w", path, err)
		}
		return collect(responses)
	}

	batch, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return batch, nil
}

func collect(responses []Response) (*Batch, error) {
	batch := &Batch{}
	records := 0

	for _, resp := range responses {
		if s := strings.TrimSpace(resp.Summary); s != "" {
			batch.Summaries = append(batch.Summaries, s)
		}
		for idx, rec := range resp.Changes {
			records++
			chg, err := rec.Change()
			if err != nil {
				batch.Invalid = append(batch.Invalid, fmt.Errorf("change %d: %w", idx+1, err))
				continue
			}
			batch.Changes = append(batch.Changes, chg)
		}
	}

	if records == 0 {
		return nil, ErrNoChanges
	}
	return batch, nil
}

func decodeJSON(data []byte) ([]Response, error) {
	if data[0] == '[' {
		var records []Record
		if err := json.Unmarshal(data, &records); err != nil {
			return nil, fmt.Errorf("decode json changes: %w", err)
		}
		return []Response{{Changes: records}}, nil
	}

	var resp Response
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("decode json response: %w", err)
	}
	return []Response{resp}, nil
}

func decodeYAML(data []byte) ([]Response, error) {
	var responses []Response

	dec := yaml.NewDecoder(bytes.NewReader(data))
	for {
		var doc yaml.Node
		err := dec.Decode(&doc)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("decode yaml response: %w", err)
		}

		resp, err := responseFromNode(&doc)
		if err != nil {
			return nil, err
		}
		responses = append(responses, resp)
	}

	return responses, nil
}

func responseFromNode(doc *yaml.Node) (Response, error) {
	node := doc
	if node.Kind == yaml.DocumentNode && len(node.Content) > 0 {
		node = node.Content[0]
	}

	if node.Kind == yaml.SequenceNode {
		var records []Record
		if err := node.Decode(&records); err != nil {
			return Response{}, fmt.Errorf("decode yaml changes: %w", err)
		}
		return Response{Changes: records}, nil
	}

	var resp Response
	if err := node.Decode(&resp); err != nil {
		return Response{}, fmt.Errorf("decode yaml response: %w", err)
	}
	return resp, nil
}

func looksLikeMarkdown(data []byte) bool {
	return bytes.Contains(data, []byte("```")) || bytes.Contains(data, []byte("~~~"))
}
