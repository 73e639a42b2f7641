package reporter

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"

	"github.com/yaklabco/jdkup/pkg/apply"
	"github.com/yaklabco/jdkup/pkg/runner"
)

// jsonVersion is the schema version of the JSON output.
const jsonVersion = "1.0.0"

// JSONApplyOutput is the top-level JSON structure of an apply run.
type JSONApplyOutput struct {
	Version string           `json:"version"`
	Files   []JSONFileResult `json:"files"`
	Errors  []string         `json:"errors,omitempty"`
	Quit    bool             `json:"quit,omitempty"`
	Summary JSONApplySummary `json:"summary"`
}

// JSONFileResult represents a single file's apply results.
type JSONFileResult struct {
	Path          string       `json:"path"`
	Summary       string       `json:"summary,omitempty"`
	Written       bool         `json:"written"`
	BackupCreated bool         `json:"backupCreated,omitempty"`
	Changes       []JSONChange `json:"changes"`
	Diff          string       `json:"diff,omitempty"`
	Error         string       `json:"error,omitempty"`
}

// JSONChange represents the outcome of a single change.
type JSONChange struct {
	Type      string `json:"type"`
	Reason    string `json:"reason,omitempty"`
	StartLine int    `json:"startLine"`
	EndLine   int    `json:"endLine"`
	Status    string `json:"status"`
	Stage     string `json:"stage,omitempty"`
	FoundLine int    `json:"foundLine,omitempty"`
	Message   string `json:"message,omitempty"`
}

// JSONApplySummary contains aggregate apply statistics.
type JSONApplySummary struct {
	Files          int `json:"files"`
	FilesModified  int `json:"filesModified"`
	FilesErrored   int `json:"filesErrored"`
	BackupsCreated int `json:"backupsCreated"`
	Changes        int `json:"changes"`
	Applied        int `json:"applied"`
	Pending        int `json:"pending"`
	Skipped        int `json:"skipped"`
	Failed         int `json:"failed"`
}

// JSONExtractOutput is the top-level JSON structure of an extract run.
type JSONExtractOutput struct {
	Version string             `json:"version"`
	Files   []JSONExtractFile  `json:"files"`
	Summary JSONExtractSummary `json:"summary"`
}

// JSONExtractFile lists the blocks of one file.
type JSONExtractFile struct {
	Path     string      `json:"path"`
	Category string      `json:"category"`
	Language string      `json:"language,omitempty"`
	Blocks   []JSONBlock `json:"blocks"`
	Error    string      `json:"error,omitempty"`
}

// JSONBlock is one extracted block.
type JSONBlock struct {
	StartLine int      `json:"startLine"`
	EndLine   int      `json:"endLine"`
	Content   string   `json:"content"`
	Keywords  []string `json:"keywords,omitempty"`
	Large     bool     `json:"large,omitempty"`
}

// JSONExtractSummary contains aggregate extraction statistics.
type JSONExtractSummary struct {
	FilesScanned    int `json:"filesScanned"`
	FilesWithBlocks int `json:"filesWithBlocks"`
	FilesErrored    int `json:"filesErrored"`
	Blocks          int `json:"blocks"`
	LargeBlocks     int `json:"largeBlocks"`
}

// JSONReporter formats results as JSON.
type JSONReporter struct {
	opts Options
	bw   *bufio.Writer
}

// NewJSONReporter creates a new JSON reporter.
func NewJSONReporter(opts Options) *JSONReporter {
	return &JSONReporter{
		opts: opts,
		bw:   bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// ReportApply implements Reporter.
func (r *JSONReporter) ReportApply(_ context.Context, result *runner.ApplyResult) error {
	return r.encode(r.buildApplyOutput(result))
}

// ReportExtract implements Reporter. Files without blocks are left out.
func (r *JSONReporter) ReportExtract(_ context.Context, result *runner.ExtractResult) error {
	return r.encode(r.buildExtractOutput(result))
}

func (r *JSONReporter) encode(output any) (err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	encoder := json.NewEncoder(r.bw)
	if !r.opts.Compact {
		encoder.SetIndent("", "  ")
	}

	if err := encoder.Encode(output); err != nil {
		return fmt.Errorf("encode JSON: %w", err)
	}
	return nil
}

func (r *JSONReporter) buildApplyOutput(result *runner.ApplyResult) *JSONApplyOutput {
	output := &JSONApplyOutput{
		Version: jsonVersion,
		Files:   make([]JSONFileResult, 0),
	}

	if result == nil {
		return output
	}

	for _, file := range result.Files {
		fileResult := JSONFileResult{
			Path:    displayPath(r.opts.WorkingDir, file.Path),
			Changes: make([]JSONChange, 0),
		}

		if file.Error != nil {
			fileResult.Error = file.Error.Error()
		}

		if res := file.Result; res != nil {
			fileResult.Summary = res.Summary()
			fileResult.Written = res.Written
			fileResult.BackupCreated = res.BackupCreated
			if res.Diff.HasChanges() {
				fileResult.Diff = res.Diff.String()
			}
			for _, outcome := range res.Outcomes {
				fileResult.Changes = append(fileResult.Changes, jsonChange(outcome))
			}
		}

		output.Files = append(output.Files, fileResult)
	}

	for _, runErr := range result.Errors {
		output.Errors = append(output.Errors, runErr.Error())
	}
	output.Quit = result.Quit

	stats := result.Stats
	output.Summary = JSONApplySummary{
		Files:          stats.FilesTotal,
		FilesModified:  stats.FilesModified,
		FilesErrored:   stats.FilesErrored,
		BackupsCreated: stats.BackupsCreated,
		Changes:        stats.ChangesTotal,
		Applied:        stats.ChangesApplied,
		Pending:        stats.ChangesPending,
		Skipped:        stats.ChangesSkipped,
		Failed:         stats.ChangesFailed,
	}

	return output
}

func jsonChange(outcome apply.Outcome) JSONChange {
	out := JSONChange{
		Status:  outcome.Status.String(),
		Message: outcome.Message,
	}
	if outcome.Change != nil {
		loc := outcome.Change.Where()
		out.Type = outcome.Change.Kind().String()
		out.Reason = outcome.Change.Why()
		out.StartLine = loc.StartLine
		out.EndLine = loc.EndLine
	}
	if outcome.Stage != apply.StageNone {
		out.Stage = outcome.Stage.String()
		out.FoundLine = outcome.Start
	}
	return out
}

func (r *JSONReporter) buildExtractOutput(result *runner.ExtractResult) *JSONExtractOutput {
	output := &JSONExtractOutput{
		Version: jsonVersion,
		Files:   make([]JSONExtractFile, 0),
	}

	if result == nil {
		return output
	}

	for _, file := range result.Files {
		if file.Error == nil && len(file.Blocks) == 0 {
			continue
		}

		large := make(map[int]bool, len(file.Warnings))
		for _, warning := range file.Warnings {
			large[warning.Block.StartLine] = true
		}

		entry := JSONExtractFile{
			Path:     file.File.Rel,
			Category: file.File.Category.String(),
			Language: string(file.Language),
			Blocks:   make([]JSONBlock, 0, len(file.Blocks)),
		}
		if file.Error != nil {
			entry.Error = file.Error.Error()
		}
		for _, block := range file.Blocks {
			entry.Blocks = append(entry.Blocks, JSONBlock{
				StartLine: block.StartLine,
				EndLine:   block.EndLine,
				Content:   block.Content,
				Keywords:  block.Keywords,
				Large:     large[block.StartLine],
			})
		}

		output.Files = append(output.Files, entry)
	}

	stats := result.Stats
	output.Summary = JSONExtractSummary{
		FilesScanned:    stats.FilesDiscovered,
		FilesWithBlocks: stats.FilesWithBlocks,
		FilesErrored:    stats.FilesErrored,
		Blocks:          stats.Blocks,
		LargeBlocks:     stats.LargeBlocks,
	}

	return output
}
