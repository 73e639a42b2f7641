package reporter_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/jdkup/pkg/apply"
	"github.com/yaklabco/jdkup/pkg/change"
	"github.com/yaklabco/jdkup/pkg/config"
	"github.com/yaklabco/jdkup/pkg/diff"
	"github.com/yaklabco/jdkup/pkg/discovery"
	"github.com/yaklabco/jdkup/pkg/extract"
	"github.com/yaklabco/jdkup/pkg/langdetect"
	"github.com/yaklabco/jdkup/pkg/reporter"
	"github.com/yaklabco/jdkup/pkg/runner"
)

const workDir = "/repo"

func newReporter(t *testing.T, format config.OutputFormat, buf *bytes.Buffer) reporter.Reporter {
	t.Helper()
	rep, err := reporter.New(reporter.Options{
		Writer:      buf,
		ErrorWriter: buf,
		Format:      format,
		Color:       "never",
		ShowSummary: true,
		ShowContent: true,
		WorkingDir:  workDir,
	})
	require.NoError(t, err)
	return rep
}

func sampleApplyResult(t *testing.T, written bool) *runner.ApplyResult {
	t.Helper()

	path := filepath.Join(workDir, "src", "App.java")
	upd, err := change.NewUpdate(change.Location{FilePath: path, StartLine: 2, EndLine: 2},
		"int x = 1;", "int x = 2;", "modern value")
	require.NoError(t, err)
	del, err := change.NewDelete(change.Location{FilePath: path, StartLine: 9, EndLine: 9}, "gone();", "")
	require.NoError(t, err)

	before := []byte("class App {\n    int x = 1;\n}\n")
	after := []byte("class App {\n    int x = 2;\n}\n")

	status := apply.StatusPending
	if written {
		status = apply.StatusApplied
	}

	fileResult := &apply.FileResult{
		Path: path,
		Outcomes: []apply.Outcome{
			{Change: del, Status: apply.StatusFailed, Message: "content not found"},
			{Change: upd, Status: status, Stage: apply.StageLineNumber, Start: 2, End: 2, Message: "updated line 2"},
		},
		Failed:   1,
		Modified: true,
		Written:  written,
		Diff:     diff.Compute(path, before, after),
		Content:  after,
	}
	stats := runner.ApplyStats{FilesTotal: 2, FilesErrored: 1, ChangesTotal: 3, ChangesFailed: 2}
	if written {
		fileResult.Applied = 1
		stats.ChangesApplied = 1
		stats.FilesModified = 1
	} else {
		fileResult.Pending = 1
		stats.ChangesPending = 1
	}

	return &runner.ApplyResult{
		Files: []runner.FileOutcome{
			{Path: path, Result: fileResult},
			{Path: filepath.Join(workDir, "Missing.java"), Error: apply.ErrFileNotFound},
		},
		Stats: stats,
	}
}

func sampleExtractResult() *runner.ExtractResult {
	return &runner.ExtractResult{
		Files: []runner.FileBlocks{
			{
				File:     discovery.File{Path: "/repo/src/App.java", Rel: "src/App.java", Category: discovery.CategorySource},
				Language: langdetect.Java,
				Blocks: []extract.Block{{
					Path: "src/App.java", StartLine: 3, EndLine: 4,
					Content: "void run() {\n}", Keywords: []string{`new\s+Thread\(`},
				}},
				Warnings: []extract.Warning{{
					Block: extract.Block{Path: "src/App.java", StartLine: 3, EndLine: 4}, Limit: 1,
				}},
			},
			{
				File: discovery.File{Path: "/repo/src/Plain.java", Rel: "src/Plain.java", Category: discovery.CategorySource},
			},
			{
				File:   discovery.File{Path: "/repo/pom.xml", Rel: "pom.xml", Category: discovery.CategoryBuild},
				Blocks: []extract.Block{{Path: "pom.xml", StartLine: 1, EndLine: 1, Content: "<project/>"}},
			},
		},
		Stats: runner.ExtractStats{FilesDiscovered: 3, FilesWithBlocks: 2, Blocks: 2, LargeBlocks: 1},
	}
}

func TestNew(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		format  config.OutputFormat
		wantErr bool
	}{
		{name: "text reporter", format: config.FormatText},
		{name: "json reporter", format: config.FormatJSON},
		{name: "diff reporter", format: config.FormatDiff},
		{name: "table reporter", format: config.FormatTable},
		{name: "empty defaults to text", format: ""},
		{name: "unknown format", format: "sarif", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rep, err := reporter.New(reporter.Options{Writer: &bytes.Buffer{}, Format: tt.format})
			if tt.wantErr {
				require.ErrorIs(t, err, config.ErrUnknownFormat)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, rep)
		})
	}
}

func TestTextReportApply(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, newReporter(t, config.FormatText, &buf).ReportApply(context.Background(), sampleApplyResult(t, true)))

	out := buf.String()
	assert.Contains(t, out, "src/App.java (1 applied)\n")
	assert.Contains(t, out, "  line 2  applied  update  updated line 2  (line-number)\n")
	assert.Contains(t, out, "    Reason: modern value\n")
	assert.Contains(t, out, "  line 9  failed  delete  content not found\n")
	assert.Contains(t, out, "Missing.java: error: file not found")
	assert.Contains(t, out, "3 changes: 1 applied, 2 failed in 2 files, 1 file modified, 1 file not processed\n")
	assert.NotContains(t, out, "diff --git", "written files do not repeat the diff")
}

func TestTextReportApplyDryRunShowsDiff(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, newReporter(t, config.FormatText, &buf).ReportApply(context.Background(), sampleApplyResult(t, false)))

	out := buf.String()
	assert.Contains(t, out, "src/App.java (1 pending)\n")
	assert.Contains(t, out, "diff --git a/src/App.java b/src/App.java\n")
	assert.Contains(t, out, "-    int x = 1;\n+    int x = 2;\n")
}

func TestTextReportApplyQuit(t *testing.T) {
	t.Parallel()

	result := sampleApplyResult(t, true)
	result.Quit = true
	result.Errors = []error{errors.New("change has no file path: :1")}

	var buf bytes.Buffer
	require.NoError(t, newReporter(t, config.FormatText, &buf).ReportApply(context.Background(), result))

	assert.Contains(t, buf.String(), "error: change has no file path")
	assert.Contains(t, buf.String(), "Stopped at user request")
}

func TestTextReportExtract(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, newReporter(t, config.FormatText, &buf).ReportExtract(context.Background(), sampleExtractResult()))

	out := buf.String()
	assert.Contains(t, out, "src/App.java (source, java, 1 block)\n")
	assert.Contains(t, out, "  lines 3-4  (2 lines)  new\\s+Thread\\(\n")
	assert.Contains(t, out, "    3  void run() {\n")
	assert.Contains(t, out, "  warning  large block at lines 3-4 (2 lines, limit 1)\n")
	assert.Contains(t, out, "pom.xml (build, 1 block)\n")
	assert.NotContains(t, out, "Plain.java")
	assert.Contains(t, out, "2 blocks in 2 files (3 files scanned), 1 large block\n")
}

func TestDiffReportApply(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, newReporter(t, config.FormatDiff, &buf).ReportApply(context.Background(), sampleApplyResult(t, true)))

	want := "diff --git a/src/App.java b/src/App.java\n" +
		"--- a/src/App.java\n" +
		"+++ b/src/App.java\n" +
		"@@ -1,3 +1,3 @@\n" +
		" class App {\n" +
		"-    int x = 1;\n" +
		"+    int x = 2;\n" +
		" }\n" +
		"\n"
	out := buf.String()
	assert.Contains(t, out, want)
	assert.Contains(t, out, "Missing.java: error: file not found")
	assert.Contains(t, out, "1 file changed, 1 insertion(+), 1 deletion(-)\n")
}

func TestJSONReportApply(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, newReporter(t, config.FormatJSON, &buf).ReportApply(context.Background(), sampleApplyResult(t, true)))

	var output reporter.JSONApplyOutput
	require.NoError(t, json.Unmarshal(buf.Bytes(), &output))

	assert.Equal(t, "1.0.0", output.Version)
	require.Len(t, output.Files, 2)

	file := output.Files[0]
	assert.Equal(t, "src/App.java", file.Path)
	assert.True(t, file.Written)
	assert.Contains(t, file.Diff, "+    int x = 2;")
	require.Len(t, file.Changes, 2)
	assert.Equal(t, reporter.JSONChange{
		Type: "delete", StartLine: 9, EndLine: 9, Status: "failed", Message: "content not found",
	}, file.Changes[0])
	assert.Equal(t, reporter.JSONChange{
		Type: "update", Reason: "modern value", StartLine: 2, EndLine: 2,
		Status: "applied", Stage: "line-number", FoundLine: 2, Message: "updated line 2",
	}, file.Changes[1])

	assert.Equal(t, "Missing.java", output.Files[1].Path)
	assert.Contains(t, output.Files[1].Error, "file not found")
	assert.Empty(t, output.Files[1].Changes)

	assert.Equal(t, reporter.JSONApplySummary{
		Files: 2, FilesModified: 1, FilesErrored: 1, Changes: 3, Applied: 1, Failed: 2,
	}, output.Summary)
}

func TestJSONReportExtract(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, newReporter(t, config.FormatJSON, &buf).ReportExtract(context.Background(), sampleExtractResult()))

	var output reporter.JSONExtractOutput
	require.NoError(t, json.Unmarshal(buf.Bytes(), &output))

	require.Len(t, output.Files, 2)
	app := output.Files[0]
	assert.Equal(t, "src/App.java", app.Path)
	assert.Equal(t, "source", app.Category)
	assert.Equal(t, "java", app.Language)
	require.Len(t, app.Blocks, 1)
	assert.True(t, app.Blocks[0].Large)
	assert.Equal(t, "void run() {\n}", app.Blocks[0].Content)

	assert.Equal(t, "pom.xml", output.Files[1].Path)
	assert.Empty(t, output.Files[1].Language)
	assert.Equal(t, 2, output.Summary.Blocks)
	assert.Equal(t, 3, output.Summary.FilesScanned)
}

func TestTableReportApply(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, newReporter(t, config.FormatTable, &buf).ReportApply(context.Background(), sampleApplyResult(t, true)))

	out := buf.String()
	for _, want := range []string{"FILE", "STATUS", "STAGE", "src/App.java", "line-number", "content not found", "Missing.java"} {
		assert.Contains(t, out, want)
	}
	assert.Contains(t, out, "3 changes: 1 applied, 2 failed")
}

func TestTableReportExtract(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, newReporter(t, config.FormatTable, &buf).ReportExtract(context.Background(), sampleExtractResult()))

	out := buf.String()
	for _, want := range []string{"CATEGORY", "KEYWORDS", "src/App.java", "3-4", "2 (large)", "pom.xml"} {
		assert.Contains(t, out, want)
	}
	assert.NotContains(t, out, "Plain.java")
}

func TestNilResults(t *testing.T) {
	t.Parallel()

	for _, format := range []config.OutputFormat{config.FormatText, config.FormatDiff, config.FormatTable} {
		var buf bytes.Buffer
		rep := newReporter(t, format, &buf)
		require.NoError(t, rep.ReportApply(context.Background(), nil))
		require.NoError(t, rep.ReportExtract(context.Background(), nil))
		assert.Empty(t, buf.String(), format)
	}
}
