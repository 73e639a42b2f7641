package cli_test

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/jdkup/internal/cli"
	"github.com/yaklabco/jdkup/pkg/fsutil"
	"github.com/yaklabco/jdkup/pkg/reporter"
)

const appJava = `package demo;

import java.util.Arrays;
import java.util.List;

class App {
    List<String> names() {
        return Arrays.asList("a", "b");
    }
}
`

const updatedAppJava = `package demo;

import java.util.Arrays;
import java.util.List;

class App {
    List<String> names() {
        return List.of("a", "b");
    }
}
`

const buildGradle = `plugins {
    id 'java'
}
sourceCompatibility = '1.8'
`

const changesJSON = `{
  "summary": "Use immutable list factories",
  "changes": [
    {
      "change_type": "update",
      "reason": "List.of replaces Arrays.asList",
      "location": {"file_path": "App.java", "start_line": 8, "end_line": 8},
      "before": "        return Arrays.asList(\"a\", \"b\");",
      "after": "        return List.of(\"a\", \"b\");"
    }
  ]
}
`

type cliRun struct {
	stdout string
	stderr string
	err    error
}

func execute(t *testing.T, stdin string, args ...string) cliRun {
	t.Helper()

	cmd := cli.NewRootCommand(testInfo())

	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append([]string{"--color", "never"}, args...))

	err := cmd.Execute()
	return cliRun{stdout: stdout.String(), stderr: stderr.String(), err: err}
}

func setupRepo(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "App.java"), []byte(appJava), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "build.gradle"), []byte(buildGradle), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "changes.json"), []byte(changesJSON), 0o644))
	return dir
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestIntegration_ApplyAutoApprove(t *testing.T) {
	t.Parallel()

	dir := setupRepo(t)
	run := execute(t, "", "apply", "-C", dir, "--auto-approve", "--format", "json", "changes.json")
	require.NoError(t, run.err)

	assert.Equal(t, updatedAppJava, readFile(t, filepath.Join(dir, "App.java")))
	assert.Equal(t, appJava, readFile(t, fsutil.BackupPath(filepath.Join(dir, "App.java"))))

	var out reporter.JSONApplyOutput
	require.NoError(t, json.Unmarshal([]byte(run.stdout), &out))
	require.Len(t, out.Files, 1)
	assert.Equal(t, "App.java", out.Files[0].Path)
	assert.True(t, out.Files[0].Written)
	assert.Equal(t, 1, out.Summary.Applied)
	assert.Equal(t, 1, out.Summary.BackupsCreated)
}

func TestIntegration_ApplyNoBackups(t *testing.T) {
	t.Parallel()

	dir := setupRepo(t)
	run := execute(t, "", "apply", "-C", dir, "-y", "--no-backups", "changes.json")
	require.NoError(t, run.err)

	assert.Equal(t, updatedAppJava, readFile(t, filepath.Join(dir, "App.java")))
	assert.NoFileExists(t, fsutil.BackupPath(filepath.Join(dir, "App.java")))
}

func TestIntegration_ApplyDryRun(t *testing.T) {
	t.Parallel()

	dir := setupRepo(t)
	run := execute(t, "", "apply", "-C", dir, "--dry-run", "changes.json")
	require.NoError(t, run.err)

	assert.Contains(t, run.stdout, "App.java")
	assert.Contains(t, run.stdout, `List.of("a", "b")`)
	assert.Equal(t, appJava, readFile(t, filepath.Join(dir, "App.java")))
	assert.NoFileExists(t, fsutil.BackupPath(filepath.Join(dir, "App.java")))
}

func TestIntegration_ApplyFromStdin(t *testing.T) {
	t.Parallel()

	dir := setupRepo(t)
	run := execute(t, changesJSON, "apply", "-C", dir, "-y", "-")
	require.NoError(t, run.err)

	assert.Equal(t, updatedAppJava, readFile(t, filepath.Join(dir, "App.java")))
}

func TestIntegration_ApplyErrors(t *testing.T) {
	t.Parallel()

	const invalidOnly = `{"changes": [{"location": {"file_path": "App.java", "start_line": 1}}]}`
	const missingTarget = `{"changes": [{"change_type": "insert", "after": "// x",
		"location": {"file_path": "Missing.java", "start_line": 1, "end_line": 1}}]}`

	tests := []struct {
		name     string
		file     string
		content  string
		args     []string
		wantCode int
	}{
		{
			name:     "interactive without terminal",
			args:     []string{"changes.json"},
			wantCode: cli.ExitInvalidUsage,
		},
		{
			name:     "no change file",
			args:     []string{"-y"},
			wantCode: cli.ExitInvalidUsage,
		},
		{
			name:     "unknown format",
			args:     []string{"-y", "--format", "sarif", "changes.json"},
			wantCode: cli.ExitInvalidUsage,
		},
		{
			name:     "unknown flag",
			args:     []string{"--fix", "changes.json"},
			wantCode: cli.ExitInvalidUsage,
		},
		{
			name:     "missing change file",
			args:     []string{"-y", "nope.json"},
			wantCode: cli.ExitIOError,
		},
		{
			name:     "only invalid changes",
			file:     "invalid.json",
			content:  invalidOnly,
			args:     []string{"-y", "invalid.json"},
			wantCode: cli.ExitConfigError,
		},
		{
			name:     "malformed change file",
			file:     "broken.json",
			content:  `{"changes": [`,
			args:     []string{"-y", "broken.json"},
			wantCode: cli.ExitConfigError,
		},
		{
			name:     "target file missing",
			file:     "missing.json",
			content:  missingTarget,
			args:     []string{"-y", "missing.json"},
			wantCode: cli.ExitChangesFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			dir := setupRepo(t)
			if tt.file != "" {
				require.NoError(t, os.WriteFile(filepath.Join(dir, tt.file), []byte(tt.content), 0o644))
			}

			run := execute(t, "", append([]string{"apply", "-C", dir}, tt.args...)...)
			require.Error(t, run.err)
			assert.Equal(t, tt.wantCode, cli.ExitCode(run.err), "error: %v", run.err)
			assert.Equal(t, appJava, readFile(t, filepath.Join(dir, "App.java")))
		})
	}
}

func TestIntegration_ExtractJSON(t *testing.T) {
	t.Parallel()

	dir := setupRepo(t)
	run := execute(t, "", "extract", "-C", dir, "--format", "json")
	require.NoError(t, run.err)

	var out reporter.JSONExtractOutput
	require.NoError(t, json.Unmarshal([]byte(run.stdout), &out))

	byPath := make(map[string]reporter.JSONExtractFile)
	for _, file := range out.Files {
		byPath[file.Path] = file
	}

	require.Contains(t, byPath, "App.java")
	assert.Equal(t, "java", byPath["App.java"].Language)
	require.NotEmpty(t, byPath["App.java"].Blocks)
	assert.Contains(t, byPath["App.java"].Blocks[0].Content, "Arrays.asList")

	require.Contains(t, byPath, "build.gradle")
	assert.Equal(t, "build", byPath["build.gradle"].Category)
	assert.GreaterOrEqual(t, out.Summary.Blocks, 2)
}

func TestIntegration_ExtractText(t *testing.T) {
	t.Parallel()

	dir := setupRepo(t)
	run := execute(t, "", "extract", "-C", dir, "--no-content", "App.java")
	require.NoError(t, run.err)

	assert.Contains(t, run.stdout, "App.java")
	assert.NotContains(t, run.stdout, "return Arrays")
	assert.NotContains(t, run.stdout, "build.gradle")
}

func TestIntegration_ExtractMissingPath(t *testing.T) {
	t.Parallel()

	run := execute(t, "", "extract", "-C", t.TempDir(), "nope")
	require.Error(t, run.err)
	assert.Equal(t, cli.ExitIOError, cli.ExitCode(run.err))
}

func TestIntegration_Init(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, ".jdkup.yml")

	run := execute(t, "", "init", "-C", dir, "--target-jdk", "17")
	require.NoError(t, run.err)

	content := readFile(t, path)
	assert.True(t, strings.HasPrefix(content, "# jdkup configuration"))
	assert.Contains(t, content, "target_jdk: \"17\"")

	run = execute(t, "", "init", "-C", dir)
	require.Error(t, run.err)
	assert.Equal(t, cli.ExitInvalidUsage, cli.ExitCode(run.err))

	run = execute(t, "", "init", "-C", dir, "--force")
	require.NoError(t, run.err)
	assert.Contains(t, readFile(t, path), "target_jdk: \"21\"")
}

func TestIntegration_InitRejectsBadRelease(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	run := execute(t, "", "init", dir, "--target-jdk", "latest")
	require.Error(t, run.err)
	assert.Equal(t, cli.ExitConfigError, cli.ExitCode(run.err))
	assert.NoFileExists(t, filepath.Join(dir, ".jdkup.yml"))
}

func TestIntegration_Restore(t *testing.T) {
	t.Parallel()

	dir := setupRepo(t)
	require.NoError(t, execute(t, "", "apply", "-C", dir, "-y", "changes.json").err)
	require.Equal(t, updatedAppJava, readFile(t, filepath.Join(dir, "App.java")))

	run := execute(t, "", "restore", "-C", dir, "App.java")
	require.NoError(t, run.err)

	assert.Equal(t, appJava, readFile(t, filepath.Join(dir, "App.java")))
	assert.NoFileExists(t, fsutil.BackupPath(filepath.Join(dir, "App.java")))

	run = execute(t, "", "restore", "-C", dir, "App.java")
	require.Error(t, run.err)
	assert.ErrorIs(t, run.err, fsutil.ErrNoBackup)
	assert.Equal(t, cli.ExitIOError, cli.ExitCode(run.err))
}

func TestIntegration_RestoreByBackupName(t *testing.T) {
	t.Parallel()

	dir := setupRepo(t)
	require.NoError(t, execute(t, "", "apply", "-C", dir, "-y", "changes.json").err)

	run := execute(t, "", "restore", "-C", dir, "App.java"+fsutil.BackupSuffix)
	require.NoError(t, run.err)
	assert.Equal(t, appJava, readFile(t, filepath.Join(dir, "App.java")))
}

func TestIntegration_Version(t *testing.T) {
	t.Parallel()

	run := execute(t, "", "version")
	require.NoError(t, run.err)
	assert.Contains(t, run.stdout, "jdkup")
	assert.Contains(t, run.stdout, "version=test")
}

func TestIntegration_Help(t *testing.T) {
	t.Parallel()

	run := execute(t, "", "apply", "--help")
	require.NoError(t, run.err)
	assert.Contains(t, run.stdout, "Usage:")
	assert.Contains(t, run.stdout, "--auto-approve")
	assert.Contains(t, run.stdout, "Global Flags:")

	run = execute(t, "", "--help")
	require.NoError(t, run.err)
	assert.Contains(t, run.stdout, "Environment:")
	assert.Contains(t, run.stdout, "JDKUP_TARGET_JDK")
	assert.Contains(t, run.stdout, "JDKUP_LOG_LEVEL")
}
