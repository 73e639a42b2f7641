package configloader

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/jdkup/pkg/config"
)

func isolated(dir string) LoadOptions {
	return LoadOptions{
		WorkingDir:         dir,
		IgnoreSystemConfig: true,
		IgnoreUserConfig:   true,
		IgnoreEnv:          true,
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestLoad_Defaults(t *testing.T) {
	t.Parallel()

	result, err := Load(context.Background(), isolated(t.TempDir()))
	require.NoError(t, err)
	require.NotNil(t, result.Config)

	assert.Equal(t, config.DefaultTargetJDK, result.Config.TargetJDK)
	assert.Equal(t, config.DefaultMaxBlockLines, result.Config.MaxBlockLines)
	assert.Empty(t, result.LoadedFrom)
	assert.Empty(t, result.Warnings)
}

func TestLoad_ProjectConfig(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, ".jdkup.yml"), `
target_jdk: "17"
skip:
  - legacy/**
matching:
  fuzzy_ratio: 0.8
backups:
  enabled: false
`)

	result, err := Load(context.Background(), isolated(dir))
	require.NoError(t, err)

	cfg := result.Config
	assert.Equal(t, "17", cfg.TargetJDK)
	assert.Equal(t, []string{"legacy/**"}, cfg.Skip)
	assert.InDelta(t, 0.8, cfg.Matching.FuzzyRatio, 1e-9)
	assert.Equal(t, config.DefaultMinFuzzyScore, cfg.Matching.MinFuzzyScore)
	assert.False(t, cfg.BackupsEnabled())
	assert.Equal(t, config.DefaultJavaKeywords, cfg.Keywords.Java)
	assert.Len(t, result.LoadedFrom, 1)
}

func TestLoad_ProjectConfigUpward(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(root, ".git"), 0o755))
	writeFile(t, filepath.Join(root, ".jdkup.yaml"), "target_jdk: \"25\"\n")
	nested := filepath.Join(root, "service", "src")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	result, err := Load(context.Background(), isolated(nested))
	require.NoError(t, err)
	assert.Equal(t, "25", result.Config.TargetJDK)
}

func TestFindProjectConfig(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		marker string
		found  bool
	}{
		{name: "gradle settings ends the search", marker: "settings.gradle.kts"},
		{name: "maven wrapper ends the search", marker: ".mvn/wrapper"},
		{name: "plain directory is crossed", marker: "", found: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			root := t.TempDir()
			require.NoError(t, os.Mkdir(filepath.Join(root, ".git"), 0o755))
			writeFile(t, filepath.Join(root, ".jdkup.yml"), "target_jdk: \"17\"\n")

			module := filepath.Join(root, "module")
			require.NoError(t, os.MkdirAll(module, 0o755))
			if tt.marker != "" {
				writeFile(t, filepath.Join(module, tt.marker), "")
			}

			got, err := FindProjectConfig(context.Background(), module)
			require.NoError(t, err)
			if tt.found {
				assert.Equal(t, filepath.Join(root, ".jdkup.yml"), got)
			} else {
				assert.Empty(t, got)
			}
		})
	}
}

func TestFindProjectConfig_Cancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := FindProjectConfig(ctx, t.TempDir())
	require.ErrorIs(t, err, context.Canceled)
}

func TestLoad_ExplicitOverridesProject(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, ".jdkup.yml"), "target_jdk: \"17\"\nmax_block_lines: 30\n")
	explicit := filepath.Join(dir, "custom.yml")
	writeFile(t, explicit, "target_jdk: \"21\"\n")

	opts := isolated(dir)
	opts.ExplicitPath = explicit

	result, err := Load(context.Background(), opts)
	require.NoError(t, err)
	assert.Equal(t, "21", result.Config.TargetJDK)
	assert.Equal(t, 30, result.Config.MaxBlockLines)
	assert.Equal(t, []string{filepath.Join(dir, ".jdkup.yml"), explicit}, result.LoadedFrom)
}

func TestLoad_CLIOverridesEverything(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, ".jdkup.yml"), "backups:\n  mode: sidecar\n")

	opts := isolated(dir)
	opts.CLIConfig = &config.Config{DryRun: true, NoBackups: true, Format: config.FormatJSON}

	result, err := Load(context.Background(), opts)
	require.NoError(t, err)
	assert.True(t, result.Config.DryRun)
	assert.False(t, result.Config.BackupsEnabled())
	assert.Equal(t, config.FormatJSON, result.Config.Format)
}

func TestLoad_InvalidConfig(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		wantMsg string
	}{
		{"unknown key", "flavor: gfm\n", "field flavor not found"},
		{"bad target", "target_jdk: latest\n", "invalid JDK release"},
		{"bad ratio", "matching:\n  fuzzy_ratio: 1.5\n", "fuzzy_ratio"},
		{"bad regex", "keywords:\n  java:\n    - \"(unclosed\"\n", "invalid regular expression"},
		{"bad glob", "skip:\n  - \"[\"\n", "invalid glob pattern"},
		{"bad backup mode", "backups:\n  mode: xdg\n", "invalid backup mode"},
		{"malformed yaml", "target_jdk: [\n", "parse yaml"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			dir := t.TempDir()
			path := filepath.Join(dir, ".jdkup.yml")
			writeFile(t, path, tt.content)

			_, err := Load(context.Background(), isolated(dir))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantMsg)
			assert.Contains(t, err.Error(), path)
		})
	}
}

func TestLoad_Warnings(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, ".jdkup.yml"), "target_jdk: \"8\"\nkeywords:\n  kotlin: []\n")

	result, err := Load(context.Background(), isolated(dir))
	require.NoError(t, err)
	assert.Len(t, result.Warnings, 2)
	assert.Empty(t, result.Config.Keywords.Kotlin)
}

func TestLoad_MissingExplicitConfig(t *testing.T) {
	t.Parallel()

	opts := isolated(t.TempDir())
	opts.ExplicitPath = filepath.Join(opts.WorkingDir, "missing.yml")

	_, err := Load(context.Background(), opts)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load explicit config")
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("JDKUP_TARGET_JDK", "17")
	t.Setenv("JDKUP_SKIP", "a/**, b/** ,")
	t.Setenv("JDKUP_FUZZY_RATIO", "0.9")
	t.Setenv("JDKUP_BACKUPS_ENABLED", "false")
	t.Setenv("JDKUP_AUTO_APPROVE", "1")

	cfg := config.NewConfig()
	require.NoError(t, LoadFromEnv(cfg))

	assert.Equal(t, "17", cfg.TargetJDK)
	assert.Equal(t, []string{"a/**", "b/**"}, cfg.Skip)
	assert.InDelta(t, 0.9, cfg.Matching.FuzzyRatio, 1e-9)
	assert.False(t, cfg.BackupsEnabled())
	assert.True(t, cfg.AutoApprove)
}

func TestLoadFromEnvInvalid(t *testing.T) {
	t.Setenv("JDKUP_MAX_BLOCK_LINES", "many")

	err := LoadFromEnv(config.NewConfig())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JDKUP_MAX_BLOCK_LINES")
}

func TestListEnvVars(t *testing.T) {
	t.Parallel()

	vars := ListEnvVars()
	require.Len(t, vars, len(envOverrides))
	for i := 1; i < len(vars); i++ {
		assert.Less(t, vars[i-1].Name, vars[i].Name)
	}
	assert.Contains(t, vars, EnvVar{Name: "JDKUP_TARGET_JDK", Description: "JDK release to upgrade to"})
}

func TestMergeAll(t *testing.T) {
	t.Parallel()

	assert.Nil(t, MergeAll())

	enabled := false
	merged := MergeAll(
		config.NewConfig(),
		&config.Config{TargetJDK: "17"},
		&config.Config{Backups: config.BackupsConfig{Enabled: &enabled}},
		&config.Config{Matching: config.MatchingConfig{RelocateOutOfBounds: true}},
	)

	assert.Equal(t, "17", merged.TargetJDK)
	assert.False(t, merged.BackupsEnabled())
	assert.True(t, merged.Matching.RelocateOutOfBounds)
	assert.Equal(t, config.DefaultMaxBlockLines, merged.MaxBlockLines)
}
