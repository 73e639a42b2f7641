package config_test

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/jdkup/pkg/config"
	"github.com/yaklabco/jdkup/pkg/langdetect"
)

func TestNewConfigDefaults(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	assert.Equal(t, "21", cfg.TargetJDK)
	assert.Equal(t, 20, cfg.MaxBlockLines)
	assert.InDelta(t, 0.7, cfg.Matching.FuzzyRatio, 1e-9)
	assert.Equal(t, 2, cfg.Matching.MinFuzzyScore)
	assert.True(t, cfg.BackupsEnabled())
	assert.Equal(t, config.FormatText, cfg.Format)
	assert.Contains(t, cfg.Include.Source, "**/*.java")
	assert.Contains(t, cfg.Include.Build, "**/pom.xml")
	assert.Contains(t, cfg.Skip, "**/generated/**")
}

func TestDefaultKeywordsCompile(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	for _, lang := range []langdetect.Language{langdetect.Java, langdetect.Groovy, langdetect.Kotlin} {
		patterns := cfg.Keywords.For(lang)
		require.NotEmpty(t, patterns, lang)
		for _, pattern := range patterns {
			_, err := regexp.Compile(pattern)
			assert.NoError(t, err, pattern)
		}
	}
	assert.Nil(t, cfg.Keywords.For(langdetect.Unknown))
}

func TestDefaultKeywordsMatchTypicalCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		lang langdetect.Language
		line string
	}{
		{langdetect.Java, `List<String> names = Arrays.asList("a", "b");`},
		{langdetect.Java, `Thread worker = new Thread(task);`},
		{langdetect.Java, `String msg = "line one\n" + "line two";`},
		{langdetect.Groovy, `    compile 'org.slf4j:slf4j-api:1.7.30'`},
		{langdetect.Groovy, `sourceCompatibility = 1.8`},
		{langdetect.Kotlin, `    jvmTarget = "1.8"`},
		{langdetect.Kotlin, `suspend fun load() {`},
	}

	cfg := config.NewConfig()
	for _, tt := range tests {
		matched := false
		for _, pattern := range cfg.Keywords.For(tt.lang) {
			if regexp.MustCompile(pattern).MatchString(tt.line) {
				matched = true
				break
			}
		}
		assert.True(t, matched, "%s: %s", tt.lang, tt.line)
	}
}

func TestBackupsEnabled(t *testing.T) {
	t.Parallel()

	disabled := false
	tests := []struct {
		name string
		cfg  config.Config
		want bool
	}{
		{"unset means enabled", config.Config{}, true},
		{"explicitly disabled", config.Config{Backups: config.BackupsConfig{Enabled: &disabled}}, false},
		{"mode none", config.Config{Backups: config.BackupsConfig{Mode: "none"}}, false},
		{"cli override", config.Config{NoBackups: true}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.cfg.BackupsEnabled())
		})
	}
}

func TestParseFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input   string
		want    config.OutputFormat
		wantErr bool
	}{
		{"", config.FormatText, false},
		{"text", config.FormatText, false},
		{"JSON", config.FormatJSON, false},
		{" diff ", config.FormatDiff, false},
		{"table", config.FormatTable, false},
		{"sarif", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()

			got, err := config.ParseFormat(tt.input)
			if tt.wantErr {
				require.ErrorIs(t, err, config.ErrUnknownFormat)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestYAMLRoundTrip(t *testing.T) {
	t.Parallel()

	original := config.NewConfig()
	original.TargetJDK = "17"
	original.Skip = []string{"legacy/**"}

	data, err := original.ToYAMLWithHeader("# jdkup configuration")
	require.NoError(t, err)
	assert.Contains(t, string(data), "# jdkup configuration\n\n")
	assert.Contains(t, string(data), "target_jdk: \"17\"")

	parsed, err := config.FromYAML(data)
	require.NoError(t, err)
	assert.Equal(t, "17", parsed.TargetJDK)
	assert.Equal(t, []string{"legacy/**"}, parsed.Skip)
	assert.Equal(t, original.Keywords, parsed.Keywords)
	require.NotNil(t, parsed.Backups.Enabled)
	assert.True(t, *parsed.Backups.Enabled)
}

func TestFromYAMLRejectsUnknownKeys(t *testing.T) {
	t.Parallel()

	_, err := config.FromYAML([]byte("target_jdk: \"21\"\nflavour: gfm\n"))
	require.Error(t, err)

	cfg, err := config.FromYAML([]byte("  \n"))
	require.NoError(t, err)
	assert.Empty(t, cfg.TargetJDK)
}

func TestClone(t *testing.T) {
	t.Parallel()

	var nilCfg *config.Config
	assert.Nil(t, nilCfg.Clone())

	original := config.NewConfig()
	original.DryRun = true
	cloned := original.Clone()

	cloned.Skip[0] = "changed"
	cloned.Keywords.Java[0] = "changed"
	*cloned.Backups.Enabled = false

	assert.NotEqual(t, "changed", original.Skip[0])
	assert.NotEqual(t, "changed", original.Keywords.Java[0])
	assert.True(t, *original.Backups.Enabled)
	assert.True(t, cloned.DryRun)
}
