package logging_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/jdkup/internal/logging"
)

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		level string
		want  log.Level
	}{
		{level: "debug", want: log.DebugLevel},
		{level: "info", want: log.InfoLevel},
		{level: "warn", want: log.WarnLevel},
		{level: "warning", want: log.WarnLevel},
		{level: "error", want: log.ErrorLevel},
		{level: " DEBUG ", want: log.DebugLevel},
		{level: "Info", want: log.InfoLevel},
		{level: "trace", want: log.InfoLevel},
		{level: "", want: log.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, logging.ParseLevel(tt.level))
		})
	}
}

func TestNew(t *testing.T) {
	t.Parallel()

	logger := logging.New("warn")
	require.NotNil(t, logger)
	assert.Equal(t, log.WarnLevel, logger.GetLevel())
}

func TestNewWithWriter(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := logging.NewWithWriter(&buf, "info")

	logger.Debug("hidden")
	logger.Info("change applied", logging.FieldPath, "src/App.java", logging.FieldStartLine, 8)

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "change applied")
	assert.Contains(t, out, "path=src/App.java")
	assert.Contains(t, out, "start_line=8")
}

func TestDefault(t *testing.T) {
	t.Parallel()

	require.NotNil(t, logging.Default())
	assert.Same(t, logging.Default(), logging.Default())
}

func TestSetLevel(t *testing.T) {
	// Mutates the process-wide logger.
	original := logging.Default()
	defer logging.SetDefault(original)

	logging.SetDefault(logging.New("info"))

	logging.SetLevel("debug")
	assert.Equal(t, log.DebugLevel, logging.Default().GetLevel())

	logging.SetLevel("error")
	assert.Equal(t, log.ErrorLevel, logging.Default().GetLevel())
}

func TestSetDefault(t *testing.T) {
	// Mutates the process-wide logger.
	original := logging.Default()
	defer logging.SetDefault(original)

	replacement := logging.New("error")
	logging.SetDefault(replacement)
	assert.Same(t, replacement, logging.Default())
}

func TestFromContext(t *testing.T) {
	t.Parallel()

	logger := logging.New("debug")
	ctx := logging.WithLogger(context.Background(), logger)
	assert.Same(t, logger, logging.FromContext(ctx))

	//nolint:staticcheck // nil context falls back to Background.
	assert.Same(t, logger, logging.FromContext(logging.WithLogger(nil, logger)))
}

func TestFromContextFallsBackToDefault(t *testing.T) {
	// Compares against the process-wide logger.
	assert.Same(t, logging.Default(), logging.FromContext(context.Background()))
}
