package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/yaklabco/jdkup/internal/configloader"
	"github.com/yaklabco/jdkup/internal/logging"
	"github.com/yaklabco/jdkup/pkg/config"
	"github.com/yaklabco/jdkup/pkg/reporter"
)

// commandContext returns the command context with the default logger attached.
func commandContext(cmd *cobra.Command) context.Context {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return logging.WithLogger(ctx, logging.Default())
}

// workingDir resolves the --chdir flag against the process working directory.
func workingDir(cmd *cobra.Command) (string, error) {
	dir, err := cmd.Flags().GetString("chdir")
	if err != nil {
		return "", fmt.Errorf("get chdir flag: %w", err)
	}

	if dir == "" {
		dir, err = os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
		return dir, nil
	}

	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", dir, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrIO, err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("%w: %s is not a directory", ErrUsage, dir)
	}
	return abs, nil
}

// loadConfig merges the configuration files found from workDir with the
// command-line overrides in cliCfg.
func loadConfig(ctx context.Context, cmd *cobra.Command, workDir string, cliCfg *config.Config) (*config.Config, error) {
	logger := logging.FromContext(ctx)

	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, fmt.Errorf("get config flag: %w", err)
	}

	loadResult, err := configloader.Load(ctx, configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: configPath,
		CLIConfig:    cliCfg,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfig, err)
	}

	for _, warning := range loadResult.Warnings {
		logger.Warn(warning)
	}
	if len(loadResult.LoadedFrom) > 0 {
		logger.Debug("loaded configuration", logging.FieldPaths, loadResult.LoadedFrom)
	}
	logger.Debug("configuration resolved",
		logging.FieldConfig, configPath,
		logging.FieldTargetJDK, loadResult.Config.TargetJDK,
		logging.FieldFormat, loadResult.Config.Format,
	)

	return loadResult.Config, nil
}

// newReporter builds a reporter writing to the command's output streams.
func newReporter(cmd *cobra.Command, cfg *config.Config, workDir string, showContent bool) (reporter.Reporter, error) {
	colorMode, err := cmd.Flags().GetString("color")
	if err != nil {
		colorMode = "auto"
	}

	format := cfg.Format
	if format == "" {
		format = config.FormatText
	}

	rep, err := reporter.New(reporter.Options{
		Writer:      cmd.OutOrStdout(),
		ErrorWriter: cmd.ErrOrStderr(),
		Format:      format,
		Color:       colorMode,
		ShowSummary: true,
		ShowContent: showContent,
		WorkingDir:  workDir,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUsage, err)
	}
	return rep, nil
}

// parseFormatFlag validates a --format value.
func parseFormatFlag(value string) (config.OutputFormat, error) {
	format, err := config.ParseFormat(value)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrUsage, err)
	}
	return format, nil
}
