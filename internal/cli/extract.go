package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yaklabco/jdkup/internal/logging"
	"github.com/yaklabco/jdkup/pkg/config"
	"github.com/yaklabco/jdkup/pkg/runner"
)

type extractFlags struct {
	format         string
	jobs           int
	noContent      bool
	followSymlinks bool
}

func newExtractCommand() *cobra.Command {
	var cfg config.Config
	flags := &extractFlags{}

	cmd := &cobra.Command{
		Use:   "extract [paths...]",
		Short: "List code blocks that may need changes for a JDK upgrade",
		Long:  extractLongDescription,
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExtract(cmd, args, &cfg, flags)
		},
	}

	cmd.Flags().StringVar(&flags.format, "format", "", "output format: text, json, table")
	cmd.Flags().IntVar(&cfg.MaxBlockLines, "max-block-lines", 0,
		"warn about blocks longer than this many lines (default 20)")
	cmd.Flags().StringVar(&cfg.TargetJDK, "target-jdk", "", "JDK release the upgrade aims for")
	cmd.Flags().IntVar(&flags.jobs, "jobs", 1, "files extracted in parallel; 1 reads them one at a time, 0 uses every CPU")
	cmd.Flags().BoolVar(&flags.noContent, "no-content", false, "list block locations without their text")
	cmd.Flags().BoolVar(&flags.followSymlinks, "follow-symlinks", false, "descend into symlinked directories")

	return cmd
}

const extractLongDescription = `List code blocks that may need changes for a JDK upgrade.

Java, Kotlin, and Groovy sources are scanned for constructs known to
change between JDK releases; each hit is widened to the enclosing block.
Build files and CI definitions are reported whole. By default the current
directory is scanned; generated and build output directories are skipped.

Examples:
  jdkup extract                        # Scan the current directory
  jdkup extract src/main               # Scan one tree
  jdkup extract --format json > blocks.json
  jdkup extract --max-block-lines 40   # Allow longer blocks`

func runExtract(cmd *cobra.Command, args []string, cliCfg *config.Config, flags *extractFlags) error {
	ctx := commandContext(cmd)
	logger := logging.FromContext(ctx)

	if cmd.Flags().Changed("format") {
		format, err := parseFormatFlag(flags.format)
		if err != nil {
			return err
		}
		cliCfg.Format = format
	}
	if cliCfg.MaxBlockLines < 0 {
		return fmt.Errorf("%w: --max-block-lines must not be negative", ErrUsage)
	}

	workDir, err := workingDir(cmd)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(ctx, cmd, workDir, cliCfg)
	if err != nil {
		return err
	}

	logger.Debug("starting extract run",
		logging.FieldPaths, args,
		logging.FieldWorkingDir, workDir,
		logging.FieldTargetJDK, cfg.TargetJDK,
	)

	result, err := runner.Extract(ctx, runner.ExtractOptions{
		Paths:          args,
		WorkingDir:     workDir,
		FollowSymlinks: flags.followSymlinks,
		Jobs:           flags.jobs,
		Config:         cfg,
	})
	if err != nil {
		return fmt.Errorf("extract: %w", err)
	}

	rep, err := newReporter(cmd, cfg, workDir, !flags.noContent)
	if err != nil {
		return err
	}
	if err := rep.ReportExtract(ctx, result); err != nil {
		return fmt.Errorf("report results: %w", err)
	}

	if result.Stats.FilesErrored > 0 {
		return fmt.Errorf("%w: %d files could not be read", ErrIO, result.Stats.FilesErrored)
	}
	return nil
}
