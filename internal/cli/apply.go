package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/yaklabco/jdkup/internal/logging"
	"github.com/yaklabco/jdkup/internal/ui/pretty"
	"github.com/yaklabco/jdkup/pkg/apply"
	"github.com/yaklabco/jdkup/pkg/change"
	"github.com/yaklabco/jdkup/pkg/config"
	"github.com/yaklabco/jdkup/pkg/runner"
)

// stdinPath names standard input as a change file.
const stdinPath = "-"

type applyFlags struct {
	format   string
	relocate bool
}

func newApplyCommand() *cobra.Command {
	var cfg config.Config
	flags := &applyFlags{}

	cmd := &cobra.Command{
		Use:   "apply <changes-file>...",
		Short: "Apply proposed changes to source files",
		Long:  applyLongDescription,
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) == 0 {
				return fmt.Errorf("%w: at least one change file is required", ErrUsage)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runApply(cmd, args, &cfg, flags)
		},
	}

	cmd.Flags().BoolVar(&cfg.DryRun, "dry-run", false, "show the changes as a diff without writing files")
	cmd.Flags().BoolVarP(&cfg.AutoApprove, "auto-approve", "y", false, "apply every change without asking")
	cmd.Flags().BoolVar(&cfg.NoBackups, "no-backups", false, "do not keep .jdkup.bak copies of modified files")
	cmd.Flags().BoolVar(&flags.relocate, "relocate", false,
		"search the file for changes whose lines are past its end")
	cmd.Flags().StringVar(&flags.format, "format", "", "output format: text, json, diff, table")

	return cmd
}

const applyLongDescription = `Apply proposed changes to source files.

Change files hold one or more responses with a "changes" list, as JSON,
YAML, or Markdown with fenced json or yaml blocks. Use "-" to read from
standard input. Each change names a file, a line range, and the text it
expects to find there; when the lines have moved, the text is searched
for in the file before the change is applied.

Without --auto-approve or --dry-run every change is shown and confirmed
on the terminal.

Examples:
  jdkup apply changes.json                 # Confirm each change
  jdkup apply -y changes.json              # Apply everything
  jdkup apply --dry-run changes.yaml       # Preview as a diff
  llm-client | jdkup apply -y -            # Read from standard input`

func runApply(cmd *cobra.Command, args []string, cliCfg *config.Config, flags *applyFlags) error {
	ctx := commandContext(cmd)
	logger := logging.FromContext(ctx)

	if cmd.Flags().Changed("format") {
		format, err := parseFormatFlag(flags.format)
		if err != nil {
			return err
		}
		cliCfg.Format = format
	}
	cliCfg.Matching.RelocateOutOfBounds = flags.relocate

	workDir, err := workingDir(cmd)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(ctx, cmd, workDir, cliCfg)
	if err != nil {
		return err
	}

	changes, invalid, err := readChanges(ctx, cmd.InOrStdin(), args, workDir)
	if err != nil {
		return err
	}

	var approver apply.Approver
	if !cfg.DryRun && !cfg.AutoApprove {
		if !isTerminal(cmd.InOrStdin()) {
			return fmt.Errorf("%w: standard input is not a terminal; use --auto-approve or --dry-run", ErrUsage)
		}
		colorMode, _ := cmd.Flags().GetString("color") //nolint:errcheck // Defaults to auto.
		styles := pretty.NewStyles(pretty.IsColorEnabled(colorMode, cmd.OutOrStdout()))
		approver = NewPromptApprover(cmd.InOrStdin(), cmd.OutOrStdout(), styles)
	}

	logger.Debug("starting apply run",
		logging.FieldChangesTotal, len(changes),
		logging.FieldDryRun, cfg.DryRun,
		logging.FieldBackups, cfg.BackupsEnabled(),
	)

	result, runErr := runner.Apply(ctx, changes, runner.ApplyOptions{
		WorkingDir: workDir,
		Config:     cfg,
		Approver:   approver,
	})
	if runErr != nil && result == nil {
		return fmt.Errorf("apply: %w", runErr)
	}

	rep, err := newReporter(cmd, cfg, workDir, true)
	if err != nil {
		return err
	}
	if err := rep.ReportApply(ctx, result); err != nil {
		return fmt.Errorf("report results: %w", err)
	}

	if runErr != nil && !errors.Is(runErr, apply.ErrQuit) {
		return fmt.Errorf("apply: %w", runErr)
	}

	switch code := ExitCodeFromResult(result); {
	case code == ExitQuit:
		return apply.ErrQuit
	case code == ExitChangesFailed || invalid > 0:
		return ErrChangesFailed
	default:
		return nil
	}
}

// readChanges decodes every change file. Records that do not form a valid
// change are logged and counted; a batch with no usable change at all is a
// configuration error.
func readChanges(ctx context.Context, stdin io.Reader, args []string, workDir string) ([]change.Change, int, error) {
	logger := logging.FromContext(ctx)

	var (
		changes []change.Change
		invalid int
	)

	for _, arg := range args {
		batch, err := decodeChangeFile(stdin, arg, workDir)
		switch {
		case errors.Is(err, change.ErrNoChanges):
			logger.Warn("no changes found", logging.FieldPath, arg)
			continue
		case errors.Is(err, fs.ErrNotExist):
			return nil, 0, fmt.Errorf("%w: %w", ErrIO, err)
		case err != nil:
			return nil, 0, fmt.Errorf("%w: %w", ErrConfig, err)
		}

		for _, summary := range batch.Summaries {
			logger.Info(summary, logging.FieldPath, arg)
		}
		for _, problem := range batch.Invalid {
			logger.Error("invalid change", logging.FieldPath, arg, logging.FieldError, problem)
		}

		changes = append(changes, batch.Changes...)
		invalid += len(batch.Invalid)
	}

	if len(changes) == 0 && invalid > 0 {
		return nil, invalid, fmt.Errorf("%w: none of the %d changes are valid", ErrConfig, invalid)
	}
	return changes, invalid, nil
}

func decodeChangeFile(stdin io.Reader, arg, workDir string) (*change.Batch, error) {
	if arg == stdinPath {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("read standard input: %w", err)
		}
		return change.Decode(data)
	}

	path := arg
	if !filepath.IsAbs(path) {
		path = filepath.Join(workDir, path)
	}
	return change.DecodeFile(path)
}
