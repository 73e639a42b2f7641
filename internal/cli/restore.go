package cli

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/jdkup/internal/logging"
	"github.com/yaklabco/jdkup/pkg/fsutil"
)

func newRestoreCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "restore <file>...",
		Short: "Undo applied changes using the backups",
		Long: `Put back the ` + fsutil.BackupSuffix + ` copies that apply keeps of every file it
modifies. Each backup is removed once its file has been restored. Files
may be named directly or by their backup path.

Examples:
  jdkup restore src/main/java/App.java
  jdkup restore $(find . -name '*` + fsutil.BackupSuffix + `')`,
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) == 0 {
				return fmt.Errorf("%w: at least one file is required", ErrUsage)
			}
			return nil
		},
		RunE: runRestore,
	}

	return cmd
}

// runRestore restores every named file and keeps going past files without
// a backup. The first failure decides the returned error.
func runRestore(cmd *cobra.Command, args []string) error {
	ctx := commandContext(cmd)
	logger := logging.FromContext(ctx)

	workDir, err := workingDir(cmd)
	if err != nil {
		return err
	}

	var errs []error
	for _, arg := range args {
		path := strings.TrimSuffix(arg, fsutil.BackupSuffix)
		if !filepath.IsAbs(path) {
			path = filepath.Join(workDir, path)
		}

		if err := fsutil.Restore(ctx, path); err != nil {
			logger.Error("restore failed", logging.FieldPath, arg, logging.FieldError, err)
			errs = append(errs, err)
			continue
		}
		logger.Info("restored", logging.FieldPath, arg)
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %d of %d files not restored: %w", ErrIO, len(errs), len(args), errors.Join(errs...))
	}
	return nil
}
