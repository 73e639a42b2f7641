package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/yaklabco/jdkup/internal/configloader"
	"github.com/yaklabco/jdkup/internal/logging"
	"github.com/yaklabco/jdkup/pkg/config"
)

// initFlags holds the flags for the init command.
type initFlags struct {
	force     bool
	targetJDK string
}

func newInitCommand() *cobra.Command {
	flags := &initFlags{}

	cmd := &cobra.Command{
		Use:   "init [dir]",
		Short: "Create a jdkup configuration file",
		Long: `Create a .jdkup.yml configuration file with the default file patterns,
skip globs, and keyword lists, ready to be tailored to the repository.

Examples:
  jdkup init                      Create .jdkup.yml in the current directory
  jdkup init services/billing     Create it in another directory
  jdkup init --target-jdk 17      Record a different target release
  jdkup init --force              Overwrite an existing file`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(cmd, args, flags)
		},
	}

	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "overwrite an existing configuration file")
	cmd.Flags().StringVar(&flags.targetJDK, "target-jdk", "", "JDK release to record (default "+config.DefaultTargetJDK+")")

	return cmd
}

func runInit(cmd *cobra.Command, args []string, flags *initFlags) error {
	logger := logging.FromContext(commandContext(cmd))

	dir, err := workingDir(cmd)
	if err != nil {
		return err
	}
	if len(args) == 1 {
		if filepath.IsAbs(args[0]) {
			dir = args[0]
		} else {
			dir = filepath.Join(dir, args[0])
		}
	}

	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrIO, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s is not a directory", ErrUsage, dir)
	}

	path := filepath.Join(dir, configloader.ProjectConfigFiles[0])
	if _, err := os.Stat(path); err == nil {
		if !flags.force {
			return fmt.Errorf("%w: %s already exists; use --force to overwrite", ErrUsage, path)
		}
		logger.Warn("overwriting existing file", logging.FieldPath, path)
	}

	cfg := config.NewConfig()
	if flags.targetJDK != "" {
		cfg.TargetJDK = flags.targetJDK
	}
	if result := configloader.Validate(cfg); !result.Valid() {
		return fmt.Errorf("%w: %w", ErrConfig, result.Err())
	}

	if err := configloader.WriteConfig(cfg, path); err != nil {
		return fmt.Errorf("%w: %w", ErrIO, err)
	}

	logger.Info("created configuration file", logging.FieldPath, path, logging.FieldTargetJDK, cfg.TargetJDK)
	return nil
}
