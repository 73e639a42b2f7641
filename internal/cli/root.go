// Package cli provides the Cobra command structure for jdkup.
package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/jdkup/internal/configloader"
	"github.com/yaklabco/jdkup/internal/logging"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// NewRootCommand creates the root jdkup command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	var (
		debug      bool
		configPath string
		color      string
		chdir      string
	)

	rootCmd := &cobra.Command{
		Use:   "jdkup",
		Short: "Apply JDK upgrade changes to Java, Kotlin, and Groovy repositories",
		Long: `jdkup helps move a JVM repository to a newer JDK.

"jdkup extract" finds the source blocks, build files, and CI definitions
that are likely to need attention. Proposed edits for them, produced by a
model or written by hand, are applied with "jdkup apply". Proposed line
numbers are treated as hints: each change is checked against the text it
expects and relocated when the file has moved on. Every change can be
confirmed, previewed with --dry-run, and undone with "jdkup restore".

` + environmentHelp(),
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if debug {
				logging.SetLevel("debug")
			}
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.BoolVar(&debug, "debug", false, "enable debug logging (or set "+logging.EnvLevel+"=debug)")
	flags.StringVar(&configPath, "config", "", "config file layered over the discovered ones")
	flags.StringVar(&color, "color", "auto", "colorize output: auto, always, never")
	flags.StringVarP(&chdir, "chdir", "C", "", "run as if started in this directory")

	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return fmt.Errorf("%w: %w", ErrUsage, err)
	})

	rootCmd.AddCommand(
		newApplyCommand(),
		newExtractCommand(),
		newInitCommand(),
		newRestoreCommand(),
		newVersionCommand(info),
	)

	NewHelpFormatter(color, os.Stdout).ApplyToCommand(rootCmd)

	return rootCmd
}

// environmentHelp lists the environment variables that override config files.
func environmentHelp() string {
	var sb strings.Builder
	sb.WriteString("Environment:\n")
	for _, v := range configloader.ListEnvVars() {
		fmt.Fprintf(&sb, "  %-30s %s\n", v.Name, v.Description)
	}
	fmt.Fprintf(&sb, "  %-30s %s\n", logging.EnvLevel, "Log level: debug, info, warn or error")
	return sb.String()
}
