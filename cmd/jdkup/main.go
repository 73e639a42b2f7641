// Package main is the entry point for the jdkup CLI.
package main

import (
	"errors"
	"os"

	"github.com/yaklabco/jdkup/internal/cli"
	"github.com/yaklabco/jdkup/internal/logging"
	"github.com/yaklabco/jdkup/pkg/apply"
)

// Build-time variables set by GoReleaser via ldflags.
//
//nolint:gochecknoglobals // Version variables must be package-level for ldflags injection
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	info := cli.BuildInfo{
		Version: version,
		Commit:  commit,
		Date:    date,
	}

	rootCmd := cli.NewRootCommand(info)

	if err := rootCmd.Execute(); err != nil {
		// Failed changes and quitting are already in the report.
		if !errors.Is(err, cli.ErrChangesFailed) && !errors.Is(err, apply.ErrQuit) {
			logging.Default().Error("command failed", logging.FieldError, err)
		}
		return cli.ExitCode(err)
	}

	return cli.ExitSuccess
}
