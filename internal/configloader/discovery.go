package configloader

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

// ConfigPaths holds the configuration files found for one run. Empty fields
// mean no file at that layer.
type ConfigPaths struct {
	System   string
	User     string
	Project  string
	Explicit string
}

const appName = "jdkup"

// ProjectConfigFiles are the project config file names, most preferred first.
//
//nolint:gochecknoglobals // Read-only lookup table.
var ProjectConfigFiles = []string{
	".jdkup.yml",
	".jdkup.yaml",
	"jdkup.yml",
	"jdkup.yaml",
}

// projectRootMarkers end the upward search for a project config. A Gradle
// settings script or a Maven wrapper directory marks the top of a build even
// when the repository root is further up.
//
//nolint:gochecknoglobals // Read-only lookup table.
var projectRootMarkers = []string{
	".git",
	".hg",
	".svn",
	"settings.gradle",
	"settings.gradle.kts",
	".mvn",
}

// DiscoverPaths locates the system, user and project configuration files
// for a run rooted at workDir.
func DiscoverPaths(ctx context.Context, workDir string) (*ConfigPaths, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("discover config: %w", err)
	}

	project, err := FindProjectConfig(ctx, workDir)
	if err != nil {
		return nil, err
	}

	return &ConfigPaths{
		System:  firstExisting(systemConfigDir(), "config.yml", "config.yaml"),
		User:    firstExisting(userConfigDir(), "config.yml", "config.yaml"),
		Project: project,
	}, nil
}

func systemConfigDir() string {
	if runtime.GOOS != "windows" {
		return filepath.Join("/etc", appName)
	}
	base := os.Getenv("ProgramData")
	if base == "" {
		base = `C:\ProgramData`
	}
	return filepath.Join(base, appName)
}

func userConfigDir() string {
	if base := os.Getenv("XDG_CONFIG_HOME"); base != "" {
		return filepath.Join(base, appName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", appName)
}

// firstExisting returns the first of names that is a regular file in dir.
func firstExisting(dir string, names ...string) string {
	if dir == "" {
		return ""
	}
	for _, name := range names {
		candidate := filepath.Join(dir, name)
		if info, err := os.Stat(candidate); err == nil && info.Mode().IsRegular() {
			return candidate
		}
	}
	return ""
}

// FindProjectConfig walks from startDir towards the filesystem root and
// returns the first project config file it sees. The walk stops after the
// directory holding a project root marker, at the home directory, or at
// the root. An empty result with a nil error means no file was found.
func FindProjectConfig(ctx context.Context, startDir string) (string, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", startDir, err)
	}

	home, _ := os.UserHomeDir()

	for {
		if err := ctx.Err(); err != nil {
			return "", fmt.Errorf("find project config: %w", err)
		}

		if found := firstExisting(dir, ProjectConfigFiles...); found != "" {
			return found, nil
		}

		parent := filepath.Dir(dir)
		if isProjectRoot(dir) || dir == home || parent == dir {
			return "", nil
		}
		dir = parent
	}
}

func isProjectRoot(dir string) bool {
	for _, marker := range projectRootMarkers {
		if _, err := os.Stat(filepath.Join(dir, marker)); err == nil {
			return true
		}
	}
	return false
}
