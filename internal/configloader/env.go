package configloader

import (
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/yaklabco/jdkup/pkg/config"
)

const envVarPrefix = "JDKUP_"

// envSetter parses an environment value into one config field.
type envSetter func(cfg *config.Config, value string) error

type envOverride struct {
	description string
	set         envSetter
}

//nolint:gochecknoglobals // Read-only lookup table.
var envOverrides = map[string]envOverride{
	"TARGET_JDK": {"JDK release to upgrade to", func(cfg *config.Config, v string) error {
		cfg.TargetJDK = v
		return nil
	}},
	"FORMAT": {"Output format: text, json, diff or table", func(cfg *config.Config, v string) error {
		cfg.Format = config.OutputFormat(v)
		return nil
	}},
	"SKIP": {"Comma-separated skip patterns", func(cfg *config.Config, v string) error {
		cfg.Skip = splitList(v)
		return nil
	}},
	"MAX_BLOCK_LINES": {"Block size above which extraction warns", intSetter(func(cfg *config.Config, n int) {
		cfg.MaxBlockLines = n
	})},
	"DRY_RUN": {"Render changes without writing", boolSetter(func(cfg *config.Config, b bool) {
		cfg.DryRun = b
	})},
	"AUTO_APPROVE": {"Apply changes without prompting", boolSetter(func(cfg *config.Config, b bool) {
		cfg.AutoApprove = b
	})},
	"NO_BACKUPS": {"Disable backups", boolSetter(func(cfg *config.Config, b bool) {
		cfg.NoBackups = b
	})},
	"BACKUPS_ENABLED": {"Enable backups", boolSetter(func(cfg *config.Config, b bool) {
		cfg.Backups.Enabled = &b
	})},
	"BACKUPS_MODE": {"Backup mode: sidecar or none", func(cfg *config.Config, v string) error {
		cfg.Backups.Mode = v
		return nil
	}},
	"FUZZY_RATIO": {"Share of key patterns a fuzzy match needs", func(cfg *config.Config, v string) error {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("invalid number %q", v)
		}
		cfg.Matching.FuzzyRatio = f
		return nil
	}},
	"MIN_FUZZY_SCORE": {"Minimum key patterns a fuzzy match needs", intSetter(func(cfg *config.Config, n int) {
		cfg.Matching.MinFuzzyScore = n
	})},
	"RELOCATE_OUT_OF_BOUNDS": {"Relocate out-of-range changes by content", boolSetter(func(cfg *config.Config, b bool) {
		cfg.Matching.RelocateOutOfBounds = b
	})},
}

func boolSetter(apply func(*config.Config, bool)) envSetter {
	return func(cfg *config.Config, v string) error {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid boolean %q (expected true/false/1/0)", v)
		}
		apply(cfg, b)
		return nil
	}
}

func intSetter(apply func(*config.Config, int)) envSetter {
	return func(cfg *config.Config, v string) error {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("invalid integer %q", v)
		}
		apply(cfg, n)
		return nil
	}
}

// LoadFromEnv applies JDKUP_* overrides to cfg. Unset and empty variables
// are ignored.
func LoadFromEnv(cfg *config.Config) error {
	if cfg == nil {
		return nil
	}
	for suffix, override := range envOverrides {
		name := envVarPrefix + suffix
		value := os.Getenv(name)
		if value == "" {
			continue
		}
		if err := override.set(cfg, value); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}
	return nil
}

// splitList splits a comma-separated value, dropping blank entries.
func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// EnvVar describes a supported environment variable.
type EnvVar struct {
	Name        string
	Description string
}

// ListEnvVars returns the supported environment variables sorted by name.
func ListEnvVars() []EnvVar {
	vars := make([]EnvVar, 0, len(envOverrides))
	for suffix, override := range envOverrides {
		vars = append(vars, EnvVar{Name: envVarPrefix + suffix, Description: override.description})
	}
	slices.SortFunc(vars, func(a, b EnvVar) int { return strings.Compare(a.Name, b.Name) })
	return vars
}
