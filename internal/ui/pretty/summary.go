package pretty

import (
	"fmt"
	"strings"

	"github.com/yaklabco/jdkup/pkg/runner"
)

const (
	wordFile    = "file"
	wordFiles   = "files"
	wordChange  = "change"
	wordChanges = "changes"
	wordBlock   = "block"
	wordBlocks  = "blocks"
)

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

// FormatApplySummary formats apply statistics as a single line.
// Example: "5 changes: 3 applied, 1 skipped, 1 failed in 2 files, 2 files modified".
func (s *Styles) FormatApplySummary(stats runner.ApplyStats) string {
	if stats.ChangesTotal == 0 {
		return s.Dim.Render("No changes to apply") + "\n"
	}

	var counts []string
	if stats.ChangesApplied > 0 {
		counts = append(counts, s.Applied.Render(fmt.Sprintf("%d applied", stats.ChangesApplied)))
	}
	if stats.ChangesPending > 0 {
		counts = append(counts, s.Pending.Render(fmt.Sprintf("%d pending", stats.ChangesPending)))
	}
	if stats.ChangesSkipped > 0 {
		counts = append(counts, s.Skipped.Render(fmt.Sprintf("%d skipped", stats.ChangesSkipped)))
	}
	if stats.ChangesFailed > 0 {
		counts = append(counts, s.Failed.Render(fmt.Sprintf("%d failed", stats.ChangesFailed)))
	}

	line := fmt.Sprintf("%d %s: %s in %d %s",
		stats.ChangesTotal, plural(stats.ChangesTotal, wordChange, wordChanges),
		strings.Join(counts, ", "),
		stats.FilesTotal, plural(stats.FilesTotal, wordFile, wordFiles),
	)

	if stats.FilesModified > 0 {
		line += ", " + s.Success.Render(fmt.Sprintf("%d %s modified",
			stats.FilesModified, plural(stats.FilesModified, wordFile, wordFiles)))
	}
	if stats.BackupsCreated > 0 {
		line += s.Dim.Render(fmt.Sprintf(" (%d %s)",
			stats.BackupsCreated, plural(stats.BackupsCreated, "backup", "backups")))
	}
	if stats.FilesErrored > 0 {
		line += ", " + s.Error.Render(fmt.Sprintf("%d %s not processed",
			stats.FilesErrored, plural(stats.FilesErrored, wordFile, wordFiles)))
	}

	return line + "\n"
}

// FormatExtractSummary formats extraction statistics as a single line.
// Example: "7 blocks in 3 files (12 files scanned), 1 large block".
func (s *Styles) FormatExtractSummary(stats runner.ExtractStats) string {
	if stats.Blocks == 0 {
		return s.Success.Render("No upgrade candidates found") +
			s.Dim.Render(fmt.Sprintf(" (%d %s scanned)",
				stats.FilesDiscovered, plural(stats.FilesDiscovered, wordFile, wordFiles))) + "\n"
	}

	line := fmt.Sprintf("%d %s in %d %s",
		stats.Blocks, plural(stats.Blocks, wordBlock, wordBlocks),
		stats.FilesWithBlocks, plural(stats.FilesWithBlocks, wordFile, wordFiles),
	) + s.Dim.Render(fmt.Sprintf(" (%d %s scanned)",
		stats.FilesDiscovered, plural(stats.FilesDiscovered, wordFile, wordFiles)))

	if stats.LargeBlocks > 0 {
		line += ", " + s.Warning.Render(fmt.Sprintf("%d large %s",
			stats.LargeBlocks, plural(stats.LargeBlocks, wordBlock, wordBlocks)))
	}
	if stats.FilesErrored > 0 {
		line += ", " + s.Error.Render(fmt.Sprintf("%d unreadable", stats.FilesErrored))
	}

	return line + "\n"
}
