package pretty_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/jdkup/internal/ui/pretty"
	"github.com/yaklabco/jdkup/pkg/apply"
	"github.com/yaklabco/jdkup/pkg/change"
	"github.com/yaklabco/jdkup/pkg/extract"
)

func TestFormatOutcome(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)

	upd, err := change.NewUpdate(change.Location{FilePath: "A.java", StartLine: 5, EndLine: 5},
		"int x = 1;", "int x = 2;", "use the new value")
	require.NoError(t, err)

	got := styles.FormatOutcome(apply.Outcome{
		Change:  upd,
		Status:  apply.StatusApplied,
		Stage:   apply.StageContentExact,
		Start:   7,
		End:     7,
		Message: "updated line 7 (relocated from line 5, exact match)",
	})
	assert.Equal(t,
		"  line 5  applied  update  updated line 7 (relocated from line 5, exact match)  (content-exact)\n"+
			"    Reason: use the new value\n",
		got)

	del, err := change.NewDelete(change.Location{FilePath: "A.java", StartLine: 8, EndLine: 9}, "", "")
	require.NoError(t, err)

	got = styles.FormatOutcome(apply.Outcome{
		Change:  del,
		Status:  apply.StatusFailed,
		Err:     errors.New("boom"),
		Message: "boom",
	})
	assert.Equal(t, "  lines 8-9  failed  delete  boom\n", got)
}

func TestFormatStatus(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)
	assert.Equal(t, "applied", styles.FormatStatus(apply.StatusApplied))
	assert.Equal(t, "pending", styles.FormatStatus(apply.StatusPending))
	assert.Equal(t, "skipped", styles.FormatStatus(apply.StatusSkipped))
	assert.Equal(t, "failed", styles.FormatStatus(apply.StatusFailed))
}

func TestFormatFileHeader(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)
	assert.Equal(t, "src/A.java (2 applied)", styles.FormatFileHeader("src/A.java", "2 applied"))
	assert.Equal(t, "src/A.java", styles.FormatFileHeader("src/A.java", ""))
}

func TestFormatBlock(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)
	block := extract.Block{
		Path:      "A.java",
		StartLine: 9,
		EndLine:   10,
		Content:   "void run() {\n}",
		Keywords:  []string{`new\s+Thread\(`},
	}

	assert.Equal(t, "  lines 9-10  (2 lines)  new\\s+Thread\\(\n", styles.FormatBlock(block, false))
	assert.Equal(t,
		"  lines 9-10  (2 lines)  new\\s+Thread\\(\n"+
			"     9  void run() {\n"+
			"    10  }\n",
		styles.FormatBlock(block, true))
}

func TestFormatWarning(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)
	warning := extract.Warning{
		Block: extract.Block{StartLine: 1, EndLine: 30},
		Limit: 20,
	}
	assert.Equal(t, "  warning  large block at lines 1-30 (30 lines, limit 20)\n", styles.FormatWarning(warning))
}
