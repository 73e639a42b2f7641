package change_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/jdkup/pkg/change"
)

func TestParseKind(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input   string
		want    change.Kind
		wantErr bool
	}{
		{"insert", change.KindInsert, false},
		{"UPDATE", change.KindUpdate, false},
		{" delete ", change.KindDelete, false},
		{"replace", change.KindUpdate, false},
		{"rename", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()

			got, err := change.ParseKind(tt.input)
			if tt.wantErr {
				require.ErrorIs(t, err, change.ErrUnknownKind)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestKindText(t *testing.T) {
	t.Parallel()

	text, err := change.KindDelete.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "delete", string(text))

	var kind change.Kind
	require.NoError(t, kind.UnmarshalText([]byte("insert")))
	assert.Equal(t, change.KindInsert, kind)

	_, err = change.Kind(42).MarshalText()
	assert.ErrorIs(t, err, change.ErrUnknownKind)
}

func TestNew(t *testing.T) {
	t.Parallel()

	loc := change.Location{FilePath: "App.java", StartLine: 3, EndLine: 4}

	tests := []struct {
		name     string
		kind     change.Kind
		before   string
		after    string
		wantKind change.Kind
		wantErr  bool
	}{
		{"insert", change.KindInsert, "", "log.info(x);", change.KindInsert, false},
		{"insert without after", change.KindInsert, "", "  ", 0, true},
		{"insert with before", change.KindInsert, "old", "new", 0, true},
		{"update", change.KindUpdate, "old", "new", change.KindUpdate, false},
		{"update without before", change.KindUpdate, "", "new", 0, true},
		{"update without after", change.KindUpdate, "old", "", 0, true},
		{"delete", change.KindDelete, "old", "", change.KindDelete, false},
		{"delete by line numbers", change.KindDelete, "", "", change.KindDelete, false},
		{"delete with after", change.KindDelete, "old", "new", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := change.New(tt.kind, loc, tt.before, tt.after, "reason")
			if tt.wantErr {
				var verr *change.ValidationError
				require.ErrorAs(t, err, &verr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantKind, got.Kind())
			assert.Equal(t, loc, got.Where())
			assert.Equal(t, "reason", got.Why())
			assert.Equal(t, tt.before, change.Before(got))
			assert.Equal(t, tt.after, change.After(got))
		})
	}
}

func TestNewInsertNormalisesEndLine(t *testing.T) {
	t.Parallel()

	ins, err := change.NewInsert(change.Location{StartLine: 7}, "x", "")
	require.NoError(t, err)
	assert.Equal(t, 7, ins.Location.EndLine)
}

func TestWithFilePathAndOffset(t *testing.T) {
	t.Parallel()

	upd, err := change.NewUpdate(change.Location{StartLine: 2, EndLine: 3}, "a", "b", "")
	require.NoError(t, err)

	moved := change.Offset(change.WithFilePath(upd, "src/Main.java"), 10)
	assert.Equal(t, change.Location{FilePath: "src/Main.java", StartLine: 12, EndLine: 13}, moved.Where())
	assert.Equal(t, change.KindUpdate, moved.Kind())

	// The original value is untouched.
	assert.Equal(t, "", upd.Location.FilePath)
	assert.Equal(t, 2, upd.Location.StartLine)
}

func TestLocationString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "a.kt:4", change.Location{FilePath: "a.kt", StartLine: 4, EndLine: 4}.String())
	assert.Equal(t, "a.kt:4-6", change.Location{FilePath: "a.kt", StartLine: 4, EndLine: 6}.String())
}

func TestLocationValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		kind    change.Kind
		start   int
		end     int
		wantErr bool
	}{
		{"update inside", change.KindUpdate, 2, 4, false},
		{"update last line", change.KindUpdate, 10, 10, false},
		{"update past end", change.KindUpdate, 9, 11, true},
		{"update zero start", change.KindUpdate, 0, 1, true},
		{"update reversed", change.KindUpdate, 5, 4, true},
		{"delete past end", change.KindDelete, 11, 11, true},
		{"insert at end", change.KindInsert, 11, 11, false},
		{"insert beyond end", change.KindInsert, 12, 12, true},
		{"insert zero", change.KindInsert, 0, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			loc := change.Location{FilePath: "A.java", StartLine: tt.start, EndLine: tt.end}
			err := loc.Validate(tt.kind, 10)
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}

			var bounds *change.BoundsError
			require.ErrorAs(t, err, &bounds)
			assert.Equal(t, 10, bounds.Total)
			assert.Contains(t, err.Error(), "out of bounds")
		})
	}
}
