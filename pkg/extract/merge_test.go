package extract_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/jdkup/pkg/extract"
)

func TestMerge(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		spans []extract.Span
		want  []extract.Span
	}{
		{
			name:  "empty",
			spans: nil,
			want:  nil,
		},
		{
			name:  "single",
			spans: []extract.Span{{Start: 3, End: 5, Keywords: []string{"a"}}},
			want:  []extract.Span{{Start: 3, End: 5, Keywords: []string{"a"}}},
		},
		{
			name: "within two lines",
			spans: []extract.Span{
				{Start: 1, End: 1, Keywords: []string{"a"}},
				{Start: 3, End: 3, Keywords: []string{"b"}},
			},
			want: []extract.Span{{Start: 1, End: 3, Keywords: []string{"a", "b"}}},
		},
		{
			name: "three lines apart stay separate",
			spans: []extract.Span{
				{Start: 1, End: 1, Keywords: []string{"a"}},
				{Start: 4, End: 4, Keywords: []string{"b"}},
			},
			want: []extract.Span{
				{Start: 1, End: 1, Keywords: []string{"a"}},
				{Start: 4, End: 4, Keywords: []string{"b"}},
			},
		},
		{
			name: "unsorted overlapping with duplicate keywords",
			spans: []extract.Span{
				{Start: 10, End: 20, Keywords: []string{"b"}},
				{Start: 5, End: 12, Keywords: []string{"a"}},
				{Start: 15, End: 16, Keywords: []string{"a"}},
			},
			want: []extract.Span{{Start: 5, End: 20, Keywords: []string{"a", "b"}}},
		},
		{
			name: "contained span keeps outer end",
			spans: []extract.Span{
				{Start: 1, End: 30, Keywords: []string{"a"}},
				{Start: 4, End: 6, Keywords: []string{"b"}},
			},
			want: []extract.Span{{Start: 1, End: 30, Keywords: []string{"a", "b"}}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := extract.Merge(tt.spans)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, got, extract.Merge(got), "merge must be idempotent")
		})
	}
}
