package essay

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

const wellFormedReply = `[修正文] I went to school yesterday.

[錯誤分析] "go" should be past tense.

[高分建議] Use varied verbs. Example: I strolled to school.`

func TestBuildPrompt(t *testing.T) {
	p := BuildPrompt("I goes to school.")

	assert.Contains(t, p, LabelCorrected)
	assert.Contains(t, p, LabelAnalysis)
	assert.Contains(t, p, LabelSuggestions)
	assert.Contains(t, p, "托福")
	assert.True(t, strings.HasSuffix(p, "I goes to school.\n"))
}

func TestSplitPositional(t *testing.T) {
	s := SplitPositional(wellFormedReply)

	assert.Equal(t, `[修正文] I went to school yesterday.`, s.Corrected)
	assert.Equal(t, `[錯誤分析] "go" should be past tense.`, s.Analysis)
	assert.Equal(t, `[高分建議] Use varied verbs. Example: I strolled to school.`, s.Suggestions)
	assert.False(t, s.IsDegraded())
}

func TestSplitPositional_ExtraSegmentsDropped(t *testing.T) {
	s := SplitPositional("\n  a\n\nb\n\nc\n\nd\n\ne  \n")

	assert.Equal(t, Sections{Corrected: "a", Analysis: "b", Suggestions: "c"}, s)
}

func TestSplitPositional_Degraded(t *testing.T) {
	tests := []struct {
		name  string
		reply string
	}{
		{"empty", ""},
		{"whitespace", "  \n\n  "},
		{"one segment", "just one block"},
		{"two segments", "first\n\nsecond"},
		{"single newlines only", "a\nb\nc\nd"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := SplitPositional(tt.reply)
			assert.Equal(t, Sections{Corrected: DegradedMarker, Analysis: "", Suggestions: ""}, s)
			assert.True(t, s.IsDegraded())
		})
	}
}

func TestSplitPositional_IsPositionalNotKeyed(t *testing.T) {
	reordered := "[高分建議] tips\n\n[修正文] text\n\n[錯誤分析] errors"

	s := SplitPositional(reordered)

	assert.Equal(t, "[高分建議] tips", s.Corrected)
	assert.Equal(t, "[修正文] text", s.Analysis)
	assert.Equal(t, "[錯誤分析] errors", s.Suggestions)
}

func TestSplitKeyed_Reordered(t *testing.T) {
	reordered := "[高分建議] tips\nExample: more.\n[修正文] text\n\n[錯誤分析] errors"

	s := SplitKeyed(reordered)

	assert.Equal(t, "text", s.Corrected)
	assert.Equal(t, "errors", s.Analysis)
	assert.Equal(t, "tips\nExample: more.", s.Suggestions)
}

func TestSplitKeyed_MergedSectionsWithoutBlankLines(t *testing.T) {
	merged := "[修正文] text\n[錯誤分析] errors\n[高分建議] tips"

	assert.True(t, SplitPositional(merged).IsDegraded())
	assert.Equal(t, Sections{Corrected: "text", Analysis: "errors", Suggestions: "tips"}, SplitKeyed(merged))
}

func TestSplitKeyed_FallsBackToPositional(t *testing.T) {
	unlabeled := "a\n\nb\n\nc"
	assert.Equal(t, Sections{Corrected: "a", Analysis: "b", Suggestions: "c"}, SplitKeyed(unlabeled))

	partial := "[修正文] text\n\n[錯誤分析] errors"
	assert.True(t, SplitKeyed(partial).IsDegraded())

	emptyLabel := "[修正文]\n[錯誤分析] errors\n[高分建議] tips"
	assert.True(t, SplitKeyed(emptyLabel).IsDegraded())
}

func TestSplit_Dispatch(t *testing.T) {
	merged := "[修正文] text\n[錯誤分析] errors\n[高分建議] tips"

	assert.True(t, Split(merged, false).IsDegraded())
	assert.False(t, Split(merged, true).IsDegraded())
}

func TestCleanText(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"[修正文] I went home.", "I went home."},
		{"  no brackets here  ", "no brackets here"},
		{"a [x] b [y] c", "a  b  c"},
		{"[[nested]] tail", "] tail"},
		{"open [ only", "open [ only"},
		{"line [one\ntwo] end", "line [one\ntwo] end"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, CleanText(tt.in), "input %q", tt.in)
	}
}

func TestCleanText_Idempotent(t *testing.T) {
	inputs := []string{
		wellFormedReply,
		"[a][b][c]",
		"[[a]]]",
		"x [y [z] w] v",
		"[修正文]\n\n  text  \n",
		"]]][[[",
	}
	for _, in := range inputs {
		once := CleanText(in)
		assert.Equal(t, once, CleanText(once), "input %q", in)
	}
}

func TestSections_Clean(t *testing.T) {
	s := SplitPositional(wellFormedReply).Clean()

	assert.Equal(t, "I went to school yesterday.", s.Corrected)
	assert.Equal(t, `"go" should be past tense.`, s.Analysis)
	assert.Equal(t, "Use varied verbs. Example: I strolled to school.", s.Suggestions)

	assert.Equal(t, Degraded(), Degraded().Clean())
}
