package preprocess

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fyrsmithlabs/suggestd/internal/note"
)

func run(t *testing.T, md string) Result {
	t.Helper()
	return Run("n1", md, note.NewIDAllocator("n1"))
}

func TestRun_EmptyInput(t *testing.T) {
	res := run(t, "")
	assert.Empty(t, res.Lines)
	assert.Empty(t, res.Sections)
}

func TestLineClassification(t *testing.T) {
	tests := []struct {
		name string
		text string
		want note.LineType
	}{
		{"hash heading", "# Title", note.LineHeading},
		{"deep heading", "###### Small", note.LineHeading},
		{"numbered at column zero is heading", "1. Project Timelines", note.LineHeading},
		{"indented numbered is list item", "  1. first step", note.LineListItem},
		{"bullet", "- item", note.LineListItem},
		{"star bullet", "* item", note.LineListItem},
		{"indented bullet", "    - nested", note.LineListItem},
		{"paragraph", "Plain prose here.", note.LineParagraph},
		{"blank", "   ", note.LineBlank},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := run(t, tt.text)
			require.Len(t, res.Lines, 1)
			assert.Equal(t, tt.want, res.Lines[0].Type)
		})
	}
}

func TestFencedCodeBlocks(t *testing.T) {
	md := "# H\n```go\nfunc main() {}\n# not a heading\n```\nafter"
	res := run(t, md)

	types := make([]note.LineType, len(res.Lines))
	for i, l := range res.Lines {
		types[i] = l.Type
	}
	assert.Equal(t, []note.LineType{
		note.LineHeading, note.LineCode, note.LineCode, note.LineCode, note.LineCode, note.LineParagraph,
	}, types)
}

func TestIndentLevels(t *testing.T) {
	res := run(t, "- top\n  - nested\n    - deeper")
	require.Len(t, res.Lines, 3)
	assert.Equal(t, 0, res.Lines[0].Indent)
	assert.Equal(t, 1, res.Lines[1].Indent)
	assert.Equal(t, 2, res.Lines[2].Indent)
}

func TestSectionGrouping(t *testing.T) {
	md := "# First\n\nbody one\n\n## Second\n\nbody two\nmore two"
	res := run(t, md)

	require.Len(t, res.Sections, 2)

	first := res.Sections[0]
	assert.Equal(t, "First", first.Heading)
	assert.Equal(t, 1, first.HeadingLevel)
	assert.Equal(t, "n1-s1", first.ID)
	assert.Contains(t, first.RawText, "body one")
	assert.NotContains(t, first.RawText, "body two")

	second := res.Sections[1]
	assert.Equal(t, "Second", second.Heading)
	assert.Equal(t, 2, second.HeadingLevel)
	assert.Contains(t, second.RawText, "body two\nmore two")
}

func TestSectionRawTextIsExactConcatenation(t *testing.T) {
	md := "# H\nline a\n  line b with  spaces\nline c"
	res := run(t, md)
	require.Len(t, res.Sections, 1)
	assert.Equal(t, "line a\n  line b with  spaces\nline c", res.Sections[0].RawText)
}

func TestPreambleWithoutHeading(t *testing.T) {
	res := run(t, "just prose, no heading\nsecond line")
	require.Len(t, res.Sections, 1)
	assert.Empty(t, res.Sections[0].Heading)
	assert.Equal(t, 0, res.Sections[0].HeadingLevel)
}

func TestNumberedHeadingSection(t *testing.T) {
	md := "1. Roadmap Review\n- item one\n- item two"
	res := run(t, md)
	require.Len(t, res.Sections, 1)
	assert.Equal(t, "Roadmap Review", res.Sections[0].Heading)
	assert.Equal(t, 2, res.Sections[0].HeadingLevel)
	assert.Equal(t, 2, res.Sections[0].Features.ListItemCount)
}

func TestFeatures(t *testing.T) {
	md := "# Launch Plan\n- ship v2.1 on March 5\n- conversion up 12%\n- Q3 roadmap initiative"
	res := run(t, md)
	require.Len(t, res.Sections, 1)
	f := res.Sections[0].Features

	assert.Equal(t, 3, f.LineCount)
	assert.Equal(t, 3, f.ListItemCount)
	assert.True(t, f.HasDates)
	assert.True(t, f.HasMetrics)
	assert.True(t, f.HasQuarterOrVer)
	assert.True(t, f.HasLaunchWord)
	assert.Greater(t, f.InitiativeDense, 0.0)
}

func TestHasConcreteDelta(t *testing.T) {
	withDelta := run(t, "# A\nLaunch moved to March 12.").Sections[0]
	assert.True(t, HasConcreteDelta(withDelta))

	noDelta := run(t, "# B\nWe like the new framing.").Sections[0]
	assert.False(t, HasConcreteDelta(noDelta))
}

func TestSubSection(t *testing.T) {
	res := run(t, "# Parent\nalpha\nbeta\ngamma")
	parent := res.Sections[0]

	sub := SubSection(parent, "t1", parent.Body[1:])
	assert.Equal(t, "n1-s1.t1", sub.ID)
	assert.Equal(t, "beta\ngamma", sub.RawText)
	require.NotNil(t, sub.Parent)
	assert.Equal(t, parent.ID, sub.Parent.ID)
	assert.Equal(t, parent.StartLine, sub.Parent.StartLine)

	// Sub-section text must substring the parent's raw text.
	assert.True(t, strings.Contains(parent.RawText, sub.RawText))
}

func TestCRLFNormalization(t *testing.T) {
	res := run(t, "# H\r\nbody\r\n")
	require.Len(t, res.Sections, 1)
	assert.Equal(t, "body\n", res.Sections[0].RawText)
}
