package consolidate

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fyrsmithlabs/suggestd/internal/note"
)

func bulletSection(id, heading string, bullets int) note.ClassifiedSection {
	return note.ClassifiedSection{
		Section: note.Section{
			ID:      id,
			NoteID:  "n1",
			Heading: heading,
			HeadingLevel: 2,
			RawText: "- one idea bullet\n- another idea bullet\n- a third idea bullet",
			Features: note.StructuralFeatures{
				ListItemCount: bullets,
			},
		},
	}
}

func idea(id, sectionID, title, evidence string) note.Suggestion {
	return note.Suggestion{
		ID:        id,
		NoteID:    "n1",
		SectionID: sectionID,
		Type:      note.TypeIdea,
		Title:     title,
		Payload:   note.Payload{Draft: &note.DraftInitiative{Title: title, Description: evidence}},
		Evidence:  []note.EvidenceSpan{{StartLine: 1, EndLine: 1, Text: evidence}},
		Key:       note.SuggestionKeyFor("n1", sectionID, note.TypeIdea, title),
	}
}

func TestMergesFragmentedIdeasFromBulletList(t *testing.T) {
	sections := map[string]note.ClassifiedSection{
		"n1-s1": bulletSection("n1-s1", "Growth Experiments", 3),
	}
	batch := []note.Suggestion{
		idea("n1-c1", "n1-s1", "One idea bullet", "one idea bullet"),
		idea("n1-c2", "n1-s1", "Another idea bullet", "another idea bullet"),
		idea("n1-c3", "n1-s1", "A third idea bullet", "a third idea bullet"),
	}

	res := Run(batch, sections)
	require.Len(t, res.Candidates, 1)
	survivor := res.Candidates[0]
	assert.Equal(t, "n1-c1", survivor.ID)
	assert.Equal(t, "Growth Experiments", survivor.Title)
	assert.Len(t, survivor.Evidence, 3)
	require.NotNil(t, survivor.Payload.Draft)
	assert.Contains(t, survivor.Payload.Draft.Description, "another idea bullet")

	require.Len(t, res.Drops, 2)
	for _, d := range res.Drops {
		assert.Equal(t, note.DropMerged, d.Reason)
	}
}

func TestEngagementLoopPatternWinsOverHeading(t *testing.T) {
	sec := bulletSection("n1-s1", "Growth Experiments", 3)
	sec.RawText = "- build an engagement loop around weekly digests\n- more bullets here\n- and a third"
	sections := map[string]note.ClassifiedSection{"n1-s1": sec}

	batch := []note.Suggestion{
		idea("n1-c1", "n1-s1", "First", "build an engagement loop around weekly digests"),
		idea("n1-c2", "n1-s1", "Second", "more bullets here too"),
	}

	res := Run(batch, sections)
	require.Len(t, res.Candidates, 1)
	assert.Equal(t, "Engagement loop", res.Candidates[0].Title)
}

func TestMergedBodyCapsAtFourBullets(t *testing.T) {
	sections := map[string]note.ClassifiedSection{
		"n1-s1": bulletSection("n1-s1", "Growth Experiments", 6),
	}
	var batch []note.Suggestion
	evidences := []string{
		"first distinct bullet", "second distinct bullet", "third distinct bullet",
		"fourth distinct bullet", "fifth distinct bullet", "sixth distinct bullet",
	}
	for i, ev := range evidences {
		batch = append(batch, idea(fmt.Sprintf("n1-c%d", i+1), "n1-s1", ev, ev))
	}

	res := Run(batch, sections)
	require.Len(t, res.Candidates, 1)
	assert.Len(t, res.Candidates[0].Evidence, 4)
}

func TestRiskAndProjectUpdateNeverMerged(t *testing.T) {
	sections := map[string]note.ClassifiedSection{
		"n1-s1": bulletSection("n1-s1", "Growth Experiments", 3),
	}
	risk := idea("n1-c1", "n1-s1", "A risk", "something risky here")
	risk.Type = note.TypeRisk
	update := idea("n1-c2", "n1-s1", "An update", "something that changed")
	update.Type = note.TypeProjectUpdate

	res := Run([]note.Suggestion{risk, update}, sections)
	assert.Len(t, res.Candidates, 2)
	assert.Empty(t, res.Drops)
}

func TestNoMergeWhenSectionHasDelta(t *testing.T) {
	sec := bulletSection("n1-s1", "Timeline", 3)
	sec.Features.HasDates = true
	sections := map[string]note.ClassifiedSection{"n1-s1": sec}

	batch := []note.Suggestion{
		idea("n1-c1", "n1-s1", "First", "one idea bullet"),
		idea("n1-c2", "n1-s1", "Second", "another idea bullet"),
	}

	res := Run(batch, sections)
	assert.Len(t, res.Candidates, 2)
	assert.Empty(t, res.Drops)
}

func TestSingleIdeaLeftAlone(t *testing.T) {
	sections := map[string]note.ClassifiedSection{
		"n1-s1": bulletSection("n1-s1", "Growth Experiments", 3),
	}
	batch := []note.Suggestion{idea("n1-c1", "n1-s1", "Only one", "one idea bullet")}

	res := Run(batch, sections)
	require.Len(t, res.Candidates, 1)
	assert.Equal(t, "Only one", res.Candidates[0].Title)
}

func TestMergedKeyIsRecomputed(t *testing.T) {
	sections := map[string]note.ClassifiedSection{
		"n1-s1": bulletSection("n1-s1", "Growth Experiments", 3),
	}
	batch := []note.Suggestion{
		idea("n1-c1", "n1-s1", "First", "one idea bullet"),
		idea("n1-c2", "n1-s1", "Second", "another idea bullet"),
	}

	res := Run(batch, sections)
	require.Len(t, res.Candidates, 1)
	want := note.SuggestionKeyFor("n1", "n1-s1", note.TypeIdea, "Growth Experiments")
	assert.Equal(t, want, res.Candidates[0].Key)
}
