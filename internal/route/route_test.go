package route

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fyrsmithlabs/suggestd/internal/note"
)

func suggestion(title, body string) note.Suggestion {
	return note.Suggestion{
		ID:      "n1-c1",
		NoteID:  "n1",
		Type:    note.TypeIdea,
		Title:   title,
		Payload: note.Payload{Draft: &note.DraftInitiative{Title: title, Description: body}},
	}
}

func TestAttachesToClosestInitiative(t *testing.T) {
	initiatives := []note.InitiativeSnapshot{
		{ID: "i1", Title: "Billing migration", Description: "move billing to the new payment gateway"},
		{ID: "i2", Title: "Search quality", Description: "typo tolerance and ranking improvements for search"},
	}
	c := suggestion("Add typo tolerance to search", "typo tolerance for the search index ranking")

	r := New(nil, 0.3)
	out := r.Run([]note.Suggestion{c}, initiatives)
	require.Len(t, out, 1)
	assert.Equal(t, "i2", out[0].Routing.InitiativeID)
	assert.False(t, out[0].Routing.CreateNew)
}

func TestCreatesNewBelowThreshold(t *testing.T) {
	initiatives := []note.InitiativeSnapshot{
		{ID: "i1", Title: "Billing migration", Description: "move billing to the new payment gateway"},
	}
	c := suggestion("Redesign the onboarding emails", "cohort based lifecycle messaging")

	r := New(nil, 0.3)
	out := r.Run([]note.Suggestion{c}, initiatives)
	require.Len(t, out, 1)
	assert.True(t, out[0].Routing.CreateNew)
	assert.Empty(t, out[0].Routing.InitiativeID)
}

func TestNoInitiativesMeansCreateNew(t *testing.T) {
	c := suggestion("Anything at all", "any body text")
	r := New(nil, 0.3)
	out := r.Run([]note.Suggestion{c}, nil)
	require.Len(t, out, 1)
	assert.True(t, out[0].Routing.CreateNew)
}

type fixedMatcher struct{ score float64 }

func (m fixedMatcher) Similarity(string, note.InitiativeSnapshot) float64 { return m.score }

func TestCustomMatcherIsUsed(t *testing.T) {
	initiatives := []note.InitiativeSnapshot{{ID: "i1", Title: "Anything"}}
	c := suggestion("Unrelated", "totally unrelated")

	r := New(fixedMatcher{score: 0.9}, 0.3)
	out := r.Run([]note.Suggestion{c}, initiatives)
	assert.Equal(t, "i1", out[0].Routing.InitiativeID)
}

func TestTiesResolveToEarlierSnapshot(t *testing.T) {
	initiatives := []note.InitiativeSnapshot{
		{ID: "i1", Title: "Same title"},
		{ID: "i2", Title: "Same title"},
	}
	c := suggestion("Same title", "")

	r := New(nil, 0.1)
	out := r.Run([]note.Suggestion{c}, initiatives)
	assert.Equal(t, "i1", out[0].Routing.InitiativeID)
}

func TestJaccardSimilarityBounds(t *testing.T) {
	m := JaccardMatcher{}
	same := m.Similarity("typo tolerance", note.InitiativeSnapshot{Title: "typo tolerance"})
	assert.InDelta(t, 1.0, same, 1e-9)

	none := m.Similarity("typo tolerance", note.InitiativeSnapshot{Title: "billing gateway"})
	assert.Zero(t, none)

	empty := m.Similarity("", note.InitiativeSnapshot{Title: "billing"})
	assert.Zero(t, empty)
}
