package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fyrsmithlabs/suggestd/internal/config"
	"github.com/fyrsmithlabs/suggestd/internal/note"
	"github.com/fyrsmithlabs/suggestd/internal/preprocess"
)

func section(t *testing.T, md string) note.Section {
	t.Helper()
	res := preprocess.Run("n1", md, note.NewIDAllocator("n1"))
	require.NotEmpty(t, res.Sections)
	return res.Sections[0]
}

func classifier() *Classifier {
	return New(config.Default().Thresholds, nil)
}

func TestClassify_StatusSectionNotActionable(t *testing.T) {
	cs := classifier().Classify(section(t, "## Status Update\n\nEverything is on track."))

	assert.Equal(t, note.IntentStatus, cs.TopIntent)
	assert.False(t, cs.Actionable)
}

func TestClassify_ImperativeFloorRescuesIdeaSection(t *testing.T) {
	md := "## Error Visibility\n\nUsers don't notice failures unless they dig into logs.\n\nAdd inline alert banners for critical errors."
	cs := classifier().Classify(section(t, md))

	assert.True(t, cs.Actionable)
	assert.GreaterOrEqual(t, cs.ActionableSignal, 0.9)
	assert.Equal(t, note.TypeIdea, cs.SuggestedType)
}

func TestClassify_PlanChangeAlwaysActionable(t *testing.T) {
	// Weak signal, but timeline language dominates the intent map.
	md := "## Timeline\n\nKickoff delayed. Deadline moved to March 9."
	cs := classifier().Classify(section(t, md))

	assert.Equal(t, note.IntentPlanChange, cs.TopIntent)
	assert.True(t, cs.Actionable, "plan_change argmax is actionable regardless of signal")
	assert.Equal(t, note.TypeProjectUpdate, cs.SuggestedType)
}

func TestClassify_CalendarSectionSuppressed(t *testing.T) {
	md := "## Scheduling\n\nSchedule a meeting with design. Send an invite for the standup. Move the meeting to a bigger room. Agenda for Thursday."
	cs := classifier().Classify(section(t, md))

	assert.Equal(t, note.IntentCalendar, cs.TopIntent)
	assert.False(t, cs.Actionable)
}

func TestClassify_DominanceGateBeatsImperativeFloor(t *testing.T) {
	// The imperative ("Add everyone...") would normally rescue the
	// section, but calendar dominance overrides the floor.
	md := "## Scheduling\n\nSchedule a meeting with design. Send an invite for the standup. Agenda for Thursday. Move the meeting earlier. Add everyone to the calendar."
	cs := classifier().Classify(section(t, md))

	require.GreaterOrEqual(t, cs.IntentScores[note.IntentCalendar], 0.75)
	assert.False(t, cs.Actionable)
}

func TestClassify_ImperativeRescueWithoutDominance(t *testing.T) {
	md := "## Follow-ups\n\nSend an email to the group. Implement the shared drafts folder."
	cs := classifier().Classify(section(t, md))

	if cs.TopIntent == note.IntentCommunication {
		assert.True(t, cs.Actionable, "imperative floor rescues below-dominance communication sections")
	}
}

func TestArbitrate_StrategyListForcedToIdea(t *testing.T) {
	md := "## Growth Strategy\n\nWe decided to focus on retention.\n- expand onboarding checklist\n- improve empty states\n- add weekly digest"
	cs := classifier().Classify(section(t, md))

	assert.Equal(t, note.TypeIdea, cs.SuggestedType,
		"strategic narrative must not masquerade as a plan mutation")
}

func TestArbitrate_DeltaAlwaysWins(t *testing.T) {
	md := "## Checkout Strategy\n\nLaunch moved to April 2.\n- step one\n- step two\n- step three"
	cs := classifier().Classify(section(t, md))

	assert.Equal(t, note.TypeProjectUpdate, cs.SuggestedType)
}

func TestArbitrate_ScheduleWordsMatchOnWordBoundaries(t *testing.T) {
	tests := []struct {
		md   string
		want note.SuggestionType
	}{
		// "Details" contains "eta" and "Relationship" contains "ship";
		// neither is a schedule event.
		{"## Implementation Details\n\nWe should add a dark mode toggle to the settings page for accessibility.", note.TypeIdea},
		{"## Customer Relationship\n\nWe should build a shared onboarding checklist for new accounts.", note.TypeIdea},
		{"## Search Revamp\n\nWe will ship the new ranking model to all tenants.", note.TypeProjectUpdate},
		{"## Planner\n\nRollout of the new planner starts next sprint.", note.TypeProjectUpdate},
	}
	for _, tt := range tests {
		cs := classifier().Classify(section(t, tt.md))
		assert.Equal(t, tt.want, cs.SuggestedType, "section: %s", tt.md)
	}
}

func TestArbitrate_SpecLikeNeverProjectUpdate(t *testing.T) {
	md := "## Eligibility Scoring\n\nThe weighting model uses additionality and prioritization criteria per segment."
	cs := classifier().Classify(section(t, md))

	assert.NotEqual(t, note.TypeProjectUpdate, cs.SuggestedType)
}

func TestArbitrate_BugSection(t *testing.T) {
	md := "## Export\n\nThe CSV export is broken and crashes on large files."
	cs := classifier().Classify(section(t, md))

	assert.Equal(t, note.TypeBug, cs.SuggestedType)
}

func TestTypeForSentence(t *testing.T) {
	tests := []struct {
		sentence string
		want     note.SuggestionType
	}{
		{"The importer crashes on empty rows.", note.TypeBug},
		{"There is a risk the vendor contract slips.", note.TypeRisk},
		{"The beta was pushed to May 12.", note.TypeProjectUpdate},
		{"We could offer a weekly digest email.", note.TypeIdea},
	}
	for _, tt := range tests {
		got, conf := TypeForSentence(tt.sentence)
		assert.Equal(t, tt.want, got, "sentence: %s", tt.sentence)
		assert.Greater(t, conf, 0.0)
	}
}

func TestSplitSentences(t *testing.T) {
	got := SplitSentences("First one. Second one! Third… tail without boundary")
	assert.Equal(t, []string{"First one.", "Second one!", "Third…", "tail without boundary"}, got)
}

func TestSplitSentences_EllipsisRun(t *testing.T) {
	got := SplitSentences("Wait... then build it.")
	require.Len(t, got, 2)
	assert.Equal(t, "then build it.", got[1])
}

func TestBeginsWithWorkVerb(t *testing.T) {
	assert.True(t, BeginsWithWorkVerb("Add inline alert banners"))
	assert.True(t, BeginsWithWorkVerb("- Implement retry logic"))
	assert.True(t, BeginsWithWorkVerb("1. Fix the importer"))
	assert.False(t, BeginsWithWorkVerb("Users don't notice failures"))
	assert.False(t, BeginsWithWorkVerb("We should add banners"))
	assert.False(t, BeginsWithWorkVerb(""))
}

type fixedHinter struct {
	hint map[note.Intent]float64
}

func (f fixedHinter) HintIntent(string) (map[note.Intent]float64, error) {
	return f.hint, nil
}

func TestClassify_HinterBlendedNotTrusted(t *testing.T) {
	md := "## Status Update\n\nEverything is on track."

	base := classifier().Classify(section(t, md))

	hinted := New(config.Default().Thresholds, fixedHinter{
		hint: map[note.Intent]float64{note.IntentPlanChange: 1.0},
	}).Classify(section(t, md))

	// The hint nudges plan_change upward but cannot flip a section the
	// rules score as clearly informational.
	assert.Greater(t, hinted.IntentScores[note.IntentPlanChange], base.IntentScores[note.IntentPlanChange])
	assert.Equal(t, note.IntentStatus, hinted.TopIntent)
}

func TestClassify_Deterministic(t *testing.T) {
	md := "## Growth Strategy\n\nWe should add a referral loop.\n- invite flow\n- rewards\n- tracking"
	a := classifier().Classify(section(t, md))
	b := classifier().Classify(section(t, md))

	assert.Equal(t, a.IntentScores, b.IntentScores)
	assert.Equal(t, a.TopIntent, b.TopIntent)
	assert.Equal(t, a.SuggestedType, b.SuggestedType)
}

func TestSpecLike(t *testing.T) {
	assert.True(t, SpecLike(section(t, "## Scoring Framework\n\nsome text here")))
	assert.True(t, SpecLike(section(t, "## Notes\n\nweighting and additionality drive the rubric")))
	assert.False(t, SpecLike(section(t, "## Notes\n\nnothing special here")))
}
