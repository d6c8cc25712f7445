package note

import (
	"time"
)

// Note is the immutable pipeline input.
type Note struct {
	NoteID      string     `json:"note_id"`
	RawMarkdown string     `json:"raw_markdown"`
	AuthoredAt  *time.Time `json:"authored_at,omitempty"`
}

// LineType classifies a single normalized line.
type LineType string

const (
	LineHeading   LineType = "heading"
	LineListItem  LineType = "list_item"
	LineParagraph LineType = "paragraph"
	LineCode      LineType = "code"
	LineBlank     LineType = "blank"
)

// Line is one line of the normalized note. Derived once, never mutated.
type Line struct {
	Index  int      `json:"index"`
	Text   string   `json:"text"`
	Type   LineType `json:"line_type"`
	Indent int      `json:"indent_level"`
}

// StructuralFeatures is a precomputed bag of cheap section-level signals.
type StructuralFeatures struct {
	LineCount       int     `json:"line_count"`
	ListItemCount   int     `json:"list_item_count"`
	CharCount       int     `json:"char_count"`
	HasDates        bool    `json:"has_dates"`
	HasMetrics      bool    `json:"has_metrics"`
	HasQuarterOrVer bool    `json:"has_quarter_or_version"`
	HasLaunchWord   bool    `json:"has_launch_keyword"`
	InitiativeDense float64 `json:"initiative_phrase_density"`
}

// ParentRef points a derived sub-section back at the raw text range of
// the section it was split from.
type ParentRef struct {
	ID        string `json:"id"`
	StartLine int    `json:"start_line"`
	EndLine   int    `json:"end_line"`
}

// Section is a heading-delimited block of a note. RawText is exactly the
// concatenation of the section's source lines, which downstream grounding
// checks depend on. Derived sub-sections carry a composite id
// (parent id + marker) and a ParentRef; they are read-only views.
type Section struct {
	ID           string             `json:"section_id"`
	NoteID       string             `json:"note_id"`
	Heading      string             `json:"heading_text,omitempty"`
	HeadingLevel int                `json:"heading_level"`
	StartLine    int                `json:"start_line"`
	EndLine      int                `json:"end_line"`
	Body         []Line             `json:"body_lines"`
	Features     StructuralFeatures `json:"structural_features"`
	RawText      string             `json:"raw_text"`
	Parent       *ParentRef         `json:"parent,omitempty"`
}

// Intent is the classified purpose of a section. The label set is closed.
type Intent string

const (
	IntentPlanChange    Intent = "plan_change"
	IntentNewWorkstream Intent = "new_workstream"
	IntentStatus        Intent = "status_informational"
	IntentCommunication Intent = "communication"
	IntentResearch      Intent = "research"
	IntentCalendar      Intent = "calendar"
	IntentMicroTasks    Intent = "micro_tasks"
)

// Intents returns the closed label set in canonical order. Argmax
// tie-breaks resolve in this order, which keeps classification
// deterministic across runs.
func Intents() []Intent {
	return []Intent{
		IntentPlanChange,
		IntentNewWorkstream,
		IntentStatus,
		IntentCommunication,
		IntentResearch,
		IntentCalendar,
		IntentMicroTasks,
	}
}

// OutOfScopeIntents are the labels whose argmax blocks actionability.
func OutOfScopeIntents() map[Intent]bool {
	return map[Intent]bool{
		IntentStatus:        true,
		IntentCommunication: true,
		IntentCalendar:      true,
		IntentMicroTasks:    true,
	}
}

// ClassifiedSection is a Section plus classifier output. Created once;
// later stages read it, they do not write back.
type ClassifiedSection struct {
	Section
	IntentScores     map[Intent]float64 `json:"intent"`
	TopIntent        Intent             `json:"top_intent"`
	Actionable       bool               `json:"is_actionable"`
	ActionableSignal float64            `json:"actionable_signal"`
	OutOfScopeSignal float64            `json:"out_of_scope_signal"`
	SuggestedType    SuggestionType     `json:"suggested_type"`
	TypeConfidence   float64            `json:"type_confidence"`
}

// SuggestionType is the kind of card a candidate becomes.
type SuggestionType string

const (
	TypeProjectUpdate SuggestionType = "project_update"
	TypeIdea          SuggestionType = "idea"
	TypeRisk          SuggestionType = "risk"
	TypeBug           SuggestionType = "bug"
)

// Source marks which synthesis strategy created a candidate. Grounding
// enforcement keys off this.
type Source string

const (
	SourceCanonical  Source = "canonical"
	SourceTopicSplit Source = "topic_isolation"
	SourceDense      Source = "dense_paragraph"
	SourceSignal     Source = "signal"
	SourceSemantic   Source = "semantic"
	SourceStructural Source = "structural_bypass"
	SourceActionItem Source = "action_items"
)

// GroundingEnforced reports whether the global grounding invariant
// applies to candidates from this source.
func (s Source) GroundingEnforced() bool {
	return s == SourceSignal || s == SourceDense
}

// EvidenceSpan is a contiguous run of section lines backing a candidate.
type EvidenceSpan struct {
	StartLine int    `json:"start_line"`
	EndLine   int    `json:"end_line"`
	Text      string `json:"text"`
}

// Scores carries the per-candidate confidence components and their blend.
type Scores struct {
	SectionActionability float64 `json:"section_actionability"`
	TypeChoice           float64 `json:"type_choice_confidence"`
	Synthesis            float64 `json:"synthesis_confidence"`
	Overall              float64 `json:"overall"`
}

// Routing says where a surviving candidate lands.
type Routing struct {
	CreateNew    bool   `json:"create_new"`
	InitiativeID string `json:"attached_initiative_id,omitempty"`
}

// Metadata records strategy provenance for a candidate.
type Metadata struct {
	Source     Source  `json:"source"`
	Label      string  `json:"label"`
	Confidence float64 `json:"confidence"`
}

// DraftInitiative is the payload for candidates that propose new work.
type DraftInitiative struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Payload is the type-specific body of a suggestion. Project updates
// carry AfterDescription; idea-class candidates carry a draft initiative.
type Payload struct {
	AfterDescription string           `json:"after_description,omitempty"`
	Draft            *DraftInitiative `json:"draft_initiative,omitempty"`
}

// SuggestionContext is the review-card preview handed to the UI.
type SuggestionContext struct {
	Title           string   `json:"title"`
	Body            string   `json:"body"`
	EvidencePreview []string `json:"evidencePreview,omitempty"`
	SourceSectionID string   `json:"sourceSectionId"`
	SourceHeading   string   `json:"sourceHeading,omitempty"`
}

// Suggestion is a candidate proposed plan change, idea, risk, or bug.
// Created by exactly one strategy; annotated by later stages; dropped
// only with a drop record; title rewritten exactly once at the end.
type Suggestion struct {
	ID                   string             `json:"suggestion_id"`
	NoteID               string             `json:"note_id"`
	SectionID            string             `json:"section_id"`
	Type                 SuggestionType     `json:"type"`
	Title                string             `json:"title"`
	Payload              Payload            `json:"payload"`
	Evidence             []EvidenceSpan     `json:"evidence_spans"`
	Scores               Scores             `json:"scores"`
	Routing              Routing            `json:"routing"`
	Key                  string             `json:"suggestionKey"`
	Metadata             Metadata           `json:"metadata"`
	Context              *SuggestionContext `json:"suggestion_context,omitempty"`
	NeedsClarification   bool               `json:"needs_clarification,omitempty"`
	ClarificationReasons []string           `json:"clarification_reasons,omitempty"`
}

// InitiativeSnapshot is the router's view of an existing initiative.
// Translation from the persisted record shape happens at the adapter
// boundary; the pipeline never sees storage formats.
type InitiativeSnapshot struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
}
