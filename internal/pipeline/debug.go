package pipeline

import (
	"github.com/fyrsmithlabs/suggestd/internal/note"
)

// DebugInfo is the structured per-run ledger: what each section
// classified as, what each candidate scored, and why anything was
// dropped. Produced only when EnableDebug is set; never required for
// suggestion correctness. Text fields pass through the redactor.
type DebugInfo struct {
	RunID      string            `json:"run_id"`
	Sections   []SectionDebug    `json:"sections"`
	Candidates []CandidateDebug  `json:"candidates"`
	Drops      []note.DropRecord `json:"drops"`
}

// SectionDebug records one section's classification outcome.
type SectionDebug struct {
	SectionID        string                  `json:"section_id"`
	Heading          string                  `json:"heading,omitempty"`
	TopIntent        note.Intent             `json:"top_intent"`
	IntentScores     map[note.Intent]float64 `json:"intent_scores"`
	Actionable       bool                    `json:"actionable"`
	ActionableSignal float64                 `json:"actionable_signal"`
	SuggestedType    note.SuggestionType     `json:"suggested_type"`
}

// CandidateDebug records one emitted candidate's provenance and scores.
type CandidateDebug struct {
	SuggestionID string              `json:"suggestion_id"`
	SectionID    string              `json:"section_id"`
	Type         note.SuggestionType `json:"type"`
	Source       note.Source         `json:"source"`
	Title        string              `json:"title"`
	Evidence     []string            `json:"evidence"`
	Scores       note.Scores         `json:"scores"`
	Clarify      bool                `json:"needs_clarification,omitempty"`
}

func (p *Pipeline) buildDebug(runID string, classified []note.ClassifiedSection, final []note.Suggestion, drops []note.DropRecord) *DebugInfo {
	d := &DebugInfo{RunID: runID, Drops: drops}

	for _, cs := range classified {
		d.Sections = append(d.Sections, SectionDebug{
			SectionID:        cs.ID,
			Heading:          p.redactor.Redact(cs.Heading),
			TopIntent:        cs.TopIntent,
			IntentScores:     cs.IntentScores,
			Actionable:       cs.Actionable,
			ActionableSignal: cs.ActionableSignal,
			SuggestedType:    cs.SuggestedType,
		})
	}

	for _, s := range final {
		evidence := make([]string, 0, len(s.Evidence))
		for _, span := range s.Evidence {
			evidence = append(evidence, span.Text)
		}
		d.Candidates = append(d.Candidates, CandidateDebug{
			SuggestionID: s.ID,
			SectionID:    s.SectionID,
			Type:         s.Type,
			Source:       s.Metadata.Source,
			Title:        p.redactor.Redact(s.Title),
			Evidence:     p.redactor.RedactAll(evidence),
			Scores:       s.Scores,
			Clarify:      s.NeedsClarification,
		})
	}
	return d
}
