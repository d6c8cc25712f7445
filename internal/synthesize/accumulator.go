package synthesize

import (
	"github.com/fyrsmithlabs/suggestd/internal/note"
)

// Accumulator threads candidate and coverage state through the strategy
// fold. Coverage is tracked per base section (derived sub-sections
// accrue to their parent) as normalized evidence text.
type Accumulator struct {
	Candidates []note.Suggestion
	Drops      []note.DropRecord
	Derived    []note.ClassifiedSection

	covered map[string]map[string]bool
	keys    map[string]bool
}

// NewAccumulator creates an empty accumulator.
func NewAccumulator() *Accumulator {
	return &Accumulator{
		covered: make(map[string]map[string]bool),
		keys:    make(map[string]bool),
	}
}

// Add appends a candidate unless its suggestion key was already emitted
// by an earlier strategy, and marks its evidence as covered.
func (a *Accumulator) Add(sec note.Section, s note.Suggestion) bool {
	if a.keys[s.Key] {
		a.Drops = append(a.Drops, note.DropRecord{
			Stage:        note.StageSynthesize,
			Reason:       note.DropDuplicateKey,
			Detail:       "duplicate of earlier strategy output",
			SectionID:    s.SectionID,
			SuggestionID: s.ID,
		})
		return false
	}
	a.keys[s.Key] = true
	a.Candidates = append(a.Candidates, s)

	base := baseSectionID(sec)
	if a.covered[base] == nil {
		a.covered[base] = make(map[string]bool)
	}
	for _, span := range s.Evidence {
		if span.Text != "" {
			a.covered[base][normalizeEvidence(span.Text)] = true
		}
	}
	return true
}

// Covered reports whether evidence text from a section was already
// claimed by an earlier strategy.
func (a *Accumulator) Covered(sec note.Section, text string) bool {
	return a.covered[baseSectionID(sec)][normalizeEvidence(text)]
}

// SectionCovered reports whether any candidate claimed evidence from the
// section at all. The structural bypass requires zero coverage.
func (a *Accumulator) SectionCovered(sec note.Section) bool {
	return len(a.covered[baseSectionID(sec)]) > 0
}

// Drop records a suppression without a candidate.
func (a *Accumulator) Drop(rec note.DropRecord) {
	a.Drops = append(a.Drops, rec)
}
