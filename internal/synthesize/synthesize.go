package synthesize

import (
	"strings"

	"github.com/fyrsmithlabs/suggestd/internal/classify"
	"github.com/fyrsmithlabs/suggestd/internal/config"
	"github.com/fyrsmithlabs/suggestd/internal/note"
)

// Synthesizer runs the extraction strategies over classified sections.
type Synthesizer struct {
	classifier *classify.Classifier
	thresholds config.Thresholds
}

// New creates a synthesizer. The classifier is needed to re-classify
// sub-sections produced by topic isolation.
func New(classifier *classify.Classifier, th config.Thresholds) *Synthesizer {
	return &Synthesizer{classifier: classifier, thresholds: th}
}

// Result is the synthesizer output for one note. Derived carries the
// sub-sections topic isolation produced, so later stages can look up
// candidate provenance by sub-section id.
type Result struct {
	Candidates []note.Suggestion
	Drops      []note.DropRecord
	Derived    []note.ClassifiedSection
}

// Run executes the strategy fold. Suppression triage goes first, then
// the strategies in canonical order, each consulting the covered-
// evidence set the earlier ones built.
func (s *Synthesizer) Run(sections []note.ClassifiedSection, ids *note.IDAllocator) Result {
	acc := NewAccumulator()

	live := s.triage(acc, sections, ids)

	for _, sec := range live {
		if mixedTopic(sec.Section) {
			s.topicIsolation(acc, sec, ids)
			continue
		}
		s.canonical(acc, sec, ids)
	}
	for _, sec := range live {
		s.denseParagraph(acc, sec, ids)
	}
	for _, sec := range live {
		s.signalSeeded(acc, sec, ids)
	}
	for _, sec := range live {
		s.semanticIdea(acc, sec, ids)
	}
	for _, sec := range live {
		s.structuralBypass(acc, sec, ids)
	}

	for _, sec := range live {
		if sec.Actionable || acc.SectionCovered(sec.Section) {
			continue
		}
		reason := note.DropNotActionable
		if note.OutOfScopeIntents()[sec.TopIntent] {
			reason = note.DropOutOfScope
		}
		acc.Drop(note.DropRecord{
			Stage:     note.StageClassify,
			Reason:    reason,
			Detail:    "argmax " + string(sec.TopIntent),
			SectionID: sec.ID,
		})
	}

	return Result{Candidates: acc.Candidates, Drops: acc.Drops, Derived: acc.Derived}
}

// triage applies the cross-strategy suppression rules and returns the
// sections the strategies will see. Process-noise sections with role
// assignments become action-items candidates instead of being dropped;
// derivative recaps of earlier concrete sections are dropped outright.
func (s *Synthesizer) triage(acc *Accumulator, sections []note.ClassifiedSection, ids *note.IDAllocator) []note.ClassifiedSection {
	live := make([]note.ClassifiedSection, 0, len(sections))
	var prior []map[string]bool

	for _, sec := range sections {
		if IsProcessNoise(sec.Heading) {
			if lines := assignmentLines(sec.Section); len(lines) > 0 {
				s.actionItems(acc, sec, lines, ids)
			} else {
				acc.Drop(note.DropRecord{
					Stage:     note.StageSynthesize,
					Reason:    note.DropProcessNoise,
					Detail:    sec.Heading,
					SectionID: sec.ID,
				})
			}
			continue
		}

		ws := wordSet(sec.RawText)
		if derivativeOf(ws, prior) {
			acc.Drop(note.DropRecord{
				Stage:     note.StageSynthesize,
				Reason:    note.DropDerivative,
				Detail:    "recap of an earlier section",
				SectionID: sec.ID,
			})
			continue
		}
		if sec.Features.CharCount >= 80 {
			prior = append(prior, ws)
		}
		live = append(live, sec)
	}
	return live
}

// derivativeRatio is the word-overlap level at which a later section is
// treated as a redundant summary of an earlier one.
const derivativeRatio = 0.7

func derivativeOf(ws map[string]bool, prior []map[string]bool) bool {
	if len(ws) < 5 {
		return false
	}
	for _, p := range prior {
		if overlapRatio(ws, p) >= derivativeRatio {
			return true
		}
	}
	return false
}

// assignmentLines returns the "X to do Y" ownership lines of a section.
func assignmentLines(sec note.Section) []note.Line {
	var out []note.Line
	for _, l := range contentLines(sec) {
		if RoleAssignment(l.Text) != "" {
			out = append(out, l)
		}
	}
	return out
}

// actionItems retitles a role-bearing process-noise section as a single
// action-items candidate instead of suppressing it. The title keeps its
// "Action items" prefix through normalization.
func (s *Synthesizer) actionItems(acc *Accumulator, sec note.ClassifiedSection, lines []note.Line, ids *note.IDAllocator) {
	var assignees []string
	seen := make(map[string]bool)
	spans := make([]note.EvidenceSpan, 0, len(lines))
	parts := make([]string, 0, len(lines))
	for _, l := range lines {
		if len(spans) == 4 {
			break
		}
		spans = append(spans, lineSpan(l))
		parts = append(parts, stripMarker(l.Text))
		if a := RoleAssignment(l.Text); a != "" && !seen[a] {
			seen[a] = true
			assignees = append(assignees, a)
		}
	}

	title := "Action items"
	if len(assignees) > 0 {
		title += " for " + strings.Join(assignees, ", ")
	}

	acc.Add(sec.Section, finish(ids, sec, draft{
		typ:      note.TypeIdea,
		typeConf: 0.5,
		title:    title,
		body:     clipBody(strings.Join(parts, " "), 300),
		spans:    spans,
		source:   note.SourceActionItem,
		label:    "action_items",
		conf:     0.6,
	}))
}
