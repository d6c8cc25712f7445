package synthesize

import (
	"github.com/fyrsmithlabs/suggestd/internal/classify"
	"github.com/fyrsmithlabs/suggestd/internal/note"
	"github.com/fyrsmithlabs/suggestd/internal/preprocess"
)

// denseEligible reports whether a section qualifies for dense-paragraph
// extraction: no bullets, no topic anchors, and either a single long
// content line or 250+ chars of prose.
func denseEligible(sec note.Section) bool {
	if sec.Features.ListItemCount > 0 {
		return false
	}
	if len(topicAnchors(sec)) > 0 {
		return false
	}
	lines := contentLines(sec)
	if len(lines) == 1 && len(lines[0].Text) >= 120 {
		return true
	}
	return sec.Features.CharCount >= 250
}

// signalBearing reports whether a sentence carries enough of its own
// signal to stand alone as a candidate.
func signalBearing(sentence string) bool {
	s := stripMarker(sentence)
	if s == "" {
		return false
	}
	if IsConcernStatement(s) && !HasExplicitAsk(s) {
		return false
	}
	return HasExplicitAsk(s) ||
		classify.BeginsWithWorkVerb(s) ||
		preprocess.HasDeltaText(s)
}

// denseParagraph splits eligible prose sections into sentences and emits
// one candidate per signal-bearing sentence. The type of each candidate
// comes from that sentence alone; inheriting the parent section's type
// here is the type-contamination regression this guards against.
func (s *Synthesizer) denseParagraph(acc *Accumulator, sec note.ClassifiedSection, ids *note.IDAllocator) {
	if !denseEligible(sec.Section) {
		return
	}

	for _, line := range contentLines(sec.Section) {
		for _, sentence := range classify.SplitSentences(line.Text) {
			if !signalBearing(sentence) {
				continue
			}
			if acc.Covered(sec.Section, sentence) {
				continue
			}

			typ, typeConf := classify.TypeForSentence(sentence)
			acc.Add(sec.Section, finish(ids, sec, draft{
				typ:      typ,
				typeConf: typeConf,
				title:    imperativeTitle(sentence),
				body:     clipBody(stripMarker(sentence), 300),
				spans: []note.EvidenceSpan{{
					StartLine: line.Index,
					EndLine:   line.Index,
					Text:      sentence,
				}},
				source: note.SourceDense,
				label:  "dense_sentence",
				conf:   0.7,
			}))
		}
	}
}
