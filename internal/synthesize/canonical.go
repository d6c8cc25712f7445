package synthesize

import (
	"strings"

	"github.com/fyrsmithlabs/suggestd/internal/classify"
	"github.com/fyrsmithlabs/suggestd/internal/note"
)

// anchorScore rates a line as a canonical anchor. Hedged concern lines
// are excluded unless paired with an explicit ask or a work verb.
func anchorScore(line string) (float64, bool) {
	text := stripMarker(line)
	if text == "" {
		return 0, false
	}
	hasAsk := HasExplicitAsk(text)
	hasVerb := sentenceWithWorkVerb(text)
	if IsConcernStatement(text) && !hasAsk && !hasVerb {
		return 0, false
	}
	switch {
	case hasAsk:
		return 1.0, true
	case hasVerb:
		return 0.9, true
	case containsBuildVerb(text):
		return 0.55, true
	}
	return 0, false
}

func sentenceWithWorkVerb(text string) bool {
	for _, s := range classify.SplitSentences(text) {
		if classify.BeginsWithWorkVerb(stripMarker(s)) {
			return true
		}
	}
	return false
}

// anchorSentence picks the sentence inside an anchor line the title and
// body come from: first with an ask marker, then first imperative, then
// the first sentence.
func anchorSentence(line string) string {
	sentences := classify.SplitSentences(stripMarker(line))
	if len(sentences) == 0 {
		return stripMarker(line)
	}
	for _, s := range sentences {
		if HasExplicitAsk(s) {
			return s
		}
	}
	for _, s := range sentences {
		if classify.BeginsWithWorkVerb(stripMarker(s)) {
			return s
		}
	}
	return sentences[0]
}

// canonical runs the per-section synthesis over one actionable section:
// strongest anchor line, imperative title, extractive body capped at 300
// chars, anchor span plus at most one supporting line.
func (s *Synthesizer) canonical(acc *Accumulator, sec note.ClassifiedSection, ids *note.IDAllocator) {
	if !sec.Actionable {
		return
	}

	lines := contentLines(sec.Section)
	if len(lines) == 0 {
		return
	}

	anchorIdx := -1
	best := 0.0
	concernSeen := false
	for i, l := range lines {
		if IsConcernStatement(l.Text) {
			concernSeen = true
		}
		if score, ok := anchorScore(l.Text); ok && score > best {
			best = score
			anchorIdx = i
		}
	}

	// Heading fallback is suppressed without an explicit ask; an
	// actionable section still emits, anchored on its first substantive
	// sentence, so the later stages decide its fate with evidence in hand.
	if anchorIdx < 0 {
		if concernSeen && allConcerns(lines) {
			acc.Drop(note.DropRecord{
				Stage:     note.StageSynthesize,
				Reason:    note.DropConcernStatement,
				Detail:    "all candidate anchors are hedged concern statements",
				SectionID: sec.ID,
			})
			return
		}
		anchorIdx = 0
		best = 0.5
	}

	anchor := lines[anchorIdx]
	sentence := anchorSentence(anchor.Text)
	title := imperativeTitle(sentence)
	if title == "" {
		title = strings.TrimSpace(sec.Heading)
	}

	spans := []note.EvidenceSpan{lineSpan(anchor)}
	body := NormalizeDecisionLine(sentence)
	if supporting, ok := supportingLine(lines, anchorIdx, sentence); ok {
		spans = append(spans, lineSpan(supporting))
		body = body + " " + firstSentence(supporting.Text)
	}

	acc.Add(sec.Section, finish(ids, sec, draft{
		typ:      sec.SuggestedType,
		typeConf: sec.TypeConfidence,
		title:    title,
		body:     clipBody(body, 300),
		spans:    spans,
		source:   note.SourceCanonical,
		label:    "anchor_line",
		conf:     best,
	}))
}

func allConcerns(lines []note.Line) bool {
	for _, l := range lines {
		text := stripMarker(l.Text)
		if text == "" {
			continue
		}
		if !IsConcernStatement(text) {
			return false
		}
	}
	return true
}

// supportingLine picks the next content line after the anchor, skipping
// rows that normalize to the same decision text as the anchor so
// duplicate table rows do not pad the evidence.
func supportingLine(lines []note.Line, anchorIdx int, anchorSentence string) (note.Line, bool) {
	anchorKey := note.NormalizeTitleKey(NormalizeDecisionLine(anchorSentence))
	for _, l := range lines[anchorIdx+1:] {
		text := stripMarker(l.Text)
		if text == "" {
			continue
		}
		if note.NormalizeTitleKey(NormalizeDecisionLine(text)) == anchorKey {
			continue
		}
		return l, true
	}
	return note.Line{}, false
}

func firstSentence(line string) string {
	sentences := classify.SplitSentences(stripMarker(line))
	if len(sentences) == 0 {
		return stripMarker(line)
	}
	return NormalizeDecisionLine(sentences[0])
}
