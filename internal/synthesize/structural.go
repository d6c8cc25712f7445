package synthesize

import (
	"strings"

	"github.com/fyrsmithlabs/suggestd/internal/note"
	"github.com/fyrsmithlabs/suggestd/internal/preprocess"
)

// structuralEligible reports whether a section qualifies for the
// last-resort bypass: conceptual, well-structured, signal-poor.
func structuralEligible(sec note.Section) bool {
	return sec.HeadingLevel <= 3 &&
		sec.Features.ListItemCount >= 3 &&
		!sec.Features.HasDates &&
		!preprocess.HasConcreteDelta(sec) &&
		!IsGenericHeading(sec.Heading) &&
		sec.Features.CharCount >= 150
}

// structuralBypass emits exactly one idea from the first bullets of an
// eligible section that no prior strategy touched at all.
func (s *Synthesizer) structuralBypass(acc *Accumulator, sec note.ClassifiedSection, ids *note.IDAllocator) {
	if acc.SectionCovered(sec.Section) {
		return
	}
	if !structuralEligible(sec.Section) {
		return
	}

	var bullets []note.Line
	for _, l := range sec.Body {
		if l.Type != note.LineListItem {
			continue
		}
		bullets = append(bullets, l)
		if len(bullets) == 4 {
			break
		}
	}
	if len(bullets) < 2 {
		return
	}

	parts := make([]string, len(bullets))
	spans := make([]note.EvidenceSpan, len(bullets))
	for i, b := range bullets {
		parts[i] = stripMarker(b.Text)
		spans[i] = lineSpan(b)
	}

	acc.Add(sec.Section, finish(ids, sec, draft{
		typ:      note.TypeIdea,
		typeConf: 0.55,
		title:    strings.TrimSpace(sec.Heading),
		body:     clipBody(strings.Join(parts, " "), 300),
		spans:    spans,
		source:   note.SourceStructural,
		label:    "structural_bypass",
		conf:     0.55,
	}))
}
