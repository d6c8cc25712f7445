package synthesize

import (
	"github.com/fyrsmithlabs/suggestd/internal/classify"
	"github.com/fyrsmithlabs/suggestd/internal/note"
)

// semanticVocab is the strategy/mechanism/feature vocabulary. Two
// distinct tokens in a section unlock one idea candidate regardless of
// the actionability gate.
var semanticVocab = []string{
	"strategy", "mechanism", "feature", "workflow", "architecture",
	"platform", "capability", "automation", "integration", "experience",
	"framework", "model",
}

func semanticTokens(text string) map[string]bool {
	ws := wordSet(text)
	hits := make(map[string]bool)
	for _, tok := range semanticVocab {
		if ws[tok] || ws[tok+"s"] {
			hits[tok] = true
		}
	}
	return hits
}

// semanticIdea emits at most one idea per section, grounded in the
// sentence that carries the most vocabulary tokens (earliest wins ties).
func (s *Synthesizer) semanticIdea(acc *Accumulator, sec note.ClassifiedSection, ids *note.IDAllocator) {
	if len(semanticTokens(sec.Heading+" "+sec.RawText)) < 2 {
		return
	}

	var bestLine note.Line
	var bestSentence string
	bestCount := 0
	for _, line := range contentLines(sec.Section) {
		for _, sentence := range classify.SplitSentences(line.Text) {
			n := len(semanticTokens(sentence))
			if n > bestCount {
				bestCount = n
				bestLine = line
				bestSentence = sentence
			}
		}
	}
	if bestCount == 0 || acc.Covered(sec.Section, bestSentence) {
		return
	}

	acc.Add(sec.Section, finish(ids, sec, draft{
		typ:      note.TypeIdea,
		typeConf: 0.6,
		title:    imperativeTitle(bestSentence),
		body:     clipBody(stripMarker(bestSentence), 300),
		spans:    []note.EvidenceSpan{lineSpan(bestLine)},
		source:   note.SourceSemantic,
		label:    "semantic_idea",
		conf:     0.6,
	}))
}
