package synthesize

import (
	"regexp"

	"github.com/fyrsmithlabs/suggestd/internal/classify"
	"github.com/fyrsmithlabs/suggestd/internal/note"
)

// rescueConfidence is the minimum pattern confidence at which a signal
// match rescues a section the actionability gate already dropped.
const rescueConfidence = 0.65

// SignalPattern is one fixed extraction pattern family. Patterns scan
// section text independently of the actionability gate.
type SignalPattern struct {
	Label      string
	Type       note.SuggestionType
	Confidence float64
	Pattern    *regexp.Regexp
}

// SignalPatterns returns the canonical pattern families in scan order.
func SignalPatterns() []SignalPattern {
	return []SignalPattern{
		{
			Label: "feature_demand", Type: note.TypeIdea, Confidence: 0.7,
			Pattern: regexp.MustCompile(`(?i)\b(customers? (are |keep )?asking for|feature request|users? (want|have been asking)|demand for|keeps coming up)\b`),
		},
		{
			Label: "bug_report", Type: note.TypeBug, Confidence: 0.75,
			Pattern: regexp.MustCompile(`(?i)\b(bug|broken|crash(es|ing)?|doesn't work|does not work|regression|error(s)? (when|on|in))\b`),
		},
		{
			Label: "risk_flag", Type: note.TypeRisk, Confidence: 0.65,
			Pattern: regexp.MustCompile(`(?i)\b(at risk|blocker|blocked on|might slip|could delay|single point of failure)\b`),
		},
	}
}

// signalSeeded scans every live section with the fixed pattern families.
// A match on a non-actionable section rescues it when the pattern's
// confidence clears the rescue bar. At most one candidate per family per
// section; evidence already claimed by earlier strategies is skipped.
func (s *Synthesizer) signalSeeded(acc *Accumulator, sec note.ClassifiedSection, ids *note.IDAllocator) {
	for _, p := range SignalPatterns() {
		if !sec.Actionable && p.Confidence < rescueConfidence {
			continue
		}
		line, sentence, ok := firstSignalMatch(sec.Section, p.Pattern)
		if !ok {
			continue
		}
		if acc.Covered(sec.Section, sentence) {
			continue
		}

		acc.Add(sec.Section, finish(ids, sec, draft{
			typ:      p.Type,
			typeConf: p.Confidence,
			title:    imperativeTitle(sentence),
			body:     clipBody(stripMarker(sentence), 300),
			spans: []note.EvidenceSpan{{
				StartLine: line.Index,
				EndLine:   line.Index,
				Text:      sentence,
			}},
			source: note.SourceSignal,
			label:  p.Label,
			conf:   p.Confidence,
		}))
	}
}

// firstSignalMatch returns the first line and sentence a pattern hits.
func firstSignalMatch(sec note.Section, re *regexp.Regexp) (note.Line, string, bool) {
	for _, line := range contentLines(sec) {
		if !re.MatchString(line.Text) {
			continue
		}
		for _, sentence := range classify.SplitSentences(line.Text) {
			if re.MatchString(sentence) {
				return line, sentence, true
			}
		}
		return line, line.Text, true
	}
	return note.Line{}, "", false
}
