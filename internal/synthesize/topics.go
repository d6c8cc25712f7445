package synthesize

import (
	"fmt"

	"github.com/fyrsmithlabs/suggestd/internal/note"
	"github.com/fyrsmithlabs/suggestd/internal/preprocess"
)

// mixedTopic reports whether a section needs topic isolation before
// synthesis: a generic or oversized section carrying at least two
// distinct topic-anchor lines.
func mixedTopic(sec note.Section) bool {
	if !IsGenericHeading(sec.Heading) &&
		sec.Features.ListItemCount < 5 &&
		sec.Features.CharCount < 500 {
		return false
	}
	return len(topicAnchors(sec)) >= 2
}

func topicAnchors(sec note.Section) []int {
	var idxs []int
	seen := make(map[string]bool)
	for i, l := range sec.Body {
		if l.Type != note.LineListItem && l.Type != note.LineParagraph {
			continue
		}
		topic := TopicAnchor(l.Text)
		if topic == "" || seen[topic] {
			continue
		}
		seen[topic] = true
		idxs = append(idxs, i)
	}
	return idxs
}

// topicIsolation splits a mixed-topic section at its anchor lines,
// classifies each derived sub-section independently, and runs canonical
// synthesis over it. Each topic gets isolated evidence; nothing from a
// sibling topic can leak into its suggestion body.
func (s *Synthesizer) topicIsolation(acc *Accumulator, sec note.ClassifiedSection, ids *note.IDAllocator) {
	anchors := topicAnchors(sec.Section)
	if len(anchors) < 2 {
		return
	}

	for i, start := range anchors {
		end := len(sec.Body)
		if i+1 < len(anchors) {
			end = anchors[i+1]
		}
		sub := preprocess.SubSection(sec.Section, fmt.Sprintf("t%d", i+1), sec.Body[start:end])
		sub.Heading = TopicAnchor(sec.Body[start].Text)

		classified := s.classifier.Classify(sub)
		if !classified.Actionable {
			continue
		}
		acc.Derived = append(acc.Derived, classified)
		s.canonical(acc, classified, ids)
	}
}
