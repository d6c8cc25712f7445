package synthesize

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/fyrsmithlabs/suggestd/internal/note"
)

var (
	// askMarkerRegex flags explicit asks. Bare "requirement to <verb>"
	// phrasings are deliberately absent; see classify.BuildVerbs.
	askMarkerRegex = regexp.MustCompile(`(?i)\b(we should|we need to|we could|let's|suggestion:|proposal:|request to (add|implement|build)|it would be (nice|great) to)\b`)

	// concernRegex flags hedged risk statements, excluded from anchor
	// selection unless paired with an ask or a work verb.
	concernRegex = regexp.MustCompile(`(?i)\b(concern that|concerned that|worried that|worry that|risk that)\b`)

	// roleAssignmentRegex matches "X to do Y" ownership lines.
	roleAssignmentRegex = regexp.MustCompile(`^\s*(?:[-*+]\s+|\d+[.)]\s+)?([A-Z][\w]*(?:\s+[A-Z][\w]*)?)\s+to\s+\w+`)

	// topicAnchorRegex matches "Project Timelines:"-style topic labels.
	topicAnchorRegex = regexp.MustCompile(`^\s*(?:[-*+]\s+)?([A-Z][\w/&' -]{2,48}):(\s|$)`)

	// genericHeadingRegex marks headings too vague to carry a topic.
	genericHeadingRegex = regexp.MustCompile(`(?i)^(discussion( details)?|notes?|general|misc(ellaneous)?|meeting notes|details|updates?|other)$`)

	// statusMarkerRegex strips trailing decision-table status markers.
	statusMarkerRegex = regexp.MustCompile(`(?i)[\s\-–—]*\b(approved|aligned|pending|agreed|done|rejected)\.?\s*$`)
)

// processNoiseHeadings is the fixed vocabulary of section titles that
// never synthesize on their own (emoji-decorated variants included via
// normalization in IsProcessNoise).
var processNoiseHeadings = []string{
	"next steps", "action items", "summary", "recap", "tl;dr", "tldr",
	"follow ups", "follow-ups", "takeaways", "housekeeping",
}

// IsProcessNoise reports whether a heading is process-noise vocabulary.
// Emoji and decoration are stripped before comparison.
func IsProcessNoise(heading string) bool {
	norm := normalizeHeading(heading)
	for _, h := range processNoiseHeadings {
		if norm == h {
			return true
		}
	}
	return false
}

func normalizeHeading(heading string) string {
	var b strings.Builder
	lastSpace := true
	for _, r := range strings.ToLower(heading) {
		switch {
		case unicode.IsLetter(r) || unicode.IsNumber(r) || r == ';' || r == '-':
			b.WriteRune(r)
			lastSpace = false
		default:
			if !lastSpace {
				b.WriteByte(' ')
				lastSpace = true
			}
		}
	}
	return strings.TrimSpace(b.String())
}

// IsGenericHeading reports a heading too vague to anchor a topic.
func IsGenericHeading(heading string) bool {
	return heading == "" || genericHeadingRegex.MatchString(strings.TrimSpace(heading))
}

// HasExplicitAsk reports an explicit ask marker anywhere in the text.
func HasExplicitAsk(text string) bool {
	return askMarkerRegex.MatchString(text)
}

// IsConcernStatement reports hedged risk phrasing.
func IsConcernStatement(text string) bool {
	return concernRegex.MatchString(text)
}

// RoleAssignment returns the assignee of an "X to do Y" line, or "".
func RoleAssignment(line string) string {
	m := roleAssignmentRegex.FindStringSubmatch(line)
	if m == nil {
		return ""
	}
	// "Users to ..." prose reads the same shape; require a short subject.
	if len(strings.Fields(m[1])) > 2 {
		return ""
	}
	return m[1]
}

// TopicAnchor returns the topic label of an anchor line, or "".
func TopicAnchor(line string) string {
	m := topicAnchorRegex.FindStringSubmatch(line)
	if m == nil {
		return ""
	}
	return strings.TrimSpace(m[1])
}

// NormalizeDecisionLine reduces a decision-table row to its decision
// column: the first pipe-delimited cell, with any trailing status marker
// removed.
func NormalizeDecisionLine(line string) string {
	text := strings.TrimSpace(line)
	text = strings.TrimLeft(text, "|")
	if i := strings.Index(text, "|"); i >= 0 {
		text = text[:i]
	}
	text = statusMarkerRegex.ReplaceAllString(text, "")
	return strings.TrimSpace(text)
}

// wordSet tokenizes text for overlap comparisons.
func wordSet(text string) map[string]bool {
	words := make(map[string]bool)
	var current strings.Builder
	for _, r := range strings.ToLower(text) {
		if unicode.IsLetter(r) || unicode.IsNumber(r) {
			current.WriteRune(r)
		} else if current.Len() > 0 {
			words[current.String()] = true
			current.Reset()
		}
	}
	if current.Len() > 0 {
		words[current.String()] = true
	}
	return words
}

// overlapRatio returns |a ∩ b| / |a|.
func overlapRatio(a, b map[string]bool) float64 {
	if len(a) == 0 {
		return 0
	}
	hits := 0
	for w := range a {
		if b[w] {
			hits++
		}
	}
	return float64(hits) / float64(len(a))
}

// normalizeEvidence is the covered-set key for a piece of evidence text.
func normalizeEvidence(text string) string {
	return strings.ToLower(strings.TrimSpace(text))
}

// baseSectionID resolves a (possibly derived) section to the id coverage
// accrues under.
func baseSectionID(sec note.Section) string {
	if sec.Parent != nil {
		return sec.Parent.ID
	}
	return sec.ID
}
