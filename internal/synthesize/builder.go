package synthesize

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/fyrsmithlabs/suggestd/internal/classify"
	"github.com/fyrsmithlabs/suggestd/internal/note"
)

// draft is a strategy's intermediate candidate before ids and keys are
// assigned.
type draft struct {
	typ      note.SuggestionType
	typeConf float64
	title    string
	body     string
	spans    []note.EvidenceSpan
	source   note.Source
	label    string
	conf     float64
}

// finish materializes a draft into a Suggestion with an allocated id and
// the content-addressed deduplication key.
func finish(ids *note.IDAllocator, sec note.ClassifiedSection, d draft) note.Suggestion {
	s := note.Suggestion{
		ID:        ids.NextSuggestionID(),
		NoteID:    sec.NoteID,
		SectionID: sec.ID,
		Type:      d.typ,
		Title:     d.title,
		Evidence:  d.spans,
		Scores: note.Scores{
			SectionActionability: sec.ActionableSignal,
			TypeChoice:           d.typeConf,
			Synthesis:            d.conf,
		},
		Metadata: note.Metadata{Source: d.source, Label: d.label, Confidence: d.conf},
	}
	if d.typ == note.TypeProjectUpdate {
		s.Payload = note.Payload{AfterDescription: d.body}
	} else {
		s.Payload = note.Payload{Draft: &note.DraftInitiative{Title: d.title, Description: d.body}}
	}
	s.Key = note.SuggestionKeyFor(sec.NoteID, sec.ID, d.typ, d.title)
	return s
}

// lineSpan is the single-line evidence span for a body line. Trimming
// whitespace keeps the text a substring of the section raw text, which
// the grounding check relies on.
func lineSpan(l note.Line) note.EvidenceSpan {
	return note.EvidenceSpan{StartLine: l.Index, EndLine: l.Index, Text: strings.TrimSpace(l.Text)}
}

var markerPrefixRegex = regexp.MustCompile(`^\s*(?:[-*+]\s+|\d+[.)]\s+)`)

// stripMarker removes a leading bullet or numbering marker.
func stripMarker(s string) string {
	return strings.TrimSpace(markerPrefixRegex.ReplaceAllString(s, ""))
}

// clipBody truncates extractive body text at a word boundary.
func clipBody(text string, max int) string {
	text = strings.TrimSpace(text)
	if utf8.RuneCountInString(text) <= max {
		return text
	}
	runes := []rune(text)
	cut := max
	for cut > 0 && !unicode.IsSpace(runes[cut]) {
		cut--
	}
	if cut == 0 {
		cut = max
	}
	return strings.TrimSpace(string(runes[:cut]))
}

var askPrefixRegex = regexp.MustCompile(`(?i)^(we should|we need to|we could|let's|it would be (?:nice|great) to|suggestion:|proposal:|request to)\s*`)

// imperativeTitle rewrites an anchor sentence into imperative title form:
// marker and ask-prefix stripped, decision-table dressing removed,
// trailing period dropped, first letter capitalized.
func imperativeTitle(sentence string) string {
	t := stripMarker(sentence)
	t = NormalizeDecisionLine(t)
	t = askPrefixRegex.ReplaceAllString(t, "")
	t = strings.TrimSuffix(strings.TrimSpace(t), ".")
	return capitalize(strings.TrimSpace(t))
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + s[size:]
}

// containsBuildVerb reports whether any canonical work verb appears as a
// word anywhere in the text.
func containsBuildVerb(text string) bool {
	ws := wordSet(text)
	for _, v := range classify.BuildVerbs() {
		if ws[v] {
			return true
		}
	}
	return false
}

// contentLines filters a section body down to list items and paragraphs.
func contentLines(sec note.Section) []note.Line {
	var out []note.Line
	for _, l := range sec.Body {
		if l.Type == note.LineListItem || l.Type == note.LineParagraph {
			out = append(out, l)
		}
	}
	return out
}
