// Package titles is the final deterministic title rewrite: weak-prefix
// stripping, imperative-mood substitution, type prefixing, delta
// enrichment for vague project updates, and the 80-character cap.
// Normalization is idempotent; running it twice is a no-op.
package titles

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/fyrsmithlabs/suggestd/internal/note"
)

// maxTitleLen is the hard cap, applied at a word boundary.
const maxTitleLen = 80

// weakPrefixRegex strips hedged lead-ins until none remain.
var weakPrefixRegex = regexp.MustCompile(`(?i)^(maybe we could|maybe|perhaps|we should|we could|we need to|suggestion:|proposal:|idea:|i think we should|it would be (?:nice|great) to)\s+`)

// typePrefixes maps suggestion types to their display prefix.
var typePrefixes = map[note.SuggestionType]string{
	note.TypeProjectUpdate: "Update:",
	note.TypeIdea:          "Idea:",
	note.TypeRisk:          "Risk:",
	note.TypeBug:           "Bug:",
}

// imperativeSubstitutions rewrites a non-imperative leading verb into
// the imperative form. Keys are lowercase first words.
var imperativeSubstitutions = map[string]string{
	"adding":        "Add",
	"builds":        "Build",
	"building":      "Build",
	"implementing":  "Implement",
	"creating":      "Create",
	"fixing":        "Fix",
	"enabling":      "Enable",
	"improving":     "Improve",
	"exploring":     "Explore",
	"investigating": "Investigate",
	"migrating":     "Migrate",
	"introducing":   "Introduce",
	"supporting":    "Support",
}

// deltaTokenRegex finds a concrete schedule token in evidence text for
// enriching vague project-update titles.
var deltaTokenRegex = regexp.MustCompile(`(?i)\b(?:moved|delayed|pushed|postponed|slipped)\s+(?:to|until|by|from)\s+[A-Za-z]{3,9}\.?\s?\d{0,2}\b|\b(?:jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec)[a-z]*\.?\s+\d{1,2}\b|\b\d{4}-\d{2}-\d{2}\b`)

// Normalize rewrites one suggestion's title in place and returns the
// updated suggestion. The suggestion key is recomputed from the final
// title so dedup stays aligned with what the reader sees.
func Normalize(s note.Suggestion) note.Suggestion {
	title := normalizeTitle(s)
	if title == s.Title {
		return s
	}
	s.Title = title
	s.Key = note.SuggestionKeyFor(s.NoteID, s.SectionID, s.Type, s.Title)
	if s.Payload.Draft != nil {
		s.Payload.Draft.Title = title
	}
	return s
}

// NormalizeAll rewrites every candidate.
func NormalizeAll(candidates []note.Suggestion) []note.Suggestion {
	out := make([]note.Suggestion, len(candidates))
	for i, c := range candidates {
		out[i] = Normalize(c)
	}
	return out
}

func normalizeTitle(s note.Suggestion) string {
	body := strings.TrimSpace(s.Title)

	// Strip an existing type prefix so re-normalization starts clean.
	for _, p := range typePrefixes {
		if strings.HasPrefix(body, p+" ") {
			body = strings.TrimSpace(strings.TrimPrefix(body, p))
			break
		}
	}

	for {
		stripped := weakPrefixRegex.ReplaceAllString(body, "")
		if stripped == body {
			break
		}
		body = stripped
	}
	body = strings.TrimSuffix(strings.TrimSpace(body), ".")
	body = substituteLeadingVerb(body)
	body = capitalize(body)

	if s.Type == note.TypeProjectUpdate {
		body = enrichWithDelta(body, s.Evidence)
	}

	// Action-items titles keep their own prefix instead of a type one.
	if strings.HasPrefix(body, "Action items") {
		return clip(body)
	}

	return clip(typePrefixes[s.Type] + " " + body)
}

// substituteLeadingVerb swaps a recognized non-imperative leading verb
// for its imperative form.
func substituteLeadingVerb(body string) string {
	fields := strings.Fields(body)
	if len(fields) == 0 {
		return body
	}
	if sub, ok := imperativeSubstitutions[strings.ToLower(fields[0])]; ok {
		fields[0] = sub
		return strings.Join(fields, " ")
	}
	return body
}

// enrichWithDelta appends a concrete schedule token from the evidence to
// a vague project-update title. Titles that already carry a delta token
// or a digit are left alone, which keeps the rewrite idempotent.
func enrichWithDelta(body string, evidence []note.EvidenceSpan) string {
	if deltaTokenRegex.MatchString(body) || strings.ContainsAny(body, "0123456789") {
		return body
	}
	for _, span := range evidence {
		if m := deltaTokenRegex.FindString(span.Text); m != "" {
			return body + " (" + strings.TrimSpace(m) + ")"
		}
	}
	return body
}

// clip enforces the hard cap at a word boundary, never mid-word.
func clip(title string) string {
	title = strings.TrimSpace(title)
	if utf8.RuneCountInString(title) <= maxTitleLen {
		return title
	}
	runes := []rune(title)
	cut := maxTitleLen
	for cut > 0 && !unicode.IsSpace(runes[cut]) {
		cut--
	}
	if cut == 0 {
		cut = maxTitleLen
	}
	return strings.TrimSpace(string(runes[:cut]))
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + s[size:]
}
