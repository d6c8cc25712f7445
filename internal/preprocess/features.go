package preprocess

import (
	"regexp"
	"strings"

	"github.com/fyrsmithlabs/suggestd/internal/note"
)

var (
	dateRegex = regexp.MustCompile(`(?i)\b(jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec)[a-z]*\.?\s+\d{1,2}\b|\b\d{4}-\d{2}-\d{2}\b|\b\d{1,2}/\d{1,2}(/\d{2,4})?\b`)
	durationRegex = regexp.MustCompile(`(?i)\b\d+\s*(day|week|month|sprint|hour)s?\b`)
	metricRegex   = regexp.MustCompile(`\b\d+(\.\d+)?%|\b\d+(\.\d+)?x\b`)
	quarterRegex  = regexp.MustCompile(`(?i)\bq[1-4]\b|\bv\d+(\.\d+)+\b`)
	// scheduleEventRegex is the single canonical schedule-event keyword
	// table. Word boundaries matter: "eta" must not match inside
	// "details" or "beta", nor "ship" inside "relationship".
	scheduleEventRegex = regexp.MustCompile(`(?i)\b(launch|deploy|ship|release|rollout|go-live|eta|milestone)\b`)
	initiativeRegex = regexp.MustCompile(`(?i)\b(initiative|project|workstream|roadmap|epic|program)\b`)
)

// Features computes the precomputed structural signal bag for a section.
func Features(sec note.Section) note.StructuralFeatures {
	f := note.StructuralFeatures{}
	nonBlank := 0
	for _, l := range sec.Body {
		if l.Type == note.LineBlank {
			continue
		}
		nonBlank++
		if l.Type == note.LineListItem {
			f.ListItemCount++
		}
	}
	f.LineCount = nonBlank
	f.CharCount = len(strings.TrimSpace(sec.RawText))

	text := sec.Heading + "\n" + sec.RawText
	f.HasDates = dateRegex.MatchString(text) || durationRegex.MatchString(text)
	f.HasMetrics = metricRegex.MatchString(text)
	f.HasQuarterOrVer = quarterRegex.MatchString(text)
	f.HasLaunchWord = scheduleEventRegex.MatchString(text)

	if nonBlank > 0 {
		hits := len(initiativeRegex.FindAllString(text, -1))
		f.InitiativeDense = float64(hits) / float64(nonBlank)
	}
	return f
}

// HasScheduleEvent reports a schedule-event keyword in text. Type
// arbitration and the structural feature bag both consult this table;
// it must stay the only copy of the vocabulary.
func HasScheduleEvent(text string) bool {
	return scheduleEventRegex.MatchString(text)
}

// HasConcreteDelta reports whether a section contains a concrete schedule
// delta: a date, a duration, or a moved/delayed/pushed-to phrasing. Type
// arbitration and the structural bypass both consult this.
func HasConcreteDelta(sec note.Section) bool {
	return HasDeltaText(sec.Heading + "\n" + sec.RawText)
}

// HasDeltaText is the text-level form of HasConcreteDelta, used where a
// single sentence must be judged on its own.
func HasDeltaText(text string) bool {
	if dateRegex.MatchString(text) || durationRegex.MatchString(text) {
		return true
	}
	return movedToRegex.MatchString(text)
}

var movedToRegex = regexp.MustCompile(`(?i)\b(moved|delayed|pushed|postponed|slipped)\s+(to|by|until|from)\b`)
