package classify

import (
	"regexp"
	"strings"

	"github.com/fyrsmithlabs/suggestd/internal/note"
	"github.com/fyrsmithlabs/suggestd/internal/preprocess"
)

// KeywordFamily is one named rule table feeding an intent score.
type KeywordFamily struct {
	Name   string
	Intent note.Intent
	Weight float64
	Terms  []string
}

// DefaultFamilies returns the canonical intent keyword tables. There is
// one table per concept; synthesis consults the same tables rather than
// carrying its own copies.
func DefaultFamilies() []KeywordFamily {
	return []KeywordFamily{
		{
			Name: "timeline", Intent: note.IntentPlanChange, Weight: 0.35,
			Terms: []string{
				"delayed", "moved to", "pushed to", "pushed back", "postponed",
				"rescheduled", "slipping", "slipped", "deadline", "new eta",
				"behind schedule", "ahead of schedule", "timeline change",
			},
		},
		{
			Name: "scope", Intent: note.IntentPlanChange, Weight: 0.3,
			Terms: []string{
				"descope", "descoped", "cut from scope", "out of scope now",
				"added to scope", "expand the scope", "scope change", "re-scoped",
			},
		},
		{
			Name: "decision", Intent: note.IntentPlanChange, Weight: 0.25,
			Terms: []string{
				"decided to", "agreed to", "approved", "signed off", "we will now",
				"switching to", "going with",
			},
		},
		{
			Name: "opportunity", Intent: note.IntentNewWorkstream, Weight: 0.3,
			Terms: []string{
				"we should", "we could", "idea:", "proposal", "proposed",
				"new initiative", "opportunity to", "it would be nice",
				"suggestion:", "what if we",
			},
		},
		{
			Name: "build", Intent: note.IntentNewWorkstream, Weight: 0.25,
			Terms: buildVerbTerms(),
		},
		{
			Name: "research", Intent: note.IntentResearch, Weight: 0.35,
			Terms: []string{
				"investigate", "explore", "research", "evaluate", "spike on",
				"dig into", "look into", "benchmark",
			},
		},
		{
			Name: "status", Intent: note.IntentStatus, Weight: 0.35,
			Terms: []string{
				"on track", "no changes", "completed", "done last week",
				"shipped last", "status update", "progress update", "as planned",
				"going well", "everything is",
			},
		},
		{
			Name: "communication", Intent: note.IntentCommunication, Weight: 0.4,
			Terms: []string{
				"fyi", "reminder", "announcement", "all-hands", "send an email",
				"share with the team", "memo", "newsletter", "circulate",
			},
		},
		{
			Name: "calendar", Intent: note.IntentCalendar, Weight: 0.4,
			Terms: []string{
				"schedule a meeting", "schedule a call", "calendar", "send an invite",
				"standup", "1:1", "agenda for", "book a room", "move the meeting",
			},
		},
		{
			Name: "micro", Intent: note.IntentMicroTasks, Weight: 0.35,
			Terms: []string{
				"todo:", "quick fix", "follow up with", "ping", "check in with",
				"small task", "housekeeping",
			},
		},
		{
			Name: "ownership", Intent: note.IntentMicroTasks, Weight: 0.15,
			Terms: []string{
				"assigned to", "owner:", "responsible for", "will own",
			},
		},
	}
}

// BuildVerbs is the single canonical imperative work-verb table, shared
// by classification (imperative floor) and synthesis (anchor and ask
// detection). Keep this the only copy.
//
// Known gap, kept intentionally: bare "requirement to add X" /
// "requirement to build X" phrasings are not recognized as asks. The
// behavior with the gap is canonical; widening it changes emission
// counts downstream.
func BuildVerbs() []string {
	return []string{
		"add", "implement", "build", "fix", "enable", "create", "integrate",
		"support", "improve", "refactor", "migrate", "automate", "introduce",
		"extend", "expose", "ship", "replace", "redesign", "streamline",
	}
}

func buildVerbTerms() []string {
	verbs := BuildVerbs()
	terms := make([]string, len(verbs))
	for i, v := range verbs {
		terms[i] = v + " "
	}
	return terms
}

// SpecVocab is the fixed specification/framework vocabulary. Sections
// dominated by it describe mechanisms, not schedule mutations.
var SpecVocab = []string{
	"scoring", "eligibility", "framework", "weighting", "additionality",
	"prioritization", "rubric", "criteria", "heuristic", "formula",
}

// strategyHeadingRegex marks strategic-narrative headings.
var strategyHeadingRegex = regexp.MustCompile(`(?i)\b(strategy|approach|framework|system)\b`)

// bugTermRegex marks defect language for type arbitration.
var bugTermRegex = regexp.MustCompile(`(?i)\b(bug|broken|crash(es|ing)?|error(s)? (when|on|in)|fails?( to)?|doesn't work|does not work|regression)\b`)

// riskTermRegex marks risk phrasing for type arbitration.
var riskTermRegex = regexp.MustCompile(`(?i)\b(risk|at risk|blocker|blocked on|dependency on|might slip|could delay|jeopard)\b`)

// familyMatcher is a compiled keyword family.
type familyMatcher struct {
	KeywordFamily
	regex *regexp.Regexp
}

// compileFamilies builds case-insensitive word-boundary matchers for
// each family. Invalid tables are a programming error; terms are plain
// words and phrases so quoting keeps them literal.
func compileFamilies(families []KeywordFamily) []familyMatcher {
	compiled := make([]familyMatcher, 0, len(families))
	for _, f := range families {
		quoted := make([]string, len(f.Terms))
		for i, t := range f.Terms {
			quoted[i] = regexp.QuoteMeta(strings.ToLower(t))
		}
		re := regexp.MustCompile(`(?i)\b(` + strings.Join(quoted, "|") + `)`)
		compiled = append(compiled, familyMatcher{KeywordFamily: f, regex: re})
	}
	return compiled
}

// StrategyHeading reports whether a heading reads as strategic narrative.
func StrategyHeading(heading string) bool {
	return strategyHeadingRegex.MatchString(heading)
}

// SpecLike reports whether a section matches the specification/framework
// vocabulary: heading hit, or at least two distinct body tokens.
func SpecLike(sec note.Section) bool {
	heading := strings.ToLower(sec.Heading)
	body := strings.ToLower(sec.RawText)
	distinct := 0
	for _, term := range SpecVocab {
		if strings.Contains(heading, term) {
			return true
		}
		if strings.Contains(body, term) {
			distinct++
		}
	}
	return distinct >= 2
}

// HasScheduleEvent reports a schedule-event keyword in the section text.
// The vocabulary lives in preprocess alongside the other feature tables;
// matching is on word boundaries.
func HasScheduleEvent(sec note.Section) bool {
	return preprocess.HasScheduleEvent(sec.Heading + "\n" + sec.RawText)
}
