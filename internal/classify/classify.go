// Package classify scores section intent, decides actionability, and
// assigns the suggestion type a section would produce. Scoring is fully
// rule-based; an optional IntentHinter can contribute an auxiliary score
// that is blended in, never trusted on its own.
package classify

import (
	"math"

	"github.com/fyrsmithlabs/suggestd/internal/config"
	"github.com/fyrsmithlabs/suggestd/internal/note"
	"github.com/fyrsmithlabs/suggestd/internal/preprocess"
)

// IntentHinter is the optional auxiliary classifier hook. Implementations
// may be backed by anything (including an LLM); only this contract is in
// scope. Errors and missing labels are tolerated.
type IntentHinter interface {
	HintIntent(sectionText string) (map[note.Intent]float64, error)
}

// hintBlend is the weight given to the auxiliary score when present.
const hintBlend = 0.2

// imperativeFloor is the actionable-signal floor applied when a sentence
// opens with a recognized work verb.
const imperativeFloor = 0.9

// Classifier scores sections against the canonical rule tables.
type Classifier struct {
	families   []familyMatcher
	thresholds config.Thresholds
	hinter     IntentHinter
}

// New creates a classifier. hinter may be nil.
func New(th config.Thresholds, hinter IntentHinter) *Classifier {
	return &Classifier{
		families:   compileFamilies(DefaultFamilies()),
		thresholds: th,
		hinter:     hinter,
	}
}

// Classify produces the ClassifiedSection for one section. The result is
// created once and never written back to.
func (c *Classifier) Classify(sec note.Section) note.ClassifiedSection {
	text := sec.Heading + "\n" + sec.RawText

	scores := c.intentScores(sec, text)
	top := argmax(scores)

	signal := c.actionableSignal(sec, scores)

	// Imperative-verb floor: a sentence opening with a work verb floors
	// the signal, unless calendar/communication dominance overrides it.
	imperative := hasImperativeSentence(sec.RawText)
	domGate := scores[note.IntentCommunication] >= c.thresholds.OutOfScope ||
		scores[note.IntentCalendar] >= c.thresholds.OutOfScope
	if imperative && !domGate && signal < imperativeFloor {
		signal = imperativeFloor
	}

	oos := math.Max(
		math.Max(scores[note.IntentCommunication], scores[note.IntentCalendar]),
		math.Max(scores[note.IntentStatus], scores[note.IntentMicroTasks]),
	)

	actionable := c.isActionable(top, signal, imperative, domGate)

	typ, typeConf := c.arbitrateType(sec, scores, top)

	return note.ClassifiedSection{
		Section:          sec,
		IntentScores:     scores,
		TopIntent:        top,
		Actionable:       actionable,
		ActionableSignal: signal,
		OutOfScopeSignal: oos,
		SuggestedType:    typ,
		TypeConfidence:   typeConf,
	}
}

// intentScores counts weighted family matches plus structural bumps,
// then blends the auxiliary hint when available.
func (c *Classifier) intentScores(sec note.Section, text string) map[note.Intent]float64 {
	scores := make(map[note.Intent]float64, len(note.Intents()))
	for _, intent := range note.Intents() {
		scores[intent] = 0
	}

	for _, fm := range c.families {
		hits := len(fm.regex.FindAllString(text, -1))
		if hits == 0 {
			continue
		}
		if hits > 3 {
			hits = 3
		}
		scores[fm.Intent] += fm.Weight * float64(hits)
	}

	// Structural features nudge, they do not decide.
	if sec.Features.ListItemCount >= 3 {
		scores[note.IntentNewWorkstream] += 0.1
	}
	if sec.Features.HasDates {
		scores[note.IntentPlanChange] += 0.1
	}
	if sec.Features.InitiativeDense > 0.3 {
		scores[note.IntentNewWorkstream] += 0.05
	}

	for intent := range scores {
		scores[intent] = clamp01(scores[intent])
	}

	if c.hinter != nil {
		if hint, err := c.hinter.HintIntent(text); err == nil && hint != nil {
			for _, intent := range note.Intents() {
				if h, ok := hint[intent]; ok {
					scores[intent] = clamp01((1-hintBlend)*scores[intent] + hintBlend*clamp01(h))
				}
			}
		}
	}

	return scores
}

// argmax returns the highest-scoring intent, breaking ties in the
// canonical label order so classification stays deterministic.
func argmax(scores map[note.Intent]float64) note.Intent {
	best := note.IntentStatus
	bestScore := -1.0
	for _, intent := range note.Intents() {
		if scores[intent] > bestScore {
			best = intent
			bestScore = scores[intent]
		}
	}
	return best
}

// actionableSignal blends the work-bearing intent scores with structure.
func (c *Classifier) actionableSignal(sec note.Section, scores map[note.Intent]float64) float64 {
	signal := math.Max(scores[note.IntentPlanChange],
		math.Max(scores[note.IntentNewWorkstream], scores[note.IntentResearch]*0.8))
	if sec.Features.ListItemCount >= 3 {
		signal += 0.1
	}
	if sec.Features.HasLaunchWord {
		signal += 0.05
	}
	return clamp01(signal)
}

// isActionable applies the gate. Plan-change argmax is always actionable,
// a standing invariant rather than a tunable. Communication/calendar
// argmax suppresses the section, except an imperative sentence rescues it
// unless the dominance gate fired; the asymmetry is deliberate.
func (c *Classifier) isActionable(top note.Intent, signal float64, imperative, domGate bool) bool {
	if top == note.IntentPlanChange {
		return true
	}
	if note.OutOfScopeIntents()[top] {
		if (top == note.IntentCommunication || top == note.IntentCalendar) && imperative && !domGate {
			return signal >= c.thresholds.Action
		}
		return false
	}
	return signal >= c.thresholds.Action
}

// arbitrateType picks the suggestion type for a section.
//
// Precedence: a concrete schedule delta or schedule-event keyword always
// wins and yields project_update; strategic-narrative bullet lists are
// forced to idea even when plan-change intent dominates; spec-like
// sections are never project_update; defect and risk phrasing map to bug
// and risk; otherwise the type follows the argmax intent.
func (c *Classifier) arbitrateType(sec note.Section, scores map[note.Intent]float64, top note.Intent) (note.SuggestionType, float64) {
	delta := preprocess.HasConcreteDelta(sec)
	event := HasScheduleEvent(sec)

	margin := scoreMargin(scores, top)
	conf := clamp01(0.5 + margin)

	if delta || event {
		return note.TypeProjectUpdate, math.Max(conf, 0.75)
	}

	if StrategyHeading(sec.Heading) && sec.Features.ListItemCount >= 3 {
		return note.TypeIdea, math.Max(conf, 0.7)
	}

	if SpecLike(sec) && scores[note.IntentStatus] < 0.3 {
		return note.TypeIdea, math.Max(conf, 0.7)
	}

	if bugTermRegex.MatchString(sec.RawText) {
		return note.TypeBug, math.Max(conf, 0.65)
	}
	if riskTermRegex.MatchString(sec.RawText) && top != note.IntentPlanChange {
		return note.TypeRisk, math.Max(conf, 0.6)
	}

	if top == note.IntentPlanChange {
		return note.TypeProjectUpdate, conf
	}
	return note.TypeIdea, conf
}

// TypeForSentence classifies a single sentence in isolation. Dense
// paragraph extraction must never inherit the parent section's type;
// this is the per-sentence arbiter it uses instead.
func TypeForSentence(sentence string) (note.SuggestionType, float64) {
	if bugTermRegex.MatchString(sentence) {
		return note.TypeBug, 0.7
	}
	if riskTermRegex.MatchString(sentence) {
		return note.TypeRisk, 0.65
	}
	if preprocess.HasDeltaText(sentence) {
		return note.TypeProjectUpdate, 0.75
	}
	return note.TypeIdea, 0.6
}

func hasImperativeSentence(text string) bool {
	for _, s := range SplitSentences(text) {
		if BeginsWithWorkVerb(s) {
			return true
		}
	}
	return false
}

func scoreMargin(scores map[note.Intent]float64, top note.Intent) float64 {
	second := 0.0
	for _, intent := range note.Intents() {
		if intent == top {
			continue
		}
		if scores[intent] > second {
			second = scores[intent]
		}
	}
	return scores[top] - second
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
