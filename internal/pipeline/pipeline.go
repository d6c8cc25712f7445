// Package pipeline wires the stages together: preprocess, classify,
// synthesize, validate, score, consolidate, route, normalize titles.
// One Run call processes exactly one note; the call is pure and
// synchronous, and a fresh id allocator per run keeps ids from ever
// leaking between notes.
package pipeline

import (
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/fyrsmithlabs/suggestd/internal/classify"
	"github.com/fyrsmithlabs/suggestd/internal/config"
	"github.com/fyrsmithlabs/suggestd/internal/consolidate"
	"github.com/fyrsmithlabs/suggestd/internal/logging"
	"github.com/fyrsmithlabs/suggestd/internal/note"
	"github.com/fyrsmithlabs/suggestd/internal/preprocess"
	"github.com/fyrsmithlabs/suggestd/internal/route"
	"github.com/fyrsmithlabs/suggestd/internal/score"
	"github.com/fyrsmithlabs/suggestd/internal/synthesize"
	"github.com/fyrsmithlabs/suggestd/internal/titles"
	"github.com/fyrsmithlabs/suggestd/internal/validate"
)

// Options configures one pipeline instance.
type Options struct {
	Config  *config.Config
	Logger  *zap.Logger
	Hinter  classify.IntentHinter
	Matcher route.InitiativeMatcher
}

// Pipeline is the assembled stage chain. Safe for sequential reuse
// across notes; each Run gets its own allocator and accumulators.
type Pipeline struct {
	cfg        *config.Config
	logger     *zap.Logger
	redactor   logging.Redactor
	classifier *classify.Classifier
	synth      *synthesize.Synthesizer
	validator  *validate.Validator
	scorer     *score.Scorer
	router     *route.Router
}

// New assembles a pipeline from options. Nil config and logger fall
// back to defaults.
func New(opts Options) *Pipeline {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	classifier := classify.New(cfg.Thresholds, opts.Hinter)
	return &Pipeline{
		cfg:        cfg,
		logger:     logger,
		redactor:   logging.NewRedactor(cfg.Logging),
		classifier: classifier,
		synth:      synthesize.New(classifier, cfg.Thresholds),
		validator:  validate.New(cfg.Thresholds, logger),
		scorer:     score.New(cfg, logger),
		router:     route.New(opts.Matcher, cfg.Thresholds.Attach),
	}
}

// Run processes one note end to end. Malformed or empty markdown yields
// an empty suggestion list, not an error.
func (p *Pipeline) Run(input NoteInput) Result {
	runID := uuid.NewString()
	log := p.logger.With(zap.String("run_id", runID), zap.String("note_id", input.NoteID))

	ids := note.NewIDAllocator(input.NoteID)
	pre := preprocess.Run(input.NoteID, input.RawMarkdown, ids)
	log.Debug("preprocessed note",
		zap.Int("lines", len(pre.Lines)),
		zap.Int("sections", len(pre.Sections)))

	classified := make([]note.ClassifiedSection, 0, len(pre.Sections))
	for _, sec := range pre.Sections {
		cs := p.classifier.Classify(sec)
		classified = append(classified, cs)
		log.Debug("classified section",
			zap.String("section_id", cs.ID),
			zap.String("top_intent", string(cs.TopIntent)),
			zap.Bool("actionable", cs.Actionable))
	}
	planChangeSections := countPlanChangeSections(classified)

	synthRes := p.synth.Run(classified, ids)

	// Validation and scoring look sections up by id; topic isolation may
	// have produced sub-section ids that are not in the preprocessor
	// output, so the index is rebuilt from candidate provenance too.
	sections := sectionIndex(classified, synthRes.Derived, synthRes.Candidates)

	valRes := p.validator.Run(synthRes.Candidates, sections)
	scoreRes := p.scorer.Run(valRes.Candidates, sections)
	consRes := consolidate.Run(scoreRes.Candidates, sections)

	routed := p.router.Run(consRes.Candidates, input.Initiatives)
	final := titles.NormalizeAll(routed)
	final = attachContext(final, sections)

	drops := concatDrops(synthRes.Drops, valRes.Drops, scoreRes.Drops, consRes.Drops)

	p.checkInvariants(log, classified, final, planChangeSections)

	res := Result{Suggestions: final}
	if p.cfg.EnableDebug {
		res.Debug = p.buildDebug(runID, classified, final, drops)
	}
	log.Info("note processed",
		zap.Int("sections", len(classified)),
		zap.Int("suggestions", len(final)),
		zap.Int("drops", len(drops)))
	return res
}

// checkInvariants runs the post-scoring integrity checks. Violations
// are logic regressions: logged at error level, never fatal to the run.
func (p *Pipeline) checkInvariants(log *zap.Logger, classified []note.ClassifiedSection, final []note.Suggestion, planChangeSections int) {
	emitted := 0
	bySection := make(map[string]int)
	for _, s := range final {
		if s.Type == note.TypeProjectUpdate {
			emitted++
		}
		bySection[baseSection(s.SectionID)]++
	}
	if emitted < planChangeSections {
		log.Error("plan-change emission invariant violated",
			zap.Int("plan_change_sections", planChangeSections),
			zap.Int("emitted_project_updates", emitted))
	}
	for _, cs := range classified {
		if cs.Actionable && bySection[cs.ID] == 0 {
			log.Error("actionable section produced no emitted suggestion",
				zap.String("section_id", cs.ID))
		}
	}
}

// sectionIndex maps section ids, including derived sub-section ids, to
// their classified sections. Sub-sections referenced by candidates are
// reconstructed from the parent so validators can bound-check evidence.
func sectionIndex(classified, derived []note.ClassifiedSection, candidates []note.Suggestion) map[string]note.ClassifiedSection {
	index := make(map[string]note.ClassifiedSection, len(classified)+len(derived))
	byID := make(map[string]note.ClassifiedSection, len(classified))
	for _, cs := range classified {
		index[cs.ID] = cs
		byID[cs.ID] = cs
	}
	// Derived sub-sections carry their own topic-anchor heading and line
	// bounds; indexing them directly keeps that provenance on the
	// suggestion context instead of the parent's heading.
	for _, cs := range derived {
		index[cs.ID] = cs
	}
	for _, c := range candidates {
		if _, ok := index[c.SectionID]; ok {
			continue
		}
		parentID := baseSection(c.SectionID)
		parent, ok := byID[parentID]
		if !ok {
			continue
		}
		// Evidence in a derived sub-section points at parent line
		// numbers, and its raw text is a slice of the parent's, so the
		// parent stands in for bounds and grounding checks.
		stand := parent
		stand.ID = c.SectionID
		index[c.SectionID] = stand
	}
	return index
}

func baseSection(sectionID string) string {
	for i := 0; i < len(sectionID); i++ {
		if sectionID[i] == '.' {
			return sectionID[:i]
		}
	}
	return sectionID
}

func countPlanChangeSections(classified []note.ClassifiedSection) int {
	n := 0
	for _, cs := range classified {
		if cs.TopIntent == note.IntentPlanChange && cs.SuggestedType == note.TypeProjectUpdate {
			n++
		}
	}
	return n
}

// attachContext fills the review-card preview on each final suggestion.
func attachContext(final []note.Suggestion, sections map[string]note.ClassifiedSection) []note.Suggestion {
	for i, s := range final {
		preview := make([]string, 0, len(s.Evidence))
		for _, span := range s.Evidence {
			preview = append(preview, span.Text)
		}
		heading := ""
		if sec, ok := sections[s.SectionID]; ok {
			heading = sec.Heading
		}
		final[i].Context = &note.SuggestionContext{
			Title:           s.Title,
			Body:            bodyOf(s),
			EvidencePreview: preview,
			SourceSectionID: s.SectionID,
			SourceHeading:   heading,
		}
	}
	return final
}

func bodyOf(s note.Suggestion) string {
	if s.Payload.Draft != nil {
		return s.Payload.Draft.Description
	}
	return s.Payload.AfterDescription
}

func concatDrops(groups ...[]note.DropRecord) []note.DropRecord {
	var out []note.DropRecord
	for _, g := range groups {
		out = append(out, g...)
	}
	return out
}
