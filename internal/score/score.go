// Package score blends per-candidate confidences into the overall score,
// applies the clarification downgrade, enforces the plan-change non-drop
// invariant, and trims to the global suggestion cap.
package score

import (
	"sort"

	"go.uber.org/zap"

	"github.com/fyrsmithlabs/suggestd/internal/config"
	"github.com/fyrsmithlabs/suggestd/internal/note"
	"github.com/fyrsmithlabs/suggestd/internal/validate"
)

// Blend weights. Monotonic in each input and bounded to [0,1] because
// the inputs are.
const (
	weightSection   = 0.4
	weightType      = 0.3
	weightSynthesis = 0.3
)

// Scorer finalizes candidate scores and applies thresholds and the cap.
type Scorer struct {
	cfg    *config.Config
	logger *zap.Logger
}

// New creates a scorer.
func New(cfg *config.Config, logger *zap.Logger) *Scorer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scorer{cfg: cfg, logger: logger}
}

// Result is the scorer output.
type Result struct {
	Candidates []note.Suggestion
	Drops      []note.DropRecord
}

// Overall computes the blended score for one candidate.
func Overall(s note.Scores) float64 {
	return weightSection*s.SectionActionability +
		weightType*s.TypeChoice +
		weightSynthesis*s.Synthesis
}

// Run scores every candidate, downgrades the weak ones to
// needs-clarification instead of dropping them, runs the post-scoring
// grounding safety net, enforces the plan-change invariant, and trims
// idea-class candidates beyond the cap by ascending score.
func (s *Scorer) Run(candidates []note.Suggestion, sections map[string]note.ClassifiedSection) Result {
	var res Result
	planChangeIn := countPlanChange(candidates)

	scored := make([]note.Suggestion, 0, len(candidates))
	for _, c := range candidates {
		c.Scores.Overall = Overall(c.Scores)

		// Anti-hallucination safety net: grounding is re-checked here so
		// no score path can bypass it.
		if sec, ok := sections[c.SectionID]; ok &&
			c.Metadata.Source.GroundingEnforced() && !validate.Grounded(c, sec.Section) {
			s.logger.Error("ungrounded evidence escaped validation",
				zap.String("suggestion_id", c.ID),
				zap.String("section_id", c.SectionID))
			res.Drops = append(res.Drops, note.DropRecord{
				Stage:        note.StageScore,
				Reason:       note.DropUngrounded,
				Detail:       "post-validation grounding re-check failed",
				SectionID:    c.SectionID,
				SuggestionID: c.ID,
			})
			continue
		}

		if c.Scores.Overall < s.cfg.Thresholds.OverallMin ||
			c.Scores.SectionActionability < s.cfg.Thresholds.SectionMin {
			c.NeedsClarification = true
			if c.Scores.Overall < s.cfg.Thresholds.OverallMin {
				c.ClarificationReasons = append(c.ClarificationReasons, "overall score below threshold")
			}
			if c.Scores.SectionActionability < s.cfg.Thresholds.SectionMin {
				c.ClarificationReasons = append(c.ClarificationReasons, "weak section actionability")
			}
		}
		scored = append(scored, c)
	}

	scored, capDrops := s.applyCap(scored)
	res.Drops = append(res.Drops, capDrops...)
	res.Candidates = scored

	// Integrity check: thresholding and the cap must never lose a
	// project_update. A violation is a logic regression, logged loudly
	// but not fatal to the run.
	if countPlanChange(res.Candidates) < planChangeIn {
		s.logger.Error("plan-change candidate lost during scoring",
			zap.Int("before", planChangeIn),
			zap.Int("after", countPlanChange(res.Candidates)))
	}

	return res
}

// applyCap trims candidates beyond MaxSuggestions. Only idea-class
// candidates are eligible for trimming, lowest overall score first;
// project_update candidates are exempt.
func (s *Scorer) applyCap(candidates []note.Suggestion) ([]note.Suggestion, []note.DropRecord) {
	max := s.cfg.MaxSuggestions
	if max <= 0 || len(candidates) <= max {
		return candidates, nil
	}

	excess := len(candidates) - max

	type indexed struct {
		idx   int
		score float64
	}
	var trimmable []indexed
	for i, c := range candidates {
		if c.Type == note.TypeIdea {
			trimmable = append(trimmable, indexed{idx: i, score: c.Scores.Overall})
		}
	}
	sort.SliceStable(trimmable, func(a, b int) bool {
		return trimmable[a].score < trimmable[b].score
	})
	if excess > len(trimmable) {
		excess = len(trimmable)
	}

	dropIdx := make(map[int]bool, excess)
	var drops []note.DropRecord
	for _, t := range trimmable[:excess] {
		dropIdx[t.idx] = true
		c := candidates[t.idx]
		drops = append(drops, note.DropRecord{
			Stage:        note.StageScore,
			Reason:       note.DropCapExceeded,
			Detail:       "global suggestion cap",
			SectionID:    c.SectionID,
			SuggestionID: c.ID,
		})
	}

	kept := make([]note.Suggestion, 0, len(candidates)-excess)
	for i, c := range candidates {
		if !dropIdx[i] {
			kept = append(kept, c)
		}
	}
	return kept, drops
}

func countPlanChange(candidates []note.Suggestion) int {
	n := 0
	for _, c := range candidates {
		if c.Type == note.TypeProjectUpdate {
			n++
		}
	}
	return n
}
