// Package validate applies the hard quality gates to candidates:
// anti-vacuity, evidence sanity, heading-only suppression, and the
// global grounding re-check. Panics raised while validating a candidate
// become an internal_error drop for that candidate only.
package validate

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/fyrsmithlabs/suggestd/internal/config"
	"github.com/fyrsmithlabs/suggestd/internal/note"
	"github.com/fyrsmithlabs/suggestd/internal/synthesize"
)

// Validator checks candidates against their owning sections.
type Validator struct {
	thresholds config.Thresholds
	logger     *zap.Logger
}

// New creates a validator.
func New(th config.Thresholds, logger *zap.Logger) *Validator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Validator{thresholds: th, logger: logger}
}

// Result is the validator output: surviving candidates plus drop records.
type Result struct {
	Candidates []note.Suggestion
	Drops      []note.DropRecord
}

// Run validates each candidate independently. A failing sibling never
// affects the rest of the batch.
func (v *Validator) Run(candidates []note.Suggestion, sections map[string]note.ClassifiedSection) Result {
	var res Result
	for _, c := range candidates {
		rec, ok := v.validateOne(c, sections)
		if !ok {
			res.Drops = append(res.Drops, rec)
			continue
		}
		res.Candidates = append(res.Candidates, c)
	}
	return res
}

// validateOne runs the gates for one candidate, converting any panic
// into an internal_error drop.
func (v *Validator) validateOne(c note.Suggestion, sections map[string]note.ClassifiedSection) (rec note.DropRecord, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			msg := fmt.Sprintf("%v", r)
			if len(msg) > 200 {
				msg = msg[:200]
			}
			v.logger.Warn("candidate validation panicked",
				zap.String("suggestion_id", c.ID),
				zap.String("error", msg))
			rec = drop(c, note.DropInternalError, "internal error: "+msg)
			ok = false
		}
	}()

	sec, found := sections[c.SectionID]
	if !found {
		return drop(c, note.DropInternalError, "internal error: unknown section "+c.SectionID), false
	}

	if reason, detail, failed := v.check(c, sec); failed {
		return drop(c, reason, detail), false
	}
	return note.DropRecord{}, true
}

func (v *Validator) check(c note.Suggestion, sec note.ClassifiedSection) (note.DropReason, string, bool) {
	if vacuous(c, sec.Section) {
		return note.DropVacuousTitle, "title restates the heading with no concrete content", true
	}

	if len(c.Evidence) == 0 {
		return note.DropEvidenceEmpty, "no evidence spans", true
	}
	for _, span := range c.Evidence {
		if strings.TrimSpace(span.Text) == "" {
			return note.DropEvidenceEmpty, "empty evidence text", true
		}
		if len(strings.TrimSpace(span.Text)) < v.thresholds.MinEvidenceChars {
			return note.DropEvidenceEmpty, "evidence below minimum length", true
		}
		if span.StartLine > span.EndLine ||
			span.StartLine < sec.StartLine ||
			span.EndLine > sec.EndLine {
			return note.DropEvidenceBounds, fmt.Sprintf("span %d-%d outside section %d-%d",
				span.StartLine, span.EndLine, sec.StartLine, sec.EndLine), true
		}
	}

	if headingOnly(c, sec.Section) {
		return note.DropHeadingOnly, "anchored only on the heading without an explicit ask", true
	}

	if c.Metadata.Source.GroundingEnforced() && !Grounded(c, sec.Section) {
		return note.DropUngrounded, "evidence text not present verbatim in section", true
	}
	return "", "", false
}

// Grounded reports whether every non-empty evidence line of a candidate
// is a case-insensitive substring of its section's raw text. The scorer
// calls this a second time after validation as the anti-hallucination
// safety net; the re-check is deliberate, not redundant.
func Grounded(c note.Suggestion, sec note.Section) bool {
	// Derived sub-sections ground against their own raw text, which is
	// itself a slice of the parent's.
	raw := strings.ToLower(sec.RawText)
	for _, span := range c.Evidence {
		for _, line := range strings.Split(span.Text, "\n") {
			line = strings.TrimSpace(line)
			if line == "" {
				continue
			}
			if !strings.Contains(raw, strings.ToLower(line)) {
				return false
			}
		}
	}
	return true
}

// vacuous detects "New idea: <Heading>"-style titles that add nothing
// over the heading and carry no explicit-ask anchor.
func vacuous(c note.Suggestion, sec note.Section) bool {
	title := note.NormalizeTitleKey(c.Title)
	if title == "" {
		return true
	}
	heading := note.NormalizeTitleKey(sec.Heading)
	if heading == "" {
		return false
	}
	restates := title == heading ||
		title == note.NormalizeTitleKey("New idea: "+sec.Heading) ||
		title == note.NormalizeTitleKey("Idea: "+sec.Heading)
	if !restates {
		return false
	}
	if c.Metadata.Source == note.SourceStructural || c.Metadata.Source == note.SourceActionItem {
		return false
	}
	return !synthesize.HasExplicitAsk(sec.RawText)
}

// headingOnly detects candidates whose sole anchor is the heading text.
func headingOnly(c note.Suggestion, sec note.Section) bool {
	if sec.Heading == "" {
		return false
	}
	heading := note.NormalizeTitleKey(sec.Heading)
	for _, span := range c.Evidence {
		if note.NormalizeTitleKey(span.Text) != heading {
			return false
		}
	}
	if c.Metadata.Source == note.SourceStructural {
		return false
	}
	return !synthesize.HasExplicitAsk(sec.RawText)
}

func drop(c note.Suggestion, reason note.DropReason, detail string) note.DropRecord {
	return note.DropRecord{
		Stage:        note.StageValidate,
		Reason:       reason,
		Detail:       detail,
		SectionID:    c.SectionID,
		SuggestionID: c.ID,
	}
}
