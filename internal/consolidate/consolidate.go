// Package consolidate merges fragmented same-section idea candidates
// that came out of one structured bullet list, so a single list yields a
// single suggestion instead of one per bullet. Risk and project_update
// candidates are never merged.
package consolidate

import (
	"regexp"
	"strings"

	"github.com/fyrsmithlabs/suggestd/internal/note"
	"github.com/fyrsmithlabs/suggestd/internal/preprocess"
)

// maxMergedBullets caps how many constituent bullets the merged body
// keeps.
const maxMergedBullets = 4

// engagementLoopRegex is the specific title pattern checked before the
// heading fallback when naming a merged suggestion.
var engagementLoopRegex = regexp.MustCompile(`(?i)\b(engagement|retention|activation|onboarding) (loop|program|flow)\b`)

// genericFallbackTitle names a merged suggestion when neither the
// pattern nor the heading yields a usable title.
const genericFallbackTitle = "Structured idea list"

// Result is the consolidator output.
type Result struct {
	Candidates []note.Suggestion
	Drops      []note.DropRecord
}

// Run merges idea candidates per section where the section is a single
// structured bullet list. Candidate order is preserved; the merge
// survivor sits where its first constituent was.
func Run(candidates []note.Suggestion, sections map[string]note.ClassifiedSection) Result {
	groups := make(map[string][]int)
	var order []string
	for i, c := range candidates {
		if c.Type != note.TypeIdea {
			continue
		}
		if _, seen := groups[c.SectionID]; !seen {
			order = append(order, c.SectionID)
		}
		groups[c.SectionID] = append(groups[c.SectionID], i)
	}

	absorbed := make(map[int]bool)
	merged := make(map[int]note.Suggestion)
	var drops []note.DropRecord

	for _, sectionID := range order {
		idxs := groups[sectionID]
		if len(idxs) < 2 {
			continue
		}
		sec, ok := sections[sectionID]
		if !ok || !mergeable(sec.Section) {
			continue
		}

		survivorIdx := idxs[0]
		survivor := candidates[survivorIdx]
		for _, i := range idxs[1:] {
			survivor = absorb(survivor, candidates[i])
			absorbed[i] = true
			drops = append(drops, note.DropRecord{
				Stage:        note.StageConsolidate,
				Reason:       note.DropMerged,
				Detail:       "merged into " + survivor.ID,
				SectionID:    sectionID,
				SuggestionID: candidates[i].ID,
			})
		}
		survivor = retitle(survivor, sec.Section)
		merged[survivorIdx] = survivor
	}

	var out []note.Suggestion
	for i, c := range candidates {
		if absorbed[i] {
			continue
		}
		if m, ok := merged[i]; ok {
			out = append(out, m)
			continue
		}
		out = append(out, c)
	}
	return Result{Candidates: out, Drops: drops}
}

// mergeable reports whether a section is a single structured bullet
// list: shallow heading, three or more bullets, no schedule signal.
func mergeable(sec note.Section) bool {
	return sec.HeadingLevel <= 3 &&
		sec.Features.ListItemCount >= 3 &&
		!sec.Features.HasDates &&
		!preprocess.HasConcreteDelta(sec)
}

// absorb folds one candidate into the survivor: evidence is appended
// (deduplicated by text) and the body grows by the absorbed bullet up to
// the cap.
func absorb(survivor, c note.Suggestion) note.Suggestion {
	seen := make(map[string]bool, len(survivor.Evidence))
	for _, span := range survivor.Evidence {
		seen[strings.ToLower(span.Text)] = true
	}
	for _, span := range c.Evidence {
		if len(survivor.Evidence) >= maxMergedBullets {
			break
		}
		key := strings.ToLower(span.Text)
		if seen[key] {
			continue
		}
		seen[key] = true
		survivor.Evidence = append(survivor.Evidence, span)
	}

	survivor.Payload.Draft = mergedDraft(survivor)
	return survivor
}

func mergedDraft(s note.Suggestion) *note.DraftInitiative {
	parts := make([]string, 0, len(s.Evidence))
	for _, span := range s.Evidence {
		parts = append(parts, span.Text)
	}
	return &note.DraftInitiative{
		Title:       s.Title,
		Description: strings.Join(parts, " "),
	}
}

// retitle applies the fixed precedence for merged suggestions: the
// engagement-loop pattern, then a non-generic heading, then the generic
// fallback.
func retitle(s note.Suggestion, sec note.Section) note.Suggestion {
	title := ""
	if m := engagementLoopRegex.FindString(sec.Heading + "\n" + sec.RawText); m != "" {
		title = capitalize(strings.ToLower(m))
	} else if strings.TrimSpace(sec.Heading) != "" {
		title = strings.TrimSpace(sec.Heading)
	} else {
		title = genericFallbackTitle
	}

	s.Title = title
	s.Key = note.SuggestionKeyFor(s.NoteID, s.SectionID, s.Type, s.Title)
	if s.Payload.Draft != nil {
		s.Payload.Draft.Title = title
	}
	return s
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
