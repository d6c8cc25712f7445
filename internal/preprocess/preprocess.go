// Package preprocess turns raw markdown into annotated lines and
// heading-delimited sections. It is the only stage that sees the raw
// note text; everything downstream works on its output.
package preprocess

import (
	"regexp"
	"strings"

	"github.com/fyrsmithlabs/suggestd/internal/note"
)

var (
	hashHeadingRegex = regexp.MustCompile(`^(#{1,6})\s+(.*)$`)
	// Numbered headings must start at column 0. The same pattern with
	// leading whitespace is a list item, not a section break.
	numberedHeadingRegex = regexp.MustCompile(`^\d+\.\s+\S`)
	bulletRegex          = regexp.MustCompile(`^(\s*)([-*+])\s+`)
	indentedNumberRegex  = regexp.MustCompile(`^(\s+)\d+[.)]\s+`)
	fenceRegex           = regexp.MustCompile("^\\s*```")
)

// Result holds the preprocessor output for one note.
type Result struct {
	Lines    []note.Line
	Sections []note.Section
}

// Run splits raw markdown into classified lines and groups them into
// sections at heading boundaries. Section ids come from the per-run
// allocator, so repeated runs over different notes never collide.
func Run(noteID, raw string, ids *note.IDAllocator) Result {
	lines := splitLines(raw)
	sections := groupSections(noteID, lines, ids)
	return Result{Lines: lines, Sections: sections}
}

// splitLines normalizes line endings and classifies each line.
func splitLines(raw string) []note.Line {
	if raw == "" {
		return nil
	}
	raw = strings.ReplaceAll(raw, "\r\n", "\n")
	parts := strings.Split(raw, "\n")

	lines := make([]note.Line, 0, len(parts))
	inFence := false
	for i, text := range parts {
		lines = append(lines, classifyLine(i, text, &inFence))
	}
	return lines
}

func classifyLine(index int, text string, inFence *bool) note.Line {
	line := note.Line{Index: index, Text: text}

	if fenceRegex.MatchString(text) {
		*inFence = !*inFence
		line.Type = note.LineCode
		return line
	}
	if *inFence {
		line.Type = note.LineCode
		return line
	}

	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		line.Type = note.LineBlank
		return line
	}

	if hashHeadingRegex.MatchString(text) {
		line.Type = note.LineHeading
		return line
	}
	if numberedHeadingRegex.MatchString(text) {
		// Column 0 only: text has no leading whitespace here.
		line.Type = note.LineHeading
		return line
	}

	if m := bulletRegex.FindStringSubmatch(text); m != nil {
		line.Type = note.LineListItem
		line.Indent = indentLevel(m[1])
		return line
	}
	if m := indentedNumberRegex.FindStringSubmatch(text); m != nil {
		line.Type = note.LineListItem
		line.Indent = indentLevel(m[1])
		return line
	}

	line.Type = note.LineParagraph
	return line
}

func indentLevel(ws string) int {
	cols := 0
	for _, r := range ws {
		if r == '\t' {
			cols += 4
		} else {
			cols++
		}
	}
	return cols / 2
}

// groupSections walks the classified lines and cuts a section at every
// heading boundary. A section's raw text spans from the line after its
// heading to the line before the next heading (or end of note), joined
// byte-for-byte so grounding checks can substring against it.
func groupSections(noteID string, lines []note.Line, ids *note.IDAllocator) []note.Section {
	var sections []note.Section

	flush := func(heading note.Line, hasHeading bool, body []note.Line) {
		// A heading with no body lines is a title for whatever follows,
		// not a section of its own.
		if !hasContent(body) {
			return
		}
		start := body[0].Index
		end := body[len(body)-1].Index
		sec := note.Section{
			ID:        ids.NextSectionID(),
			NoteID:    noteID,
			StartLine: start,
			EndLine:   end,
			Body:      body,
			RawText:   JoinLines(body),
		}
		if hasHeading {
			sec.Heading, sec.HeadingLevel = parseHeading(heading.Text)
		}
		sec.Features = Features(sec)
		sections = append(sections, sec)
	}

	var heading note.Line
	hasHeading := false
	var body []note.Line
	for _, line := range lines {
		if line.Type == note.LineHeading {
			flush(heading, hasHeading, body)
			heading = line
			hasHeading = true
			body = nil
			continue
		}
		body = append(body, line)
	}
	flush(heading, hasHeading, body)

	return sections
}

// SubSection derives a read-only sub-section view over a slice of the
// parent's lines. The composite id and ParentRef keep the provenance a
// later stage needs to re-anchor evidence.
func SubSection(parent note.Section, marker string, body []note.Line) note.Section {
	start := parent.StartLine
	end := parent.EndLine
	if len(body) > 0 {
		start = body[0].Index
		end = body[len(body)-1].Index
	}
	sub := note.Section{
		ID:           note.SubSectionID(parent.ID, marker),
		NoteID:       parent.NoteID,
		Heading:      parent.Heading,
		HeadingLevel: parent.HeadingLevel,
		StartLine:    start,
		EndLine:      end,
		Body:         body,
		RawText:      JoinLines(body),
		Parent: &note.ParentRef{
			ID:        parent.ID,
			StartLine: parent.StartLine,
			EndLine:   parent.EndLine,
		},
	}
	sub.Features = Features(sub)
	return sub
}

// JoinLines reassembles the exact source text of a run of lines.
func JoinLines(body []note.Line) string {
	if len(body) == 0 {
		return ""
	}
	texts := make([]string, len(body))
	for i, l := range body {
		texts[i] = l.Text
	}
	return strings.Join(texts, "\n")
}

func parseHeading(text string) (string, int) {
	if m := hashHeadingRegex.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[2]), len(m[1])
	}
	// Numbered heading: "3. Topic" reads as a second-level heading.
	if numberedHeadingRegex.MatchString(text) {
		dot := strings.Index(text, ".")
		return strings.TrimSpace(text[dot+1:]), 2
	}
	return strings.TrimSpace(text), 1
}

func hasContent(body []note.Line) bool {
	for _, l := range body {
		if l.Type != note.LineBlank {
			return true
		}
	}
	return false
}
