package note

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"unicode"
)

// IDAllocator hands out stable, note-scoped section and suggestion ids.
// One allocator lives for exactly one pipeline invocation; a fresh
// allocator per note is what guarantees no cross-run id leakage.
type IDAllocator struct {
	noteID     string
	section    int
	suggestion int
}

// NewIDAllocator creates an allocator scoped to one note run.
func NewIDAllocator(noteID string) *IDAllocator {
	return &IDAllocator{noteID: noteID}
}

// NextSectionID returns the next section id, e.g. "n1-s3".
func (a *IDAllocator) NextSectionID() string {
	a.section++
	return fmt.Sprintf("%s-s%d", a.noteID, a.section)
}

// NextSuggestionID returns the next suggestion id, e.g. "n1-c5".
func (a *IDAllocator) NextSuggestionID() string {
	a.suggestion++
	return fmt.Sprintf("%s-c%d", a.noteID, a.suggestion)
}

// SubSectionID derives a composite id for a sub-section split off parent.
func SubSectionID(parentID, marker string) string {
	return parentID + "." + marker
}

// Reset zeroes the counters. Exposed so hosts that reuse an allocator
// across unrelated notes can prove there is no leaked state.
func (a *IDAllocator) Reset(noteID string) {
	a.noteID = noteID
	a.section = 0
	a.suggestion = 0
}

// SuggestionKeyFor derives the content-addressed deduplication key for a
// candidate. It is deterministic across runs on identical input: two
// strategies emitting the same (note, section, type, title) collide here
// and the later one is dropped as a duplicate.
func SuggestionKeyFor(noteID, sectionID string, typ SuggestionType, title string) string {
	h := sha256.Sum256([]byte(noteID + "\x1f" + sectionID + "\x1f" + string(typ) + "\x1f" + NormalizeTitleKey(title)))
	return hex.EncodeToString(h[:])[:16]
}

// NormalizeTitleKey lowercases and collapses a title to its word content
// so cosmetic differences do not defeat deduplication.
func NormalizeTitleKey(title string) string {
	var b strings.Builder
	lastSpace := true
	for _, r := range strings.ToLower(title) {
		switch {
		case unicode.IsLetter(r) || unicode.IsNumber(r):
			b.WriteRune(r)
			lastSpace = false
		default:
			if !lastSpace {
				b.WriteByte(' ')
				lastSpace = true
			}
		}
	}
	return strings.TrimSpace(b.String())
}
