package pipeline

import (
	"time"

	"github.com/fyrsmithlabs/suggestd/internal/note"
)

// NoteInput is the pipeline input contract.
type NoteInput struct {
	NoteID      string                    `json:"note_id"`
	RawMarkdown string                    `json:"raw_markdown"`
	AuthoredAt  *time.Time                `json:"authored_at,omitempty"`
	Initiatives []note.InitiativeSnapshot `json:"initiatives,omitempty"`
}

// Result is the pipeline output contract.
type Result struct {
	Suggestions []note.Suggestion `json:"suggestions"`
	Debug       *DebugInfo        `json:"debug,omitempty"`
}

// Record is an externally persisted note shape. The pipeline never sees
// storage formats; this adapter is the only place the translation lives.
type Record struct {
	ID        string     `json:"_id" bson:"_id"`
	Body      string     `json:"body" bson:"body"`
	CreatedAt *time.Time `json:"createdAt" bson:"createdAt"`
}

// FromRecord translates a persisted record into a NoteInput.
func FromRecord(r Record) NoteInput {
	return NoteInput{
		NoteID:      r.ID,
		RawMarkdown: r.Body,
		AuthoredAt:  r.CreatedAt,
	}
}
