// Package route attaches surviving candidates to existing initiatives
// or marks them for creation. Similarity scoring is pluggable; the
// default is word-overlap Jaccard, which keeps routing deterministic
// and dependency-free for hosts that bring no matcher of their own.
package route

import (
	"strings"
	"unicode"

	"github.com/fyrsmithlabs/suggestd/internal/note"
)

// InitiativeMatcher scores candidate text against an initiative
// snapshot. Implementations may be backed by anything the host has
// (embeddings, search index); only this contract is in scope.
type InitiativeMatcher interface {
	Similarity(candidateText string, initiative note.InitiativeSnapshot) float64
}

// Router routes candidates against a snapshot list.
type Router struct {
	matcher   InitiativeMatcher
	minAttach float64
}

// New creates a router. matcher may be nil, in which case the Jaccard
// default is used.
func New(matcher InitiativeMatcher, minAttach float64) *Router {
	if matcher == nil {
		matcher = JaccardMatcher{}
	}
	return &Router{matcher: matcher, minAttach: minAttach}
}

// Run fills in routing for every candidate: the highest-similarity
// initiative at or above the attach threshold wins, earlier snapshot
// order breaking ties; otherwise create_new.
func (r *Router) Run(candidates []note.Suggestion, initiatives []note.InitiativeSnapshot) []note.Suggestion {
	out := make([]note.Suggestion, len(candidates))
	for i, c := range candidates {
		out[i] = r.routeOne(c, initiatives)
	}
	return out
}

func (r *Router) routeOne(c note.Suggestion, initiatives []note.InitiativeSnapshot) note.Suggestion {
	text := c.Title + " " + bodyText(c)

	bestID := ""
	bestScore := 0.0
	for _, ini := range initiatives {
		score := r.matcher.Similarity(text, ini)
		if score > bestScore {
			bestScore = score
			bestID = ini.ID
		}
	}

	if bestID != "" && bestScore >= r.minAttach {
		c.Routing = note.Routing{InitiativeID: bestID}
	} else {
		c.Routing = note.Routing{CreateNew: true}
	}
	return c
}

func bodyText(c note.Suggestion) string {
	if c.Payload.Draft != nil {
		return c.Payload.Draft.Description
	}
	return c.Payload.AfterDescription
}

// JaccardMatcher is the default similarity: word-set Jaccard over the
// candidate text and the initiative's title plus description.
type JaccardMatcher struct{}

// Similarity implements InitiativeMatcher.
func (JaccardMatcher) Similarity(candidateText string, ini note.InitiativeSnapshot) float64 {
	a := tokens(candidateText)
	b := tokens(ini.Title + " " + ini.Description)
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	inter := 0
	for w := range a {
		if b[w] {
			inter++
		}
	}
	union := len(a) + len(b) - inter
	return float64(inter) / float64(union)
}

func tokens(text string) map[string]bool {
	words := make(map[string]bool)
	var cur strings.Builder
	for _, r := range strings.ToLower(text) {
		if unicode.IsLetter(r) || unicode.IsNumber(r) {
			cur.WriteRune(r)
			continue
		}
		if cur.Len() > 0 {
			words[cur.String()] = true
			cur.Reset()
		}
	}
	if cur.Len() > 0 {
		words[cur.String()] = true
	}
	return words
}
