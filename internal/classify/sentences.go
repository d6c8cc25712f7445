package classify

import (
	"strings"
	"unicode"
)

// SplitSentences splits free text into sentences. Periods, exclamation
// marks, and ellipses are boundaries; newlines are treated as soft
// whitespace inside a sentence.
func SplitSentences(text string) []string {
	var sentences []string
	var current strings.Builder

	flush := func() {
		s := strings.TrimSpace(current.String())
		current.Reset()
		if s != "" {
			sentences = append(sentences, s)
		}
	}

	runes := []rune(text)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		current.WriteRune(r)
		switch r {
		case '.':
			// Swallow a run of dots (ellipsis) as one boundary.
			for i+1 < len(runes) && runes[i+1] == '.' {
				i++
			}
			flush()
		case '!', '…':
			flush()
		}
	}
	flush()

	return sentences
}

// BeginsWithWorkVerb reports whether a sentence opens with a recognized
// imperative work verb. Leading list markers and punctuation are ignored.
func BeginsWithWorkVerb(sentence string) bool {
	first := firstWord(sentence)
	if first == "" {
		return false
	}
	for _, v := range BuildVerbs() {
		if first == v {
			return true
		}
	}
	return false
}

// firstWord returns the first alphabetic word of a sentence, lowercased,
// skipping bullet markers, numbering, and emphasis characters.
func firstWord(s string) string {
	var b strings.Builder
	started := false
	for _, r := range s {
		if unicode.IsLetter(r) {
			b.WriteRune(unicode.ToLower(r))
			started = true
			continue
		}
		if started {
			break
		}
	}
	return b.String()
}
