// Package moderation censors configured words in outbound text. Inbound
// submissions are stored verbatim; only the copies relayed to the owner
// or broadcast to users pass through here.
package moderation

import (
	"unicode"

	goahocorasick "github.com/anknown/ahocorasick"
)

// Moderator wraps an Aho-Corasick automaton built over the normalized
// word list. The zero value passes everything through.
type Moderator struct {
	matcher     *goahocorasick.Machine
	replacement rune
}

// NewModerator builds the automaton. Words are normalized the same way
// input text is, so "s3cr3t" still matches "secret".
func NewModerator(words []string, replacement rune) (Moderator, error) {
	if len(words) == 0 {
		return Moderator{}, nil
	}
	patterns := make([][]rune, len(words))
	for i, word := range words {
		norm, _ := normalize([]rune(word))
		patterns[i] = norm
	}

	m := new(goahocorasick.Machine)
	if err := m.Build(patterns); err != nil {
		return Moderator{}, err
	}
	return Moderator{matcher: m, replacement: replacement}, nil
}

// Censor replaces every matched span with the replacement rune,
// preserving the original length and spacing.
func (m Moderator) Censor(text string) string {
	if m.matcher == nil {
		return text
	}

	original := []rune(text)
	norm, origIdx := normalize(original)
	if len(norm) == 0 {
		return text
	}

	spans := m.matcher.MultiPatternSearch(norm, false)
	for _, span := range spans {
		start := span.Pos
		end := start + len(span.Word)
		if start < 0 || end > len(origIdx) {
			continue
		}
		for i := origIdx[start]; i <= origIdx[end-1]; i++ {
			original[i] = m.replacement
		}
	}
	return string(original)
}

// normalize lowercases, undoes common leet substitutions, and drops
// punctuation and spacing. origIdx maps each normalized rune back to
// its position in the input so censoring can target the original text.
func normalize(input []rune) (norm []rune, origIdx []int) {
	for i, r := range input {
		switch r {
		case '4', '@':
			r = 'a'
		case '3':
			r = 'e'
		case '1', '!', '|':
			r = 'i'
		case '0':
			r = 'o'
		case '5', '$':
			r = 's'
		}
		if unicode.IsPunct(r) || unicode.IsSpace(r) || unicode.IsSymbol(r) {
			continue
		}
		norm = append(norm, unicode.ToLower(r))
		origIdx = append(origIdx, i)
	}
	return norm, origIdx
}
