// Package keywords finds whole-word keywords in free text with a single Aho-Corasick pass.
package keywords

import (
	"fmt"
	"slices"
	"strings"
	"unicode"

	goahocorasick "github.com/anknown/ahocorasick"
)

// prefixMarker turns a keyword into a word prefix: "langu*" matches "languages" and "langueages".
const prefixMarker = "*"

type Matcher struct {
	machine  *goahocorasick.Machine
	keywords map[string]keyword
}

type keyword struct {
	original string
	prefix   bool
}

// Match locates a keyword in the original text, in rune offsets.
type Match struct {
	Keyword string
	Start   int
	End     int
}

// TextMapping keeps, for every normalized rune, its index in the original text.
type TextMapping struct {
	Normalized []rune
	OrigIdx    []int
}

// NewMatcher builds the automaton over the normalized keywords.
func NewMatcher(words []string) (*Matcher, error) {
	keywords := make(map[string]keyword, len(words))
	patterns := make([][]rune, 0, len(words))
	for _, word := range words {
		prefix := strings.HasSuffix(word, prefixMarker)
		pattern := normalizeRunes([]rune(strings.TrimSuffix(word, prefixMarker)))
		if len(pattern) == 0 {
			return nil, fmt.Errorf("keyword %q is empty once normalized", word)
		}
		key := string(pattern)
		if _, ok := keywords[key]; ok {
			continue
		}
		keywords[key] = keyword{original: word, prefix: prefix}
		patterns = append(patterns, pattern)
	}
	if len(patterns) == 0 {
		return nil, fmt.Errorf("no keywords to match")
	}

	// The double-array trie underneath expects patterns in lexicographic order.
	slices.SortFunc(patterns, slices.Compare[[]rune])

	m := new(goahocorasick.Machine)
	if err := m.Build(patterns); err != nil {
		return nil, err
	}
	return &Matcher{machine: m, keywords: keywords}, nil
}

// Find returns every whole-word occurrence, in order of appearance.
func (m *Matcher) Find(text string) []Match {
	mapping := normalize(text)
	if len(mapping.Normalized) == 0 {
		return nil
	}

	var matches []Match
	for _, term := range m.machine.MultiPatternSearch(mapping.Normalized, false) {
		start := term.Pos
		end := start + len(term.Word)
		if start < 0 || end > len(mapping.Normalized) {
			continue
		}
		kw, ok := m.keywords[string(term.Word)]
		if !ok {
			continue
		}
		if start > 0 && isWordRune(mapping.Normalized[start-1]) {
			continue
		}
		if !kw.prefix && end < len(mapping.Normalized) && isWordRune(mapping.Normalized[end]) {
			continue
		}
		matches = append(matches, Match{
			Keyword: kw.original,
			Start:   mapping.OrigIdx[start],
			End:     mapping.OrigIdx[end-1] + 1,
		})
	}
	return matches
}

// Present returns the set of keywords found in text.
func (m *Matcher) Present(text string) map[string]bool {
	found := make(map[string]bool)
	for _, match := range m.Find(text) {
		found[match.Keyword] = true
	}
	return found
}

// normalize lower-cases the text and folds punctuation and whitespace runs into one space,
// tracking original rune positions.
func normalize(input string) TextMapping {
	origRunes := []rune(input)
	norm := make([]rune, 0, len(origRunes))
	origIdx := make([]int, 0, len(origRunes))

	for i, r := range origRunes {
		if isSeparator(origRunes, i) {
			if len(norm) == 0 || norm[len(norm)-1] == ' ' {
				continue
			}
			r = ' '
		}
		norm = append(norm, unicode.ToLower(r))
		origIdx = append(origIdx, i)
	}
	return TextMapping{Normalized: norm, OrigIdx: origIdx}
}

func normalizeRunes(input []rune) []rune {
	return []rune(strings.TrimSpace(string(normalize(string(input)).Normalized)))
}

// An apostrophe between two letters stays inside its word so "what's" is one token.
func isSeparator(runes []rune, i int) bool {
	r := runes[i]
	if r == '\'' || r == '’' {
		return i == 0 || i == len(runes)-1 || !unicode.IsLetter(runes[i-1]) || !unicode.IsLetter(runes[i+1])
	}
	return unicode.IsPunct(r) || unicode.IsSpace(r) || unicode.IsSymbol(r)
}

func isWordRune(r rune) bool {
	return r != ' '
}
