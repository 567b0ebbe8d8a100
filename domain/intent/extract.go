package intent

import (
	"regexp"
	"strings"
	"unicode"
)

var quotePairs = map[rune]rune{
	'\'': '\'',
	'"':  '"',
	'“':  '”',
	'‘':  '’',
	'«':  '»',
}

const quoteChars = `'"“”‘’«»`

var (
	// Quoted spans are skipped when looking for keywords so "analyze 'list languages'" stays an analysis.
	quotedSpan = regexp.MustCompile(`"[^"]*"|“[^”]*”|«[^»]*»|(?:^|\s)['‘][^'’]*['’](?:$|[\s[:punct:]])`)

	toMarkers = markerSet{
		words:   []string{"into", "to"},
		pattern: regexp.MustCompile(`(?i)\s(?:to|into)\s`),
	}
	inMarkers = markerSet{
		words:   []string{"in"},
		pattern: regexp.MustCompile(`(?i)\s(?:in)\s`),
	}
)

// Words that point back at the text of the previous turn.
var pronouns = map[string]bool{
	"this": true, "that": true, "it": true, "these": true, "those": true,
	"this text": true, "that text": true, "the same": true, "the text": true,
}

type markerSet struct {
	words   []string
	pattern *regexp.Regexp
}

// splitTarget separates the text to translate from the target-language tail:
// a quoted text followed by a marker, otherwise the last marker occurrence.
func splitTarget(rest string, markers markerSet) (text, tail string, found bool) {
	rest = strings.TrimSpace(rest)
	if text, tail, ok := quotedBeforeMarker(rest, markers); ok {
		return text, tail, true
	}
	spans := markers.pattern.FindAllStringIndex(" "+rest+" ", -1)
	if len(spans) == 0 {
		return cleanText(rest), "", false
	}
	last := spans[len(spans)-1]
	// Offsets are shifted by the leading space added above.
	start, end := max(last[0]-1, 0), min(last[1]-1, len(rest))
	return cleanText(rest[:start]), strings.TrimSpace(rest[end:]), true
}

// leadingMarker handles "to spanish: good morning" and the bare "to spanish".
func leadingMarker(rest string, markers markerSet) (text, tail string, ok bool) {
	after, ok := cutMarker(strings.TrimSpace(rest), markers)
	if !ok {
		return "", "", false
	}
	lang, text, _ := strings.Cut(strings.TrimSpace(after), " ")
	if i := strings.IndexAny(lang, ":,"); i >= 0 {
		text = lang[i+1:] + " " + text
		lang = lang[:i]
	}
	return cleanText(strings.TrimLeft(strings.TrimSpace(text), ":,")), lang, true
}

// quotedBeforeMarker finds the first quote opening a word and the closing quote
// of the same kind that is directly followed by a marker. Apostrophes inside the
// quoted text are skipped because they are not followed by a marker.
func quotedBeforeMarker(rest string, markers markerSet) (text, tail string, ok bool) {
	runes := []rune(rest)
	for i, r := range runes {
		closer, isQuote := quotePairs[r]
		if !isQuote || (i > 0 && !unicode.IsSpace(runes[i-1])) {
			continue
		}
		for j := i + 1; j < len(runes); j++ {
			if runes[j] != closer {
				continue
			}
			if after, ok := cutMarker(strings.TrimLeft(string(runes[j+1:]), " ,"), markers); ok {
				return strings.TrimSpace(string(runes[i+1 : j])), strings.TrimSpace(after), true
			}
		}
		return "", "", false
	}
	return "", "", false
}

// cutMarker strips a leading marker word followed by a space, case-insensitively.
func cutMarker(s string, markers markerSet) (string, bool) {
	for _, word := range markers.words {
		if len(s) > len(word) && strings.EqualFold(s[:len(word)], word) && s[len(word)] == ' ' {
			return s[len(word)+1:], true
		}
	}
	return "", false
}

// cleanText unwraps a fully quoted text and trims stray quotes, whitespace and trailing question marks.
func cleanText(s string) string {
	s = strings.TrimSpace(s)
	if inner, ok := unwrapQuotes(s); ok {
		return inner
	}
	s = strings.TrimRight(s, "?! ")
	return strings.TrimSpace(strings.Trim(s, quoteChars+" "))
}

func unwrapQuotes(s string) (string, bool) {
	runes := []rune(s)
	if len(runes) < 2 {
		return "", false
	}
	closer, ok := quotePairs[runes[0]]
	if !ok {
		return "", false
	}
	end := len(runes) - 1
	for end > 0 && (unicode.IsPunct(runes[end]) || unicode.IsSpace(runes[end])) && runes[end] != closer {
		end--
	}
	if end == 0 || runes[end] != closer {
		return "", false
	}
	return strings.TrimSpace(string(runes[1:end])), true
}

// resolvableTail strips politeness and punctuation from a target-language tail
// and returns the candidates to try: the whole tail, then its first word.
func resolvableTail(tail string) []string {
	tail = strings.TrimFunc(tail, func(r rune) bool {
		return unicode.IsPunct(r) || unicode.IsSpace(r)
	})
	words := strings.Fields(tail)
	for len(words) > 0 && isPoliteness(words[len(words)-1]) {
		words = words[:len(words)-1]
	}
	if len(words) == 0 {
		return nil
	}
	first := strings.TrimFunc(words[0], unicode.IsPunct)
	whole := strings.Join(words, " ")
	if whole == first {
		return []string{first}
	}
	return []string{whole, first}
}

func isPoliteness(word string) bool {
	word = strings.ToLower(strings.TrimFunc(word, unicode.IsPunct))
	return word == "please" || word == "pls" || word == "thanks"
}

func isPronoun(text string) bool {
	return pronouns[strings.ToLower(strings.TrimSpace(text))]
}

func stripQuoted(message string) string {
	return quotedSpan.ReplaceAllString(message, " ")
}

// phrase lower-cases a message, drops punctuation and politeness words and joins the rest with single spaces.
func phrase(message string) string {
	cleaned := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '\'' {
			return unicode.ToLower(r)
		}
		return ' '
	}, message)
	words := make([]string, 0, 4)
	for _, word := range strings.Fields(cleaned) {
		if isPoliteness(word) {
			continue
		}
		words = append(words, word)
	}
	return strings.Join(words, " ")
}
