// Package query turns plain-English descriptions of strings into list filters.
package query

import (
	"fmt"
	"multilingo/domain"
	"multilingo/errors"
	"regexp"
	"strconv"
	"strings"

	"github.com/samber/lo"
)

var (
	palindrome    = regexp.MustCompile(`\bpalindrom(?:e|ic|es)\b`)
	notPalindrome = regexp.MustCompile(`\b(?:not|non)[-\s]palindrom(?:e|ic|es)\b`)
	emptyStrings  = regexp.MustCompile(`\bempty\s+strings?\b`)

	longerThan  = regexp.MustCompile(`\blonger\s+than\s+(\d+)`)
	shorterThan = regexp.MustCompile(`\bshorter\s+than\s+(\d+)`)
	atLeast     = regexp.MustCompile(`\bat\s+least\s+(\d+)\s+characters?`)
	atMost      = regexp.MustCompile(`\bat\s+most\s+(\d+)\s+characters?`)
	between     = regexp.MustCompile(`\bbetween\s+(\d+)\s+and\s+(\d+)\s+characters?`)
	exactly     = regexp.MustCompile(`\bexactly\s+(\d+)\s+characters?`)

	containsLetter    = regexp.MustCompile(`\bcontain(?:ing|s)?\s+(?:the\s+)?letter\s+([\p{L}\p{N}])(?:[^\p{L}\p{N}]|$)`)
	withCharacter     = regexp.MustCompile(`\b(?:containing|with)\s+(?:the\s+)?characters?\s+([\p{L}\p{N}])(?:[^\p{L}\p{N}]|$)`)
	stringsWith       = regexp.MustCompile(`\bstrings?\s+with\s+(\p{L})(?:[^\p{L}\p{N}]|$)`)
	ordinalVowel      = regexp.MustCompile(`\b(first|second|third|fourth|fifth)\s+vowel\b`)
	numericWordCount  = regexp.MustCompile(`\b(\d+)\s+words?\b`)
	wordCountPatterns = []struct {
		pattern *regexp.Regexp
		count   int
	}{
		{regexp.MustCompile(`\bsingle\s+word\b`), 1},
		{regexp.MustCompile(`\bone\s+word\b`), 1},
		{regexp.MustCompile(`\btwo\s+words?\b`), 2},
		{regexp.MustCompile(`\bthree\s+words?\b`), 3},
		{regexp.MustCompile(`\bfour\s+words?\b`), 4},
		{regexp.MustCompile(`\bfive\s+words?\b`), 5},
	}
)

var vowels = map[string]string{"first": "a", "second": "e", "third": "i", "fourth": "o", "fifth": "u"}

// Examples lists queries the parser understands.
var Examples = []string{
	"all single word palindromic strings",
	"palindromes with one word",
	"strings longer than 10 characters",
	"strings shorter than 5 characters",
	"strings between 5 and 10 characters",
	"strings containing the letter z",
	"strings with the character a",
	"palindromic strings containing the first vowel",
	"two word strings",
	"strings with exactly 7 characters",
	"not palindromic strings",
	"strings at least 20 characters long",
	"empty strings",
}

// Parse extracts a filter from a natural-language query. Later clauses override earlier ones
// on the same field: "exactly" beats "between", which beats "at least/at most" and "longer/shorter".
func Parse(text string) (domain.Filter, error) {
	q := strings.ToLower(strings.TrimSpace(text))
	var filter domain.Filter

	if palindrome.MatchString(q) {
		filter.IsPalindrome = lo.ToPtr(true)
	}

	if count, ok := wordCount(q); ok {
		filter.WordCount = lo.ToPtr(count)
	}

	if n, ok := number(longerThan, q, 1); ok {
		filter.MinLength = lo.ToPtr(n + 1)
	}
	if n, ok := number(shorterThan, q, 1); ok {
		filter.MaxLength = lo.ToPtr(n - 1)
	}
	if n, ok := number(atLeast, q, 1); ok {
		filter.MinLength = lo.ToPtr(n)
	}
	if n, ok := number(atMost, q, 1); ok {
		filter.MaxLength = lo.ToPtr(n)
	}
	if low, ok := number(between, q, 1); ok {
		high, _ := number(between, q, 2)
		filter.MinLength, filter.MaxLength = lo.ToPtr(low), lo.ToPtr(high)
	}
	if n, ok := number(exactly, q, 1); ok {
		filter.MinLength, filter.MaxLength = lo.ToPtr(n), lo.ToPtr(n)
	}

	for _, pattern := range []*regexp.Regexp{containsLetter, withCharacter, stringsWith} {
		if match := pattern.FindStringSubmatch(q); match != nil {
			filter.ContainsCharacter = lo.ToPtr(match[1])
		}
	}
	if match := ordinalVowel.FindStringSubmatch(q); match != nil {
		filter.ContainsCharacter = lo.ToPtr(vowels[match[1]])
	}

	if emptyStrings.MatchString(q) {
		filter.MinLength, filter.MaxLength = lo.ToPtr(0), lo.ToPtr(0)
	}
	if notPalindrome.MatchString(q) {
		filter.IsPalindrome = lo.ToPtr(false)
	}

	if filter.IsEmpty() {
		return domain.Filter{}, fmt.Errorf("%w: %q", errors.ErrUnparsableQuery, text)
	}
	if filter.Conflicting() || (filter.MaxLength != nil && *filter.MaxLength < 0) {
		return filter, fmt.Errorf("%w: %q", errors.ErrConflictingFilters, text)
	}
	return filter, nil
}

func wordCount(q string) (int, bool) {
	for _, wc := range wordCountPatterns {
		if wc.pattern.MatchString(q) {
			return wc.count, true
		}
	}
	return number(numericWordCount, q, 1)
}

func number(pattern *regexp.Regexp, q string, group int) (int, bool) {
	match := pattern.FindStringSubmatch(q)
	if match == nil {
		return 0, false
	}
	n, err := strconv.Atoi(match[group])
	if err != nil {
		return 0, false
	}
	return n, true
}
