package analyzer

import (
	"crypto/sha256"
	"encoding/hex"
	"multilingo/domain"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"
)

// Analyze computes every derived property of value.
// It is total over all strings and deterministic: casing uses unicode.ToLower only.
func Analyze(value string) domain.Properties {
	frequency := CharacterFrequency(value)
	return domain.Properties{
		Length:             utf8.RuneCountInString(value),
		IsPalindrome:       IsPalindrome(value),
		UniqueCharacters:   len(frequency),
		WordCount:          WordCount(value),
		SHA256Hash:         Hash(value),
		CharacterFrequency: frequency,
	}
}

// NewRecord analyzes value and stamps it with its creation time.
func NewRecord(value string, now time.Time) domain.StringRecord {
	properties := Analyze(value)
	return domain.StringRecord{
		ID:         properties.SHA256Hash,
		Value:      value,
		Properties: properties,
		CreatedAt:  now.UTC(),
	}
}

// IsPalindrome compares the alphanumeric, lower-cased runes of value with their reverse.
// An empty normalization is a palindrome.
func IsPalindrome(value string) bool {
	normalized := make([]rune, 0, len(value))
	for _, r := range value {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			normalized = append(normalized, unicode.ToLower(r))
		}
	}
	for i, j := 0, len(normalized)-1; i < j; i, j = i+1, j-1 {
		if normalized[i] != normalized[j] {
			return false
		}
	}
	return true
}

// WordCount splits on runs of whitespace.
func WordCount(value string) int {
	return len(strings.Fields(value))
}

// CharacterFrequency tallies every rune of the original string, case-sensitive.
func CharacterFrequency(value string) map[string]int {
	frequency := make(map[string]int)
	for _, r := range value {
		frequency[string(r)]++
	}
	return frequency
}

func Hash(value string) string {
	sum := sha256.Sum256([]byte(value))
	return hex.EncodeToString(sum[:])
}

// MostCommon returns the most frequent character, ties going to the one seen first.
func MostCommon(value string) (string, int) {
	frequency := CharacterFrequency(value)
	var best string
	var bestCount int
	for _, r := range value {
		char := string(r)
		if count := frequency[char]; count > bestCount {
			best, bestCount = char, count
		}
	}
	return best, bestCount
}
