package domain

import (
	"strings"
)

// Filter selects stored records. Nil fields are not applied, set fields are combined with AND.
type Filter struct {
	IsPalindrome      *bool   `json:"is_palindrome,omitempty"`
	MinLength         *int    `json:"min_length,omitempty" validate:"omitempty,gte=0"`
	MaxLength         *int    `json:"max_length,omitempty" validate:"omitempty,gte=0"`
	WordCount         *int    `json:"word_count,omitempty" validate:"omitempty,gte=0"`
	ContainsCharacter *string `json:"contains_character,omitempty" validate:"omitempty,len=1"`
}

func (f Filter) IsEmpty() bool {
	return f.IsPalindrome == nil && f.MinLength == nil && f.MaxLength == nil &&
		f.WordCount == nil && f.ContainsCharacter == nil
}

// Conflicting reports a length window that can never match.
func (f Filter) Conflicting() bool {
	return f.MinLength != nil && f.MaxLength != nil && *f.MaxLength < *f.MinLength
}

func (f Filter) Match(record StringRecord) bool {
	p := record.Properties
	if f.IsPalindrome != nil && p.IsPalindrome != *f.IsPalindrome {
		return false
	}
	if f.MinLength != nil && p.Length < *f.MinLength {
		return false
	}
	if f.MaxLength != nil && p.Length > *f.MaxLength {
		return false
	}
	if f.WordCount != nil && p.WordCount != *f.WordCount {
		return false
	}
	if f.ContainsCharacter != nil && !strings.Contains(record.Value, *f.ContainsCharacter) {
		return false
	}
	return true
}

// Applied lists the filters that are set, keyed by their query parameter name.
// It returns nil when nothing is applied.
func (f Filter) Applied() map[string]any {
	if f.IsEmpty() {
		return nil
	}
	applied := make(map[string]any)
	if f.IsPalindrome != nil {
		applied["is_palindrome"] = *f.IsPalindrome
	}
	if f.MinLength != nil {
		applied["min_length"] = *f.MinLength
	}
	if f.MaxLength != nil {
		applied["max_length"] = *f.MaxLength
	}
	if f.WordCount != nil {
		applied["word_count"] = *f.WordCount
	}
	if f.ContainsCharacter != nil {
		applied["contains_character"] = *f.ContainsCharacter
	}
	return applied
}
