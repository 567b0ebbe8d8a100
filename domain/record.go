// Package domain contains core concepts of the string analysis system.
// Records are immutable: a changed value is a new record.
package domain

import (
	"time"
)

// Properties are the derived fields of a value.
// They are a pure function of the value and never change once computed.
type Properties struct {
	Length             int            `json:"length"`
	IsPalindrome       bool           `json:"is_palindrome"`
	UniqueCharacters   int            `json:"unique_characters"`
	WordCount          int            `json:"word_count"`
	SHA256Hash         string         `json:"sha256_hash"`
	CharacterFrequency map[string]int `json:"character_frequency_map"`
}

// StringRecord is the persisted entity, keyed by the SHA-256 of its value.
type StringRecord struct {
	ID         string     `json:"id"`
	Value      string     `json:"value"`
	Properties Properties `json:"properties"`
	CreatedAt  time.Time  `json:"created_at"`
}
