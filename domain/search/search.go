package search

import (
	"strconv"
	"strings"
)

// Query is a full-text search request over stored string values.
type Query struct {
	RawInput string // what the caller typed
	Terms    string // the text matched against the index
	Limit    int    // 0 means the caller's default
}

// Parse splits raw search input into terms and command-line style flags.
// Example: `hello world --limit 5`. Unknown flags are dropped with their value.
func Parse(input string) Query {
	query := Query{RawInput: input}

	parts := strings.Fields(input)
	var textTerms []string

	for i := 0; i < len(parts); i++ {
		part := parts[i]

		if strings.HasPrefix(part, "--") && i+1 < len(parts) {
			key := strings.TrimPrefix(part, "--")
			if key == "limit" {
				if n, err := strconv.Atoi(parts[i+1]); err == nil && n > 0 {
					query.Limit = n
				}
			}
			i++ // Skip the value part in next iteration
			continue
		}
		textTerms = append(textTerms, part)
	}

	query.Terms = strings.Join(textTerms, " ")
	return query
}
