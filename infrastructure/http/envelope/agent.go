package envelope

import (
	"strings"
)

type AgentCard struct {
	Name               string       `json:"name"`
	Description        string       `json:"description"`
	URL                string       `json:"url"`
	Version            string       `json:"version"`
	Capabilities       Capabilities `json:"capabilities"`
	DefaultInputModes  []string     `json:"defaultInputModes"`
	DefaultOutputModes []string     `json:"defaultOutputModes"`
	Skills             []Skill      `json:"skills"`
}

type Capabilities struct {
	Streaming         bool `json:"streaming"`
	PushNotifications bool `json:"pushNotifications"`
}

type Skill struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
	Examples    []string `json:"examples"`
}

// NewAgentCard describes the agent served at baseURL.
func NewAgentCard(baseURL, version string) AgentCard {
	return AgentCard{
		Name:        "MultiLingo Agent",
		Description: "Translates text, detects languages and analyzes strings from plain chat messages.",
		URL:         strings.TrimRight(baseURL, "/") + "/a2a",
		Version:     version,
		Capabilities: Capabilities{
			Streaming:         false,
			PushNotifications: false,
		},
		DefaultInputModes:  []string{"text/plain"},
		DefaultOutputModes: []string{"text/plain", "application/json"},
		Skills: []Skill{
			{
				ID:          "translate",
				Name:        "Translation",
				Description: "Translates text into one of the supported languages.",
				Tags:        []string{"translation", "language"},
				Examples:    []string{"Translate 'good morning' to Spanish", "How do you say 'thank you' in French?"},
			},
			{
				ID:          "detect_language",
				Name:        "Language detection",
				Description: "Identifies the language of a text.",
				Tags:        []string{"detection", "language"},
				Examples:    []string{"What language is 'hola mundo'?"},
			},
			{
				ID:          "analyze_string",
				Name:        "String analysis",
				Description: "Reports length, word count, palindrome status and character frequency.",
				Tags:        []string{"analysis", "palindrome"},
				Examples:    []string{"Analyze 'racecar'", "Is 'level' a palindrome?"},
			},
		},
	}
}
