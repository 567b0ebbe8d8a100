package domain

// Result is the protocol-agnostic answer to a chat message.
// Every envelope served over HTTP is a pure transformation of it.
type Result struct {
	Intent  string         `json:"intent"`
	Success bool           `json:"success"`
	Text    string         `json:"text"`
	Data    map[string]any `json:"data"`
	Error   *string        `json:"error"`
}

// Detection is the outcome of identifying the language of a text.
type Detection struct {
	Code       string  `json:"language_code"`
	Name       string  `json:"language_name"`
	Confidence float64 `json:"confidence"`
}

// Language is one entry of the supported language table.
type Language struct {
	Name string `json:"name" yaml:"name"`
	Code string `json:"code" yaml:"code"`
}
