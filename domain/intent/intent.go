// Package intent classifies free-text chat messages and extracts their arguments.
package intent

type Tag string

const (
	Translate      Tag = "translate"
	DetectLanguage Tag = "detect_language"
	AnalyzeString  Tag = "analyze_string"
	ListLanguages  Tag = "list_languages"
	Help           Tag = "help"
	Greeting       Tag = "greeting"
	Unknown        Tag = "unknown"
)

const (
	ArgText               = "text"
	ArgTargetLanguage     = "target_language"
	ArgTargetLanguageName = "target_language_name"
)

// Intent is the outcome of classification. Err holds an extraction condition
// (unresolved language or empty text) the caller turns into a failed result.
type Intent struct {
	Tag  Tag
	Args map[string]string
	Err  error
}

func (i Intent) Arg(name string) string {
	return i.Args[name]
}

// NeedsText reports whether the intent operates on a piece of user text.
func (t Tag) NeedsText() bool {
	switch t {
	case Translate, DetectLanguage, AnalyzeString:
		return true
	default:
		return false
	}
}
