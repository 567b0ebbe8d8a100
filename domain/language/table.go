// Package language holds the static table of supported translation targets.
package language

import (
	"embed"
	"fmt"
	"io/fs"
	"multilingo/domain"
	"strings"
	"unicode"
	"unicode/utf8"

	"gopkg.in/yaml.v3"
)

//go:embed languages.yaml
var embedded embed.FS

const (
	defaultFile = "languages.yaml"
	// Shortest abbreviation accepted for a name ("spa" -> spanish).
	minAbbreviation = 3
	// Tokens sharing this many leading letters with a name resolve to it ("portugese").
	stemLength = 4
)

type entry struct {
	Name    string   `yaml:"name"`
	Code    string   `yaml:"code"`
	Aliases []string `yaml:"aliases"`
}

type document struct {
	Languages []entry `yaml:"languages"`
}

// Table resolves free-text language names and codes. It is read-only after construction.
type Table struct {
	languages []domain.Language
	byName    map[string]domain.Language
	byCode    map[string]domain.Language
}

// Default loads the table shipped with the binary.
func Default() (*Table, error) {
	return Load(embedded, defaultFile)
}

// Load parses a YAML language table from the given filesystem.
func Load(fsys fs.FS, path string) (*Table, error) {
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("read language table: %w", err)
	}
	var doc document
	if err = yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse language table: %w", err)
	}
	return newTable(doc.Languages)
}

func newTable(entries []entry) (*Table, error) {
	if len(entries) == 0 {
		return nil, fmt.Errorf("language table is empty")
	}
	t := &Table{
		byName: make(map[string]domain.Language),
		byCode: make(map[string]domain.Language),
	}
	for _, e := range entries {
		name := normalize(e.Name)
		code := normalize(e.Code)
		if name == "" || code == "" {
			return nil, fmt.Errorf("language entry %+v is missing a name or a code", e)
		}
		if _, ok := t.byCode[code]; ok {
			return nil, fmt.Errorf("duplicate language code %q", code)
		}
		lang := domain.Language{Name: name, Code: code}
		t.languages = append(t.languages, lang)
		t.byCode[code] = lang
		t.byName[name] = lang
		for _, alias := range e.Aliases {
			t.byName[normalize(alias)] = lang
		}
	}
	return t, nil
}

// Resolve matches a token against names, aliases and codes, then tolerates
// abbreviations and misspelled endings that share the first letters of a name.
func (t *Table) Resolve(token string) (domain.Language, bool) {
	token = normalize(token)
	if token == "" {
		return domain.Language{}, false
	}
	if lang, ok := t.byName[token]; ok {
		return lang, true
	}
	if lang, ok := t.byCode[token]; ok {
		return lang, true
	}
	length := utf8.RuneCountInString(token)
	if length < minAbbreviation {
		return domain.Language{}, false
	}
	for _, lang := range t.languages {
		if strings.HasPrefix(lang.Name, token) {
			return lang, true
		}
	}
	if length < stemLength {
		return domain.Language{}, false
	}
	for _, lang := range t.languages {
		if utf8.RuneCountInString(lang.Name) >= stemLength &&
			strings.HasPrefix(token, string([]rune(lang.Name)[:stemLength])) {
			return lang, true
		}
	}
	return domain.Language{}, false
}

// Name returns the table name of a code, or the code itself when unknown.
func (t *Table) Name(code string) string {
	if lang, ok := t.ByCode(code); ok {
		return lang.Name
	}
	return code
}

// LookupName only accepts an exact name or alias, never a code or an abbreviation.
func (t *Table) LookupName(token string) (domain.Language, bool) {
	lang, ok := t.byName[normalize(token)]
	return lang, ok
}

func (t *Table) ByCode(code string) (domain.Language, bool) {
	lang, ok := t.byCode[normalize(code)]
	return lang, ok
}

// All returns the languages in table order.
func (t *Table) All() []domain.Language {
	out := make([]domain.Language, len(t.languages))
	copy(out, t.languages)
	return out
}

func (t *Table) Len() int {
	return len(t.languages)
}

// Title capitalizes a language name for display ("spanish" -> "Spanish").
func Title(name string) string {
	r, size := utf8.DecodeRuneInString(name)
	if r == utf8.RuneError {
		return name
	}
	return string(unicode.ToUpper(r)) + name[size:]
}

func normalize(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.TrimFunc(s, func(r rune) bool {
		return unicode.IsPunct(r) || unicode.IsSymbol(r) || unicode.IsSpace(r)
	})
}
