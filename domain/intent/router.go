package intent

import (
	"fmt"
	"multilingo/domain"
	"multilingo/domain/language"
	"multilingo/errors"
	"multilingo/keywords"
	"regexp"
	"strings"
)

var (
	helpPhrases = map[string]bool{
		"help": true, "help me": true, "commands": true, "usage": true, "guide": true,
		"menu": true, "options": true, "instructions": true, "what can you do": true,
		"how does this work": true, "how do i use this": true, "how do i use you": true,
	}
	greetingPhrases = map[string]bool{
		"hi": true, "hello": true, "hey": true, "hiya": true, "howdy": true, "yo": true,
		"greetings": true, "hello there": true, "hi there": true, "hey there": true,
		"good morning": true, "good afternoon": true, "good evening": true,
		"what's up": true, "whats up": true, "sup": true,
	}
	listWords     = []string{"list", "show", "supported", "support", "available", "all", "what languages", "which languages"}
	languageWords = []string{"langu*", "lang", "langs"}
)

var (
	translatePhrase = regexp.MustCompile(`(?i)^(?:(?:please|can you|could you|would you|pls)[,\s]+)*translate\b[:\s]*(.*)$`)
	sayPhrase       = regexp.MustCompile(`(?i)^(?:how\s+(?:do|would|can|could|should|to)\s+(?:you\s+|i\s+|we\s+|one\s+)?)?say\s+(.+)$`)
	whatIsPhrase    = regexp.MustCompile(`(?i)^(?:what\s+is|what's|whats|what\s+does)\s+(.+?)(?:\s+mean)?$`)
	bareInPhrase    = regexp.MustCompile(`(?i)^(.+)\s+in\s+(\S+?)[\s?.!]*$`)
	detectPhrases   = []*regexp.Regexp{
		regexp.MustCompile(`(?i)^(?:what|which)\s+language\s+is\s+(?:this\s*:\s*)?(.*)$`),
		regexp.MustCompile(`(?i)^(?:please\s+)?(?:detect|identify)\s+(?:the\s+)?language\b\s*(?:of\s+|for\s+|in\s+)?[:\s]*(.*)$`),
		regexp.MustCompile(`(?i)^what\s+is\s+this\s+language\s*[:,?]?\s*(.*)$`),
	}
	analyzePhrases = []*regexp.Regexp{
		regexp.MustCompile(`(?i)^is\s+(.+?)\s+a\s+palindrome\W*$`),
		regexp.MustCompile(`(?i)^(?:please\s+)?(?:analy[sz]e|check)\b[:\s]*(.*)$`),
	}
)

// vocabulary fed to the keyword automaton; every variant first checks that one of its keywords is present.
var vocabulary = []string{
	"translate", "say", "what", "what's", "whats", "in",
	"language", "detect", "identify",
	"analyze", "analyse", "check", "palindrome",
}

// Router classifies messages. It is immutable and safe for concurrent use.
type Router struct {
	languages *language.Table
	keywords  *keywords.Matcher
	variants  []variant
}

type variant struct {
	name     string
	keywords []string
	extract  func(r *Router, m message) (Intent, bool)
}

type message struct {
	original string
	phrase   string
	found    map[string]bool
}

func NewRouter(languages *language.Table) (*Router, error) {
	words := append(append(append([]string{}, vocabulary...), listWords...), languageWords...)
	matcher, err := keywords.NewMatcher(words)
	if err != nil {
		return nil, fmt.Errorf("build keyword matcher: %w", err)
	}
	r := &Router{languages: languages, keywords: matcher}
	r.variants = []variant{
		{name: "help", extract: (*Router).help},
		{name: "greeting", extract: (*Router).greeting},
		{name: "list_languages", keywords: listWords, extract: (*Router).listLanguages},
		{name: "translate_verb", keywords: []string{"translate"}, extract: (*Router).translateVerb},
		{name: "translate_say", keywords: []string{"say"}, extract: (*Router).translateSay},
		{name: "translate_what_is", keywords: []string{"what", "what's", "whats"}, extract: (*Router).translateWhatIs},
		{name: "translate_bare", keywords: []string{"in"}, extract: (*Router).translateBare},
		{name: "detect_language", keywords: []string{"language", "detect", "identify"}, extract: (*Router).detectLanguage},
		{name: "analyze_string", keywords: []string{"analyze", "analyse", "check", "palindrome"}, extract: (*Router).analyzeString},
	}
	return r, nil
}

// Classify runs the variants in priority order; the first one that holds wins.
func (r *Router) Classify(text string) Intent {
	trimmed := strings.TrimSpace(text)
	m := message{
		original: trimmed,
		phrase:   phrase(trimmed),
		found:    r.keywords.Present(stripQuoted(trimmed)),
	}
	for _, v := range r.variants {
		if len(v.keywords) > 0 && !m.hasAny(v.keywords) {
			continue
		}
		if intent, ok := v.extract(r, m); ok {
			return intent
		}
	}
	return Intent{Tag: Unknown}
}

// Variants returns the variant names in priority order.
func (r *Router) Variants() []string {
	names := make([]string, len(r.variants))
	for i, v := range r.variants {
		names[i] = v.name
	}
	return names
}

func (m message) hasAny(words []string) bool {
	for _, w := range words {
		if m.found[w] {
			return true
		}
	}
	return false
}

func (r *Router) help(m message) (Intent, bool) {
	if helpPhrases[m.phrase] || (m.phrase == "" && strings.Trim(m.original, "? ") == "" && m.original != "") {
		return Intent{Tag: Help}, true
	}
	return Intent{}, false
}

func (r *Router) greeting(m message) (Intent, bool) {
	return Intent{Tag: Greeting}, greetingPhrases[m.phrase]
}

func (r *Router) listLanguages(m message) (Intent, bool) {
	return Intent{Tag: ListLanguages}, m.hasAny(languageWords)
}

func (r *Router) translateVerb(m message) (Intent, bool) {
	match := translatePhrase.FindStringSubmatch(m.original)
	if match == nil {
		return Intent{}, false
	}
	rest := match[1]
	if text, tail, ok := leadingMarker(rest, toMarkers); ok {
		if lang, resolved := r.resolveTail(tail); resolved {
			return r.translation(text, lang.Code, lang.Name, nil), true
		}
	}
	text, tail, _ := splitTarget(rest, toMarkers)
	return r.translate(text, tail), true
}

func (r *Router) translateSay(m message) (Intent, bool) {
	match := sayPhrase.FindStringSubmatch(m.original)
	if match == nil {
		return Intent{}, false
	}
	text, tail, _ := splitTarget(match[1], inMarkers)
	return r.translate(text, tail), true
}

// translateWhatIs only holds when an "in" marker separates the text from a language.
func (r *Router) translateWhatIs(m message) (Intent, bool) {
	match := whatIsPhrase.FindStringSubmatch(m.original)
	if match == nil {
		return Intent{}, false
	}
	text, tail, found := splitTarget(match[1], inMarkers)
	if !found || tail == "" {
		return Intent{}, false
	}
	return r.translate(text, tail), true
}

// translateBare holds for "<text> in <language name>" and never reports an unresolved language.
func (r *Router) translateBare(m message) (Intent, bool) {
	match := bareInPhrase.FindStringSubmatch(m.original)
	if match == nil {
		return Intent{}, false
	}
	lang, ok := r.languages.LookupName(match[2])
	if !ok {
		return Intent{}, false
	}
	return r.translation(cleanText(match[1]), lang.Code, lang.Name, nil), true
}

func (r *Router) detectLanguage(m message) (Intent, bool) {
	for _, pattern := range detectPhrases {
		if match := pattern.FindStringSubmatch(m.original); match != nil {
			return withText(DetectLanguage, match[1]), true
		}
	}
	return Intent{}, false
}

func (r *Router) analyzeString(m message) (Intent, bool) {
	for _, pattern := range analyzePhrases {
		if match := pattern.FindStringSubmatch(m.original); match != nil {
			return withText(AnalyzeString, match[1]), true
		}
	}
	return Intent{}, false
}

// translate resolves the target tail. An unresolved language takes precedence
// over an empty text since context can only supply the text.
func (r *Router) translate(text, tail string) Intent {
	lang, ok := r.resolveTail(tail)
	if !ok {
		token := ""
		if candidates := resolvableTail(tail); len(candidates) > 0 {
			token = candidates[len(candidates)-1]
		}
		return r.translation(text, "", "", &errors.UnresolvedLanguageError{Token: token})
	}
	return r.translation(text, lang.Code, lang.Name, nil)
}

func (r *Router) translation(text, code, name string, err error) Intent {
	text = cleanText(text)
	if isPronoun(text) {
		text = ""
	}
	if err == nil && text == "" {
		err = errors.ErrEmptyExtraction
	}
	return Intent{
		Tag: Translate,
		Args: map[string]string{
			ArgText:               text,
			ArgTargetLanguage:     code,
			ArgTargetLanguageName: name,
		},
		Err: err,
	}
}

func (r *Router) resolveTail(tail string) (domain.Language, bool) {
	for _, candidate := range resolvableTail(tail) {
		if lang, ok := r.languages.Resolve(candidate); ok {
			return lang, true
		}
	}
	return domain.Language{}, false
}

func withText(tag Tag, raw string) Intent {
	text := cleanText(raw)
	if isPronoun(text) {
		text = ""
	}
	intent := Intent{Tag: tag, Args: map[string]string{ArgText: text}}
	if text == "" {
		intent.Err = errors.ErrEmptyExtraction
	}
	return intent
}
