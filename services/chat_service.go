package services

import (
	"context"
	stderrors "errors"
	"fmt"
	"log/slog"
	"multilingo/contract"
	"multilingo/domain"
	"multilingo/domain/analyzer"
	"multilingo/domain/intent"
	"multilingo/domain/language"
	"multilingo/errors"
	"multilingo/observability"
	"strings"
	"time"

	"github.com/samber/lo"
)

type IChatService interface {
	Handle(ctx context.Context, request ChatRequest) domain.Result
	Translate(ctx context.Context, text, targetLanguage string) domain.Result
}

// ChatRequest is one user message plus the text of the previous turn,
// used when the message only refers to it ("translate this to french").
type ChatRequest struct {
	Message  string
	LastText string
}

type ChatService struct {
	router    *intent.Router
	languages *language.Table
	backend   contract.TranslationBackend
	submitter contract.Submitter
	metrics   *observability.Metrics
	log       *slog.Logger
	now       func() time.Time
}

func NewChatService(router *intent.Router, languages *language.Table, backend contract.TranslationBackend,
	submitter contract.Submitter, metrics *observability.Metrics, log *slog.Logger) *ChatService {
	return &ChatService{
		router:    router,
		languages: languages,
		backend:   backend,
		submitter: submitter,
		metrics:   metrics,
		log:       log,
		now:       time.Now,
	}
}

// Handle classifies a message and runs its intent. It never fails:
// every error becomes an unsuccessful result carrying its kind.
func (s *ChatService) Handle(ctx context.Context, request ChatRequest) domain.Result {
	in := s.router.Classify(request.Message)
	if stderrors.Is(in.Err, errors.ErrEmptyExtraction) && strings.TrimSpace(request.LastText) != "" {
		in.Args[intent.ArgText] = strings.TrimSpace(request.LastText)
		in.Err = nil
		s.log.Debug("Using previous text from context", "intent", in.Tag)
	}
	result := s.dispatch(ctx, in)
	s.log.Info("Chat message handled", "intent", result.Intent, "success", result.Success)
	if s.metrics != nil {
		s.metrics.CountIntent(result.Intent, result.Success)
	}
	return result
}

func (s *ChatService) dispatch(ctx context.Context, in intent.Intent) domain.Result {
	if in.Err != nil {
		return s.failure(in.Tag, in.Err)
	}
	switch in.Tag {
	case intent.Translate:
		lang := domain.Language{Code: in.Arg(intent.ArgTargetLanguage), Name: in.Arg(intent.ArgTargetLanguageName)}
		return s.translate(ctx, in.Arg(intent.ArgText), lang)
	case intent.DetectLanguage:
		return s.detect(ctx, in.Arg(intent.ArgText))
	case intent.AnalyzeString:
		return s.analyze(in.Arg(intent.ArgText))
	case intent.ListLanguages:
		return s.listLanguages()
	case intent.Help:
		return success(intent.Help, helpText, nil)
	case intent.Greeting:
		return success(intent.Greeting, greetingText, nil)
	default:
		return success(intent.Unknown, unknownText, nil)
	}
}

// Translate serves direct translation requests where the target is given apart from the text.
func (s *ChatService) Translate(ctx context.Context, text, targetLanguage string) domain.Result {
	text = strings.TrimSpace(text)
	var result domain.Result
	lang, ok := s.languages.Resolve(targetLanguage)
	switch {
	case !ok:
		result = s.failure(intent.Translate, &errors.UnresolvedLanguageError{Token: strings.TrimSpace(targetLanguage)})
	case text == "":
		result = s.failure(intent.Translate, errors.ErrEmptyExtraction)
	default:
		result = s.translate(ctx, text, lang)
	}
	if s.metrics != nil {
		s.metrics.CountIntent(result.Intent, result.Success)
	}
	return result
}

func (s *ChatService) translate(ctx context.Context, text string, target domain.Language) domain.Result {
	translated, err := s.backend.Translate(ctx, text, target.Code)
	if err != nil {
		s.log.Warn("Translation failed", "target", target.Code, "error", err)
		return s.failure(intent.Translate, err)
	}
	source := domain.Detection{Code: "auto", Name: "auto-detected"}
	if detection, err := s.backend.DetectLanguage(ctx, text); err == nil {
		source = detection
	}
	record := s.persist(text)
	props := record.Properties

	lines := []string{
		"Translation Complete!",
		"",
		fmt.Sprintf("Original (%s): %s", source.Name, text),
		fmt.Sprintf("%s: %s", language.Title(target.Name), translated),
		"",
		"Analysis:",
		fmt.Sprintf("Length: %d characters", props.Length),
		fmt.Sprintf("Words: %d", props.WordCount),
	}
	if props.IsPalindrome {
		lines = append(lines, "Palindrome: Yes")
	}
	return success(intent.Translate, strings.Join(lines, "\n"), map[string]any{
		"original":             text,
		"translation":          translated,
		"source_language":      source.Code,
		"target_language":      target.Code,
		"target_language_name": target.Name,
		"analysis":             props,
	})
}

func (s *ChatService) detect(ctx context.Context, text string) domain.Result {
	detection, err := s.backend.DetectLanguage(ctx, text)
	if err != nil {
		s.log.Warn("Language detection failed", "error", err)
		return s.failure(intent.DetectLanguage, err)
	}
	message := fmt.Sprintf("Language Detected!\n\nText: %s\nLanguage: %s (%s)\nConfidence: %.0f%%",
		text, language.Title(detection.Name), detection.Code, detection.Confidence*100)
	return success(intent.DetectLanguage, message, map[string]any{
		"text":          text,
		"language_code": detection.Code,
		"language_name": detection.Name,
		"confidence":    detection.Confidence,
	})
}

func (s *ChatService) analyze(text string) domain.Result {
	record := s.persist(text)
	props := record.Properties

	var b strings.Builder
	fmt.Fprintf(&b, "String Analysis\n\nText: %s\n\nProperties:\n", text)
	fmt.Fprintf(&b, "Length: %d characters\n", props.Length)
	fmt.Fprintf(&b, "Words: %d\n", props.WordCount)
	fmt.Fprintf(&b, "Unique characters: %d\n", props.UniqueCharacters)
	fmt.Fprintf(&b, "Palindrome: %s", lo.Ternary(props.IsPalindrome, "Yes", "No"))
	if char, count := analyzer.MostCommon(text); count > 0 {
		fmt.Fprintf(&b, "\nMost common character: %q (%d)", char, count)
	}
	return success(intent.AnalyzeString, b.String(), map[string]any{
		"id":         record.ID,
		"value":      record.Value,
		"properties": props,
	})
}

func (s *ChatService) listLanguages() domain.Result {
	languages := s.languages.All()
	lines := make([]string, 0, len(languages)+4)
	lines = append(lines, fmt.Sprintf("Supported Languages (%d)", len(languages)), "")
	for _, lang := range languages {
		lines = append(lines, fmt.Sprintf("- %s (%s)", language.Title(lang.Name), lang.Code))
	}
	lines = append(lines, "", "You can use either the language name or code!")
	return success(intent.ListLanguages, strings.Join(lines, "\n"), map[string]any{
		"languages": languages,
		"count":     len(languages),
	})
}

// persist analyzes text and hands the record to background persistence.
// A dropped record is already logged by the submitter.
func (s *ChatService) persist(text string) domain.StringRecord {
	record := analyzer.NewRecord(text, s.now())
	_ = s.submitter.Submit(record)
	return record
}

func (s *ChatService) failure(tag intent.Tag, err error) domain.Result {
	kind := errors.KindOf(err)
	return domain.Result{
		Intent:  string(tag),
		Success: false,
		Text:    failureText(tag, err, kind),
		Error:   lo.ToPtr(string(kind)),
	}
}

func failureText(tag intent.Tag, err error, kind errors.Kind) string {
	switch kind {
	case errors.KindUnresolvedLanguage:
		var unresolved *errors.UnresolvedLanguageError
		if stderrors.As(err, &unresolved) && unresolved.Token != "" {
			return fmt.Sprintf("I don't know the language %q. Type \"list languages\" to see the supported ones.", unresolved.Token)
		}
		return "Which language should I translate to? Try: 'Translate [your text] to [language]'"
	case errors.KindEmptyExtraction:
		return emptyTextHints[tag]
	case errors.KindTranslationTimeout:
		return "The translation service took too long to answer. Please try again in a moment."
	case errors.KindTranslationUnavailable:
		if tag == intent.DetectLanguage {
			return "I could not detect the language of that text. Try a longer sentence."
		}
		return "The translation service is unavailable right now. Please try again later."
	default:
		return "Something went wrong while handling your message. Please try again."
	}
}

var emptyTextHints = map[intent.Tag]string{
	intent.Translate:      "I need some text to translate! Try: 'Translate [your text] to [language]'",
	intent.DetectLanguage: "I need some text to detect! Try: 'What language is [your text]?'",
	intent.AnalyzeString:  "I need some text to analyze! Try: 'Analyze [your text]'",
}

func success(tag intent.Tag, text string, data map[string]any) domain.Result {
	return domain.Result{Intent: string(tag), Success: true, Text: text, Data: data}
}
