package errors

import (
	stderrors "errors"
	"fmt"
)

var (
	ErrWorkerPanic = fmt.Errorf("worker panic")
	ErrQueueFull   = fmt.Errorf("persistence queue is full")

	ErrUnresolvedLanguage     = fmt.Errorf("unresolved language")
	ErrEmptyExtraction        = fmt.Errorf("no usable text extracted")
	ErrTranslationUnavailable = fmt.Errorf("translation service unavailable")
	ErrTranslationTimeout     = fmt.Errorf("translation service timed out")
	ErrDetectionFailed        = fmt.Errorf("language detection failed")
	ErrPersistenceFailure     = fmt.Errorf("background persistence failed")

	ErrStringNotFound      = fmt.Errorf("string does not exist in the system")
	ErrStringAlreadyExists = fmt.Errorf("string already exists in the system")
	ErrUnparsableQuery     = fmt.Errorf("unable to parse natural language query")
	ErrConflictingFilters  = fmt.Errorf("query parsed but resulted in conflicting filters")
	ErrInvalidFilter       = fmt.Errorf("invalid filter")
)

// Kind is the machine readable error tag carried by a chat result.
type Kind string

const (
	KindUnresolvedLanguage     Kind = "unresolved_language"
	KindEmptyExtraction        Kind = "empty_extraction"
	KindTranslationUnavailable Kind = "translation_unavailable"
	KindTranslationTimeout     Kind = "translation_timeout"
	KindPersistenceFailure     Kind = "persistence_failure"
	KindInternal               Kind = "internal_error"
)

// KindOf maps an error chain to its user-facing tag.
// Timeout is checked before unavailability since a timeout may wrap both.
func KindOf(err error) Kind {
	switch {
	case err == nil:
		return ""
	case stderrors.Is(err, ErrUnresolvedLanguage):
		return KindUnresolvedLanguage
	case stderrors.Is(err, ErrEmptyExtraction):
		return KindEmptyExtraction
	case stderrors.Is(err, ErrTranslationTimeout):
		return KindTranslationTimeout
	case stderrors.Is(err, ErrTranslationUnavailable), stderrors.Is(err, ErrDetectionFailed):
		return KindTranslationUnavailable
	case stderrors.Is(err, ErrPersistenceFailure):
		return KindPersistenceFailure
	default:
		return KindInternal
	}
}

// UnresolvedLanguageError names the token that did not match the language table.
type UnresolvedLanguageError struct {
	Token string
}

func (e UnresolvedLanguageError) Error() string {
	return fmt.Sprintf("%s: %q", ErrUnresolvedLanguage, e.Token)
}

func (e UnresolvedLanguageError) Unwrap() error {
	return ErrUnresolvedLanguage
}
