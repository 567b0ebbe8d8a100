package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestKindOf(t *testing.T) {
	req := require.New(t)

	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"nil error has no kind", nil, ""},
		{"unresolved language", UnresolvedLanguageError{Token: "klingon"}, KindUnresolvedLanguage},
		{"wrapped empty extraction", fmt.Errorf("translate: %w", ErrEmptyExtraction), KindEmptyExtraction},
		{"timeout wins over unavailable", fmt.Errorf("%w: %w", ErrTranslationTimeout, ErrTranslationUnavailable), KindTranslationTimeout},
		{"detection failure is reported as unavailable", ErrDetectionFailed, KindTranslationUnavailable},
		{"persistence", fmt.Errorf("save: %w", ErrPersistenceFailure), KindPersistenceFailure},
		{"anything else is internal", fmt.Errorf("boom"), KindInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req.Equal(tt.want, KindOf(tt.err))
		})
	}
}

func TestUnresolvedLanguageError_NamesToken(t *testing.T) {
	req := require.New(t)
	err := UnresolvedLanguageError{Token: "elvish"}
	req.Contains(err.Error(), `"elvish"`)
	req.ErrorIs(err, ErrUnresolvedLanguage)
}
