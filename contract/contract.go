//go:generate go run go.uber.org/mock/mockgen -source=contract.go -destination=../mocks/mock_contract.go -package=mocks
package contract

import (
	"context"
	"multilingo/domain"
	"reflect"
)

type ISupervisor interface {
	Add(worker ...Worker) ISupervisor
	Run(ctx context.Context)
	Start(ctx context.Context, worker Worker)
	Stop()
}

// Worker doesn't protect itself
// The supervisor recovers its panics and restarts it
type Worker interface {
	Run(ctx context.Context) error
}

// GetWorkerName uses reflection to retrieve the type name of the worker.
// Used for logging during supervision, so workers don't need to name themselves.
func GetWorkerName(w Worker) string {
	if w == nil {
		return "NilWorker"
	}
	t := reflect.TypeOf(w)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t.Name()
}

// TranslationBackend is the third-party translation service.
// Errors wrap ErrTranslationUnavailable, ErrTranslationTimeout or ErrDetectionFailed.
type TranslationBackend interface {
	Translate(ctx context.Context, text, targetCode string) (string, error)
	DetectLanguage(ctx context.Context, text string) (domain.Detection, error)
}

// StringStore persists analyzed strings keyed by their value.
type StringStore interface {
	Save(ctx context.Context, record domain.StringRecord) error
	FindByValue(ctx context.Context, value string) (domain.StringRecord, error)
	List(ctx context.Context, filter domain.Filter) ([]domain.StringRecord, error)
	Delete(ctx context.Context, value string) error
	Search(ctx context.Context, terms string, limit int) ([]domain.StringRecord, uint64, error)
}

// Submitter hands a record to background persistence without blocking.
type Submitter interface {
	Submit(record domain.StringRecord) error
}
