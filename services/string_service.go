package services

import (
	"context"
	"fmt"
	"log/slog"
	"multilingo/contract"
	"multilingo/domain"
	"multilingo/domain/analyzer"
	"multilingo/domain/query"
	"multilingo/domain/search"
	"multilingo/errors"
	"time"
)

const DefaultSearchLimit = 10

type IStringService interface {
	Create(ctx context.Context, value string) (domain.StringRecord, error)
	Get(ctx context.Context, value string) (domain.StringRecord, error)
	List(ctx context.Context, filter domain.Filter) ([]domain.StringRecord, error)
	FilterNatural(ctx context.Context, text string) (domain.Filter, []domain.StringRecord, error)
	Delete(ctx context.Context, value string) error
	Search(ctx context.Context, terms string, limit int) ([]domain.StringRecord, uint64, error)
}

type StringService struct {
	store contract.StringStore
	log   *slog.Logger
	now   func() time.Time
}

func NewStringService(store contract.StringStore, log *slog.Logger) *StringService {
	return &StringService{store: store, log: log, now: time.Now}
}

// Create analyzes value and stores it. An existing value is never overwritten.
func (s *StringService) Create(ctx context.Context, value string) (domain.StringRecord, error) {
	record := analyzer.NewRecord(value, s.now())
	if err := s.store.Save(ctx, record); err != nil {
		return domain.StringRecord{}, err
	}
	s.log.Debug("String analyzed", "id", record.ID, "length", record.Properties.Length)
	return record, nil
}

func (s *StringService) Get(ctx context.Context, value string) (domain.StringRecord, error) {
	return s.store.FindByValue(ctx, value)
}

func (s *StringService) List(ctx context.Context, filter domain.Filter) ([]domain.StringRecord, error) {
	if filter.Conflicting() {
		return nil, fmt.Errorf("%w: max_length is lower than min_length", errors.ErrInvalidFilter)
	}
	return s.store.List(ctx, filter)
}

// FilterNatural interprets a plain-English query and lists the matching records.
func (s *StringService) FilterNatural(ctx context.Context, text string) (domain.Filter, []domain.StringRecord, error) {
	filter, err := query.Parse(text)
	if err != nil {
		return domain.Filter{}, nil, err
	}
	records, err := s.store.List(ctx, filter)
	if err != nil {
		return domain.Filter{}, nil, err
	}
	return filter, records, nil
}

func (s *StringService) Delete(ctx context.Context, value string) error {
	if err := s.store.Delete(ctx, value); err != nil {
		return err
	}
	s.log.Debug("String deleted", "id", analyzer.Hash(value))
	return nil
}

// Search runs a full-text query. An explicit limit wins over a --limit flag in the input.
func (s *StringService) Search(ctx context.Context, input string, limit int) ([]domain.StringRecord, uint64, error) {
	query := search.Parse(input)
	if query.Terms == "" {
		return nil, 0, fmt.Errorf("%w: empty search terms", errors.ErrInvalidFilter)
	}
	if limit > 0 {
		query.Limit = limit
	}
	if query.Limit <= 0 {
		query.Limit = DefaultSearchLimit
	}
	return s.store.Search(ctx, query.Terms, query.Limit)
}
