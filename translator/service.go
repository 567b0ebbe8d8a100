package translator

import (
	"context"
	stderrors "errors"
	"fmt"
	"log/slog"
	"multilingo/cache"
	"multilingo/contract"
	"multilingo/domain"
	"multilingo/errors"
	"multilingo/observability"
	"time"
)

var _ contract.TranslationBackend = (*Service)(nil)

const (
	DefaultTimeout = 8 * time.Second
	// An abandoned call may keep running this many timeouts to warm the cache.
	backgroundBudget = 4
)

// Outcome labels of the translation counter.
const (
	OutcomeOK          = "ok"
	OutcomeUnavailable = "unavailable"
	OutcomeTimeout     = "timeout"
)

// Service caches translations and bounds each call by a timeout.
type Service struct {
	backend contract.TranslationBackend
	cache   *cache.TranslationCache
	timeout time.Duration
	metrics *observability.Metrics
	log     *slog.Logger
}

func NewService(backend contract.TranslationBackend, cache *cache.TranslationCache,
	timeout time.Duration, metrics *observability.Metrics, log *slog.Logger) *Service {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Service{backend: backend, cache: cache, timeout: timeout, metrics: metrics, log: log}
}

type translation struct {
	text string
	err  error
}

// Translate returns a cached translation or asks the backend. Once the timeout
// elapses the caller gets ErrTranslationTimeout while the backend call goes on
// detached, so a late answer still lands in the cache.
func (s *Service) Translate(ctx context.Context, text, targetCode string) (string, error) {
	done := make(chan translation, 1)
	callCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), backgroundBudget*s.timeout)
	go func() {
		defer cancel()
		value, err := s.cache.GetOrCompute(text, targetCode, func() (string, error) {
			return s.backend.Translate(callCtx, text, targetCode)
		})
		if err != nil {
			s.log.Debug("Translation attempt failed", "target", targetCode, "error", err)
		}
		done <- translation{text: value, err: err}
	}()

	timer := time.NewTimer(s.timeout)
	defer timer.Stop()

	select {
	case res := <-done:
		if res.err != nil {
			s.count(outcomeOf(res.err))
			return "", res.err
		}
		s.count(OutcomeOK)
		return res.text, nil
	case <-timer.C:
		s.count(OutcomeTimeout)
		s.log.Warn("Translation timed out", "target", targetCode, "timeout", s.timeout)
		return "", fmt.Errorf("%w: no answer after %s", errors.ErrTranslationTimeout, s.timeout)
	case <-ctx.Done():
		s.count(OutcomeTimeout)
		return "", fmt.Errorf("%w: %w", errors.ErrTranslationTimeout, ctx.Err())
	}
}

// DetectLanguage is not cached.
func (s *Service) DetectLanguage(ctx context.Context, text string) (domain.Detection, error) {
	return s.backend.DetectLanguage(ctx, text)
}

func (s *Service) CacheStats() cache.Stats {
	return s.cache.Stats()
}

func (s *Service) count(outcome string) {
	if s.metrics != nil {
		s.metrics.CountTranslation(outcome)
	}
}

func outcomeOf(err error) string {
	if stderrors.Is(err, errors.ErrTranslationTimeout) {
		return OutcomeTimeout
	}
	return OutcomeUnavailable
}
