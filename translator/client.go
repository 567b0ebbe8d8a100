// Package translator talks to the third-party translation service.
package translator

import (
	"context"
	stderrors "errors"
	"fmt"
	"log/slog"
	"multilingo/contract"
	"multilingo/domain"
	"multilingo/domain/language"
	"multilingo/errors"
	"net/http"
	"strings"
	"time"

	"github.com/abadojack/whatlanggo"
	"github.com/go-resty/resty/v2"
)

var _ contract.TranslationBackend = (*Client)(nil)

const (
	sourceAuto     = "auto"
	translatePath  = "/api/v1/{source}/{target}/{text}"
	maxRetryWait   = 4 * time.Second
	defaultBackoff = 500 * time.Millisecond
)

type ClientConfig struct {
	BaseURL string
	// Timeout bounds a single HTTP attempt. The caller's context bounds the whole call.
	Timeout time.Duration
	Retries int
	Backoff time.Duration
}

// Client is a Lingva-compatible HTTP client. Detection runs locally.
type Client struct {
	http  *resty.Client
	names *language.Table
	log   *slog.Logger
}

type lingvaResponse struct {
	Translation string `json:"translation"`
}

type lingvaError struct {
	Error string `json:"error"`
}

func NewClient(cfg ClientConfig, names *language.Table, log *slog.Logger) *Client {
	backoff := cfg.Backoff
	if backoff <= 0 {
		backoff = defaultBackoff
	}
	c := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetTimeout(cfg.Timeout).
		SetRetryCount(cfg.Retries).
		SetRetryWaitTime(backoff).
		SetRetryMaxWaitTime(maxRetryWait).
		AddRetryCondition(retryable)
	return &Client{http: c, names: names, log: log}
}

// retryable retries rate limiting, server errors and network failures.
func retryable(r *resty.Response, err error) bool {
	if err != nil {
		return !stderrors.Is(err, context.Canceled) && !stderrors.Is(err, context.DeadlineExceeded)
	}
	return r.StatusCode() == http.StatusTooManyRequests || r.StatusCode() >= http.StatusInternalServerError
}

func (c *Client) Translate(ctx context.Context, text, targetCode string) (string, error) {
	var resp lingvaResponse
	var failure lingvaError
	r, err := c.http.R().
		SetContext(ctx).
		SetPathParams(map[string]string{
			"source": sourceAuto,
			"target": targetCode,
			"text":   text,
		}).
		ForceContentType("application/json").
		SetResult(&resp).
		SetError(&failure).
		Get(translatePath)
	if err != nil {
		if stderrors.Is(err, context.DeadlineExceeded) {
			return "", fmt.Errorf("%w: %w", errors.ErrTranslationTimeout, err)
		}
		return "", fmt.Errorf("%w: %w", errors.ErrTranslationUnavailable, err)
	}
	if r.IsError() {
		c.log.Warn("Translation service rejected request",
			"status", r.StatusCode(), "target", targetCode, "reason", failure.Error)
		return "", fmt.Errorf("%w: %s", errors.ErrTranslationUnavailable, r.Status())
	}
	translated := strings.TrimSpace(resp.Translation)
	if translated == "" {
		return "", fmt.Errorf("%w: empty translation", errors.ErrTranslationUnavailable)
	}
	c.log.Debug("Translated text", "target", targetCode, "attempts", r.Request.Attempt)
	return translated, nil
}

// DetectLanguage identifies the script and language of text with whatlanggo.
// Names come from the language table when the code is supported.
func (c *Client) DetectLanguage(_ context.Context, text string) (domain.Detection, error) {
	if strings.TrimSpace(text) == "" {
		return domain.Detection{}, fmt.Errorf("%w: empty text", errors.ErrDetectionFailed)
	}
	info := whatlanggo.Detect(text)
	code := info.Lang.Iso6391()
	if code == "" {
		return domain.Detection{}, fmt.Errorf("%w: no language recognised", errors.ErrDetectionFailed)
	}
	name := strings.ToLower(info.Lang.String())
	if c.names != nil {
		if lang, ok := c.names.ByCode(code); ok {
			name = lang.Name
		}
	}
	return domain.Detection{Code: code, Name: name, Confidence: info.Confidence}, nil
}
