package translator

import (
	"context"
	"encoding/json"
	"log/slog"
	"multilingo/domain/language"
	"multilingo/errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc, retries int) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	table, err := language.Default()
	require.NoError(t, err)
	return NewClient(ClientConfig{
		BaseURL: server.URL,
		Timeout: time.Second,
		Retries: retries,
		Backoff: time.Millisecond,
	}, table, logs.GetLoggerFromLevel(slog.LevelError))
}

func TestClient_Translate(t *testing.T) {
	req := require.New(t)
	var path string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		_ = json.NewEncoder(w).Encode(map[string]string{"translation": "buenos días"})
	}, 0)

	// When a multi word text is translated
	translated, err := client.Translate(context.Background(), "good morning", "es")

	// Then the text travels as a single escaped path segment
	req.NoError(err)
	req.Equal("buenos días", translated)
	req.Equal("/api/v1/auto/es/good morning", path)
}

func TestClient_Translate_RetriesServerErrors(t *testing.T) {
	req := require.New(t)
	var calls atomic.Int32
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]string{"translation": "hola"})
	}, 2)

	translated, err := client.Translate(context.Background(), "hello", "es")

	req.NoError(err)
	req.Equal("hola", translated)
	req.Equal(int32(3), calls.Load())
}

func TestClient_Translate_Failures(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		wantErr error
		calls   int32
	}{
		{
			name: "client error is not retried",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusNotFound)
				_ = json.NewEncoder(w).Encode(map[string]string{"error": "invalid target"})
			},
			wantErr: errors.ErrTranslationUnavailable,
			calls:   1,
		},
		{
			name: "server errors exhaust retries",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusTooManyRequests)
			},
			wantErr: errors.ErrTranslationUnavailable,
			calls:   3,
		},
		{
			name: "empty translation",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_ = json.NewEncoder(w).Encode(map[string]string{"translation": "  "})
			},
			wantErr: errors.ErrTranslationUnavailable,
			calls:   1,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := require.New(t)
			var calls atomic.Int32
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				calls.Add(1)
				tt.handler(w, r)
			}, 2)

			_, err := client.Translate(context.Background(), "hello", "es")

			req.ErrorIs(err, tt.wantErr)
			req.Equal(tt.calls, calls.Load())
		})
	}
}

func TestClient_Translate_DeadlineIsTimeout(t *testing.T) {
	req := require.New(t)
	release := make(chan struct{})
	defer close(release)
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}, 2)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()

	_, err := client.Translate(ctx, "hello", "es")

	req.ErrorIs(err, errors.ErrTranslationTimeout)
}

func TestClient_DetectLanguage(t *testing.T) {
	req := require.New(t)
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {}, 0)

	detection, err := client.DetectLanguage(context.Background(),
		"Bonjour tout le monde, je suis très content de vous voir aujourd'hui")

	req.NoError(err)
	req.Equal("fr", detection.Code)
	req.Equal("french", detection.Name)
	req.Positive(detection.Confidence)
}

func TestClient_DetectLanguage_Empty(t *testing.T) {
	req := require.New(t)
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {}, 0)

	_, err := client.DetectLanguage(context.Background(), "   ")

	req.ErrorIs(err, errors.ErrDetectionFailed)
}
