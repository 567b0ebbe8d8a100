package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"multilingo/cache"
	"multilingo/domain"
	"multilingo/domain/analyzer"
	"multilingo/domain/intent"
	"multilingo/domain/language"
	"multilingo/errors"
	"multilingo/infrastructure/http/envelope"
	"multilingo/mocks"
	"multilingo/observability"
	"multilingo/services"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/mama165/sdk-go/logs"
	"github.com/samber/lo"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type fixture struct {
	handler   http.Handler
	store     *mocks.MockStringStore
	backend   *mocks.MockTranslationBackend
	submitter *mocks.MockSubmitter
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	log := logs.GetLoggerFromLevel(slog.LevelError)
	table, err := language.Default()
	require.NoError(t, err)
	router, err := intent.NewRouter(table)
	require.NoError(t, err)

	store := mocks.NewMockStringStore(ctrl)
	backend := mocks.NewMockTranslationBackend(ctrl)
	submitter := mocks.NewMockSubmitter(ctrl)
	metrics := observability.NewMetrics()
	c := cache.NewTranslationCache(10)

	srv := New(log, Config{BaseURL: "https://lingo.test", MaxBodyBytes: 1024, RequestTimeout: time.Second},
		services.NewStringService(store, log),
		services.NewChatService(router, table, backend, submitter, metrics, log),
		HealthSources{
			Ping:        func() error { return nil },
			CacheStats:  c.Stats,
			QueueLength: func() int { return 3 },
		},
		metrics)
	srv.now = func() time.Time { return time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC) }
	return fixture{handler: srv.Handler(), store: store, backend: backend, submitter: submitter}
}

func (f fixture) do(method, target, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, httptest.NewRequest(method, target, reader))
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func TestServer_CreateString(t *testing.T) {
	req := require.New(t)
	f := newFixture(t)

	f.store.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil)

	rec := f.do(http.MethodPost, "/strings", `{"value":"racecar"}`)

	req.Equal(http.StatusCreated, rec.Code)
	record := decode[domain.StringRecord](t, rec)
	req.Equal("racecar", record.Value)
	req.Equal(analyzer.Hash("racecar"), record.ID)
	req.True(record.Properties.IsPalindrome)
	req.Equal(map[string]int{"r": 2, "a": 2, "c": 2, "e": 1}, record.Properties.CharacterFrequency)
}

func TestServer_CreateString_Rejections(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		setup  func(f fixture)
		status int
	}{
		{name: "duplicate", body: `{"value":"hello"}`, status: http.StatusConflict,
			setup: func(f fixture) {
				f.store.EXPECT().Save(gomock.Any(), gomock.Any()).Return(errors.ErrStringAlreadyExists)
			}},
		{name: "missing value", body: `{}`, status: http.StatusUnprocessableEntity},
		{name: "value is not a string", body: `{"value":42}`, status: http.StatusUnprocessableEntity},
		{name: "malformed json", body: `{"value":`, status: http.StatusBadRequest},
		{name: "binary body", body: "\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00", status: http.StatusUnsupportedMediaType},
		{name: "too large", body: `{"value":"` + strings.Repeat("a", 2048) + `"}`, status: http.StatusRequestEntityTooLarge},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := require.New(t)
			f := newFixture(t)
			if tt.setup != nil {
				tt.setup(f)
			}

			rec := f.do(http.MethodPost, "/strings", tt.body)

			req.Equal(tt.status, rec.Code)
			req.NotEmpty(decode[problem](t, rec).Detail)
		})
	}
}

func TestServer_GetAndDeleteString(t *testing.T) {
	req := require.New(t)
	f := newFixture(t)
	record := analyzer.NewRecord("hello world", time.Now())

	f.store.EXPECT().FindByValue(gomock.Any(), "hello world").Return(record, nil)
	f.store.EXPECT().FindByValue(gomock.Any(), "ghost").Return(domain.StringRecord{}, errors.ErrStringNotFound)
	f.store.EXPECT().Delete(gomock.Any(), "hello world").Return(nil)
	f.store.EXPECT().Delete(gomock.Any(), "ghost").Return(errors.ErrStringNotFound)

	rec := f.do(http.MethodGet, "/strings/hello%20world", "")
	req.Equal(http.StatusOK, rec.Code)
	req.Equal(2, decode[domain.StringRecord](t, rec).Properties.WordCount)

	req.Equal(http.StatusNotFound, f.do(http.MethodGet, "/strings/ghost", "").Code)
	req.Equal(http.StatusNoContent, f.do(http.MethodDelete, "/strings/hello%20world", "").Code)
	req.Equal(http.StatusNotFound, f.do(http.MethodDelete, "/strings/ghost", "").Code)
}

func TestServer_ListStrings(t *testing.T) {
	req := require.New(t)
	f := newFixture(t)
	want := domain.Filter{IsPalindrome: lo.ToPtr(true), MinLength: lo.ToPtr(3), ContainsCharacter: lo.ToPtr("a")}

	f.store.EXPECT().List(gomock.Any(), want).Return([]domain.StringRecord{analyzer.NewRecord("aba", time.Now())}, nil)

	rec := f.do(http.MethodGet, "/strings?is_palindrome=true&min_length=3&contains_character=a", "")

	req.Equal(http.StatusOK, rec.Code)
	body := decode[map[string]any](t, rec)
	req.EqualValues(1, body["count"])
	req.Equal(map[string]any{"is_palindrome": true, "min_length": float64(3), "contains_character": "a"}, body["filters_applied"])
}

func TestServer_ListStrings_InvalidParams(t *testing.T) {
	f := newFixture(t)
	for _, query := range []string{
		"is_palindrome=maybe",
		"min_length=abc",
		"contains_character=ab",
		"min_length=-1",
		"min_length=10&max_length=2",
	} {
		t.Run(query, func(t *testing.T) {
			require.Equal(t, http.StatusBadRequest, f.do(http.MethodGet, "/strings?"+query, "").Code)
		})
	}
}

func TestServer_NaturalFilter(t *testing.T) {
	req := require.New(t)
	f := newFixture(t)

	f.store.EXPECT().List(gomock.Any(), domain.Filter{IsPalindrome: lo.ToPtr(true), WordCount: lo.ToPtr(1)}).Return(nil, nil)

	rec := f.do(http.MethodGet, "/strings/filter-by-natural-language?query=all%20single%20word%20palindromic%20strings", "")
	req.Equal(http.StatusOK, rec.Code)
	body := decode[naturalResponse](t, rec)
	req.Equal("all single word palindromic strings", body.InterpretedQuery.Original)
	req.Equal(map[string]any{"is_palindrome": true, "word_count": float64(1)}, body.InterpretedQuery.ParsedFilters)
	req.NotNil(body.Data)

	req.Equal(http.StatusBadRequest, f.do(http.MethodGet, "/strings/filter-by-natural-language?query=make%20me%20a%20sandwich", "").Code)
	req.Equal(http.StatusUnprocessableEntity,
		f.do(http.MethodGet, "/strings/filter-by-natural-language?query=longer%20than%2010%20and%20shorter%20than%203", "").Code)
	req.Equal(http.StatusBadRequest, f.do(http.MethodGet, "/strings/filter-by-natural-language", "").Code)
}

func TestServer_Search(t *testing.T) {
	req := require.New(t)
	f := newFixture(t)

	f.store.EXPECT().Search(gomock.Any(), "hello", 5).
		Return([]domain.StringRecord{analyzer.NewRecord("hello there", time.Now())}, uint64(4), nil)

	rec := f.do(http.MethodGet, "/strings/search?q=hello&limit=5", "")
	req.Equal(http.StatusOK, rec.Code)
	body := decode[searchResponse](t, rec)
	req.Equal(1, body.Count)
	req.Equal(uint64(4), body.Total)

	req.Equal(http.StatusBadRequest, f.do(http.MethodGet, "/strings/search?q=hello&limit=zero", "").Code)
	req.Equal(http.StatusBadRequest, f.do(http.MethodGet, "/strings/search?q=", "").Code)
}

func TestServer_Chat(t *testing.T) {
	req := require.New(t)
	f := newFixture(t)

	f.backend.EXPECT().Translate(gomock.Any(), "good morning", "es").Return("buenos días", nil)
	f.backend.EXPECT().DetectLanguage(gomock.Any(), "good morning").Return(domain.Detection{Code: "en", Name: "english"}, nil)
	f.submitter.EXPECT().Submit(gomock.Any()).Return(nil)

	rec := f.do(http.MethodPost, "/chat", `{"message":"translate 'good morning' to spanish"}`)

	req.Equal(http.StatusOK, rec.Code)
	flat := decode[envelope.Flat](t, rec)
	req.True(flat.Success)
	req.Equal("translate", flat.Intent)
	req.Contains(flat.Message, "buenos días")
	req.Nil(flat.Error)
}

func TestServer_Chat_UsesContext(t *testing.T) {
	req := require.New(t)
	f := newFixture(t)

	f.submitter.EXPECT().Submit(gomock.Any()).Return(nil)

	rec := f.do(http.MethodPost, "/chat", `{"message":"analyze this","context":{"last_text":"level"}}`)

	flat := decode[envelope.Flat](t, rec)
	req.True(flat.Success)
	req.Equal("analyze_string", flat.Intent)
	req.Contains(flat.Message, "Text: level")
}

func TestServer_Chat_FailureKeepsStatusOK(t *testing.T) {
	req := require.New(t)
	f := newFixture(t)

	rec := f.do(http.MethodPost, "/chat", `{"message":"translate hello to klingon"}`)

	req.Equal(http.StatusOK, rec.Code)
	flat := decode[envelope.Flat](t, rec)
	req.False(flat.Success)
	req.Equal("unresolved_language", *flat.Error)

	req.Equal(http.StatusUnprocessableEntity, f.do(http.MethodPost, "/chat", `{"message":""}`).Code)
}

func TestServer_Translate(t *testing.T) {
	req := require.New(t)
	f := newFixture(t)

	f.backend.EXPECT().Translate(gomock.Any(), "hello", "fr").
		Return("", fmt.Errorf("%w: 502", errors.ErrTranslationUnavailable))

	rec := f.do(http.MethodPost, "/translate", `{"text":"hello","target_language":"french"}`)

	req.Equal(http.StatusOK, rec.Code)
	flat := decode[envelope.Flat](t, rec)
	req.False(flat.Success)
	req.Equal("translation_unavailable", *flat.Error)

	req.Equal(http.StatusUnprocessableEntity, f.do(http.MethodPost, "/translate", `{"text":"hello"}`).Code)
}

func TestServer_RPC(t *testing.T) {
	req := require.New(t)
	f := newFixture(t)
	call := `{"jsonrpc":"2.0","id":"req-1","method":"message/send","params":{"message":{"role":"user",
		"parts":[{"kind":"text","text":"help"}],"messageId":"m-1","taskId":"t-1","contextId":"c-1"}}}`

	rec := f.do(http.MethodPost, "/a2a", call)

	req.Equal(http.StatusOK, rec.Code)
	var resp struct {
		JSONRPC string             `json:"jsonrpc"`
		ID      string             `json:"id"`
		Result  envelope.Task      `json:"result"`
		Error   *envelope.RPCError `json:"error"`
	}
	req.NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
	req.Equal("2.0", resp.JSONRPC)
	req.Equal("req-1", resp.ID)
	req.Nil(resp.Error)
	req.Equal("t-1", resp.Result.ID)
	req.Equal("c-1", resp.Result.ContextID)
	req.Equal(envelope.StateDone, resp.Result.Status.State)
	req.Equal("2025-06-01T08:00:00Z", resp.Result.Status.Timestamp)
	req.Contains(resp.Result.Status.Message.Text(), "Help Guide")
}

func TestServer_RPC_Errors(t *testing.T) {
	tests := []struct {
		name string
		body string
		code int
	}{
		{name: "parse error", body: `{"jsonrpc":`, code: envelope.CodeParseError},
		{name: "wrong version", body: `{"jsonrpc":"1.0","id":1,"method":"message/send"}`, code: envelope.CodeInvalidRequest},
		{name: "missing method", body: `{"jsonrpc":"2.0","id":1}`, code: envelope.CodeInvalidRequest},
		{name: "unknown method", body: `{"jsonrpc":"2.0","id":1,"method":"tasks/cancel"}`, code: envelope.CodeMethodNotFound},
		{name: "no text part", body: `{"jsonrpc":"2.0","id":1,"method":"execute","params":{"message":{"parts":[]}}}`,
			code: envelope.CodeInvalidParams},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := require.New(t)
			f := newFixture(t)

			rec := f.do(http.MethodPost, "/webhook/telex", tt.body)

			req.Equal(http.StatusOK, rec.Code)
			resp := decode[envelope.RPCResponse](t, rec)
			req.NotNil(resp.Error)
			req.Equal(tt.code, resp.Error.Code)
		})
	}
}

func TestServer_AgentCardAndRoot(t *testing.T) {
	req := require.New(t)
	f := newFixture(t)

	for _, path := range []string{"/.well-known/agent.json", "/.well-known/agent-card"} {
		rec := f.do(http.MethodGet, path, "")
		req.Equal(http.StatusOK, rec.Code)
		req.Equal("https://lingo.test/a2a", decode[envelope.AgentCard](t, rec).URL)
	}

	rec := f.do(http.MethodGet, "/", "")
	req.Equal(http.StatusOK, rec.Code)
	req.Contains(rec.Body.String(), "filter-by-natural-language")
	req.Equal(http.StatusNotFound, f.do(http.MethodGet, "/nowhere", "").Code)
}

func TestServer_HealthAndMetrics(t *testing.T) {
	req := require.New(t)
	f := newFixture(t)

	rec := f.do(http.MethodGet, "/health", "")
	req.Equal(http.StatusOK, rec.Code)
	body := decode[map[string]any](t, rec)
	req.Equal("healthy", body["status"])
	req.EqualValues(3, body["persistence_queue"])
	req.Contains(body, "translation_cache")
	req.Contains(body, "process")

	rec = f.do(http.MethodGet, "/metrics", "")
	req.Equal(http.StatusOK, rec.Code)
	req.Contains(rec.Body.String(), `multilingo_http_requests_total{method="GET",route="GET /health",status="200"} 1`)
}

func TestServer_HealthUnhealthy(t *testing.T) {
	req := require.New(t)
	log := logs.GetLoggerFromLevel(slog.LevelError)
	srv := New(log, Config{}, nil, nil, HealthSources{Ping: func() error { return context.DeadlineExceeded }}, nil)

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", bytes.NewReader(nil)))

	req.Equal(http.StatusServiceUnavailable, rec.Code)
	req.Contains(rec.Body.String(), "disconnected")
}
