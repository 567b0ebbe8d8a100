// Package server exposes the string and chat services over HTTP.
package server

import (
	"log/slog"
	"multilingo/cache"
	"multilingo/observability"
	"multilingo/services"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
)

const (
	Version             = "1.0.0"
	DefaultMaxBodyBytes = 1 << 20
)

type Config struct {
	BaseURL        string
	MaxBodyBytes   int64
	RequestTimeout time.Duration
}

// HealthSources feed the /health document. Nil sources are skipped.
type HealthSources struct {
	Ping        func() error
	CacheStats  func() cache.Stats
	QueueLength func() int
}

type Server struct {
	log       *slog.Logger
	config    Config
	records   services.IStringService
	chat      services.IChatService
	health    HealthSources
	metrics   *observability.Metrics
	validate  *validator.Validate
	startedAt time.Time
	now       func() time.Time
}

func New(log *slog.Logger, config Config, records services.IStringService, chat services.IChatService,
	health HealthSources, metrics *observability.Metrics) *Server {
	if config.MaxBodyBytes <= 0 {
		config.MaxBodyBytes = DefaultMaxBodyBytes
	}
	return &Server{
		log:       log,
		config:    config,
		records:   records,
		chat:      chat,
		health:    health,
		metrics:   metrics,
		validate:  validator.New(),
		startedAt: time.Now(),
		now:       time.Now,
	}
}

// Handler returns the routed, logged and time-bounded API.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", s.handleRoot)
	mux.HandleFunc("GET /health", s.handleHealth)
	if s.metrics != nil {
		mux.Handle("GET /metrics", s.metrics.Handler())
	}

	mux.HandleFunc("POST /strings", s.handleCreateString)
	mux.HandleFunc("GET /strings", s.handleListStrings)
	mux.HandleFunc("GET /strings/filter-by-natural-language", s.handleNaturalFilter)
	mux.HandleFunc("GET /strings/search", s.handleSearch)
	mux.HandleFunc("GET /strings/{value}", s.handleGetString)
	mux.HandleFunc("DELETE /strings/{value}", s.handleDeleteString)

	mux.HandleFunc("POST /chat", s.handleChat)
	mux.HandleFunc("POST /translate", s.handleTranslate)
	mux.HandleFunc("POST /a2a", s.handleRPC)
	mux.HandleFunc("POST /webhook/telex", s.handleRPC)
	mux.HandleFunc("GET /.well-known/agent.json", s.handleAgentCard)
	mux.HandleFunc("GET /.well-known/agent-card", s.handleAgentCard)

	var handler http.Handler = s.logRequests(mux)
	if s.config.RequestTimeout > 0 {
		handler = http.TimeoutHandler(handler, s.config.RequestTimeout, `{"detail":"request timed out"}`)
	}
	return handler
}

func (s *Server) handleRoot(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Welcome to MultiLingo",
		"version": Version,
		"endpoints": map[string]string{
			"create_string":           "POST /strings",
			"get_string":              "GET /strings/{string_value}",
			"list_strings":            "GET /strings",
			"natural_language_filter": "GET /strings/filter-by-natural-language",
			"search_strings":          "GET /strings/search",
			"delete_string":           "DELETE /strings/{string_value}",
			"chat":                    "POST /chat",
			"translate":               "POST /translate",
			"agent":                   "POST /a2a",
			"agent_card":              "GET /.well-known/agent.json",
			"health":                  "GET /health",
			"metrics":                 "GET /metrics",
		},
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	status := http.StatusOK
	body := map[string]any{"status": "healthy", "database": "connected"}
	if s.health.Ping != nil {
		if err := s.health.Ping(); err != nil {
			s.log.Error("Health check failed", "error", err)
			status = http.StatusServiceUnavailable
			body["status"] = "unhealthy"
			body["database"] = "disconnected"
		}
	}
	if s.health.CacheStats != nil {
		body["translation_cache"] = s.health.CacheStats()
	}
	if s.health.QueueLength != nil {
		body["persistence_queue"] = s.health.QueueLength()
	}
	if stats, err := observability.CurrentProcess(s.startedAt); err == nil {
		body["process"] = stats
	} else {
		s.log.Debug("Unable to sample process", "error", err)
	}
	writeJSON(w, status, body)
}
