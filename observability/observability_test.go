package observability

import (
	"io"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestCurrentProcess(t *testing.T) {
	req := require.New(t)

	stats, err := CurrentProcess(time.Now().Add(-time.Minute))

	req.NoError(err)
	req.Equal(int32(os.Getpid()), stats.PID)
	req.Positive(stats.Goroutines)
	req.GreaterOrEqual(stats.UptimeSeconds, 60.0)
}

func TestMetrics_Handler(t *testing.T) {
	req := require.New(t)
	m := NewMetrics()

	m.ObserveRequest("GET", "/health", 200, 15*time.Millisecond)
	m.CountIntent("translate", true)
	m.CountTranslation("timeout")
	m.CountDropped()
	m.ObserveProcess(ProcessStats{CPUPercent: 12.5, MemoryPercent: 3})

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	body, err := io.ReadAll(rec.Body)
	req.NoError(err)

	req.Equal(200, rec.Code)
	req.Contains(string(body), `multilingo_http_requests_total{method="GET",route="/health",status="200"} 1`)
	req.Contains(string(body), `multilingo_chat_intents_total{intent="translate",success="true"} 1`)
	req.Contains(string(body), `multilingo_translation_requests_total{outcome="timeout"} 1`)
	req.Contains(string(body), `multilingo_persistence_dropped_total 1`)
	req.Contains(string(body), `multilingo_process_cpu_percent 12.5`)
	req.Contains(string(body), `multilingo_process_memory_percent 3`)
}
