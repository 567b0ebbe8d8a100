package e2e

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/gookit/color"
	"github.com/stretchr/testify/suite"
)

type BaseHTTPSuite struct {
	suite.Suite
	Config Config
}

// SetupSuite loads the environment configuration before running tests
func (s *BaseHTTPSuite) SetupSuite() {
	var err error
	s.Config, err = LoadConfig()
	s.Require().NoError(err)
	if s.Config.BaseURL == "" {
		s.T().Skip("E2E_BASE_URL not set")
	}
}

// HTTPClient builds a client bound to the service, logging every exchange
func (s *BaseHTTPSuite) HTTPClient(t *testing.T, name string) *resty.Client {
	// 1. Print a colorized header for the step in logs
	header := fmt.Sprintf("  ====== %s ======", name)
	if s.Config.Colours {
		header = color.New(color.BgBlack, color.FgGreen).Render(header)
	}
	t.Log(header)

	// 2. Log method, status and latency, plus bodies if E2E_DEBUG_JSON is enabled
	return resty.New().
		SetBaseURL(strings.TrimRight(s.Config.BaseURL, "/")).
		SetTimeout(30 * time.Second).
		OnAfterResponse(func(_ *resty.Client, r *resty.Response) error {
			logBuilder := strings.Builder{}
			fmt.Fprintf(&logBuilder, "HTTP %s %s [%d] in %v", r.Request.Method, r.Request.URL, r.StatusCode(), r.Time())
			if s.Config.DebugJSON {
				fmt.Fprintln(&logBuilder, "\nREQUEST:")
				fmt.Fprintln(&logBuilder, r.Request.Body)
				fmt.Fprintln(&logBuilder, "RESPONSE:")
				fmt.Fprintln(&logBuilder, r.String())
			}
			t.Log(logBuilder.String())
			return nil
		})
}

// WithService provides a client within a contextual test step
func (s *BaseHTTPSuite) WithService(name string, fn func(client *resty.Client)) {
	fn(s.HTTPClient(s.T(), name))
}
