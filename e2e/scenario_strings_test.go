package e2e

import (
	"net/http"
	"testing"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

type testStringsSuite struct {
	BaseHTTPSuite
}

func TestStringsSuite(t *testing.T) {
	suite.Run(t, &testStringsSuite{})
}

type stringRecord struct {
	ID         string `json:"id"`
	Value      string `json:"value"`
	Properties struct {
		Length       int  `json:"length"`
		IsPalindrome bool `json:"is_palindrome"`
		WordCount    int  `json:"word_count"`
	} `json:"properties"`
}

func (s *testStringsSuite) TestStringLifecycle() {
	// unique per run so a previous run never answers 409
	value := "level " + uuid.NewString() + " level"

	s.Run("Step 1: Create the string", func() {
		s.WithService("POST /strings", func(client *resty.Client) {
			var created stringRecord
			resp, err := client.R().
				SetBody(map[string]string{"value": value}).
				SetResult(&created).
				Post("/strings")
			s.Require().NoError(err)
			s.Require().Equal(http.StatusCreated, resp.StatusCode())
			s.Require().Equal(value, created.Value)
			s.Require().Equal(len([]rune(value)), created.Properties.Length)
			s.Require().Equal(3, created.Properties.WordCount)
		})
	})

	s.Run("Step 2: A duplicate is rejected", func() {
		s.WithService("POST /strings again", func(client *resty.Client) {
			resp, err := client.R().SetBody(map[string]string{"value": value}).Post("/strings")
			s.Require().NoError(err)
			s.Require().Equal(http.StatusConflict, resp.StatusCode())
		})
	})

	s.Run("Step 3: Read it back", func() {
		s.WithService("GET /strings/{value}", func(client *resty.Client) {
			var found stringRecord
			resp, err := client.R().
				SetPathParam("value", value).
				SetResult(&found).
				Get("/strings/{value}")
			s.Require().NoError(err)
			s.Require().Equal(http.StatusOK, resp.StatusCode())
			s.Require().Equal(value, found.Value)
		})
	})

	s.Run("Step 4: Delete it", func() {
		s.WithService("DELETE /strings/{value}", func(client *resty.Client) {
			resp, err := client.R().SetPathParam("value", value).Delete("/strings/{value}")
			s.Require().NoError(err)
			s.Require().Equal(http.StatusNoContent, resp.StatusCode())

			resp, err = client.R().SetPathParam("value", value).Get("/strings/{value}")
			s.Require().NoError(err)
			s.Require().Equal(http.StatusNotFound, resp.StatusCode())
		})
	})
}

func (s *testStringsSuite) TestChatRoutesIntents() {
	s.WithService("POST /chat", func(client *resty.Client) {
		var result struct {
			Success bool           `json:"success"`
			Intent  string         `json:"intent"`
			Data    map[string]any `json:"data"`
		}
		resp, err := client.R().
			SetBody(map[string]string{"message": "analyze 'racecar'"}).
			SetResult(&result).
			Post("/chat")
		s.Require().NoError(err)
		s.Require().Equal(http.StatusOK, resp.StatusCode())
		s.Require().True(result.Success)
		s.Require().Equal("analyze_string", result.Intent)
	})
}
