package integration_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

// IntegrationTestSuite drives a running server over HTTP. Set TEST_SERVER_URL to enable it.
type IntegrationTestSuite struct {
	suite.Suite
	client  *http.Client
	baseURL string

	userID int64
	token  string
}

func (s *IntegrationTestSuite) SetupSuite() {
	s.baseURL = os.Getenv("TEST_SERVER_URL")
	if s.baseURL == "" {
		s.T().Skip("TEST_SERVER_URL not set; skipping integration tests")
	}
	s.client = &http.Client{Timeout: 5 * time.Second}

	username := fmt.Sprintf("it-%d", time.Now().UnixNano())
	creds := map[string]string{"username": username, "password": "integration-pass"}

	resp, body := s.do(http.MethodPost, "/api/users/register", creds, "")
	s.Require().Equal(http.StatusCreated, resp.StatusCode, string(body))
	var created struct {
		ID int64 `json:"id"`
	}
	s.Require().NoError(json.Unmarshal(body, &created))
	s.userID = created.ID

	resp, body = s.do(http.MethodPost, "/api/auth/login", creds, "")
	s.Require().Equal(http.StatusOK, resp.StatusCode, string(body))
	var token struct {
		AccessToken string `json:"access_token"`
	}
	s.Require().NoError(json.Unmarshal(body, &token))
	s.token = token.AccessToken
}

func (s *IntegrationTestSuite) TearDownSuite() {
	if s.userID != 0 {
		s.do(http.MethodDelete, fmt.Sprintf("/api/users/%d", s.userID), nil, s.token)
	}
}

func (s *IntegrationTestSuite) do(method, path string, body any, token string) (*http.Response, []byte) {
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		s.Require().NoError(err)
	}
	req, err := http.NewRequest(method, s.baseURL+path, bytes.NewReader(payload))
	s.Require().NoError(err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := s.client.Do(req)
	s.Require().NoError(err)
	defer resp.Body.Close()
	var buf bytes.Buffer
	_, err = buf.ReadFrom(resp.Body)
	s.Require().NoError(err)
	return resp, buf.Bytes()
}

func (s *IntegrationTestSuite) TestHealthEndpoint() {
	resp, body := s.do(http.MethodGet, "/health", nil, "")
	assert.Equal(s.T(), http.StatusOK, resp.StatusCode)

	var health map[string]any
	s.Require().NoError(json.Unmarshal(body, &health))
	assert.Equal(s.T(), "healthy", health["status"])
}

func (s *IntegrationTestSuite) TestBookLifecycleIsVisibleThroughCaches() {
	title := fmt.Sprintf("Integration %d", time.Now().UnixNano())
	resp, body := s.do(http.MethodPost, "/api/books", map[string]string{"title": title, "author": "Suite"}, s.token)
	s.Require().Equal(http.StatusCreated, resp.StatusCode, string(body))
	var b struct {
		ID    int64  `json:"id"`
		Title string `json:"title"`
	}
	s.Require().NoError(json.Unmarshal(body, &b))

	path := fmt.Sprintf("/api/books/%d", b.ID)
	resp, _ = s.do(http.MethodGet, path, nil, "")
	assert.Equal(s.T(), http.StatusOK, resp.StatusCode)

	resp, _ = s.do(http.MethodPut, path, map[string]string{"title": title + " (2nd ed.)", "author": "Suite"}, s.token)
	assert.Equal(s.T(), http.StatusOK, resp.StatusCode)

	resp, body = s.do(http.MethodGet, path, nil, "")
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	s.Require().NoError(json.Unmarshal(body, &b))
	assert.Equal(s.T(), title+" (2nd ed.)", b.Title)

	resp, _ = s.do(http.MethodPost, "/api/books", map[string]string{"title": title + " (2nd ed.)", "author": "Suite"}, s.token)
	assert.Equal(s.T(), http.StatusConflict, resp.StatusCode)

	resp, _ = s.do(http.MethodDelete, path, nil, s.token)
	assert.Equal(s.T(), http.StatusNoContent, resp.StatusCode)

	resp, _ = s.do(http.MethodGet, path, nil, "")
	assert.Equal(s.T(), http.StatusNotFound, resp.StatusCode)
}

func (s *IntegrationTestSuite) TestVisitCounter() {
	url := fmt.Sprintf("/it/page/%d", time.Now().UnixNano())
	for i := 0; i < 3; i++ {
		resp, _ := s.do(http.MethodPost, "/api/visits/track?url="+url, nil, "")
		s.Require().Equal(http.StatusOK, resp.StatusCode)
	}
	resp, body := s.do(http.MethodGet, "/api/visits/stats?url="+url, nil, "")
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	var v struct {
		Count int64 `json:"count"`
	}
	s.Require().NoError(json.Unmarshal(body, &v))
	assert.Equal(s.T(), int64(3), v.Count)
}

func (s *IntegrationTestSuite) TestWritesRequireToken() {
	resp, _ := s.do(http.MethodPost, "/api/categories", map[string]string{"name": "Unauthorized"}, "")
	assert.Equal(s.T(), http.StatusUnauthorized, resp.StatusCode)
}

func TestIntegrationSuite(t *testing.T) {
	suite.Run(t, new(IntegrationTestSuite))
}
