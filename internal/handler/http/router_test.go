package http

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/cmlabs-hris/clockodo-mcp-go/internal/domain/access"
	mcphandler "github.com/cmlabs-hris/clockodo-mcp-go/internal/handler/mcp"
	"github.com/cmlabs-hris/clockodo-mcp-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/clockodo-mcp-go/internal/pkg/metrics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key-for-jwt"

type stubReporter struct{}

func (stubReporter) Health() mcphandler.Health {
	return mcphandler.Health{
		Status:       "ok",
		Role:         access.RoleHRAnalytics,
		Capabilities: []access.Capability{access.CapabilityHRRead},
		Tools:        []string{"health", "get_hr_summary"},
	}
}

func newTestRouter(t *testing.T, jwtService jwt.Service) *httptest.Server {
	t.Helper()
	mcp := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, "mcp ok")
	})
	router := NewRouter(RouterConfig{
		AllowedOrigins: []string{"*"},
		JWTService:     jwtService,
		MCP:            mcp,
		Health:         NewHealthHandler(stubReporter{}),
		Metrics:        metrics.New().Handler(),
	})
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv
}

func newJWTService(t *testing.T) jwt.Service {
	t.Helper()
	svc, err := jwt.NewJWTService(testSecret, "1h")
	require.NoError(t, err)
	return svc
}

func doRequest(t *testing.T, method, url, token string) (*http.Response, string) {
	t.Helper()
	req, err := http.NewRequest(method, url, strings.NewReader(`{}`))
	require.NoError(t, err)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(body)
}

func TestRouter_Ping(t *testing.T) {
	srv := newTestRouter(t, nil)

	resp, _ := doRequest(t, http.MethodGet, srv.URL+"/ping", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRouter_Health(t *testing.T) {
	srv := newTestRouter(t, newJWTService(t))

	resp, body := doRequest(t, http.MethodGet, srv.URL+"/health", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))

	var payload struct {
		Success bool              `json:"success"`
		Data    mcphandler.Health `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &payload))
	assert.True(t, payload.Success)
	assert.Equal(t, access.RoleHRAnalytics, payload.Data.Role)
	assert.Equal(t, []string{"health", "get_hr_summary"}, payload.Data.Tools)
}

func TestRouter_Metrics(t *testing.T) {
	srv := newTestRouter(t, nil)

	resp, body := doRequest(t, http.MethodGet, srv.URL+"/metrics", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "go_goroutines")
}

func TestRouter_MCPOpenWithoutSecret(t *testing.T) {
	srv := newTestRouter(t, nil)

	resp, body := doRequest(t, http.MethodPost, srv.URL+"/mcp", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "mcp ok", body)
}

func TestRouter_MCPRequiresToken(t *testing.T) {
	jwtService := newJWTService(t)
	srv := newTestRouter(t, jwtService)

	t.Run("missing token", func(t *testing.T) {
		resp, body := doRequest(t, http.MethodPost, srv.URL+"/mcp", "")
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		assert.Contains(t, body, "UNAUTHORIZED")
	})

	t.Run("valid access token", func(t *testing.T) {
		token, _, err := jwtService.GenerateAccessToken("claude-desktop")
		require.NoError(t, err)

		resp, body := doRequest(t, http.MethodPost, srv.URL+"/mcp", token)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "mcp ok", body)
	})

	t.Run("wrong token type", func(t *testing.T) {
		_, token, err := jwtService.JWTAuth().Encode(map[string]interface{}{"sub": "x", "type": "refresh"})
		require.NoError(t, err)

		resp, body := doRequest(t, http.MethodPost, srv.URL+"/mcp", token)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		assert.Contains(t, body, "Invalid token")
	})

	t.Run("token signed with another secret", func(t *testing.T) {
		other, err := jwt.NewJWTService("another-secret", "1h")
		require.NoError(t, err)
		token, _, err := other.GenerateAccessToken("intruder")
		require.NoError(t, err)

		resp, _ := doRequest(t, http.MethodPost, srv.URL+"/mcp", token)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})
}
