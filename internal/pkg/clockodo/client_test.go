package clockodo

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/cmlabs-hris/clockodo-mcp-go/internal/config"
	"github.com/cmlabs-hris/clockodo-mcp-go/internal/domain/clockodo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordedRequest struct {
	Method string
	Path   string
	Query  map[string]string
	Header http.Header
	Body   map[string]any
}

type fakeUpstream struct {
	mu       sync.Mutex
	requests []recordedRequest
	status   int
	body     string
}

func newFakeUpstream(t *testing.T, status int, body string) (*fakeUpstream, *httptest.Server) {
	t.Helper()
	f := &fakeUpstream{status: status, body: body}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := recordedRequest{
			Method: r.Method,
			Path:   r.URL.Path,
			Query:  map[string]string{},
			Header: r.Header.Clone(),
		}
		for k := range r.URL.Query() {
			rec.Query[k] = r.URL.Query().Get(k)
		}
		if raw, _ := io.ReadAll(r.Body); len(raw) > 0 {
			_ = json.Unmarshal(raw, &rec.Body)
		}
		f.mu.Lock()
		f.requests = append(f.requests, rec)
		f.mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(f.status)
		_, _ = w.Write([]byte(f.body))
	}))
	t.Cleanup(srv.Close)
	return f, srv
}

func (f *fakeUpstream) last(t *testing.T) recordedRequest {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	require.NotEmpty(t, f.requests)
	return f.requests[len(f.requests)-1]
}

func testConfig(baseURL string) config.ClockodoConfig {
	return config.ClockodoConfig{
		APIUser: "jane@example.com",
		APIKey:  "secret-key",
		BaseURL: baseURL,
		Timeout: 5 * time.Second,
	}
}

func TestNormalizeBaseURL(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{"https://my.clockodo.com/api/v2/", "https://my.clockodo.com/api/"},
		{"https://my.clockodo.com/api/v3", "https://my.clockodo.com/api/"},
		{"https://my.clockodo.com/api/", "https://my.clockodo.com/api/"},
		{"https://my.clockodo.com/api", "https://my.clockodo.com/api/"},
		{"https://my.clockodo.com", "https://my.clockodo.com/api/"},
		{"https://my.clockodo.com/v4/", "https://my.clockodo.com/api/"},
		// only the last version segment is removed
		{"https://my.clockodo.com/api/v2/v3/", "https://my.clockodo.com/api/v2/"},
		{"", DefaultBaseURL},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, NormalizeBaseURL(c.input), "input %q", c.input)
	}
}

func TestClient_URL_VersionTable(t *testing.T) {
	client := NewClient(testConfig("https://my.clockodo.com/api/v2/"))
	require.Equal(t, "https://my.clockodo.com/api/", client.BaseURL())

	want := map[clockodo.Family]string{
		clockodo.FamilyClock:      "https://my.clockodo.com/api/v2/clock",
		clockodo.FamilyTimeEntry:  "https://my.clockodo.com/api/v2/entries",
		clockodo.FamilyUser:       "https://my.clockodo.com/api/v3/users",
		clockodo.FamilyCustomer:   "https://my.clockodo.com/api/v3/customers",
		clockodo.FamilyService:    "https://my.clockodo.com/api/v4/services",
		clockodo.FamilyProject:    "https://my.clockodo.com/api/v4/projects",
		clockodo.FamilyAbsence:    "https://my.clockodo.com/api/v4/absences",
		clockodo.FamilyUserReport: "https://my.clockodo.com/api/userreports",
	}
	for _, family := range clockodo.Families() {
		assert.Equal(t, want[family], client.URL(family), "family %s", family)
	}
}

func TestClient_Fetch_RenamesDataKey(t *testing.T) {
	upstream, srv := newFakeUpstream(t, http.StatusOK, `{"data":[{"id":1,"name":"Website"},{"id":2,"name":"App"}],"paging":{"count_pages":1}}`)
	client := NewClient(testConfig(srv.URL + "/api/v2/"))

	env, err := client.Fetch(context.Background(), clockodo.FamilyProject, nil)
	require.NoError(t, err)

	assert.Equal(t, "/api/v4/projects", upstream.last(t).Path)
	assert.NotContains(t, env, "data")
	assert.Contains(t, env, "paging")

	records, err := env.Records(clockodo.FamilyProject)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "Website", records[0].String("name"))
	assert.Equal(t, "App", records[1].String("name"))
}

func TestClient_Fetch_PluralKeyIsIdentity(t *testing.T) {
	body := `{"users":[{"id":7,"email":"jane@example.com"}],"extra":true}`
	_, srv := newFakeUpstream(t, http.StatusOK, body)
	client := NewClient(testConfig(srv.URL))

	env, err := client.Fetch(context.Background(), clockodo.FamilyUser, nil)
	require.NoError(t, err)

	var raw clockodo.Envelope
	require.NoError(t, json.Unmarshal([]byte(body), &raw))
	assert.Equal(t, raw, env)
}

func TestClient_Fetch_MissingCollectionKey(t *testing.T) {
	_, srv := newFakeUpstream(t, http.StatusOK, `{"paging":{}}`)
	client := NewClient(testConfig(srv.URL))

	_, err := client.Fetch(context.Background(), clockodo.FamilyService, nil)
	var formatErr *clockodo.UpstreamFormatError
	require.True(t, errors.As(err, &formatErr))
	assert.Equal(t, clockodo.FamilyService, formatErr.Family)
}

func TestClient_Fetch_NonObjectBody(t *testing.T) {
	_, srv := newFakeUpstream(t, http.StatusOK, `[1,2,3]`)
	client := NewClient(testConfig(srv.URL))

	_, err := client.Fetch(context.Background(), clockodo.FamilyCustomer, nil)
	var formatErr *clockodo.UpstreamFormatError
	assert.True(t, errors.As(err, &formatErr))
}

func TestClient_Fetch_ClockIsNotACollection(t *testing.T) {
	_, srv := newFakeUpstream(t, http.StatusOK, `{"running":null}`)
	client := NewClient(testConfig(srv.URL))

	env, err := client.Fetch(context.Background(), clockodo.FamilyClock, nil)
	require.NoError(t, err)
	assert.Contains(t, env, "running")
}

func TestClient_Fetch_UserReportsLegacyPath(t *testing.T) {
	upstream, srv := newFakeUpstream(t, http.StatusOK, `{"userreports":[{"users_id":1,"users_name":"Jane","year":2024}]}`)
	client := NewClient(testConfig(srv.URL + "/api/v2"))

	_, err := client.Fetch(context.Background(), clockodo.FamilyUserReport, clockodo.Params{"year": "2024", "type": "0"})
	require.NoError(t, err)

	req := upstream.last(t)
	assert.Equal(t, http.MethodGet, req.Method)
	assert.Equal(t, "/api/userreports", req.Path)
	assert.Equal(t, "2024", req.Query["year"])
	assert.Equal(t, "0", req.Query["type"])
}

func TestClient_Headers(t *testing.T) {
	upstream, srv := newFakeUpstream(t, http.StatusOK, `{"customers":[]}`)

	cfg := testConfig(srv.URL)
	client := NewClient(cfg)
	_, err := client.Fetch(context.Background(), clockodo.FamilyCustomer, nil)
	require.NoError(t, err)

	h := upstream.last(t).Header
	assert.Equal(t, "jane@example.com", h.Get("X-ClockodoApiUser"))
	assert.Equal(t, "secret-key", h.Get("X-ClockodoApiKey"))
	assert.Equal(t, "clockodo-mcp;jane@example.com", h.Get("X-Clockodo-External-Application"))
	assert.Equal(t, "clockodo-mcp/unknown", h.Get("User-Agent"))

	cfg.UserAgent = "acme-hr"
	cfg.ExternalAppContact = "it@acme.test"
	client = NewClient(cfg)
	_, err = client.Fetch(context.Background(), clockodo.FamilyCustomer, nil)
	require.NoError(t, err)

	h = upstream.last(t).Header
	assert.Equal(t, "acme-hr;it@acme.test", h.Get("X-Clockodo-External-Application"))
	assert.Equal(t, "acme-hr", h.Get("User-Agent"))
}

func TestClient_UpstreamError(t *testing.T) {
	_, srv := newFakeUpstream(t, http.StatusForbidden, `{"error":{"message":"Missing access rights"}}`)
	client := NewClient(testConfig(srv.URL))

	_, err := client.Update(context.Background(), clockodo.FamilyAbsence, 42, map[string]any{"status": 1})
	var reqErr *clockodo.UpstreamRequestError
	require.True(t, errors.As(err, &reqErr))
	assert.Equal(t, http.StatusForbidden, reqErr.StatusCode)
	assert.Equal(t, http.MethodPut, reqErr.Method)
	assert.Contains(t, reqErr.Body, "Missing access rights")
	assert.Contains(t, reqErr.URL, "/api/v4/absences/42")
}

func TestClient_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	client := NewClient(testConfig(url))
	_, err := client.Fetch(context.Background(), clockodo.FamilyUser, nil)

	var reqErr *clockodo.UpstreamRequestError
	require.True(t, errors.As(err, &reqErr))
	assert.Equal(t, 0, reqErr.StatusCode)
	assert.Error(t, reqErr.Unwrap())
}

func TestClient_Mutations(t *testing.T) {
	upstream, srv := newFakeUpstream(t, http.StatusOK, `{"data":{"id":5,"status":1}}`)
	client := NewClient(testConfig(srv.URL))
	ctx := context.Background()

	env, err := client.Update(ctx, clockodo.FamilyAbsence, 5, map[string]any{"status": 1})
	require.NoError(t, err)
	req := upstream.last(t)
	assert.Equal(t, http.MethodPut, req.Method)
	assert.Equal(t, "/api/v4/absences/5", req.Path)
	assert.Equal(t, float64(1), req.Body["status"])

	absence, ok := env.Record("absence")
	require.True(t, ok)
	id, _ := absence.Int("id")
	assert.Equal(t, 5, id)
	assert.NotContains(t, env, "data")

	_, err = client.Create(ctx, clockodo.FamilyTimeEntry, map[string]any{"customers_id": 1})
	require.NoError(t, err)
	req = upstream.last(t)
	assert.Equal(t, http.MethodPost, req.Method)
	assert.Equal(t, "/api/v2/entries", req.Path)
	assert.Equal(t, "application/json", req.Header.Get("Content-Type"))

	_, err = client.Delete(ctx, clockodo.FamilyClock, 99)
	require.NoError(t, err)
	req = upstream.last(t)
	assert.Equal(t, http.MethodDelete, req.Method)
	assert.Equal(t, "/api/v2/clock/99", req.Path)
}

func TestClient_Mutation_EmptyBody(t *testing.T) {
	_, srv := newFakeUpstream(t, http.StatusOK, ``)
	client := NewClient(testConfig(srv.URL))

	env, err := client.Delete(context.Background(), clockodo.FamilyTimeEntry, 3)
	require.NoError(t, err)
	assert.Empty(t, env)
}

func TestClient_Fetch_Idempotent(t *testing.T) {
	_, srv := newFakeUpstream(t, http.StatusOK, `{"data":[{"id":1,"name":"Consulting"}],"paging":{"items_per_page":50}}`)
	client := NewClient(testConfig(srv.URL))
	ctx := context.Background()
	params := clockodo.Params{"filter[active]": "true"}

	first, err := client.Fetch(ctx, clockodo.FamilyService, params)
	require.NoError(t, err)
	second, err := client.Fetch(ctx, clockodo.FamilyService, params)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

type countingObserver struct {
	mu     sync.Mutex
	calls  int
	status []int
}

func (o *countingObserver) ObserveRequest(_ clockodo.Family, _ string, status int, _ time.Duration) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.calls++
	o.status = append(o.status, status)
}

func TestClient_Observer(t *testing.T) {
	_, srv := newFakeUpstream(t, http.StatusNotFound, `{}`)
	observer := &countingObserver{}
	client := NewClient(testConfig(srv.URL), WithObserver(observer))

	_, err := client.Fetch(context.Background(), clockodo.FamilyProject, nil)
	require.Error(t, err)
	assert.Equal(t, 1, observer.calls)
	assert.Equal(t, []int{http.StatusNotFound}, observer.status)
}
