package twitterapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// rewriteTransport rewrites all requests to use the test server.
type rewriteTransport struct {
	Transport http.RoundTripper
	host      string
}

func (t *rewriteTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req.URL.Scheme = "http"
	if t.host != "" {
		host := t.host
		host = strings.TrimPrefix(host, "http://")
		host = strings.TrimPrefix(host, "https://")
		req.URL.Host = host
	}
	return t.Transport.RoundTrip(req)
}

func testClient(serverURL string) *Client {
	c := &Client{
		Credentials: Credentials{
			ConsumerKey:       "test-ck",
			ConsumerSecret:    "test-cs",
			AccessToken:       "test-at",
			AccessTokenSecret: "test-ats",
		},
		HTTPClient: &http.Client{
			Transport: &rewriteTransport{
				Transport: http.DefaultTransport,
				host:      serverURL,
			},
		},
	}
	_ = c.Init()
	return c
}

func TestDoSignsAndParses(t *testing.T) {
	var gotAuth, gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotQuery = r.URL.RawQuery
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(map[string]string{"result": "fine"})
	}))
	defer server.Close()

	c := testClient(server.URL)
	body, err := c.Do(context.Background(), http.MethodGet, "https://api.twitter.com/test", map[string]string{"name": "Alice 🕑"})
	if err != nil {
		t.Fatalf("Do() error: %v", err)
	}

	var res struct {
		Result string `json:"result"`
	}
	if err := json.Unmarshal(body, &res); err != nil || res.Result != "fine" {
		t.Errorf("body = %s, want result fine", body)
	}
	if !strings.HasPrefix(gotAuth, "OAuth ") {
		t.Errorf("Authorization = %q, want OAuth prefix", gotAuth)
	}
	if !strings.Contains(gotAuth, `oauth_signature="`) {
		t.Errorf("Authorization missing signature: %q", gotAuth)
	}
	if gotQuery != "name=Alice%20%F0%9F%95%91" {
		t.Errorf("query = %q, want percent-encoded name param", gotQuery)
	}
}

func TestDoMultipleParamsJoinedWithAmpersand(t *testing.T) {
	var gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()

	c := testClient(server.URL)
	_, err := c.Do(context.Background(), http.MethodGet, "https://api.twitter.com/test", map[string]string{"a": "1", "b": "2"})
	if err != nil {
		t.Fatalf("Do() error: %v", err)
	}
	if gotQuery != "a=1&b=2" && gotQuery != "b=2&a=1" {
		t.Errorf("query = %q, want a=1&b=2 in either order", gotQuery)
	}
}

func TestDoAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"errors":[{"code":32,"message":"Could not authenticate you."}]}`))
	}))
	defer server.Close()

	c := testClient(server.URL)
	_, err := c.Do(context.Background(), http.MethodGet, "https://api.twitter.com/test", nil)
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %v", err)
	}
	if apiErr.StatusCode != http.StatusUnauthorized {
		t.Errorf("StatusCode = %d, want 401", apiErr.StatusCode)
	}
	if !strings.Contains(string(apiErr.Body), "Could not authenticate you.") {
		t.Errorf("Body = %s, want platform error message", apiErr.Body)
	}
	if !strings.Contains(apiErr.Error(), "401") {
		t.Errorf("Error() = %q, want status in message", apiErr.Error())
	}
}

func TestDoInvalidJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("<html>not json</html>"))
	}))
	defer server.Close()

	c := testClient(server.URL)
	if _, err := c.Do(context.Background(), http.MethodGet, "https://api.twitter.com/test", nil); err == nil {
		t.Errorf("expected parse error for non-JSON body")
	}
}

func TestDoBeforeInit(t *testing.T) {
	c := &Client{Credentials: Credentials{
		ConsumerKey: "ck", ConsumerSecret: "cs", AccessToken: "at", AccessTokenSecret: "ats",
	}}
	_, err := c.Do(context.Background(), http.MethodGet, "https://api.twitter.com/test", nil)
	if !errors.Is(err, ErrNotInitialized) {
		t.Errorf("expected ErrNotInitialized, got %v", err)
	}
}

func TestMe(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/2/users/me" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"data": map[string]string{"id": "1", "name": "Alice 🕛", "username": "alice"},
		})
	}))
	defer server.Close()

	c := testClient(server.URL)
	name, err := c.Me(context.Background())
	if err != nil {
		t.Fatalf("Me() error: %v", err)
	}
	if name != "Alice 🕛" {
		t.Errorf("Me() = %q, want Alice 🕛", name)
	}
}

func TestMeMissingName(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"data":{}}`))
	}))
	defer server.Close()

	c := testClient(server.URL)
	if _, err := c.Me(context.Background()); err == nil {
		t.Errorf("expected error when name absent")
	}
}

func TestUpdateName(t *testing.T) {
	var gotMethod, gotName string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/1.1/account/update_profile.json" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		gotMethod = r.Method
		gotName = r.URL.Query().Get("name")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"name":"ok"}`))
	}))
	defer server.Close()

	c := testClient(server.URL)
	if err := c.UpdateName(context.Background(), "Alice 🕑"); err != nil {
		t.Fatalf("UpdateName() error: %v", err)
	}
	if gotMethod != http.MethodPost {
		t.Errorf("method = %s, want POST", gotMethod)
	}
	if gotName != "Alice 🕑" {
		t.Errorf("name param = %q, want Alice 🕑", gotName)
	}
}
