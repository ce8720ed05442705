package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/stackbar/pkg/cache"
	"github.com/matzehuels/stackbar/pkg/observability"
	"github.com/matzehuels/stackbar/pkg/pipeline"
)

const monthBody = `{
  "records": [{"month": "Jan", "a": 2, "b": 3}, {"month": "Feb", "a": 1, "b": 4}],
  "key": {"dimension": "month", "metric": ["a", "b"]}%s
}`

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	logger := log.New(io.Discard)
	srv := New(pipeline.NewRunner(c, nil, logger), logger)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func post(t *testing.T, ts *httptest.Server, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(ts.URL+"/v1/render", "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("POST: %v", err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decodeError(t *testing.T, resp *http.Response) errorBody {
	t.Helper()
	var body errorBody
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	return body
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t)
	resp, err := http.Get(ts.URL + "/healthz")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	var body healthBody
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if body.Status != "ok" || body.Build.Version == "" {
		t.Errorf("body = %+v", body)
	}
	if resp.Header.Get(HeaderRequestID) == "" {
		t.Error("response should carry a request id")
	}
}

func TestRenderSVG(t *testing.T) {
	ts := newTestServer(t)
	resp := post(t, ts, strings.Replace(monthBody, "%s", "", 1))

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d: %+v", resp.StatusCode, decodeError(t, resp))
	}
	if ct := resp.Header.Get("Content-Type"); ct != "image/svg+xml" {
		t.Errorf("Content-Type = %q", ct)
	}
	if resp.Header.Get(HeaderRenderID) == "" {
		t.Error("missing render id")
	}
	if got := resp.Header.Get(HeaderCache); got != "miss" {
		t.Errorf("X-Cache = %q, want miss", got)
	}
	data, _ := io.ReadAll(resp.Body)
	if !bytes.HasPrefix(data, []byte("<svg")) {
		t.Errorf("body does not start with <svg: %.40s", data)
	}
	if n := bytes.Count(data, []byte(`<rect class="bar"`)); n != 4 {
		t.Errorf("bars = %d, want 4", n)
	}

	again := post(t, ts, strings.Replace(monthBody, "%s", "", 1))
	if got := again.Header.Get(HeaderCache); got != "hit" {
		t.Errorf("second X-Cache = %q, want hit", got)
	}
}

func TestRenderJSONFormat(t *testing.T) {
	ts := newTestServer(t)
	resp := post(t, ts, strings.Replace(monthBody, "%s", `, "format": "json", "width": 400, "height": 300`, 1))
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}

	var layout struct {
		Width  float64 `json:"width"`
		Stacks []struct {
			Key   string  `json:"key"`
			Total float64 `json:"total"`
		} `json:"stacks"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&layout); err != nil {
		t.Fatal(err)
	}
	if layout.Width != 400 || len(layout.Stacks) != 2 || layout.Stacks[0].Key != "Jan" || layout.Stacks[0].Total != 5 {
		t.Errorf("layout = %+v", layout)
	}
}

func TestRenderErrors(t *testing.T) {
	ts := newTestServer(t)
	tests := []struct {
		name   string
		body   string
		status int
		code   string
	}{
		{"malformed", `{"records": [`, http.StatusBadRequest, "INVALID_INPUT"},
		{"no records", `{"key": {"dimension": "month", "metric": "a"}}`, http.StatusBadRequest, "INVALID_INPUT"},
		{"bad key", `{"records": [{"month": "Jan"}], "key": {"dimension": "month"}}`, http.StatusBadRequest, "INVALID_KEY"},
		{"bad format", strings.Replace(monthBody, "%s", `, "format": "gif"`, 1), http.StatusBadRequest, "INVALID_FORMAT"},
		{"two formats", strings.Replace(monthBody, "%s", `, "formats": ["svg", "png"]`, 1), http.StatusBadRequest, "INVALID_INPUT"},
		{"bad color", strings.Replace(monthBody, "%s", `, "colors": ["#zzz"]`, 1), http.StatusBadRequest, "INVALID_COLOR"},
		{"non-numeric json", `{"records": [{"month": "Jan", "a": "x"}], "key": {"dimension": "month", "metric": "a"}, "format": "json"}`, http.StatusBadRequest, "INVALID_DATASET"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := post(t, ts, tt.body)
			if resp.StatusCode != tt.status {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.status)
			}
			body := decodeError(t, resp)
			if body.Code != tt.code {
				t.Errorf("code = %q, want %q (%s)", body.Code, tt.code, body.Error)
			}
			if body.RequestID == "" {
				t.Error("error body should carry the request id")
			}
		})
	}
}

func TestRenderBodyTooLarge(t *testing.T) {
	srv := New(nil, log.New(io.Discard), WithMaxBodySize(16))
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	resp := post(t, ts, strings.Replace(monthBody, "%s", "", 1))
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}

func TestRequestIDPropagation(t *testing.T) {
	ts := newTestServer(t)
	const id = "6f1c1c1e-8a5e-4a39-9a53-2b7c7e3b9f10"

	req, _ := http.NewRequest(http.MethodGet, ts.URL+"/healthz", nil)
	req.Header.Set(HeaderRequestID, id)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if got := resp.Header.Get(HeaderRequestID); got != id {
		t.Errorf("request id = %q, want %q", got, id)
	}

	req.Header.Set(HeaderRequestID, "not-a-uuid")
	resp2, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp2.Body.Close()
	if got := resp2.Header.Get(HeaderRequestID); got == "not-a-uuid" || got == "" {
		t.Errorf("invalid client id should be replaced, got %q", got)
	}
}

func TestNotFoundAndMethod(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/v2/render")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("unknown route status = %d", resp.StatusCode)
	}

	resp, err = http.Get(ts.URL + "/v1/render")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusMethodNotAllowed {
		t.Errorf("GET /v1/render status = %d", resp.StatusCode)
	}
}

func TestHTTPHooks(t *testing.T) {
	observability.Reset()
	defer observability.Reset()
	hooks := &recordingHooks{}
	observability.SetHTTPHooks(hooks)

	ts := newTestServer(t)
	resp, err := http.Get(ts.URL + "/healthz")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()

	hooks.mu.Lock()
	defer hooks.mu.Unlock()
	if len(hooks.statuses) != 1 || hooks.statuses[0] != http.StatusOK {
		t.Errorf("statuses = %v", hooks.statuses)
	}
}

func TestListenAndServeShutdown(t *testing.T) {
	srv := New(nil, log.New(io.Discard))
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.ListenAndServe(ctx, "127.0.0.1:0") }()

	time.Sleep(50 * time.Millisecond)
	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("ListenAndServe: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}

type recordingHooks struct {
	observability.NoopHTTPHooks
	mu       sync.Mutex
	statuses []int
}

func (h *recordingHooks) OnResponse(_ context.Context, _, _ string, status int, _ time.Duration) {
	h.mu.Lock()
	h.statuses = append(h.statuses, status)
	h.mu.Unlock()
}
