package web

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/bastiangx/votersearch/pkg/service"
	"github.com/bastiangx/votersearch/pkg/store"
	"github.com/bastiangx/votersearch/pkg/voter"
)

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

func testService(loaded bool) *service.Service {
	h := &store.Handle{}
	if loaded {
		h.Set(store.New([]voter.Record{
			{ID: "41235", FirstName: "Shivaraj", MiddleName: "Anil", LastName: "Yadav"},
			{ID: "500", FirstName: "Ram", LastName: "Patil"},
			{ID: "77", FirstName: "Sunita", MiddleName: "Ramesh", LastName: "Jadhav"},
		}, "roll.json"))
	}
	return service.New(h, nil)
}

func get(t *testing.T, h http.Handler, target string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	var env envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("GET %s: invalid JSON %q: %v", target, rec.Body.String(), err)
	}
	return rec, env
}

func TestSearchEndpoint(t *testing.T) {
	h := NewHandler(testService(true), Options{})

	rec, env := get(t, h, "/api/search?q=ram&mode=name")
	if rec.Code != http.StatusOK || !env.Success {
		t.Fatalf("status=%d env=%+v", rec.Code, env)
	}
	if rec.Header().Get(CacheControlHeaderKey) != CacheControlHeaderNoCache {
		t.Error("missing no-cache header")
	}
	if rec.Header().Get(RequestIDHeaderKey) == "" {
		t.Error("missing request id")
	}
	var res struct {
		Count   int            `json:"count"`
		Mode    string         `json:"mode"`
		Message string         `json:"message"`
		Voters  []voter.Record `json:"voters"`
	}
	if err := json.Unmarshal(env.Data, &res); err != nil {
		t.Fatal(err)
	}
	if res.Count != 2 || res.Voters[0].ID != "500" || res.Voters[1].ID != "77" {
		t.Errorf("unexpected result %+v", res)
	}
	if res.Mode != "name" || res.Message != `Found 2 voter(s) matching "ram"` {
		t.Errorf("mode=%q message=%q", res.Mode, res.Message)
	}
}

func TestSearchEndpointNoMatches(t *testing.T) {
	h := NewHandler(testService(true), Options{})
	rec, env := get(t, h, "/api/search?q=kulkarni")
	if rec.Code != http.StatusOK || !env.Success {
		t.Fatalf("no match is not an error: status=%d", rec.Code)
	}
	var res struct {
		Voters []voter.Record `json:"voters"`
	}
	if err := json.Unmarshal(env.Data, &res); err != nil {
		t.Fatal(err)
	}
	if res.Voters == nil || len(res.Voters) != 0 {
		t.Errorf("want empty array, got %v", res.Voters)
	}
}

func TestSearchEndpointErrors(t *testing.T) {
	tests := []struct {
		name   string
		loaded bool
		target string
		status int
	}{
		{"empty query", true, "/api/search?q=", http.StatusBadRequest},
		{"empty query before load", false, "/api/search?q=%20", http.StatusBadRequest},
		{"not loaded", false, "/api/search?q=ram", http.StatusServiceUnavailable},
		{"bad limit", true, "/api/complete?prefix=ra&limit=x", http.StatusBadRequest},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec, env := get(t, NewHandler(testService(tc.loaded), Options{}), tc.target)
			if rec.Code != tc.status || env.Success || env.Error == "" {
				t.Errorf("status=%d env=%+v, want %d", rec.Code, env, tc.status)
			}
		})
	}
}

func TestCompleteAndInfoEndpoints(t *testing.T) {
	h := NewHandler(testService(true), Options{})

	_, env := get(t, h, "/api/complete?prefix=ra&limit=1")
	var sugg []struct {
		Word  string `json:"word"`
		Count int    `json:"count"`
	}
	if err := json.Unmarshal(env.Data, &sugg); err != nil {
		t.Fatal(err)
	}
	if len(sugg) != 1 || sugg[0].Word != "ram" {
		t.Errorf("complete = %+v", sugg)
	}

	_, env = get(t, h, "/api/info")
	var info service.Info
	if err := json.Unmarshal(env.Data, &info); err != nil {
		t.Fatal(err)
	}
	if info.Status != service.StatusReady || info.Records != 3 {
		t.Errorf("info = %+v", info)
	}

	rec, env := get(t, h, "/health")
	if rec.Code != http.StatusOK || !env.Success {
		t.Errorf("health status=%d", rec.Code)
	}
}

func TestWebFnWrapRecovers(t *testing.T) {
	fn := WebFnWrap(WebFnOpts{}, func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	})
	rec := httptest.NewRecorder()
	fn(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", rec.Code)
	}
}

func TestRequestIDEchoed(t *testing.T) {
	h := NewHandler(testService(true), Options{})
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(RequestIDHeaderKey, "abc-123")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if got := rec.Header().Get(RequestIDHeaderKey); got != "abc-123" {
		t.Errorf("X-Request-ID = %q, want abc-123", got)
	}
}

func TestCORS(t *testing.T) {
	h := NewHandler(testService(true), Options{EnableCORS: true})
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "http://example.org")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Header().Get("Access-Control-Allow-Origin") == "" {
		t.Error("CORS header missing")
	}
}

func TestRunWebServerShutdown(t *testing.T) {
	ln, err := MakeTCPListener("test", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- RunWebServer(ctx, ln, testService(true), Options{}) }()

	resp, err := http.Get("http://" + ln.Addr().String() + "/health")
	if err != nil {
		t.Fatalf("GET /health: %v", err)
	}
	resp.Body.Close()

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("RunWebServer: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
