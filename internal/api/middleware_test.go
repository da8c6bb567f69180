package api

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"
)

func requestFrom(addr string) *http.Request {
	req := httptest.NewRequest("GET", "/", nil)
	req.RemoteAddr = addr
	return req
}

func TestRateLimitMiddleware_AllowsWithinLimit(t *testing.T) {
	handler := RateLimitMiddleware(5)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	for i := 0; i < 5; i++ {
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, requestFrom("10.0.0.1:1234"))

		if w.Code != http.StatusOK {
			t.Fatalf("request %d: expected 200, got %d", i+1, w.Code)
		}
	}
}

func TestRateLimitMiddleware_BlocksOverLimit(t *testing.T) {
	handler := RateLimitMiddleware(3)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	for i := 0; i < 3; i++ {
		handler.ServeHTTP(httptest.NewRecorder(), requestFrom("10.0.0.1:1234"))
	}

	// 4th request should be rate-limited, even from another port
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, requestFrom("10.0.0.1:5678"))

	if w.Code != http.StatusTooManyRequests {
		t.Errorf("expected 429, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("expected json error, got %q", ct)
	}
}

func TestRateLimitMiddleware_KeysByClientAddress(t *testing.T) {
	handler := RateLimitMiddleware(2)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	for i := 0; i < 2; i++ {
		handler.ServeHTTP(httptest.NewRecorder(), requestFrom("10.0.0.1:1234"))
	}

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, requestFrom("10.0.0.2:1234"))
	if w.Code != http.StatusOK {
		t.Errorf("second client should not be rate-limited, got %d", w.Code)
	}

	w = httptest.NewRecorder()
	handler.ServeHTTP(w, requestFrom("10.0.0.1:1234"))
	if w.Code != http.StatusTooManyRequests {
		t.Errorf("first client should be rate-limited, got %d", w.Code)
	}
}

func TestRateLimiter_WindowExpires(t *testing.T) {
	rl := &rateLimiter{requests: make(map[string][]time.Time), limit: 1, window: time.Minute}
	now := time.Now()

	if !rl.allow("c", now) {
		t.Fatal("first request should pass")
	}
	if rl.allow("c", now.Add(30*time.Second)) {
		t.Error("second request inside the window should be blocked")
	}
	if !rl.allow("c", now.Add(61*time.Second)) {
		t.Error("request after the window should pass")
	}
}

func TestRateLimiter_ForgetsIdleClients(t *testing.T) {
	rl := &rateLimiter{requests: make(map[string][]time.Time), limit: 5, window: time.Minute}
	now := time.Now()

	for i := 0; i < 3; i++ {
		rl.allow("10.0.0."+strconv.Itoa(i), now)
	}
	if len(rl.requests) != 3 {
		t.Fatalf("expected 3 tracked clients, got %d", len(rl.requests))
	}

	if !rl.allow("10.0.0.99", now.Add(2*time.Minute)) {
		t.Fatal("new client should pass")
	}
	if len(rl.requests) != 1 {
		t.Errorf("idle clients should be dropped, still tracking %d", len(rl.requests))
	}
	if _, ok := rl.requests["10.0.0.99"]; !ok {
		t.Error("active client should be kept")
	}
}

func TestRateLimiter_SweepKeepsActiveClients(t *testing.T) {
	rl := &rateLimiter{requests: make(map[string][]time.Time), limit: 1, window: time.Minute}
	now := time.Now()

	rl.allow("a", now)
	rl.allow("b", now.Add(50*time.Second))
	rl.allow("c", now.Add(70*time.Second))

	if _, ok := rl.requests["a"]; ok {
		t.Error("client a is idle and should be dropped")
	}
	if rl.allow("b", now.Add(75*time.Second)) {
		t.Error("client b is still inside its window and should be blocked")
	}
}

func TestClientKey(t *testing.T) {
	if got := clientKey(requestFrom("192.168.1.5:4000")); got != "192.168.1.5" {
		t.Errorf("expected host only, got %q", got)
	}
	if got := clientKey(requestFrom("unix-socket")); got != "unix-socket" {
		t.Errorf("expected raw address, got %q", got)
	}
}

func TestRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	called := false
	handler := RequestLogger(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusTeapot)
	}))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest("GET", "/test", nil))

	if !called {
		t.Error("inner handler was not called")
	}
	if w.Code != http.StatusTeapot {
		t.Errorf("expected 418, got %d", w.Code)
	}
	if !strings.Contains(buf.String(), "status=418") || !strings.Contains(buf.String(), "path=/test") {
		t.Errorf("log line missing fields: %s", buf.String())
	}
}
