package http

import (
	nethttp "net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestBackoff_RetriesServerErrors(t *testing.T) {
	attempts := 0
	server := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		attempts++
		if attempts < 3 {
			w.WriteHeader(nethttp.StatusInternalServerError)
			return
		}
		_, _ = w.Write([]byte(`{"ok": true}`))
	}))
	defer server.Close()

	client := NewHttpClient(server.URL, ClientOptions{})
	backoff := &BackoffConfig{MaxRetries: 3, InitialInterval: time.Millisecond, Multiplier: 2}

	type okResp struct {
		OK bool `json:"ok"`
	}
	success, _, status, err := client.Request().
		WithMethod(GET).
		WithPath("/").
		WithSuccessResp(&okResp{}).
		WithBackoff(backoff).
		Execute()

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if status != nethttp.StatusOK {
		t.Errorf("expected status 200, got %d", status)
	}
	if attempts != 3 {
		t.Errorf("expected 3 attempts, got %d", attempts)
	}
	if !success.(*okResp).OK {
		t.Error("expected success payload to be unmarshalled")
	}
}

func TestBackoff_DoesNotRetryClientErrors(t *testing.T) {
	attempts := 0
	server := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		attempts++
		w.WriteHeader(nethttp.StatusBadRequest)
	}))
	defer server.Close()

	client := NewHttpClient(server.URL, ClientOptions{})
	backoff := &BackoffConfig{MaxRetries: 3, InitialInterval: time.Millisecond}

	_, _, status, err := client.Request().
		WithMethod(GET).
		WithPath("/").
		WithBackoff(backoff).
		Execute()

	if err == nil {
		t.Fatal("expected an error for a 400 response")
	}
	if status != nethttp.StatusBadRequest {
		t.Errorf("expected status 400, got %d", status)
	}
	if attempts != 1 {
		t.Errorf("expected a single attempt, got %d", attempts)
	}
}

func TestBackoff_NilConfigMeansSingleAttempt(t *testing.T) {
	attempts := 0
	server := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		attempts++
		w.WriteHeader(nethttp.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewHttpClient(server.URL, ClientOptions{})

	_, _, _, err := client.Request().
		WithMethod(GET).
		WithPath("/").
		Execute()

	if err == nil {
		t.Fatal("expected an error for a 500 response")
	}
	if attempts != 1 {
		t.Errorf("expected a single attempt, got %d", attempts)
	}
}
