package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
)

func tokenServer(t *testing.T, calls *atomic.Int32) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"access_token":"token123","token_type":"bearer","expires_in":3600}`))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestGetTokenAndSetAuthHeader(t *testing.T) {
	var calls atomic.Int32
	server := tokenServer(t, &calls)

	cfg := Conf{ClientID: "id", ClientSecret: "secret", AuthURL: server.URL}
	if !cfg.Enabled() {
		t.Fatal("expected credentials to be enabled")
	}
	client := NewClientCred(cfg)

	token, err := client.GetToken(context.Background())
	if err != nil {
		t.Fatalf("GetToken returned error: %v", err)
	}
	if token != "token123" {
		t.Fatalf("unexpected token %s", token)
	}

	req, _ := http.NewRequest("GET", "http://example.com", nil)
	if err := client.SetAuthHeader(req); err != nil {
		t.Fatalf("SetAuthHeader returned error: %v", err)
	}
	if auth := req.Header.Get("Authorization"); auth != "Bearer token123" {
		t.Fatalf("unexpected Authorization header %q", auth)
	}
	if calls.Load() != 1 {
		t.Fatalf("token should be cached, got %d requests", calls.Load())
	}

	if _, err := client.ForceRefresh(context.Background()); err != nil {
		t.Fatalf("ForceRefresh returned error: %v", err)
	}
	if calls.Load() != 2 {
		t.Fatalf("expected a second token request, got %d", calls.Load())
	}
}

func TestConfDisabled(t *testing.T) {
	if (Conf{}).Enabled() {
		t.Fatal("empty conf must be disabled")
	}
	if (Conf{ClientID: "id"}).Enabled() {
		t.Fatal("conf without token URL must be disabled")
	}
}
