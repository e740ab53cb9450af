package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/anthropics/anthropic-sdk-go"
)

// countingTransport counts requests that go through the client's transport.
type countingTransport struct {
	hits int32
}

func (c *countingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	atomic.AddInt32(&c.hits, 1)
	return http.DefaultTransport.RoundTrip(req)
}

func failingServer(t *testing.T, hits *int32) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(hits, 1)
		if got := r.Header.Get("X-Api-Key"); got != "sk-ant-test" {
			t.Errorf("X-Api-Key = %q, want sk-ant-test", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"type":"error","error":{"type":"api_error","message":"Internal server error"}}`))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestNewClient_BaseURLAndNoRetries(t *testing.T) {
	var hits int32
	srv := failingServer(t, &hits)

	client, err := NewClient(ClientConfig{APIKey: "sk-ant-test", BaseURL: srv.URL})
	if err != nil {
		t.Fatalf("NewClient failed: %v", err)
	}

	_, err = NewRunner(client).RunWithSystem(context.Background(), "", "system", "City: Seoul, Building: 63 Building")
	if err == nil {
		t.Fatal("expected error from failing server")
	}
	if !strings.Contains(err.Error(), "Internal server error") {
		t.Errorf("error should carry the server message, got: %v", err)
	}

	// A 500 is retryable for the SDK; the client must still send it once.
	if n := atomic.LoadInt32(&hits); n != 1 {
		t.Errorf("server hits = %d, want 1", n)
	}
}

func TestNewClient_HTTPClient(t *testing.T) {
	var hits int32
	srv := failingServer(t, &hits)
	transport := &countingTransport{}

	client, err := NewClient(ClientConfig{
		APIKey:     "sk-ant-test",
		BaseURL:    srv.URL,
		HTTPClient: &http.Client{Transport: transport},
	})
	if err != nil {
		t.Fatalf("NewClient failed: %v", err)
	}

	_, _ = NewRunner(client).RunWithSystem(context.Background(), "", "", "City: Paris, Building: Louvre")

	if n := atomic.LoadInt32(&transport.hits); n != 1 {
		t.Errorf("custom transport used %d times, want 1", n)
	}
}

func TestNewClient_Model(t *testing.T) {
	tests := []struct {
		name     string
		model    anthropic.Model
		expected anthropic.Model
	}{
		{"default", "", DefaultModel},
		{"configured", anthropic.ModelClaudeHaiku4_5_20251001, anthropic.ModelClaudeHaiku4_5_20251001},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := NewClient(ClientConfig{APIKey: "sk-ant-test", Model: tt.model})
			if err != nil {
				t.Fatalf("NewClient failed: %v", err)
			}
			if client.Model() != tt.expected {
				t.Errorf("Model = %q, want %q", client.Model(), tt.expected)
			}
		})
	}
}

func TestNewClient_RequiresKey(t *testing.T) {
	t.Setenv("ANTHROPIC_API_KEY", "")

	if _, err := NewClient(ClientConfig{}); err == nil {
		t.Fatal("NewClient should fail without API key")
	}
}
