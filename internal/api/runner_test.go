package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ShayCichocki/archguide/internal/guide"
)

type capturedRequest struct {
	Model  string `json:"model"`
	System []struct {
		Text string `json:"text"`
	} `json:"system"`
	Messages []struct {
		Role    string `json:"role"`
		Content []struct {
			Text string `json:"text"`
		} `json:"content"`
	} `json:"messages"`
}

func newMessagesServer(t *testing.T, status int, body string, captured *capturedRequest, hits *int32) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(hits, 1)
		if captured != nil {
			_ = json.NewDecoder(r.Body).Decode(captured)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestRunner_Generate(t *testing.T) {
	body := `{
		"id": "msg_01",
		"type": "message",
		"role": "assistant",
		"model": "claude-sonnet-4-20250514",
		"content": [
			{"type": "text", "text": "1. Summary\n"},
			{"type": "text", "text": "The 63 Building is a skyscraper on Yeouido."}
		],
		"stop_reason": "end_turn",
		"usage": {"input_tokens": 30, "output_tokens": 120}
	}`

	var captured capturedRequest
	var hits int32
	srv := newMessagesServer(t, http.StatusOK, body, &captured, &hits)

	client, err := NewClient(ClientConfig{APIKey: "test-key", BaseURL: srv.URL})
	require.NoError(t, err)

	gen, err := NewRunner(client).Generate(context.Background(), guide.Request{
		SystemInstruction: guide.SystemInstruction("English"),
		Content:           guide.UserContent("Seoul", "63 Building"),
	})
	require.NoError(t, err)

	assert.Equal(t, "1. Summary\nThe 63 Building is a skyscraper on Yeouido.", gen.Text)
	assert.Equal(t, int64(30), gen.InputTokens)
	assert.Equal(t, int64(120), gen.OutputTokens)

	assert.Equal(t, string(DefaultModel), captured.Model)
	require.Len(t, captured.System, 1)
	assert.Contains(t, captured.System[0].Text, "English")
	require.Len(t, captured.Messages, 1)
	assert.Equal(t, "user", captured.Messages[0].Role)
	require.Len(t, captured.Messages[0].Content, 1)
	assert.Equal(t, "City: Seoul, Building: 63 Building", captured.Messages[0].Content[0].Text)
}

func TestRunner_Generate_NoRetry(t *testing.T) {
	body := `{"type": "error", "error": {"type": "overloaded_error", "message": "Overloaded"}}`

	var hits int32
	srv := newMessagesServer(t, http.StatusServiceUnavailable, body, nil, &hits)

	client, err := NewClient(ClientConfig{APIKey: "test-key", BaseURL: srv.URL})
	require.NoError(t, err)

	_, err = NewRunner(client).Generate(context.Background(), guide.Request{Content: "City: a, Building: b"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Overloaded")
	assert.Equal(t, int32(1), atomic.LoadInt32(&hits), "request must not be retried")
}
