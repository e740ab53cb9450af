package gemini

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ShayCichocki/archguide/internal/guide"
)

const okResponse = `{
  "candidates": [
    {
      "content": {"role": "model", "parts": [{"text": "1. Summary\nThe Eiffel Tower is a wrought-iron lattice tower."}]},
      "finishReason": "STOP"
    }
  ],
  "usageMetadata": {"promptTokenCount": 21, "candidatesTokenCount": 64, "totalTokenCount": 85}
}`

func newTestServer(t *testing.T, status int, body string, captured *string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		if captured != nil {
			*captured = r.URL.Path + "\n" + string(raw)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestNewClient_RequiresAPIKey(t *testing.T) {
	_, err := NewClient(context.Background(), ClientConfig{})
	require.Error(t, err)
}

func TestNewClient_DefaultModel(t *testing.T) {
	c, err := NewClient(context.Background(), ClientConfig{APIKey: "test-key"})
	require.NoError(t, err)
	assert.Equal(t, guide.DefaultModel, c.Model())
}

func TestGenerate_Success(t *testing.T) {
	var captured string
	srv := newTestServer(t, http.StatusOK, okResponse, &captured)

	c, err := NewClient(context.Background(), ClientConfig{
		APIKey:  "test-key",
		BaseURL: srv.URL + "/",
	})
	require.NoError(t, err)

	gen, err := c.Generate(context.Background(), guide.Request{
		Model:             "gemini-2.5-flash",
		SystemInstruction: guide.SystemInstruction("Korean"),
		Content:           guide.UserContent("Paris", "Eiffel Tower"),
	})
	require.NoError(t, err)

	assert.Equal(t, "1. Summary\nThe Eiffel Tower is a wrought-iron lattice tower.", gen.Text)
	assert.Equal(t, "gemini-2.5-flash", gen.Model)
	assert.Equal(t, int64(21), gen.InputTokens)
	assert.Equal(t, int64(64), gen.OutputTokens)

	assert.True(t, strings.Contains(captured, "models/gemini-2.5-flash:generateContent"), captured)
	assert.Contains(t, captured, "City: Paris, Building: Eiffel Tower")
	assert.Contains(t, captured, "professional architecture guide")
}

func TestGenerate_APIError(t *testing.T) {
	srv := newTestServer(t, http.StatusForbidden,
		`{"error": {"code": 403, "message": "API key not valid. Please pass a valid API key.", "status": "PERMISSION_DENIED"}}`,
		nil)

	c, err := NewClient(context.Background(), ClientConfig{
		APIKey:  "bad-key",
		BaseURL: srv.URL + "/",
	})
	require.NoError(t, err)

	_, err = c.Generate(context.Background(), guide.Request{Content: "City: a, Building: b"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "API key not valid")
}

func TestGenerate_ThroughHandler(t *testing.T) {
	srv := newTestServer(t, http.StatusOK, okResponse, nil)

	c, err := NewClient(context.Background(), ClientConfig{APIKey: "test-key", BaseURL: srv.URL + "/"})
	require.NoError(t, err)

	h := guide.NewHandler(c, guide.Options{APIKey: "test-key"}, nil)
	text, err := h.FetchBuildingInfo(context.Background(), "Paris", "Eiffel Tower")
	require.NoError(t, err)
	assert.Contains(t, text, "wrought-iron")

	in, out := h.Usage().Total()
	assert.Equal(t, int64(21), in)
	assert.Equal(t, int64(64), out)
}
