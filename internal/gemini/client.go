// Package gemini provides a guide.Generator backed by the Gemini API.
package gemini

import (
	"context"
	"fmt"
	"net/http"

	"google.golang.org/genai"

	"github.com/ShayCichocki/archguide/internal/guide"
)

// ClientConfig contains configuration for creating a new Client.
type ClientConfig struct {
	// APIKey is the Gemini API key. Required.
	APIKey string
	// Model is the default model (e.g., "gemini-2.5-flash").
	Model string
	// BaseURL overrides the API endpoint. Empty uses the SDK default.
	BaseURL string
	// HTTPClient overrides the transport. Nil uses the SDK default.
	HTTPClient *http.Client
}

// Client wraps the genai SDK client.
type Client struct {
	inner *genai.Client
	model string
}

// NewClient creates a Gemini client. It does not contact the API.
func NewClient(ctx context.Context, cfg ClientConfig) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}

	cc := &genai.ClientConfig{
		APIKey:     cfg.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: cfg.HTTPClient,
	}
	if cfg.BaseURL != "" {
		cc.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.BaseURL}
	}

	inner, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	model := cfg.Model
	if model == "" {
		model = guide.DefaultModel
	}

	return &Client{inner: inner, model: model}, nil
}

// Model returns the configured default model.
func (c *Client) Model() string {
	return c.model
}

// Generate implements guide.Generator with a single GenerateContent call.
func (c *Client) Generate(ctx context.Context, req guide.Request) (*guide.Generation, error) {
	model := req.Model
	if model == "" {
		model = c.model
	}

	var cfg *genai.GenerateContentConfig
	if req.SystemInstruction != "" {
		cfg = &genai.GenerateContentConfig{
			SystemInstruction: genai.NewContentFromText(req.SystemInstruction, genai.RoleUser),
		}
	}

	resp, err := c.inner.Models.GenerateContent(ctx, model, genai.Text(req.Content), cfg)
	if err != nil {
		return nil, err
	}

	gen := &guide.Generation{
		Text:  resp.Text(),
		Model: model,
	}
	if resp.UsageMetadata != nil {
		gen.InputTokens = int64(resp.UsageMetadata.PromptTokenCount)
		gen.OutputTokens = int64(resp.UsageMetadata.CandidatesTokenCount)
	}

	return gen, nil
}

var _ guide.Generator = (*Client)(nil)
