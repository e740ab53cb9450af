package api

import (
	"context"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"

	"github.com/ShayCichocki/archguide/internal/guide"
)

// maxTokens bounds a single building description.
const maxTokens = 4096

// Runner provides simple text-in/text-out Claude API calls.
type Runner struct {
	client *Client
}

// NewRunner creates a new API runner.
func NewRunner(client *Client) *Runner {
	return &Runner{client: client}
}

// RunWithSystem executes a prompt with a system message.
func (r *Runner) RunWithSystem(ctx context.Context, model anthropic.Model, systemPrompt, userPrompt string) (*anthropic.Message, error) {
	if model == "" {
		model = r.client.Model()
	}

	params := anthropic.MessageNewParams{
		Model:     model,
		MaxTokens: maxTokens,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(userPrompt)),
		},
	}
	if systemPrompt != "" {
		params.System = []anthropic.TextBlockParam{
			{Text: systemPrompt},
		}
	}

	return r.client.sdk().Messages.New(ctx, params)
}

// Generate implements guide.Generator.
func (r *Runner) Generate(ctx context.Context, req guide.Request) (*guide.Generation, error) {
	resp, err := r.RunWithSystem(ctx, anthropic.Model(req.Model), req.SystemInstruction, req.Content)
	if err != nil {
		return nil, err
	}

	var result strings.Builder
	for _, block := range resp.Content {
		if variant, ok := block.AsAny().(anthropic.TextBlock); ok {
			result.WriteString(variant.Text)
		}
	}

	return &guide.Generation{
		Text:         result.String(),
		Model:        string(resp.Model),
		InputTokens:  resp.Usage.InputTokens,
		OutputTokens: resp.Usage.OutputTokens,
	}, nil
}

var _ guide.Generator = (*Runner)(nil)
