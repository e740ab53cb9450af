package guide

import "context"

// Request is a single text-generation call.
type Request struct {
	Model             string
	SystemInstruction string
	Content           string
}

// Generation is what a backend returns for a Request.
// Text is passed to the user unmodified.
type Generation struct {
	Text         string
	Model        string
	InputTokens  int64
	OutputTokens int64
}

// Generator is an external text-generation service.
type Generator interface {
	Generate(ctx context.Context, req Request) (*Generation, error)
}

// GeneratorFunc adapts a function to the Generator interface.
type GeneratorFunc func(ctx context.Context, req Request) (*Generation, error)

// Generate calls f.
func (f GeneratorFunc) Generate(ctx context.Context, req Request) (*Generation, error) {
	return f(ctx, req)
}
