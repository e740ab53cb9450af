// Package guide looks up building descriptions from a text-generation service.
//
// A Handler validates the two user inputs, builds the prompt and makes exactly
// one call to its Generator. Every failure comes back as an *Error carrying a
// Kind, so callers can tell input problems from configuration problems from
// service failures.
package guide

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Options configures a Handler. The credential is passed here once rather
// than read from the environment on each call.
type Options struct {
	APIKey   string
	Model    string
	Language string
}

// Handler turns a city and building name into a description.
type Handler struct {
	gen    Generator
	opts   Options
	usage  *Usage
	logger *zap.Logger
}

// NewHandler creates a Handler. gen may be nil when no credential is
// configured; lookups then fail with KindMissingCredential.
func NewHandler(gen Generator, opts Options, logger *zap.Logger) *Handler {
	if opts.Model == "" {
		opts.Model = DefaultModel
	}
	if opts.Language == "" {
		opts.Language = DefaultLanguage
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		gen:    gen,
		opts:   opts,
		usage:  NewUsage(),
		logger: logger.With(zap.String("component", "guide")),
	}
}

// Model returns the model identifier sent with each request.
func (h *Handler) Model() string {
	return h.opts.Model
}

// Language returns the answer language.
func (h *Handler) Language() string {
	return h.opts.Language
}

// Usage returns the handler's usage tracker.
func (h *Handler) Usage() *Usage {
	return h.usage
}

// WithUsage makes h share u, so counters survive a handler rebuild.
func (h *Handler) WithUsage(u *Usage) *Handler {
	if u != nil {
		h.usage = u
	}
	return h
}

// ValidateInput reports a KindMissingInput error unless both values are
// non-empty after trimming whitespace.
func ValidateInput(city, buildingName string) error {
	if strings.TrimSpace(city) == "" || strings.TrimSpace(buildingName) == "" {
		return missingInput()
	}
	return nil
}

// FetchBuildingInfo returns the service's description of buildingName in city.
//
// Inputs are checked before the credential, and neither check touches the
// network. The service is called once; there are no retries.
func (h *Handler) FetchBuildingInfo(ctx context.Context, city, buildingName string) (string, error) {
	city = strings.TrimSpace(city)
	buildingName = strings.TrimSpace(buildingName)

	if err := ValidateInput(city, buildingName); err != nil {
		h.logger.Warn("lookup rejected", zap.String("kind", KindMissingInput.String()))
		return "", err
	}
	// A handler built without a key has no generator either.
	if strings.TrimSpace(h.opts.APIKey) == "" || h.gen == nil {
		h.logger.Error("lookup rejected", zap.String("kind", KindMissingCredential.String()))
		return "", missingCredential()
	}

	req := Request{
		Model:             h.opts.Model,
		SystemInstruction: SystemInstruction(h.opts.Language),
		Content:           UserContent(city, buildingName),
	}

	log := h.logger.With(
		zap.String("request_id", uuid.New().String()),
		zap.String("city", city),
		zap.String("building", buildingName),
		zap.String("model", req.Model),
	)
	log.Info("lookup started")

	start := time.Now()
	gen, err := h.gen.Generate(ctx, req)
	elapsed := time.Since(start)

	if err != nil {
		h.usage.AddFailure()
		log.Error("lookup failed", zap.Duration("duration", elapsed), zap.Error(err))
		return "", serviceError(err)
	}
	if gen == nil || strings.TrimSpace(gen.Text) == "" {
		h.usage.AddFailure()
		log.Error("lookup returned no text", zap.Duration("duration", elapsed))
		return "", serviceError(errors.New("empty response from model"))
	}

	h.usage.Add(gen.InputTokens, gen.OutputTokens)
	log.Info("lookup completed",
		zap.Duration("duration", elapsed),
		zap.Int64("input_tokens", gen.InputTokens),
		zap.Int64("output_tokens", gen.OutputTokens),
	)

	return gen.Text, nil
}
