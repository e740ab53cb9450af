package main

import (
	"context"
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"
	"go.uber.org/zap"

	"github.com/ShayCichocki/archguide/internal/api"
	"github.com/ShayCichocki/archguide/internal/config"
	"github.com/ShayCichocki/archguide/internal/gemini"
	"github.com/ShayCichocki/archguide/internal/guide"
)

// newHandler builds a lookup handler for the configured provider.
// A missing key is not an error here: the handler reports it per lookup.
func newHandler(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*guide.Handler, error) {
	key, err := config.GetAPIKey(cfg)
	if err != nil && err != config.ErrNoAPIKey {
		return nil, err
	}

	gen, model, err := newGenerator(ctx, cfg, key)
	if err != nil {
		return nil, err
	}

	logger.Debug("lookup handler ready",
		zap.String("provider", cfg.Guide.Provider),
		zap.String("model", model),
		zap.String("key_source", string(config.GetAPIKeySource(cfg))),
	)

	return guide.NewHandler(gen, guide.Options{
		APIKey:   key,
		Model:    model,
		Language: cfg.Guide.Language,
	}, logger), nil
}

// newGenerator creates the provider backend. It returns a nil generator when
// key is empty.
func newGenerator(ctx context.Context, cfg *config.Config, key string) (guide.Generator, string, error) {
	switch cfg.Guide.Provider {
	case config.ProviderAnthropic:
		model := cfg.Anthropic.Model
		if model == "" {
			model = string(api.DefaultModel)
		}
		if key == "" {
			return nil, model, nil
		}
		client, err := api.NewClient(api.ClientConfig{
			Model:  anthropic.Model(model),
			APIKey: key,
		})
		if err != nil {
			return nil, "", fmt.Errorf("create anthropic client: %w", err)
		}
		return api.NewRunner(client), model, nil

	default:
		model := cfg.Gemini.Model
		if model == "" {
			model = guide.DefaultModel
		}
		if key == "" {
			return nil, model, nil
		}
		client, err := gemini.NewClient(ctx, gemini.ClientConfig{
			APIKey:  key,
			Model:   model,
			BaseURL: cfg.Gemini.BaseURL,
		})
		if err != nil {
			return nil, "", fmt.Errorf("create gemini client: %w", err)
		}
		return client, model, nil
	}
}
