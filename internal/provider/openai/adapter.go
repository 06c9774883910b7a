// Package openai provides an adapter for the OpenAI API using the official
// SDK. It implements the domain.Provider interface and converts the SDK's
// chat-completion stream into the domain fragment stream. OpenAI has no
// per-category safety policy surface, so the request's safety settings are
// accepted and ignored; content withheld by the service's own filter is
// reported as an empty fragment.
package openai

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/elenaw/gusteau/internal/domain"
	"github.com/elenaw/gusteau/internal/observability"
)

const providerName = "openai"

// finishContentFilter is the finish reason OpenAI reports when it withholds
// generated content.
const finishContentFilter = "content_filter"

// Provider implements the domain.Provider interface for OpenAI.
type Provider struct {
	client          openai.Client
	name            string
	supportedModels map[string]bool
}

// SupportedModels returns the list of models served by the OpenAI provider.
func SupportedModels() []string {
	return []string{
		"gpt-4o",
		"gpt-4o-mini",
		"gpt-4-turbo",
		"gpt-3.5-turbo",
	}
}

// NewProvider creates a new OpenAI provider.
func NewProvider(config Config) (*Provider, error) {
	if config.APIKey == "" {
		return nil, fmt.Errorf("%w: OpenAI API key is required", domain.ErrInvalidConfig)
	}

	opts := []option.RequestOption{
		option.WithAPIKey(config.APIKey),
	}

	if config.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(config.BaseURL))
	}

	if config.Timeout > 0 {
		opts = append(opts, option.WithRequestTimeout(time.Duration(config.Timeout)*time.Second))
	}

	if config.MaxRetries > 0 {
		opts = append(opts, option.WithMaxRetries(config.MaxRetries))
	}

	supported := make(map[string]bool, len(SupportedModels()))
	for _, model := range SupportedModels() {
		supported[model] = true
	}

	return &Provider{
		client:          openai.NewClient(opts...),
		name:            providerName,
		supportedModels: supported,
	}, nil
}

// GenerateStream opens a streaming generation call and returns the fragment
// channel.
func (p *Provider) GenerateStream(ctx context.Context, req *domain.GenerationRequest) (<-chan domain.Fragment, error) {
	if req == nil {
		return nil, errors.New("request cannot be nil")
	}

	logger := observability.FromContext(ctx)
	logger.Debug("calling OpenAI streaming API")

	params := p.toSDKParams(req)
	stream := p.client.Chat.Completions.NewStreaming(ctx, params)

	fragments := make(chan domain.Fragment)

	go func() {
		defer close(fragments)
		defer logger.Debug("OpenAI stream completed")

		for stream.Next() {
			chunk := stream.Current()
			if len(chunk.Choices) == 0 {
				continue
			}

			choice := chunk.Choices[0]

			if choice.Delta.Content != "" {
				select {
				case fragments <- domain.TextFragment(choice.Delta.Content):
				case <-ctx.Done():
					return
				}
				continue
			}

			// An empty delta with a content-filter finish reason is a
			// withheld payload; other empty deltas are stream framing.
			if choice.FinishReason == finishContentFilter {
				select {
				case fragments <- domain.EmptyFragment():
				case <-ctx.Done():
					return
				}
			}
		}

		if err := stream.Err(); err != nil && !errors.Is(err, io.EOF) {
			select {
			case fragments <- domain.ErrorFragment(fmt.Errorf("OpenAI stream error: %w", err)):
			case <-ctx.Done():
			}
		}
	}()

	return fragments, nil
}

// Name returns the provider identifier.
func (p *Provider) Name() string {
	return p.name
}

// IsModelSupported checks if the provider serves the given model.
func (p *Provider) IsModelSupported(_ context.Context, model string) bool {
	return p.supportedModels[model]
}

// SupportedModels returns all models this provider serves.
func (p *Provider) SupportedModels(_ context.Context) []string {
	models := make([]string, 0, len(p.supportedModels))
	for model := range p.supportedModels {
		models = append(models, model)
	}
	return models
}

// toSDKParams converts the domain request to SDK ChatCompletionNewParams.
// The prompt travels as a single user message.
func (p *Provider) toSDKParams(req *domain.GenerationRequest) openai.ChatCompletionNewParams {
	params := openai.ChatCompletionNewParams{
		Model: openai.ChatModel(req.Model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(req.Prompt),
		},
	}

	if req.Config.Temperature > 0 {
		params.Temperature = openai.Float(req.Config.Temperature)
	}

	if req.Config.MaxOutputTokens > 0 {
		params.MaxTokens = openai.Int(int64(req.Config.MaxOutputTokens))
	}

	return params
}
