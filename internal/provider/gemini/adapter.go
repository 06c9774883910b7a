// Package gemini provides an adapter for Google's Gemini models using the
// google.golang.org/genai SDK. It implements the domain.Provider interface,
// converting between domain types and SDK types and classifying each streamed
// response into a text, empty, or error fragment at the moment it arrives.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/elenaw/gusteau/internal/domain"
	"github.com/elenaw/gusteau/internal/observability"
)

const providerName = "gemini"

// Provider implements the domain.Provider interface for Gemini.
type Provider struct {
	client          *genai.Client
	name            string
	supportedModels map[string]bool
}

// defaultModels are the model identifiers this adapter is known to serve.
// IsModelSupported additionally accepts any "gemini-" identifier so newer
// model revisions work without a code change.
func defaultModels() []string {
	return []string{
		"gemini-2.0-flash-001",
		"gemini-2.5-flash",
		"gemini-2.5-pro",
	}
}

// NewProvider creates a new Gemini provider.
func NewProvider(ctx context.Context, config Config) (*Provider, error) {
	clientConfig := &genai.ClientConfig{}

	switch config.Backend {
	case BackendVertex:
		if config.Project == "" || config.Location == "" {
			return nil, fmt.Errorf("%w: vertex backend requires project and location", domain.ErrInvalidConfig)
		}
		clientConfig.Backend = genai.BackendVertexAI
		clientConfig.Project = config.Project
		clientConfig.Location = config.Location
	case BackendGemini, "":
		if config.APIKey == "" {
			return nil, fmt.Errorf("%w: gemini API key is required", domain.ErrInvalidConfig)
		}
		clientConfig.Backend = genai.BackendGeminiAPI
		clientConfig.APIKey = config.APIKey
	default:
		return nil, fmt.Errorf("%w: unknown backend %q", domain.ErrInvalidConfig, config.Backend)
	}

	client, err := genai.NewClient(ctx, clientConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	supported := make(map[string]bool, len(defaultModels()))
	for _, model := range defaultModels() {
		supported[model] = true
	}

	return &Provider{
		client:          client,
		name:            providerName,
		supportedModels: supported,
	}, nil
}

// GenerateStream opens a streaming generation call and returns the fragment
// channel. Fragments are delivered in the order the service emits them; a
// response whose text payload is withheld (safety-filtered or blank) becomes
// an empty fragment rather than being dropped.
func (p *Provider) GenerateStream(ctx context.Context, req *domain.GenerationRequest) (<-chan domain.Fragment, error) {
	if req == nil {
		return nil, errors.New("request cannot be nil")
	}

	logger := observability.FromContext(ctx)
	logger.Debug("calling Gemini streaming API")

	contents := genai.Text(req.Prompt)
	config := toSDKConfig(req.Config)

	stream := p.client.Models.GenerateContentStream(ctx, req.Model, contents, config)

	fragments := make(chan domain.Fragment)

	go func() {
		defer close(fragments)
		defer logger.Debug("Gemini stream completed")

		for resp, err := range stream {
			if err != nil {
				select {
				case fragments <- domain.ErrorFragment(fmt.Errorf("Gemini stream error: %w", err)):
				case <-ctx.Done():
				}
				return
			}

			select {
			case fragments <- classifyResponse(resp):
			case <-ctx.Done():
				return
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
	if p.supportedModels[model] {
		return true
	}
	return strings.HasPrefix(model, "gemini-")
}

// SupportedModels returns all models this provider serves.
func (p *Provider) SupportedModels(_ context.Context) []string {
	models := make([]string, 0, len(p.supportedModels))
	for model := range p.supportedModels {
		models = append(models, model)
	}
	return models
}

// classifyResponse decides once, at receipt, whether a streamed response
// carries text. Responses without candidates, without content, or with only
// blank parts become empty fragments.
func classifyResponse(resp *genai.GenerateContentResponse) domain.Fragment {
	if resp == nil || len(resp.Candidates) == 0 {
		return domain.EmptyFragment()
	}

	candidate := resp.Candidates[0]
	if candidate.Content == nil {
		return domain.EmptyFragment()
	}

	var builder strings.Builder
	for _, part := range candidate.Content.Parts {
		if part == nil || part.Thought {
			continue
		}
		builder.WriteString(part.Text)
	}

	if builder.Len() == 0 {
		return domain.EmptyFragment()
	}

	return domain.TextFragment(builder.String())
}

// toSDKConfig converts the domain generation config to the SDK config,
// passing sampling parameters and the safety policy through verbatim.
func toSDKConfig(config domain.GenerationConfig) *genai.GenerateContentConfig {
	sdkConfig := &genai.GenerateContentConfig{
		Temperature: genai.Ptr(float32(config.Temperature)),
	}

	if config.MaxOutputTokens > 0 {
		sdkConfig.MaxOutputTokens = int32(config.MaxOutputTokens)
	}

	for _, setting := range config.Safety {
		sdkConfig.SafetySettings = append(sdkConfig.SafetySettings, &genai.SafetySetting{
			Category:  toSDKCategory(setting.Category),
			Threshold: toSDKThreshold(setting.Threshold),
		})
	}

	return sdkConfig
}

func toSDKCategory(category domain.HarmCategory) genai.HarmCategory {
	switch category {
	case domain.HarmHarassment:
		return genai.HarmCategoryHarassment
	case domain.HarmHateSpeech:
		return genai.HarmCategoryHateSpeech
	case domain.HarmSexuallyExplicit:
		return genai.HarmCategorySexuallyExplicit
	case domain.HarmDangerousContent:
		return genai.HarmCategoryDangerousContent
	default:
		return genai.HarmCategoryUnspecified
	}
}

func toSDKThreshold(threshold domain.BlockThreshold) genai.HarmBlockThreshold {
	switch threshold {
	case domain.BlockNone:
		return genai.HarmBlockThresholdBlockNone
	case domain.BlockOnlyHigh:
		return genai.HarmBlockThresholdBlockOnlyHigh
	case domain.BlockMediumAndUp:
		return genai.HarmBlockThresholdBlockMediumAndAbove
	case domain.BlockLowAndUp:
		return genai.HarmBlockThresholdBlockLowAndAbove
	default:
		return genai.HarmBlockThresholdUnspecified
	}
}
