package domain

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/elenaw/gusteau/internal/observability"
)

// AssistantService executes generation calls against a resolved model handle
// and folds the streamed fragments into one final result.
type AssistantService struct {
	prompts PromptBuilder
	audit   EventPublisher
}

// NewAssistantService creates a new assistant service (DI constructor).
func NewAssistantService(prompts PromptBuilder, audit EventPublisher) *AssistantService {
	return &AssistantService{
		prompts: prompts,
		audit:   audit,
	}
}

// Generate performs one streaming generation call and returns the aggregated
// result.
//
// Fragments are consumed strictly in delivery order. A fragment whose payload
// was withheld contributes an empty placeholder so that fragment count and
// order survive into the final join. A fragment carrying an error, or a
// failure to open the stream at all, aborts the call; nothing is retried here.
//
// The caller guarantees prompt is non-empty, config.Temperature is in [0, 1]
// and config.MaxOutputTokens is positive. An empty prompt is treated as a
// no-op at the boundary and returns an empty result without calling the
// provider.
func (s *AssistantService) Generate(
	ctx context.Context,
	handle ModelHandle,
	prompt string,
	config GenerationConfig,
) (GenerationResult, error) {
	if handle.IsZero() {
		return GenerationResult{}, errors.New("model handle is not resolved")
	}

	if prompt == "" {
		return GenerationResult{}, nil
	}

	logger := observability.FromContext(ctx)
	logger.Info("generation call started",
		observability.String("provider", handle.Provider().Name()),
		observability.String("model", handle.Model()),
		observability.Int("prompt_length", len(prompt)),
	)

	req := &GenerationRequest{
		Model:  handle.Model(),
		Prompt: prompt,
		Config: config,
	}

	fragments, err := handle.Provider().GenerateStream(ctx, req)
	if err != nil {
		return GenerationResult{}, fmt.Errorf("%w: %v", ErrStreamFailed, err)
	}

	var parts []string
	for fragment := range fragments {
		if fragment.Err != nil {
			return GenerationResult{}, fmt.Errorf("%w: %v", ErrStreamFailed, fragment.Err)
		}

		if fragment.Empty {
			parts = append(parts, "")
			continue
		}

		parts = append(parts, fragment.Text)
	}

	result := GenerationResult{Text: strings.Join(parts, " ")}

	logger.Info("generation call completed",
		observability.Int("fragments", len(parts)),
		observability.Int("result_length", len(result.Text)),
		observability.Bool("empty", result.IsEmpty()),
	)

	if s.audit != nil {
		s.audit.Publish(ctx, "generation.completed", map[string]interface{}{
			"provider":  handle.Provider().Name(),
			"model":     handle.Model(),
			"fragments": len(parts),
			"result":    result.Text,
		})
	}

	return result, nil
}

// GenerateStream opens a streaming call and hands the raw fragment channel
// to the caller without aggregating it. The server variant uses this to
// forward fragments as they arrive; the deterministic fold lives in Generate.
func (s *AssistantService) GenerateStream(
	ctx context.Context,
	handle ModelHandle,
	prompt string,
	config GenerationConfig,
) (<-chan Fragment, error) {
	if handle.IsZero() {
		return nil, errors.New("model handle is not resolved")
	}

	req := &GenerationRequest{
		Model:  handle.Model(),
		Prompt: prompt,
		Config: config,
	}

	fragments, err := handle.Provider().GenerateStream(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStreamFailed, err)
	}
	return fragments, nil
}

// SuggestRecipes builds the prompt from the customer preferences and runs one
// generation call. The returned suggestion carries both the generated recipes
// and the exact prompt that produced them.
func (s *AssistantService) SuggestRecipes(
	ctx context.Context,
	handle ModelHandle,
	prefs Preferences,
	config GenerationConfig,
) (Suggestion, error) {
	prompt, err := s.prompts.Build(prefs)
	if err != nil {
		return Suggestion{}, fmt.Errorf("failed to build prompt: %w", err)
	}

	result, err := s.Generate(ctx, handle, prompt, config)
	if err != nil {
		return Suggestion{}, err
	}

	return Suggestion{Result: result, Prompt: prompt}, nil
}
