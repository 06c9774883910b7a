// Package echo provides a testing provider that streams the prompt back as
// word fragments. It implements the domain.Provider interface without making
// external API calls, providing deterministic streams for testing and
// development purposes.
package echo

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/elenaw/gusteau/internal/domain"
	"github.com/elenaw/gusteau/internal/observability"
)

const (
	providerName  = "echo"
	modelName     = "echo-1"
	fragmentDelay = 10 * time.Millisecond
)

// Provider implements the domain.Provider interface for echo testing.
type Provider struct {
	name            string
	supportedModels map[string]bool
}

// NewProvider creates a new echo provider.
// No configuration is required as this provider operates entirely in-memory.
func NewProvider() *Provider {
	return &Provider{
		name: providerName,
		supportedModels: map[string]bool{
			modelName: true,
		},
	}
}

// GenerateStream streams the prompt back one word per fragment. Because the
// aggregation step joins fragments with single spaces, echoing word fragments
// reproduces the prompt exactly, which makes end-to-end assertions trivial.
func (p *Provider) GenerateStream(ctx context.Context, req *domain.GenerationRequest) (<-chan domain.Fragment, error) {
	if req == nil {
		return nil, errors.New("request cannot be nil")
	}

	if !p.supportedModels[req.Model] {
		return nil, fmt.Errorf("model %s is not supported by echo provider", req.Model)
	}

	logger := observability.FromContext(ctx)
	logger.Debug("streaming echo request")

	words := strings.Fields(req.Prompt)
	fragments := make(chan domain.Fragment)

	go func() {
		defer close(fragments)

		for _, word := range words {
			select {
			case <-ctx.Done():
				fragments <- domain.ErrorFragment(ctx.Err())
				return
			case fragments <- domain.TextFragment(word):
				time.Sleep(fragmentDelay)
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
