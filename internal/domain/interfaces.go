package domain

import "context"

// Provider represents any text-generation backend.
type Provider interface {
	// GenerateStream opens a streaming generation call and returns the
	// fragment channel. The channel is closed when the stream completes;
	// a fragment with a non-nil Err signals a terminal stream failure.
	GenerateStream(ctx context.Context, req *GenerationRequest) (<-chan Fragment, error)

	// Name returns the provider identifier.
	Name() string

	// IsModelSupported checks if the provider serves the given model.
	IsModelSupported(ctx context.Context, model string) bool

	// SupportedModels returns all models this provider serves.
	SupportedModels(ctx context.Context) []string
}

// ProviderRegistry manages available providers.
type ProviderRegistry interface {
	// Register adds a provider to the registry.
	Register(ctx context.Context, provider Provider) error

	// Get retrieves a provider by name.
	Get(ctx context.Context, providerName string) (Provider, error)

	// List returns all available provider names.
	List(ctx context.Context) ([]string, error)

	// GetByModel retrieves a provider that serves the given model.
	GetByModel(ctx context.Context, model string) (Provider, error)
}

// EventPublisher publishes events for observability and audit.
type EventPublisher interface {
	// Publish publishes an event with the given type and data.
	Publish(ctx context.Context, eventType string, data map[string]interface{})
}

// PromptBuilder renders a customer preference record into the prompt sent to
// the generation backend.
type PromptBuilder interface {
	// Build produces the prompt text. Every preference field must appear
	// verbatim in the output.
	Build(prefs Preferences) (string, error)
}
