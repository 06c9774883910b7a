// Command gusteaud is the HTTP server variant of the recipe assistant.
package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"

	"go.uber.org/dig"

	"github.com/elenaw/gusteau/internal/config"
	"github.com/elenaw/gusteau/internal/domain"
	"github.com/elenaw/gusteau/internal/http"
	"github.com/elenaw/gusteau/internal/http/middleware"
	"github.com/elenaw/gusteau/internal/observability"
	"github.com/elenaw/gusteau/internal/prompt"
	"github.com/elenaw/gusteau/internal/provider/echo"
	"github.com/elenaw/gusteau/internal/provider/gemini"
	"github.com/elenaw/gusteau/internal/provider/openai"
	"github.com/elenaw/gusteau/internal/provider/registry"
	"github.com/elenaw/gusteau/internal/routing"
)

func main() {
	container := buildContainer()

	// Resolve the model once at startup. A failed fallback chain is fatal:
	// the server must not come up without a usable model.
	err := container.Invoke(func(resolver *routing.Resolver) error {
		handle, acquireErr := resolver.Acquire(context.Background())
		if acquireErr != nil {
			return acquireErr
		}
		observability.FromContext(context.Background()).Info("model acquired",
			observability.String("model", handle.Model()),
			observability.String("provider", handle.Provider().Name()),
		)
		return nil
	})
	if err != nil {
		log.Fatalf("Model acquisition failed: %v", err)
	}

	err = container.Invoke(func(server *http.Server) {
		if startErr := server.Start(); startErr != nil {
			log.Fatalf("Server failed to start: %v", startErr)
		}
	})
	if err != nil {
		log.Fatalf("Failed to start application: %v", err)
	}
}

func buildContainer() *dig.Container {
	container := dig.New()

	// Configuration
	if err := container.Provide(config.Load); err != nil {
		log.Fatalf("Failed to provide config: %v", err)
	}
	if err := container.Provide(config.ParseDependenciesConfig); err != nil {
		log.Fatalf("Failed to provide config dependencies: %v", err)
	}

	// Observability
	if err := container.Provide(observability.InitLogger); err != nil {
		log.Fatalf("Failed to provide logger: %v", err)
	}

	// Provider Registry
	if err := container.Provide(func() domain.ProviderRegistry {
		return registry.NewRegistry()
	}); err != nil {
		log.Fatalf("Failed to provide registry: %v", err)
	}

	// Gemini Provider (primary backend; nil when no credential is configured)
	if err := container.Provide(func(cfg *gemini.Config) (*gemini.Provider, error) {
		if cfg.APIKey == "" && cfg.Project == "" {
			return nil, nil
		}
		return gemini.NewProvider(context.Background(), *cfg)
	}); err != nil {
		log.Fatalf("Failed to provide Gemini provider: %v", err)
	}

	// OpenAI Provider (optional alternative backend)
	if err := container.Provide(func(cfg *openai.Config) (*openai.Provider, error) {
		if cfg.APIKey == "" {
			return nil, nil
		}
		return openai.NewProvider(*cfg)
	}); err != nil {
		log.Fatalf("Failed to provide OpenAI provider: %v", err)
	}

	// Register providers with registry (invoked for side effects)
	if err := container.Invoke(func(
		reg domain.ProviderRegistry,
		geminiProvider *gemini.Provider,
		openaiProvider *openai.Provider,
	) error {
		ctx := context.Background()
		registered := 0

		if geminiProvider != nil {
			if err := reg.Register(ctx, geminiProvider); err != nil {
				return fmt.Errorf("failed to register Gemini provider: %w", err)
			}
			registered++
		}

		if openaiProvider != nil {
			if err := reg.Register(ctx, openaiProvider); err != nil {
				return fmt.Errorf("failed to register OpenAI provider: %w", err)
			}
			registered++
		}

		// The echo provider keeps local development working without any
		// credential, but a real deployment needs at least one remote backend.
		if registered == 0 {
			if os.Getenv("GUSTEAU_ALLOW_ECHO") == "" {
				return fmt.Errorf("no generation backend configured: set GEMINI_API_KEY, GOOGLE_CLOUD_PROJECT or OPENAI_API_KEY")
			}
			if err := reg.Register(ctx, echo.NewProvider()); err != nil {
				return fmt.Errorf("failed to register echo provider: %w", err)
			}
		}

		return nil
	}); err != nil {
		log.Fatalf("Failed to register providers: %v", err)
	}

	// Model resolver (fallback chain)
	if err := container.Provide(func(reg domain.ProviderRegistry, cfg *config.GenerationConfig) *routing.Resolver {
		return routing.NewResolver(reg, cfg.Models)
	}); err != nil {
		log.Fatalf("Failed to provide resolver: %v", err)
	}

	// Prompt builder
	if err := container.Provide(prompt.NewBuilder); err != nil {
		log.Fatalf("Failed to provide prompt builder: %v", err)
	}

	// Audit bus
	if err := container.Provide(func() domain.EventPublisher {
		return observability.NewEventBus(slog.New(slog.NewJSONHandler(os.Stderr, nil)))
	}); err != nil {
		log.Fatalf("Failed to provide event bus: %v", err)
	}

	// Domain Services
	if err := container.Provide(func(prompts *prompt.Builder, audit domain.EventPublisher) *domain.AssistantService {
		return domain.NewAssistantService(prompts, audit)
	}); err != nil {
		log.Fatalf("Failed to provide assistant service: %v", err)
	}

	// HTTP Layer
	if err := container.Provide(func(cfg *config.CORSConfig) middleware.Middleware {
		return middleware.BuildMiddlewareChain(cfg)
	}); err != nil {
		log.Fatalf("Failed to provide middleware: %v", err)
	}
	if err := container.Provide(func(
		assistant *domain.AssistantService,
		resolver *routing.Resolver,
		prompts *prompt.Builder,
		genCfg *config.GenerationConfig,
	) *http.Handler {
		return http.NewHandler(assistant, resolver, prompts, domain.GenerationConfig{
			Temperature:     genCfg.Temperature,
			MaxOutputTokens: genCfg.MaxOutputTokens,
			Safety:          domain.PermissiveSafetyPolicy(),
		})
	}); err != nil {
		log.Fatalf("Failed to provide HTTP handler: %v", err)
	}
	if err := container.Provide(http.NewServer); err != nil {
		log.Fatalf("Failed to provide HTTP server: %v", err)
	}

	return container
}
