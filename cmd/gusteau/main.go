// Command gusteau is the interactive terminal variant of the recipe
// assistant: it collects the customer preferences with a form, runs one
// streaming generation call per round, and renders the recipes alongside the
// exact prompt used.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/huh/spinner"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/elenaw/gusteau/internal/config"
	"github.com/elenaw/gusteau/internal/domain"
	"github.com/elenaw/gusteau/internal/observability"
	"github.com/elenaw/gusteau/internal/prompt"
	"github.com/elenaw/gusteau/internal/provider/echo"
	"github.com/elenaw/gusteau/internal/provider/gemini"
	"github.com/elenaw/gusteau/internal/provider/openai"
	"github.com/elenaw/gusteau/internal/provider/registry"
	"github.com/elenaw/gusteau/internal/routing"
)

const logFileName = "gusteau.log"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "gusteau: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg := config.Load()
	ctx := context.Background()

	// Log to a file so zap output doesn't interleave with the form.
	logFile, err := os.OpenFile(logFileName, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer func() { _ = logFile.Close() }()

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
		zapcore.AddSync(logFile),
		zap.InfoLevel,
	)
	observability.SetLogger(zap.New(core))

	reg := registry.NewRegistry()
	if err := registerProviders(ctx, reg, cfg); err != nil {
		return err
	}

	resolver := routing.NewResolver(reg, cfg.Generation.Models)

	// Acquire the model once; a failed chain means the assistant cannot run.
	handle, err := resolver.Acquire(ctx)
	if err != nil {
		return err
	}

	audit := observability.NewEventBus(slog.New(slog.NewJSONHandler(logFile, nil)))
	assistant := domain.NewAssistantService(prompt.NewBuilder(), audit)

	genConfig := domain.GenerationConfig{
		Temperature:     cfg.Generation.Temperature,
		MaxOutputTokens: cfg.Generation.MaxOutputTokens,
		Safety:          domain.PermissiveSafetyPolicy(),
	}

	fmt.Println(headerStyle.Render("AI Chef"))
	fmt.Println(subtleStyle.Render(fmt.Sprintf("model: %s (%s)", handle.Model(), handle.Provider().Name())))

	for {
		prefs, err := collectPreferences()
		if err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				return nil
			}
			return err
		}

		var suggestion domain.Suggestion
		var genErr error

		spinErr := spinner.New().
			Title("Generating your recipes...").
			Action(func() {
				suggestion, genErr = assistant.SuggestRecipes(ctx, handle, prefs, genConfig)
			}).
			Run()
		if spinErr != nil {
			return spinErr
		}

		switch {
		case genErr != nil:
			// Fatal to this round only; the session keeps going.
			renderWarning(genErr)
		case suggestion.Result.IsEmpty():
			renderNoContent()
		default:
			renderSuggestion(suggestion.Result.Text, suggestion.Prompt)
		}

		again, err := confirmAnotherRound()
		if err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				return nil
			}
			return err
		}
		if !again {
			return nil
		}
	}
}

// registerProviders wires every configured backend into the registry. With no
// credential configured the deterministic echo provider keeps the program
// usable for a dry run.
func registerProviders(ctx context.Context, reg domain.ProviderRegistry, cfg *config.Config) error {
	registered := 0

	if cfg.Gemini.APIKey != "" || cfg.Gemini.Project != "" {
		provider, err := gemini.NewProvider(ctx, cfg.Gemini)
		if err != nil {
			return err
		}
		if err := reg.Register(ctx, provider); err != nil {
			return err
		}
		registered++
	}

	if cfg.OpenAI.APIKey != "" {
		provider, err := openai.NewProvider(cfg.OpenAI)
		if err != nil {
			return err
		}
		if err := reg.Register(ctx, provider); err != nil {
			return err
		}
		registered++
	}

	if registered == 0 {
		if os.Getenv("GUSTEAU_ALLOW_ECHO") == "" {
			return errors.New("no generation backend configured: set GEMINI_API_KEY, GOOGLE_CLOUD_PROJECT or OPENAI_API_KEY")
		}
		return reg.Register(ctx, echo.NewProvider())
	}

	return nil
}
