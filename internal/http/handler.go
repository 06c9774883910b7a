package http

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/elenaw/gusteau/internal/domain"
	"github.com/elenaw/gusteau/internal/observability"
	"github.com/elenaw/gusteau/internal/prompt"
	"github.com/elenaw/gusteau/internal/routing"
)

// SuggestionRequest is the request body for the suggestions endpoint.
type SuggestionRequest struct {
	Preferences domain.Preferences `json:"preferences"`
	Stream      bool               `json:"stream,omitempty"`
}

// SuggestionResponse is the success body: the generated recipes, the exact
// prompt that produced them, and whether the call completed without content.
type SuggestionResponse struct {
	Result    domain.GenerationResult `json:"result"`
	Prompt    string                  `json:"prompt"`
	NoContent bool                    `json:"no_content,omitempty"`
}

// Handler handles HTTP requests.
type Handler struct {
	assistant *domain.AssistantService
	resolver  *routing.Resolver
	prompts   *prompt.Builder
	genConfig domain.GenerationConfig
}

// NewHandler creates a new HTTP handler (DI constructor).
func NewHandler(
	assistant *domain.AssistantService,
	resolver *routing.Resolver,
	prompts *prompt.Builder,
	genConfig domain.GenerationConfig,
) *Handler {
	return &Handler{
		assistant: assistant,
		resolver:  resolver,
		prompts:   prompts,
		genConfig: genConfig,
	}
}

// HandleSuggestions processes recipe suggestion requests.
func (h *Handler) HandleSuggestions(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	// Early validation.
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	// Parse request.
	var req SuggestionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf("invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	if req.Preferences.WinePreference == "" {
		req.Preferences.WinePreference = domain.WineNone
	}
	if !req.Preferences.WinePreference.Valid() {
		http.Error(w, fmt.Sprintf("invalid wine preference: %q", req.Preferences.WinePreference), http.StatusBadRequest)
		return
	}

	handle, err := h.resolver.Acquire(ctx)
	if err != nil {
		observability.FromContext(ctx).Error("model acquisition failed", observability.Error(err))
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
		return
	}

	// Inject provider and model into context for downstream logging.
	ctx = observability.WithProvider(ctx, handle.Provider().Name())
	ctx = observability.WithModel(ctx, handle.Model())

	logger := observability.FromContext(ctx)
	logger.Info("suggestion request received",
		observability.String("cuisine", req.Preferences.Cuisine),
		observability.Bool("stream", req.Stream),
	)

	if req.Stream {
		h.handleStream(ctx, w, handle, req.Preferences)
		return
	}

	suggestion, err := h.assistant.SuggestRecipes(ctx, handle, req.Preferences, h.genConfig)
	if err != nil {
		// Fatal to this call only; the process stays up for the next one.
		logger.Warn("suggestion failed", observability.Error(err))
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}

	logger.Info("suggestion succeeded",
		observability.Int("result_length", len(suggestion.Result.Text)),
	)

	w.Header().Set("Content-Type", "application/json")
	encodeErr := json.NewEncoder(w).Encode(SuggestionResponse{
		Result:    suggestion.Result,
		Prompt:    suggestion.Prompt,
		NoContent: suggestion.Result.IsEmpty(),
	})
	if encodeErr != nil {
		logger.Error("failed to encode response", observability.Error(encodeErr))
		http.Error(w, fmt.Sprintf("failed to encode response: %v", encodeErr), http.StatusInternalServerError)
		return
	}
}

// streamEvent is one SSE data payload: a fragment of the generated text.
// Empty fragments travel as explicit empty text so the client-side join
// preserves fragment count and order.
type streamEvent struct {
	Text string `json:"text"`
}

func (h *Handler) handleStream(
	ctx context.Context,
	w http.ResponseWriter,
	handle domain.ModelHandle,
	prefs domain.Preferences,
) {
	logger := observability.FromContext(ctx)
	logger.Info("stream request started")

	promptText, err := h.prompts.Build(prefs)
	if err != nil {
		logger.Error("prompt build failed", observability.Error(err))
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	fragments, err := h.assistant.GenerateStream(ctx, handle, promptText, h.genConfig)
	if err != nil {
		logger.Warn("stream failed to open", observability.Error(err))
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		logger.Error("streaming not supported")
		http.Error(w, "streaming not supported", http.StatusInternalServerError)
		return
	}

	// Set headers for SSE.
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	// The prompt travels first so clients can show it alongside the result.
	promptData, _ := json.Marshal(streamEvent{Text: promptText})
	fmt.Fprintf(w, "event: prompt\ndata: %s\n\n", promptData)
	flusher.Flush()

	for fragment := range fragments {
		if fragment.Err != nil {
			logger.Warn("stream fragment error", observability.Error(fragment.Err))
			fmt.Fprintf(w, "event: error\ndata: %s\n\n", fragment.Err.Error())
			flusher.Flush()
			return
		}

		text := fragment.Text
		if fragment.Empty {
			text = ""
		}

		data, _ := json.Marshal(streamEvent{Text: text})
		fmt.Fprintf(w, "data: %s\n\n", data)
		flusher.Flush()
	}

	fmt.Fprintf(w, "event: done\ndata: {}\n\n")
	flusher.Flush()
	logger.Info("stream completed")
}

// HandleHealth handles health check requests.
func (h *Handler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(map[string]string{
		"status": "healthy",
	}); err != nil {
		// Already written status, can't change it, just log.
		return
	}
}
