package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	nethttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elenaw/gusteau/internal/domain"
	gusteauhttp "github.com/elenaw/gusteau/internal/http"
	"github.com/elenaw/gusteau/internal/prompt"
	"github.com/elenaw/gusteau/internal/provider/echo"
	"github.com/elenaw/gusteau/internal/provider/registry"
	"github.com/elenaw/gusteau/internal/routing"
)

type brokenProvider struct{}

func (p *brokenProvider) GenerateStream(_ context.Context, _ *domain.GenerationRequest) (<-chan domain.Fragment, error) {
	return nil, errors.New("backend unreachable")
}

func (p *brokenProvider) Name() string { return "broken" }

func (p *brokenProvider) IsModelSupported(_ context.Context, model string) bool {
	return model == "broken-1"
}

func (p *brokenProvider) SupportedModels(_ context.Context) []string {
	return []string{"broken-1"}
}

func newTestHandler(t *testing.T, provider domain.Provider, chain []string) *gusteauhttp.Handler {
	t.Helper()

	reg := registry.NewRegistry()
	if provider != nil {
		require.NoError(t, reg.Register(context.Background(), provider))
	}

	builder := prompt.NewBuilder()
	assistant := domain.NewAssistantService(builder, nil)
	resolver := routing.NewResolver(reg, chain)

	return gusteauhttp.NewHandler(assistant, resolver, builder, domain.DefaultConfig())
}

func suggestionBody(t *testing.T, req gusteauhttp.SuggestionRequest) *bytes.Buffer {
	t.Helper()
	body, err := json.Marshal(req)
	require.NoError(t, err)
	return bytes.NewBuffer(body)
}

func validPreferences() domain.Preferences {
	return domain.Preferences{
		Cuisine:           "Italian",
		DietaryPreference: "Vegetarian",
		Allergy:           "peanuts",
		Ingredient1:       "tomato",
		Ingredient2:       "basil",
		Ingredient3:       "mozzarella",
		WinePreference:    domain.WineRed,
	}
}

func TestHandleSuggestions_Success(t *testing.T) {
	handler := newTestHandler(t, echo.NewProvider(), []string{"echo-1"})

	req := httptest.NewRequest(nethttp.MethodPost, "/v1/suggestions",
		suggestionBody(t, gusteauhttp.SuggestionRequest{Preferences: validPreferences()}))
	rec := httptest.NewRecorder()

	handler.HandleSuggestions(rec, req)

	require.Equal(t, nethttp.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var resp gusteauhttp.SuggestionResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))

	// The echo backend streams the prompt back word by word, so the joined
	// result reproduces the prompt exactly.
	assert.Equal(t, resp.Prompt, resp.Result.Text)
	assert.Contains(t, resp.Prompt, "Italian")
	assert.Contains(t, resp.Prompt, "mozzarella")
	assert.False(t, resp.NoContent)
}

func TestHandleSuggestions_MethodNotAllowed(t *testing.T) {
	handler := newTestHandler(t, echo.NewProvider(), []string{"echo-1"})

	req := httptest.NewRequest(nethttp.MethodGet, "/v1/suggestions", nil)
	rec := httptest.NewRecorder()

	handler.HandleSuggestions(rec, req)

	assert.Equal(t, nethttp.StatusMethodNotAllowed, rec.Code)
}

func TestHandleSuggestions_InvalidBody(t *testing.T) {
	handler := newTestHandler(t, echo.NewProvider(), []string{"echo-1"})

	req := httptest.NewRequest(nethttp.MethodPost, "/v1/suggestions", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()

	handler.HandleSuggestions(rec, req)

	assert.Equal(t, nethttp.StatusBadRequest, rec.Code)
}

func TestHandleSuggestions_InvalidWinePreference(t *testing.T) {
	handler := newTestHandler(t, echo.NewProvider(), []string{"echo-1"})

	prefs := validPreferences()
	prefs.WinePreference = "Rosé"

	req := httptest.NewRequest(nethttp.MethodPost, "/v1/suggestions",
		suggestionBody(t, gusteauhttp.SuggestionRequest{Preferences: prefs}))
	rec := httptest.NewRecorder()

	handler.HandleSuggestions(rec, req)

	assert.Equal(t, nethttp.StatusBadRequest, rec.Code)
}

func TestHandleSuggestions_MissingWinePreferenceDefaultsToNone(t *testing.T) {
	handler := newTestHandler(t, echo.NewProvider(), []string{"echo-1"})

	prefs := validPreferences()
	prefs.WinePreference = ""

	req := httptest.NewRequest(nethttp.MethodPost, "/v1/suggestions",
		suggestionBody(t, gusteauhttp.SuggestionRequest{Preferences: prefs}))
	rec := httptest.NewRecorder()

	handler.HandleSuggestions(rec, req)

	require.Equal(t, nethttp.StatusOK, rec.Code)

	var resp gusteauhttp.SuggestionResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Contains(t, resp.Prompt, "wine preference is None")
}

func TestHandleSuggestions_NoModelAvailable(t *testing.T) {
	handler := newTestHandler(t, nil, []string{"ghost-1"})

	req := httptest.NewRequest(nethttp.MethodPost, "/v1/suggestions",
		suggestionBody(t, gusteauhttp.SuggestionRequest{Preferences: validPreferences()}))
	rec := httptest.NewRecorder()

	handler.HandleSuggestions(rec, req)

	assert.Equal(t, nethttp.StatusServiceUnavailable, rec.Code)
}

func TestHandleSuggestions_GenerationFailureIsBadGateway(t *testing.T) {
	handler := newTestHandler(t, &brokenProvider{}, []string{"broken-1"})

	req := httptest.NewRequest(nethttp.MethodPost, "/v1/suggestions",
		suggestionBody(t, gusteauhttp.SuggestionRequest{Preferences: validPreferences()}))
	rec := httptest.NewRecorder()

	handler.HandleSuggestions(rec, req)

	assert.Equal(t, nethttp.StatusBadGateway, rec.Code)
}

func TestHandleSuggestions_StreamDeliversPromptFragmentsAndDone(t *testing.T) {
	handler := newTestHandler(t, echo.NewProvider(), []string{"echo-1"})

	req := httptest.NewRequest(nethttp.MethodPost, "/v1/suggestions",
		suggestionBody(t, gusteauhttp.SuggestionRequest{
			Preferences: validPreferences(),
			Stream:      true,
		}))
	rec := httptest.NewRecorder()

	handler.HandleSuggestions(rec, req)

	require.Equal(t, nethttp.StatusOK, rec.Code)
	assert.Equal(t, "text/event-stream", rec.Header().Get("Content-Type"))

	body := rec.Body.String()
	assert.Contains(t, body, "event: prompt\n")
	assert.Contains(t, body, "event: done\n")
	// At least one data fragment between prompt and done.
	assert.Contains(t, body, `data: {"text":`)
}

func TestHandleSuggestions_StreamOpenFailureIsBadGateway(t *testing.T) {
	handler := newTestHandler(t, &brokenProvider{}, []string{"broken-1"})

	req := httptest.NewRequest(nethttp.MethodPost, "/v1/suggestions",
		suggestionBody(t, gusteauhttp.SuggestionRequest{
			Preferences: validPreferences(),
			Stream:      true,
		}))
	rec := httptest.NewRecorder()

	handler.HandleSuggestions(rec, req)

	assert.Equal(t, nethttp.StatusBadGateway, rec.Code)
}

func TestHandleHealth(t *testing.T) {
	handler := newTestHandler(t, echo.NewProvider(), []string{"echo-1"})

	req := httptest.NewRequest(nethttp.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()

	handler.HandleHealth(rec, req)

	require.Equal(t, nethttp.StatusOK, rec.Code)

	var resp map[string]string
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "healthy", resp["status"])
}
