package domain

import "strings"

// WinePreference is the customer's wine choice.
type WinePreference string

const (
	WineRed   WinePreference = "Red"
	WineWhite WinePreference = "White"
	WineNone  WinePreference = "None"
)

// Valid reports whether the wine preference is one of the accepted values.
func (w WinePreference) Valid() bool {
	switch w {
	case WineRed, WineWhite, WineNone:
		return true
	}
	return false
}

// Preferences is the customer preference record collected by the input layer.
type Preferences struct {
	Cuisine           string         `json:"cuisine,omitempty"`
	DietaryPreference string         `json:"dietary_preference,omitempty"`
	Allergy           string         `json:"allergy"`
	Ingredient1       string         `json:"ingredient_1"`
	Ingredient2       string         `json:"ingredient_2"`
	Ingredient3       string         `json:"ingredient_3"`
	WinePreference    WinePreference `json:"wine_preference"`
}

// HarmCategory identifies a class of content the remote service can filter.
type HarmCategory string

const (
	HarmHarassment       HarmCategory = "harassment"
	HarmHateSpeech       HarmCategory = "hate-speech"
	HarmSexuallyExplicit HarmCategory = "sexually-explicit"
	HarmDangerousContent HarmCategory = "dangerous-content"
)

// BlockThreshold controls how aggressively a harm category is filtered.
type BlockThreshold string

const (
	BlockNone        BlockThreshold = "block-none"
	BlockOnlyHigh    BlockThreshold = "block-only-high"
	BlockMediumAndUp BlockThreshold = "block-medium-and-above"
	BlockLowAndUp    BlockThreshold = "block-low-and-above"
)

// SafetySetting pairs a harm category with its block threshold.
type SafetySetting struct {
	Category  HarmCategory   `json:"category"`
	Threshold BlockThreshold `json:"threshold"`
}

// GenerationConfig holds sampling parameters and the safety policy for one
// generation call. It carries no per-request state and may be reused.
type GenerationConfig struct {
	Temperature     float64         `json:"temperature"`
	MaxOutputTokens int             `json:"max_output_tokens"`
	Safety          []SafetySetting `json:"safety,omitempty"`
}

const (
	defaultTemperature     = 0.8
	defaultMaxOutputTokens = 2048
)

// DefaultConfig returns the standard generation configuration: moderate
// sampling temperature, a 2048-token output bound, and a permissive safety
// policy that blocks nothing in any of the four harm categories.
func DefaultConfig() GenerationConfig {
	return GenerationConfig{
		Temperature:     defaultTemperature,
		MaxOutputTokens: defaultMaxOutputTokens,
		Safety:          PermissiveSafetyPolicy(),
	}
}

// PermissiveSafetyPolicy covers all four harm categories with BlockNone.
// The order is fixed so the settings reach the remote service deterministically.
func PermissiveSafetyPolicy() []SafetySetting {
	return []SafetySetting{
		{Category: HarmHarassment, Threshold: BlockNone},
		{Category: HarmHateSpeech, Threshold: BlockNone},
		{Category: HarmSexuallyExplicit, Threshold: BlockNone},
		{Category: HarmDangerousContent, Threshold: BlockNone},
	}
}

// GenerationRequest is the per-call value object handed to a provider.
type GenerationRequest struct {
	Model  string           `json:"model"`
	Prompt string           `json:"prompt"`
	Config GenerationConfig `json:"config"`
}

// Fragment is one unit of a streamed generation response. Exactly one of the
// three shapes applies, decided when the fragment is received from the
// transport: a text payload, an empty payload (safety-filtered or blank), or
// a terminal stream error. The channel carrying fragments is closed when the
// stream completes.
type Fragment struct {
	Text  string
	Empty bool
	Err   error
}

// TextFragment builds a fragment carrying a text payload.
func TextFragment(text string) Fragment {
	return Fragment{Text: text}
}

// EmptyFragment builds a fragment whose payload was withheld.
func EmptyFragment() Fragment {
	return Fragment{Empty: true}
}

// ErrorFragment builds a terminal fragment for a mid-stream failure.
func ErrorFragment(err error) Fragment {
	return Fragment{Err: err}
}

// ModelHandle is a resolved, usable (provider, model) pair. It is immutable
// after creation and safe to share across calls.
type ModelHandle struct {
	provider Provider
	model    string
}

// NewModelHandle binds a model identifier to the provider serving it.
func NewModelHandle(provider Provider, model string) ModelHandle {
	return ModelHandle{provider: provider, model: model}
}

// Provider returns the provider backing this handle.
func (h ModelHandle) Provider() Provider {
	return h.provider
}

// Model returns the model identifier this handle was resolved to.
func (h ModelHandle) Model() string {
	return h.model
}

// IsZero reports whether the handle was never resolved.
func (h ModelHandle) IsZero() bool {
	return h.provider == nil
}

// GenerationResult is the final joined text of one completed call.
type GenerationResult struct {
	Text string `json:"text"`
}

// IsEmpty reports whether the call completed without producing content, e.g.
// when every fragment was filtered. This is a valid outcome, not a failure.
func (r GenerationResult) IsEmpty() bool {
	return strings.TrimSpace(r.Text) == ""
}

// Suggestion is what the presentation layer receives on a successful call:
// the generated recipes and the exact prompt that produced them.
type Suggestion struct {
	Result GenerationResult `json:"result"`
	Prompt string           `json:"prompt"`
}
