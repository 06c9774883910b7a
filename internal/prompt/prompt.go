// Package prompt renders a customer preference record into the natural
// language prompt sent to the generation backend.
package prompt

import (
	"bytes"
	"fmt"
	"text/template"

	"github.com/elenaw/gusteau/internal/domain"
)

// recipeTemplate instructs the model to act as a chef. Every preference field
// appears verbatim in the rendered prompt; the optional fields fall back to a
// neutral phrase when absent.
const recipeTemplate = `I am a Chef. I need to create {{.Cuisine}} recipes for customers who want {{.DietaryPreference}} meals. ` +
	`However, don't include recipes that use ingredients with the customer's {{.Allergy}} allergy. ` +
	`I have {{.Ingredient1}}, {{.Ingredient2}}, and {{.Ingredient3}} in my kitchen and other ingredients. ` +
	`The customer's wine preference is {{.WinePreference}}. ` +
	`Please provide some meal recommendations. ` +
	`For each recommendation include preparation instructions, time to prepare and the recipe title at the beginning of the response. ` +
	`Then include the wine pairing for each recommendation. ` +
	`At the end of the recommendation provide the calories associated with the meal and the nutritional facts.`

const (
	anyCuisine = "any"
	anyDiet    = "no specific dietary"
)

// Builder implements the domain.PromptBuilder interface.
type Builder struct {
	tmpl *template.Template
}

// NewBuilder creates a prompt builder with the chef template parsed once.
func NewBuilder() *Builder {
	return &Builder{
		tmpl: template.Must(template.New("recipes").Parse(recipeTemplate)),
	}
}

// templateData mirrors domain.Preferences with the optional fields defaulted.
type templateData struct {
	Cuisine           string
	DietaryPreference string
	Allergy           string
	Ingredient1       string
	Ingredient2       string
	Ingredient3       string
	WinePreference    domain.WinePreference
}

// Build produces the prompt text. Every provided preference value appears
// verbatim in the output.
func (b *Builder) Build(prefs domain.Preferences) (string, error) {
	data := templateData{
		Cuisine:           prefs.Cuisine,
		DietaryPreference: prefs.DietaryPreference,
		Allergy:           prefs.Allergy,
		Ingredient1:       prefs.Ingredient1,
		Ingredient2:       prefs.Ingredient2,
		Ingredient3:       prefs.Ingredient3,
		WinePreference:    prefs.WinePreference,
	}

	if data.Cuisine == "" {
		data.Cuisine = anyCuisine
	}
	if data.DietaryPreference == "" || data.DietaryPreference == "None" {
		data.DietaryPreference = anyDiet
	}
	if data.WinePreference == "" {
		data.WinePreference = domain.WineNone
	}

	var buf bytes.Buffer
	if err := b.tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute prompt template: %w", err)
	}

	return buf.String(), nil
}
