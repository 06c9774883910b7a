package main

import (
	"errors"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/elenaw/gusteau/internal/domain"
)

var cuisines = []string{
	"American", "Chinese", "French", "Indian", "Italian", "Japanese", "Mexican", "Turkish",
}

var dietaryPreferences = []string{
	"Diabetes", "Gluten free", "Halal", "Keto", "Kosher",
	"Lactose Intolerance", "Paleo", "Vegan", "Vegetarian", "None",
}

func notEmpty(value string) error {
	if strings.TrimSpace(value) == "" {
		return errors.New("this field is required")
	}
	return nil
}

// collectPreferences runs the preference form and returns the completed
// record. The free-text fields start with sensible defaults so a bare
// enter-enter-enter run still produces a usable prompt.
func collectPreferences() (domain.Preferences, error) {
	prefs := domain.Preferences{
		Allergy:        "peanuts",
		Ingredient1:    "ahi tuna",
		Ingredient2:    "chicken breast",
		Ingredient3:    "tofu",
		WinePreference: domain.WineNone,
	}

	cuisineOptions := make([]huh.Option[string], 0, len(cuisines)+1)
	cuisineOptions = append(cuisineOptions, huh.NewOption("No preference", ""))
	for _, c := range cuisines {
		cuisineOptions = append(cuisineOptions, huh.NewOption(c, c))
	}

	dietOptions := make([]huh.Option[string], 0, len(dietaryPreferences))
	for _, d := range dietaryPreferences {
		dietOptions = append(dietOptions, huh.NewOption(d, d))
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("What cuisine do you desire?").
				Options(cuisineOptions...).
				Value(&prefs.Cuisine),
			huh.NewSelect[string]().
				Title("Do you have any dietary preferences?").
				Options(dietOptions...).
				Value(&prefs.DietaryPreference),
			huh.NewInput().
				Title("Enter your food allergy").
				Value(&prefs.Allergy),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Enter your first ingredient").
				Validate(notEmpty).
				Value(&prefs.Ingredient1),
			huh.NewInput().
				Title("Enter your second ingredient").
				Validate(notEmpty).
				Value(&prefs.Ingredient2),
			huh.NewInput().
				Title("Enter your third ingredient").
				Validate(notEmpty).
				Value(&prefs.Ingredient3),
			huh.NewSelect[domain.WinePreference]().
				Title("Wine preference").
				Options(
					huh.NewOption("Red", domain.WineRed),
					huh.NewOption("White", domain.WineWhite),
					huh.NewOption("None", domain.WineNone),
				).
				Value(&prefs.WinePreference),
		),
	)

	if err := form.Run(); err != nil {
		return domain.Preferences{}, err
	}

	return prefs, nil
}

// confirmAnotherRound asks whether to run the form again.
func confirmAnotherRound() (bool, error) {
	var again bool
	err := huh.NewForm(huh.NewGroup(
		huh.NewConfirm().Title("Generate another set of recipes?").Value(&again),
	)).Run()
	return again, err
}
