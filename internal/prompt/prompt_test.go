package prompt_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/elenaw/gusteau/internal/domain"
	"github.com/elenaw/gusteau/internal/prompt"
)

func TestBuild_AllFieldsAppearVerbatim(t *testing.T) {
	builder := prompt.NewBuilder()

	text, err := builder.Build(domain.Preferences{
		Cuisine:           "Japanese",
		DietaryPreference: "Vegetarian",
		Allergy:           "shellfish",
		Ingredient1:       "ahi tuna",
		Ingredient2:       "chicken breast",
		Ingredient3:       "tofu",
		WinePreference:    domain.WineWhite,
	})

	require.NoError(t, err)
	for _, want := range []string{
		"Japanese", "Vegetarian", "shellfish",
		"ahi tuna", "chicken breast", "tofu", "White",
	} {
		require.Contains(t, text, want)
	}
}

func TestBuild_InstructionsArePresent(t *testing.T) {
	builder := prompt.NewBuilder()

	text, err := builder.Build(domain.Preferences{
		Allergy:        "peanuts",
		Ingredient1:    "rice",
		Ingredient2:    "beans",
		Ingredient3:    "corn",
		WinePreference: domain.WineNone,
	})

	require.NoError(t, err)
	require.Contains(t, text, "I am a Chef")
	require.Contains(t, text, "wine pairing")
	require.Contains(t, text, "calories")
	require.Contains(t, text, "nutritional facts")
}

func TestBuild_OptionalFieldsFallBack(t *testing.T) {
	builder := prompt.NewBuilder()

	tests := []struct {
		name  string
		prefs domain.Preferences
		want  string
	}{
		{
			name: "missing cuisine",
			prefs: domain.Preferences{
				Allergy: "none", Ingredient1: "a", Ingredient2: "b", Ingredient3: "c",
			},
			want: "create any recipes",
		},
		{
			name: "missing dietary preference",
			prefs: domain.Preferences{
				Cuisine: "Italian",
				Allergy: "none", Ingredient1: "a", Ingredient2: "b", Ingredient3: "c",
			},
			want: "no specific dietary meals",
		},
		{
			name: "dietary preference None",
			prefs: domain.Preferences{
				Cuisine: "Italian", DietaryPreference: "None",
				Allergy: "none", Ingredient1: "a", Ingredient2: "b", Ingredient3: "c",
			},
			want: "no specific dietary meals",
		},
		{
			name: "missing wine preference",
			prefs: domain.Preferences{
				Allergy: "none", Ingredient1: "a", Ingredient2: "b", Ingredient3: "c",
			},
			want: "wine preference is None",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text, err := builder.Build(tt.prefs)
			require.NoError(t, err)
			require.Contains(t, text, tt.want)
		})
	}
}

func TestBuild_IsDeterministic(t *testing.T) {
	builder := prompt.NewBuilder()

	prefs := domain.Preferences{
		Cuisine:           "Mexican",
		DietaryPreference: "Keto",
		Allergy:           "dairy",
		Ingredient1:       "beef",
		Ingredient2:       "avocado",
		Ingredient3:       "lime",
		WinePreference:    domain.WineRed,
	}

	first, err := builder.Build(prefs)
	require.NoError(t, err)
	second, err := builder.Build(prefs)
	require.NoError(t, err)
	require.Equal(t, first, second)
}
