package main

import (
	"fmt"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

const renderWidth = 100

var (
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212")).MarginTop(1)
	warningStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203"))
	subtleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

// renderSuggestion prints the generated recipes as rendered markdown,
// followed by the exact prompt that produced them.
func renderSuggestion(recipes, promptText string) {
	fmt.Println(headerStyle.Render("Your recipes"))

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(renderWidth),
	)
	if err != nil {
		// Fall back to plain text when the terminal profile can't be detected.
		fmt.Println(recipes)
	} else {
		out, renderErr := renderer.Render(recipes)
		if renderErr != nil {
			fmt.Println(recipes)
		} else {
			fmt.Print(out)
		}
	}

	fmt.Println(headerStyle.Render("Prompt"))
	fmt.Println(subtleStyle.Render(promptText))
}

// renderWarning prints a user-visible warning for a failed generation call.
func renderWarning(err error) {
	fmt.Println(warningStyle.Render(fmt.Sprintf("Recipe generation failed: %v", err)))
	fmt.Println(subtleStyle.Render("The assistant is still running; try again in a moment."))
}

// renderNoContent reports a call that completed without producing any text.
func renderNoContent() {
	fmt.Println(warningStyle.Render("Nothing was generated for these preferences."))
	fmt.Println(subtleStyle.Render("Try different ingredients or a different cuisine."))
}
