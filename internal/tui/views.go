package tui

import (
	"strings"

	"github.com/zorkosss/GameHub/internal/tui/styles"
)

// RenderSpinner renders a loading spinner frame
func RenderSpinner(frame int) string {
	frames := styles.SpinnerFrames
	return styles.SpinnerStyle.Render(frames[frame%len(frames)])
}

// RenderError renders an error message
func RenderError(err error, width int) string {
	msg := wordWrap(err.Error(), width-4)
	return styles.ErrorStyle.Render("Error: " + msg)
}

// wordWrap wraps text to the specified width
func wordWrap(text string, width int) string {
	if width <= 0 {
		return text
	}

	var result strings.Builder
	words := strings.Fields(text)
	lineLen := 0

	for i, word := range words {
		wordLen := len(word)

		if lineLen+wordLen+1 > width && lineLen > 0 {
			result.WriteString("\n")
			lineLen = 0
		}

		if i > 0 && lineLen > 0 {
			result.WriteString(" ")
			lineLen++
		}

		result.WriteString(word)
		lineLen += wordLen
	}

	return result.String()
}
