package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/unowned-ai/diary/pkg/diaries"
)

// UI styles and layout settings
// Color palette "Blue Moon" from https://gogh-co.github.io/Gogh/
const (
	colorGray     = "#353b52"
	colorWhite    = "#ffffff"
	colorGreen    = "#acfab4"
	colorGreenDim = "#b4c4b4"
	colorRed      = "#e61f44"
	colorRedDim   = "#d06178"
	colorPurple   = "#b9a3eb"
	colorBlue     = "#89ddff"
	colorInk      = "#2c3e50"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).
			Foreground(lipgloss.Color(colorBlue)).
			Background(lipgloss.Color(colorGray)).
			Padding(0, 2).Align(lipgloss.Center)
	subtitleStyle = lipgloss.NewStyle().Bold(true).
			Foreground(lipgloss.Color(colorBlue))
	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(colorGray)).
			Background(lipgloss.Color(colorGreen))
	inactiveStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(colorWhite))
	textRedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color(colorRed))
	goalStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color(colorGreen))
	dimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color(colorGreenDim))
	letterStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(colorPurple))
	todayStyle    = lipgloss.NewStyle().Bold(true).Underline(true)
	blankDayStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(colorInk)).
			Background(lipgloss.Color(colorWhite))

	footerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(colorGray))
)

// emotionStyle paints a day or a label in the emotion's color.
func emotionStyle(e diaries.Emotion) lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(colorWhite)).
		Background(lipgloss.Color(e.Color()))
}

// Function to colorize text based on its status
// 0 (default) - unknown, 1 - green, 2 - red
func TextStatusColorize(text string, status int) string {
	switch status {
	case 1:
		return lipgloss.NewStyle().Foreground(lipgloss.Color(colorGreenDim)).Render(text)
	case 2:
		return lipgloss.NewStyle().Foreground(lipgloss.Color(colorRedDim)).Render(text)
	default:
		return lipgloss.NewStyle().Foreground(lipgloss.Color(colorGray)).Render(text)
	}
}

// Generates pointer symbol when line in focus
func generateLinePointer(isPoint bool, length int) string {
	if isPoint {
		return ">" + strings.Repeat(" ", length-1)
	}
	return strings.Repeat(" ", length)
}

// visibleWindow returns the [start, end) range of a list of n rows that keeps
// cursor on screen when only rows fit.
func visibleWindow(n, cursor, rows int) (int, int) {
	if rows <= 0 || n <= rows {
		return 0, n
	}
	start := cursor - rows/2
	if start < 0 {
		start = 0
	}
	if start+rows > n {
		start = n - rows
	}
	return start, start + rows
}
