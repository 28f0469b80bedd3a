package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/mesoplan/internal/domain"
	"github.com/alexanderramin/mesoplan/internal/template"
	"github.com/charmbracelet/lipgloss"
)

// Gruvbox palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// DifficultyBadge colors a template difficulty from green (beginner) to red (advanced).
func DifficultyBadge(d template.Difficulty) string {
	switch d {
	case template.DifficultyBeginner:
		return StyleGreen.Render(string(d))
	case template.DifficultyIntermediate:
		return StyleYellow.Render(string(d))
	case template.DifficultyAdvanced:
		return StyleRed.Render(string(d))
	default:
		return StyleDim.Render(string(d))
	}
}

// FocusBadge renders a strategy's primary focus, or "none" when there is no strategy.
func FocusBadge(s *domain.ProgressionStrategy) string {
	if s == nil {
		return StyleDim.Render("none")
	}
	return StylePurple.Render(string(s.Primary))
}

// DeloadMarker marks deload weeks and workouts.
func DeloadMarker(isDeload bool) string {
	if isDeload {
		return StyleBlue.Render("↓ deload")
	}
	return ""
}

// Header renders an upper-case section header with an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", len(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

func Dim(text string) string {
	return StyleDim.Render(text)
}

func Bold(text string) string {
	return StyleBold.Render(text)
}
