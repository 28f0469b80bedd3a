package formatter

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/mesoplan/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

const DateLayout = "2006-01-02"

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		Padding(1, 2)

	if title != "" {
		return boxStyle.Render(StyleHeader.Render(strings.ToUpper(title)) + "\n\n" + content)
	}
	return boxStyle.Render(content)
}

// TruncID returns the first 8 characters of an ID, dimmed.
func TruncID(id string) string {
	if len(id) > 8 {
		id = id[:8]
	}
	return StyleDim.Render(id)
}

// DateRange renders "Mar 4 - Mar 28, 2026" for a mesocycle.
func DateRange(m *domain.Mesocycle) string {
	start, end := m.StartDate, m.EndDate()
	if start.Year() == end.Year() {
		return fmt.Sprintf("%s - %s", start.Format("Jan 2"), end.Format("Jan 2, 2006"))
	}
	return fmt.Sprintf("%s - %s", start.Format("Jan 2, 2006"), end.Format("Jan 2, 2006"))
}

// ShortDate renders a workout date such as "Wed Mar 4".
func ShortDate(t time.Time) string {
	return t.Format("Mon Jan 2")
}

// Percent formats a percentage without trailing zeros, e.g. "102.5%".
func Percent(v float64) string {
	return Number(v) + "%"
}

// Number formats a float without trailing zeros.
func Number(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Signed renders v relative to a baseline, colored green above and red below.
func Signed(v, baseline float64, text string) string {
	switch {
	case v > baseline:
		return StyleGreen.Render(text)
	case v < baseline:
		return StyleRed.Render(text)
	default:
		return StyleFg.Render(text)
	}
}

// Pluralize returns "1 week" or "3 weeks".
func Pluralize(n int, singular string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, singular)
	}
	return fmt.Sprintf("%d %ss", n, singular)
}
