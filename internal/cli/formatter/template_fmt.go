package formatter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/mesoplan/internal/domain"
	"github.com/alexanderramin/mesoplan/internal/template"
)

// FormatTemplateList renders the template catalog as a numbered table. The
// numbers are the positions accepted as template references.
func FormatTemplateList(templates []template.ProgressionTemplate) string {
	headers := []string{"#", "ID", "NAME", "TYPE", "GOAL", "LEVEL", "WEEKS"}
	rows := make([][]string, 0, len(templates))
	for i, t := range templates {
		rows = append(rows, []string{
			Dim(strconv.Itoa(i + 1)),
			t.ID,
			Bold(t.Name),
			string(t.Type),
			StylePurple.Render(string(t.TargetGoal)),
			DifficultyBadge(t.Difficulty),
			strconv.Itoa(len(t.WeekPattern)),
		})
	}
	return RenderBox("Templates", RenderTable(headers, rows))
}

// FormatTemplateShow renders a template card followed by its week pattern
// rescaled to the previewed length.
func FormatTemplateShow(t *template.ProgressionTemplate, preview []domain.WeekIntensity) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("%s  %s\n", Bold(t.Name), DifficultyBadge(t.Difficulty)))
	if t.Description != "" {
		b.WriteString(Dim(t.Description) + "\n")
	}
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("  %s  %s\n", Dim("ID   "), t.ID))
	b.WriteString(fmt.Sprintf("  %s  %s\n", Dim("TYPE "), t.Type))
	b.WriteString(fmt.Sprintf("  %s  %s\n", Dim("GOAL "), t.TargetGoal))
	b.WriteString(fmt.Sprintf("  %s  %s\n", Dim("WEEKS"), Pluralize(len(t.WeekPattern), "week")))

	if len(preview) > 0 {
		b.WriteString("\n")
		b.WriteString(Header(fmt.Sprintf("Preview (%s)", Pluralize(len(preview), "week"))))
		b.WriteString("\n")
		b.WriteString(FormatWeekTable(preview))
	}
	return RenderBox("", b.String())
}
