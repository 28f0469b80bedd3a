package cli

import (
	"context"
	"fmt"

	"github.com/alexanderramin/mesoplan/internal/cli/formatter"
	"github.com/alexanderramin/mesoplan/internal/service"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

func huhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// templatePicker builds a select over the catalog. The chosen template id
// is written to result.
func templatePicker(ctx context.Context, app *App, result *string) (*huh.Form, error) {
	templates, err := app.Templates.List(ctx, service.TemplateFilter{})
	if err != nil {
		return nil, err
	}
	if len(templates) == 0 {
		return nil, fmt.Errorf("no templates available")
	}

	options := make([]huh.Option[string], 0, len(templates))
	for _, t := range templates {
		label := fmt.Sprintf("%s  %s", t.Name, formatter.Dim(fmt.Sprintf("%s · %s · %d wk", t.TargetGoal, t.Difficulty, len(t.WeekPattern))))
		options = append(options, huh.NewOption(label, t.ID))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Which template?").
				Description("Replaces every week of the mesocycle").
				Options(options...).
				Value(result),
		),
	).WithTheme(huhTheme()).WithShowHelp(false), nil
}

func pickTemplate(ctx context.Context, app *App) (string, error) {
	var id string
	form, err := templatePicker(ctx, app, &id)
	if err != nil {
		return "", err
	}
	if err := form.RunWithContext(ctx); err != nil {
		return "", err
	}
	return id, nil
}
