package cli

import (
	"fmt"

	"github.com/alexanderramin/mesoplan/internal/cli/formatter"
	"github.com/alexanderramin/mesoplan/internal/domain"
	"github.com/alexanderramin/mesoplan/internal/service"
	"github.com/alexanderramin/mesoplan/internal/template"
	"github.com/spf13/cobra"
)

func newTemplateCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "template",
		Aliases: []string{"tpl"},
		Short:   "Browse progression templates",
	}

	cmd.AddCommand(
		newTemplateListCmd(app),
		newTemplateShowCmd(app),
		newTemplateApplyCmd(app),
	)

	return cmd
}

func newTemplateListCmd(app *App) *cobra.Command {
	var goal, difficulty, ptype string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List available templates",
		RunE: func(cmd *cobra.Command, args []string) error {
			templates, err := app.Templates.List(cmd.Context(), service.TemplateFilter{
				Goal:       template.Goal(goal),
				Difficulty: template.Difficulty(difficulty),
				Type:       domain.ProgressionType(ptype),
			})
			if err != nil {
				return err
			}
			if len(templates) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No templates match.")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatTemplateList(templates))
			return nil
		},
	}

	cmd.Flags().StringVar(&goal, "goal", "", "Filter by goal (strength, hypertrophy, peaking, conditioning, general)")
	cmd.Flags().StringVar(&difficulty, "difficulty", "", "Filter by difficulty (beginner, intermediate, advanced)")
	cmd.Flags().StringVar(&ptype, "type", "", "Filter by progression type")

	return cmd
}

func newTemplateShowCmd(app *App) *cobra.Command {
	var weeks int

	cmd := &cobra.Command{
		Use:   "show TEMPLATE",
		Short: "Show a template and preview it at a given length",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			t, err := app.Templates.Get(ctx, args[0])
			if err != nil {
				return err
			}
			n := weeks
			if n == 0 {
				n = len(t.WeekPattern)
			}
			preview, err := app.Templates.Preview(ctx, t.ID, n, nil)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatTemplateShow(t, preview))
			return nil
		},
	}

	cmd.Flags().IntVar(&weeks, "weeks", 0, "Preview length in weeks (default: the template's own length)")

	return cmd
}

func newTemplateApplyCmd(app *App) *cobra.Command {
	var intensity *intensityFlags

	cmd := &cobra.Command{
		Use:   "apply TEMPLATE MESOCYCLE",
		Short: "Replace a mesocycle's weeks with a template",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			view, err := app.Mesocycles.ApplyTemplate(cmd.Context(), args[1], args[0], intensity.overrides())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatMesocycle(view.Mesocycle, view.Progression))
			return nil
		},
	}

	intensity = bindIntensityFlags(cmd.Flags())

	return cmd
}
