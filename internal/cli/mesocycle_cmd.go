package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/mesoplan/internal/cli/formatter"
	"github.com/alexanderramin/mesoplan/internal/domain"
	"github.com/alexanderramin/mesoplan/internal/progression"
	"github.com/alexanderramin/mesoplan/internal/service"
	"github.com/spf13/cobra"
)

func newMesocycleCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "mesocycle",
		Aliases: []string{"meso"},
		Short:   "Create mesocycles and edit their weekly progression",
		Long: `Create mesocycles and edit their weekly progression.

MESOCYCLE arguments accept an id, a name (case-insensitive) or the number
shown by "mesocycle list".`,
	}

	cmd.AddCommand(
		newMesocycleCreateCmd(app),
		newMesocycleListCmd(app),
		newMesocycleShowCmd(app),
		newMesocycleDeleteCmd(app),
		newMesocycleWeekCmd(app),
		newMesocycleDeloadCmd(app),
		newMesocycleLabelCmd(app),
		newMesocycleNotesCmd(app),
		newMesocyclePresetCmd(app),
		newMesocycleAutoDeloadCmd(app),
		newMesocycleApplyTemplateCmd(app),
		newMesocycleStrategyCmd(app),
		newMesocycleTypeCmd(app),
		newMesocycleEditCmd(app),
	)

	return cmd
}

func printMesocycle(cmd *cobra.Command, view *service.MesocycleView) {
	fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatMesocycle(view.Mesocycle, view.Progression))
}

func newMesocycleCreateCmd(app *App) *cobra.Command {
	var start, strategy string
	var weeks int

	cmd := &cobra.Command{
		Use:   "create NAME",
		Short: "Create a mesocycle",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			startDate, err := parseDate(start)
			if err != nil {
				return err
			}
			view, err := app.Mesocycles.Create(cmd.Context(), service.CreateMesocycleRequest{
				Name:      args[0],
				StartDate: startDate,
				Weeks:     weeks,
				Strategy:  strategy,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created mesocycle %s (%s)\n",
				formatter.Bold(view.Mesocycle.Name), formatter.Pluralize(view.Mesocycle.Weeks, "week"))
			return nil
		},
	}

	cmd.Flags().StringVar(&start, "start", "", "Start date (YYYY-MM-DD, default today)")
	cmd.Flags().IntVar(&weeks, "weeks", 0, "Length in weeks (default from config)")
	cmd.Flags().StringVar(&strategy, "strategy", "",
		fmt.Sprintf("Strategy preset: %s or %s (default from config)", strings.Join(domain.StrategyPresetNames(), ", "), service.NoStrategy))

	return cmd
}

func newMesocycleListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List mesocycles",
		RunE: func(cmd *cobra.Command, args []string) error {
			mesocycles, err := app.Mesocycles.List(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatMesocycleList(mesocycles))
			return nil
		},
	}
}

func newMesocycleShowCmd(app *App) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "show MESOCYCLE",
		Short: "Show a mesocycle's weekly progression",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			view, err := app.Mesocycles.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(view.Progression)
			}
			printMesocycle(cmd, view)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the progression as JSON")

	return cmd
}

func newMesocycleDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete MESOCYCLE",
		Short: "Delete a mesocycle with its progression and scheduled workouts",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Mesocycles.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted mesocycle %s\n", args[0])
			return nil
		},
	}
}

func newMesocycleWeekCmd(app *App) *cobra.Command {
	var intensity *intensityFlags
	var deload bool

	cmd := &cobra.Command{
		Use:   "week MESOCYCLE WEEK",
		Short: "Change a week's intensity",
		Long: `Change a week's intensity. Fields without a flag keep their current value.

Setting --deload stores the week's intensity; clearing it with --deload=false
restores what was stored.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			week, err := parseWeek(args[1])
			if err != nil {
				return err
			}
			current, err := app.Mesocycles.Get(ctx, args[0])
			if err != nil {
				return err
			}
			base := domain.DefaultIntensity()
			if w, ok := current.Progression.Week(week); ok {
				base = w.Intensity
			}

			var isDeload *bool
			if cmd.Flags().Changed("deload") {
				isDeload = &deload
			}
			view, err := app.Mesocycles.UpdateWeek(ctx, current.Mesocycle.ID, week, intensity.overrides().Apply(base), isDeload)
			if err != nil {
				return err
			}
			printMesocycle(cmd, view)
			return nil
		},
	}

	intensity = bindIntensityFlags(cmd.Flags())
	cmd.Flags().BoolVar(&deload, "deload", false, "Mark the week as a deload")

	return cmd
}

func newMesocycleDeloadCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "deload MESOCYCLE WEEK",
		Short: "Toggle a week in or out of deload",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			week, err := parseWeek(args[1])
			if err != nil {
				return err
			}
			view, err := app.Mesocycles.ToggleDeload(cmd.Context(), args[0], week)
			if err != nil {
				return err
			}
			printMesocycle(cmd, view)
			return nil
		},
	}
}

func newMesocycleLabelCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "label MESOCYCLE WEEK LABEL",
		Short: "Set a week's label",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			week, err := parseWeek(args[1])
			if err != nil {
				return err
			}
			view, err := app.Mesocycles.UpdateLabel(cmd.Context(), args[0], week, args[2])
			if err != nil {
				return err
			}
			printMesocycle(cmd, view)
			return nil
		},
	}
}

func newMesocycleNotesCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "notes MESOCYCLE WEEK NOTES",
		Short: "Set a week's notes",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			week, err := parseWeek(args[1])
			if err != nil {
				return err
			}
			view, err := app.Mesocycles.UpdateNotes(cmd.Context(), args[0], week, args[2])
			if err != nil {
				return err
			}
			printMesocycle(cmd, view)
			return nil
		},
	}
}

func presetNames() string {
	names := make([]string, 0, len(progression.Presets()))
	for _, p := range progression.Presets() {
		names = append(names, string(p.Name))
	}
	return strings.Join(names, ", ")
}

func newMesocyclePresetCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "preset MESOCYCLE WEEK PRESET",
		Short: "Apply an intensity preset to a week (" + presetNames() + ")",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			week, err := parseWeek(args[1])
			if err != nil {
				return err
			}
			view, err := app.Mesocycles.ApplyPreset(cmd.Context(), args[0], week, args[2])
			if errors.Is(err, progression.ErrUnknownPreset) {
				return fmt.Errorf("%w (choose from %s)", err, presetNames())
			}
			if err != nil {
				return err
			}
			printMesocycle(cmd, view)
			return nil
		},
	}
}

func newMesocycleAutoDeloadCmd(app *App) *cobra.Command {
	var every int

	cmd := &cobra.Command{
		Use:   "auto-deload MESOCYCLE",
		Short: "Deload every Nth week",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if every < 0 {
				return fmt.Errorf("--every must be positive (got %d)", every)
			}
			view, err := app.Mesocycles.ApplyAutoDeload(cmd.Context(), args[0], every)
			if err != nil {
				return err
			}
			printMesocycle(cmd, view)
			return nil
		},
	}

	cmd.Flags().IntVar(&every, "every", 0, "Deload frequency in weeks (default from config)")

	return cmd
}

func newMesocycleApplyTemplateCmd(app *App) *cobra.Command {
	var templateRef string
	var intensity *intensityFlags

	cmd := &cobra.Command{
		Use:   "apply-template MESOCYCLE",
		Short: "Replace the weekly progression with a template",
		Long: `Replace the weekly progression with a template rescaled to the mesocycle
length. Intensity flags override the matching field in every week.

Without --template an interactive terminal offers a picker.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			ref := templateRef
			if ref == "" {
				if !app.interactive() {
					return fmt.Errorf("--template is required (see: mesoplan template list)")
				}
				picked, err := pickTemplate(ctx, app)
				if err != nil {
					return err
				}
				ref = picked
			}
			view, err := app.Mesocycles.ApplyTemplate(ctx, args[0], ref, intensity.overrides())
			if err != nil {
				return err
			}
			printMesocycle(cmd, view)
			return nil
		},
	}

	cmd.Flags().StringVarP(&templateRef, "template", "t", "", "Template id, name or list number")
	intensity = bindIntensityFlags(cmd.Flags())

	return cmd
}

func newMesocycleStrategyCmd(app *App) *cobra.Command {
	var primary string
	var adjust, maintain []string

	cmd := &cobra.Command{
		Use:   "strategy MESOCYCLE [PRESET]",
		Short: "Set how weekly intensity is applied to exercises",
		Long: `Set the progression strategy from a preset (` + strings.Join(domain.StrategyPresetNames(), ", ") + `)
or build one with --primary, --adjust and --maintain.`,
		Example: `  mesoplan mesocycle strategy "Spring Block" hypertrophy
  mesoplan mesocycle strategy 1 --primary weight --adjust rir --maintain sets`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			strategy, err := buildStrategy(args[1:], primary, adjust, maintain)
			if err != nil {
				return err
			}
			view, err := app.Mesocycles.SetStrategy(cmd.Context(), args[0], strategy)
			if err != nil {
				return err
			}
			printMesocycle(cmd, view)
			return nil
		},
	}

	cmd.Flags().StringVar(&primary, "primary", "", "Primary focus: weight, volume, intensity or density")
	cmd.Flags().StringSliceVar(&adjust, "adjust", nil, "Secondary adjustments: sets, reps, rir, rest")
	cmd.Flags().StringSliceVar(&maintain, "maintain", nil, "Fields held constant: reps, sets, rir")

	return cmd
}

func buildStrategy(preset []string, primary string, adjust, maintain []string) (domain.ProgressionStrategy, error) {
	if len(preset) > 0 {
		if primary != "" {
			return domain.ProgressionStrategy{}, fmt.Errorf("give a preset or --primary, not both")
		}
		s, ok := domain.StrategyPreset(strings.ToLower(preset[0]))
		if !ok {
			return s, fmt.Errorf("%w: %q (choose from %s)", service.ErrUnknownStrategy, preset[0], strings.Join(domain.StrategyPresetNames(), ", "))
		}
		return s, nil
	}
	if primary == "" {
		return domain.ProgressionStrategy{}, fmt.Errorf("a preset or --primary is required")
	}

	s := domain.ProgressionStrategy{Primary: domain.PrimaryFocus(strings.ToLower(primary))}
	for _, a := range adjust {
		switch strings.ToLower(a) {
		case "sets":
			s.SecondaryAdjustments.Sets = true
		case "reps":
			s.SecondaryAdjustments.Reps = true
		case "rir":
			s.SecondaryAdjustments.RIR = true
		case "rest":
			s.SecondaryAdjustments.Rest = true
		default:
			return s, fmt.Errorf("unknown adjustment %q (sets, reps, rir, rest)", a)
		}
	}
	for _, m := range maintain {
		switch strings.ToLower(m) {
		case "reps":
			s.Constraints.MaintainReps = domain.Ptr(true)
		case "sets":
			s.Constraints.MaintainSets = domain.Ptr(true)
		case "rir":
			s.Constraints.MaintainRIR = domain.Ptr(true)
		default:
			return s, fmt.Errorf("unknown constraint %q (reps, sets, rir)", m)
		}
	}
	return s, s.Validate()
}

func newMesocycleTypeCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "type MESOCYCLE TYPE",
		Short: "Set the progression type (linear, wave, block, undulating, step, custom)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			view, err := app.Mesocycles.SetProgressionType(cmd.Context(), args[0], domain.ProgressionType(strings.ToLower(args[1])))
			if err != nil {
				return err
			}
			printMesocycle(cmd, view)
			return nil
		},
	}
}

func newMesocycleEditCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "edit MESOCYCLE",
		Short: "Edit weeks interactively",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !app.interactive() {
				return fmt.Errorf("mesocycle edit needs an interactive terminal")
			}
			ctx := cmd.Context()
			view, err := app.Mesocycles.Get(ctx, args[0])
			if err != nil {
				return err
			}
			m, err := newWeekEditor(ctx, app, view)
			if err != nil {
				return err
			}
			final, err := app.runProgram(m)
			if err != nil {
				return err
			}
			if ed, ok := final.(*weekEditor); ok && ed.err != nil {
				return ed.err
			}
			return nil
		},
	}
}
