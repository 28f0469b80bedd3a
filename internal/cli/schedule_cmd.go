package cli

import (
	"fmt"
	"os"

	"github.com/alexanderramin/mesoplan/internal/cli/formatter"
	"github.com/alexanderramin/mesoplan/internal/domain"
	"github.com/spf13/cobra"
)

func newScheduleCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Build dated workouts for a mesocycle",
	}

	cmd.AddCommand(
		newScheduleBuildCmd(app),
		newScheduleListCmd(app),
		newScheduleExportCmd(app),
	)

	return cmd
}

func newScheduleBuildCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "build MESOCYCLE",
		Short: "Materialize every workout template across the mesocycle",
		Long: `Materialize every workout template across the mesocycle, resolving each
exercise against its week's intensity. Rebuilding replaces the stored schedule.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			instances, err := app.Schedule.Build(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Scheduled %s\n", formatter.Pluralize(len(instances), "workout"))
			return nil
		},
	}
}

func newScheduleListCmd(app *App) *cobra.Command {
	var week int

	cmd := &cobra.Command{
		Use:   "list MESOCYCLE",
		Short: "Show the stored schedule",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			instances, err := app.Schedule.List(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if week > 0 {
				instances = filterWeek(instances, week)
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatSchedule(instances))
			return nil
		},
	}

	cmd.Flags().IntVar(&week, "week", 0, "Only show this week")

	return cmd
}

func filterWeek(instances []domain.WorkoutInstance, week int) []domain.WorkoutInstance {
	var out []domain.WorkoutInstance
	for _, inst := range instances {
		if inst.Week == week {
			out = append(out, inst)
		}
	}
	return out
}

func newScheduleExportCmd(app *App) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export MESOCYCLE",
		Short: "Export the stored schedule as an iCalendar feed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			feed, err := app.Schedule.ExportICS(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if output == "" || output == "-" {
				fmt.Fprint(cmd.OutOrStdout(), feed)
				return nil
			}
			if err := os.WriteFile(output, []byte(feed), 0o644); err != nil {
				return fmt.Errorf("writing %s: %w", output, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Write to a file instead of stdout")

	return cmd
}
