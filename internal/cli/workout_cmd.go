package cli

import (
	"fmt"
	"time"

	"github.com/alexanderramin/mesoplan/internal/cli/formatter"
	"github.com/alexanderramin/mesoplan/internal/domain"
	"github.com/spf13/cobra"
)

func newWorkoutCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "workout",
		Short: "Manage the workout templates a schedule is built from",
	}

	cmd.AddCommand(
		newWorkoutAddCmd(app),
		newWorkoutImportCmd(app),
		newWorkoutListCmd(app),
		newWorkoutShowCmd(app),
		newWorkoutDeleteCmd(app),
	)

	return cmd
}

func newWorkoutAddCmd(app *App) *cobra.Command {
	var days []time.Weekday
	var exercises []domain.ExerciseDefaults

	cmd := &cobra.Command{
		Use:   "add LABEL",
		Short: "Add a workout template",
		Example: `  mesoplan workout add "Upper A" --days mon,thu \
    --exercise "Bench Press:4x6-8:rir=2:rest=180s" \
    --exercise "Cable Fly:3x12-15:rpe=8"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			w := &domain.WorkoutTemplate{
				Label:     args[0],
				Days:      days,
				Exercises: exercises,
			}
			if err := app.Workouts.Create(cmd.Context(), w); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added workout %s\n", formatter.Bold(w.Label))
			return nil
		},
	}

	cmd.Flags().Var(weekdaysValue{days: &days}, "days", "Training days, e.g. mon,thu")
	cmd.Flags().Var(exercisesValue{exercises: &exercises}, "exercise", "Exercise as NAME:SETSxREPS[:rir=N|:rpe=N][:rest=90s] (repeatable)")
	_ = cmd.MarkFlagRequired("days")
	_ = cmd.MarkFlagRequired("exercise")

	return cmd
}

func newWorkoutImportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "import FILE",
		Short: "Import workout templates from a YAML file",
		Long: `Import workout templates from a YAML file. Either every workout in the
file is stored or none is.

  workouts:
    - label: Upper A
      days: [mon, thu]
      exercises:
        - {name: Bench Press, sets: 4, reps: 6-8, rir: 2, rest: 180s}`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			created, err := app.Workouts.Import(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %s\n", formatter.Pluralize(len(created), "workout"))
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatWorkoutList(created))
			return nil
		},
	}
}

func newWorkoutListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List workout templates",
		RunE: func(cmd *cobra.Command, args []string) error {
			workouts, err := app.Workouts.List(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatWorkoutList(workouts))
			return nil
		},
	}
}

func newWorkoutShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show WORKOUT",
		Short: "Show a workout template",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := app.Workouts.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatWorkout(w))
			return nil
		},
	}
}

func newWorkoutDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete WORKOUT",
		Short: "Delete a workout template and its scheduled workouts",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Workouts.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted workout %s\n", args[0])
			return nil
		},
	}
}
