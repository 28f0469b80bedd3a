package cli

import (
	"log/slog"

	"github.com/alexanderramin/mesoplan/internal/service"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

// App holds the services and terminal hooks the commands run against.
type App struct {
	Mesocycles service.MesocycleService
	Templates  service.TemplateService
	Workouts   service.WorkoutTemplateService
	Schedule   service.ScheduleService

	Logger *slog.Logger

	// IsInteractive reports whether stdin is a terminal. Prompts and the
	// week editor only run when it returns true.
	IsInteractive func() bool
	// RunProgram runs a bubbletea model to completion. Nil uses a full-screen tea.Program.
	RunProgram func(tea.Model) (tea.Model, error)
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

func (a *App) runProgram(m tea.Model) (tea.Model, error) {
	if a.RunProgram != nil {
		return a.RunProgram(m)
	}
	return tea.NewProgram(m, tea.WithAltScreen()).Run()
}

func (a *App) logger() *slog.Logger {
	if a.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return a.Logger
}

// NewRootCmd creates the top-level "mesoplan" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "mesoplan",
		Short:         "Plan training mesocycles week by week",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newTemplateCmd(app),
		newMesocycleCmd(app),
		newWorkoutCmd(app),
		newScheduleCmd(app),
	)

	return root
}
