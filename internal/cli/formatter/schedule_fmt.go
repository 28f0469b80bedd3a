package formatter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/mesoplan/internal/calendar"
	"github.com/alexanderramin/mesoplan/internal/domain"
)

// FormatWorkoutList renders stored workout templates with their days.
func FormatWorkoutList(templates []*domain.WorkoutTemplate) string {
	if len(templates) == 0 {
		return Dim("No workouts yet. Add one with: mesoplan workout add or mesoplan workout import FILE") + "\n"
	}
	headers := []string{"ID", "LABEL", "DAYS", "EXERCISES"}
	rows := make([][]string, 0, len(templates))
	for _, t := range templates {
		rows = append(rows, []string{
			TruncID(t.ID),
			Bold(t.Label),
			strings.Join(domain.WeekdayNames(t.Days), ", "),
			strconv.Itoa(len(t.Exercises)),
		})
	}
	return RenderBox("Workouts", RenderTable(headers, rows))
}

// FormatWorkout renders a workout template and its exercise defaults.
func FormatWorkout(t *domain.WorkoutTemplate) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("%s  %s\n", Bold(t.Label), TruncID(t.ID)))
	b.WriteString(Dim(strings.Join(domain.WeekdayNames(t.Days), ", ")) + "\n\n")
	for i, ex := range t.Exercises {
		line := fmt.Sprintf("%d x %s", ex.Sets, ex.Reps)
		switch {
		case ex.RIR != nil:
			line += fmt.Sprintf(", RIR %d", *ex.RIR)
		case ex.RPE != nil:
			line += ", RPE " + Number(*ex.RPE)
		}
		if ex.Rest != "" {
			line += ", rest " + ex.Rest
		}
		b.WriteString(fmt.Sprintf("  %d. %s  %s\n", i+1, ex.Name, Dim(line)))
	}
	return RenderBox("", b.String())
}

// FormatSchedule groups materialized workouts by week.
func FormatSchedule(instances []domain.WorkoutInstance) string {
	if len(instances) == 0 {
		return Dim("No workouts scheduled. Run: mesoplan schedule build MESOCYCLE") + "\n"
	}
	var b strings.Builder
	week := 0
	for _, inst := range instances {
		if inst.Week != week {
			if week != 0 {
				b.WriteString("\n")
			}
			week = inst.Week
			title := fmt.Sprintf("Week %d", week)
			if inst.IsDeload {
				title += " (deload)"
			}
			b.WriteString(Header(title) + "\n")
		}
		b.WriteString(fmt.Sprintf("%s  %s\n", StyleYellow.Render(ShortDate(inst.Date)), Bold(inst.Label)))
		for _, ex := range inst.Exercises {
			b.WriteString(fmt.Sprintf("  %s  %s", ex.Name, calendar.Prescription(ex)))
			if ex.Changes != "" {
				b.WriteString("  " + Dim(ex.Changes))
			}
			b.WriteString("\n")
		}
	}
	return b.String()
}
