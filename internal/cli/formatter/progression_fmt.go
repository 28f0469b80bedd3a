package formatter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/mesoplan/internal/domain"
)

// FormatMesocycleList renders mesocycles as a numbered table. The numbers
// are the positions accepted as mesocycle references.
func FormatMesocycleList(mesocycles []*domain.Mesocycle) string {
	if len(mesocycles) == 0 {
		return Dim("No mesocycles yet. Create one with: mesoplan mesocycle create NAME") + "\n"
	}
	headers := []string{"#", "ID", "NAME", "DATES", "WEEKS"}
	rows := make([][]string, 0, len(mesocycles))
	for i, m := range mesocycles {
		rows = append(rows, []string{
			Dim(strconv.Itoa(i + 1)),
			TruncID(m.ID),
			Bold(m.Name),
			DateRange(m),
			strconv.Itoa(m.Weeks),
		})
	}
	return RenderBox("Mesocycles", RenderTable(headers, rows))
}

// FormatMesocycle renders a mesocycle header and its full week table.
func FormatMesocycle(m *domain.Mesocycle, p domain.MesocycleProgression) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("%s  %s\n\n", Bold(m.Name), TruncID(m.ID)))
	b.WriteString(fmt.Sprintf("  %s  %s\n", Dim("DATES   "), DateRange(m)))
	b.WriteString(fmt.Sprintf("  %s  %s\n", Dim("TYPE    "), p.ProgressionType))
	b.WriteString(fmt.Sprintf("  %s  %s\n", Dim("STRATEGY"), FocusBadge(p.ProgressionStrategy)))
	if p.GlobalSettings.AutoDeload {
		b.WriteString(fmt.Sprintf("  %s  every %s\n", Dim("DELOAD  "), Pluralize(p.GlobalSettings.DeloadFrequency, "week")))
	}
	b.WriteString("\n")
	b.WriteString(FormatWeekTable(p.WeeklyProgressions))
	return RenderBox("", b.String())
}

// FormatWeekTable renders one row per week with every intensity field.
// Values above baseline are green and values below are red.
func FormatWeekTable(weeks []domain.WeekIntensity) string {
	headers := []string{"WEEK", "VOLUME", "WEIGHT", "RIR", "RPE", "SETS", "REPS", "LABEL", ""}
	rows := make([][]string, 0, len(weeks))
	for _, w := range weeks {
		p := w.Intensity
		label := w.Label
		if w.Notes != "" {
			label = strings.TrimSpace(label + " " + Dim("("+w.Notes+")"))
		}
		rows = append(rows, []string{
			strconv.Itoa(w.Week),
			Signed(p.Volume, domain.BaselineVolume, Percent(p.Volume)),
			Signed(p.Weight, domain.BaselineWeight, Percent(p.Weight)),
			Signed(float64(domain.BaselineRIR), float64(p.RIR), strconv.Itoa(p.RIR)),
			Number(p.RPE),
			"x" + Number(p.Sets),
			"x" + Number(p.RepsModifier),
			label,
			DeloadMarker(w.IsDeload),
		})
	}
	return RenderTable(headers, rows)
}
