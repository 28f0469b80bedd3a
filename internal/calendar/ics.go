package calendar

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/mesoplan/internal/domain"
)

const (
	icsDateLayout  = "20060102"
	icsStampLayout = "20060102T150405Z"
	icsLineLimit   = 75
)

type ICSOptions struct {
	CalendarName string
	// Now stamps every event; zero means time.Now.
	Now time.Time
}

// EncodeICS renders instances as an iCalendar feed with one all-day event each.
func EncodeICS(instances []domain.WorkoutInstance, opts ICSOptions) string {
	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}
	stamp := now.UTC().Format(icsStampLayout)

	var sb strings.Builder
	writeLine(&sb, "BEGIN:VCALENDAR")
	writeLine(&sb, "VERSION:2.0")
	writeLine(&sb, "PRODID:-//mesoplan//Training Calendar//EN")
	writeLine(&sb, "CALSCALE:GREGORIAN")
	writeLine(&sb, "METHOD:PUBLISH")
	if opts.CalendarName != "" {
		writeLine(&sb, "X-WR-CALNAME:"+escapeICS(opts.CalendarName))
	}

	for _, inst := range instances {
		writeLine(&sb, "BEGIN:VEVENT")
		writeLine(&sb, "UID:"+eventUID(inst))
		writeLine(&sb, "DTSTAMP:"+stamp)
		writeLine(&sb, "DTSTART;VALUE=DATE:"+inst.Date.Format(icsDateLayout))
		writeLine(&sb, "DTEND;VALUE=DATE:"+inst.Date.AddDate(0, 0, 1).Format(icsDateLayout))
		writeLine(&sb, "SUMMARY:"+escapeICS(inst.Label))
		if desc := describeWorkout(inst); desc != "" {
			writeLine(&sb, "DESCRIPTION:"+escapeICS(desc))
		}
		if inst.IsDeload {
			writeLine(&sb, "CATEGORIES:DELOAD")
		}
		writeLine(&sb, "END:VEVENT")
	}

	writeLine(&sb, "END:VCALENDAR")
	return sb.String()
}

func eventUID(inst domain.WorkoutInstance) string {
	if inst.ID != "" {
		return inst.ID + "@mesoplan"
	}
	return fmt.Sprintf("%s-%s-w%d@mesoplan", inst.TemplateID, inst.Date.Format(icsDateLayout), inst.Week)
}

// describeWorkout lists one exercise per line, e.g. "Back Squat: 4 x 8-10 @ 105%, RIR 1, rest 180s".
func describeWorkout(inst domain.WorkoutInstance) string {
	lines := make([]string, 0, len(inst.Exercises))
	for _, ex := range inst.Exercises {
		lines = append(lines, ex.Name+": "+Prescription(ex))
	}
	return strings.Join(lines, "\n")
}

// Prescription formats sets, reps, load and effort of a resolved exercise.
func Prescription(ex domain.ResolvedExercise) string {
	parts := []string{fmt.Sprintf("%d x %s", ex.Sets, ex.Reps)}
	if ex.WeightPercent != domain.BaselineWeight {
		parts[0] += " @ " + strconv.FormatFloat(ex.WeightPercent, 'f', -1, 64) + "%"
	}
	if ex.RIR != nil {
		parts = append(parts, fmt.Sprintf("RIR %d", *ex.RIR))
	} else if ex.RPE != nil {
		parts = append(parts, "RPE "+strconv.FormatFloat(*ex.RPE, 'f', -1, 64))
	}
	if ex.Rest != "" {
		parts = append(parts, "rest "+ex.Rest)
	}
	return strings.Join(parts, ", ")
}

// writeLine writes a content line, folding it at 75 octets.
func writeLine(sb *strings.Builder, line string) {
	for len(line) > icsLineLimit {
		cut := icsLineLimit
		for cut > 0 && !isRuneStart(line[cut]) {
			cut--
		}
		sb.WriteString(line[:cut])
		sb.WriteString("\r\n ")
		line = line[cut:]
	}
	sb.WriteString(line)
	sb.WriteString("\r\n")
}

func isRuneStart(b byte) bool {
	return b&0xC0 != 0x80
}

func escapeICS(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, ";", "\\;")
	s = strings.ReplaceAll(s, ",", "\\,")
	s = strings.ReplaceAll(s, "\n", "\\n")
	return s
}
