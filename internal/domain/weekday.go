package domain

import (
	"fmt"
	"strings"
	"time"
)

// ParseWeekday accepts an English weekday name or its three-letter
// abbreviation, in any case.
func ParseWeekday(s string) (time.Weekday, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	for d := time.Sunday; d <= time.Saturday; d++ {
		name := strings.ToLower(d.String())
		if key == name || key == name[:3] {
			return d, nil
		}
	}
	return 0, fmt.Errorf("unknown weekday %q", s)
}

// ParseWeekdays parses a comma-separated weekday list, e.g. "mon,thu".
func ParseWeekdays(s string) ([]time.Weekday, error) {
	var days []time.Weekday
	seen := map[time.Weekday]bool{}
	for _, part := range strings.Split(s, ",") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		d, err := ParseWeekday(part)
		if err != nil {
			return nil, err
		}
		if !seen[d] {
			seen[d] = true
			days = append(days, d)
		}
	}
	return days, nil
}

// WeekdayNames returns the lowercase full names of days.
func WeekdayNames(days []time.Weekday) []string {
	names := make([]string, len(days))
	for i, d := range days {
		names[i] = strings.ToLower(d.String())
	}
	return names
}
