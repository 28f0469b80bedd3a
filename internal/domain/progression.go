package domain

import (
	"sort"
	"time"
)

// GlobalSettings are consulted only by the auto-deload operation.
type GlobalSettings struct {
	AutoDeload      bool `json:"autoDeload"`
	DeloadFrequency int  `json:"deloadFrequency"`
}

const DefaultDeloadFrequency = 4

func DefaultGlobalSettings() GlobalSettings {
	return GlobalSettings{DeloadFrequency: DefaultDeloadFrequency}
}

// MesocycleProgression is the complete week-by-week plan of a mesocycle.
// WeeklyProgressions is sorted ascending by week. ProgressionStrategy is nil
// for mesocycles created without a strategy, and its JSON key is then omitted.
type MesocycleProgression struct {
	ID                  string               `json:"id"`
	MesocycleID         string               `json:"mesocycleId"`
	BaselineWeek        WeekIntensity        `json:"baselineWeek"`
	WeeklyProgressions  []WeekIntensity      `json:"weeklyProgressions"`
	ProgressionType     ProgressionType      `json:"progressionType"`
	GlobalSettings      GlobalSettings       `json:"globalSettings"`
	ProgressionStrategy *ProgressionStrategy `json:"progressionStrategy,omitempty"`
}

// Week returns the entry for week n, if present.
func (p *MesocycleProgression) Week(n int) (WeekIntensity, bool) {
	if p == nil {
		return WeekIntensity{}, false
	}
	i := sort.Search(len(p.WeeklyProgressions), func(i int) bool {
		return p.WeeklyProgressions[i].Week >= n
	})
	if i < len(p.WeeklyProgressions) && p.WeeklyProgressions[i].Week == n {
		return p.WeeklyProgressions[i], true
	}
	return WeekIntensity{}, false
}

// DeloadWeeks returns the week numbers flagged as deload, ascending.
func (p *MesocycleProgression) DeloadWeeks() []int {
	var weeks []int
	for _, w := range p.WeeklyProgressions {
		if w.IsDeload {
			weeks = append(weeks, w.Week)
		}
	}
	return weeks
}

type Mesocycle struct {
	ID        string
	Name      string
	StartDate time.Time
	Weeks     int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// EndDate returns the last calendar day covered by the mesocycle.
func (m *Mesocycle) EndDate() time.Time {
	start := time.Date(m.StartDate.Year(), m.StartDate.Month(), m.StartDate.Day(), 0, 0, 0, 0, m.StartDate.Location())
	weekStart := start.AddDate(0, 0, -int(start.Weekday()))
	return weekStart.AddDate(0, 0, m.Weeks*7-1)
}
