// Package progression holds the editable week list of a mesocycle and the
// deload bookkeeping that lets a week be toggled in and out of deload
// without losing its configuration.
package progression

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"slices"

	"github.com/alexanderramin/mesoplan/internal/domain"
	"github.com/alexanderramin/mesoplan/internal/template"
)

var (
	ErrInvalidWeeks   = errors.New("mesocycle must have at least 1 week")
	ErrWeekOutOfRange = errors.New("week must be 1 or greater")
	ErrWeekNotFound   = errors.New("week not found")
	ErrUnknownPreset  = errors.New("unknown intensity preset")
)

// Listener receives the complete progression after every change.
type Listener func(domain.MesocycleProgression)

// Editor owns one mesocycle's progression while it is being authored.
//
// Changes made before Settle are not emitted; Settle emits the fully
// initialized progression once, and from then on every change emits
// synchronously. Editor is not safe for concurrent use.
type Editor struct {
	length    int
	weeks     map[int]domain.WeekIntensity
	preDeload map[int]domain.IntensityParameters

	id              string
	mesocycleID     string
	progressionType domain.ProgressionType
	settings        domain.GlobalSettings
	strategy        *domain.ProgressionStrategy

	initial   *domain.MesocycleProgression
	listeners []Listener
	settled   bool
	logger    *slog.Logger
}

type Option func(*Editor)

// WithInitial seeds the editor from a stored progression. Weeks outside
// 1..n are dropped and missing weeks are filled with defaults.
func WithInitial(p *domain.MesocycleProgression) Option {
	return func(e *Editor) {
		e.initial = p
	}
}

// WithPreDeload restores deload snapshots saved from an earlier session.
func WithPreDeload(snapshots map[int]domain.IntensityParameters) Option {
	return func(e *Editor) {
		maps.Copy(e.preDeload, snapshots)
	}
}

func WithListener(fn Listener) Option {
	return func(e *Editor) {
		if fn != nil {
			e.listeners = append(e.listeners, fn)
		}
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(e *Editor) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// New creates an editor for a mesocycle of the given length.
func New(weeks int, opts ...Option) (*Editor, error) {
	if weeks < 1 {
		return nil, fmt.Errorf("%w (got %d)", ErrInvalidWeeks, weeks)
	}
	e := &Editor{
		length:          weeks,
		weeks:           make(map[int]domain.WeekIntensity, weeks),
		preDeload:       make(map[int]domain.IntensityParameters),
		progressionType: domain.ProgressionLinear,
		settings:        domain.DefaultGlobalSettings(),
		logger:          slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(e)
		}
	}
	if e.initial != nil {
		e.seed(*e.initial)
		e.initial = nil
	}
	for w := 1; w <= weeks; w++ {
		if _, ok := e.weeks[w]; !ok {
			e.weeks[w] = domain.DefaultWeek(w)
		}
	}
	return e, nil
}

func (e *Editor) seed(p domain.MesocycleProgression) {
	e.id = p.ID
	e.mesocycleID = p.MesocycleID
	if p.ProgressionType != "" {
		e.progressionType = p.ProgressionType
	}
	e.settings = p.GlobalSettings
	if p.ProgressionStrategy != nil {
		s := *p.ProgressionStrategy
		e.strategy = &s
	}
	for _, w := range p.WeeklyProgressions {
		if w.Week < 1 || w.Week > e.length {
			e.logger.Debug("dropping week outside mesocycle", "week", w.Week, "weeks", e.length)
			continue
		}
		e.weeks[w.Week] = w
	}
}

// Subscribe adds a listener. It is called on every emission from now on.
func (e *Editor) Subscribe(fn Listener) {
	if fn != nil {
		e.listeners = append(e.listeners, fn)
	}
}

// Settle marks the consumer ready. The first call emits the current
// progression; later calls do nothing.
func (e *Editor) Settle() domain.MesocycleProgression {
	snap := e.Snapshot()
	if !e.settled {
		e.settled = true
		e.notify(snap)
	}
	return snap
}

func (e *Editor) Settled() bool { return e.settled }

// Weeks returns the mesocycle length the editor was created with.
func (e *Editor) Weeks() int { return e.length }

// Snapshot builds the complete progression, sorted by week.
func (e *Editor) Snapshot() domain.MesocycleProgression {
	keys := slices.Sorted(maps.Keys(e.weeks))
	weeks := make([]domain.WeekIntensity, 0, len(keys))
	for _, k := range keys {
		weeks = append(weeks, e.weeks[k])
	}

	baseline, ok := e.weeks[1]
	if !ok {
		baseline = domain.DefaultWeek(1)
	}

	var strategy *domain.ProgressionStrategy
	if e.strategy != nil {
		s := *e.strategy
		strategy = &s
	}

	return domain.MesocycleProgression{
		ID:                  e.id,
		MesocycleID:         e.mesocycleID,
		BaselineWeek:        baseline,
		WeeklyProgressions:  weeks,
		ProgressionType:     e.progressionType,
		GlobalSettings:      e.settings,
		ProgressionStrategy: strategy,
	}
}

// PreDeload returns a copy of the stored pre-deload intensities, keyed by week.
func (e *Editor) PreDeload() map[int]domain.IntensityParameters {
	return maps.Clone(e.preDeload)
}

// UpdateWeek replaces a week's intensity, appending the week if it is new.
// A nil isDeload keeps the current flag. Entering deload stores the week's
// current intensity; leaving deload restores it (or the default intensity
// when nothing was stored) in place of the given intensity.
func (e *Editor) UpdateWeek(week int, intensity domain.IntensityParameters, isDeload *bool) (domain.MesocycleProgression, error) {
	if week < 1 {
		return e.Snapshot(), fmt.Errorf("%w (got %d)", ErrWeekOutOfRange, week)
	}
	e.setWeek(week, intensity, isDeload)
	return e.changed(), nil
}

// ToggleDeload flips a week in or out of deload.
func (e *Editor) ToggleDeload(week int) (domain.MesocycleProgression, error) {
	if week < 1 {
		return e.Snapshot(), fmt.Errorf("%w (got %d)", ErrWeekOutOfRange, week)
	}
	cur := e.week(week)
	if cur.IsDeload {
		w := e.setWeek(week, cur.Intensity, domain.Ptr(false))
		if w.Label == domain.DeloadLabel {
			w.Label = ""
			e.weeks[week] = w
		}
	} else {
		w := e.setWeek(week, domain.DeloadIntensity(), domain.Ptr(true))
		w.Label = domain.DeloadLabel
		e.weeks[week] = w
	}
	return e.changed(), nil
}

func (e *Editor) UpdateLabel(week int, label string) (domain.MesocycleProgression, error) {
	w, ok := e.weeks[week]
	if !ok {
		return e.Snapshot(), fmt.Errorf("%w: %d", ErrWeekNotFound, week)
	}
	w.Label = label
	e.weeks[week] = w
	return e.changed(), nil
}

func (e *Editor) UpdateNotes(week int, notes string) (domain.MesocycleProgression, error) {
	w, ok := e.weeks[week]
	if !ok {
		return e.Snapshot(), fmt.Errorf("%w: %d", ErrWeekNotFound, week)
	}
	w.Notes = notes
	e.weeks[week] = w
	return e.changed(), nil
}

// ApplyPreset overwrites a week with a named intensity preset. The deload
// preset flags the week as deload and stores its previous intensity; any
// other preset clears the flag and discards a stored intensity.
func (e *Editor) ApplyPreset(week int, name string) (domain.MesocycleProgression, error) {
	preset, ok := LookupPreset(name)
	if !ok {
		return e.Snapshot(), fmt.Errorf("%w: %q", ErrUnknownPreset, name)
	}
	if week < 1 {
		return e.Snapshot(), fmt.Errorf("%w (got %d)", ErrWeekOutOfRange, week)
	}

	cur := e.week(week)
	deload := preset.Name == PresetDeload
	switch {
	case deload && !cur.IsDeload:
		e.preDeload[week] = cur.Intensity
	case !deload:
		delete(e.preDeload, week)
	}

	cur.Intensity = preset.Intensity
	cur.IsDeload = deload
	cur.Label = preset.Label()
	e.weeks[week] = cur
	return e.changed(), nil
}

// ApplyAutoDeload forces every week that is a multiple of frequency into
// deload and records the cadence in the global settings. Weeks already in
// deload and weeks off the cadence are untouched. A frequency below 1 does
// nothing.
func (e *Editor) ApplyAutoDeload(frequency int) domain.MesocycleProgression {
	if frequency < 1 {
		return e.Snapshot()
	}
	for _, week := range slices.Sorted(maps.Keys(e.weeks)) {
		cur := e.weeks[week]
		if week%frequency != 0 || cur.IsDeload {
			continue
		}
		w := e.setWeek(week, domain.DeloadIntensity(), domain.Ptr(true))
		w.Label = domain.DeloadLabel
		e.weeks[week] = w
	}
	e.settings.AutoDeload = true
	e.settings.DeloadFrequency = frequency
	return e.changed()
}

// ApplyTemplate replaces every week with the template rescaled to the
// mesocycle length. Light weeks are flagged as deloads and stored
// pre-deload intensities are discarded.
func (e *Editor) ApplyTemplate(catalog *template.Catalog, id string, overrides *domain.IntensityOverrides) (domain.MesocycleProgression, error) {
	params, err := catalog.Apply(id, e.length, overrides)
	if err != nil {
		return e.Snapshot(), err
	}
	tmpl, _ := catalog.ByID(id)

	clear(e.weeks)
	clear(e.preDeload)
	for _, w := range template.WrapWeeks(params) {
		e.weeks[w.Week] = w
	}
	e.progressionType = tmpl.Type
	e.logger.Debug("template applied", "template", id, "weeks", e.length)
	return e.changed(), nil
}

func (e *Editor) SetStrategy(s domain.ProgressionStrategy) (domain.MesocycleProgression, error) {
	if err := s.Validate(); err != nil {
		return e.Snapshot(), err
	}
	e.strategy = &s
	return e.changed(), nil
}

func (e *Editor) SetProgressionType(t domain.ProgressionType) (domain.MesocycleProgression, error) {
	if !domain.ValidProgressionTypes[string(t)] {
		return e.Snapshot(), fmt.Errorf("invalid progression type %q", t)
	}
	e.progressionType = t
	return e.changed(), nil
}

func (e *Editor) SetGlobalSettings(s domain.GlobalSettings) domain.MesocycleProgression {
	e.settings = s
	return e.changed()
}

func (e *Editor) week(n int) domain.WeekIntensity {
	if w, ok := e.weeks[n]; ok {
		return w
	}
	return domain.DefaultWeek(n)
}

// setWeek applies the deload snapshot rules and stores the week without emitting.
func (e *Editor) setWeek(week int, intensity domain.IntensityParameters, isDeload *bool) domain.WeekIntensity {
	cur := e.week(week)
	next := cur
	next.Intensity = intensity

	if isDeload != nil {
		switch {
		case *isDeload && !cur.IsDeload:
			e.preDeload[week] = cur.Intensity
			e.logger.Debug("stored pre-deload intensity", "week", week)
		case !*isDeload && cur.IsDeload:
			if snap, ok := e.preDeload[week]; ok {
				next.Intensity = snap
				delete(e.preDeload, week)
				e.logger.Debug("restored pre-deload intensity", "week", week)
			} else {
				next.Intensity = domain.DefaultIntensity()
			}
		}
		next.IsDeload = *isDeload
	}

	e.weeks[week] = next
	return next
}

func (e *Editor) changed() domain.MesocycleProgression {
	snap := e.Snapshot()
	if e.settled {
		e.notify(snap)
	}
	return snap
}

func (e *Editor) notify(snap domain.MesocycleProgression) {
	for _, fn := range e.listeners {
		fn(snap)
	}
}
