// Package strategy derives an exercise's effective per-week parameters from
// its defaults, the week's intensity profile and a progression strategy.
package strategy

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/alexanderramin/mesoplan/internal/domain"
)

// ChangeSeparator joins change fragments in a Resolution's description.
const ChangeSeparator = " · "

const (
	minRestSeconds = 30
	restReduction  = 0.3
	intensityCap   = 105.0
	maxRPE         = 10.0
)

// Resolution is an exercise's effective prescription for one week.
type Resolution struct {
	Exercise      domain.ExerciseDefaults
	WeightPercent float64
	Changes       []string
	Description   string
}

type resolver struct {
	defaults domain.ExerciseDefaults
	out      domain.ExerciseDefaults
	in       domain.IntensityParameters
	strategy domain.ProgressionStrategy
	weight   float64
	changes  []string
}

// Resolve computes the effective parameters of an exercise for one week.
// A nil week or nil strategy returns the defaults unchanged at 100% weight.
// Every exercise class currently resolves by the same rules.
//
// The change list is assembled while the primary focus is applied, before
// constraints restore pinned fields, so a constrained field can still be
// reported as changed.
func Resolve(defaults domain.ExerciseDefaults, week *domain.WeekIntensity, strategy *domain.ProgressionStrategy, class domain.ExerciseClass) Resolution {
	if week == nil || strategy == nil {
		return Resolution{Exercise: defaults.Clone(), WeightPercent: domain.BaselineWeight}
	}

	r := &resolver{
		defaults: defaults,
		out:      defaults.Clone(),
		in:       week.Intensity,
		strategy: *strategy,
		weight:   domain.BaselineWeight,
	}

	switch strategy.Primary {
	case domain.FocusWeight:
		r.applyWeight()
	case domain.FocusVolume:
		r.applyVolume()
	case domain.FocusIntensity:
		r.applyIntensity()
	case domain.FocusDensity:
		r.applyDensity()
	}
	r.applyConstraints()

	return Resolution{
		Exercise:      r.out,
		WeightPercent: r.weight,
		Changes:       r.changes,
		Description:   strings.Join(r.changes, ChangeSeparator),
	}
}

func (r *resolver) applyWeight() {
	r.setWeight(r.in.Weight)
	if r.strategy.SecondaryAdjustments.RIR && r.in.RIR != domain.BaselineRIR {
		r.shiftRIR()
	}
}

func (r *resolver) applyVolume() {
	adj := r.strategy.SecondaryAdjustments
	if adj.Sets && r.in.Sets != 1.0 {
		sets := int(math.Round(float64(r.defaults.Sets) * r.in.Sets))
		r.out.Sets = sets
		if sets != r.defaults.Sets {
			r.note("%d sets", sets)
		}
	}
	if adj.Reps && r.in.RepsModifier != 1.0 {
		reps := ApplyRepsModifier(r.defaults.Reps, r.in.RepsModifier)
		r.out.Reps = reps
		if reps != r.defaults.Reps {
			r.note("%s reps", reps)
		}
	}
	if adj.RIR && r.in.RIR != domain.BaselineRIR {
		r.shiftRIR()
	}
}

func (r *resolver) applyIntensity() {
	switch {
	case r.defaults.RIR != nil:
		r.shiftRIR()
	case r.defaults.RPE != nil:
		rpe := math.Min(maxRPE, *r.defaults.RPE+(r.in.RPE-domain.BaselineRPE))
		r.out.RPE = &rpe
		if rpe != *r.defaults.RPE {
			r.note("RPE %s", formatNumber(rpe))
		}
	}
	if r.strategy.SecondaryAdjustments.RIR && r.in.Weight > domain.BaselineWeight {
		r.setWeight(math.Min(r.in.Weight, intensityCap))
	}
}

func (r *resolver) applyDensity() {
	if !r.strategy.SecondaryAdjustments.Rest || r.defaults.Rest == "" {
		return
	}
	seconds, ok := leadingInt(r.defaults.Rest)
	if !ok {
		return
	}
	factor := 1 - (r.in.Volume/100)*restReduction
	reduced := max(minRestSeconds, int(math.Round(float64(seconds)*factor)))
	r.out.Rest = fmt.Sprintf("%ds", reduced)
	if r.out.Rest != r.defaults.Rest {
		r.note("rest %s", r.out.Rest)
	}
}

// shiftRIR moves the exercise's RIR by the week's distance from baseline RIR.
func (r *resolver) shiftRIR() {
	if r.defaults.RIR == nil {
		return
	}
	delta := domain.BaselineRIR - r.in.RIR
	rir := max(0, *r.defaults.RIR-delta)
	r.out.RIR = &rir
	if rir != *r.defaults.RIR {
		r.note("RIR %d", rir)
	}
}

func (r *resolver) setWeight(pct float64) {
	r.weight = pct
	if pct != domain.BaselineWeight {
		r.note("%s%% weight", formatNumber(pct))
	}
}

func (r *resolver) applyConstraints() {
	c := r.strategy.Constraints
	if domain.BoolFromPtrWithDefault(false, c.MaintainReps) {
		r.out.Reps = r.defaults.Reps
	}
	if domain.BoolFromPtrWithDefault(false, c.MaintainSets) {
		r.out.Sets = r.defaults.Sets
	}
	if domain.BoolFromPtrWithDefault(false, c.MaintainRIR) {
		r.out.RIR = domain.ClonePtr(r.defaults.RIR)
	}
}

func (r *resolver) note(format string, args ...any) {
	r.changes = append(r.changes, fmt.Sprintf(format, args...))
}

// ApplyRepsModifier scales a reps prescription. Ranges ("8-10") scale both
// ends; single counts scale directly. Strings without a leading integer
// ("AMRAP") are returned unchanged.
func ApplyRepsModifier(reps string, modifier float64) string {
	if modifier == 1.0 {
		return reps
	}
	if lo, hi, ok := strings.Cut(reps, "-"); ok {
		minReps, okMin := leadingInt(lo)
		maxReps, okMax := leadingInt(hi)
		if !okMin || !okMax {
			return reps
		}
		return fmt.Sprintf("%d-%d", scale(minReps, modifier), scale(maxReps, modifier))
	}
	n, ok := leadingInt(reps)
	if !ok {
		return reps
	}
	return strconv.Itoa(scale(n, modifier))
}

func scale(n int, modifier float64) int {
	return int(math.Round(float64(n) * modifier))
}

// leadingInt parses the integer prefix of s, ignoring surrounding spaces.
func leadingInt(s string) (int, bool) {
	s = strings.TrimSpace(s)
	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0, false
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, false
	}
	return n, true
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
