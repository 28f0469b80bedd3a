package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/mesoplan/internal/domain"
	"github.com/spf13/pflag"
)

const dateLayout = "2006-01-02"

func parseWeek(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("invalid week %q: must be a number", s)
	}
	return n, nil
}

func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: use YYYY-MM-DD", s)
	}
	return t, nil
}

// intensityFlags binds one flag per intensity field. Only flags the user
// set take effect.
type intensityFlags struct {
	fs           *pflag.FlagSet
	volume       float64
	weight       float64
	rir          int
	rpe          float64
	sets         float64
	repsModifier float64
}

func bindIntensityFlags(fs *pflag.FlagSet) *intensityFlags {
	f := &intensityFlags{fs: fs}
	fs.Float64Var(&f.volume, "volume", domain.BaselineVolume, "Volume as a percent of baseline")
	fs.Float64Var(&f.weight, "weight", domain.BaselineWeight, "Load as a percent of baseline")
	fs.IntVar(&f.rir, "rir", domain.BaselineRIR, "Reps in reserve")
	fs.Float64Var(&f.rpe, "rpe", domain.BaselineRPE, "Rate of perceived exertion")
	fs.Float64Var(&f.sets, "sets", 1, "Sets multiplier")
	fs.Float64Var(&f.repsModifier, "reps", 1, "Reps multiplier")
	return f
}

// overrides returns the set flags as a partial intensity, or nil when none were set.
func (f *intensityFlags) overrides() *domain.IntensityOverrides {
	o := &domain.IntensityOverrides{}
	if f.fs.Changed("volume") {
		o.Volume = domain.Ptr(f.volume)
	}
	if f.fs.Changed("weight") {
		o.Weight = domain.Ptr(f.weight)
	}
	if f.fs.Changed("rir") {
		o.RIR = domain.Ptr(f.rir)
	}
	if f.fs.Changed("rpe") {
		o.RPE = domain.Ptr(f.rpe)
	}
	if f.fs.Changed("sets") {
		o.Sets = domain.Ptr(f.sets)
	}
	if f.fs.Changed("reps") {
		o.RepsModifier = domain.Ptr(f.repsModifier)
	}
	if o.IsZero() {
		return nil
	}
	return o
}

// weekdaysValue is a pflag.Value for comma-separated weekdays such as "mon,thu".
type weekdaysValue struct {
	days *[]time.Weekday
}

func (v weekdaysValue) String() string {
	if v.days == nil {
		return ""
	}
	return strings.Join(domain.WeekdayNames(*v.days), ",")
}

func (v weekdaysValue) Set(s string) error {
	days, err := domain.ParseWeekdays(s)
	if err != nil {
		return err
	}
	*v.days = days
	return nil
}

func (weekdaysValue) Type() string { return "weekdays" }

// exercisesValue is a repeatable pflag.Value. Each use adds one exercise
// written as NAME:SETSxREPS with optional :rir=N, :rpe=N and :rest=90s parts,
// e.g. "Bench Press:4x6-8:rir=2:rest=180s".
type exercisesValue struct {
	exercises *[]domain.ExerciseDefaults
}

func (v exercisesValue) String() string {
	if v.exercises == nil {
		return "[]"
	}
	names := make([]string, len(*v.exercises))
	for i, ex := range *v.exercises {
		names[i] = ex.Name
	}
	return "[" + strings.Join(names, ",") + "]"
}

func (v exercisesValue) Set(s string) error {
	ex, err := parseExercise(s)
	if err != nil {
		return err
	}
	*v.exercises = append(*v.exercises, ex)
	return nil
}

func (exercisesValue) Type() string { return "exercise" }

func parseExercise(s string) (domain.ExerciseDefaults, error) {
	parts := strings.Split(s, ":")
	if len(parts) < 2 {
		return domain.ExerciseDefaults{}, fmt.Errorf("exercise %q: want NAME:SETSxREPS", s)
	}
	ex := domain.ExerciseDefaults{Name: strings.TrimSpace(parts[0])}
	if ex.Name == "" {
		return ex, fmt.Errorf("exercise %q: name is required", s)
	}

	spec := strings.TrimSpace(parts[1])
	i := strings.IndexAny(spec, "xX")
	if i < 0 {
		return ex, fmt.Errorf("exercise %q: %q is not SETSxREPS", s, parts[1])
	}
	sets, err := strconv.Atoi(spec[:i])
	reps := strings.TrimSpace(spec[i+1:])
	if err != nil || sets < 1 || reps == "" {
		return ex, fmt.Errorf("exercise %q: %q is not SETSxREPS", s, parts[1])
	}
	ex.Sets, ex.Reps = sets, reps

	for _, opt := range parts[2:] {
		k, val, _ := strings.Cut(strings.TrimSpace(opt), "=")
		switch strings.ToLower(k) {
		case "rir":
			n, err := strconv.Atoi(val)
			if err != nil || n < 0 {
				return ex, fmt.Errorf("exercise %q: invalid rir %q", s, val)
			}
			ex.RIR = &n
		case "rpe":
			f, err := strconv.ParseFloat(val, 64)
			if err != nil || f < 1 || f > 10 {
				return ex, fmt.Errorf("exercise %q: invalid rpe %q", s, val)
			}
			ex.RPE = &f
		case "rest":
			ex.Rest = val
		default:
			return ex, fmt.Errorf("exercise %q: unknown option %q", s, k)
		}
	}
	return ex, nil
}
