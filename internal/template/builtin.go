package template

import "github.com/alexanderramin/mesoplan/internal/domain"

func wk(volume, weight float64, rir int, rpe, sets, reps float64) domain.IntensityParameters {
	return domain.IntensityParameters{
		Volume:       volume,
		Weight:       weight,
		RIR:          rir,
		RPE:          rpe,
		Sets:         sets,
		RepsModifier: reps,
	}
}

func deloadWk() domain.IntensityParameters {
	return wk(70, 85, 4, 5, 0.6, 1)
}

func builtinTemplates() []ProgressionTemplate {
	templates := []ProgressionTemplate{
		{
			ID:          "linear-strength",
			Name:        "Linear Strength",
			Description: "Two three-week loading ramps, each closed by a deload.",
			Type:        domain.ProgressionLinear,
			TargetGoal:  GoalStrength,
			Difficulty:  DifficultyIntermediate,
			WeekPattern: []domain.IntensityParameters{
				wk(100, 100, 3, 7, 1, 1),
				wk(100, 102.5, 2, 7.5, 1, 1),
				wk(100, 105, 2, 8, 1, 1),
				deloadWk(),
				wk(100, 105, 2, 8, 1, 1),
				wk(100, 107.5, 1, 8.5, 1, 1),
				wk(100, 110, 1, 9, 1, 1),
				deloadWk(),
			},
		},
		{
			ID:          "beginner-linear",
			Name:        "Beginner Linear",
			Description: "Small weekly load increases at moderate effort, then one deload.",
			Type:        domain.ProgressionLinear,
			TargetGoal:  GoalStrength,
			Difficulty:  DifficultyBeginner,
			WeekPattern: []domain.IntensityParameters{
				wk(100, 100, 3, 6.5, 1, 1),
				wk(100, 102.5, 3, 7, 1, 1),
				wk(100, 105, 2, 7.5, 1, 1),
				wk(100, 107.5, 2, 8, 1, 1),
				wk(100, 110, 2, 8, 1, 1),
				wk(60, 85, 4, 5, 0.6, 1),
			},
		},
		{
			ID:          "hypertrophy-accumulation",
			Name:        "Hypertrophy Accumulation",
			Description: "Volume climbs each week while load holds, ending in a deload.",
			Type:        domain.ProgressionLinear,
			TargetGoal:  GoalHypertrophy,
			Difficulty:  DifficultyIntermediate,
			WeekPattern: []domain.IntensityParameters{
				wk(100, 100, 3, 7, 1, 1),
				wk(110, 100, 3, 7, 1.1, 1),
				wk(120, 97.5, 2, 8, 1.2, 1.1),
				wk(130, 97.5, 1, 8.5, 1.3, 1.1),
				wk(140, 95, 1, 9, 1.4, 1.2),
				wk(60, 85, 4, 5, 0.6, 1),
			},
		},
		{
			ID:          "undulating-strength",
			Name:        "Undulating Strength",
			Description: "Heavy, light and moderate weeks alternate across two waves.",
			Type:        domain.ProgressionUndulating,
			TargetGoal:  GoalStrength,
			Difficulty:  DifficultyAdvanced,
			WeekPattern: []domain.IntensityParameters{
				wk(90, 110, 1, 8.5, 0.8, 0.7),
				wk(110, 95, 3, 7, 1.2, 1.2),
				wk(100, 102.5, 2, 7.5, 1, 1),
				wk(90, 112.5, 1, 9, 0.8, 0.7),
				wk(110, 97.5, 2, 7.5, 1.2, 1.2),
				deloadWk(),
			},
		},
		{
			ID:          "wave-loading",
			Name:        "Wave Loading",
			Description: "Three three-week waves, each starting a little heavier than the last.",
			Type:        domain.ProgressionWave,
			TargetGoal:  GoalStrength,
			Difficulty:  DifficultyAdvanced,
			WeekPattern: []domain.IntensityParameters{
				wk(100, 100, 3, 7, 1, 1),
				wk(95, 105, 2, 8, 0.9, 0.9),
				wk(90, 110, 1, 9, 0.8, 0.8),
				wk(100, 102.5, 3, 7, 1, 1),
				wk(95, 107.5, 2, 8, 0.9, 0.9),
				wk(90, 112.5, 1, 9, 0.8, 0.8),
				wk(100, 105, 3, 7.5, 1, 1),
				wk(95, 110, 2, 8.5, 0.9, 0.9),
				wk(90, 115, 1, 9.5, 0.8, 0.8),
			},
		},
		{
			ID:          "step-loading",
			Name:        "Step Loading",
			Description: "Three load steps followed by a deload.",
			Type:        domain.ProgressionStep,
			TargetGoal:  GoalGeneral,
			Difficulty:  DifficultyBeginner,
			WeekPattern: []domain.IntensityParameters{
				wk(100, 100, 2, 7, 1, 1),
				wk(100, 105, 2, 7.5, 1, 1),
				wk(100, 110, 1, 8.5, 1, 1),
				wk(65, 85, 4, 5, 0.6, 1),
			},
		},
		{
			ID:          "block-peaking",
			Name:        "Block Peaking",
			Description: "Accumulation, transmutation and realization blocks leading into a taper.",
			Type:        domain.ProgressionBlock,
			TargetGoal:  GoalPeaking,
			Difficulty:  DifficultyAdvanced,
			WeekPattern: []domain.IntensityParameters{
				wk(110, 90, 3, 7, 1.2, 1.2),
				wk(120, 92.5, 3, 7.5, 1.3, 1.2),
				wk(130, 95, 2, 8, 1.4, 1.2),
				deloadWk(),
				wk(100, 100, 2, 7.5, 1, 1),
				wk(100, 105, 2, 8, 1, 0.9),
				wk(95, 107.5, 1, 8.5, 0.9, 0.8),
				deloadWk(),
				wk(85, 110, 1, 8.5, 0.8, 0.7),
				wk(80, 112.5, 1, 9, 0.7, 0.6),
				wk(78, 115, 0, 9.5, 0.6, 0.5),
				wk(60, 85, 4, 5, 0.6, 1),
			},
		},
		{
			ID:          "conditioning-density",
			Name:        "Conditioning Density",
			Description: "Work volume rises so rest periods shrink under a density strategy.",
			Type:        domain.ProgressionLinear,
			TargetGoal:  GoalConditioning,
			Difficulty:  DifficultyBeginner,
			WeekPattern: []domain.IntensityParameters{
				wk(100, 100, 2, 7, 1, 1),
				wk(105, 100, 2, 7.5, 1, 1),
				wk(110, 100, 2, 8, 1, 1),
				wk(70, 90, 3, 6, 0.7, 1),
			},
		},
	}
	for i := range templates {
		templates[i].Duration = len(templates[i].WeekPattern)
	}
	return templates
}
