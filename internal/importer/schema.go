// Package importer reads workout template files.
//
// A file lists one or more workouts:
//
//	workouts:
//	  - label: Upper A
//	    days: [mon, thu]
//	    exercises:
//	      - {name: Bench Press, sets: 4, reps: 6-8, rir: 2, rest: 180s}
package importer

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type WorkoutFile struct {
	Workouts []WorkoutImport `yaml:"workouts"`
}

type WorkoutImport struct {
	Label     string           `yaml:"label"`
	Days      []string         `yaml:"days"`
	Exercises []ExerciseImport `yaml:"exercises"`
}

type ExerciseImport struct {
	Name string   `yaml:"name"`
	Sets int      `yaml:"sets"`
	Reps string   `yaml:"reps"`
	RIR  *int     `yaml:"rir,omitempty"`
	RPE  *float64 `yaml:"rpe,omitempty"`
	Rest string   `yaml:"rest,omitempty"`
}

// LoadWorkoutFile reads and parses a workout YAML file. Unknown keys are
// rejected so typos surface instead of silently dropping fields.
func LoadWorkoutFile(path string) (*WorkoutFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseWorkoutFile(data)
}

func ParseWorkoutFile(data []byte) (*WorkoutFile, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var file WorkoutFile
	if err := dec.Decode(&file); err != nil {
		return nil, fmt.Errorf("parsing workout file: %w", err)
	}
	return &file, nil
}
