// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types holds the shared data shapes passed between the CLI,
// the extraction engine, and the analysis store.
package types

import (
	"fmt"
	"strings"
)

// Family identifies one of the three record categories a HealthKit export
// contains: point-in-time measurements, workout sessions, and daily
// activity-ring summaries.
type Family string

const (
	FamilyRecords  Family = "records"
	FamilyWorkouts Family = "workouts"
	FamilyActivity Family = "activity"
)

// AllFamilies returns the three families in their canonical order.
func AllFamilies() []Family {
	return []Family{FamilyRecords, FamilyWorkouts, FamilyActivity}
}

// OutputFile returns the CSV filename a family's rows are written to.
func (f Family) OutputFile() string {
	switch f {
	case FamilyRecords:
		return "health_records.csv"
	case FamilyWorkouts:
		return "workouts.csv"
	case FamilyActivity:
		return "activity_summary.csv"
	}
	return ""
}

// ParseFamilies validates a list of family selector strings. An empty list
// selects all three families. Duplicates are collapsed, order is normalized
// to the canonical one so downstream output is stable.
func ParseFamilies(names []string) ([]Family, error) {
	if len(names) == 0 {
		return AllFamilies(), nil
	}

	requested := make(map[Family]bool, len(names))
	for _, name := range names {
		f := Family(strings.ToLower(strings.TrimSpace(name)))
		switch f {
		case FamilyRecords, FamilyWorkouts, FamilyActivity:
			requested[f] = true
		default:
			return nil, fmt.Errorf("unknown family %q: use records, workouts, or activity", name)
		}
	}

	var out []Family
	for _, f := range AllFamilies() {
		if requested[f] {
			out = append(out, f)
		}
	}
	return out, nil
}

// HealthRecord is one point-in-time measurement from the export. All fields
// are carried as the original attribute text: timestamps keep their offset
// notation and values keep their source form, since category-type records
// carry textual enums rather than numbers.
type HealthRecord struct {
	// Type is the HealthKit metric identifier
	// (e.g. "HKQuantityTypeIdentifierStepCount").
	Type string `json:"type" yaml:"type"`

	// Value is the measurement, numeric or textual depending on Type.
	Value string `json:"value" yaml:"value"`

	// Unit is empty for category-type records.
	Unit string `json:"unit" yaml:"unit"`

	// SourceName and SourceVersion record the device or app that captured
	// the measurement.
	SourceName    string `json:"source_name" yaml:"source_name"`
	SourceVersion string `json:"source_version" yaml:"source_version"`

	// StartDate and EndDate are offset-aware timestamp strings with
	// EndDate >= StartDate.
	StartDate string `json:"start_date" yaml:"start_date"`
	EndDate   string `json:"end_date" yaml:"end_date"`

	// CreationDate is when the record was written to the health database.
	CreationDate string `json:"creation_date" yaml:"creation_date"`
}

// Row returns the record's values in output column order.
func (r HealthRecord) Row() []string {
	return []string{
		r.Type, r.Value, r.Unit,
		r.SourceName, r.SourceVersion,
		r.StartDate, r.EndDate, r.CreationDate,
	}
}

// Workout is one exercise session from the export. Optional numeric fields
// stay empty when the source did not report them, so an unmeasured distance
// is never mistaken for a measured zero.
type Workout struct {
	// WorkoutType is the activity identifier
	// (e.g. "HKWorkoutActivityTypeRunning").
	WorkoutType string `json:"workout_type" yaml:"workout_type"`

	Duration     string `json:"duration" yaml:"duration"`
	DurationUnit string `json:"duration_unit" yaml:"duration_unit"`

	// TotalDistance is empty for workout types that report no distance.
	TotalDistance     string `json:"total_distance" yaml:"total_distance"`
	TotalDistanceUnit string `json:"total_distance_unit" yaml:"total_distance_unit"`

	TotalEnergyBurned     string `json:"total_energy_burned" yaml:"total_energy_burned"`
	TotalEnergyBurnedUnit string `json:"total_energy_burned_unit" yaml:"total_energy_burned_unit"`

	SourceName string `json:"source_name" yaml:"source_name"`
	StartDate  string `json:"start_date" yaml:"start_date"`
	EndDate    string `json:"end_date" yaml:"end_date"`
}

// Row returns the workout's values in output column order.
func (w Workout) Row() []string {
	return []string{
		w.WorkoutType,
		w.Duration, w.DurationUnit,
		w.TotalDistance, w.TotalDistanceUnit,
		w.TotalEnergyBurned, w.TotalEnergyBurnedUnit,
		w.SourceName, w.StartDate, w.EndDate,
	}
}

// ActivitySummary is one calendar day of activity-ring data. The export
// guarantees at most one entry per date; the engine does not deduplicate.
type ActivitySummary struct {
	// Date is the calendar day (no time component), as the source wrote it.
	Date string `json:"date" yaml:"date"`

	ActiveEnergyBurned     string `json:"active_energy_burned" yaml:"active_energy_burned"`
	ActiveEnergyBurnedGoal string `json:"active_energy_burned_goal" yaml:"active_energy_burned_goal"`

	AppleExerciseTime     string `json:"apple_exercise_time" yaml:"apple_exercise_time"`
	AppleExerciseTimeGoal string `json:"apple_exercise_time_goal" yaml:"apple_exercise_time_goal"`

	AppleStandHours     string `json:"apple_stand_hours" yaml:"apple_stand_hours"`
	AppleStandHoursGoal string `json:"apple_stand_hours_goal" yaml:"apple_stand_hours_goal"`
}

// Row returns the summary's values in output column order.
func (a ActivitySummary) Row() []string {
	return []string{
		a.Date,
		a.ActiveEnergyBurned, a.ActiveEnergyBurnedGoal,
		a.AppleExerciseTime, a.AppleExerciseTimeGoal,
		a.AppleStandHours, a.AppleStandHoursGoal,
	}
}
