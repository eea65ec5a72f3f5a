// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"github.com/pdiddy/healthkit-etl/pkg/types"
)

// Element tags of the three recognized families. Everything else in the
// export (ExportDate, Me, Correlation, ClinicalRecord, ...) is structural
// metadata and is skipped without being an error.
const (
	tagRecord          = "Record"
	tagWorkout         = "Workout"
	tagActivitySummary = "ActivitySummary"
)

// classify maps an element tag to its family. The second return is false
// for unrecognized tags.
func classify(tag string) (types.Family, bool) {
	switch tag {
	case tagRecord:
		return types.FamilyRecords, true
	case tagWorkout:
		return types.FamilyWorkouts, true
	case tagActivitySummary:
		return types.FamilyActivity, true
	}
	return "", false
}

// attr returns the attribute value, or "" when absent. Absent and
// present-but-empty both normalize to the empty string; no synthetic
// defaults are ever substituted.
func (e *Entry) attr(name string) string {
	return e.Attrs[name]
}

// require returns the attribute value or a *SchemaMismatchError when the
// attribute is absent. An attribute present with an empty value satisfies
// the requirement.
func (e *Entry) require(name string) (string, error) {
	v, ok := e.Attrs[name]
	if !ok {
		return "", &SchemaMismatchError{Tag: e.Tag, Attr: name}
	}
	return v, nil
}

// normalizeRecord extracts a HealthRecord row from a Record entry. Values
// and timestamps are carried through byte-for-byte: category-type records
// hold textual enums in value, and downstream date analysis depends on the
// original offset notation surviving untouched.
func normalizeRecord(e *Entry) (types.HealthRecord, error) {
	var rec types.HealthRecord
	var err error

	if rec.Type, err = e.require("type"); err != nil {
		return types.HealthRecord{}, err
	}
	if rec.Value, err = e.require("value"); err != nil {
		return types.HealthRecord{}, err
	}
	if rec.StartDate, err = e.require("startDate"); err != nil {
		return types.HealthRecord{}, err
	}
	if rec.EndDate, err = e.require("endDate"); err != nil {
		return types.HealthRecord{}, err
	}

	rec.Unit = e.attr("unit")
	rec.SourceName = e.attr("sourceName")
	rec.SourceVersion = e.attr("sourceVersion")
	rec.CreationDate = e.attr("creationDate")
	return rec, nil
}

// normalizeWorkout extracts a Workout row from a Workout entry. Distance
// and energy totals stay empty when unreported so an unmeasured quantity is
// never written as zero.
func normalizeWorkout(e *Entry) (types.Workout, error) {
	var w types.Workout
	var err error

	if w.WorkoutType, err = e.require("workoutActivityType"); err != nil {
		return types.Workout{}, err
	}
	if w.StartDate, err = e.require("startDate"); err != nil {
		return types.Workout{}, err
	}
	if w.EndDate, err = e.require("endDate"); err != nil {
		return types.Workout{}, err
	}

	w.Duration = e.attr("duration")
	w.DurationUnit = e.attr("durationUnit")
	w.TotalDistance = e.attr("totalDistance")
	w.TotalDistanceUnit = e.attr("totalDistanceUnit")
	w.TotalEnergyBurned = e.attr("totalEnergyBurned")
	w.TotalEnergyBurnedUnit = e.attr("totalEnergyBurnedUnit")
	w.SourceName = e.attr("sourceName")
	return w, nil
}

// normalizeActivitySummary extracts an ActivitySummary row. Only the date
// is required; ring values and goals default to empty on older exports.
func normalizeActivitySummary(e *Entry) (types.ActivitySummary, error) {
	var a types.ActivitySummary
	var err error

	if a.Date, err = e.require("dateComponents"); err != nil {
		return types.ActivitySummary{}, err
	}

	a.ActiveEnergyBurned = e.attr("activeEnergyBurned")
	a.ActiveEnergyBurnedGoal = e.attr("activeEnergyBurnedGoal")
	a.AppleExerciseTime = e.attr("appleExerciseTime")
	a.AppleExerciseTimeGoal = e.attr("appleExerciseTimeGoal")
	a.AppleStandHours = e.attr("appleStandHours")
	a.AppleStandHoursGoal = e.attr("appleStandHoursGoal")
	return a, nil
}
