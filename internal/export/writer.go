// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"encoding/csv"
	"os"

	"github.com/pdiddy/healthkit-etl/pkg/types"
)

// Output column order per family. Fixed across runs so downstream loaders
// can rely on position; must match the Row() methods in pkg/types.
var (
	recordColumns = []string{
		"type", "value", "unit",
		"source_name", "source_version",
		"start_date", "end_date", "creation_date",
	}
	workoutColumns = []string{
		"workout_type",
		"duration", "duration_unit",
		"total_distance", "total_distance_unit",
		"total_energy_burned", "total_energy_burned_unit",
		"source_name", "start_date", "end_date",
	}
	activityColumns = []string{
		"date",
		"active_energy_burned", "active_energy_burned_goal",
		"apple_exercise_time", "apple_exercise_time_goal",
		"apple_stand_hours", "apple_stand_hours_goal",
	}
)

// Columns returns the output column order for a family.
func Columns(f types.Family) []string {
	switch f {
	case types.FamilyRecords:
		return recordColumns
	case types.FamilyWorkouts:
		return workoutColumns
	case types.FamilyActivity:
		return activityColumns
	}
	return nil
}

// familyWriter owns one family's destination CSV. encoding/csv handles the
// RFC 4180 quoting of delimiters, quotes, and embedded line breaks, so any
// source value round-trips through a standard CSV reader.
type familyWriter struct {
	path string
	f    *os.File
	csv  *csv.Writer
	rows int
}

// openWriter creates (or truncates) the destination and writes the header
// row. Failures surface as *DestinationWriteError.
func openWriter(path string, columns []string) (*familyWriter, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, &DestinationWriteError{Path: path, Err: err}
	}

	w := &familyWriter{path: path, f: f, csv: csv.NewWriter(f)}
	if err := w.csv.Write(columns); err != nil {
		f.Close()
		return nil, &DestinationWriteError{Path: path, Err: err}
	}
	return w, nil
}

// write appends one row.
func (w *familyWriter) write(row []string) error {
	if err := w.csv.Write(row); err != nil {
		return &DestinationWriteError{Path: w.path, Err: err}
	}
	w.rows++
	return nil
}

// close flushes buffered rows and releases the file. csv.Writer defers I/O
// errors to Flush, so close is where a full disk actually surfaces.
func (w *familyWriter) close() error {
	w.csv.Flush()
	flushErr := w.csv.Error()
	closeErr := w.f.Close()

	if flushErr != nil {
		return &DestinationWriteError{Path: w.path, Err: flushErr}
	}
	if closeErr != nil {
		return &DestinationWriteError{Path: w.path, Err: closeErr}
	}
	return nil
}
