// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"context"
	"fmt"

	"github.com/pdiddy/healthkit-etl/pkg/types"
)

// TypeCount is a record type with its row count.
type TypeCount struct {
	Type string `json:"type"`
	Rows int    `json:"rows"`
}

// Report summarizes the loaded data for the summary command.
type Report struct {
	Records   int `json:"health_records"`
	Workouts  int `json:"workouts"`
	Activity  int `json:"activity_summary"`

	// TopTypes lists the most frequent record types, descending by count.
	TopTypes []TypeCount `json:"top_record_types"`
}

// SummaryReport counts rows per table and the top record types. limit caps
// the type list (default 10).
func (s *Store) SummaryReport(ctx context.Context, limit int) (Report, error) {
	if limit <= 0 {
		limit = 10
	}

	var report Report
	for _, q := range []struct {
		family types.Family
		dest   *int
	}{
		{types.FamilyRecords, &report.Records},
		{types.FamilyWorkouts, &report.Workouts},
		{types.FamilyActivity, &report.Activity},
	} {
		err := s.db.QueryRowContext(ctx,
			"SELECT count(*) FROM "+tableName(q.family),
		).Scan(q.dest)
		if err != nil {
			return Report{}, fmt.Errorf("counting %s: %w", tableName(q.family), err)
		}
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT type, count(*) AS n FROM health_records
		 GROUP BY type ORDER BY n DESC, type LIMIT ?`, limit)
	if err != nil {
		return Report{}, fmt.Errorf("querying record types: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var tc TypeCount
		if err := rows.Scan(&tc.Type, &tc.Rows); err != nil {
			return Report{}, fmt.Errorf("scanning record type: %w", err)
		}
		report.TopTypes = append(report.TopTypes, tc)
	}
	if err := rows.Err(); err != nil {
		return Report{}, fmt.Errorf("iterating record types: %w", err)
	}

	return report, nil
}
