// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package store loads extracted health CSVs into a local SQLite database
// so downstream analysis can query them instead of re-reading flat files.
package store

import (
	"context"
	"database/sql"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/healthkit-etl/internal/export"
	"github.com/pdiddy/healthkit-etl/pkg/types"
)

const dbFile = "health.db"

// Store manages the analysis SQLite database.
type Store struct {
	db      *sql.DB
	dataDir string
}

// NewStore opens or creates the database at cfg.DBPath (default
// cfg.DataDir/health.db) and bootstraps the schema.
func NewStore(cfg types.StoreConfig) (*Store, error) {
	dataDir := cfg.DataDir
	if dataDir == "" {
		dataDir = "."
	}
	dbPath := cfg.DBPath
	if dbPath == "" {
		dbPath = filepath.Join(dataDir, dbFile)
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening database %s: %w", dbPath, err)
	}

	s := &Store{db: db, dataDir: dataDir}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// All columns are TEXT: the extraction engine preserves source values
// byte-for-byte and the store keeps that contract. SQLite compares ISO-style
// date strings correctly, and numeric analysis casts at query time.
func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS health_records (
			type TEXT NOT NULL,
			value TEXT NOT NULL,
			unit TEXT,
			source_name TEXT,
			source_version TEXT,
			start_date TEXT NOT NULL,
			end_date TEXT NOT NULL,
			creation_date TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_health_records_type_start
			ON health_records(type, start_date)`,
		`CREATE TABLE IF NOT EXISTS workouts (
			workout_type TEXT NOT NULL,
			duration TEXT,
			duration_unit TEXT,
			total_distance TEXT,
			total_distance_unit TEXT,
			total_energy_burned TEXT,
			total_energy_burned_unit TEXT,
			source_name TEXT,
			start_date TEXT NOT NULL,
			end_date TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_workouts_start ON workouts(start_date)`,
		`CREATE TABLE IF NOT EXISTS activity_summary (
			date TEXT NOT NULL,
			active_energy_burned TEXT,
			active_energy_burned_goal TEXT,
			apple_exercise_time TEXT,
			apple_exercise_time_goal TEXT,
			apple_stand_hours TEXT,
			apple_stand_hours_goal TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_activity_summary_date
			ON activity_summary(date)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// LoadSummary holds counts from a CSV load run.
type LoadSummary struct {
	// Loaded is rows inserted per family.
	Loaded map[types.Family]int

	// Files lists the CSV files that were loaded.
	Files []string
}

// Total returns the number of rows loaded across all families.
func (s LoadSummary) Total() int {
	total := 0
	for _, n := range s.Loaded {
		total += n
	}
	return total
}

// tableName returns the table a family's rows load into.
func tableName(f types.Family) string {
	return strings.TrimSuffix(f.OutputFile(), ".csv")
}

// Load reads whichever family CSVs exist in the data directory and inserts
// their rows, replacing each loaded table's previous contents so the store
// mirrors the latest extraction. Missing files are skipped; a present file
// with a wrong header aborts with the file named.
func (s *Store) Load(ctx context.Context, w io.Writer) (LoadSummary, error) {
	summary := LoadSummary{Loaded: make(map[types.Family]int)}

	for _, f := range types.AllFamilies() {
		path := filepath.Join(s.dataDir, f.OutputFile())
		if _, err := os.Stat(path); os.IsNotExist(err) {
			fmt.Fprintf(w, "missing %s (skipped)\n", f.OutputFile())
			continue
		}

		n, err := s.loadFamily(ctx, f, path)
		if err != nil {
			return summary, err
		}

		summary.Loaded[f] = n
		summary.Files = append(summary.Files, f.OutputFile())
		fmt.Fprintf(w, "loaded  %s (%d rows)\n", f.OutputFile(), n)
	}

	fmt.Fprintf(w, "\nloaded %d rows total\n", summary.Total())
	return summary, nil
}

func (s *Store) loadFamily(ctx context.Context, f types.Family, path string) (int, error) {
	file, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("opening %s: %w", path, err)
	}
	defer file.Close()

	columns := export.Columns(f)
	r := csv.NewReader(file)
	r.FieldsPerRecord = len(columns)

	header, err := r.Read()
	if err != nil {
		return 0, fmt.Errorf("reading header of %s: %w", path, err)
	}
	for i, col := range columns {
		if header[i] != col {
			return 0, fmt.Errorf("unexpected header in %s: column %d is %q, want %q",
				path, i, header[i], col)
		}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	table := tableName(f)
	if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
		return 0, fmt.Errorf("clearing %s: %w", table, err)
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(columns)), ",")
	stmt, err := tx.PrepareContext(ctx, fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s)",
		table, strings.Join(columns, ", "), placeholders,
	))
	if err != nil {
		return 0, fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	inserted := 0
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return 0, fmt.Errorf("reading %s row %d: %w", path, inserted+2, err)
		}

		args := make([]any, len(row))
		for i, v := range row {
			args[i] = v
		}
		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			return 0, fmt.Errorf("inserting into %s: %w", table, err)
		}
		inserted++
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing %s load: %w", table, err)
	}
	return inserted, nil
}
