// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/healthkit-etl/internal/store"
	"github.com/pdiddy/healthkit-etl/pkg/types"
)

var storeCmd = &cobra.Command{
	Use:   "store",
	Short: "Manage the SQLite analysis database (load, summary)",
	Long: `Store maintains a local SQLite database built from the extracted CSV
files. Use subcommands to load the CSVs or summarize what is loaded.`,
}

// --- load subcommand ---

var storeLoadCmd = &cobra.Command{
	Use:   "load",
	Short: "Load extracted CSV files into the analysis database",
	Long: `Load reads health_records.csv, workouts.csv, and activity_summary.csv
from the data directory and inserts them into SQLite, replacing each
loaded table's previous contents. Missing files are skipped.`,
	RunE: runStoreLoad,
}

func runStoreLoad(cmd *cobra.Command, args []string) error {
	s, err := store.NewStore(storeConfig(cmd))
	if err != nil {
		return err
	}
	defer s.Close()

	_, err = s.Load(context.Background(), os.Stdout)
	return err
}

// --- summary subcommand ---

var storeSummaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Report row counts and top record types from the database",
	RunE:  runStoreSummary,
}

func runStoreSummary(cmd *cobra.Command, args []string) error {
	limit, _ := cmd.Flags().GetInt("limit")

	s, err := store.NewStore(storeConfig(cmd))
	if err != nil {
		return err
	}
	defer s.Close()

	report, err := s.SummaryReport(context.Background(), limit)
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}

	fmt.Printf("health_records:   %d\n", report.Records)
	fmt.Printf("workouts:         %d\n", report.Workouts)
	fmt.Printf("activity_summary: %d\n", report.Activity)

	if len(report.TopTypes) > 0 {
		fmt.Println("\ntop record types:")
		for _, tc := range report.TopTypes {
			fmt.Printf("  %-60s %d\n", tc.Type, tc.Rows)
		}
	}
	return nil
}

// --- shared helpers ---

func storeConfig(cmd *cobra.Command) types.StoreConfig {
	dataDir, _ := cmd.Flags().GetString("data-dir")
	if dataDir == "" {
		dataDir = viper.GetString("store.data_dir")
	}
	dbPath, _ := cmd.Flags().GetString("db")
	if dbPath == "" {
		dbPath = viper.GetString("store.db_path")
	}

	return types.StoreConfig{
		DataDir: dataDir,
		DBPath:  dbPath,
	}
}

func init() {
	// Shared flags on the parent command, inherited by subcommands.
	storeCmd.PersistentFlags().String("data-dir", "", "directory containing the extracted CSV files (default: current directory)")
	storeCmd.PersistentFlags().String("db", "", "SQLite database path (default: data-dir/health.db)")

	storeSummaryCmd.Flags().Int("limit", 10, "maximum record types to list")
	storeSummaryCmd.Flags().Bool("json", false, "output the report as JSON")

	storeCmd.AddCommand(storeLoadCmd)
	storeCmd.AddCommand(storeSummaryCmd)

	rootCmd.AddCommand(storeCmd)
}
