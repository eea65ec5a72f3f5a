// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the healthkit-etl CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the healthkit-etl CLI.
var rootCmd = &cobra.Command{
	Use:   "healthkit-etl",
	Short: "Convert Apple HealthKit exports into analyzable tables",
	Long: `healthkit-etl streams an Apple Health export.xml and flattens its three
record families (health records, workouts, daily activity summaries) into
per-family CSV files, then optionally loads them into a local SQLite
database for analysis.

The export is processed in a single pass with bounded memory, so
multi-gigabyte exports work on ordinary machines.`,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./healthkit-etl.yaml or ~/.config/healthkit-etl/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("healthkit-etl")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "healthkit-etl"))
		}
	}

	viper.SetEnvPrefix("HEALTHKIT_ETL")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
