package types

// ExtractionConfig holds settings for one extraction run.
type ExtractionConfig struct {
	// InputPath is the HealthKit export XML file.
	InputPath string `json:"input_path" yaml:"input_path"`

	// OutputDir is the directory CSV files are written to (default ".").
	OutputDir string `json:"output_dir" yaml:"output_dir"`

	// Families selects which record families to extract. Empty means all.
	Families []Family `json:"families" yaml:"families"`

	// ProgressInterval is how many processed entries between progress
	// lines (default 100000).
	ProgressInterval int `json:"progress_interval" yaml:"progress_interval"`
}

// StoreConfig holds settings for the SQLite analysis store.
type StoreConfig struct {
	// DataDir is the directory containing the extracted CSV files.
	DataDir string `json:"data_dir" yaml:"data_dir"`

	// DBPath is the SQLite database file (default DataDir/health.db).
	DBPath string `json:"db_path" yaml:"db_path"`
}

// PipelineConfig groups the stage configurations for a config file.
type PipelineConfig struct {
	Extraction ExtractionConfig `json:"extract" yaml:"extract"`
	Store      StoreConfig      `json:"store" yaml:"store"`
}
