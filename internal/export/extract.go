// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/healthkit-etl/pkg/types"
)

const (
	// defaultProgressInterval is how many processed entries between
	// progress lines. Large exports hold tens of millions of records.
	defaultProgressInterval = 100000

	// manifestFile is written to the output directory after a successful
	// run. It carries no timestamps so repeated runs stay byte-identical.
	manifestFile = "extract_manifest.yaml"
)

// Summary holds the outcome of one extraction run.
type Summary struct {
	// Counts is rows written per requested family.
	Counts map[types.Family]int

	// Skipped counts entries that matched a family but failed schema
	// validation.
	Skipped int

	// Files lists the output filenames written, in canonical family order.
	Files []string
}

// Total returns the number of rows written across all families.
func (s Summary) Total() int {
	total := 0
	for _, n := range s.Counts {
		total += n
	}
	return total
}

// ExtractAll runs the full pipeline: stream entries from cfg.InputPath,
// classify each one, and write every schema-valid row of a requested family
// to its CSV in cfg.OutputDir. Progress and per-family result lines go to w.
//
// Entry-level schema mismatches are counted and skipped; a malformed input
// file or an unwritable destination aborts the run with the error. Every
// opened writer is closed on all exit paths, so output files that were
// finished remain valid CSVs even when a later stage fails.
func ExtractAll(ctx context.Context, cfg types.ExtractionConfig, w io.Writer) (Summary, error) {
	families := cfg.Families
	if len(families) == 0 {
		families = types.AllFamilies()
	}
	interval := cfg.ProgressInterval
	if interval <= 0 {
		interval = defaultProgressInterval
	}
	outDir := cfg.OutputDir
	if outDir == "" {
		outDir = "."
	}

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return Summary{}, &DestinationWriteError{Path: outDir, Err: err}
	}

	reader, err := OpenReader(cfg.InputPath)
	if err != nil {
		return Summary{}, err
	}
	defer reader.Close()

	// Open only the requested writers; unrequested families' files are
	// never touched, so a subset run cannot clobber earlier output.
	writers := make(map[types.Family]*familyWriter, len(families))
	closeAll := func() error {
		var first error
		for _, f := range families {
			fw := writers[f]
			if fw == nil {
				continue
			}
			delete(writers, f)
			if err := fw.close(); err != nil && first == nil {
				first = err
			}
		}
		return first
	}
	defer closeAll()

	summary := Summary{Counts: make(map[types.Family]int, len(families))}
	for _, f := range families {
		summary.Counts[f] = 0
		fw, err := openWriter(filepath.Join(outDir, f.OutputFile()), Columns(f))
		if err != nil {
			return Summary{}, err
		}
		writers[f] = fw
	}

	processed := 0
	for {
		select {
		case <-ctx.Done():
			return summary, ctx.Err()
		default:
		}

		entry, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return summary, err
		}

		processed++
		if processed%interval == 0 {
			fmt.Fprintf(w, "  processed %d entries...\n", processed)
		}

		family, ok := classify(entry.Tag)
		if !ok {
			continue
		}
		fw := writers[family]
		if fw == nil {
			continue
		}

		row, err := normalizeRow(entry, family)
		if err != nil {
			var mismatch *SchemaMismatchError
			if errors.As(err, &mismatch) {
				summary.Skipped++
				fmt.Fprintf(w, "  skipped: %v\n", err)
				continue
			}
			return summary, err
		}

		if err := fw.write(row); err != nil {
			return summary, err
		}
		summary.Counts[family]++
	}

	if err := closeAll(); err != nil {
		return summary, err
	}

	for _, f := range families {
		summary.Files = append(summary.Files, f.OutputFile())
		fmt.Fprintf(w, "%-9s %8d rows -> %s\n",
			f, summary.Counts[f], filepath.Join(outDir, f.OutputFile()))
	}
	fmt.Fprintf(w, "\nextracted %d rows, skipped %d\n", summary.Total(), summary.Skipped)

	if err := writeManifest(outDir, cfg.InputPath, summary); err != nil {
		return summary, err
	}
	return summary, nil
}

// normalizeRow dispatches an entry to its family's normalizer and returns
// the row values in output column order.
func normalizeRow(e *Entry, f types.Family) ([]string, error) {
	switch f {
	case types.FamilyRecords:
		rec, err := normalizeRecord(e)
		if err != nil {
			return nil, err
		}
		return rec.Row(), nil
	case types.FamilyWorkouts:
		wk, err := normalizeWorkout(e)
		if err != nil {
			return nil, err
		}
		return wk.Row(), nil
	case types.FamilyActivity:
		act, err := normalizeActivitySummary(e)
		if err != nil {
			return nil, err
		}
		return act.Row(), nil
	}
	return nil, fmt.Errorf("unknown family %q", f)
}

// manifest is the YAML document describing a completed run.
type manifest struct {
	Input     string         `yaml:"input"`
	RowCounts map[string]int `yaml:"row_counts"`
	Skipped   int            `yaml:"skipped"`
	Files     []string       `yaml:"files"`
}

// writeManifest records the run outcome next to the CSVs.
func writeManifest(outDir, input string, s Summary) error {
	m := manifest{
		Input:     input,
		RowCounts: make(map[string]int, len(s.Counts)),
		Skipped:   s.Skipped,
		Files:     s.Files,
	}
	for f, n := range s.Counts {
		m.RowCounts[string(f)] = n
	}

	data, err := yaml.Marshal(m)
	if err != nil {
		return fmt.Errorf("marshaling manifest: %w", err)
	}

	path := filepath.Join(outDir, manifestFile)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return &DestinationWriteError{Path: path, Err: err}
	}
	return nil
}
