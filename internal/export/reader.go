// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package export implements the HealthKit extraction engine: a single
// streaming pass that reads an export XML file, classifies each entry into
// one of three record families, and writes each family to its own CSV.
package export

import (
	"bufio"
	"encoding/xml"
	"fmt"
	"io"
	"os"
)

// Entry is one raw element from the export before classification: its tag
// name and attribute bag. Attribute order is not preserved; HealthKit
// attributes are unique per element.
type Entry struct {
	Tag   string
	Attrs map[string]string
}

// Reader streams entries from an export file in document order without
// materializing the document tree, so memory use stays bounded regardless
// of file size. A Reader is not restartable; open a fresh one to re-scan.
type Reader struct {
	path string
	f    *os.File
	dec  *xml.Decoder
}

// OpenReader opens the export file at path for streaming.
func OpenReader(path string) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening export %s: %w", path, err)
	}
	return &Reader{
		path: path,
		f:    f,
		dec:  xml.NewDecoder(bufio.NewReaderSize(f, 1<<20)),
	}, nil
}

// Next returns the next element entry, or io.EOF when the document ends.
// For elements of a recognized family the nested children (MetadataEntry,
// WorkoutEvent, WorkoutStatistics) are consumed and discarded; children of
// unrecognized container elements such as Correlation remain visible, so
// records nested inside them are still yielded.
//
// A syntax error at any point returns a *MalformedInputError; the Reader is
// unusable afterwards.
func (r *Reader) Next() (*Entry, error) {
	for {
		tok, err := r.dec.Token()
		if err != nil {
			if err == io.EOF {
				return nil, io.EOF
			}
			return nil, &MalformedInputError{Path: r.path, Err: err}
		}

		start, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}

		entry := &Entry{
			Tag:   start.Name.Local,
			Attrs: make(map[string]string, len(start.Attr)),
		}
		for _, attr := range start.Attr {
			entry.Attrs[attr.Name.Local] = attr.Value
		}

		if _, matched := classify(entry.Tag); matched {
			if err := r.dec.Skip(); err != nil {
				return nil, &MalformedInputError{Path: r.path, Err: err}
			}
		}

		return entry, nil
	}
}

// Close releases the underlying file.
func (r *Reader) Close() error {
	return r.f.Close()
}
