// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import "fmt"

// MalformedInputError reports that the export file could not be parsed as
// well-formed XML (truncated file, encoding error). Fatal: the run aborts
// and any partial output from it should be discarded.
type MalformedInputError struct {
	Path string
	Err  error
}

func (e *MalformedInputError) Error() string {
	return fmt.Sprintf("malformed export %s: %v", e.Path, e.Err)
}

func (e *MalformedInputError) Unwrap() error { return e.Err }

// SchemaMismatchError reports an entry that matched a family but lacks a
// required attribute. Local: the coordinator skips the entry, counts it,
// and continues the run.
type SchemaMismatchError struct {
	Tag  string
	Attr string
}

func (e *SchemaMismatchError) Error() string {
	return fmt.Sprintf("%s entry missing required attribute %s", e.Tag, e.Attr)
}

// DestinationWriteError reports that an output destination could not be
// created or written. Fatal.
type DestinationWriteError struct {
	Path string
	Err  error
}

func (e *DestinationWriteError) Error() string {
	return fmt.Sprintf("writing destination %s: %v", e.Path, e.Err)
}

func (e *DestinationWriteError) Unwrap() error { return e.Err }
