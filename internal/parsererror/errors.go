// Package parsererror defines the typed errors surfaced by the import
// pipeline. Field-level decode problems never become errors (they degrade
// to zero values); these types cover file-level and persistence failures.
package parsererror

import "fmt"

// UnrecognizedLayoutError means no header signature matched within the
// scanned window. The import must be aborted and the user told the layout
// is not recognized; a silent empty result is not acceptable.
type UnrecognizedLayoutError struct {
	FilePath    string
	RowsScanned int
}

func (e *UnrecognizedLayoutError) Error() string {
	return fmt.Sprintf("layout not recognized in %q after scanning %d rows", e.FilePath, e.RowsScanned)
}

// EmptyImportError means the layout was recognized but no valid record
// survived parsing.
type EmptyImportError struct {
	FilePath string
	Layout   string
}

func (e *EmptyImportError) Error() string {
	return fmt.Sprintf("no valid records found in %q (layout %s)", e.FilePath, e.Layout)
}

// ValidationError reports an input file that failed a pre-parse check.
type ValidationError struct {
	FilePath string
	Reason   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed for %s: %s", e.FilePath, e.Reason)
}

// BatchWriteError reports a persistence failure partway through a batched
// import. Committed counts the records already durably written; they are
// not rolled back.
type BatchWriteError struct {
	Committed int
	Batch     int
	Err       error
}

func (e *BatchWriteError) Error() string {
	return fmt.Sprintf("batch %d failed after %d records committed: %v", e.Batch, e.Committed, e.Err)
}

func (e *BatchWriteError) Unwrap() error {
	return e.Err
}
