package models

import (
	"errors"
	"fmt"
	"path/filepath"
)

// Validation errors. These block the requested operation and leave state untouched.
var (
	ErrInvalidInput    = errors.New("directory path is empty")
	ErrNotFound        = errors.New("directory does not exist")
	ErrNoScanYet       = errors.New("no files scanned yet, scan a directory first")
	ErrNothingSelected = errors.New("no files selected for printing")
	ErrUnauthorized    = errors.New("not authorized")
)

// ScanIOError reports a traversal failure that aborted a scan.
// Partial results are discarded when this is returned.
type ScanIOError struct {
	Root string // Scan root
	Path string // Entry being visited when the error occurred
	Err  error
}

// Error implements the error interface
func (e *ScanIOError) Error() string {
	if e.Path != "" && e.Path != e.Root {
		return fmt.Sprintf("scan of %s failed at %s: %v", e.Root, e.Path, e.Err)
	}
	return fmt.Sprintf("scan of %s failed: %v", e.Root, e.Err)
}

// Unwrap returns the underlying traversal error
func (e *ScanIOError) Unwrap() error {
	return e.Err
}

// SubmissionError reports that a single file could not be handed to the
// print handler. It never aborts a batch.
type SubmissionError struct {
	Path string
	Err  error
}

// Error implements the error interface
func (e *SubmissionError) Error() string {
	return fmt.Sprintf("print failed: %s - %v", filepath.Base(e.Path), e.Err)
}

// Unwrap returns the underlying submit error
func (e *SubmissionError) Unwrap() error {
	return e.Err
}
