package models

import "time"

// ScanResults describes one completed directory scan
type ScanResults struct {
	StartTime  time.Time     `json:"start_time" yaml:"start_time"`
	EndTime    time.Time     `json:"end_time" yaml:"end_time"`
	Duration   time.Duration `json:"duration" yaml:"duration"`
	ScanPath   string        `json:"scan_path" yaml:"scan_path"`
	TotalFiles int           `json:"total_files" yaml:"total_files"` // regular files visited
	TotalDirs  int           `json:"total_dirs" yaml:"total_dirs"`
	Skipped    int           `json:"skipped_files" yaml:"skipped_files"` // files rejected by the extension filter
	TotalSize  int64         `json:"total_size" yaml:"total_size"`       // bytes across matched files

	// Files is the canonical list in enumeration order
	Files []FileEntry `json:"files" yaml:"files"`

	Version string `json:"version" yaml:"version"`
}

// Matched returns the number of printable files found
func (r *ScanResults) Matched() int {
	return len(r.Files)
}

// OutcomeStatus is the result of a single print submission
type OutcomeStatus string

const (
	OutcomeSuccess OutcomeStatus = "success"
	OutcomeFailure OutcomeStatus = "failure"
)

// PrintOutcome records what happened to one submitted file
type PrintOutcome struct {
	File   FileEntry     `json:"file" yaml:"file"`
	Status OutcomeStatus `json:"status" yaml:"status"`
	Reason string        `json:"reason,omitempty" yaml:"reason,omitempty"`
	Method string        `json:"method" yaml:"method"` // "default" or a renderer name
}

// Succeeded reports whether the submission was accepted
func (o PrintOutcome) Succeeded() bool {
	return o.Status == OutcomeSuccess
}

// BatchOutcome aggregates the outcomes of one batch print
type BatchOutcome struct {
	BatchID   string         `json:"batch_id" yaml:"batch_id"`
	StartTime time.Time      `json:"start_time" yaml:"start_time"`
	EndTime   time.Time      `json:"end_time" yaml:"end_time"`
	Duration  time.Duration  `json:"duration" yaml:"duration"`
	Attempted int            `json:"attempted" yaml:"attempted"`
	Succeeded int            `json:"succeeded" yaml:"succeeded"`
	Failed    int            `json:"failed" yaml:"failed"`
	Items     []PrintOutcome `json:"items" yaml:"items"`
	DryRun    bool           `json:"dry_run,omitempty" yaml:"dry_run,omitempty"`
}

// Add records an outcome and updates the counters
func (b *BatchOutcome) Add(o PrintOutcome) {
	b.Items = append(b.Items, o)
	b.Attempted++
	if o.Succeeded() {
		b.Succeeded++
	} else {
		b.Failed++
	}
}

// LastFailure returns the most recent failed outcome, if any
func (b *BatchOutcome) LastFailure() (PrintOutcome, bool) {
	for i := len(b.Items) - 1; i >= 0; i-- {
		if !b.Items[i].Succeeded() {
			return b.Items[i], true
		}
	}
	return PrintOutcome{}, false
}
