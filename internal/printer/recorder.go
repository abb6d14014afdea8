package printer

import (
	"context"
	"sync"
	"time"

	"github.com/IvanShishkin/printhound/pkg/models"
)

// RecordingSubmitter records submissions instead of printing.
// It backs dry runs and tests; Failures maps a path to the error to return.
type RecordingSubmitter struct {
	Failures map[string]error

	mu        sync.Mutex
	submitted []string
}

// NewRecordingSubmitter creates a recorder that accepts every file
func NewRecordingSubmitter() *RecordingSubmitter {
	return &RecordingSubmitter{Failures: make(map[string]error)}
}

// Submit records entry and returns the configured failure, if any
func (r *RecordingSubmitter) Submit(ctx context.Context, entry models.FileEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.submitted = append(r.submitted, entry.Path)
	return r.Failures[entry.Path]
}

// Method implements MethodNamer
func (r *RecordingSubmitter) Method(entry models.FileEntry) string {
	return "dry-run"
}

// Submitted returns the recorded paths in submission order
func (r *RecordingSubmitter) Submitted() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.submitted...)
}

// RecordingSleeper records requested pauses without waiting
type RecordingSleeper struct {
	mu     sync.Mutex
	Pauses []time.Duration
}

// Sleep records d and returns immediately
func (s *RecordingSleeper) Sleep(ctx context.Context, d time.Duration) error {
	s.mu.Lock()
	s.Pauses = append(s.Pauses, d)
	s.mu.Unlock()
	return ctx.Err()
}
