package core

import "github.com/IvanShishkin/printhound/pkg/models"

// Presenter receives the events a session pushes to the user interface.
// Calls are made synchronously from the goroutine running the operation.
type Presenter interface {
	// ListChanged delivers the new displayed list
	ListChanged(displayed []models.FileEntry)
	// StatusChanged delivers a human-readable status line
	StatusChanged(status string)
	// SelectionChanged delivers the number of selected files
	SelectionChanged(count int)
}

// NopPresenter discards all events
type NopPresenter struct{}

func (NopPresenter) ListChanged([]models.FileEntry) {}
func (NopPresenter) StatusChanged(string)           {}
func (NopPresenter) SelectionChanged(int)           {}

// RecordingPresenter keeps every event it receives
type RecordingPresenter struct {
	Lists      [][]models.FileEntry
	Statuses   []string
	Selections []int
}

func (r *RecordingPresenter) ListChanged(displayed []models.FileEntry) {
	r.Lists = append(r.Lists, displayed)
}

func (r *RecordingPresenter) StatusChanged(status string) {
	r.Statuses = append(r.Statuses, status)
}

func (r *RecordingPresenter) SelectionChanged(count int) {
	r.Selections = append(r.Selections, count)
}

// LastStatus returns the most recent status, or "" when none was pushed
func (r *RecordingPresenter) LastStatus() string {
	if len(r.Statuses) == 0 {
		return ""
	}
	return r.Statuses[len(r.Statuses)-1]
}
