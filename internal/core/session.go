package core

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/IvanShishkin/printhound/internal/config"
	"github.com/IvanShishkin/printhound/internal/filesystem"
	"github.com/IvanShishkin/printhound/internal/printer"
	"github.com/IvanShishkin/printhound/internal/search"
	"github.com/IvanShishkin/printhound/internal/selection"
	"github.com/IvanShishkin/printhound/pkg/models"
	"go.uber.org/zap"
)

// Version is reported in scan results
const Version = "0.1.0"

// ErrNotDisplayed is returned when toggling a file that is not in the displayed list
var ErrNotDisplayed = errors.New("file is not in the displayed list")

// ProgressCallback is called to report operation progress
type ProgressCallback func(phase string, current, total int, message string)

// Progress phases reported by the session in addition to the printer phases
const (
	PhaseScanning     = "scanning"
	PhaseScanComplete = "scan_complete"
	PhaseScanFailed   = "scan_failed"
)

// Session owns the scanned, displayed and selected file lists.
// Operations run one at a time; the mutex only protects readers such as a
// UI repainting while a scan is in flight.
type Session struct {
	config           *config.Config
	logger           *zap.Logger
	walker           *filesystem.Walker
	dispatcher       *printer.Dispatcher
	presenter        Presenter
	progressCallback ProgressCallback

	mu        sync.Mutex
	canonical []models.FileEntry
	displayed []models.FileEntry
	selected  *selection.Set
	keywords  string
}

// NewSession creates a session that prints through submitter
func NewSession(cfg *config.Config, submitter printer.Submitter, logger *zap.Logger) *Session {
	s := &Session{
		config:     cfg,
		logger:     logger,
		walker:     filesystem.NewWalker(cfg, logger),
		dispatcher: printer.NewDispatcher(submitter, cfg.GetPrintDelay(), logger),
		presenter:  NopPresenter{},
		selected:   selection.New(),
	}
	s.dispatcher.SetProgressCallback(s.onPrintProgress)
	return s
}

// SetPresenter sets the sink for list, status and selection events
func (s *Session) SetPresenter(p Presenter) {
	if p == nil {
		p = NopPresenter{}
	}
	s.presenter = p
}

// SetProgressCallback sets the progress callback function
func (s *Session) SetProgressCallback(cb ProgressCallback) {
	s.progressCallback = cb
}

// SetSleeper replaces the clock used between print submissions
func (s *Session) SetSleeper(sl printer.Sleeper) {
	s.dispatcher.SetSleeper(sl)
}

// SetDryRun marks batch outcomes as dry runs
func (s *Session) SetDryRun(dryRun bool) {
	s.dispatcher.SetDryRun(dryRun)
}

// reportProgress calls the progress callback if set
func (s *Session) reportProgress(phase string, current, total int, message string) {
	if s.progressCallback != nil {
		s.progressCallback(phase, current, total, message)
	}
}

// Scan replaces the canonical list with the printable files under root.
// Invalid or missing roots are rejected without touching existing state.
// A traversal error discards everything found so far.
func (s *Session) Scan(ctx context.Context, root string) (*models.ScanResults, error) {
	root = strings.TrimSpace(root)
	if err := filesystem.CheckDirectory(root); err != nil {
		s.logger.Warn("Scan rejected", zap.String("path", root), zap.Error(err))
		s.presenter.StatusChanged(statusForError(err))
		return nil, err
	}

	s.logger.Info("Starting scan", zap.String("path", root))
	s.presenter.StatusChanged("Scanning...")
	s.reportProgress(PhaseScanning, 0, 0, "Scanning...")

	results := &models.ScanResults{
		StartTime: time.Now(),
		ScanPath:  root,
		Version:   Version,
	}

	every := s.config.ProgressEvery
	if every <= 0 {
		every = 10
	}

	var files []models.FileEntry
	err := s.walker.Walk(ctx, root, func(info *models.FileInfo) error {
		if info.IsDir {
			if info.Path != root {
				results.TotalDirs++
			}
			return nil
		}

		results.TotalFiles++
		if !info.IsRegular {
			s.logger.Debug("Skipping non-regular file",
				zap.String("path", info.Path),
				zap.Bool("symlink", info.IsSymlink))
			results.Skipped++
			return nil
		}
		if !s.walker.IsPrintable(info.Path) {
			results.Skipped++
			return nil
		}

		entry := filesystem.NewFileEntry(info)
		files = append(files, entry)
		results.TotalSize += entry.Size

		if len(files)%every == 0 {
			s.reportProgress(PhaseScanning, len(files), 0, entry.Path)
		}
		return nil
	})

	if err != nil {
		var scanErr *models.ScanIOError
		if !errors.As(err, &scanErr) {
			err = &models.ScanIOError{Root: root, Err: err}
		}
		s.logger.Error("Scan failed", zap.String("path", root), zap.Error(err))

		s.mu.Lock()
		s.canonical = nil
		s.displayed = nil
		s.keywords = ""
		s.selected.Clear()
		s.mu.Unlock()

		s.presenter.ListChanged(nil)
		s.presenter.SelectionChanged(0)
		s.presenter.StatusChanged(fmt.Sprintf("Scan error: %v", err))
		s.reportProgress(PhaseScanFailed, 0, 0, err.Error())
		return nil, err
	}

	results.Files = files
	results.EndTime = time.Now()
	results.Duration = results.EndTime.Sub(results.StartTime)

	s.mu.Lock()
	s.canonical = files
	s.displayed = append([]models.FileEntry(nil), files...)
	s.keywords = ""
	s.selected.Narrow(s.displayed)
	displayed, count := s.displayed, s.selected.Count()
	s.mu.Unlock()

	s.logger.Info("Scan completed",
		zap.String("path", root),
		zap.Int("printable_files", len(files)),
		zap.Int("skipped_files", results.Skipped),
		zap.Duration("duration", results.Duration))

	status := fmt.Sprintf("Scan complete. Found %d printable files.", len(files))
	s.presenter.ListChanged(displayed)
	s.presenter.SelectionChanged(count)
	s.presenter.StatusChanged(status)
	s.reportProgress(PhaseScanComplete, len(files), len(files), status)

	return results, nil
}

// Search replaces the displayed list with the canonical entries matching
// keywords. Selection of entries that disappear is dropped.
func (s *Session) Search(keywords string) ([]models.FileEntry, error) {
	s.mu.Lock()
	if len(s.canonical) == 0 {
		s.mu.Unlock()
		s.presenter.StatusChanged("Scan a directory first.")
		return nil, models.ErrNoScanYet
	}

	mode := s.config.GetMatchMode()
	matcher := search.NewMatcher(keywords, mode)
	s.displayed = matcher.Filter(s.canonical)
	s.keywords = strings.TrimSpace(keywords)
	s.selected.Narrow(s.displayed)
	displayed, count := s.copyDisplayed(), s.selected.Count()
	s.mu.Unlock()

	s.logger.Debug("Search applied",
		zap.Strings("keywords", matcher.Keywords()),
		zap.String("mode", mode.String()),
		zap.Int("matches", len(displayed)))

	var status string
	if matcher.IsEmpty() {
		status = "Showing all files."
	} else {
		status = fmt.Sprintf("Search complete, %d files match.", len(displayed))
	}
	s.presenter.ListChanged(displayed)
	s.presenter.SelectionChanged(count)
	s.presenter.StatusChanged(status)

	return displayed, nil
}

// ToggleAll selects every displayed file, or clears the selection when all
// displayed files are already selected. It returns the new selection count.
func (s *Session) ToggleAll() int {
	s.mu.Lock()
	s.selected.ToggleAll(s.displayed)
	count := s.selected.Count()
	s.mu.Unlock()

	s.presenter.SelectionChanged(count)
	return count
}

// ToggleOne flips the selection of the displayed file with path and reports
// whether it is now selected
func (s *Session) ToggleOne(path string) (bool, error) {
	s.mu.Lock()
	entry, ok := s.findDisplayed(path)
	if !ok {
		s.mu.Unlock()
		return false, fmt.Errorf("%w: %s", ErrNotDisplayed, path)
	}
	selected := s.selected.ToggleOne(entry)
	count := s.selected.Count()
	s.mu.Unlock()

	s.presenter.SelectionChanged(count)
	return selected, nil
}

// IsSelected reports whether path is selected
func (s *Session) IsSelected(path string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selected.Contains(path)
}

// SelectedCount returns the number of selected files
func (s *Session) SelectedCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selected.Count()
}

// Selected returns the selected files in displayed order
func (s *Session) Selected() []models.FileEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selected.Items(s.displayed)
}

// Displayed returns a copy of the displayed list
func (s *Session) Displayed() []models.FileEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.copyDisplayed()
}

// Canonical returns a copy of the canonical list
func (s *Session) Canonical() []models.FileEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.FileEntry(nil), s.canonical...)
}

// Keywords returns the keywords of the last search
func (s *Session) Keywords() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.keywords
}

// PrintSelected submits every selected file in displayed order
func (s *Session) PrintSelected(ctx context.Context) (*models.BatchOutcome, error) {
	items := s.Selected()
	if len(items) == 0 {
		s.presenter.StatusChanged("Select files to print first.")
		return nil, models.ErrNothingSelected
	}

	s.presenter.StatusChanged("Submitting print jobs...")
	outcome, err := s.dispatcher.PrintBatch(ctx, items)
	if outcome != nil {
		s.presenter.StatusChanged(fmt.Sprintf(
			"Print jobs submitted. Succeeded: %d, failed: %d. Check the printer queue.",
			outcome.Succeeded, outcome.Failed))
	}
	return outcome, err
}

// onPrintProgress forwards dispatcher progress to the presenter and callback
func (s *Session) onPrintProgress(phase string, current, total int, message string) {
	if phase == printer.PhasePrintFailed {
		s.presenter.StatusChanged(message)
	}
	s.reportProgress(phase, current, total, message)
}

func (s *Session) findDisplayed(path string) (models.FileEntry, bool) {
	for _, e := range s.displayed {
		if e.Path == path {
			return e, true
		}
	}
	return models.FileEntry{}, false
}

func (s *Session) copyDisplayed() []models.FileEntry {
	return append([]models.FileEntry(nil), s.displayed...)
}

// statusForError maps validation errors to status lines
func statusForError(err error) string {
	switch {
	case errors.Is(err, models.ErrInvalidInput):
		return "Enter a directory path."
	case errors.Is(err, models.ErrNotFound):
		return "Directory does not exist."
	default:
		return fmt.Sprintf("Scan error: %v", err)
	}
}
