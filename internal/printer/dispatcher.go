package printer

import (
	"context"
	"fmt"
	"time"

	"github.com/IvanShishkin/printhound/pkg/models"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ProgressCallback is called to report batch progress
type ProgressCallback func(phase string, current, total int, message string)

// Progress phases reported by the dispatcher
const (
	PhasePrinting      = "printing"
	PhasePrintFailed   = "print_failed"
	PhasePrintComplete = "print_complete"
)

// Dispatcher submits a batch of files one at a time with a fixed pause
// after every submission
type Dispatcher struct {
	submitter        Submitter
	sleeper          Sleeper
	delay            time.Duration
	logger           *zap.Logger
	progressCallback ProgressCallback
	dryRun           bool
}

// NewDispatcher creates a dispatcher that waits delay after each submission
func NewDispatcher(submitter Submitter, delay time.Duration, logger *zap.Logger) *Dispatcher {
	return &Dispatcher{
		submitter: submitter,
		sleeper:   ClockSleeper{},
		delay:     delay,
		logger:    logger,
	}
}

// SetSleeper replaces the clock used for the pause between submissions
func (d *Dispatcher) SetSleeper(s Sleeper) {
	d.sleeper = s
}

// SetProgressCallback sets the progress callback function
func (d *Dispatcher) SetProgressCallback(cb ProgressCallback) {
	d.progressCallback = cb
}

// SetDryRun marks outcomes produced by this dispatcher as a dry run
func (d *Dispatcher) SetDryRun(dryRun bool) {
	d.dryRun = dryRun
}

// reportProgress calls the progress callback if set
func (d *Dispatcher) reportProgress(phase string, current, total int, message string) {
	if d.progressCallback != nil {
		d.progressCallback(phase, current, total, message)
	}
}

// PrintBatch submits every entry in order. Submission failures are counted
// and reported but never stop the batch. Only context cancellation ends it
// early, in which case the partial outcome is returned with the context error.
func (d *Dispatcher) PrintBatch(ctx context.Context, entries []models.FileEntry) (*models.BatchOutcome, error) {
	if len(entries) == 0 {
		return nil, models.ErrNothingSelected
	}

	outcome := &models.BatchOutcome{
		BatchID:   uuid.NewString(),
		StartTime: time.Now(),
		DryRun:    d.dryRun,
	}
	total := len(entries)

	d.logger.Info("Starting print batch",
		zap.String("batch_id", outcome.BatchID),
		zap.Int("files", total),
		zap.Duration("delay", d.delay))
	d.reportProgress(PhasePrinting, 0, total, "Submitting print jobs...")

	var err error
	for i, entry := range entries {
		if err = ctx.Err(); err != nil {
			break
		}

		item := models.PrintOutcome{
			File:   entry,
			Status: models.OutcomeSuccess,
			Method: d.method(entry),
		}

		if submitErr := d.submitter.Submit(ctx, entry); submitErr != nil {
			failure := &models.SubmissionError{Path: entry.Path, Err: submitErr}
			item.Status = models.OutcomeFailure
			item.Reason = submitErr.Error()
			d.logger.Warn("Print submission failed",
				zap.String("batch_id", outcome.BatchID),
				zap.String("path", entry.Path),
				zap.Error(submitErr))
			d.reportProgress(PhasePrintFailed, i+1, total, failure.Error())
		} else {
			d.logger.Debug("Print submission accepted",
				zap.String("path", entry.Path),
				zap.String("method", item.Method))
			d.reportProgress(PhasePrinting, i+1, total, entry.Path)
		}
		outcome.Add(item)

		if err = d.sleeper.Sleep(ctx, d.delay); err != nil {
			break
		}
	}

	outcome.EndTime = time.Now()
	outcome.Duration = outcome.EndTime.Sub(outcome.StartTime)

	d.logger.Info("Print batch finished",
		zap.String("batch_id", outcome.BatchID),
		zap.Int("succeeded", outcome.Succeeded),
		zap.Int("failed", outcome.Failed),
		zap.Duration("duration", outcome.Duration))
	d.reportProgress(PhasePrintComplete, outcome.Attempted, total,
		fmt.Sprintf("Print jobs submitted. Succeeded: %d, failed: %d", outcome.Succeeded, outcome.Failed))

	if err != nil {
		return outcome, fmt.Errorf("print batch interrupted after %d of %d files: %w", outcome.Attempted, total, err)
	}
	return outcome, nil
}

func (d *Dispatcher) method(entry models.FileEntry) string {
	if namer, ok := d.submitter.(MethodNamer); ok {
		return namer.Method(entry)
	}
	return MethodDefault
}
