package license

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofrs/flock"
	"go.uber.org/zap"
)

// stampLayout is the on-disk date format
const stampLayout = "2006-01-02"

// Status is the result of checking the date stamp
type Status string

const (
	StatusActive   Status = "active"
	StatusExpired  Status = "expired"
	StatusRollback Status = "clock_rollback"
)

// StampProvider authorizes use for a number of months after first use.
// A clock earlier than the recorded first-use date is treated as tampering.
type StampProvider struct {
	path        string
	validMonths int
	logger      *zap.Logger
	now         func() time.Time
}

// NewStampProvider creates a provider backed by the stamp file at path
func NewStampProvider(path string, validMonths int, logger *zap.Logger) *StampProvider {
	return &StampProvider{
		path:        path,
		validMonths: validMonths,
		logger:      logger,
		now:         time.Now,
	}
}

// DefaultStampPath returns the stamp location under the user config directory
func DefaultStampPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate config directory: %w", err)
	}
	return filepath.Join(dir, "printhound", "first-use"), nil
}

// Authorized implements AuthorizationProvider. Errors deny access.
func (p *StampProvider) Authorized() bool {
	status, expires, err := p.Check()
	if err != nil {
		p.logger.Error("License check failed", zap.String("stamp", p.path), zap.Error(err))
		return false
	}
	p.logger.Info("License checked",
		zap.String("status", string(status)),
		zap.Time("expires", expires))
	return status == StatusActive
}

// Check reads the stamp, recording today as first use when absent, and
// returns the status together with the expiry date
func (p *StampProvider) Check() (Status, time.Time, error) {
	if err := os.MkdirAll(filepath.Dir(p.path), 0755); err != nil {
		return "", time.Time{}, fmt.Errorf("failed to create directory for %s: %w", p.path, err)
	}

	lock := flock.New(p.path + ".lock")
	if err := lock.Lock(); err != nil {
		return "", time.Time{}, fmt.Errorf("failed to acquire lock on %s: %w", p.path, err)
	}
	defer lock.Unlock()

	today := truncateDay(p.now())

	first, err := p.readStamp()
	if os.IsNotExist(err) {
		first = today
		if err := p.writeStamp(first); err != nil {
			return "", time.Time{}, err
		}
		p.logger.Info("Recorded first use", zap.String("stamp", p.path), zap.Time("date", first))
	} else if err != nil {
		return "", time.Time{}, err
	}

	expires := first.AddDate(0, p.validMonths, 0)
	switch {
	case today.Before(first):
		return StatusRollback, expires, nil
	case !today.Before(expires):
		return StatusExpired, expires, nil
	default:
		return StatusActive, expires, nil
	}
}

func (p *StampProvider) readStamp() (time.Time, error) {
	data, err := os.ReadFile(p.path)
	if err != nil {
		return time.Time{}, err
	}
	first, err := time.ParseInLocation(stampLayout, strings.TrimSpace(string(data)), time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date stamp in %s: %w", p.path, err)
	}
	return first, nil
}

// writeStamp writes the date atomically using a temp file and rename
func (p *StampProvider) writeStamp(date time.Time) error {
	tmp, err := os.CreateTemp(filepath.Dir(p.path), ".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.WriteString(date.Format(stampLayout) + "\n"); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write date stamp: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write date stamp: %w", err)
	}
	if err := os.Rename(tmpPath, p.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write date stamp: %w", err)
	}
	return nil
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}
