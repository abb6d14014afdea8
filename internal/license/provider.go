// Package license decides whether the tool may be used.
//
// The decision is a plain yes/no consulted once at startup. The only
// persisted state is a plain-text first-use date stamp.
package license

import (
	"github.com/IvanShishkin/printhound/internal/config"
	"go.uber.org/zap"
)

// AuthorizationProvider exposes the proceed/abort decision
type AuthorizationProvider interface {
	Authorized() bool
}

// AllowAll authorizes unconditionally
type AllowAll struct{}

// Authorized always returns true
func (AllowAll) Authorized() bool {
	return true
}

// NewProvider returns the provider selected by configuration
func NewProvider(cfg *config.Config, logger *zap.Logger) (AuthorizationProvider, error) {
	if !cfg.License.Enabled {
		return AllowAll{}, nil
	}

	path := cfg.License.StampFile
	if path == "" {
		var err error
		path, err = DefaultStampPath()
		if err != nil {
			return nil, err
		}
	}
	return NewStampProvider(path, cfg.License.ValidMonths, logger), nil
}
