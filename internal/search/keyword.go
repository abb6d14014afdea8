// Package search filters scanned file lists by keyword.
package search

import (
	"strings"

	"github.com/IvanShishkin/printhound/internal/config"
	"github.com/IvanShishkin/printhound/pkg/models"
)

// Matcher matches file paths against a parsed keyword set
type Matcher struct {
	keywords []string // lowercased, non-empty
	mode     config.MatchMode
}

// NewMatcher parses a whitespace separated keyword string.
// Matching is case-insensitive against the full path.
func NewMatcher(keywords string, mode config.MatchMode) *Matcher {
	fields := strings.Fields(keywords)
	lowered := make([]string, 0, len(fields))
	for _, f := range fields {
		lowered = append(lowered, strings.ToLower(f))
	}
	return &Matcher{keywords: lowered, mode: mode}
}

// Keywords returns the parsed keywords in input order
func (m *Matcher) Keywords() []string {
	return append([]string(nil), m.keywords...)
}

// IsEmpty reports whether no keywords were given
func (m *Matcher) IsEmpty() bool {
	return len(m.keywords) == 0
}

// Match reports whether path satisfies the keyword set.
// An empty keyword set matches everything.
func (m *Matcher) Match(path string) bool {
	if m.IsEmpty() {
		return true
	}

	pathLower := strings.ToLower(path)

	if m.mode == config.MatchAll {
		for _, kw := range m.keywords {
			if !strings.Contains(pathLower, kw) {
				return false
			}
		}
		return true
	}

	for _, kw := range m.keywords {
		if strings.Contains(pathLower, kw) {
			return true
		}
	}
	return false
}

// Filter returns the entries of list matching the keyword set, preserving order.
// The input slice is never modified; the result is always a fresh slice.
func (m *Matcher) Filter(list []models.FileEntry) []models.FileEntry {
	result := make([]models.FileEntry, 0, len(list))
	for _, entry := range list {
		if m.Match(entry.Path) {
			result = append(result, entry)
		}
	}
	return result
}
