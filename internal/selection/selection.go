// Package selection tracks which displayed files are marked for printing.
package selection

import (
	"github.com/IvanShishkin/printhound/pkg/models"
)

// Set is a set of file entries keyed by path.
// Not safe for concurrent use; it is owned by a single session.
type Set struct {
	members map[string]models.FileEntry
	order   []string // insertion order, used when no display order is known
}

// New creates an empty selection
func New() *Set {
	return &Set{members: make(map[string]models.FileEntry)}
}

// Count returns the number of selected entries
func (s *Set) Count() int {
	return len(s.members)
}

// Contains reports whether the entry with path is selected
func (s *Set) Contains(path string) bool {
	_, ok := s.members[path]
	return ok
}

// Add selects entry. It is a no-op if already selected.
func (s *Set) Add(entry models.FileEntry) {
	if s.Contains(entry.Path) {
		return
	}
	s.members[entry.Path] = entry
	s.order = append(s.order, entry.Path)
}

// Remove deselects the entry with path
func (s *Set) Remove(path string) {
	if !s.Contains(path) {
		return
	}
	delete(s.members, path)
	for i, p := range s.order {
		if p == path {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

// Clear deselects everything
func (s *Set) Clear() {
	s.members = make(map[string]models.FileEntry)
	s.order = nil
}

// ToggleOne flips membership of entry and reports whether it is now selected
func (s *Set) ToggleOne(entry models.FileEntry) bool {
	if s.Contains(entry.Path) {
		s.Remove(entry.Path)
		return false
	}
	s.Add(entry)
	return true
}

// CoversAll reports whether every entry of displayed is selected.
// An empty list is never covered, so toggling it selects nothing.
func (s *Set) CoversAll(displayed []models.FileEntry) bool {
	if len(displayed) == 0 {
		return false
	}
	for _, e := range displayed {
		if !s.Contains(e.Path) {
			return false
		}
	}
	return true
}

// ToggleAll clears the selection when it already covers displayed,
// otherwise selects every displayed entry. It reports whether entries are
// now selected.
func (s *Set) ToggleAll(displayed []models.FileEntry) bool {
	if s.CoversAll(displayed) {
		s.Clear()
		return false
	}
	for _, e := range displayed {
		s.Add(e)
	}
	return len(displayed) > 0
}

// Narrow drops every selected entry that is not in displayed
func (s *Set) Narrow(displayed []models.FileEntry) {
	visible := make(map[string]bool, len(displayed))
	for _, e := range displayed {
		visible[e.Path] = true
	}

	kept := s.order[:0]
	for _, p := range s.order {
		if visible[p] {
			kept = append(kept, p)
		} else {
			delete(s.members, p)
		}
	}
	s.order = kept
}

// Items returns the selected entries in the order they appear in displayed.
// Selected entries absent from displayed follow in insertion order.
func (s *Set) Items(displayed []models.FileEntry) []models.FileEntry {
	items := make([]models.FileEntry, 0, len(s.members))
	seen := make(map[string]bool, len(s.members))
	for _, e := range displayed {
		if sel, ok := s.members[e.Path]; ok && !seen[e.Path] {
			items = append(items, sel)
			seen[e.Path] = true
		}
	}
	for _, p := range s.order {
		if !seen[p] {
			items = append(items, s.members[p])
		}
	}
	return items
}
