package models

import (
	"time"
)

// FileEntry is a printable file found by a scan.
// Entries are compared by Path; the metadata is informational only.
type FileEntry struct {
	Path      string    `json:"path" yaml:"path"`           // Absolute file path
	Name      string    `json:"name" yaml:"name"`           // Base name
	Extension string    `json:"extension" yaml:"extension"` // Lowercase, with leading dot
	Size      int64     `json:"size" yaml:"size"`           // Size in bytes at scan time
	ModTime   time.Time `json:"mod_time" yaml:"mod_time"`   // Modification time at scan time
}

// FileInfo contains basic information about a walked filesystem entry
type FileInfo struct {
	Path      string
	Size      int64
	ModTime   time.Time
	IsDir     bool
	IsRegular bool // Regular file, or a symlink resolving to one
	IsSymlink bool
}

// Paths returns the paths of the given entries in order
func Paths(entries []FileEntry) []string {
	paths := make([]string, len(entries))
	for i, e := range entries {
		paths[i] = e.Path
	}
	return paths
}
