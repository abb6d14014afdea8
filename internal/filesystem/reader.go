package filesystem

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/IvanShishkin/printhound/pkg/models"
)

// NewFileEntry builds a FileEntry from walked file information.
// The path is made absolute so entries stay valid regardless of the working directory.
func NewFileEntry(info *models.FileInfo) models.FileEntry {
	path := info.Path
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	return models.FileEntry{
		Path:      path,
		Name:      filepath.Base(path),
		Extension: GetExtension(path),
		Size:      info.Size,
		ModTime:   info.ModTime,
	}
}

// CheckDirectory verifies that root names an existing directory
func CheckDirectory(root string) error {
	if strings.TrimSpace(root) == "" {
		return models.ErrInvalidInput
	}
	stat, err := os.Stat(root)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", models.ErrNotFound, root)
		}
		return &models.ScanIOError{Root: root, Err: err}
	}
	if !stat.IsDir() {
		return fmt.Errorf("%w: %s is not a directory", models.ErrNotFound, root)
	}
	return nil
}

// ReadLines reads a text file and returns its lines without line terminators
func ReadLines(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	defer file.Close()

	var lines []string
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		lines = append(lines, strings.TrimRight(scanner.Text(), "\r"))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return lines, nil
}
