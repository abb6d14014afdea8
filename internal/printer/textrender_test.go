package printer

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/IvanShishkin/printhound/internal/config"
)

func TestTextRenderer_LinesPerPage(t *testing.T) {
	tests := []struct {
		name     string
		layout   config.TextConfig
		expected int
	}{
		{"Default letter", config.TextConfig{PageHeight: 720, LinePitch: 14.4}, 50},
		{"Exact fit", config.TextConfig{PageHeight: 100, LinePitch: 10}, 10},
		{"Rounds down", config.TextConfig{PageHeight: 105, LinePitch: 10}, 10},
		{"Pitch taller than page", config.TextConfig{PageHeight: 5, LinePitch: 10}, 1},
		{"Zero pitch", config.TextConfig{PageHeight: 100, LinePitch: 0}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewTextRenderer(tt.layout)
			if got := r.LinesPerPage(); got != tt.expected {
				t.Errorf("LinesPerPage() = %d, want %d", got, tt.expected)
			}
		})
	}
}

func TestTextRenderer_Paginate(t *testing.T) {
	r := NewTextRenderer(config.TextConfig{PageHeight: 30, LinePitch: 10})

	pages := r.Paginate([]string{"1", "2", "3", "4", "5", "6", "7"})
	if len(pages) != 3 {
		t.Fatalf("Paginate() returned %d pages, want 3", len(pages))
	}
	if len(pages[2]) != 1 || pages[2][0] != "7" {
		t.Errorf("last page = %v, want [7]", pages[2])
	}

	empty := r.Paginate(nil)
	if len(empty) != 1 || len(empty[0]) != 0 {
		t.Errorf("Paginate(nil) = %v, want one empty page", empty)
	}
}

func TestTextRenderer_Render(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tabs.txt")
	if err := os.WriteFile(path, []byte("a\tb\nline2\n"), 0644); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}

	r := NewTextRenderer(config.TextConfig{PageHeight: 10, LinePitch: 10, TabWidth: 4})
	var buf bytes.Buffer
	if err := r.Render(path, &buf); err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	want := "a   b\n\fline2\n"
	if buf.String() != want {
		t.Errorf("Render() = %q, want %q", buf.String(), want)
	}
}

func TestTextRenderer_RenderMissingFile(t *testing.T) {
	r := NewTextRenderer(config.TextConfig{PageHeight: 10, LinePitch: 10})
	var buf bytes.Buffer
	if err := r.Render("/nonexistent/file.txt", &buf); err == nil {
		t.Error("Render() expected error for missing file, got nil")
	}
}
