package report

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/IvanShishkin/printhound/internal/config"
	"github.com/IvanShishkin/printhound/pkg/models"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

func sampleReport() *Report {
	files := []models.FileEntry{
		{Path: "/docs/iqc/a.pdf", Name: "a.pdf", Extension: ".pdf", Size: 2048},
		{Path: "/docs/hr/b.docx", Name: "b.docx", Extension: ".docx", Size: 10},
	}
	batch := &models.BatchOutcome{BatchID: "batch-1", Duration: 3 * time.Second}
	batch.Add(models.PrintOutcome{File: files[0], Status: models.OutcomeSuccess, Method: "default"})
	batch.Add(models.PrintOutcome{File: files[1], Status: models.OutcomeFailure, Method: "default", Reason: "no handler\nfor .docx"})

	return &Report{
		Version: "0.1.0",
		Scan: &models.ScanResults{
			ScanPath:   "/docs",
			TotalFiles: 5,
			Skipped:    3,
			TotalSize:  2058,
			Files:      files,
			Duration:   1500 * time.Millisecond,
		},
		Batch: batch,
	}
}

func newTestGenerator(t *testing.T, format, output string) *Generator {
	t.Helper()
	cfg := config.Default()
	cfg.ReportFormat = format
	cfg.OutputFile = output
	g, err := NewGenerator(cfg, zap.NewNop())
	if err != nil {
		t.Fatalf("NewGenerator() error = %v", err)
	}
	return g
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{250 * time.Millisecond, "250.00ms"},
		{1500 * time.Millisecond, "1.50s"},
		{90 * time.Second, "1m30.00s"},
		{time.Hour + 2*time.Minute + 3*time.Second, "1h2m3.00s"},
	}

	for _, tt := range tests {
		if got := FormatDuration(tt.d); got != tt.want {
			t.Errorf("FormatDuration(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}

func TestFormatSize(t *testing.T) {
	if got := FormatSize(2048); got != "2.0 kB" {
		t.Errorf("FormatSize(2048) = %q, want %q", got, "2.0 kB")
	}
	if got := FormatSize(-1); got != "0 B" {
		t.Errorf("FormatSize(-1) = %q, want %q", got, "0 B")
	}
}

func TestReport_Listing(t *testing.T) {
	r := sampleReport()
	if got := len(r.Listing()); got != 2 {
		t.Errorf("Listing() without search = %d entries, want 2", got)
	}

	r.Keywords = "nothing"
	r.Displayed = []models.FileEntry{}
	if got := len(r.Listing()); got != 0 {
		t.Errorf("Listing() with empty search result = %d entries, want 0", got)
	}
}

func TestGenerate_Console(t *testing.T) {
	g := newTestGenerator(t, "", "")
	var buf bytes.Buffer
	g.SetOutput(&buf)

	path, err := g.Generate(sampleReport())
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if path != "" {
		t.Errorf("Generate() path = %q, want empty for console", path)
	}

	out := buf.String()
	for _, want := range []string{"SCAN COMPLETE", "/docs/iqc/a.pdf", "2.0 kB", "PRINT BATCH", "no handler for .docx"} {
		if !strings.Contains(out, want) {
			t.Errorf("console output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "\x1b[") {
		t.Error("console output to a buffer should not contain color codes")
	}
}

func TestGenerate_JSON(t *testing.T) {
	output := filepath.Join(t.TempDir(), "report.json")
	g := newTestGenerator(t, "json", output)

	path, err := g.Generate(sampleReport())
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if !filepath.IsAbs(path) {
		t.Errorf("Generate() path = %q, want absolute", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read report: %v", err)
	}
	var decoded struct {
		Batch struct {
			Succeeded int `json:"succeeded"`
			Failed    int `json:"failed"`
		} `json:"batch"`
		Scan struct {
			Files []models.FileEntry `json:"files"`
		} `json:"scan"`
	}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("report is not valid JSON: %v", err)
	}
	if decoded.Batch.Succeeded != 1 || decoded.Batch.Failed != 1 {
		t.Errorf("batch counts = %d/%d, want 1/1", decoded.Batch.Succeeded, decoded.Batch.Failed)
	}
	if len(decoded.Scan.Files) != 2 {
		t.Errorf("scan files = %d, want 2", len(decoded.Scan.Files))
	}
}

func TestGenerate_YAML(t *testing.T) {
	output := filepath.Join(t.TempDir(), "report.yaml")
	g := newTestGenerator(t, "yaml", output)

	if _, err := g.Generate(sampleReport()); err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	data, err := os.ReadFile(output)
	if err != nil {
		t.Fatalf("Failed to read report: %v", err)
	}

	var decoded map[string]interface{}
	if err := yaml.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("report is not valid YAML: %v", err)
	}
	if decoded["version"] != "0.1.0" {
		t.Errorf("version = %v, want 0.1.0", decoded["version"])
	}
}

func TestGenerate_TextAndMarkdown(t *testing.T) {
	tests := []struct {
		format string
		want   []string
	}{
		{"text", []string{"PRINTHOUND REPORT v0.1.0", "PRINTABLE FILES:  2", "FAILED:           1", "Reason:  no handler for .docx"}},
		{"md", []string{"# Printhound Report v0.1.0", "| **Printable Files** | **2** |", "| `/docs/hr/b.docx` | ❌ |"}},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			output := filepath.Join(t.TempDir(), "report")
			g := newTestGenerator(t, tt.format, output)
			if _, err := g.Generate(sampleReport()); err != nil {
				t.Fatalf("Generate() error = %v", err)
			}
			data, err := os.ReadFile(output)
			if err != nil {
				t.Fatalf("Failed to read report: %v", err)
			}
			for _, want := range tt.want {
				if !strings.Contains(string(data), want) {
					t.Errorf("%s report missing %q:\n%s", tt.format, want, data)
				}
			}
		})
	}
}

func TestGenerate_UnknownFormat(t *testing.T) {
	g := newTestGenerator(t, "html", filepath.Join(t.TempDir(), "r.html"))
	if _, err := g.Generate(sampleReport()); err == nil {
		t.Error("Generate() expected error for unknown format, got nil")
	}
}

func TestEscapeMarkdown(t *testing.T) {
	if got := escapeMarkdown("a|b`c"); got != "a\\|b'c" {
		t.Errorf("escapeMarkdown() = %q", got)
	}
}

func TestCleanReason_TruncatesOnRuneBoundary(t *testing.T) {
	reason := strings.Repeat("ошибка печати ", 20)

	got := cleanReason(reason, 7)
	if !utf8.ValidString(got) {
		t.Fatalf("cleanReason() = %q, not valid UTF-8", got)
	}
	if got != "ошибка ..." {
		t.Errorf("cleanReason() = %q, want %q", got, "ошибка ...")
	}

	short := "нет  бумаги\n"
	if got := cleanReason(short, 100); got != "нет бумаги" {
		t.Errorf("cleanReason(%q) = %q, want %q", short, got, "нет бумаги")
	}
}
