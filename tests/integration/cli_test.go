package integration

import (
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

func writeTree(t *testing.T, names ...string) string {
	t.Helper()
	root := t.TempDir()
	for _, name := range names {
		path := filepath.Join(root, name)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatalf("Failed to create dir: %v", err)
		}
		if err := os.WriteFile(path, []byte("content of "+name), 0644); err != nil {
			t.Fatalf("Failed to create test file: %v", err)
		}
	}
	return root
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := exec.Command("go", append([]string{"run", "../../cmd/printhound"}, args...)...)
	cmd.Env = append(os.Environ(), "NO_COLOR=1")
	output, err := cmd.CombinedOutput()
	return string(output), err
}

func TestScanCommand_ListsPrintableFiles(t *testing.T) {
	root := writeTree(t, "a.pdf", "b.exe", "docs/c.DOCX", "docs/notes")

	output, err := run(t, "scan", root)
	if err != nil {
		t.Fatalf("Command failed: %v, output: %s", err, output)
	}

	if !strings.Contains(output, "Scan complete. Found 2 printable files.") {
		t.Errorf("Expected scan summary, got: %s", output)
	}
	if !strings.Contains(output, "a.pdf") || !strings.Contains(output, "c.DOCX") {
		t.Errorf("Expected printable files in listing, got: %s", output)
	}
	if strings.Contains(output, "b.exe") {
		t.Errorf("Non-printable file listed: %s", output)
	}
}

func TestScanCommand_MissingDirectory(t *testing.T) {
	output, err := run(t, "scan", filepath.Join(t.TempDir(), "missing"))

	if err == nil {
		t.Error("Expected error for missing directory, got nil")
	}
	if !strings.Contains(output, "Directory does not exist.") {
		t.Errorf("Expected 'Directory does not exist.' status, got: %s", output)
	}
}

func TestSearchCommand_MatchAll(t *testing.T) {
	root := writeTree(t, "iqc/report-2024.pdf", "iqc/report-2023.pdf", "hr/report-2024.pdf")

	output, err := run(t, "search", "--match=all", root, "iqc", "report-2024")
	if err != nil {
		t.Fatalf("Command failed: %v, output: %s", err, output)
	}

	if !strings.Contains(output, "Search complete, 1 files match.") {
		t.Errorf("Expected one match, got: %s", output)
	}
}

func TestPrintCommand_DryRunReport(t *testing.T) {
	root := writeTree(t, "invoice-1.pdf", "invoice-2.txt", "memo.pdf")
	reportFile := filepath.Join(t.TempDir(), "batch.json")

	output, err := run(t, "print", "--dry-run", "-r", "json", "-o", reportFile, root, "invoice")
	if err != nil {
		t.Fatalf("Command failed: %v, output: %s", err, output)
	}

	if !strings.Contains(output, "Print jobs submitted. Succeeded: 2, failed: 0. Check the printer queue.") {
		t.Errorf("Expected batch summary, got: %s", output)
	}

	data, err := os.ReadFile(reportFile)
	if err != nil {
		t.Fatalf("Report not written: %v", err)
	}
	var decoded struct {
		Batch struct {
			BatchID   string `json:"batch_id"`
			Attempted int    `json:"attempted"`
			DryRun    bool   `json:"dry_run"`
		} `json:"batch"`
	}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Report is not valid JSON: %v", err)
	}
	if decoded.Batch.Attempted != 2 || !decoded.Batch.DryRun || decoded.Batch.BatchID == "" {
		t.Errorf("Unexpected batch in report: %+v", decoded.Batch)
	}
}

func TestPrintCommand_NothingMatches(t *testing.T) {
	root := writeTree(t, "memo.pdf")

	output, err := run(t, "print", "--dry-run", root, "invoice")
	if err == nil {
		t.Error("Expected error when nothing is selected, got nil")
	}
	if !strings.Contains(output, "Select files to print first.") {
		t.Errorf("Expected selection hint, got: %s", output)
	}
}

func TestInvalidMatchFlag(t *testing.T) {
	output, err := run(t, "search", "--match=xor", t.TempDir(), "a")
	if err == nil {
		t.Error("Expected error for invalid --match, got nil")
	}
	if !strings.Contains(output, "--match must be one of") {
		t.Errorf("Expected validation message, got: %s", output)
	}
}

func TestConfigInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "printhound.yaml")

	output, err := run(t, "config", "init", path)
	if err != nil {
		t.Fatalf("Command failed: %v, output: %s", err, output)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Config not written: %v", err)
	}
	if !strings.Contains(string(data), "print_delay: 1500") {
		t.Errorf("Expected default print_delay in sample, got: %s", data)
	}

	if _, err := run(t, "config", "init", path); err == nil {
		t.Error("Expected error when config exists, got nil")
	}
}
