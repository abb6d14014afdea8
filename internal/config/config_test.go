package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestGetMatchMode(t *testing.T) {
	tests := []struct {
		name     string
		mode     string
		expected MatchMode
	}{
		{"Any mode", "any", MatchAny},
		{"All mode", "all", MatchAll},
		{"AND alias", "AND", MatchAll},
		{"OR alias", "or", MatchAny},
		{"Default mode", "", MatchAny},
		{"Invalid mode", "invalid", MatchAny},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{MatchMode: tt.mode}
			if got := cfg.GetMatchMode(); got != tt.expected {
				t.Errorf("GetMatchMode() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestIsPrintableExtension(t *testing.T) {
	tests := []struct {
		name       string
		extension  string
		extensions []string
		expected   bool
	}{
		{"PDF default", ".pdf", nil, true},
		{"TIFF default", ".tiff", nil, true},
		{"EXE default", ".exe", nil, false},
		{"Empty extension", "", nil, false},
		{"Custom without dot", ".md", []string{"md"}, true},
		{"Custom upper case", ".md", []string{".MD"}, true},
		{"Custom excludes default", ".pdf", []string{".md"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{Extensions: tt.extensions}
			if got := cfg.IsPrintableExtension(tt.extension); got != tt.expected {
				t.Errorf("IsPrintableExtension(%q) = %v, want %v", tt.extension, got, tt.expected)
			}
		})
	}
}

func TestGetPrintDelay(t *testing.T) {
	cfg := &Config{PrintDelay: 1500}
	if got := cfg.GetPrintDelay(); got != 1500*time.Millisecond {
		t.Errorf("GetPrintDelay() = %v, want 1.5s", got)
	}

	cfg.PrintDelay = -5
	if got := cfg.GetPrintDelay(); got != 0 {
		t.Errorf("GetPrintDelay() with negative delay = %v, want 0", got)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"Defaults", func(c *Config) {}, false},
		{"Bad match mode", func(c *Config) { c.MatchMode = "xor" }, true},
		{"Bad report format", func(c *Config) { c.ReportFormat = "html" }, true},
		{"YAML report", func(c *Config) { c.ReportFormat = "yaml" }, false},
		{"Negative delay", func(c *Config) { c.PrintDelay = -1 }, true},
		{"Zero line pitch", func(c *Config) { c.Text.LinePitch = 0 }, true},
		{"Zero line pitch without renderer", func(c *Config) {
			c.Text.LinePitch = 0
			c.Printer.TextRender = false
		}, false},
		{"License without months", func(c *Config) {
			c.License.Enabled = true
			c.License.ValidMonths = 0
		}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoadConfig(t *testing.T) {
	// Test default config loading (without config file)
	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.MatchMode != "any" {
		t.Errorf("Default match_mode = %v, want %v", cfg.MatchMode, "any")
	}

	if cfg.PrintDelay != 1500 {
		t.Errorf("Default print_delay = %v, want %v", cfg.PrintDelay, 1500)
	}

	if cfg.ProgressEvery != 10 {
		t.Errorf("Default progress_every = %v, want %v", cfg.ProgressEvery, 10)
	}

	if !cfg.Printer.TextRender {
		t.Errorf("Default printer.text_render = %v, want %v", cfg.Printer.TextRender, true)
	}

	if cfg.License.Enabled {
		t.Errorf("Default license.enabled = %v, want %v", cfg.License.Enabled, false)
	}

	if len(cfg.Extensions) != len(DefaultExtensions) {
		t.Errorf("Default extensions count = %v, want %v", len(cfg.Extensions), len(DefaultExtensions))
	}
}

func TestLoadConfig_FileAndEnv(t *testing.T) {
	tmpDir := t.TempDir()
	cfgFile := filepath.Join(tmpDir, "printhound.yaml")
	content := "match_mode: all\nprint_delay: 250\nprinter:\n  name: office\n"
	if err := os.WriteFile(cfgFile, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	t.Setenv("PRINTHOUND_PRINT_DELAY", "10")

	cfg, err := LoadConfig(cfgFile)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.GetMatchMode() != MatchAll {
		t.Errorf("match_mode from file = %v, want all", cfg.MatchMode)
	}
	if cfg.PrintDelay != 10 {
		t.Errorf("print_delay from env = %v, want 10", cfg.PrintDelay)
	}
	if cfg.Printer.Name != "office" {
		t.Errorf("printer.name from file = %q, want %q", cfg.Printer.Name, "office")
	}
}

func TestLoadConfig_MissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("LoadConfig() expected error for missing file, got nil")
	}
}

func TestWriteSample(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sample.yaml")
	if err := Default().WriteSample(path); err != nil {
		t.Fatalf("WriteSample() error = %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() on sample error = %v", err)
	}
	if cfg.PrintDelay != 1500 {
		t.Errorf("sample print_delay = %v, want 1500", cfg.PrintDelay)
	}
}
