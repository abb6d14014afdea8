package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// DefaultExtensions is the allow-list of printable file extensions
var DefaultExtensions = []string{
	".txt", ".doc", ".docx", ".xls", ".xlsx", ".ppt", ".pptx",
	".pdf", ".jpg", ".jpeg", ".png", ".bmp", ".tiff",
}

// Config represents the printhound configuration
type Config struct {
	// Scan settings
	Path          string   `mapstructure:"path" yaml:"path"`                     // directory to scan
	Extensions    []string `mapstructure:"extensions" yaml:"extensions"`         // printable extensions (with leading dot)
	Exclude       []string `mapstructure:"exclude" yaml:"exclude"`               // directory names to skip
	ProgressEvery int      `mapstructure:"progress_every" yaml:"progress_every"` // report progress every N matches

	// Search settings
	MatchMode string `mapstructure:"match_mode" yaml:"match_mode"` // any, all

	// Print settings
	PrintDelay int           `mapstructure:"print_delay" yaml:"print_delay"` // delay between submissions (ms)
	Printer    PrinterConfig `mapstructure:"printer" yaml:"printer"`
	Text       TextConfig    `mapstructure:"text" yaml:"text"`

	// Report settings
	ReportFormat string `mapstructure:"report_format" yaml:"report_format"` // text, json, yaml, md
	OutputFile   string `mapstructure:"output_file" yaml:"output_file"`     // output file path

	// License settings
	License LicenseConfig `mapstructure:"license" yaml:"license"`
}

// PrinterConfig controls how files are handed to the OS print handler
type PrinterConfig struct {
	Command    string   `mapstructure:"command" yaml:"command"`         // print command, platform default if empty
	Args       []string `mapstructure:"args" yaml:"args"`               // extra arguments placed before the file
	Name       string   `mapstructure:"name" yaml:"name"`               // destination printer, system default if empty
	TextRender bool     `mapstructure:"text_render" yaml:"text_render"` // paginate .txt files internally
}

// TextConfig holds the page layout used by the internal text renderer
type TextConfig struct {
	PageHeight float64 `mapstructure:"page_height" yaml:"page_height"` // printable height in points
	LinePitch  float64 `mapstructure:"line_pitch" yaml:"line_pitch"`   // distance between baselines in points
	TabWidth   int     `mapstructure:"tab_width" yaml:"tab_width"`
}

// LicenseConfig holds the first-use date stamp gate settings
type LicenseConfig struct {
	Enabled     bool   `mapstructure:"enabled" yaml:"enabled"`
	StampFile   string `mapstructure:"stamp_file" yaml:"stamp_file"`
	ValidMonths int    `mapstructure:"valid_months" yaml:"valid_months"`
}

// MatchMode represents the keyword combination policy
type MatchMode int

const (
	MatchAny MatchMode = iota
	MatchAll
)

// String returns the config spelling of the mode
func (m MatchMode) String() string {
	if m == MatchAll {
		return "all"
	}
	return "any"
}

// LoadConfig loads configuration from defaults, an optional YAML file and
// PRINTHOUND_* environment variables
func LoadConfig(configFile string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if configFile != "" {
		v.SetConfigFile(configFile)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", configFile, err)
		}
	}

	// Read environment variables
	v.SetEnvPrefix("PRINTHOUND")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("path", "")
	v.SetDefault("extensions", DefaultExtensions)
	v.SetDefault("exclude", []string{})
	v.SetDefault("progress_every", 10)
	v.SetDefault("match_mode", "any")
	v.SetDefault("print_delay", 1500)
	v.SetDefault("printer.command", "")
	v.SetDefault("printer.args", []string{})
	v.SetDefault("printer.name", "")
	v.SetDefault("printer.text_render", true)
	v.SetDefault("text.page_height", 720.0)
	v.SetDefault("text.line_pitch", 14.4)
	v.SetDefault("text.tab_width", 4)
	v.SetDefault("report_format", "")
	v.SetDefault("output_file", "")
	v.SetDefault("license.enabled", false)
	v.SetDefault("license.stamp_file", "")
	v.SetDefault("license.valid_months", 12)
}

// Default returns the built-in configuration without reading any source
func Default() *Config {
	return &Config{
		Extensions:    append([]string(nil), DefaultExtensions...),
		Exclude:       []string{},
		ProgressEvery: 10,
		MatchMode:     "any",
		PrintDelay:    1500,
		Printer:       PrinterConfig{TextRender: true},
		Text:          TextConfig{PageHeight: 720, LinePitch: 14.4, TabWidth: 4},
		License:       LicenseConfig{ValidMonths: 12},
	}
}

// GetMatchMode returns the keyword match mode enum value
func (c *Config) GetMatchMode() MatchMode {
	switch strings.ToLower(c.MatchMode) {
	case "all", "and":
		return MatchAll
	default:
		return MatchAny
	}
}

// GetPrintDelay returns the pause between print submissions
func (c *Config) GetPrintDelay() time.Duration {
	if c.PrintDelay < 0 {
		return 0
	}
	return time.Duration(c.PrintDelay) * time.Millisecond
}

// IsPrintableExtension checks a lowercase, dot-prefixed extension against the allow-list
func (c *Config) IsPrintableExtension(ext string) bool {
	if ext == "" {
		return false
	}
	exts := c.Extensions
	if len(exts) == 0 {
		exts = DefaultExtensions
	}
	for _, e := range exts {
		if normalizeExtension(e) == ext {
			return true
		}
	}
	return false
}

// Validate checks enum-like settings
func (c *Config) Validate() error {
	if c.MatchMode != "" {
		validModes := []string{"any", "all", "or", "and"}
		if !contains(validModes, strings.ToLower(c.MatchMode)) {
			return fmt.Errorf("match_mode must be one of: any, all (got: %s)", c.MatchMode)
		}
	}

	if c.ReportFormat != "" {
		validFormats := []string{"text", "txt", "json", "yaml", "yml", "md", "markdown"}
		if !contains(validFormats, c.ReportFormat) {
			return fmt.Errorf("report_format must be one of: %s (got: %s)", strings.Join(validFormats, ", "), c.ReportFormat)
		}
	}

	if c.PrintDelay < 0 {
		return fmt.Errorf("print_delay must not be negative (got: %d)", c.PrintDelay)
	}

	if c.Printer.TextRender && c.Text.LinePitch <= 0 {
		return fmt.Errorf("text.line_pitch must be positive (got: %g)", c.Text.LinePitch)
	}

	if c.License.Enabled && c.License.ValidMonths <= 0 {
		return fmt.Errorf("license.valid_months must be positive (got: %d)", c.License.ValidMonths)
	}

	return nil
}

// WriteSample writes the configuration as YAML to path
func (c *Config) WriteSample(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func normalizeExtension(ext string) string {
	ext = strings.ToLower(strings.TrimSpace(ext))
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}

// contains checks if a slice contains a string
func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
