package report

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/IvanShishkin/printhound/internal/config"
	"github.com/IvanShishkin/printhound/pkg/models"
	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"go.uber.org/zap"
)

// FormatDuration formats duration to a human-readable string with max 2 decimal places
func FormatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%.2fms", float64(d.Nanoseconds())/1e6)
	} else if d < time.Minute {
		return fmt.Sprintf("%.2fs", d.Seconds())
	} else if d < time.Hour {
		mins := int(d.Minutes())
		secs := d.Seconds() - float64(mins*60)
		return fmt.Sprintf("%dm%.2fs", mins, secs)
	}
	hours := int(d.Hours())
	mins := int(d.Minutes()) - hours*60
	secs := d.Seconds() - float64(hours*3600) - float64(mins*60)
	return fmt.Sprintf("%dh%dm%.2fs", hours, mins, secs)
}

// FormatSize formats a byte count for listings
func FormatSize(size int64) string {
	if size < 0 {
		size = 0
	}
	return humanize.Bytes(uint64(size))
}

// Report is everything a run produced. Any part may be nil.
type Report struct {
	Version   string               `json:"version" yaml:"version"`
	Scan      *models.ScanResults  `json:"scan,omitempty" yaml:"scan,omitempty"`
	Keywords  string               `json:"keywords,omitempty" yaml:"keywords,omitempty"`
	Displayed []models.FileEntry   `json:"displayed,omitempty" yaml:"displayed,omitempty"`
	Batch     *models.BatchOutcome `json:"batch,omitempty" yaml:"batch,omitempty"`
}

// Listing returns the files the report shows: the search result when a
// search was applied, otherwise every scanned file
func (r *Report) Listing() []models.FileEntry {
	if r.Keywords != "" || r.Displayed != nil {
		return r.Displayed
	}
	if r.Scan != nil {
		return r.Scan.Files
	}
	return nil
}

// Generator writes reports to the console or to a file
type Generator struct {
	config      *config.Config
	logger      *zap.Logger
	out         io.Writer
	colorOutput bool
}

// NewGenerator creates a new report generator writing console output to stdout
func NewGenerator(cfg *config.Config, logger *zap.Logger) (*Generator, error) {
	g := &Generator{
		config: cfg,
		logger: logger,
	}
	g.SetOutput(os.Stdout)
	return g, nil
}

// SetOutput redirects console output. Colors are used only on terminals.
func (g *Generator) SetOutput(w io.Writer) {
	g.out = w
	g.colorOutput = false
	if f, ok := w.(*os.File); ok && !color.NoColor {
		g.colorOutput = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
}

// Generate writes the report. With no format configured it prints to the
// console and returns an empty path; otherwise it returns the absolute path
// of the written file.
func (g *Generator) Generate(r *Report) (string, error) {
	format := strings.ToLower(g.config.ReportFormat)
	outputFile := g.config.OutputFile

	if format == "" {
		g.printConsole(r)
		return "", nil
	}

	ext, err := extensionFor(format)
	if err != nil {
		return "", err
	}
	if outputFile == "" {
		timestamp := time.Now().Format("20060102-150405")
		outputFile = fmt.Sprintf("PRINTHOUND-REPORT-%s%s", timestamp, ext)
	}

	g.logger.Info("Generating report",
		zap.String("format", format),
		zap.String("output", outputFile))

	var data []byte
	switch format {
	case "json":
		data, err = renderJSON(r)
	case "yaml", "yml":
		data, err = renderYAML(r)
	case "txt", "text":
		data = []byte(renderText(r))
	case "md", "markdown":
		data = []byte(renderMarkdown(r))
	}
	if err == nil {
		err = os.WriteFile(outputFile, data, 0644)
	}
	if err != nil {
		return "", fmt.Errorf("failed to generate %s report: %w", format, err)
	}

	absPath, _ := filepath.Abs(outputFile)
	return absPath, nil
}

func extensionFor(format string) (string, error) {
	switch format {
	case "json":
		return ".json", nil
	case "yaml", "yml":
		return ".yaml", nil
	case "txt", "text":
		return ".txt", nil
	case "md", "markdown":
		return ".md", nil
	}
	return "", fmt.Errorf("unknown report format: %s", format)
}

// style returns a color printer honoring the generator's terminal detection
func (g *Generator) style(attrs ...color.Attribute) *color.Color {
	c := color.New(attrs...)
	if g.colorOutput {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
	return c
}

// printConsole prints the report with colors
func (g *Generator) printConsole(r *Report) {
	bold := g.style(color.Bold, color.FgHiYellow)
	gray := g.style(color.FgHiBlack)
	green := g.style(color.FgGreen)
	red := g.style(color.FgRed, color.Bold)
	cyan := g.style(color.FgCyan)
	rule := gray.Sprint(strings.Repeat("─", 63))

	fmt.Fprintln(g.out)

	if r.Scan != nil {
		fmt.Fprintln(g.out, bold.Sprint("SCAN COMPLETE"))
		fmt.Fprintln(g.out)
		fmt.Fprintf(g.out, "  %s      %s\n", gray.Sprint("Path:"), r.Scan.ScanPath)
		fmt.Fprintf(g.out, "  %s     %d printable of %d (%s)\n", gray.Sprint("Files:"),
			r.Scan.Matched(), r.Scan.TotalFiles, FormatSize(r.Scan.TotalSize))
		fmt.Fprintf(g.out, "  %s  %s\n", gray.Sprint("Duration:"), FormatDuration(r.Scan.Duration))
		if r.Keywords != "" {
			fmt.Fprintf(g.out, "  %s    %s (%d match)\n", gray.Sprint("Search:"), r.Keywords, len(r.Displayed))
		}
		fmt.Fprintln(g.out)

		listing := r.Listing()
		if len(listing) == 0 {
			fmt.Fprintf(g.out, "  %s\n\n", gray.Sprint("No printable files"))
		} else {
			fmt.Fprintln(g.out, rule)
			for i, e := range listing {
				fmt.Fprintf(g.out, "  %s %s  %s\n",
					gray.Sprintf("%4d.", i+1), e.Path, cyan.Sprint(FormatSize(e.Size)))
			}
			fmt.Fprintln(g.out, rule)
			fmt.Fprintln(g.out)
		}
	}

	if b := r.Batch; b != nil {
		title := "PRINT BATCH"
		if b.DryRun {
			title += " (dry run)"
		}
		fmt.Fprintln(g.out, bold.Sprint(title))
		fmt.Fprintln(g.out)
		for _, item := range b.Items {
			if item.Succeeded() {
				fmt.Fprintf(g.out, "  %s %s %s\n", green.Sprint("✓"), item.File.Path, gray.Sprintf("[%s]", item.Method))
			} else {
				fmt.Fprintf(g.out, "  %s %s %s\n", red.Sprint("✗"), item.File.Path, gray.Sprint(cleanReason(item.Reason, 100)))
			}
		}
		fmt.Fprintln(g.out)
		fmt.Fprintf(g.out, "  %s %s   %s %s   %s %s\n",
			gray.Sprint("Succeeded:"), green.Sprint(b.Succeeded),
			gray.Sprint("Failed:"), failedCount(red, b.Failed),
			gray.Sprint("Duration:"), FormatDuration(b.Duration))
		fmt.Fprintln(g.out)
	}
}

func failedCount(red *color.Color, n int) string {
	if n == 0 {
		return "0"
	}
	return red.Sprint(n)
}

// cleanReason flattens and truncates an error message for one-line output
func cleanReason(reason string, maxLen int) string {
	reason = strings.Join(strings.Fields(reason), " ")
	if r := []rune(reason); len(r) > maxLen {
		reason = string(r[:maxLen]) + "..."
	}
	return reason
}
