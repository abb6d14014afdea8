package report

import (
	"fmt"
	"strings"
)

// renderText renders a plain text report
func renderText(r *Report) string {
	var sb strings.Builder

	sb.WriteString("=" + strings.Repeat("=", 78) + "\n")
	sb.WriteString(fmt.Sprintf("  PRINTHOUND REPORT v%s\n", r.Version))
	sb.WriteString("=" + strings.Repeat("=", 78) + "\n\n")

	if s := r.Scan; s != nil {
		sb.WriteString("SCAN\n")
		sb.WriteString(strings.Repeat("-", 79) + "\n")
		sb.WriteString(fmt.Sprintf("Scan Path:        %s\n", s.ScanPath))
		sb.WriteString(fmt.Sprintf("Start Time:       %s\n", s.StartTime.Format("2006-01-02 15:04:05")))
		sb.WriteString(fmt.Sprintf("End Time:         %s\n", s.EndTime.Format("2006-01-02 15:04:05")))
		sb.WriteString(fmt.Sprintf("Duration:         %s\n", FormatDuration(s.Duration)))
		sb.WriteString(fmt.Sprintf("Directories:      %d\n", s.TotalDirs))
		sb.WriteString(fmt.Sprintf("Total Files:      %d\n", s.TotalFiles))
		sb.WriteString(fmt.Sprintf("Skipped Files:    %d\n", s.Skipped))
		sb.WriteString(fmt.Sprintf("PRINTABLE FILES:  %d (%s)\n", s.Matched(), FormatSize(s.TotalSize)))
		if r.Keywords != "" {
			sb.WriteString(fmt.Sprintf("Search:           %s\n", r.Keywords))
			sb.WriteString(fmt.Sprintf("Matching Files:   %d\n", len(r.Displayed)))
		}
		sb.WriteString("\n")

		if listing := r.Listing(); len(listing) > 0 {
			sb.WriteString("FILES\n")
			sb.WriteString(strings.Repeat("-", 79) + "\n")
			for i, e := range listing {
				sb.WriteString(fmt.Sprintf("%4d. %s (%s)\n", i+1, e.Path, FormatSize(e.Size)))
			}
			sb.WriteString("\n")
		}
	}

	if b := r.Batch; b != nil {
		sb.WriteString("PRINT BATCH\n")
		sb.WriteString(strings.Repeat("-", 79) + "\n")
		sb.WriteString(fmt.Sprintf("Batch ID:         %s\n", b.BatchID))
		if b.DryRun {
			sb.WriteString("Dry Run:          yes\n")
		}
		sb.WriteString(fmt.Sprintf("Duration:         %s\n", FormatDuration(b.Duration)))
		sb.WriteString(fmt.Sprintf("Attempted:        %d\n", b.Attempted))
		sb.WriteString(fmt.Sprintf("Succeeded:        %d\n", b.Succeeded))
		sb.WriteString(fmt.Sprintf("FAILED:           %d\n", b.Failed))
		sb.WriteString("\n")

		for i, item := range b.Items {
			sb.WriteString(fmt.Sprintf("[%d] %s\n", i+1, strings.ToUpper(string(item.Status))))
			sb.WriteString(fmt.Sprintf("    File:    %s\n", item.File.Path))
			sb.WriteString(fmt.Sprintf("    Method:  %s\n", item.Method))
			if item.Reason != "" {
				sb.WriteString(fmt.Sprintf("    Reason:  %s\n", cleanReason(item.Reason, 200)))
			}
		}
		sb.WriteString("\n")
	}

	sb.WriteString(strings.Repeat("=", 79) + "\n")
	return sb.String()
}
