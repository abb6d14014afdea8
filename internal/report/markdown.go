package report

import (
	"fmt"
	"strings"
)

// renderMarkdown renders a Markdown report
func renderMarkdown(r *Report) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("# Printhound Report v%s\n\n", r.Version))

	if s := r.Scan; s != nil {
		sb.WriteString("## Scan\n\n")
		sb.WriteString("| Parameter | Value |\n")
		sb.WriteString("|-----------|-------|\n")
		sb.WriteString(fmt.Sprintf("| Scan Path | `%s` |\n", s.ScanPath))
		sb.WriteString(fmt.Sprintf("| Start Time | %s |\n", s.StartTime.Format("2006-01-02 15:04:05")))
		sb.WriteString(fmt.Sprintf("| Duration | %s |\n", FormatDuration(s.Duration)))
		sb.WriteString(fmt.Sprintf("| Total Files | %d |\n", s.TotalFiles))
		sb.WriteString(fmt.Sprintf("| Skipped Files | %d |\n", s.Skipped))
		sb.WriteString(fmt.Sprintf("| **Printable Files** | **%d** |\n", s.Matched()))
		if r.Keywords != "" {
			sb.WriteString(fmt.Sprintf("| Search | `%s` |\n", escapeMarkdown(r.Keywords)))
			sb.WriteString(fmt.Sprintf("| Matching Files | %d |\n", len(r.Displayed)))
		}
		sb.WriteString("\n")

		listing := r.Listing()
		if len(listing) == 0 {
			sb.WriteString("> No printable files\n\n")
		} else {
			sb.WriteString("| # | File | Size |\n")
			sb.WriteString("|---|------|------|\n")
			for i, e := range listing {
				sb.WriteString(fmt.Sprintf("| %d | `%s` | %s |\n", i+1, escapeMarkdown(e.Path), FormatSize(e.Size)))
			}
			sb.WriteString("\n")
		}
	}

	if b := r.Batch; b != nil {
		sb.WriteString("## Print Batch\n\n")
		if b.DryRun {
			sb.WriteString("> Dry run, nothing was sent to a printer\n\n")
		}
		sb.WriteString(fmt.Sprintf("Batch `%s`: **%d** succeeded, **%d** failed in %s.\n\n",
			b.BatchID, b.Succeeded, b.Failed, FormatDuration(b.Duration)))
		sb.WriteString("| File | Status | Method | Reason |\n")
		sb.WriteString("|------|--------|--------|--------|\n")
		for _, item := range b.Items {
			status := "✅"
			if !item.Succeeded() {
				status = "❌"
			}
			sb.WriteString(fmt.Sprintf("| `%s` | %s | %s | %s |\n",
				escapeMarkdown(item.File.Path), status, item.Method, escapeMarkdown(cleanReason(item.Reason, 200))))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// escapeMarkdown keeps table cells intact
func escapeMarkdown(s string) string {
	s = strings.ReplaceAll(s, "|", "\\|")
	return strings.ReplaceAll(s, "`", "'")
}
