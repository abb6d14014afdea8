//go:build windows

package printer

import (
	"fmt"
	"strings"
)

// defaultFileCommand invokes the "print" verb of the file's default association
func defaultFileCommand(path, printerName string) (string, []string) {
	// The print verb always targets the default printer; printerName is not applicable
	script := fmt.Sprintf("Start-Process -FilePath %s -Verb Print -WindowStyle Hidden", psQuote(path))
	return "powershell", []string{"-NoProfile", "-NonInteractive", "-Command", script}
}

// defaultStreamCommand sends stdin to Out-Printer
func defaultStreamCommand(title, printerName string) (string, []string) {
	script := "$input | Out-Printer"
	if printerName != "" {
		script += " -Name " + psQuote(printerName)
	}
	return "powershell", []string{"-NoProfile", "-NonInteractive", "-Command", script}
}

// psQuote quotes s as a PowerShell single-quoted string
func psQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}
