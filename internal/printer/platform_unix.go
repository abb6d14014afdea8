//go:build !windows

package printer

// defaultFileCommand prints a file through CUPS
func defaultFileCommand(path, printerName string) (string, []string) {
	args := []string{}
	if printerName != "" {
		args = append(args, "-d", printerName)
	}
	return "lp", append(args, "--", path)
}

// defaultStreamCommand prints stdin through CUPS
func defaultStreamCommand(title, printerName string) (string, []string) {
	args := []string{}
	if printerName != "" {
		args = append(args, "-d", printerName)
	}
	if title != "" {
		args = append(args, "-t", title)
	}
	return "lp", args
}
