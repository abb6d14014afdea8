package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/IvanShishkin/printhound/internal/config"
	"github.com/IvanShishkin/printhound/internal/core"
	"github.com/IvanShishkin/printhound/internal/printer"
	"github.com/IvanShishkin/printhound/internal/report"
	"github.com/IvanShishkin/printhound/internal/tui"
	"github.com/IvanShishkin/printhound/pkg/models"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// consolePresenter prints session status lines
type consolePresenter struct {
	out io.Writer
}

func (p *consolePresenter) ListChanged([]models.FileEntry) {}

func (p *consolePresenter) SelectionChanged(int) {}

func (p *consolePresenter) StatusChanged(status string) {
	switch {
	case strings.HasPrefix(status, "print failed:"), strings.HasPrefix(status, "Scan error:"):
		fmt.Fprintf(p.out, "  %s\n", red.Sprint("✗ "+status))
	case status == "Scanning..." || status == "Submitting print jobs...":
		fmt.Fprintf(p.out, "\n  %s\n", status)
	default:
		fmt.Fprintf(p.out, "  %s\n", gray.Sprint(status))
	}
}

// progressPrinter redraws scan counts in place on a terminal
type progressPrinter struct {
	out        io.Writer
	terminal   bool
	lastPhase  string
	redrawable bool
}

func newProgressPrinter() *progressPrinter {
	return &progressPrinter{
		out:      os.Stdout,
		terminal: isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd()),
	}
}

func (p *progressPrinter) callback(phase string, current, total int, message string) {
	// Clear previous line if same phase
	if p.terminal && p.redrawable && p.lastPhase == phase {
		fmt.Fprint(p.out, "\033[1A\033[K")
	}
	p.lastPhase = phase
	p.redrawable = false

	switch phase {
	case core.PhaseScanning:
		if current > 0 {
			fmt.Fprintf(p.out, "  %s %d\n", gray.Sprint("Found:"), current)
			p.redrawable = true
		}
	case printer.PhasePrinting:
		if current > 0 {
			fmt.Fprintf(p.out, "  %s %s\n", gray.Sprintf("[%d/%d]", current, total), message)
		}
	}
}

// newSession wires a session to the console
func newSession(cfg *config.Config, dryRun bool) *core.Session {
	var sub printer.Submitter
	if dryRun {
		sub = printer.NewRecordingSubmitter()
	} else {
		sub = printer.NewCommandSubmitter(cfg, logger)
	}

	session := core.NewSession(cfg, sub, logger)
	session.SetPresenter(&consolePresenter{out: os.Stdout})
	session.SetProgressCallback(newProgressPrinter().callback)
	if dryRun {
		session.SetDryRun(true)
		session.SetSleeper(&printer.RecordingSleeper{})
	}
	return session
}

// writeReport renders r with the configured format
func writeReport(cfg *config.Config, r *report.Report) error {
	gen, err := report.NewGenerator(cfg, logger)
	if err != nil {
		return err
	}
	path, err := gen.Generate(r)
	if err != nil {
		logger.Error("Failed to generate report", zap.Error(err))
		return err
	}
	if path != "" {
		fmt.Printf("  %s %s\n\n", gray.Sprint("Report:"), orange.Sprint(path))
	}
	return nil
}

// scanAndSearch runs a scan and, when keywords are given, a search
func scanAndSearch(ctx context.Context, session *core.Session, root string, keywords []string) (*report.Report, error) {
	results, err := session.Scan(ctx, root)
	if err != nil {
		return nil, err
	}

	r := &report.Report{Version: version, Scan: results}
	if len(keywords) > 0 {
		r.Displayed, err = session.Search(strings.Join(keywords, " "))
		if err != nil {
			return nil, err
		}
		r.Keywords = session.Keywords()
	}
	return r, nil
}

// scanCmd creates the scan command
func scanCmd() *cobra.Command {
	var flags commonFlags

	cmd := &cobra.Command{
		Use:   "scan [path]",
		Short: "List printable files under a directory",
		Long:  `Recursively enumerate a directory and list the files with a printable extension.`,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(&flags)
			if err != nil {
				return err
			}
			defer logger.Sync()

			session := newSession(cfg, false)
			r, err := scanAndSearch(cmd.Context(), session, resolvePath(args, cfg), nil)
			if err != nil {
				return exitError(err)
			}
			return writeReport(cfg, r)
		},
	}

	flags.register(cmd, false)
	return cmd
}

// searchCmd creates the search command
func searchCmd() *cobra.Command {
	var flags commonFlags

	cmd := &cobra.Command{
		Use:   "search <path> [keywords...]",
		Short: "List printable files whose path contains the keywords",
		Long: `Scan a directory, then keep the files whose full path contains the keywords
(case-insensitive). With --match=any one keyword suffices, with --match=all every
keyword must appear.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(&flags)
			if err != nil {
				return err
			}
			defer logger.Sync()

			session := newSession(cfg, false)
			r, err := scanAndSearch(cmd.Context(), session, args[0], args[1:])
			if err != nil {
				return exitError(err)
			}
			return writeReport(cfg, r)
		},
	}

	flags.register(cmd, true)
	return cmd
}

// printCmd creates the print command
func printCmd() *cobra.Command {
	var (
		flags       commonFlags
		delay       int
		printerName string
		dryRun      bool
	)

	cmd := &cobra.Command{
		Use:   "print <path> [keywords...]",
		Short: "Print every matching file",
		Long: `Scan a directory, filter by keywords if any are given, select every remaining
file and submit each one to the system print handler, pausing after every job.
A failed submission is reported and the batch continues.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if delay < -1 {
				err := fmt.Errorf("--delay must not be negative (got: %d)", delay)
				fmt.Printf("\n  %s %s\n\n", red.Sprint("✗ Invalid parameter:"), err.Error())
				return err
			}

			cfg, err := loadConfig(&flags)
			if err != nil {
				return err
			}
			defer logger.Sync()

			if delay >= 0 {
				cfg.PrintDelay = delay
			}
			if printerName != "" {
				cfg.Printer.Name = printerName
			}

			session := newSession(cfg, dryRun)
			r, err := scanAndSearch(cmd.Context(), session, args[0], args[1:])
			if err != nil {
				return exitError(err)
			}

			session.ToggleAll()
			r.Batch, err = session.PrintSelected(cmd.Context())
			if r.Batch == nil {
				return exitError(err)
			}
			if reportErr := writeReport(cfg, r); reportErr != nil {
				return reportErr
			}
			if err != nil {
				return err
			}
			if r.Batch.Failed > 0 {
				return fmt.Errorf("%d of %d print jobs failed", r.Batch.Failed, r.Batch.Attempted)
			}
			return nil
		},
	}

	flags.register(cmd, true)
	cmd.Flags().IntVar(&delay, "delay", -1, "Pause after each print job in milliseconds (default from config: 1500)")
	cmd.Flags().StringVar(&printerName, "printer", "", "Destination printer (default: system default)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "List what would be printed without printing")

	return cmd
}

// uiCmd creates the interactive command
func uiCmd() *cobra.Command {
	var (
		flags       commonFlags
		delay       int
		printerName string
		dryRun      bool
	)

	cmd := &cobra.Command{
		Use:   "ui [path]",
		Short: "Interactive scan, search, select and print",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
				return fmt.Errorf("ui needs a terminal; use scan, search or print instead")
			}

			cfg, err := loadConfig(&flags)
			if err != nil {
				return err
			}
			defer logger.Sync()

			if delay >= 0 {
				cfg.PrintDelay = delay
			}
			if printerName != "" {
				cfg.Printer.Name = printerName
			}

			// The UI replaces the console presenter with its own
			session := newSession(cfg, dryRun)
			session.SetProgressCallback(nil)
			return tui.Run(cmd.Context(), session, resolvePath(args, cfg), cfg.GetMatchMode().String())
		},
	}

	flags.register(cmd, true)
	cmd.Flags().IntVar(&delay, "delay", -1, "Pause after each print job in milliseconds (default from config: 1500)")
	cmd.Flags().StringVar(&printerName, "printer", "", "Destination printer (default: system default)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Record print jobs instead of printing")

	return cmd
}
