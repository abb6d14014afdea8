package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/IvanShishkin/printhound/internal/config"
	"github.com/IvanShishkin/printhound/internal/core"
	"github.com/IvanShishkin/printhound/internal/license"
	"github.com/IvanShishkin/printhound/pkg/models"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	version    = core.Version
	logger     *zap.Logger
	verbose    bool
	configFile string
)

var (
	bold   = color.New(color.Bold)
	orange = color.New(color.FgHiYellow, color.Bold)
	gray   = color.New(color.FgHiBlack)
	red    = color.New(color.FgRed)
	green  = color.New(color.FgGreen)
	cyan   = color.New(color.FgCyan)
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "printhound",
		Short: "Printhound - batch printer for document folders",
		Long: `Find printable documents under a directory, narrow them down by keyword
and send the selection to the system printer one file at a time.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Run: func(cmd *cobra.Command, args []string) {
			printMainBanner()
			cmd.Help()
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "Path to a YAML config file")

	// Disable built-in help command
	rootCmd.SetHelpCommand(&cobra.Command{Hidden: true})

	rootCmd.AddCommand(scanCmd())
	rootCmd.AddCommand(searchCmd())
	rootCmd.AddCommand(printCmd())
	rootCmd.AddCommand(uiCmd())
	rootCmd.AddCommand(extensionsCmd())
	rootCmd.AddCommand(configCmd())
	rootCmd.AddCommand(helpCmd())

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	cancel()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// initLogger builds the development logger in verbose mode and an error-only
// JSON logger otherwise
func initLogger() error {
	var err error
	if verbose {
		logger, err = zap.NewDevelopment()
	} else {
		cfg := zap.Config{
			Level:            zap.NewAtomicLevelAt(zapcore.ErrorLevel),
			Encoding:         "json",
			OutputPaths:      []string{"stderr"},
			ErrorOutputPaths: []string{"stderr"},
			EncoderConfig:    zap.NewProductionEncoderConfig(),
		}
		logger, err = cfg.Build()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
	}
	return err
}

// commonFlags are the flags shared by commands that scan a directory
type commonFlags struct {
	extensions   []string
	exclude      []string
	match        string
	reportFormat string
	outputFile   string
}

func (f *commonFlags) register(cmd *cobra.Command, withMatch bool) {
	cmd.Flags().StringSliceVar(&f.extensions, "extensions", nil, "Printable extensions (comma-separated, replaces the default list)")
	cmd.Flags().StringSliceVar(&f.exclude, "exclude", nil, "Directory names to skip (comma-separated)")
	cmd.Flags().StringVarP(&f.reportFormat, "report", "r", "", "Report format: text, json, yaml, md (default: console output)")
	cmd.Flags().StringVarP(&f.outputFile, "output", "o", "", "Output file path")
	if withMatch {
		cmd.Flags().StringVarP(&f.match, "match", "m", "", "Keyword match mode: any, all (default from config: any)")
	}
}

// loadConfig validates flags, initializes the logger, loads configuration,
// applies flag overrides and consults the authorization provider
func loadConfig(flags *commonFlags) (*config.Config, error) {
	if err := validateFlags(flags.match, flags.reportFormat); err != nil {
		fmt.Printf("\n  %s %s\n\n", red.Sprint("✗ Invalid parameter:"), err.Error())
		return nil, err
	}

	if err := initLogger(); err != nil {
		return nil, err
	}

	cfg, err := config.LoadConfig(configFile)
	if err != nil {
		logger.Error("Failed to load config", zap.Error(err))
		return nil, err
	}

	if len(flags.extensions) > 0 {
		cfg.Extensions = flags.extensions
	}
	if len(flags.exclude) > 0 {
		cfg.Exclude = flags.exclude
	}
	if flags.match != "" {
		cfg.MatchMode = flags.match
	}
	if flags.reportFormat != "" {
		cfg.ReportFormat = flags.reportFormat
	}
	if flags.outputFile != "" {
		cfg.OutputFile = flags.outputFile
	}

	if err := cfg.Validate(); err != nil {
		fmt.Printf("\n  %s %s\n\n", red.Sprint("✗ Invalid configuration:"), err.Error())
		return nil, err
	}

	if err := authorize(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// authorize stops the run when the authorization provider refuses
func authorize(cfg *config.Config) error {
	provider, err := license.NewProvider(cfg, logger)
	if err != nil {
		logger.Error("Failed to create authorization provider", zap.Error(err))
		return err
	}
	if !provider.Authorized() {
		fmt.Printf("\n  %s\n\n", red.Sprint("✗ This copy of printhound is not authorized to run."))
		return models.ErrUnauthorized
	}
	return nil
}

// resolvePath picks the directory argument, falling back to the configured path
func resolvePath(args []string, cfg *config.Config) string {
	if len(args) > 0 {
		return args[0]
	}
	return cfg.Path
}

// validateFlags validates CLI flag values
func validateFlags(match, reportFormat string) error {
	if match != "" {
		validModes := []string{"any", "all", "or", "and"}
		if !contains(validModes, strings.ToLower(match)) {
			return fmt.Errorf("--match must be one of: %s (got: %s)", strings.Join(validModes, ", "), match)
		}
	}

	if reportFormat != "" {
		validFormats := []string{"text", "txt", "json", "yaml", "yml", "md", "markdown"}
		if !contains(validFormats, reportFormat) {
			return fmt.Errorf("--report must be one of: %s (got: %s)", strings.Join(validFormats, ", "), reportFormat)
		}
	}

	return nil
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

// exitError hides errors the console already explained
func exitError(err error) error {
	switch {
	case errors.Is(err, models.ErrInvalidInput),
		errors.Is(err, models.ErrNotFound),
		errors.Is(err, models.ErrNoScanYet),
		errors.Is(err, models.ErrNothingSelected):
		return fmt.Errorf("nothing to do: %w", err)
	}
	return err
}

// printMainBanner prints the main banner
func printMainBanner() {
	fmt.Println()
	orange.Println("█▀█ █▀█ █ █▄ █ ▀█▀ █ █ █▀█ █ █ █▄ █ █▀▄")
	orange.Println("█▀▀ █▀▄ █ █ ▀█  █  █▀█ █▄█ █▄█ █ ▀█ █▄▀")
	fmt.Println()
	gray.Printf("Batch Printer v%s\n", version)
	fmt.Println()
}

// extensionsCmd lists the printable extensions in effect
func extensionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "extensions",
		Short: "List printable file extensions",
		Long:  `Display the extensions a scan keeps, from the config file or the built-in list.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := initLogger(); err != nil {
				return err
			}
			defer logger.Sync()

			cfg, err := config.LoadConfig(configFile)
			if err != nil {
				return err
			}

			fmt.Println("PRINTABLE EXTENSIONS:")
			for _, ext := range cfg.Extensions {
				fmt.Printf("  ✓ %s\n", ext)
			}
			fmt.Println()
			if cfg.Printer.TextRender {
				fmt.Println("  .txt files are paginated internally before printing.")
			}
			return nil
		},
	}
}

// configCmd groups configuration helpers
func configCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration helpers",
	}

	var force bool
	initCmd := &cobra.Command{
		Use:   "init [file]",
		Short: "Write a sample config file",
		Long:  `Write the default configuration as YAML (printhound.yaml unless a file is given).`,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "printhound.yaml"
			if len(args) > 0 {
				path = args[0]
			}
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", path)
			}
			if err := config.Default().WriteSample(path); err != nil {
				return fmt.Errorf("failed to write config: %w", err)
			}
			fmt.Printf("  %s %s\n", green.Sprint("✓ Config written:"), path)
			return nil
		},
	}
	initCmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing file")

	cmd.AddCommand(initCmd)
	return cmd
}

// helpCmd creates a detailed help command
func helpCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "help",
		Short: "Show detailed help and documentation",
		Long:  `Display complete documentation including all commands, flags, and examples.`,
		Run: func(cmd *cobra.Command, args []string) {
			printMainBanner()
			section := func(title string) { fmt.Printf("%s\n\n", orange.Sprint(title)) }
			item := func(name, text string) { fmt.Printf("  %-22s %s\n", bold.Sprint(name), text) }

			section("ABOUT")
			fmt.Printf("  Printhound scans a directory tree for printable documents (office files,\n")
			fmt.Printf("  PDFs, images and plain text), filters them by keywords in their paths and\n")
			fmt.Printf("  submits the chosen files to the system print handler one at a time, with\n")
			fmt.Printf("  a pause between jobs so the spooler keeps up.\n\n")

			section("COMMANDS")
			item("scan [path]", "List printable files under a directory")
			item("search <path> [kw...]", "List printable files whose path contains the keywords")
			item("print <path> [kw...]", "Print every matching file")
			item("ui [path]", "Interactive scan, search, select and print")
			item("extensions", "Show the printable extensions")
			item("config init [file]", "Write a sample config file")

			fmt.Println()
			section("FLAGS")
			item("-m, --match <mode>", "Keyword mode: "+cyan.Sprint("any")+" (one keyword suffices) or "+cyan.Sprint("all"))
			item("--delay <ms>", "Pause after each print job (default: 1500)")
			item("--printer <name>", "Destination printer (default: system default)")
			item("--dry-run", "Show what would be printed without printing")
			item("--extensions", "Printable extensions (comma-separated)")
			item("--exclude", "Directory names to skip (comma-separated)")
			item("-r, --report <fmt>", "Report format: text, json, yaml, md")
			item("-o, --output <file>", "Report file path")
			item("-c, --config <file>", "YAML config file (env: PRINTHOUND_*)")
			item("-v, --verbose", "Enable verbose logging")

			fmt.Println()
			section("EXAMPLES")
			gray.Println("  # List everything printable")
			fmt.Printf("  printhound scan ~/Documents\n\n")
			gray.Println("  # Files whose path mentions both iqc and 2024")
			fmt.Printf("  printhound search --match=all ~/Documents iqc 2024\n\n")
			gray.Println("  # Check what would be printed, then print it")
			fmt.Printf("  printhound print --dry-run ~/Documents invoice\n")
			fmt.Printf("  printhound print --printer=office ~/Documents invoice\n\n")
			gray.Println("  # Pick files by hand")
			fmt.Printf("  printhound ui ~/Documents\n\n")
		},
	}
}
