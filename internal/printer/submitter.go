// Package printer hands files to the operating system print handler.
package printer

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os/exec"
	"strings"

	"github.com/IvanShishkin/printhound/internal/config"
	"github.com/IvanShishkin/printhound/pkg/models"
	"go.uber.org/zap"
)

// Submitter submits a single file for printing.
// A nil error means the print request was accepted, not that it was printed.
type Submitter interface {
	Submit(ctx context.Context, entry models.FileEntry) error
}

// MethodNamer is implemented by submitters that route files through
// different mechanisms
type MethodNamer interface {
	Method(entry models.FileEntry) string
}

// Renderer turns a file into a printable stream
type Renderer interface {
	Name() string
	Render(path string, w io.Writer) error
}

// MethodDefault is the method name for files opened with their default association
const MethodDefault = "default"

// runFunc executes an external command, feeding stdin when non-nil
type runFunc func(ctx context.Context, name string, args []string, stdin io.Reader) error

// CommandSubmitter submits files by running the platform print command.
// Files whose extension has a registered Renderer are rendered and streamed
// to the spooler instead.
type CommandSubmitter struct {
	config    *config.Config
	logger    *zap.Logger
	renderers map[string]Renderer
	run       runFunc
}

// NewCommandSubmitter creates a submitter from the printer configuration
func NewCommandSubmitter(cfg *config.Config, logger *zap.Logger) *CommandSubmitter {
	s := &CommandSubmitter{
		config:    cfg,
		logger:    logger,
		renderers: make(map[string]Renderer),
		run:       runCommand,
	}
	if cfg.Printer.TextRender {
		s.RegisterRenderer(".txt", NewTextRenderer(cfg.Text))
	}
	return s
}

// RegisterRenderer routes files with extension ext through r
func (s *CommandSubmitter) RegisterRenderer(ext string, r Renderer) {
	s.renderers[strings.ToLower(ext)] = r
	s.logger.Debug("Registered renderer",
		zap.String("extension", ext),
		zap.String("renderer", r.Name()))
}

// Method returns the mechanism used for entry
func (s *CommandSubmitter) Method(entry models.FileEntry) string {
	if r, ok := s.renderers[entry.Extension]; ok {
		return r.Name()
	}
	return MethodDefault
}

// Submit hands entry to the print handler
func (s *CommandSubmitter) Submit(ctx context.Context, entry models.FileEntry) error {
	if r, ok := s.renderers[entry.Extension]; ok {
		return s.submitRendered(ctx, entry, r)
	}

	name, args := s.fileCommand(entry.Path)
	s.logger.Debug("Submitting file",
		zap.String("path", entry.Path),
		zap.String("command", name),
		zap.Strings("args", args))

	return s.run(ctx, name, args, nil)
}

func (s *CommandSubmitter) submitRendered(ctx context.Context, entry models.FileEntry, r Renderer) error {
	var buf bytes.Buffer
	if err := r.Render(entry.Path, &buf); err != nil {
		return fmt.Errorf("%s render failed: %w", r.Name(), err)
	}

	name, args := s.streamCommand(entry.Name)
	s.logger.Debug("Submitting rendered file",
		zap.String("path", entry.Path),
		zap.String("renderer", r.Name()),
		zap.Int("bytes", buf.Len()),
		zap.String("command", name))

	return s.run(ctx, name, args, &buf)
}

// fileCommand builds the command that prints a file by path
func (s *CommandSubmitter) fileCommand(path string) (string, []string) {
	if s.config.Printer.Command != "" {
		args := append(append([]string(nil), s.config.Printer.Args...), path)
		return s.config.Printer.Command, args
	}
	return defaultFileCommand(path, s.config.Printer.Name)
}

// streamCommand builds the command that prints data read from stdin
func (s *CommandSubmitter) streamCommand(title string) (string, []string) {
	if s.config.Printer.Command != "" {
		return s.config.Printer.Command, append([]string(nil), s.config.Printer.Args...)
	}
	return defaultStreamCommand(title, s.config.Printer.Name)
}

// runCommand runs name with args and returns its output in the error on failure
func runCommand(ctx context.Context, name string, args []string, stdin io.Reader) error {
	cmd := exec.CommandContext(ctx, name, args...)
	if stdin != nil {
		cmd.Stdin = stdin
	}
	output, err := cmd.CombinedOutput()
	if err != nil {
		msg := strings.TrimSpace(string(output))
		if msg != "" {
			return fmt.Errorf("%s: %w: %s", name, err, msg)
		}
		return fmt.Errorf("%s: %w", name, err)
	}
	return nil
}
