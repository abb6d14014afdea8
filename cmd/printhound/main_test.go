package main

import (
	"bytes"
	"errors"
	"testing"

	"github.com/IvanShishkin/printhound/internal/core"
	"github.com/IvanShishkin/printhound/internal/printer"
	"github.com/IvanShishkin/printhound/pkg/models"
	"github.com/fatih/color"
)

func TestValidateFlags(t *testing.T) {
	tests := []struct {
		name         string
		match        string
		reportFormat string
		wantErr      bool
	}{
		{"Empty", "", "", false},
		{"Match all", "all", "", false},
		{"Match AND", "AND", "", false},
		{"Bad match", "xor", "", true},
		{"YAML report", "", "yaml", false},
		{"HTML report", "", "html", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateFlags(tt.match, tt.reportFormat)
			if (err != nil) != tt.wantErr {
				t.Errorf("validateFlags() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestExitError(t *testing.T) {
	err := exitError(models.ErrNothingSelected)
	if !errors.Is(err, models.ErrNothingSelected) {
		t.Errorf("exitError() lost the cause: %v", err)
	}

	other := errors.New("boom")
	if got := exitError(other); got != other {
		t.Errorf("exitError() = %v, want the original error", got)
	}
}

func TestConsolePresenter(t *testing.T) {
	color.NoColor = true
	var buf bytes.Buffer
	p := &consolePresenter{out: &buf}

	p.StatusChanged("Scanning...")
	p.StatusChanged("print failed: a.pdf - no handler")

	want := "\n  Scanning...\n  ✗ print failed: a.pdf - no handler\n"
	if buf.String() != want {
		t.Errorf("output = %q, want %q", buf.String(), want)
	}
}

func TestProgressPrinter(t *testing.T) {
	color.NoColor = true
	var buf bytes.Buffer
	p := &progressPrinter{out: &buf}

	p.callback(core.PhaseScanning, 0, 0, "Scanning...")
	p.callback(core.PhaseScanning, 10, 0, "/docs/a.pdf")
	p.callback(printer.PhasePrinting, 1, 2, "/docs/a.pdf")

	want := "  Found: 10\n  [1/2] /docs/a.pdf\n"
	if buf.String() != want {
		t.Errorf("output = %q, want %q", buf.String(), want)
	}
}
