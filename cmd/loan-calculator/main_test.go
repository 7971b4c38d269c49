package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/iwvelando/loan-calculator/pkg/loans"
)

func fixture(name string) string {
	return filepath.Join("..", "..", "internal", "config", "testdata", name)
}

func TestRunOutputFormats(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		validate func(t *testing.T, out string)
	}{
		{
			name: "CSV",
			args: []string{"-config", fixture("car.yaml"), "-output-format", "csv", "-log-level", "error"},
			validate: func(t *testing.T, out string) {
				lines := strings.Split(strings.TrimSpace(out), "\n")
				if len(lines) != 61 {
					t.Fatalf("expected a header and 60 rows, got %d lines", len(lines))
				}
				if !strings.HasPrefix(lines[0], `"period","payment","principal"`) {
					t.Errorf("unexpected header %q", lines[0])
				}
				if !strings.HasPrefix(lines[60], `"60",`) || !strings.HasSuffix(lines[60], `,"0"`) || !strings.Contains(lines[60], `,"750000",`) {
					t.Errorf("expected the last row to clear the balance, got %q", lines[60])
				}
			},
		},
		{
			name: "JSON",
			args: []string{"-config", fixture("car.yaml"), "-output-format", "json", "-log-level", "error"},
			validate: func(t *testing.T, out string) {
				var result loans.CalculationResult
				if err := json.Unmarshal([]byte(out), &result); err != nil {
					t.Fatalf("failed to decode JSON output: %v", err)
				}
				if result.Principal != 750000 || result.TotalMonths != 60 {
					t.Errorf("unexpected result principal %.0f months %d", result.Principal, result.TotalMonths)
				}
				if result.DownPayment.RelatedUpfront != 12000 {
					t.Errorf("expected related upfront 12000, got %.0f", result.DownPayment.RelatedUpfront)
				}
				if result.APR <= 3.0 {
					t.Errorf("expected the registration fee to raise the APR, got %.4f", result.APR)
				}
			},
		},
		{
			name: "Pretty summary only",
			args: []string{"-config", fixture("car.yaml"), "-summary", "-log-level", "error"},
			validate: func(t *testing.T, out string) {
				if !strings.Contains(out, "--- Loan summary ---") || !strings.Contains(out, "Principal:               $750,000") {
					t.Errorf("expected a summary block, got %q", out)
				}
				if strings.Contains(out, "--- Schedule ---") {
					t.Error("expected the schedule to be omitted")
				}
			},
		},
		{
			name: "Pretty with dates from config output settings",
			args: []string{"-config", fixture("mortgage.yaml"), "-output-format", "pretty", "-log-level", "error"},
			validate: func(t *testing.T, out string) {
				if !strings.Contains(out, "Principal:               NT$8,000,000") {
					t.Errorf("expected the configured currency symbol, got %q", out[:200])
				}
				if !strings.Contains(out, "1 (grace) | 2026-01 |") {
					t.Error("expected a dated grace period row")
				}
				if !strings.Contains(out, "360 | 2055-12 |") {
					t.Error("expected the final period dated 2055-12")
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout bytes.Buffer
			if err := run(tt.args, &stdout); err != nil {
				t.Fatalf("run() error = %v", err)
			}
			tt.validate(t, stdout.String())
		})
	}
}

func TestRunConfigOutputFormat(t *testing.T) {
	var stdout bytes.Buffer
	if err := run([]string{"-config", fixture("mortgage.yaml"), "-log-level", "error"}, &stdout); err != nil {
		t.Fatalf("run() error = %v", err)
	}
	if !strings.HasPrefix(stdout.String(), `"period","date","payment"`) {
		t.Errorf("expected CSV output from the config file, got %q", stdout.String()[:40])
	}
}

func TestRunFailures(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		reported bool
	}{
		{"Missing config", []string{"-config", "does-not-exist.yaml"}, false},
		{"Invalid log level", []string{"-config", fixture("car.yaml"), "-log-level", "loud"}, false},
		{"Unknown flag", []string{"-verbose"}, false},
		{"Invalid output format", []string{"-config", fixture("car.yaml"), "-output-format", "xml", "-log-level", "error"}, true},
		{"Invalid loan description", []string{"-config", fixture("invalid.yaml"), "-output-format", "csv", "-log-level", "error"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout bytes.Buffer
			err := run(tt.args, &stdout)
			if err == nil {
				t.Fatal("run() expected an error")
			}
			if errors.Is(err, errReported) != tt.reported {
				t.Errorf("run() error = %v, reported = %v, expected %v", err, errors.Is(err, errReported), tt.reported)
			}
			if stdout.Len() != 0 {
				t.Errorf("expected no output on failure, got %q", stdout.String())
			}
		})
	}
}
