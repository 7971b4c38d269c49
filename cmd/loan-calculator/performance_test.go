package main

import (
	"io"
	"testing"
	"time"

	"github.com/iwvelando/loan-calculator/internal/config"
	"github.com/iwvelando/loan-calculator/pkg/loans"
	"github.com/iwvelando/loan-calculator/pkg/output"
	"go.uber.org/zap"
)

// TestPerformance times each stage of a mortgage calculation.
func TestPerformance(t *testing.T) {
	logger := zap.NewNop()

	start := time.Now()
	conf, err := config.LoadConfiguration(fixture("mortgage.yaml"))
	if err != nil {
		t.Fatalf("LoadConfiguration failed: %v", err)
	}
	loadTime := time.Since(start)

	start = time.Now()
	if err := conf.Validate(); err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	params, err := conf.ToParameters()
	if err != nil {
		t.Fatalf("ToParameters failed: %v", err)
	}
	validateTime := time.Since(start)

	start = time.Now()
	result, err := loans.NewCalculator(logger).Calculate(params, conf.ToCosts())
	if err != nil {
		t.Fatalf("Calculate failed: %v", err)
	}
	calculateTime := time.Since(start)

	start = time.Now()
	if err := output.PrettyFormat(io.Discard, result, output.Options{StartDate: conf.Loan.StartDate}); err != nil {
		t.Fatalf("PrettyFormat failed: %v", err)
	}
	renderTime := time.Since(start)

	totalTime := loadTime + validateTime + calculateTime + renderTime

	t.Logf("Performance metrics:")
	t.Logf("  Load config: %v", loadTime)
	t.Logf("  Validate: %v", validateTime)
	t.Logf("  Calculate: %v", calculateTime)
	t.Logf("  Render: %v", renderTime)
	t.Logf("  Total time: %v", totalTime)
	t.Logf("  APR iterations: %d", result.APRSolution.Iterations)

	if totalTime > 5*time.Second {
		t.Errorf("Total processing time %v exceeds 5 second threshold", totalTime)
	}
	if len(result.Schedule) != 360 {
		t.Errorf("Expected 360 periods, got %d", len(result.Schedule))
	}
}
