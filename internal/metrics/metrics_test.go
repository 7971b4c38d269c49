package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestCalculationsCounter(t *testing.T) {
	before := testutil.ToFloat64(Calculations.WithLabelValues("api", StatusSuccess))
	Calculations.WithLabelValues("api", StatusSuccess).Inc()
	after := testutil.ToFloat64(Calculations.WithLabelValues("api", StatusSuccess))

	if after-before != 1 {
		t.Errorf("Expected counter to increase by 1, got %v", after-before)
	}
}

func TestHistogramsRegistered(t *testing.T) {
	CalculationDuration.Observe(0.002)
	APRIterations.Observe(38)

	if count := testutil.CollectAndCount(CalculationDuration); count != 1 {
		t.Errorf("Expected 1 duration metric, got %d", count)
	}
	if count := testutil.CollectAndCount(APRIterations); count != 1 {
		t.Errorf("Expected 1 iterations metric, got %d", count)
	}
}
