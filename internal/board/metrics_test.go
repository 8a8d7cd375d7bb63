package board

import (
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	b := New(WithMetrics(reg))

	_ = b.StartMatch("Spain", "Brazil")
	_ = b.StartMatch("Germany", "France")
	_ = b.StartMatch("Spain", "Italy")
	_ = b.UpdateScore("Spain", "Brazil", 1, 0)
	_ = b.FinishMatch("Germany", "France")
	_ = b.Summary()

	m := b.metrics
	if got := testutil.ToFloat64(m.ongoing); got != 1 {
		t.Errorf("ongoing_matches = %v, want 1", got)
	}

	tests := []struct {
		op, result string
		want       float64
	}{
		{OpStart, resultOK, 2},
		{OpStart, resultRejected, 1},
		{OpUpdate, resultOK, 1},
		{OpFinish, resultOK, 1},
		{OpSummary, resultOK, 1},
	}
	for _, tt := range tests {
		t.Run(tt.op+"_"+tt.result, func(t *testing.T) {
			got := testutil.ToFloat64(m.operations.WithLabelValues(tt.op, tt.result))
			if got != tt.want {
				t.Errorf("operations_total{%s,%s} = %v, want %v", tt.op, tt.result, got, tt.want)
			}
		})
	}

	expected := `
# HELP scoreboard_ongoing_matches Number of matches currently on the board.
# TYPE scoreboard_ongoing_matches gauge
scoreboard_ongoing_matches 1
`
	if err := testutil.GatherAndCompare(reg, strings.NewReader(expected), "scoreboard_ongoing_matches"); err != nil {
		t.Errorf("GatherAndCompare() error = %v", err)
	}
}

func TestMetrics_SharedRegistry(t *testing.T) {
	reg := prometheus.NewRegistry()
	first := New(WithMetrics(reg))
	second := New(WithMetrics(reg))

	_ = first.StartMatch("A", "B")
	_ = second.StartMatch("C", "D")

	got := testutil.ToFloat64(second.metrics.operations.WithLabelValues(OpStart, resultOK))
	if got != 2 {
		t.Errorf("shared counter = %v, want 2", got)
	}
}

func TestMetrics_Disabled(t *testing.T) {
	b := New()
	if b.metrics != nil {
		t.Fatal("metrics should be nil without WithMetrics")
	}
	// Must not panic.
	_ = b.StartMatch("A", "B")
	_ = b.Summary()
}
