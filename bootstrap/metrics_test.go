package bootstrap

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"

	"github.com/wyfcoding/ratecurve/bootstrap/metrics"
	"github.com/wyfcoding/ratecurve/calendar"
	"github.com/wyfcoding/ratecurve/curve"
	"github.com/wyfcoding/ratecurve/ratehelpers"
)

func TestBootstrapRecordsMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)
	cb := New(nil, m)

	asof := calendar.NewDate(2026, 1, 1)
	helpers := []*ratehelpers.OisSwapHelper{
		ratehelpers.NewOisSwapHelper(asof, calendar.NewDate(2026, 7, 1), decimal.NewFromFloat(0.025), oisConfig()),
		ratehelpers.NewOisSwapHelper(asof, calendar.NewDate(2027, 1, 1), decimal.NewFromFloat(0.030), oisConfig()),
	}

	_, err := cb.BootstrapDiscountCurve(context.Background(), asof,
		curve.Config{DayCount: calendar.ACT365F}, helpers, DefaultOptions())
	if err != nil {
		t.Fatalf("bootstrap failed: %v", err)
	}

	if got := testutil.ToFloat64(m.PillarsSolved.WithLabelValues("discount")); got != 2 {
		t.Errorf("pillars solved counter = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.NonConvergedSolves.WithLabelValues("discount")); got != 0 {
		t.Errorf("non-converged counter = %v, want 0", got)
	}
	// 迭代次数直方图应只有 discount 一条序列
	if got := testutil.CollectAndCount(reg, "ratecurve_bootstrap_solve_iterations"); got != 1 {
		t.Errorf("solve iterations series count = %d, want 1", got)
	}
}

func TestBootstrapCountsNonConvergedSolves(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)
	cb := New(nil, m)

	asof := calendar.NewDate(2026, 1, 1)
	helpers := []*ratehelpers.OisSwapHelper{
		ratehelpers.NewOisSwapHelper(asof, calendar.NewDate(2026, 7, 1), decimal.NewFromFloat(0.025), oisConfig()),
	}

	// 一次迭代不足以收敛：提交最优迭代点，不报错，但计入未收敛指标
	opts := DefaultOptions()
	opts.Solver.MaxIter = 1

	_, err := cb.BootstrapDiscountCurve(context.Background(), asof,
		curve.Config{DayCount: calendar.ACT365F}, helpers, opts)
	if err != nil {
		t.Fatalf("non-convergence must not be an error, got %v", err)
	}

	if got := testutil.ToFloat64(m.PillarsSolved.WithLabelValues("discount")); got != 1 {
		t.Errorf("pillars solved counter = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.NonConvergedSolves.WithLabelValues("discount")); got != 1 {
		t.Errorf("non-converged counter = %v, want 1", got)
	}
}
