package tracing

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/wyfcoding/ratecurve/bootstrap"
	"github.com/wyfcoding/ratecurve/calendar"
	"github.com/wyfcoding/ratecurve/config"
	"github.com/wyfcoding/ratecurve/curve"
	"github.com/wyfcoding/ratecurve/ratehelpers"
)

func TestInitTracerInstallsGlobalProvider(t *testing.T) {
	shutdown, err := InitTracer(config.TracingConfig{
		ServiceName:  "ratecurve-test",
		OTLPEndpoint: "localhost:4317",
	})
	if err != nil {
		t.Fatalf("InitTracer failed: %v", err)
	}
	if shutdown == nil {
		t.Fatal("InitTracer returned nil shutdown")
	}

	if _, ok := otel.GetTracerProvider().(*sdktrace.TracerProvider); !ok {
		t.Errorf("global tracer provider not installed, got %T", otel.GetTracerProvider())
	}

	// 未产生任何 Span，关闭不应阻塞
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_ = shutdown(ctx)
}

func TestBootstrapSpansReachInstalledProvider(t *testing.T) {
	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))
	otel.SetTracerProvider(tp)
	defer func() {
		_ = tp.Shutdown(context.Background())
	}()

	asof := calendar.NewDate(2026, 1, 1)
	helpers := []*ratehelpers.OisSwapHelper{
		ratehelpers.NewOisSwapHelper(asof, calendar.NewDate(2026, 7, 1), decimal.NewFromFloat(0.025),
			ratehelpers.OisConfig{
				FixedDC:   calendar.ACT365F,
				FixedFreq: calendar.SemiAnnual,
				BDC:       calendar.ModifiedFollowing,
			}),
	}

	_, err := bootstrap.BootstrapDiscountCurve(context.Background(), asof,
		curve.Config{DayCount: calendar.ACT365F}, helpers, bootstrap.DefaultOptions())
	if err != nil {
		t.Fatalf("bootstrap failed: %v", err)
	}

	spans := exporter.GetSpans()
	var found bool
	for _, s := range spans {
		if s.Name != "BootstrapDiscountCurve" {
			continue
		}
		found = true
		var pillars int64 = -1
		for _, attr := range s.Attributes {
			if string(attr.Key) == "pillars" {
				pillars = attr.Value.AsInt64()
			}
		}
		if pillars != 1 {
			t.Errorf("pillars attribute = %d, want 1", pillars)
		}
	}
	if !found {
		t.Errorf("no BootstrapDiscountCurve span exported, got %d spans", len(spans))
	}
}
