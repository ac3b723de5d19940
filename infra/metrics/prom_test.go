package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	coremetrics "github.com/pjanik/dayplan/core/metrics"
)

func TestPromSinkRecordPlanResult(t *testing.T) {
	reg := prometheus.NewRegistry()
	sinkIf, err := NewPromSinkWithRegistry(coremetrics.Config{}, reg)
	if err != nil {
		t.Fatalf("create sink: %v", err)
	}
	sink, ok := sinkIf.(*PromSink)
	if !ok {
		t.Fatalf("expected PromSink")
	}
	res := coremetrics.PlanResult{
		Blocks:        8,
		WorkBlocks:    4,
		AssignedSlots: 3,
		HabitsDropped: 1,
		WorkMinutes:   200,
		GeneratedAt:   time.Now(),
		Elapsed:       150 * time.Microsecond,
	}
	if err := sink.RecordPlanResult(res); err != nil {
		t.Fatalf("record: %v", err)
	}
	if got := testutil.ToFloat64(sink.runs); got != 1 {
		t.Fatalf("plan_runs_total = %f", got)
	}
	if got := testutil.ToFloat64(sink.assigned); got != 3 {
		t.Fatalf("plan_assigned_slots = %f", got)
	}
	if got := testutil.ToFloat64(sink.workMin); got != 200 {
		t.Fatalf("plan_work_minutes = %f", got)
	}
	if got := testutil.ToFloat64(sink.dropped.WithLabelValues("no_slot")); got != 1 {
		t.Fatalf("plan_habits_dropped_total = %f", got)
	}
}

func TestPromSinkReregister(t *testing.T) {
	reg := prometheus.NewRegistry()
	if _, err := NewPromSinkWithRegistry(coremetrics.Config{}, reg); err != nil {
		t.Fatalf("first registration: %v", err)
	}
	// Registering twice on the same registry must reuse collectors.
	if _, err := NewPromSinkWithRegistry(coremetrics.Config{}, reg); err != nil {
		t.Fatalf("second registration: %v", err)
	}
}

func TestMultiSinkFanOut(t *testing.T) {
	reg := prometheus.NewRegistry()
	sinkIf, err := NewPromSinkWithRegistry(coremetrics.Config{}, reg)
	if err != nil {
		t.Fatalf("create sink: %v", err)
	}
	multi := NewMultiSink(coremetrics.NopSink{}, sinkIf)
	if err := multi.RecordPlanResult(coremetrics.PlanResult{AssignedSlots: 2}); err != nil {
		t.Fatalf("multi record: %v", err)
	}
	sink := sinkIf.(*PromSink)
	if got := testutil.ToFloat64(sink.runs); got != 1 {
		t.Fatalf("fan-out missed the prom sink: %f", got)
	}
}
