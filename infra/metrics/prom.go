package metrics

import (
	coremetrics "github.com/pjanik/dayplan/core/metrics"
	"github.com/prometheus/client_golang/prometheus"
)

// PromSink records planning runs in Prometheus metrics.
type PromSink struct {
	runs     prometheus.Counter
	assigned prometheus.Gauge
	dropped  *prometheus.CounterVec
	duration prometheus.Histogram
	workMin  prometheus.Gauge
}

// NewPromSink registers plan metrics on the default Prometheus registerer.
// The metrics server should be started separately using cfg.PrometheusPort.
func NewPromSink(cfg coremetrics.Config) (coremetrics.Sink, error) {
	return NewPromSinkWithRegistry(cfg, prometheus.DefaultRegisterer)
}

// NewPromSinkWithRegistry registers metrics on the provided registerer.
// A nil registerer defaults to the global Prometheus registerer.
func NewPromSinkWithRegistry(_ coremetrics.Config, reg prometheus.Registerer) (coremetrics.Sink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	runs := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "plan_runs_total",
		Help: "Total number of planning runs",
	})
	assigned := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "plan_assigned_slots",
		Help: "Work slots with a task assigned in the last plan",
	})
	dropped := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "plan_habits_dropped_total",
		Help: "Habits that fit in no work slot",
	}, []string{"reason"})
	duration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "plan_generation_seconds",
		Help:    "Time spent generating a plan",
		Buckets: prometheus.DefBuckets,
	})
	workMin := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "plan_work_minutes",
		Help: "Total work minutes in the last plan",
	})

	if err := reg.Register(runs); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			runs = are.ExistingCollector.(prometheus.Counter)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(assigned); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			assigned = are.ExistingCollector.(prometheus.Gauge)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(dropped); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			dropped = are.ExistingCollector.(*prometheus.CounterVec)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(duration); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			duration = are.ExistingCollector.(prometheus.Histogram)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(workMin); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			workMin = are.ExistingCollector.(prometheus.Gauge)
		} else {
			return nil, err
		}
	}

	return &PromSink{runs: runs, assigned: assigned, dropped: dropped, duration: duration, workMin: workMin}, nil
}

// RecordPlanResult updates the counters and gauges for one planning run.
func (s *PromSink) RecordPlanResult(res coremetrics.PlanResult) error {
	s.runs.Inc()
	s.assigned.Set(float64(res.AssignedSlots))
	s.workMin.Set(float64(res.WorkMinutes))
	s.duration.Observe(res.Elapsed.Seconds())
	if res.HabitsDropped > 0 {
		s.dropped.WithLabelValues("no_slot").Add(float64(res.HabitsDropped))
	}
	return nil
}
