package metrics

import coremetrics "github.com/pjanik/dayplan/core/metrics"

// MultiSink fans plan results out to multiple sinks.
type MultiSink struct {
	Sinks []coremetrics.Sink
}

// NewMultiSink creates a MultiSink with the provided sinks.
func NewMultiSink(sinks ...coremetrics.Sink) *MultiSink {
	return &MultiSink{Sinks: sinks}
}

// RecordPlanResult forwards the record to all sinks, returning the first
// error encountered.
func (m *MultiSink) RecordPlanResult(res coremetrics.PlanResult) error {
	for _, s := range m.Sinks {
		if err := s.RecordPlanResult(res); err != nil {
			return err
		}
	}
	return nil
}
