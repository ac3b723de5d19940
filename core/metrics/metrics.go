package metrics

import "time"

// PlanResult summarizes one planning run for observability purposes.
type PlanResult struct {
	Blocks        int
	WorkBlocks    int
	AssignedSlots int
	HabitsPlaced  int
	HabitsDropped int
	WorkMinutes   int
	GeneratedAt   time.Time
	Elapsed       time.Duration
}

// Sink records plan results.
type Sink interface {
	RecordPlanResult(res PlanResult) error
}

// NopSink implements Sink with no-op methods.
type NopSink struct{}

func (NopSink) RecordPlanResult(PlanResult) error { return nil }

// Config defines settings for metrics sinks.
type Config struct {
	PrometheusEnabled bool   `json:"prometheus_enabled"`
	PrometheusPort    string `json:"prometheus_port"`
	InfluxEnabled     bool   `json:"influx_enabled"`
	InfluxURL         string `json:"influx_url"`
	InfluxToken       string `json:"influx_token"`
	InfluxOrg         string `json:"influx_org"`
	InfluxBucket      string `json:"influx_bucket"`
}

// SetDefaults applies sane defaults.
func (c *Config) SetDefaults() {
	if c.PrometheusPort == "" {
		c.PrometheusPort = ":9090"
	}
}
