// Package metrics defines interfaces for recording planning observability
// events. Sinks like the Prometheus and InfluxDB adapters in infra/metrics
// record one PlanResult per planning run and can be combined with a
// multi-sink fan-out.
package metrics
