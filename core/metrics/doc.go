// Package metrics defines the observability hooks of the finder. Sinks such
// as PromSink and InfluxSink (package infra/metrics) record search requests,
// geocode resolutions and schedule changes. Several sinks can be combined
// with NewMultiSink; NewMetricsSink builds one automatically when more than
// one sink is configured.
package metrics
