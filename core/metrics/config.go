package metrics

import "github.com/MakerMama/afterschool-finder/core/factory"

// Config defines settings for metrics sinks.
type Config struct {
	Sinks []factory.ModuleConfig `json:"sinks"`
	// PrometheusAddr, when set, serves /metrics on a dedicated listener.
	PrometheusAddr string `json:"prometheus_addr"`
}
