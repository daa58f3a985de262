package config

// MetricsConfig controls telemetry export. The Prometheus scrape endpoint gets
// its own listener on Port; OTLP push is enabled by OtlpEndpoint.
type MetricsConfig struct {
	Enabled      bool
	Port         string
	OtlpEndpoint string
	ServiceName  string
	OtlpInsecure bool
}

// ListenerEnabled reports whether the scrape listener should start. A port
// equal to the main HTTP port would fail to bind, so it disables the listener
// and leaves OTLP push as the only export.
func (m MetricsConfig) ListenerEnabled(mainPort string) bool {
	return m.Enabled && m.Port != "" && m.Port != mainPort
}

func loadMetrics() MetricsConfig {
	return MetricsConfig{
		Enabled:      boolEnvOrDefault(envMetricsOn, true),
		Port:         envOrDefault(envMetricsPort, defaultMetricsPort),
		OtlpEndpoint: envOrDefault(envOtelEndpoint, ""),
		ServiceName:  envOrDefault(envOtelService, defaultServiceName),
		OtlpInsecure: boolEnvOrDefault(envOtelInsecure, true),
	}
}
