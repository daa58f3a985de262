package config

import "time"

// StatsAPIConfig controls how we talk to the NHL stats API.
type StatsAPIConfig struct {
	BaseURL string
	Timeout time.Duration
}

func loadStatsAPI() StatsAPIConfig {
	return StatsAPIConfig{
		BaseURL: envOrDefault(envStatsBaseURL, defaultStatsBaseURL),
		Timeout: durationEnvOrDefault(envStatsTimeout, defaultStatsTimeout),
	}
}
