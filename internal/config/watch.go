package config

import "time"

// WatchConfig controls the game watch cadences and the daily rebuild.
type WatchConfig struct {
	PregameInterval   time.Duration
	GameStartInterval time.Duration
	LiveInterval      time.Duration
	RebuildSpec       string
	Timezone          string
	TeamIDs           []int
}

func loadWatch() WatchConfig {
	return WatchConfig{
		PregameInterval:   durationEnvOrDefault(envPregameInterval, defaultPregameInterval),
		GameStartInterval: durationEnvOrDefault(envStartInterval, defaultStartInterval),
		LiveInterval:      durationEnvOrDefault(envLiveInterval, defaultLiveInterval),
		RebuildSpec:       envOrDefault(envRebuildSpec, defaultRebuildSpec),
		Timezone:          envOrDefault(envTimezone, defaultTimezone),
		TeamIDs:           intListEnv(envWatchTeamIDs),
	}
}
