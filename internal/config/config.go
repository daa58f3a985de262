package config

import (
	"log/slog"

	"github.com/joho/godotenv"
)

// Config holds runtime configuration for the bot.
type Config struct {
	Port     string
	Debug    bool
	Discord  DiscordConfig
	StatsAPI StatsAPIConfig
	Watch    WatchConfig
	Notify   NotifyConfig
	HTTP     HTTPConfig
	Metrics  MetricsConfig
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	return Config{
		Port:     envOrDefault(envPort, defaultPort),
		Debug:    boolEnvOrDefault(envDebug, false),
		Discord:  loadDiscord(),
		StatsAPI: loadStatsAPI(),
		Watch:    loadWatch(),
		Notify:   loadNotify(),
		HTTP:     loadHTTP(),
		Metrics:  loadMetrics(),
	}
}

// LoadDotenv populates the process environment from a .env file when one exists.
// Variables already set in the environment win.
func LoadDotenv(logger *slog.Logger) {
	path := envOrDefault(envDotenvPath, defaultDotenvPath)
	if err := godotenv.Load(path); err != nil && logger != nil {
		logger.Debug("no .env file loaded, relying on environment variables", slog.String("path", path))
	}
}
