package config

import "time"

const (
	envDiscordToken      = "DISCORD_TOKEN"
	envDebug             = "DEBUG"
	envCommandPrefix     = "COMMAND_PREFIX"
	envPort              = "PORT"
	envStatsBaseURL      = "STATSAPI_BASE_URL"
	envStatsTimeout      = "STATSAPI_TIMEOUT"
	envPregameInterval   = "PREGAME_CHECK_INTERVAL"
	envStartInterval     = "GAME_START_CHECK_INTERVAL"
	envLiveInterval      = "LIVE_UPDATE_INTERVAL"
	envRebuildSpec       = "DAILY_REBUILD_SPEC"
	envTimezone          = "TIMEZONE"
	envWatchTeamIDs      = "WATCH_TEAM_IDS"
	envGoalChannelID     = "GOAL_CHANNEL_ID"
	envRedisURL          = "REDIS_URL"
	envRedisGoalStream   = "REDIS_GOAL_STREAM"
	envRedisStreamMaxLen = "REDIS_GOAL_STREAM_MAXLEN"
	envCORSOrigins       = "CORS_ALLOWED_ORIGINS"
	envAdminToken        = "ADMIN_TOKEN"
	envMetricsPort       = "METRICS_PORT"
	envMetricsOn         = "METRICS_ENABLED"
	envOtelEndpoint      = "OTEL_EXPORTER_OTLP_ENDPOINT"
	envOtelService       = "OTEL_SERVICE_NAME"
	envOtelInsecure      = "OTEL_EXPORTER_OTLP_INSECURE"
	envDotenvPath        = "DOTENV_PATH"
	defaultDotenvPath    = ".env"
	defaultServiceName   = "nhl-discord-bot"
	defaultPort          = "8080"
	defaultMetricsPort   = "9090"
	defaultPrefix        = "!"
	defaultStatsBaseURL  = "https://statsapi.web.nhl.com/api/v1"
	defaultStatsTimeout  = 10 * time.Second
	// Cadences are policy: pre-game every 15m, game start every 1m, live every 10s.
	defaultPregameInterval = 15 * Duration(time.Minute)
	defaultStartInterval   = 1 * Duration(time.Minute)
	defaultLiveInterval    = 10 * Duration(time.Second)
	// Daily rebuild at 09:00 local (cron spec, evaluated in defaultTimezone).
	defaultRebuildSpec       = "0 9 * * *"
	defaultTimezone          = "America/New_York"
	defaultRedisGoalStream   = "nhl.goals"
	defaultRedisStreamMaxLen = 10000
)
