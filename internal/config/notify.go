package config

// NotifyConfig selects where goal events are published besides the log.
type NotifyConfig struct {
	GoalChannelID   string
	RedisURL        string
	RedisGoalStream string
	// RedisStreamMaxLen trims the goal stream approximately; zero keeps everything.
	RedisStreamMaxLen int
}

func loadNotify() NotifyConfig {
	return NotifyConfig{
		GoalChannelID:     envOrDefault(envGoalChannelID, ""),
		RedisURL:          envOrDefault(envRedisURL, ""),
		RedisGoalStream:   envOrDefault(envRedisGoalStream, defaultRedisGoalStream),
		RedisStreamMaxLen: intEnvOrDefault(envRedisStreamMaxLen, defaultRedisStreamMaxLen),
	}
}

// HTTPConfig controls the health/watch listener.
type HTTPConfig struct {
	AllowedOrigins []string
	// AdminToken guards the watch control routes; empty disables them.
	AdminToken string
}

func loadHTTP() HTTPConfig {
	return HTTPConfig{
		AllowedOrigins: stringListEnv(envCORSOrigins),
		AdminToken:     envOrDefault(envAdminToken, ""),
	}
}
