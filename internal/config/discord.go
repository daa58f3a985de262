package config

// DiscordConfig controls the chat client.
type DiscordConfig struct {
	Token         string
	CommandPrefix string
}

func loadDiscord() DiscordConfig {
	return DiscordConfig{
		Token:         envOrDefault(envDiscordToken, ""),
		CommandPrefix: envOrDefault(envCommandPrefix, defaultPrefix),
	}
}
