package config

import (
	"os"
	"time"
)

type Config struct {
	SlackBotToken      string
	SlackSigningSecret string
	CronSecret         string
	AnnounceGroupID    string
	DatabasePath       string
	Port               string
	RotationTZ         string
	LLMAPIURL          string
	LLMAPIKey          string
	LLMModel           string
}

func Load() *Config {
	return &Config{
		SlackBotToken:      getEnv("SLACK_BOT_TOKEN", ""),
		SlackSigningSecret: getEnv("SLACK_SIGNING_SECRET", ""),
		CronSecret:         getEnv("CRON_SECRET", ""),
		AnnounceGroupID:    getEnv("ANNOUNCE_GROUP_ID", ""),
		DatabasePath:       getEnv("DATABASE_PATH", "./roster.db"),
		Port:               getEnv("PORT", "3000"),
		RotationTZ:         getEnv("ROTATION_TZ", "Asia/Taipei"),
		LLMAPIURL:          getEnv("LLM_API_URL", "https://api.openai.com/v1"),
		LLMAPIKey:          getEnv("LLM_API_KEY", ""),
		LLMModel:           getEnv("LLM_MODEL", "gpt-4o-mini"),
	}
}

// Location resolves the rotation timezone. All week arithmetic runs in this
// zone so week boundaries match the office, not the server.
func (c *Config) Location() (*time.Location, error) {
	return time.LoadLocation(c.RotationTZ)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
