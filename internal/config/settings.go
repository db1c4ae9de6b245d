package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// Settings are the process-level knobs read from the environment. Empty
// URLs disable the matching sink.
type Settings struct {
	RulesPath   string
	LogLevel    logrus.Level
	RedisURL    string
	DatabaseURL string
	NATSURL     string
	WatchAddr   string

	// WatchOrigins lists extra origin host patterns spectators may connect from.
	WatchOrigins []string
}

// LoadSettings reads a .env file if present, then the environment.
// An unparseable LOG_LEVEL falls back to info.
func LoadSettings(envFiles ...string) Settings {
	_ = godotenv.Load(envFiles...)

	level, err := logrus.ParseLevel(strings.TrimSpace(os.Getenv("LOG_LEVEL")))
	if err != nil {
		level = logrus.InfoLevel
	}
	return Settings{
		RulesPath:   os.Getenv("ONETRICK_RULES"),
		LogLevel:    level,
		RedisURL:    os.Getenv("REDIS_URL"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		NATSURL:     os.Getenv("NATS_URL"),
		WatchAddr:   os.Getenv("WATCH_ADDR"),

		WatchOrigins: splitList(os.Getenv("WATCH_ORIGINS")),
	}
}

func splitList(v string) []string {
	var out []string
	for _, item := range strings.Split(v, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
