package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	AppPort          string
	StoreURL         string
	StoreAPIKey      string
	StoreBucket      string
	AssistantURL     string
	AssistantAPIKey  string
	ReminderInterval time.Duration
	LocalDBPath      string
	TrustedProxies   []string
}

func LoadConfig() *Config {
	_ = godotenv.Load(".env")

	return &Config{
		AppPort:          getEnv("APP_PORT", "8080"),
		StoreURL:         getEnv("STORE_URL", "http://localhost:54321"),
		StoreAPIKey:      getEnv("STORE_API_KEY", ""),
		StoreBucket:      getEnv("STORE_BUCKET", "task-attachments"),
		AssistantURL:     getEnv("ASSISTANT_URL", ""),
		AssistantAPIKey:  getEnv("ASSISTANT_API_KEY", ""),
		ReminderInterval: getDurationEnv("REMINDER_INTERVAL_SECONDS", 10*time.Second),
		LocalDBPath:      getEnv("LOCAL_DB_PATH", "taskdeck.db"),
		TrustedProxies:   parseTrustedProxies(os.Getenv("TRUSTED_PROXIES")),
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getDurationEnv(key string, fallback time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if seconds, err := strconv.Atoi(value); err == nil && seconds > 0 {
			return time.Duration(seconds) * time.Second
		}
	}
	return fallback
}

func parseTrustedProxies(value string) []string {
	if strings.TrimSpace(value) == "" {
		return nil
	}

	parts := strings.Split(value, ",")
	proxies := make([]string, 0, len(parts))
	for _, part := range parts {
		proxy := strings.TrimSpace(part)
		if proxy == "" {
			continue
		}
		proxies = append(proxies, proxy)
	}

	if len(proxies) == 0 {
		return nil
	}

	return proxies
}
