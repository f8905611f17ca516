package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/tesilio/lassistant/internal/news"
)

// Config carries all service settings, loaded once at process start.
type Config struct {
	TelegramToken      string
	TelegramChatID     int64
	TelegramOwnerID    int64
	TelegramWebhookURL string
	ServerPort         string

	OpenAIAPIKey     string
	DataGoServiceKey string

	CityLabel string
	GridX     int
	GridY     int
	Station   string

	NewsCategories       []news.Category
	HeadlinesPerCategory int

	DigestTTL       time.Duration
	WeatherDigestAt string
	NewsDigestAt    string
	Timezone        string

	RedisAddr     string
	RedisPassword string

	LogLevel string
}

// Load reads configuration from the environment, with an optional .env file.
func Load() (*Config, error) {
	// A missing .env is fine; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := &Config{
		TelegramToken:        getEnv("TELEGRAM_BOT_TOKEN", ""),
		TelegramChatID:       getEnvAsInt64("TELEGRAM_CHAT_ID", 0),
		TelegramOwnerID:      getEnvAsInt64("TELEGRAM_OWNER_CHAT_ID", 0),
		TelegramWebhookURL:   getEnv("TELEGRAM_WEBHOOK_URL", ""),
		ServerPort:           getEnv("SERVER_PORT", "8080"),
		OpenAIAPIKey:         getEnv("OPENAI_API_KEY", ""),
		DataGoServiceKey:     getEnv("DATA_GO_KR_SERVICE_KEY", ""),
		CityLabel:            getEnv("WEATHER_CITY_LABEL", "Seoul Gangnam-gu Samseong-dong"),
		GridX:                getEnvAsInt("WEATHER_GRID_X", 61),
		GridY:                getEnvAsInt("WEATHER_GRID_Y", 126),
		Station:              getEnv("AIR_QUALITY_STATION", "삼성동"),
		HeadlinesPerCategory: getEnvAsInt("NEWS_HEADLINES_PER_CATEGORY", 10),
		DigestTTL:            getEnvAsDuration("DIGEST_CACHE_TTL", 6*time.Hour),
		WeatherDigestAt:      getEnv("WEATHER_DIGEST_AT", "07:30"),
		NewsDigestAt:         getEnv("NEWS_DIGEST_AT", "08:00"),
		Timezone:             getEnv("TIMEZONE", "Asia/Seoul"),
		RedisAddr:            getEnv("REDIS_ADDR", ""),
		RedisPassword:        getEnv("REDIS_PASSWORD", ""),
		LogLevel:             getEnv("LOG_LEVEL", "info"),
	}

	categories, err := parseCategories(getEnv("NEWS_CATEGORIES", "IT/Science=105/230"))
	if err != nil {
		return nil, err
	}
	cfg.NewsCategories = categories

	if cfg.TelegramToken == "" {
		return nil, fmt.Errorf("TELEGRAM_BOT_TOKEN is required")
	}
	return cfg, nil
}

// Location resolves the configured timezone, defaulting to UTC when the name
// is unknown.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// parseCategories parses "Name=section/path" pairs separated by commas,
// e.g. "IT/Science=105/230,Economy=101/259".
func parseCategories(raw string) ([]news.Category, error) {
	var categories []news.Category
	for _, pair := range strings.Split(raw, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		name, path, found := strings.Cut(pair, "=")
		if !found || name == "" || path == "" {
			return nil, fmt.Errorf("invalid NEWS_CATEGORIES entry %q", pair)
		}
		categories = append(categories, news.Category{
			Name:        strings.TrimSpace(name),
			SectionPath: strings.TrimSpace(path),
		})
	}
	if len(categories) == 0 {
		return nil, fmt.Errorf("NEWS_CATEGORIES must name at least one category")
	}
	return categories, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
