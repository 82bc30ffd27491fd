package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Dedup backend names accepted in DEDUP_BACKEND.
const (
	DedupNone   = "none"
	DedupMemory = "memory"
	DedupRedis  = "redis"
)

// Config holds runtime configuration for the alert relay.
type Config struct {
	HTTPAddr string

	TelegramToken  string
	TelegramChatID int64

	DedupBackend      string
	DedupTTL          time.Duration
	DedupMaxEntries   int
	DedupTrimInterval time.Duration

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	KafkaBrokers []string
	KafkaTopic   string
}

// envOrDefault returns the value of an env var or a default.
func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envIntOrDefault(key string, def int) (int, error) {
	if raw := os.Getenv(key); raw != "" {
		val, err := strconv.Atoi(raw)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %w", key, err)
		}
		return val, nil
	}
	return def, nil
}

func envCSV(key string) []string {
	raw := os.Getenv(key)
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

// Load reads configuration from environment variables. The Telegram
// credential and chat are required; everything else has defaults.
func Load() (Config, error) {
	token := strings.TrimSpace(os.Getenv("TELEGRAM_BOT_TOKEN"))
	if token == "" {
		return Config{}, fmt.Errorf("TELEGRAM_BOT_TOKEN is required")
	}
	chatRaw := strings.TrimSpace(os.Getenv("TELEGRAM_CHAT_ID"))
	if chatRaw == "" {
		return Config{}, fmt.Errorf("TELEGRAM_CHAT_ID is required")
	}
	chatID, err := strconv.ParseInt(chatRaw, 10, 64)
	if err != nil {
		return Config{}, fmt.Errorf("invalid TELEGRAM_CHAT_ID: %w", err)
	}

	backend := envOrDefault("DEDUP_BACKEND", DedupMemory)
	switch backend {
	case DedupNone, DedupMemory, DedupRedis:
	default:
		return Config{}, fmt.Errorf("unknown DEDUP_BACKEND %q (want none, memory or redis)", backend)
	}

	ttlSec, err := envIntOrDefault("DEDUP_TTL", 900)
	if err != nil {
		return Config{}, err
	}
	maxEntries, err := envIntOrDefault("DEDUP_MAX_ENTRIES", 1000)
	if err != nil {
		return Config{}, err
	}
	trimSec, err := envIntOrDefault("DEDUP_TRIM_INTERVAL", 300)
	if err != nil {
		return Config{}, err
	}
	redisDB, err := envIntOrDefault("REDIS_DB", 0)
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		HTTPAddr: envOrDefault("HTTP_ADDR", ":8080"),

		TelegramToken:  token,
		TelegramChatID: chatID,

		DedupBackend:      backend,
		DedupTTL:          time.Duration(ttlSec) * time.Second,
		DedupMaxEntries:   maxEntries,
		DedupTrimInterval: time.Duration(trimSec) * time.Second,

		RedisAddr:     envOrDefault("REDIS_ADDR", "localhost:6379"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       redisDB,

		KafkaBrokers: envCSV("KAFKA_BROKERS"),
		KafkaTopic:   envOrDefault("KAFKA_TOPIC", "withdrawal_summaries"),
	}

	return cfg, nil
}
