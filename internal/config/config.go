package config

import (
	"log"
	"os"
	"strconv"
	"strings"
)

type Config struct {
	Port             string
	DatabaseURL      string
	RedisURL         string
	TelegramBotToken string

	JWTSecret      string
	JWTExpiryHours int
	AdminUsername  string

	BaseLookbackDays int
	WarmIntervalSecs int
	WarmLookbacks    []int
}

func Load() *Config {
	cfg := &Config{
		DatabaseURL:      os.Getenv("DATABASE_URL"),
		RedisURL:         os.Getenv("REDIS_URL"),
		TelegramBotToken: os.Getenv("TELEGRAM_BOT_TOKEN"),
		JWTSecret:        os.Getenv("JWT_SECRET"),
	}

	if cfg.DatabaseURL == "" {
		log.Println("Warning: DATABASE_URL not set, using in-memory demo accounts")
	}
	if cfg.RedisURL == "" {
		log.Println("Warning: REDIS_URL not set, analytics cache disabled")
	}
	if cfg.JWTSecret == "" {
		log.Println("Warning: JWT_SECRET not set, using insecure demo secret")
		cfg.JWTSecret = "kaspalytics-demo-secret"
	}

	cfg.Port = strings.TrimSpace(os.Getenv("PORT"))
	if cfg.Port == "" {
		cfg.Port = "8080"
	}

	cfg.JWTExpiryHours = 24
	if v := strings.TrimSpace(os.Getenv("JWT_EXPIRY_HOURS")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.JWTExpiryHours = n
		}
	}

	cfg.AdminUsername = strings.TrimSpace(os.Getenv("ADMIN_USERNAME"))
	if cfg.AdminUsername == "" {
		cfg.AdminUsername = "admin"
	}

	cfg.BaseLookbackDays = 365
	if v := strings.TrimSpace(os.Getenv("BASE_LOOKBACK_DAYS")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.BaseLookbackDays = n
		}
	}

	cfg.WarmIntervalSecs = 300
	if v := strings.TrimSpace(os.Getenv("WARM_INTERVAL_SECS")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.WarmIntervalSecs = n
		}
	}

	cfg.WarmLookbacks = []int{1, 7, 30, 365}
	if v := strings.TrimSpace(os.Getenv("WARM_LOOKBACK_DAYS")); v != "" {
		var lookbacks []int
		for _, part := range strings.Split(v, ",") {
			if n, err := strconv.Atoi(strings.TrimSpace(part)); err == nil && n > 0 {
				lookbacks = append(lookbacks, n)
			}
		}
		if len(lookbacks) > 0 {
			cfg.WarmLookbacks = lookbacks
		}
	}

	return cfg
}
