package initializers

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Config struct {
	Port             string
	DatabaseURL      string
	DBPath           string
	StaticDir        string
	RosterFile       string
	CORSAllowOrigins []string
	RateLimitRPS     float64
	RateLimitBurst   int
	LogLevel         string
	GinMode          string
}

var Cfg Config

// LoadEnv reads .env if present and fills Cfg from the environment
func LoadEnv() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Warn().Err(err).Msg("Failed to load .env file")
	}
	Cfg = LoadConfig()
}

// LoadConfig builds a Config from environment variables, applying defaults
func LoadConfig() Config {
	return Config{
		Port:             getEnv("PORT", "3000"),
		DatabaseURL:      os.Getenv("DATABASE_URL"),
		DBPath:           getEnv("DB_PATH", "prayers.db"),
		StaticDir:        getEnv("STATIC_DIR", "./public"),
		RosterFile:       os.Getenv("ROSTER_FILE"),
		CORSAllowOrigins: splitList(getEnv("CORS_ALLOW_ORIGINS", "*")),
		RateLimitRPS:     getEnvFloat("RATE_LIMIT_RPS", 0),
		RateLimitBurst:   getEnvInt("RATE_LIMIT_BURST", 5),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		GinMode:          os.Getenv("GIN_MODE"),
	}
}

// UsePostgres reports whether DATABASE_URL selects the PostgreSQL backend
func (c Config) UsePostgres() bool {
	return c.DatabaseURL != ""
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := getEnv(key, "")
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Warn().Str("key", key).Str("value", v).Msg("Invalid integer in environment, using default")
		return fallback
	}
	return n
}

func getEnvFloat(key string, fallback float64) float64 {
	v := getEnv(key, "")
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		log.Warn().Str("key", key).Str("value", v).Msg("Invalid number in environment, using default")
		return fallback
	}
	return f
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
