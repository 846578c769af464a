package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port           string
	DBDSN          string
	LogFile        string
	LogPretty      bool
	SeedDemo       bool
	RabbitURL      string
	RabbitExchange string
	RateLimit      int
	CORSOrigins    string
}

// Load reads settings from the environment. A .env file in the working
// directory is applied first when present; real env vars win over it.
func Load() Config {
	_ = godotenv.Load()

	cfg := Config{
		Port:           getEnv("PORT", "3000"),
		DBDSN:          getEnv("DB_DSN", "bookstore.db"), // sqlite file in project root
		LogFile:        getEnv("LOG_FILE", "./bookstore.log"),
		LogPretty:      getBool("LOG_PRETTY", false),
		SeedDemo:       getBool("SEED_DEMO", true),
		RabbitURL:      os.Getenv("RABBIT_URL"),
		RabbitExchange: getEnv("RABBIT_EXCHANGE", "bookstore.events"),
		RateLimit:      getInt("RATE_LIMIT", 120),
		CORSOrigins:    getEnv("CORS_ORIGINS", "*"),
	}
	return cfg
}

// Fields is the loggable view of the config; the broker URL may carry credentials.
func (c Config) Fields() map[string]any {
	return map[string]any{
		"port":         c.Port,
		"db_dsn":       c.DBDSN,
		"log_file":     c.LogFile,
		"seed_demo":    c.SeedDemo,
		"events":       c.RabbitURL != "",
		"exchange":     c.RabbitExchange,
		"rate_limit":   c.RateLimit,
		"cors_origins": c.CORSOrigins,
	}
}

func getEnv(k, def string) string {
	if v := strings.TrimSpace(os.Getenv(k)); v != "" {
		return v
	}
	return def
}

func getBool(k string, def bool) bool {
	b, err := strconv.ParseBool(strings.TrimSpace(os.Getenv(k)))
	if err != nil {
		return def
	}
	return b
}

func getInt(k string, def int) int {
	n, err := strconv.Atoi(strings.TrimSpace(os.Getenv(k)))
	if err != nil || n < 0 {
		return def
	}
	return n
}
