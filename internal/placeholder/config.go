package placeholder

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the placeholder server settings read from PLACEHOLDER_* variables.
type Config struct {
	Host         string
	Port         string
	DBPath       string
	SeedCount    int
	Latency      time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	LogLevel     string
	LogEncoding  string
}

func (c Config) Address() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

// LoadConfig reads an optional .env file and the environment.
func LoadConfig() Config {
	_ = godotenv.Load(".env")

	return Config{
		Host:         getString("PLACEHOLDER_HOST", "127.0.0.1"),
		Port:         getString("PLACEHOLDER_PORT", "8089"),
		DBPath:       getString("PLACEHOLDER_DB_PATH", ":memory:"),
		SeedCount:    getInt("PLACEHOLDER_SEED_COUNT", 200),
		Latency:      getDuration("PLACEHOLDER_LATENCY", 0),
		ReadTimeout:  getDuration("PLACEHOLDER_READ_TIMEOUT", 5*time.Second),
		WriteTimeout: getDuration("PLACEHOLDER_WRITE_TIMEOUT", 5*time.Second),
		LogLevel:     getString("PLACEHOLDER_LOG_LEVEL", "info"),
		LogEncoding:  getString("PLACEHOLDER_LOG_ENCODING", "console"),
	}
}

func getString(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil {
			return parsed
		}
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if parsed, err := time.ParseDuration(val); err == nil {
			return parsed
		}
		if millis, err := strconv.Atoi(val); err == nil {
			return time.Duration(millis) * time.Millisecond
		}
	}
	return fallback
}
