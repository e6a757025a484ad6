package update

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/sandeepkv93/taskpager/internal/api"
	"github.com/sandeepkv93/taskpager/internal/model"
)

const appName = "taskpager"

type RuntimeConfig struct {
	APIBaseURL           string        `toml:"api_base_url"`
	PageSize             int           `toml:"page_size"`
	RequestTimeout       time.Duration `toml:"request_timeout"`
	Synthesis            string        `toml:"synthesis"`
	ToastTTL             time.Duration `toml:"toast_ttl"`
	DesktopNotifications bool          `toml:"desktop_notifications"`
	SchedulerBuffer      int           `toml:"scheduler_buffer"`
	StatePath            string        `toml:"state_path"`
	LogLevel             string        `toml:"log_level"`
	LogEncoding          string        `toml:"log_encoding"`
	LogFile              string        `toml:"log_file"`
}

func DefaultRuntimeConfig() RuntimeConfig {
	dir := DefaultConfigDir()
	return RuntimeConfig{
		APIBaseURL:           api.DefaultBaseURL,
		PageSize:             model.DefaultPageSize,
		RequestTimeout:       api.DefaultTimeout,
		Synthesis:            api.SynthesisStable,
		ToastTTL:             4500 * time.Millisecond,
		DesktopNotifications: false,
		SchedulerBuffer:      64,
		StatePath:            filepath.Join(dir, "state.json"),
		LogLevel:             "info",
		LogEncoding:          "json",
		LogFile:              filepath.Join(dir, appName+".log"),
	}
}

// DefaultConfigDir follows XDG_CONFIG_HOME, falling back to ~/.config.
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, appName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "." + appName
	}
	return filepath.Join(home, ".config", appName)
}

func DefaultConfigPath() string {
	return filepath.Join(DefaultConfigDir(), "config.toml")
}

// LoadRuntimeConfigFile overlays the TOML file at path on base. A missing file is not an error.
func LoadRuntimeConfigFile(path string, base RuntimeConfig) (RuntimeConfig, error) {
	cfg := base
	if strings.TrimSpace(path) == "" {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return base, nil
		}
		return base, fmt.Errorf("config: decode %s: %w", path, err)
	}
	return cfg, nil
}

func RuntimeConfigFromEnv(base RuntimeConfig) RuntimeConfig {
	cfg := base
	if v := strings.TrimSpace(os.Getenv("TASKPAGER_API_URL")); v != "" {
		cfg.APIBaseURL = v
	}
	if v, ok := getEnvInt("TASKPAGER_PAGE_SIZE"); ok && v > 0 {
		cfg.PageSize = v
	}
	if v, ok := getEnvDuration("TASKPAGER_REQUEST_TIMEOUT"); ok && v > 0 {
		cfg.RequestTimeout = v
	}
	if v := strings.TrimSpace(os.Getenv("TASKPAGER_SYNTHESIS")); v != "" {
		cfg.Synthesis = strings.ToLower(v)
	}
	if v, ok := getEnvDuration("TASKPAGER_TOAST_TTL"); ok && v >= 0 {
		cfg.ToastTTL = v
	}
	if v, ok := getEnvBool("TASKPAGER_DESKTOP_NOTIFICATIONS"); ok {
		cfg.DesktopNotifications = v
	}
	if v, ok := getEnvInt("TASKPAGER_SCHEDULER_BUFFER"); ok && v > 0 {
		cfg.SchedulerBuffer = v
	}
	if v := strings.TrimSpace(os.Getenv("TASKPAGER_STATE_FILE")); v != "" {
		cfg.StatePath = v
	}
	if v := strings.TrimSpace(os.Getenv("TASKPAGER_LOG_LEVEL")); v != "" {
		cfg.LogLevel = v
	}
	if v := strings.TrimSpace(os.Getenv("TASKPAGER_LOG_ENCODING")); v != "" {
		cfg.LogEncoding = v
	}
	if v := strings.TrimSpace(os.Getenv("TASKPAGER_LOG_FILE")); v != "" {
		cfg.LogFile = v
	}
	return cfg
}

func (c RuntimeConfig) Validate() error {
	if c.PageSize <= 0 {
		return fmt.Errorf("config: page_size must be positive, got %d", c.PageSize)
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("config: request_timeout must be positive, got %s", c.RequestTimeout)
	}
	switch c.Synthesis {
	case api.SynthesisStable, api.SynthesisRandom:
	default:
		return fmt.Errorf("config: unknown synthesis mode %q", c.Synthesis)
	}
	return nil
}

func getEnvInt(name string) (int, bool) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return 0, false
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}

func getEnvDuration(name string) (time.Duration, bool) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return 0, false
	}
	if d, err := time.ParseDuration(raw); err == nil {
		return d, true
	}
	if ms, err := strconv.Atoi(raw); err == nil {
		return time.Duration(ms) * time.Millisecond, true
	}
	return 0, false
}

func getEnvBool(name string) (bool, bool) {
	raw := strings.TrimSpace(strings.ToLower(os.Getenv(name)))
	if raw == "" {
		return false, false
	}
	switch raw {
	case "1", "true", "yes", "y", "on":
		return true, true
	case "0", "false", "no", "n", "off":
		return false, true
	default:
		return false, false
	}
}
