package update

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/sandeepkv93/taskpager/internal/api"
)

func TestDefaultRuntimeConfig(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	cfg := DefaultRuntimeConfig()
	if cfg.APIBaseURL != api.DefaultBaseURL || cfg.PageSize != 5 {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.StatePath != filepath.Join("/tmp/xdg", "taskpager", "state.json") {
		t.Fatalf("unexpected state path %q", cfg.StatePath)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}
}

func TestRuntimeConfigFromEnv(t *testing.T) {
	t.Setenv("TASKPAGER_API_URL", "http://127.0.0.1:8089")
	t.Setenv("TASKPAGER_PAGE_SIZE", "10")
	t.Setenv("TASKPAGER_REQUEST_TIMEOUT", "2s")
	t.Setenv("TASKPAGER_SYNTHESIS", "RANDOM")
	t.Setenv("TASKPAGER_TOAST_TTL", "750")
	t.Setenv("TASKPAGER_DESKTOP_NOTIFICATIONS", "yes")
	t.Setenv("TASKPAGER_LOG_LEVEL", "debug")

	cfg := RuntimeConfigFromEnv(DefaultRuntimeConfig())
	if cfg.APIBaseURL != "http://127.0.0.1:8089" || cfg.PageSize != 10 {
		t.Fatalf("unexpected env overrides: %+v", cfg)
	}
	if cfg.RequestTimeout != 2*time.Second || cfg.ToastTTL != 750*time.Millisecond {
		t.Fatalf("unexpected durations: timeout=%s ttl=%s", cfg.RequestTimeout, cfg.ToastTTL)
	}
	if cfg.Synthesis != api.SynthesisRandom || !cfg.DesktopNotifications || cfg.LogLevel != "debug" {
		t.Fatalf("unexpected env overrides: %+v", cfg)
	}
}

func TestRuntimeConfigFromEnvIgnoresBadValues(t *testing.T) {
	t.Setenv("TASKPAGER_PAGE_SIZE", "zero")
	t.Setenv("TASKPAGER_DESKTOP_NOTIFICATIONS", "maybe")
	base := DefaultRuntimeConfig()
	cfg := RuntimeConfigFromEnv(base)
	if cfg.PageSize != base.PageSize || cfg.DesktopNotifications != base.DesktopNotifications {
		t.Fatalf("bad env values should be ignored: %+v", cfg)
	}
}

func TestLoadRuntimeConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := "api_base_url = \"http://localhost:9000\"\npage_size = 8\nsynthesis = \"random\"\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	base := DefaultRuntimeConfig()
	cfg, err := LoadRuntimeConfigFile(path, base)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.APIBaseURL != "http://localhost:9000" || cfg.PageSize != 8 || cfg.Synthesis != api.SynthesisRandom {
		t.Fatalf("unexpected file overrides: %+v", cfg)
	}
	if cfg.ToastTTL != base.ToastTTL {
		t.Fatalf("fields absent from the file should keep base values, got ttl=%s", cfg.ToastTTL)
	}

	missing, err := LoadRuntimeConfigFile(filepath.Join(dir, "nope.toml"), base)
	if err != nil || missing != base {
		t.Fatalf("missing file should return base, got %+v err=%v", missing, err)
	}
}

func TestLoadRuntimeConfigFileRejectsBadTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("page_size = ["), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := LoadRuntimeConfigFile(path, DefaultRuntimeConfig()); err == nil || !strings.Contains(err.Error(), "config: decode") {
		t.Fatalf("expected decode error, got %v", err)
	}
}

func TestRuntimeConfigValidate(t *testing.T) {
	cfg := DefaultRuntimeConfig()
	cfg.PageSize = 0
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected page size error")
	}

	cfg = DefaultRuntimeConfig()
	cfg.Synthesis = "chaotic"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected synthesis mode error")
	}
}
