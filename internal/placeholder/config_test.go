package placeholder

import (
	"testing"
	"time"
)

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("PLACEHOLDER_PORT", "9999")
	t.Setenv("PLACEHOLDER_SEED_COUNT", "40")
	t.Setenv("PLACEHOLDER_LATENCY", "250")
	t.Setenv("PLACEHOLDER_READ_TIMEOUT", "2s")

	cfg := LoadConfig()
	if cfg.Address() != "127.0.0.1:9999" {
		t.Fatalf("unexpected address %q", cfg.Address())
	}
	if cfg.SeedCount != 40 {
		t.Fatalf("unexpected seed count %d", cfg.SeedCount)
	}
	if cfg.Latency != 250*time.Millisecond {
		t.Fatalf("expected bare number as millis, got %s", cfg.Latency)
	}
	if cfg.ReadTimeout != 2*time.Second {
		t.Fatalf("unexpected read timeout %s", cfg.ReadTimeout)
	}
	if cfg.DBPath != ":memory:" {
		t.Fatalf("unexpected db path %q", cfg.DBPath)
	}
}
