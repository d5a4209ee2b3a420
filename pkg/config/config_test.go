package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	var cfg Config
	if err := cfg.Load(nil); err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Addr != ":3000" {
		t.Fatalf("expected default addr :3000, got %s", cfg.Addr)
	}
	if cfg.DBMaxConns != 10 {
		t.Fatalf("expected default pool bound 10, got %d", cfg.DBMaxConns)
	}
	if cfg.CacheTTL != 60*time.Second {
		t.Fatalf("expected default cache ttl 60s, got %s", cfg.CacheTTL)
	}
	if cfg.LeaderboardLimit != 100 {
		t.Fatalf("expected default leaderboard limit 100, got %d", cfg.LeaderboardLimit)
	}
	if cfg.FallbackMode {
		t.Fatal("fallback mode should be off by default")
	}
	if cfg.LogLevel != "info" {
		t.Fatalf("expected default log level info, got %s", cfg.LogLevel)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("ADDR", ":8081")
	t.Setenv("DB_MAX_CONNS", "4")
	t.Setenv("CACHE_TTL_MS", "1500")
	t.Setenv("FALLBACK_MODE", "true")
	t.Setenv("ALLOWED_ORIGINS", "http://a.test, http://b.test")
	t.Setenv("LOG_LEVEL", "debug")

	var cfg Config
	if err := cfg.Load(nil); err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Addr != ":8081" {
		t.Fatalf("expected addr :8081, got %s", cfg.Addr)
	}
	if cfg.DBMaxConns != 4 {
		t.Fatalf("expected pool bound 4, got %d", cfg.DBMaxConns)
	}
	if cfg.CacheTTL != 1500*time.Millisecond {
		t.Fatalf("expected cache ttl 1.5s, got %s", cfg.CacheTTL)
	}
	if !cfg.FallbackMode {
		t.Fatal("expected fallback mode on")
	}
	if len(cfg.AllowedOrigins) != 2 || cfg.AllowedOrigins[1] != "http://b.test" {
		t.Fatalf("expected trimmed origins, got %v", cfg.AllowedOrigins)
	}
	if cfg.LogLevel != "debug" {
		t.Fatalf("expected log level debug, got %s", cfg.LogLevel)
	}
}

func TestLoadFlagsOverrideEnv(t *testing.T) {
	t.Setenv("RATE_LIMIT", "5")

	var cfg Config
	if err := cfg.Load([]string{"-RATE_LIMIT", "20", "-RATE_WINDOW_SEC", "30"}); err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.RateLimit != 20 {
		t.Fatalf("expected flag to win over env, got %d", cfg.RateLimit)
	}
	if cfg.RateWindow != 30*time.Second {
		t.Fatalf("expected 30s rate window, got %s", cfg.RateWindow)
	}
}

func TestNewRedisOpts(t *testing.T) {
	opts := NewRedisOpts("redis://localhost:6380/2")
	if opts.Addr != "localhost:6380" || opts.DB != 2 {
		t.Fatalf("unexpected opts: %+v", opts)
	}

	opts = NewRedisOpts("not a url")
	if opts.Addr != "localhost:6379" {
		t.Fatalf("expected localhost fallback, got %s", opts.Addr)
	}
}
