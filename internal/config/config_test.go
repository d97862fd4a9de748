package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func setRequired(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/rise")
	t.Setenv("SUPABASE_URL", "https://example.supabase.co/")
	t.Setenv("SUPABASE_ANON_KEY", "anon")
}

func TestLoadAPIFromEnvDefaults(t *testing.T) {
	testChdir(t, t.TempDir())
	setRequired(t)
	t.Setenv("PORT", "")
	t.Setenv("RISE_SHOOTOUT_NPC", "")

	cfg, err := LoadAPIFromEnv()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Addr != ":8080" {
		t.Fatalf("expected :8080, got %q", cfg.Addr)
	}
	if cfg.SupabaseURL != "https://example.supabase.co" {
		t.Fatalf("trailing slash not trimmed: %q", cfg.SupabaseURL)
	}
	if cfg.ShootoutNPC != "counter" || cfg.ActionBurst != 10 || cfg.RequestTimeout != time.Minute {
		t.Fatalf("unexpected defaults %+v", cfg)
	}
}

func TestLoadAPIFromEnvOverrides(t *testing.T) {
	testChdir(t, t.TempDir())
	setRequired(t)
	t.Setenv("PORT", "9090")
	t.Setenv("RISE_SHOOTOUT_NPC", "RANDOM")
	t.Setenv("RISE_ACTION_RATE", "2.5")
	t.Setenv("RISE_AUTO_MIGRATE", "true")
	t.Setenv("REDIS_DB", "not-a-number")

	cfg, err := LoadAPIFromEnv()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Addr != ":9090" || cfg.ShootoutNPC != "random" || cfg.ActionRate != 2.5 || !cfg.AutoMigrate {
		t.Fatalf("overrides not applied %+v", cfg)
	}
	if cfg.RedisDB != 0 {
		t.Fatalf("bad int should fall back, got %d", cfg.RedisDB)
	}
}

func TestLoadAPIFromEnvRequired(t *testing.T) {
	testChdir(t, t.TempDir())
	setRequired(t)
	t.Setenv("SUPABASE_ANON_KEY", "")
	if _, err := LoadAPIFromEnv(); err == nil {
		t.Fatalf("expected missing anon key error")
	}
}

func TestDotEnvDoesNotOverride(t *testing.T) {
	dir := t.TempDir()
	testChdir(t, dir)
	body := "# local\nexport RISE_API_BASE_URL=\"http://from-file:1\"\nRISE_ENV_PROBE='file'\n"
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte(body), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	t.Setenv("RISE_ENV_PROBE", "process")
	t.Setenv("RISE_API_BASE_URL", "")
	os.Unsetenv("RISE_API_BASE_URL")

	LoadDotEnv()
	t.Cleanup(func() { os.Unsetenv("RISE_API_BASE_URL") })

	if got := os.Getenv("RISE_ENV_PROBE"); got != "process" {
		t.Fatalf("process env should win, got %q", got)
	}
	if got := LoadCLIFromEnv().APIBaseURL; got != "http://from-file:1" {
		t.Fatalf("expected value from file, got %q", got)
	}
}
