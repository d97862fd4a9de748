package config

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type APIConfig struct {
	Addr              string
	DatabaseURL       string
	DBMaxConns        int32
	SupabaseURL       string
	SupabaseAnonKey   string
	SupabaseJWTSecret string
	RedisAddr         string
	RedisPassword     string
	RedisDB           int
	AutoMigrate       bool
	ShootoutNPC       string
	ActionRate        float64
	ActionBurst       int
	RequestTimeout    time.Duration
}

type WorkerConfig struct {
	DatabaseURL      string
	RedisAddr        string
	RedisPassword    string
	RedisDB          int
	LeaderboardEvery time.Duration
	LeaderboardSize  int
	RunOnce          bool
}

type CLIConfig struct {
	APIBaseURL string
}

// LoadDotEnv reads .env.{RISE_ENV} and then .env. Variables already set in the
// process environment win.
func LoadDotEnv() {
	env := envDefault("RISE_ENV", "development")
	loadEnvFile(".env." + env)
	loadEnvFile(".env")
}

func LoadAPIFromEnv() (APIConfig, error) {
	LoadDotEnv()

	addr := strings.TrimSpace(os.Getenv("PORT"))
	if addr != "" {
		if !strings.HasPrefix(addr, ":") {
			addr = ":" + addr
		}
	} else {
		addr = envDefault("RISE_API_ADDR", ":8080")
	}

	cfg := APIConfig{
		Addr:              addr,
		DatabaseURL:       strings.TrimSpace(os.Getenv("DATABASE_URL")),
		DBMaxConns:        int32(envIntDefault("RISE_DB_MAX_CONNS", 20)),
		SupabaseURL:       strings.TrimRight(strings.TrimSpace(os.Getenv("SUPABASE_URL")), "/"),
		SupabaseAnonKey:   strings.TrimSpace(os.Getenv("SUPABASE_ANON_KEY")),
		SupabaseJWTSecret: strings.TrimSpace(os.Getenv("SUPABASE_JWT_SECRET")),
		RedisAddr:         strings.TrimSpace(os.Getenv("REDIS_ADDR")),
		RedisPassword:     os.Getenv("REDIS_PASSWORD"),
		RedisDB:           envIntDefault("REDIS_DB", 0),
		AutoMigrate:       envBoolDefault("RISE_AUTO_MIGRATE", false),
		ShootoutNPC:       envNPCDefault(),
		ActionRate:        envFloatDefault("RISE_ACTION_RATE", 5),
		ActionBurst:       envIntDefault("RISE_ACTION_BURST", 10),
		RequestTimeout:    envDurationDefault("RISE_REQUEST_TIMEOUT", 60*time.Second),
	}
	if cfg.DatabaseURL == "" {
		return cfg, fmt.Errorf("DATABASE_URL is required")
	}
	if cfg.SupabaseURL == "" {
		return cfg, fmt.Errorf("SUPABASE_URL is required")
	}
	if cfg.SupabaseAnonKey == "" {
		return cfg, fmt.Errorf("SUPABASE_ANON_KEY is required")
	}
	if cfg.ActionRate <= 0 {
		return cfg, fmt.Errorf("RISE_ACTION_RATE must be > 0")
	}
	if cfg.ActionBurst < 1 {
		cfg.ActionBurst = 1
	}
	return cfg, nil
}

func LoadWorkerFromEnv() (WorkerConfig, error) {
	LoadDotEnv()

	cfg := WorkerConfig{
		DatabaseURL:      strings.TrimSpace(os.Getenv("DATABASE_URL")),
		RedisAddr:        strings.TrimSpace(os.Getenv("REDIS_ADDR")),
		RedisPassword:    os.Getenv("REDIS_PASSWORD"),
		RedisDB:          envIntDefault("REDIS_DB", 0),
		LeaderboardEvery: envDurationDefault("RISE_LEADERBOARD_EVERY", time.Minute),
		LeaderboardSize:  envIntDefault("RISE_LEADERBOARD_SIZE", 1000),
		RunOnce:          envBoolDefault("RISE_WORKER_RUN_ONCE", false),
	}
	if cfg.DatabaseURL == "" {
		return cfg, fmt.Errorf("DATABASE_URL is required")
	}
	if cfg.RedisAddr == "" {
		return cfg, fmt.Errorf("REDIS_ADDR is required")
	}
	return cfg, nil
}

func LoadCLIFromEnv() CLIConfig {
	return CLIConfig{
		APIBaseURL: strings.TrimRight(envDefault("RISE_API_BASE_URL", "http://localhost:8080"), "/"),
	}
}

func loadEnvFile(path string) {
	f, err := os.Open(path)
	if err != nil {
		return
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		line = strings.TrimPrefix(line, "export ")
		key, val, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		val = strings.Trim(strings.TrimSpace(val), `"'`)
		if _, exists := os.LookupEnv(key); !exists {
			os.Setenv(key, val)
		}
	}
}

func envDefault(key, fallback string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	return v
}

func envDurationDefault(key string, fallback time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}

func envFloatDefault(key string, fallback float64) float64 {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fallback
	}
	return f
}

func envIntDefault(key string, fallback int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func envBoolDefault(key string, fallback bool) bool {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}

func envNPCDefault() string {
	v := strings.ToLower(strings.TrimSpace(os.Getenv("RISE_SHOOTOUT_NPC")))
	switch v {
	case "counter", "random":
		return v
	default:
		return "counter"
	}
}
