package config

import (
	"flag"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

type Config struct {
	Addr         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration

	AllowedOrigins []string
	Debug          bool
	LogLevel       string
	DBConnURI      string
	DBMaxConns     int
	RedisURL       string
	RedisOpts      *redis.Options

	// CacheTTL is the leaderboard freshness window; a cached view older than
	// this is recomputed on the next read.
	CacheTTL time.Duration
	// LeaderboardLimit is the fixed size of the cached leaderboard view.
	LeaderboardLimit int

	// FallbackMode allows the server to come up on the synthetic dataset
	// when the database is unreachable at startup.
	FallbackMode bool

	// RateLimit is the number of score submissions allowed per client IP
	// within RateWindow. Zero disables the limiter.
	RateLimit  int
	RateWindow time.Duration
}

// Load parses the command-line arguments into the Config struct
func (c *Config) Load(args []string) error {
	fs := flag.NewFlagSet("highscores", flag.ContinueOnError)

	addrDefault := envOrDefault("ADDR", ":3000")
	debugDefault := envOrDefaultBool("DEBUG", false)
	dbConnDefault := envOrDefault("DATABASE_URL", "postgresql://postgres:postgres@db/highscores")
	dbMaxConnsDefault := envOrDefaultInt("DB_MAX_CONNS", 10)
	redisURLDefault := envOrDefault("REDIS_URL", "redis://localhost:6379/0")
	cacheTTLDefault := envOrDefaultInt("CACHE_TTL_MS", 60000)
	limitDefault := envOrDefaultInt("LEADERBOARD_LIMIT", 100)
	fallbackDefault := envOrDefaultBool("FALLBACK_MODE", false)
	rateLimitDefault := envOrDefaultInt("RATE_LIMIT", 0)
	rateWindowDefault := envOrDefaultInt("RATE_WINDOW_SEC", 60)
	allowedOriginsDefault := envOrDefault("ALLOWED_ORIGINS", "http://localhost:3000")

	fs.StringVar(&c.Addr, "ADDR", addrDefault, "binding server address")
	fs.BoolVar(&c.Debug, "debug", debugDefault, "enable debug mode for detailed logging")
	fs.StringVar(&c.DBConnURI, "DATABASE_URL", dbConnDefault, "database connection uri")
	fs.IntVar(&c.DBMaxConns, "DB_MAX_CONNS", dbMaxConnsDefault, "max concurrent database connections")
	fs.StringVar(&c.RedisURL, "REDIS_URL", redisURLDefault, "redis url")
	fs.IntVar(&c.LeaderboardLimit, "LEADERBOARD_LIMIT", limitDefault, "number of entries held by the cached leaderboard view")
	fs.BoolVar(&c.FallbackMode, "FALLBACK_MODE", fallbackDefault, "serve the synthetic dataset when the database is unreachable at startup")
	fs.IntVar(&c.RateLimit, "RATE_LIMIT", rateLimitDefault, "max score submissions per IP per window (0 = unlimited)")

	var cacheTTLMs int
	fs.IntVar(&cacheTTLMs, "CACHE_TTL_MS", cacheTTLDefault, "leaderboard cache freshness window in milliseconds")

	var rateWindowSec int
	fs.IntVar(&rateWindowSec, "RATE_WINDOW_SEC", rateWindowDefault, "rate limit window in seconds")

	var allowedOrigins string
	fs.StringVar(&allowedOrigins, "ALLOWED_ORIGINS", allowedOriginsDefault, "comma-separated list of allowed origins for CORS")

	if err := fs.Parse(args); err != nil {
		return err
	}

	c.CacheTTL = time.Duration(cacheTTLMs) * time.Millisecond
	c.RateWindow = time.Duration(rateWindowSec) * time.Second
	c.AllowedOrigins = parseOrigins(allowedOrigins)

	c.LogLevel = os.Getenv("LOG_LEVEL")
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}

	return nil
}

// NewRedisOpts parses a redis url into client options, falling back to a
// bare localhost client when the url is malformed.
func NewRedisOpts(redisURL string) *redis.Options {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return &redis.Options{Addr: "localhost:6379"}
	}

	return opts
}

func envOrDefault(key, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}

	return value
}

func envOrDefaultBool(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}

	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}

	return parsed
}

func envOrDefaultInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}

	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}

	return parsed
}

// parseOrigins parses the allowed origins flag or uses a default value if none is provided
func parseOrigins(allowedOrigins string) []string {
	if allowedOrigins == "" {
		return []string{"http://localhost:3000"}
	}

	origins := strings.Split(allowedOrigins, ",")
	for i, origin := range origins {
		origins[i] = strings.TrimSpace(origin)
	}

	return origins
}
