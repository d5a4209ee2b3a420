package main

import (
	"context"
	"os"

	"github.com/chickenkicker/highscores/pkg/config"
	"github.com/chickenkicker/highscores/pkg/database"
	"github.com/chickenkicker/highscores/pkg/handler"
	"github.com/chickenkicker/highscores/pkg/logger"
	"github.com/chickenkicker/highscores/pkg/ratelimit"
	"github.com/chickenkicker/highscores/pkg/repository"
	"github.com/chickenkicker/highscores/pkg/server"
	"github.com/chickenkicker/highscores/pkg/service"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
)

func main() {
	ctx := context.Background()

	if err := godotenv.Load(); err != nil {
		logger.Debug("no .env file loaded: %v", err)
	}

	cfg := &config.Config{}
	if err := cfg.Load(os.Args[1:]); err != nil {
		logger.Fatal("Unable to load config: %v", err)
	}
	cfg.RedisOpts = config.NewRedisOpts(cfg.RedisURL)

	if err := logger.SetLevelFromString(cfg.LogLevel); err != nil {
		logger.Warn("%v", err)
	}

	// The data source is chosen exactly once, here. A store failure after
	// startup surfaces to callers; it never silently flips to fallback.
	var pool *pgxpool.Pool
	var scoreRepo repository.ScoreRepository

	pool, err := database.NewConnPool(ctx, cfg.DBConnURI, cfg.DBMaxConns)
	if err != nil {
		if !cfg.FallbackMode {
			logger.Fatal("Unable to connect to database: %v", err)
		}
		logger.Warn("Database unreachable, serving the synthetic fallback dataset: %v", err)
		pool = nil
		scoreRepo = repository.NewFallbackRepository()
	} else {
		scoreRepo = repository.NewScoreRepository(pool)
	}

	leaderboardService := service.NewLeaderboardService(scoreRepo, cfg.CacheTTL, cfg.LeaderboardLimit)
	apiHandler := handler.NewApiHandler(leaderboardService)

	redisClient := redis.NewClient(cfg.RedisOpts)
	limiter := ratelimit.New(redisClient, cfg.RateLimit, cfg.RateWindow)

	srv, err := server.NewServer(
		cfg,
		server.WithPool(pool),
		server.WithRedis(redisClient),
		server.WithRateLimiter(limiter),
		server.WithApiHandler(apiHandler),
	)
	if err != nil {
		logger.Fatal("Unable to create server: %v", err)
	}

	srv.Start()
}
