package server

import (
	"context"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/chickenkicker/highscores/pkg/config"
	"github.com/chickenkicker/highscores/pkg/handler"
	"github.com/chickenkicker/highscores/pkg/logger"
	"github.com/chickenkicker/highscores/pkg/ratelimit"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lithammer/shortuuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/cors"
)

type Server struct {
	cfg        *config.Config
	server     *http.Server
	pool       *pgxpool.Pool
	redis      *redis.Client
	limiter    *ratelimit.Limiter
	serverName string
}

// Option is a functional option for configuring the Server
type Option func(*Server) error

// WithRedis adds Redis client to the server
func WithRedis(client *redis.Client) Option {
	return func(s *Server) error {
		s.redis = client
		return nil
	}
}

// WithPool adds the database pool, used by the healthcheck and closed on
// shutdown. Absent in fallback mode.
func WithPool(pool *pgxpool.Pool) Option {
	return func(s *Server) error {
		s.pool = pool
		return nil
	}
}

// WithRateLimiter bounds score submissions per client IP
func WithRateLimiter(limiter *ratelimit.Limiter) Option {
	return func(s *Server) error {
		s.limiter = limiter
		return nil
	}
}

// WithApiHandler configures the server with REST API handlers
func WithApiHandler(apiHandler *handler.ApiHandler) Option {
	return func(s *Server) error {
		router := s.server.Handler.(*http.ServeMux)
		api := http.NewServeMux()

		router.HandleFunc("/healthcheck", s.healthcheckHandler)

		api.HandleFunc("/highscores", apiHandler.GetHighscores)
		api.HandleFunc("/user/", apiHandler.GetUser)
		api.HandleFunc("/update", s.rateLimited(apiHandler.UpdateScore))

		router.Handle("/api/", requestID(enableCors(http.StripPrefix("/api", api), s.cfg.AllowedOrigins, s.cfg.Debug)))
		return nil
	}
}

// NewServer creates a new server with functional options
func NewServer(cfg *config.Config, opts ...Option) (*Server, error) {
	router := http.NewServeMux()
	srv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	s := &Server{
		cfg:        cfg,
		server:     srv,
		serverName: "Highscores server",
	}

	// Apply all options
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	return s, nil
}

func enableCors(h http.Handler, origins []string, debug bool) http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
		Debug:            debug,
	})

	return c.Handler(h)
}

// requestID tags every API request with a short id for log correlation
func requestID(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := shortuuid.New()
		w.Header().Set("X-Request-Id", id)
		logger.Debug("[%s] %s %s", id, r.Method, r.URL.Path)
		h.ServeHTTP(w, r)
	})
}

// rateLimited wraps the write endpoint with the per-IP submission limiter
func (s *Server) rateLimited(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !s.limiter.Allow(r.Context(), clientIP(r)) {
			logger.Warn("rate limited submission from %s", clientIP(r))
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusTooManyRequests)
			w.Write([]byte(`{"success":false,"error":"Too many submissions, slow down"}`))
			return
		}
		next(w, r)
	}
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func (s *Server) healthcheckHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if s.pool != nil {
		if err := s.pool.Ping(ctx); err != nil {
			logger.Warn("healthcheck: database unreachable: %v", err)
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte("database unreachable\n"))
			return
		}
	}

	if s.redis != nil {
		if err := s.redis.Ping(ctx).Err(); err != nil {
			logger.Warn("healthcheck: redis unreachable: %v", err)
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte("redis unreachable\n"))
			return
		}
	}

	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK\n"))
}

// Start runs the server until SIGINT/SIGTERM, then shuts down gracefully
func (s *Server) Start() {
	cleanup := make(chan os.Signal, 1)
	signal.Notify(cleanup, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-cleanup
		logger.Info("Received quit signal . . .")

		if s.redis != nil {
			if err := s.redis.Close(); err != nil {
				logger.Error("Error closing Redis connection: %v", err)
			}
		}

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := s.server.Shutdown(shutdownCtx); err != nil {
			logger.Error("Error during server shutdown: %v", err)
		}

		if s.pool != nil {
			s.pool.Close()
		}

		logger.Info("%s shutdown complete.", s.serverName)
	}()

	logger.Info("%s listening on %s", s.serverName, s.server.Addr)

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatal("HTTP server ListenAndServe: %v", err)
	}
}
