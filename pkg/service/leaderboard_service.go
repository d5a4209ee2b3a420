package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/chickenkicker/highscores/pkg/entity"
	"github.com/chickenkicker/highscores/pkg/logger"
	"github.com/chickenkicker/highscores/pkg/repository"
)

// ErrValidation marks input rejected at the gateway boundary, before any
// store access.
var ErrValidation = errors.New("validation failed")

const (
	minStartingLevel = 3
	maxStartingLevel = 126
)

// SubmitRequest is the score submission contract. ChickensKilled is a delta
// added to the account's existing total, never an absolute value. Pointer
// fields distinguish absent from zero.
type SubmitRequest struct {
	Username       string `json:"username"`
	AccountName    string `json:"accountName"`
	ChickensKilled *int   `json:"chickensKilled"`
	StartingLevel  *int   `json:"startingLevel"`
}

// LeaderboardService defines the interface for highscore business logic
type LeaderboardService interface {
	// Top returns the deduplicated leaderboard, at most limit entries.
	// Requests for the fixed cached size are served from the cache while it
	// is fresh.
	Top(ctx context.Context, limit int) ([]entity.LeaderboardEntry, error)

	// UserRank resolves a username to its best account plus its rank among
	// all accounts.
	UserRank(ctx context.Context, username string) (*entity.RankedAccount, error)

	// Submit validates and applies a score submission: increments an
	// existing account or creates a new one.
	Submit(ctx context.Context, req SubmitRequest) (*entity.SubmitResult, error)

	// Source reports whether responses come from the live store or the
	// fallback dataset.
	Source() entity.DataSource
}

// leaderboardService implements LeaderboardService
type leaderboardService struct {
	repo       repository.ScoreRepository
	cache      *leaderboardCache
	cacheLimit int
	now        func() time.Time
}

// Option is a functional option for configuring the service
type Option func(*leaderboardService)

// WithClock overrides the service clock, used by the cache freshness window
func WithClock(now func() time.Time) Option {
	return func(s *leaderboardService) {
		s.now = now
	}
}

// NewLeaderboardService creates a new leaderboard service. cacheTTL is the
// freshness window of the cached view; cacheLimit is its fixed size.
func NewLeaderboardService(repo repository.ScoreRepository, cacheTTL time.Duration, cacheLimit int, opts ...Option) LeaderboardService {
	if cacheLimit < 1 {
		cacheLimit = DefaultLimit
	}

	s := &leaderboardService{
		repo:       repo,
		cache:      newLeaderboardCache(cacheTTL),
		cacheLimit: cacheLimit,
		now:        time.Now,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Top serves the deduplicated leaderboard. Only reads at the cache's fixed
// limit touch the cache; other limits aggregate directly from a fresh scan.
func (s *leaderboardService) Top(ctx context.Context, limit int) ([]entity.LeaderboardEntry, error) {
	if limit < 1 {
		limit = DefaultLimit
	}

	if limit != s.cacheLimit {
		return s.compute(ctx, limit)
	}

	if entries, ok := s.cache.get(s.now()); ok {
		logger.Debug("serving leaderboard from cache")
		return entries, nil
	}

	entries, err := s.compute(ctx, limit)
	if err != nil {
		return nil, err
	}

	s.cache.set(entries, s.now())
	logger.Debug("leaderboard cache refreshed")

	return entries, nil
}

func (s *leaderboardService) compute(ctx context.Context, limit int) ([]entity.LeaderboardEntry, error) {
	accounts, err := s.repo.All(ctx)
	if err != nil {
		return nil, err
	}

	return Aggregate(accounts, limit), nil
}

// UserRank looks up a username case-insensitively and returns its rank among
// ALL accounts. The rank deliberately ignores the leaderboard's username
// deduplication, so it can disagree with the account's list position.
func (s *leaderboardService) UserRank(ctx context.Context, username string) (*entity.RankedAccount, error) {
	if strings.TrimSpace(username) == "" {
		return nil, fmt.Errorf("%w: username cannot be empty", ErrValidation)
	}

	return s.repo.FindRanked(ctx, username)
}

// Submit validates the request, then adds the delta to an existing account
// or creates a new one with the delta as its initial total.
func (s *leaderboardService) Submit(ctx context.Context, req SubmitRequest) (*entity.SubmitResult, error) {
	if err := validateSubmit(req); err != nil {
		return nil, err
	}

	if s.repo.Source() == entity.SourceFallback {
		// Nothing to persist in fallback mode; acknowledge with an
		// explicitly flagged mock result.
		logger.Warn("fallback mode: simulating score update for %s", req.Username)
		return &entity.SubmitResult{
			Updated:     true,
			Username:    req.Username,
			AccountName: req.AccountName,
			Mock:        true,
		}, nil
	}

	_, err := s.repo.Find(ctx, req.AccountName)
	switch {
	case err == nil:
		if _, err := s.repo.Increment(ctx, req.AccountName, *req.ChickensKilled); err != nil {
			return nil, err
		}
		return &entity.SubmitResult{
			Updated:     true,
			Username:    req.Username,
			AccountName: req.AccountName,
		}, nil
	case errors.Is(err, repository.ErrNotFound):
		if _, err := s.repo.Insert(ctx, req.Username, req.AccountName, *req.ChickensKilled, req.StartingLevel); err != nil {
			return nil, err
		}
		return &entity.SubmitResult{
			Created:     true,
			Username:    req.Username,
			AccountName: req.AccountName,
		}, nil
	default:
		return nil, err
	}
}

func (s *leaderboardService) Source() entity.DataSource {
	return s.repo.Source()
}

func validateSubmit(req SubmitRequest) error {
	if strings.TrimSpace(req.Username) == "" {
		return fmt.Errorf("%w: username is required", ErrValidation)
	}
	if strings.TrimSpace(req.AccountName) == "" {
		return fmt.Errorf("%w: accountName is required", ErrValidation)
	}
	if req.ChickensKilled == nil {
		return fmt.Errorf("%w: chickensKilled is required", ErrValidation)
	}
	if *req.ChickensKilled < 0 {
		return fmt.Errorf("%w: chickensKilled must be a non-negative number", ErrValidation)
	}
	if req.StartingLevel != nil && (*req.StartingLevel < minStartingLevel || *req.StartingLevel > maxStartingLevel) {
		return fmt.Errorf("%w: startingLevel must be a number between %d and %d", ErrValidation, minStartingLevel, maxStartingLevel)
	}

	return nil
}
