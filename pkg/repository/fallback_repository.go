package repository

import (
	"context"
	"strings"
	"time"

	"github.com/chickenkicker/highscores/pkg/entity"
)

// fallbackRepository serves a fixed, deterministic dataset so the read path
// can stay up while the real store is unreachable. It is selected once at
// startup, never swapped in mid-request, and every response built from it is
// flagged via Source. Writes are not persisted here; the update gateway
// answers them with a mock acknowledgment.
type fallbackRepository struct {
	accounts []entity.Account
}

// NewFallbackRepository creates the synthetic-dataset repository
func NewFallbackRepository() ScoreRepository {
	return &fallbackRepository{accounts: fallbackAccounts()}
}

func (r *fallbackRepository) Source() entity.DataSource {
	return entity.SourceFallback
}

func (r *fallbackRepository) Find(ctx context.Context, accountName string) (*entity.Account, error) {
	for i := range r.accounts {
		if r.accounts[i].AccountName == accountName {
			account := r.accounts[i]
			return &account, nil
		}
	}

	return nil, ErrNotFound
}

func (r *fallbackRepository) Insert(ctx context.Context, username, accountName string, chickensKilled int, startingLevel *int) (*entity.Account, error) {
	return nil, ErrUnavailable
}

func (r *fallbackRepository) Increment(ctx context.Context, accountName string, delta int) (*entity.Account, error) {
	return nil, ErrUnavailable
}

func (r *fallbackRepository) All(ctx context.Context) ([]entity.Account, error) {
	accounts := make([]entity.Account, len(r.accounts))
	copy(accounts, r.accounts)
	return accounts, nil
}

func (r *fallbackRepository) FindRanked(ctx context.Context, username string) (*entity.RankedAccount, error) {
	var best *entity.Account
	for i := range r.accounts {
		if !strings.EqualFold(r.accounts[i].Username, username) {
			continue
		}
		if best == nil || r.accounts[i].ChickensKilled > best.ChickensKilled {
			best = &r.accounts[i]
		}
	}
	if best == nil {
		return nil, ErrNotFound
	}

	rank := 1
	for i := range r.accounts {
		if r.accounts[i].ChickensKilled > best.ChickensKilled {
			rank++
		}
	}

	return &entity.RankedAccount{Account: *best, Rank: rank}, nil
}

// fallbackAccounts is the synthetic leaderboard, already distinct by username
// and strictly descending by kill count.
func fallbackAccounts() []entity.Account {
	entries := []struct {
		id       int
		username string
		kills    int
		created  string
		updated  string
	}{
		{1, "ChickenSlayer99", 15420, "2024-01-15", "2024-12-20"},
		{2, "BokBokDestroyer", 12350, "2024-02-20", "2024-12-19"},
		{3, "FeatherHunter", 11200, "2024-03-10", "2024-12-18"},
		{4, "CluckConqueror", 9870, "2024-01-25", "2024-12-17"},
		{5, "EggTerminator", 8940, "2024-04-05", "2024-12-16"},
		{6, "WingWarrior", 7650, "2024-02-14", "2024-12-15"},
		{7, "PeckPunisher", 6780, "2024-05-12", "2024-12-14"},
		{8, "RoosterRuiner", 5920, "2024-03-22", "2024-12-13"},
		{9, "HenHavoc", 5340, "2024-06-08", "2024-12-12"},
		{10, "PoultrySlayer", 4890, "2024-04-18", "2024-12-11"},
		{11, "BirdBane", 4320, "2024-07-03", "2024-12-10"},
		{12, "CombSlayer", 3850, "2024-05-25", "2024-12-09"},
		{13, "DrumstickDoom", 3420, "2024-08-14", "2024-12-08"},
		{14, "ChickChaser", 3010, "2024-06-30", "2024-12-07"},
		{15, "BeakBreaker", 2680, "2024-09-05", "2024-12-06"},
	}

	accounts := make([]entity.Account, 0, len(entries))
	for _, e := range entries {
		created, _ := time.Parse("2006-01-02", e.created)
		updated, _ := time.Parse("2006-01-02", e.updated)
		accounts = append(accounts, entity.Account{
			ID:             e.id,
			Username:       e.username,
			AccountName:    strings.ToLower(e.username),
			ChickensKilled: e.kills,
			CreatedAt:      created,
			UpdatedAt:      updated,
		})
	}

	return accounts
}
