package service

import (
	"sort"

	"github.com/chickenkicker/highscores/pkg/entity"
)

// DefaultLimit is the leaderboard size used when a caller does not ask for a
// specific one.
const DefaultLimit = 100

// Aggregate builds the deduplicated leaderboard view from raw account rows.
// Accounts are partitioned by username and the single best record per
// username survives: highest chickens_killed, ties resolved by lowest id
// (earliest created). Representatives are then ordered by chickens_killed
// descending, equal counts again by lowest id, and truncated to limit.
// The result is fully deterministic for a given set of rows.
func Aggregate(accounts []entity.Account, limit int) []entity.LeaderboardEntry {
	if limit < 1 {
		limit = DefaultLimit
	}

	best := make(map[string]entity.Account)
	for _, account := range accounts {
		current, ok := best[account.Username]
		if !ok {
			best[account.Username] = account
			continue
		}
		if account.ChickensKilled > current.ChickensKilled ||
			(account.ChickensKilled == current.ChickensKilled && account.ID < current.ID) {
			best[account.Username] = account
		}
	}

	representatives := make([]entity.Account, 0, len(best))
	for _, account := range best {
		representatives = append(representatives, account)
	}

	sort.Slice(representatives, func(i, j int) bool {
		if representatives[i].ChickensKilled != representatives[j].ChickensKilled {
			return representatives[i].ChickensKilled > representatives[j].ChickensKilled
		}
		return representatives[i].ID < representatives[j].ID
	})

	if len(representatives) > limit {
		representatives = representatives[:limit]
	}

	entries := make([]entity.LeaderboardEntry, 0, len(representatives))
	for _, account := range representatives {
		entries = append(entries, entity.LeaderboardEntry{
			Username:       account.Username,
			AccountName:    account.AccountName,
			ChickensKilled: account.ChickensKilled,
			CreatedAt:      account.CreatedAt,
			UpdatedAt:      account.UpdatedAt,
		})
	}

	return entries
}
