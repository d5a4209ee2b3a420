package entity

import "time"

// DataSource tells readers whether a response was built from the live store
// or from the deterministic fallback dataset.
type DataSource string

const (
	SourceLive     DataSource = "live"
	SourceFallback DataSource = "fallback"
)

// Account is the durable unit of the score store, keyed by AccountName.
// Username is a display name and may repeat across accounts; AccountName
// uniquely identifies a player account. ChickensKilled only ever grows.
type Account struct {
	ID             int       `json:"id"`
	Username       string    `json:"username"`
	AccountName    string    `json:"account_name"`
	ChickensKilled int       `json:"chickens_killed"`
	StartingLevel  *int      `json:"starting_level,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// LeaderboardEntry is one deduplicated row of the aggregated view. Derived,
// never persisted.
type LeaderboardEntry struct {
	Username       string    `json:"username"`
	AccountName    string    `json:"account_name"`
	ChickensKilled int       `json:"chickens_killed"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// RankedAccount is an account plus its rank among ALL accounts. Rank is
// 1 + count of accounts with a strictly greater kill count; it is computed
// against the undeduplicated table, so it can disagree with the account's
// position in the deduplicated leaderboard.
type RankedAccount struct {
	Account
	Rank int `json:"rank"`
}

// SubmitResult echoes the outcome of a score submission. Exactly one of
// Created/Updated is true. Mock marks acknowledgments produced in fallback
// mode, where nothing was persisted.
type SubmitResult struct {
	Created     bool   `json:"created,omitempty"`
	Updated     bool   `json:"updated,omitempty"`
	Username    string `json:"username"`
	AccountName string `json:"account_name"`
	Mock        bool   `json:"mock,omitempty"`
}
