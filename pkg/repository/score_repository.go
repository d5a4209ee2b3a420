package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/chickenkicker/highscores/pkg/entity"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ScoreRepository defines the interface for highscore storage operations
type ScoreRepository interface {
	// Source reports whether this repository serves live or fallback data.
	Source() entity.DataSource

	// Find returns the account for account_name, or ErrNotFound.
	Find(ctx context.Context, accountName string) (*entity.Account, error)

	// Insert creates a new account with an initial kill total. Returns
	// ErrDuplicateAccount when account_name is already taken.
	Insert(ctx context.Context, username, accountName string, chickensKilled int, startingLevel *int) (*entity.Account, error)

	// Increment adds delta to the account's kill total atomically and
	// refreshes updated_at. Returns ErrNotFound when no such account.
	Increment(ctx context.Context, accountName string, delta int) (*entity.Account, error)

	// All scans every account in a single pass, ordered by id.
	All(ctx context.Context) ([]entity.Account, error)

	// FindRanked returns the best account matching username
	// (case-insensitively) plus its rank among ALL accounts, or ErrNotFound.
	FindRanked(ctx context.Context, username string) (*entity.RankedAccount, error)
}

// scoreRepository implements ScoreRepository with postgresql pooling
type scoreRepository struct {
	pool *pgxpool.Pool
}

// NewScoreRepository creates a new PostgreSQL score repository
func NewScoreRepository(pool *pgxpool.Pool) ScoreRepository {
	return &scoreRepository{pool: pool}
}

const accountColumns = `id, username, account_name, chickens_killed, starting_level, created_at, updated_at`

func (r *scoreRepository) Source() entity.DataSource {
	return entity.SourceLive
}

// Find returns the account keyed by account_name
func (r *scoreRepository) Find(ctx context.Context, accountName string) (*entity.Account, error) {
	query := `
		SELECT ` + accountColumns + `
		FROM highscores
		WHERE account_name = $1
	`

	account, err := scanAccount(r.pool.QueryRow(ctx, query, accountName))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, storeErr("failed to find account", err)
	}

	return account, nil
}

// Insert creates a new account with its initial kill total
func (r *scoreRepository) Insert(ctx context.Context, username, accountName string, chickensKilled int, startingLevel *int) (*entity.Account, error) {
	query := `
		INSERT INTO highscores (username, account_name, chickens_killed, starting_level)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + accountColumns + `
	`

	account, err := scanAccount(r.pool.QueryRow(ctx, query, username, accountName, chickensKilled, startingLevel))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, ErrDuplicateAccount
		}
		return nil, storeErr("failed to insert account", err)
	}

	return account, nil
}

// Increment adds delta to the existing total. The arithmetic happens in the
// UPDATE itself so concurrent submissions for one account never lose updates.
func (r *scoreRepository) Increment(ctx context.Context, accountName string, delta int) (*entity.Account, error) {
	query := `
		UPDATE highscores
		SET chickens_killed = chickens_killed + $2,
		    updated_at = NOW()
		WHERE account_name = $1
		RETURNING ` + accountColumns + `
	`

	account, err := scanAccount(r.pool.QueryRow(ctx, query, accountName, delta))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, storeErr("failed to increment account", err)
	}

	return account, nil
}

// All scans the whole table once, ordered by id for deterministic downstream
// tie-breaking
func (r *scoreRepository) All(ctx context.Context) ([]entity.Account, error) {
	query := `
		SELECT ` + accountColumns + `
		FROM highscores
		ORDER BY id ASC
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, storeErr("failed to scan accounts", err)
	}
	defer rows.Close()

	var accounts []entity.Account
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, storeErr("failed to scan account row", err)
		}
		accounts = append(accounts, *account)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("failed to scan accounts", err)
	}

	return accounts, nil
}

// FindRanked resolves a username to its best account and computes the rank
// against the full, undeduplicated table. The ORDER BY pins which account
// wins when several share the username.
func (r *scoreRepository) FindRanked(ctx context.Context, username string) (*entity.RankedAccount, error) {
	query := `
		SELECT ` + accountColumns + `,
			(SELECT COUNT(*) + 1 FROM highscores WHERE chickens_killed > h.chickens_killed) AS rank
		FROM highscores h
		WHERE LOWER(h.username) = LOWER($1)
		ORDER BY h.chickens_killed DESC, h.id ASC
		LIMIT 1
	`

	var ranked entity.RankedAccount
	err := r.pool.QueryRow(ctx, query, username).Scan(
		&ranked.ID,
		&ranked.Username,
		&ranked.AccountName,
		&ranked.ChickensKilled,
		&ranked.StartingLevel,
		&ranked.CreatedAt,
		&ranked.UpdatedAt,
		&ranked.Rank,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, storeErr("failed to find ranked account", err)
	}

	return &ranked, nil
}

func scanAccount(row pgx.Row) (*entity.Account, error) {
	var account entity.Account
	err := row.Scan(
		&account.ID,
		&account.Username,
		&account.AccountName,
		&account.ChickensKilled,
		&account.StartingLevel,
		&account.CreatedAt,
		&account.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &account, nil
}

// storeErr tags a store failure with ErrUnavailable while keeping the cause
func storeErr(msg string, err error) error {
	return fmt.Errorf("%s: %w: %w", msg, ErrUnavailable, err)
}
