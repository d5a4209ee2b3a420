package service

import (
	"fmt"
	"testing"

	"github.com/chickenkicker/highscores/pkg/entity"
)

func account(id int, username string, kills int) entity.Account {
	return entity.Account{
		ID:             id,
		Username:       username,
		AccountName:    fmt.Sprintf("acct-%d", id),
		ChickensKilled: kills,
	}
}

func TestAggregateDeduplicatesByUsername(t *testing.T) {
	accounts := []entity.Account{
		account(1, "Alice", 100),
		account(2, "Alice", 50),
		account(3, "Bob", 75),
	}

	entries := Aggregate(accounts, 10)

	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Username != "Alice" || entries[0].ChickensKilled != 100 {
		t.Fatalf("expected Alice's 100-kill account first, got %+v", entries[0])
	}
	if entries[0].AccountName != "acct-1" {
		t.Fatalf("expected the higher-count account to represent Alice, got %s", entries[0].AccountName)
	}
}

func TestAggregateTruncates(t *testing.T) {
	var accounts []entity.Account
	for i := 1; i <= 15; i++ {
		accounts = append(accounts, account(i, fmt.Sprintf("Player%d", i), i*10))
	}

	entries := Aggregate(accounts, 3)

	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}
	if entries[0].ChickensKilled != 150 || entries[1].ChickensKilled != 140 || entries[2].ChickensKilled != 130 {
		t.Fatalf("expected the three highest counts descending, got %+v", entries)
	}
}

func TestAggregateTieBreaksByEarliestID(t *testing.T) {
	// Same username, equal counts: earliest id represents the partition.
	accounts := []entity.Account{
		account(7, "Alice", 100),
		account(2, "Alice", 100),
	}
	entries := Aggregate(accounts, 10)
	if len(entries) != 1 || entries[0].AccountName != "acct-2" {
		t.Fatalf("expected earliest id to win the partition, got %+v", entries)
	}

	// Distinct usernames, equal counts: stable order by earliest id.
	accounts = []entity.Account{
		account(9, "Zed", 100),
		account(4, "Amy", 100),
		account(6, "Mia", 100),
	}
	entries = Aggregate(accounts, 10)
	got := []string{entries[0].Username, entries[1].Username, entries[2].Username}
	want := []string{"Amy", "Mia", "Zed"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected order %v, got %v", want, got)
		}
	}
}

func TestAggregateDefaultLimit(t *testing.T) {
	var accounts []entity.Account
	for i := 1; i <= DefaultLimit+20; i++ {
		accounts = append(accounts, account(i, fmt.Sprintf("Player%d", i), i))
	}

	entries := Aggregate(accounts, 0)

	if len(entries) != DefaultLimit {
		t.Fatalf("expected default limit %d, got %d", DefaultLimit, len(entries))
	}
}
