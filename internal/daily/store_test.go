package daily

import (
	"context"
	"database/sql"
	"os"
	"testing"

	_ "github.com/mattn/go-sqlite3"
)

// newTestDB opens an in-memory SQLite database with the real schema applied.
// MaxOpenConns(1) keeps every query on the same connection; a second
// connection to :memory: would see a fresh empty database.
func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	schema, err := os.ReadFile("../../sql/001_init.sql")
	if err != nil {
		t.Fatalf("read schema: %v", err)
	}
	if _, err := db.Exec(string(schema)); err != nil {
		t.Fatalf("apply schema: %v", err)
	}
	return db
}

func TestAlreadyPlayed(t *testing.T) {
	s := NewStore(newTestDB(t))
	ctx := context.Background()

	played, err := s.AlreadyPlayed(ctx, "u1", "2024-06-01")
	if err != nil {
		t.Fatalf("AlreadyPlayed: %v", err)
	}
	if played {
		t.Error("fresh user reported as already played")
	}

	if err := s.InsertResult(ctx, Result{UserID: "u1", Date: "2024-06-01", Moves: 3, ElapsedMs: 8000}); err != nil {
		t.Fatalf("InsertResult: %v", err)
	}

	played, err = s.AlreadyPlayed(ctx, "u1", "2024-06-01")
	if err != nil {
		t.Fatalf("AlreadyPlayed: %v", err)
	}
	if !played {
		t.Error("inserted result not visible")
	}

	// Same user, different day: still playable.
	played, err = s.AlreadyPlayed(ctx, "u1", "2024-06-02")
	if err != nil {
		t.Fatalf("AlreadyPlayed: %v", err)
	}
	if played {
		t.Error("result leaked onto another date")
	}
}

func TestInsertResultOncePerDay(t *testing.T) {
	s := NewStore(newTestDB(t))
	ctx := context.Background()

	if err := s.InsertResult(ctx, Result{UserID: "u1", Date: "2024-06-01", Moves: 3, ElapsedMs: 8000}); err != nil {
		t.Fatalf("first insert: %v", err)
	}
	// Second submission for the same day is silently ignored.
	if err := s.InsertResult(ctx, Result{UserID: "u1", Date: "2024-06-01", Moves: 9, ElapsedMs: 100}); err != nil {
		t.Fatalf("second insert: %v", err)
	}

	rows, err := s.Leaderboard(ctx, "2024-06-01", 10)
	if err != nil {
		t.Fatalf("Leaderboard: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("got %d rows, want 1", len(rows))
	}
	if rows[0].Moves != 3 || rows[0].ElapsedMs != 8000 {
		t.Errorf("kept row = %+v, want the first submission", rows[0])
	}
}

func TestLeaderboardOrdering(t *testing.T) {
	s := NewStore(newTestDB(t))
	ctx := context.Background()
	date := "2024-06-01"

	seed := []Result{
		{UserID: "slow", Date: date, Moves: 3, ElapsedMs: 9000},
		{UserID: "many", Date: date, Moves: 4, ElapsedMs: 1000},
		{UserID: "fast", Date: date, Moves: 3, ElapsedMs: 5000},
	}
	for _, r := range seed {
		if err := s.InsertResult(ctx, r); err != nil {
			t.Fatalf("insert %s: %v", r.UserID, err)
		}
	}

	rows, err := s.Leaderboard(ctx, date, 20)
	if err != nil {
		t.Fatalf("Leaderboard: %v", err)
	}
	want := []string{"fast", "slow", "many"}
	if len(rows) != len(want) {
		t.Fatalf("got %d rows, want %d", len(rows), len(want))
	}
	for i, u := range want {
		if rows[i].UserID != u {
			t.Errorf("rank %d: %s, want %s", i+1, rows[i].UserID, u)
		}
	}

	top, err := s.Leaderboard(ctx, date, 2)
	if err != nil {
		t.Fatalf("Leaderboard limit: %v", err)
	}
	if len(top) != 2 || top[0].UserID != "fast" || top[1].UserID != "slow" {
		t.Errorf("limited board = %+v, want fast then slow", top)
	}
}
