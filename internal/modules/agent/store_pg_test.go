// README: DB-backed agent store tests; skipped without MAWAD_TEST_DSN.
package agent

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
)

func setupPGStore(t *testing.T) *PGStore {
	t.Helper()

	dsn := os.Getenv("MAWAD_TEST_DSN")
	if dsn == "" {
		t.Skip("MAWAD_TEST_DSN not set; skipping DB-backed store tests")
	}

	ctx := context.Background()
	db, err := pgxpool.New(ctx, dsn)
	if err != nil {
		t.Fatalf("connect db: %v", err)
	}
	t.Cleanup(db.Close)

	store := NewPGStore(db)
	if err := store.Migrate(ctx); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if _, err := db.Exec(ctx, "TRUNCATE TABLE agents RESTART IDENTITY CASCADE"); err != nil {
		t.Fatalf("truncate: %v", err)
	}
	return store
}

func TestPGStoreCRUD(t *testing.T) {
	store := setupPGStore(t)
	ctx := context.Background()

	a := &Agent{CodeHash: "hash", Name: "سالم", Phone: "0501234567"}
	if err := store.Create(ctx, a); err != nil {
		t.Fatalf("create: %v", err)
	}
	if a.ID == 0 || a.CreatedAt.IsZero() {
		t.Fatalf("create did not populate id/created_at: %+v", a)
	}

	got, err := store.GetByID(ctx, a.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Name != "سالم" || got.IsAdmin {
		t.Fatalf("round trip mismatch: %+v", got)
	}

	got.Name = "سالم المحدث"
	got.IsAdmin = true
	if err := store.Update(ctx, got); err != nil {
		t.Fatalf("update: %v", err)
	}
	admins, err := store.CountAdmins(ctx)
	if err != nil || admins != 1 {
		t.Fatalf("admin count = %d (%v), want 1", admins, err)
	}

	if err := store.Delete(ctx, a.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := store.GetByID(ctx, a.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
	if err := store.Delete(ctx, a.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("double delete: expected ErrNotFound, got %v", err)
	}
}
