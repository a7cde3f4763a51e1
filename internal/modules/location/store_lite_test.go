// README: SQLite-backed location store tests (in-memory database).
package location

import (
	"context"
	"errors"
	"testing"

	"mawad/internal/infra"
)

func setupLiteStore(t *testing.T) *LiteStore {
	t.Helper()

	db, err := infra.NewSQLite(":memory:")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	ctx := context.Background()
	// agent_locations references agents; create the referenced table first.
	if _, err := db.ExecContext(ctx, `
		CREATE TABLE agents (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			code_hash TEXT NOT NULL,
			name TEXT NOT NULL,
			phone TEXT NOT NULL,
			is_admin INTEGER NOT NULL DEFAULT 0,
			created_at TIMESTAMP NOT NULL
		)`); err != nil {
		t.Fatalf("create agents table: %v", err)
	}
	if _, err := db.ExecContext(ctx,
		`INSERT INTO agents (code_hash, name, phone, created_at) VALUES ('h', 'x', '0500000000', CURRENT_TIMESTAMP)`); err != nil {
		t.Fatalf("seed agent: %v", err)
	}

	store := NewLiteStore(db)
	if err := store.Migrate(ctx); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return store
}

func TestLiteStoreCatalog(t *testing.T) {
	store := setupLiteStore(t)
	ctx := context.Background()

	amman, err := store.Create(ctx, "عمان")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := store.Create(ctx, "عمان"); !errors.Is(err, ErrDuplicate) {
		t.Fatalf("duplicate name: got %v, want ErrDuplicate", err)
	}

	if _, err := store.Create(ctx, "العراق"); err != nil {
		t.Fatalf("create second: %v", err)
	}
	all, err := store.ListAll(ctx)
	if err != nil || len(all) != 2 {
		t.Fatalf("list = %v (%v), want 2 locations", all, err)
	}

	if err := store.Delete(ctx, amman.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := store.Delete(ctx, amman.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("double delete: got %v, want ErrNotFound", err)
	}
}

func TestLiteStoreAgentAssignment(t *testing.T) {
	store := setupLiteStore(t)
	ctx := context.Background()
	const agentID = 1

	a, _ := store.Create(ctx, "عمان")
	b, _ := store.Create(ctx, "العراق")

	if err := store.SetAgentLocations(ctx, agentID, []int64{a.ID, b.ID}); err != nil {
		t.Fatalf("set: %v", err)
	}
	locs, err := store.ListByAgent(ctx, agentID)
	if err != nil || len(locs) != 2 {
		t.Fatalf("list by agent = %v (%v), want 2", locs, err)
	}

	if err := store.AddAgentLocation(ctx, agentID, a.ID); !errors.Is(err, ErrAlreadyAssigned) {
		t.Fatalf("re-add: got %v, want ErrAlreadyAssigned", err)
	}

	// Replacement set drops everything not listed.
	if err := store.SetAgentLocations(ctx, agentID, []int64{b.ID}); err != nil {
		t.Fatalf("replace: %v", err)
	}
	locs, _ = store.ListByAgent(ctx, agentID)
	if len(locs) != 1 || locs[0].Name != "العراق" {
		t.Fatalf("after replace: %v", locs)
	}

	if err := store.RemoveAgentLocation(ctx, agentID, b.ID); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if err := store.RemoveAgentLocation(ctx, agentID, b.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("double remove: got %v, want ErrNotFound", err)
	}
}
