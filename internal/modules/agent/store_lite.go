// README: Agent store backed by local SQLite (development engine).
package agent

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

type LiteStore struct {
	db *sql.DB
}

func NewLiteStore(db *sql.DB) *LiteStore {
	return &LiteStore{db: db}
}

func (s *LiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS agents (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			code_hash TEXT NOT NULL,
			name TEXT NOT NULL,
			phone TEXT NOT NULL,
			is_admin INTEGER NOT NULL DEFAULT 0,
			created_at TIMESTAMP NOT NULL
		)`)
	return err
}

func (s *LiteStore) Create(ctx context.Context, a *Agent) error {
	a.CreatedAt = time.Now()
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO agents (code_hash, name, phone, is_admin, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		a.CodeHash, a.Name, a.Phone, a.IsAdmin, a.CreatedAt)
	if err != nil {
		return err
	}
	a.ID, err = res.LastInsertId()
	return err
}

func (s *LiteStore) GetByID(ctx context.Context, id int64) (*Agent, error) {
	var a Agent
	err := s.db.QueryRowContext(ctx, `
		SELECT id, code_hash, name, phone, is_admin, created_at
		FROM agents WHERE id = ?`, id,
	).Scan(&a.ID, &a.CodeHash, &a.Name, &a.Phone, &a.IsAdmin, &a.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (s *LiteStore) List(ctx context.Context) ([]Agent, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, code_hash, name, phone, is_admin, created_at
		FROM agents ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Agent
	for rows.Next() {
		var a Agent
		if err := rows.Scan(&a.ID, &a.CodeHash, &a.Name, &a.Phone, &a.IsAdmin, &a.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (s *LiteStore) Update(ctx context.Context, a *Agent) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE agents SET code_hash = ?, name = ?, phone = ?, is_admin = ?
		WHERE id = ?`,
		a.CodeHash, a.Name, a.Phone, a.IsAdmin, a.ID)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (s *LiteStore) Delete(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM agents WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (s *LiteStore) Count(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM agents`).Scan(&n)
	return n, err
}

func (s *LiteStore) CountAdmins(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM agents WHERE is_admin = 1`).Scan(&n)
	return n, err
}

func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
