// README: Agent store backed by PostgreSQL (production engine).
package agent

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PGStore struct {
	db *pgxpool.Pool
}

func NewPGStore(db *pgxpool.Pool) *PGStore {
	return &PGStore{db: db}
}

func (s *PGStore) Migrate(ctx context.Context) error {
	_, err := s.db.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS agents (
			id BIGSERIAL PRIMARY KEY,
			code_hash TEXT NOT NULL,
			name TEXT NOT NULL,
			phone TEXT NOT NULL,
			is_admin BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`)
	return err
}

func (s *PGStore) Create(ctx context.Context, a *Agent) error {
	return s.db.QueryRow(ctx, `
		INSERT INTO agents (code_hash, name, phone, is_admin)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`,
		a.CodeHash, a.Name, a.Phone, a.IsAdmin,
	).Scan(&a.ID, &a.CreatedAt)
}

func (s *PGStore) GetByID(ctx context.Context, id int64) (*Agent, error) {
	var a Agent
	err := s.db.QueryRow(ctx, `
		SELECT id, code_hash, name, phone, is_admin, created_at
		FROM agents WHERE id = $1`, id,
	).Scan(&a.ID, &a.CodeHash, &a.Name, &a.Phone, &a.IsAdmin, &a.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (s *PGStore) List(ctx context.Context) ([]Agent, error) {
	rows, err := s.db.Query(ctx, `
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

func (s *PGStore) Update(ctx context.Context, a *Agent) error {
	tag, err := s.db.Exec(ctx, `
		UPDATE agents SET code_hash = $1, name = $2, phone = $3, is_admin = $4
		WHERE id = $5`,
		a.CodeHash, a.Name, a.Phone, a.IsAdmin, a.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PGStore) Delete(ctx context.Context, id int64) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM agents WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PGStore) Count(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRow(ctx, `SELECT COUNT(*) FROM agents`).Scan(&n)
	return n, err
}

func (s *PGStore) CountAdmins(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRow(ctx, `SELECT COUNT(*) FROM agents WHERE is_admin`).Scan(&n)
	return n, err
}
