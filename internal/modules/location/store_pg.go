// README: Location store backed by PostgreSQL (production engine).
package location

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
)

type PGStore struct {
	db *pgxpool.Pool
}

func NewPGStore(db *pgxpool.Pool) *PGStore {
	return &PGStore{db: db}
}

func (s *PGStore) Migrate(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS locations (
			id SERIAL PRIMARY KEY,
			name TEXT UNIQUE NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS agent_locations (
			agent_id BIGINT NOT NULL REFERENCES agents(id) ON DELETE CASCADE,
			location_id INTEGER NOT NULL REFERENCES locations(id) ON DELETE CASCADE,
			PRIMARY KEY (agent_id, location_id)
		)`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

func (s *PGStore) ListAll(ctx context.Context) ([]Location, error) {
	rows, err := s.db.Query(ctx, `SELECT id, name FROM locations ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanPGLocations(rows)
}

func (s *PGStore) ListByAgent(ctx context.Context, agentID int64) ([]Location, error) {
	rows, err := s.db.Query(ctx, `
		SELECT l.id, l.name FROM locations l
		INNER JOIN agent_locations al ON l.id = al.location_id
		WHERE al.agent_id = $1
		ORDER BY l.name`, agentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanPGLocations(rows)
}

func (s *PGStore) Create(ctx context.Context, name string) (*Location, error) {
	var l Location
	l.Name = name
	err := s.db.QueryRow(ctx,
		`INSERT INTO locations (name) VALUES ($1) RETURNING id`, name,
	).Scan(&l.ID)
	if err != nil {
		if isDuplicate(err) {
			return nil, ErrDuplicate
		}
		return nil, err
	}
	return &l, nil
}

func (s *PGStore) Delete(ctx context.Context, id int64) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM locations WHERE id = $1`, id)
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
	err := s.db.QueryRow(ctx, `SELECT COUNT(*) FROM locations`).Scan(&n)
	return n, err
}

func (s *PGStore) SetAgentLocations(ctx context.Context, agentID int64, locationIDs []int64) error {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM agent_locations WHERE agent_id = $1`, agentID); err != nil {
		return err
	}
	for _, id := range locationIDs {
		if _, err := tx.Exec(ctx,
			`INSERT INTO agent_locations (agent_id, location_id) VALUES ($1, $2)`,
			agentID, id); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

func (s *PGStore) AddAgentLocation(ctx context.Context, agentID, locationID int64) error {
	_, err := s.db.Exec(ctx,
		`INSERT INTO agent_locations (agent_id, location_id) VALUES ($1, $2)`,
		agentID, locationID)
	if isDuplicate(err) {
		return ErrAlreadyAssigned
	}
	return err
}

func (s *PGStore) RemoveAgentLocation(ctx context.Context, agentID, locationID int64) error {
	tag, err := s.db.Exec(ctx,
		`DELETE FROM agent_locations WHERE agent_id = $1 AND location_id = $2`,
		agentID, locationID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

type pgRows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}

func scanPGLocations(rows pgRows) ([]Location, error) {
	var out []Location
	for rows.Next() {
		var l Location
		if err := rows.Scan(&l.ID, &l.Name); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

func isDuplicate(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "UNIQUE constraint")
}
