// README: Location store backed by local SQLite (development engine).
package location

import (
	"context"
	"database/sql"
)

type LiteStore struct {
	db *sql.DB
}

func NewLiteStore(db *sql.DB) *LiteStore {
	return &LiteStore{db: db}
}

func (s *LiteStore) Migrate(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS locations (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT UNIQUE NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS agent_locations (
			agent_id INTEGER NOT NULL,
			location_id INTEGER NOT NULL,
			PRIMARY KEY (agent_id, location_id),
			FOREIGN KEY (agent_id) REFERENCES agents(id) ON DELETE CASCADE,
			FOREIGN KEY (location_id) REFERENCES locations(id) ON DELETE CASCADE
		)`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

func (s *LiteStore) ListAll(ctx context.Context) ([]Location, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name FROM locations ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanLiteLocations(rows)
}

func (s *LiteStore) ListByAgent(ctx context.Context, agentID int64) ([]Location, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT l.id, l.name FROM locations l
		INNER JOIN agent_locations al ON l.id = al.location_id
		WHERE al.agent_id = ?
		ORDER BY l.name`, agentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanLiteLocations(rows)
}

func (s *LiteStore) Create(ctx context.Context, name string) (*Location, error) {
	res, err := s.db.ExecContext(ctx, `INSERT INTO locations (name) VALUES (?)`, name)
	if err != nil {
		if isDuplicate(err) {
			return nil, ErrDuplicate
		}
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return &Location{ID: id, Name: name}, nil
}

func (s *LiteStore) Delete(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM locations WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return liteRequireRow(res)
}

func (s *LiteStore) Count(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM locations`).Scan(&n)
	return n, err
}

func (s *LiteStore) SetAgentLocations(ctx context.Context, agentID int64, locationIDs []int64) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM agent_locations WHERE agent_id = ?`, agentID); err != nil {
		return err
	}
	for _, id := range locationIDs {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO agent_locations (agent_id, location_id) VALUES (?, ?)`,
			agentID, id); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (s *LiteStore) AddAgentLocation(ctx context.Context, agentID, locationID int64) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO agent_locations (agent_id, location_id) VALUES (?, ?)`,
		agentID, locationID)
	if isDuplicate(err) {
		return ErrAlreadyAssigned
	}
	return err
}

func (s *LiteStore) RemoveAgentLocation(ctx context.Context, agentID, locationID int64) error {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM agent_locations WHERE agent_id = ? AND location_id = ?`,
		agentID, locationID)
	if err != nil {
		return err
	}
	return liteRequireRow(res)
}

func scanLiteLocations(rows *sql.Rows) ([]Location, error) {
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

func liteRequireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
