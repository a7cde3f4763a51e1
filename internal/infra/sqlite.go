// README: Local SQLite handle (modernc driver, no cgo) for single-machine deployments.
package infra

import (
	"database/sql"

	_ "modernc.org/sqlite"
)

func NewSQLite(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// The modernc driver serializes writers; a single connection avoids
	// SQLITE_BUSY under concurrent admin writes.
	db.SetMaxOpenConns(1)
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}
