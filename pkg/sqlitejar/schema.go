package sqlitejar

import (
	"database/sql"
	"fmt"
)

const (
	tableName = "cookie"
	// applicationID is stamped into the SQLite header ("CKJR").
	applicationID int64 = 0x434B4A52
	// schemaVersion is stored in PRAGMA user_version.
	schemaVersion int64 = 1
)

const createTableSQL = `CREATE TABLE IF NOT EXISTS cookie (
	id INTEGER NOT NULL PRIMARY KEY,
	domain TEXT NOT NULL,
	name TEXT NOT NULL,
	value TEXT NOT NULL,
	path TEXT NOT NULL DEFAULT '/',
	expiry INTEGER NOT NULL,
	last_access INTEGER NOT NULL,
	creation_time INTEGER NOT NULL,
	secure INTEGER NOT NULL DEFAULT 0,
	http_only INTEGER NOT NULL DEFAULT 0,
	CONSTRAINT cookie_unique UNIQUE (name, domain, path)
)`

const (
	selectAllSQL = `SELECT id, domain, name, value, path, expiry, last_access, creation_time, secure, http_only
		FROM cookie ORDER BY domain, path, name`
	selectStampsSQL  = `SELECT domain, path, name, creation_time, last_access FROM cookie`
	deleteExpiredSQL = `DELETE FROM cookie WHERE expiry <= ?`
	deleteAllSQL     = `DELETE FROM cookie`
	countSQL         = `SELECT COUNT(*) FROM cookie`
	insertSQL        = `INSERT INTO cookie
		(id, domain, name, value, path, expiry, last_access, creation_time, secure, http_only)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
)

// schemaColumns is the column fingerprint of the cookie table, as reported
// by PRAGMA table_info.
var schemaColumns = map[string]string{
	"id":            "INTEGER",
	"domain":        "TEXT",
	"name":          "TEXT",
	"value":         "TEXT",
	"path":          "TEXT",
	"expiry":        "INTEGER",
	"last_access":   "INTEGER",
	"creation_time": "INTEGER",
	"secure":        "INTEGER",
	"http_only":     "INTEGER",
}

// createSchema creates the cookie table and stamps the header markers.
// Must run inside the first write transaction.
func createSchema(tx *sql.Tx) error {
	if _, err := tx.Exec(createTableSQL); err != nil {
		return fmt.Errorf("create cookie table: %w", err)
	}
	// PRAGMA arguments cannot be bound.
	if _, err := tx.Exec(fmt.Sprintf("PRAGMA application_id = %d", applicationID)); err != nil {
		return fmt.Errorf("set application id: %w", err)
	}
	if _, err := tx.Exec(fmt.Sprintf("PRAGMA user_version = %d", schemaVersion)); err != nil {
		return fmt.Errorf("set schema version: %w", err)
	}
	return nil
}
