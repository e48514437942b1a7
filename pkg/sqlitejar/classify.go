package sqlitejar

import (
	"bytes"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"
)

// sqliteMagic is the first 16 bytes of any SQLite database file.
var sqliteMagic = []byte("SQLite format 3\x00")

// Classify inspects the file at path and reports whether it is absent, empty,
// a valid cookie store or a foreign file. It never modifies the file.
// An error is returned only when the file cannot be inspected at all.
func Classify(path string) (Format, error) {
	format, _, err := inspect(path)
	return format, err
}

// ValidatePath classifies path and turns a foreign file into an
// ErrIncompatibleFormat error describing the mismatch.
func ValidatePath(path string) (Format, error) {
	format, reason, err := inspect(path)
	if err != nil {
		return format, storeErr("open", path, ErrStorageRead, err)
	}
	if format == FormatForeign {
		return format, storeErr("open", path, ErrIncompatibleFormat, errors.New(reason))
	}
	return format, nil
}

// inspect returns the format of path and, for foreign files, why it was
// rejected.
func inspect(path string) (Format, string, error) {
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return FormatAbsent, "", nil
	}
	if err != nil {
		return FormatAbsent, "", fmt.Errorf("cannot stat cookie store: %w", err)
	}
	if info.IsDir() {
		return FormatForeign, "path is a directory", nil
	}
	if info.Size() == 0 {
		return FormatEmpty, "", nil
	}

	f, err := os.Open(path)
	if err != nil {
		return FormatAbsent, "", fmt.Errorf("cannot open cookie store: %w", err)
	}
	header := make([]byte, len(sqliteMagic))
	_, err = io.ReadFull(f, header)
	f.Close()
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return FormatForeign, "not a SQLite database", nil
	}
	if err != nil {
		return FormatAbsent, "", fmt.Errorf("cannot read cookie store header: %w", err)
	}
	if !bytes.Equal(header, sqliteMagic) {
		return FormatForeign, "not a SQLite database", nil
	}
	return inspectSchema(path)
}

// inspectSchema opens a SQLite file read-only and checks its fingerprint.
func inspectSchema(path string) (Format, string, error) {
	db, err := openDB(path, true)
	if err != nil {
		return FormatAbsent, "", fmt.Errorf("cannot open SQLite database: %w", err)
	}
	defer db.Close()
	return fingerprint(db)
}

// fingerprint compares the tables, columns and header markers seen through
// q against the cookie store layout.
func fingerprint(q queryer) (Format, string, error) {
	var appID, version int64
	if err := q.QueryRow("PRAGMA application_id").Scan(&appID); err != nil {
		return FormatAbsent, "", fmt.Errorf("cannot read application id: %w", err)
	}
	if err := q.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		return FormatAbsent, "", fmt.Errorf("cannot read schema version: %w", err)
	}

	tables, err := listTables(q)
	if err != nil {
		return FormatAbsent, "", err
	}

	if len(tables) == 0 {
		if appID != 0 && appID != applicationID {
			return FormatForeign, fmt.Sprintf("database belongs to application id %#x", appID), nil
		}
		return FormatEmpty, "", nil
	}
	if len(tables) > 1 {
		return FormatForeign, fmt.Sprintf("database has %d tables (%s), expected only %q",
			len(tables), strings.Join(tables, ", "), tableName), nil
	}
	if tables[0] != tableName {
		return FormatForeign, fmt.Sprintf("database has one table named %q, expected %q", tables[0], tableName), nil
	}
	if appID != applicationID {
		return FormatForeign, fmt.Sprintf("database application id is %#x, expected %#x", appID, applicationID), nil
	}
	if version < 1 || version > schemaVersion {
		return FormatForeign, fmt.Sprintf("unsupported schema version %d", version), nil
	}

	reason, err := compareColumns(q)
	if err != nil {
		return FormatAbsent, "", err
	}
	if reason != "" {
		return FormatForeign, reason, nil
	}
	return FormatValid, "", nil
}

// listTables returns user tables, skipping SQLite's internal ones.
func listTables(q queryer) ([]string, error) {
	rows, err := q.Query(`SELECT name FROM sqlite_master
		WHERE type = 'table' AND name NOT LIKE 'sqlite_%' ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("cannot list tables: %w", err)
	}
	defer rows.Close()

	var tables []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("cannot scan table name: %w", err)
		}
		tables = append(tables, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("cannot list tables: %w", err)
	}
	return tables, nil
}

// compareColumns returns a non-empty reason when the cookie table columns
// differ from schemaColumns in name or declared type.
func compareColumns(q queryer) (string, error) {
	rows, err := q.Query("PRAGMA table_info(cookie)")
	if err != nil {
		return "", fmt.Errorf("cannot read cookie table layout: %w", err)
	}
	defer rows.Close()

	seen := make(map[string]string, len(schemaColumns))
	for rows.Next() {
		var (
			cid, notNull, pk int
			name, typ        string
			dflt             sql.NullString
		)
		if err := rows.Scan(&cid, &name, &typ, &notNull, &dflt, &pk); err != nil {
			return "", fmt.Errorf("cannot scan cookie table layout: %w", err)
		}
		seen[name] = typ
	}
	if err := rows.Err(); err != nil {
		return "", fmt.Errorf("cannot read cookie table layout: %w", err)
	}

	if len(seen) != len(schemaColumns) {
		return fmt.Sprintf("cookie table has %d columns, expected %d", len(seen), len(schemaColumns)), nil
	}
	for name, want := range schemaColumns {
		got, ok := seen[name]
		if !ok {
			return fmt.Sprintf("cookie table is missing column %q", name), nil
		}
		if !strings.EqualFold(got, want) {
			return fmt.Sprintf("cookie column %q has type %s, expected %s", name, got, want), nil
		}
	}
	return "", nil
}
