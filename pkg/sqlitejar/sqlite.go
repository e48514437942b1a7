package sqlitejar

import (
	"database/sql"
	"net/url"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"
)

const driverName = "sqlite"

// queryer is the read side shared by *sql.DB and *sql.Tx.
type queryer interface {
	Query(query string, args ...any) (*sql.Rows, error)
	QueryRow(query string, args ...any) *sql.Row
}

// fileURI returns path as a SQLite file: URI. Characters such as '?' and
// '#' are percent-encoded so they stay part of the file name.
func fileURI(path string, readOnly bool) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	p := filepath.ToSlash(abs)
	if !strings.HasPrefix(p, "/") {
		// Windows drive paths need a leading slash after file://.
		p = "/" + p
	}
	u := url.URL{Scheme: "file", Path: p}
	if readOnly {
		u.RawQuery = "mode=ro"
	}
	return u.String(), nil
}

func openDB(path string, readOnly bool) (*sql.DB, error) {
	dsn, err := fileURI(path, readOnly)
	if err != nil {
		return nil, err
	}
	return sql.Open(driverName, dsn)
}
