package sqlitejar

import (
	"path/filepath"
	"sort"
	"testing"
	"time"
)

var baseTime = time.Unix(1_700_000_000, 0)

// testClock is a settable clock for driving expiry in tests.
type testClock struct {
	now time.Time
}

func (c *testClock) Now() time.Time {
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.now = c.now.Add(d)
}

func openTestStore(t *testing.T, path string, clock *testClock) *Store {
	t.Helper()
	s, err := Open(&Options{Path: path, Clock: clock.Now})
	if err != nil {
		t.Fatalf("Open(%s): %v", path, err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func durable(name, value, domain string, expires time.Time) Record {
	return Record{
		Name:    name,
		Value:   value,
		Domain:  domain,
		Path:    "/",
		Expires: expires,
	}
}

func sortRecords(records []Record) []Record {
	out := append([]Record(nil), records...)
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i].Key(), out[j].Key()
		if a.Domain != b.Domain {
			return a.Domain < b.Domain
		}
		if a.Path != b.Path {
			return a.Path < b.Path
		}
		return a.Name < b.Name
	})
	return out
}

func assertSameRecords(t *testing.T, want, got []Record) {
	t.Helper()
	want, got = sortRecords(want), sortRecords(got)
	if len(want) != len(got) {
		t.Fatalf("expected %d records, got %d: %+v", len(want), len(got), got)
	}
	for i := range want {
		if !want[i].Equal(got[i]) {
			t.Errorf("record %d: expected %+v, got %+v", i, want[i], got[i])
		}
	}
}

// rawRows dumps every column of the cookie table in id order.
func rawRows(t *testing.T, path string) [][]any {
	t.Helper()
	db, err := openDB(path, false)
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	defer db.Close()

	rows, err := db.Query(`SELECT id, domain, name, value, path, expiry, last_access, creation_time, secure, http_only
		FROM cookie ORDER BY id`)
	if err != nil {
		t.Fatalf("failed to query cookie table: %v", err)
	}
	defer rows.Close()

	var out [][]any
	for rows.Next() {
		var (
			id, expiry, lastAccess, created, secure, httpOnly int64
			domain, name, value, p                            string
		)
		if err := rows.Scan(&id, &domain, &name, &value, &p, &expiry, &lastAccess, &created, &secure, &httpOnly); err != nil {
			t.Fatalf("failed to scan row: %v", err)
		}
		out = append(out, []any{id, domain, name, value, p, expiry, lastAccess, created, secure, httpOnly})
	}
	if err := rows.Err(); err != nil {
		t.Fatalf("failed to iterate rows: %v", err)
	}
	return out
}

// execSQL runs statements against the SQLite file at path on a separate
// connection.
func execSQL(t *testing.T, path string, stmts ...string) {
	t.Helper()
	db, err := openDB(path, false)
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	defer db.Close()
	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			t.Fatalf("failed to exec %q: %v", stmt, err)
		}
	}
}

func tempStorePath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "cookies.sqlite")
}
