package sqlitejar

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestClassify_Absent(t *testing.T) {
	format, err := Classify(filepath.Join(t.TempDir(), "missing.sqlite"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if format != FormatAbsent {
		t.Errorf("expected FormatAbsent, got %s", format)
	}
}

func TestClassify_ZeroLengthFile(t *testing.T) {
	path := tempStorePath(t)
	if err := os.WriteFile(path, nil, 0644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}
	format, err := Classify(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if format != FormatEmpty {
		t.Errorf("expected FormatEmpty, got %s", format)
	}
}

func TestClassify_SQLiteWithoutTables(t *testing.T) {
	path := tempStorePath(t)
	execSQL(t, path, "CREATE TABLE scratch (a INTEGER)", "DROP TABLE scratch")

	format, err := Classify(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if format != FormatEmpty {
		t.Errorf("expected FormatEmpty, got %s", format)
	}
}

func TestClassify_ValidStore(t *testing.T) {
	path := tempStorePath(t)
	execSQL(t, path,
		createTableSQL,
		fmt.Sprintf("PRAGMA application_id = %d", applicationID),
		fmt.Sprintf("PRAGMA user_version = %d", schemaVersion),
	)

	format, err := Classify(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if format != FormatValid {
		t.Errorf("expected FormatValid, got %s", format)
	}
}

func TestClassify_Foreign(t *testing.T) {
	tests := []struct {
		name  string
		stmts []string
	}{
		{
			name: "firefox moz_cookies",
			stmts: []string{`CREATE TABLE moz_cookies (
				id INTEGER PRIMARY KEY, name TEXT, value TEXT, host TEXT,
				path TEXT, expiry INTEGER, isSecure INTEGER, isHttpOnly INTEGER)`},
		},
		{
			name: "cookie table with other columns",
			stmts: []string{
				`CREATE TABLE cookie (id INTEGER PRIMARY KEY, domain TEXT, name TEXT, value TEXT)`,
				fmt.Sprintf("PRAGMA application_id = %d", applicationID),
				"PRAGMA user_version = 1",
			},
		},
		{
			name: "cookie column with wrong type",
			stmts: []string{
				`CREATE TABLE cookie (id INTEGER NOT NULL PRIMARY KEY, domain TEXT NOT NULL,
					name TEXT NOT NULL, value TEXT NOT NULL, path TEXT NOT NULL, expiry TEXT NOT NULL,
					last_access INTEGER NOT NULL, creation_time INTEGER NOT NULL,
					secure INTEGER NOT NULL, http_only INTEGER NOT NULL)`,
				fmt.Sprintf("PRAGMA application_id = %d", applicationID),
				"PRAGMA user_version = 1",
			},
		},
		{
			name: "extra table",
			stmts: []string{
				createTableSQL,
				"CREATE TABLE other (a TEXT)",
				fmt.Sprintf("PRAGMA application_id = %d", applicationID),
				"PRAGMA user_version = 1",
			},
		},
		{
			name:  "matching table without application id",
			stmts: []string{createTableSQL, "PRAGMA user_version = 1"},
		},
		{
			name: "newer schema version",
			stmts: []string{
				createTableSQL,
				fmt.Sprintf("PRAGMA application_id = %d", applicationID),
				fmt.Sprintf("PRAGMA user_version = %d", schemaVersion+1),
			},
		},
		{
			name:  "empty database of another application",
			stmts: []string{"PRAGMA application_id = 42", "CREATE TABLE t (a)", "DROP TABLE t"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := tempStorePath(t)
			execSQL(t, path, tt.stmts...)

			format, err := Classify(path)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if format != FormatForeign {
				t.Errorf("expected FormatForeign, got %s", format)
			}
		})
	}
}

func TestClassify_TextFileIsForeign(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cookies.txt")
	if err := os.WriteFile(path, []byte("# Netscape HTTP Cookie File\n"), 0644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}
	format, err := Classify(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if format != FormatForeign {
		t.Errorf("expected FormatForeign, got %s", format)
	}
}

func TestClassify_ShortFileIsForeign(t *testing.T) {
	path := filepath.Join(t.TempDir(), "short")
	if err := os.WriteFile(path, []byte("SQLite"), 0644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}
	format, err := Classify(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if format != FormatForeign {
		t.Errorf("expected FormatForeign, got %s", format)
	}
}

func TestClassify_DirectoryIsForeign(t *testing.T) {
	format, err := Classify(t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if format != FormatForeign {
		t.Errorf("expected FormatForeign, got %s", format)
	}
}

func TestValidatePath_ForeignReturnsIncompatibleFormat(t *testing.T) {
	path := tempStorePath(t)
	execSQL(t, path, "CREATE TABLE sessions (token TEXT)")

	format, err := ValidatePath(path)
	if format != FormatForeign {
		t.Errorf("expected FormatForeign, got %s", format)
	}
	if !errors.Is(err, ErrIncompatibleFormat) {
		t.Fatalf("expected ErrIncompatibleFormat, got %v", err)
	}
	var se *StoreError
	if !errors.As(err, &se) || se.Op != "open" || se.Path != path {
		t.Errorf("expected StoreError for open %s, got %#v", path, err)
	}
}

func TestClassify_DoesNotModifyFile(t *testing.T) {
	path := tempStorePath(t)
	execSQL(t, path, "CREATE TABLE sessions (token TEXT)", "INSERT INTO sessions VALUES ('a')")
	before, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read file: %v", err)
	}

	if _, err := Classify(path); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	after, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read file: %v", err)
	}
	if !bytes.Equal(before, after) {
		t.Error("expected Classify to leave the file unchanged")
	}
}

func TestFormatString(t *testing.T) {
	cases := map[Format]string{
		FormatAbsent:  "absent",
		FormatEmpty:   "empty",
		FormatValid:   "valid",
		FormatForeign: "foreign",
		Format(99):    "unknown",
	}
	for f, want := range cases {
		if got := f.String(); got != want {
			t.Errorf("Format(%d).String() = %q, want %q", int(f), got, want)
		}
	}
}

func TestFingerprint_InsideTransaction(t *testing.T) {
	path := tempStorePath(t)
	execSQL(t, path, "PRAGMA application_id = 42", "CREATE TABLE notes (body TEXT)")

	db, err := openDB(path, false)
	if err != nil {
		t.Fatalf("openDB: %v", err)
	}
	defer db.Close()
	tx, err := db.Begin()
	if err != nil {
		t.Fatalf("Begin: %v", err)
	}
	defer tx.Rollback()

	format, reason, err := fingerprint(tx)
	if err != nil {
		t.Fatalf("fingerprint: %v", err)
	}
	if format != FormatForeign {
		t.Errorf("expected FormatForeign, got %s", format)
	}
	if reason == "" {
		t.Error("expected a reason for the foreign format")
	}
}

func TestFileURI_EscapesPath(t *testing.T) {
	uri, err := fileURI("/tmp/a?b#c.sqlite", true)
	if err != nil {
		t.Fatalf("fileURI: %v", err)
	}
	if want := "file:///tmp/a%3Fb%23c.sqlite?mode=ro"; uri != want {
		t.Errorf("expected %q, got %q", want, uri)
	}

	uri, err = fileURI("rel.sqlite", false)
	if err != nil {
		t.Fatalf("fileURI: %v", err)
	}
	if !strings.HasPrefix(uri, "file:///") || strings.Contains(uri, "?") {
		t.Errorf("expected absolute read-write URI, got %q", uri)
	}
}

func TestClassify_PathWithURICharacters(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a?b#c.sqlite")
	execSQL(t, path, "CREATE TABLE notes (body TEXT)")

	format, err := Classify(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if format != FormatForeign {
		t.Errorf("expected FormatForeign, got %s", format)
	}
}
