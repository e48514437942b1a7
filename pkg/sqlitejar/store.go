package sqlitejar

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/warpdl/sqlitejar/pkg/logger"
)

// DefaultFileName is the store file used when Options.Path is empty.
const DefaultFileName = "go-cookies.sqlite"

var userHomeDir = os.UserHomeDir

// DefaultPath returns DefaultFileName inside the current user's home
// directory.
func DefaultPath() (string, error) {
	home, err := userHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, DefaultFileName), nil
}

// Options configures a Store. The zero value opens the default path with a
// silent logger and the wall clock.
type Options struct {
	// Path is the SQLite file. Defaults to DefaultPath().
	Path string
	// Logger receives store diagnostics. Defaults to a NopLogger.
	Logger logger.Logger
	// Clock is read once per Load and Save. Defaults to time.Now.
	Clock func() time.Time
	// KeepSession asks to retain session cookies. Not supported: Open
	// fails with ErrInvalidConfig when it is set.
	KeepSession bool
	// KeepExpired asks to retain expired cookies. Not supported: Open
	// fails with ErrInvalidConfig when it is set.
	KeepExpired bool
}

func (o *Options) validate() error {
	if o.KeepSession {
		return fmt.Errorf("error: session cookies cannot be stored: %w", ErrInvalidConfig)
	}
	if o.KeepExpired {
		return fmt.Errorf("error: expired cookies are always evicted: %w", ErrInvalidConfig)
	}
	return nil
}

// Store is the SQLite persistence backend for a cookie jar. It is not safe
// for concurrent use; callers serialize access. Each Save is a single
// transaction, so readers on the same file never observe a partial save.
type Store struct {
	db    *sql.DB
	path  string
	log   logger.Logger
	clock func() time.Time

	// hasSchema is set once the cookie table has been seen on disk. While
	// it is false every operation looks at the file again.
	hasSchema bool
	closed    bool
}

// Open validates opts, classifies the store path and returns a Store ready
// for Load and Save. A foreign file fails with ErrIncompatibleFormat and is
// left untouched. An absent or empty file is accepted; the schema is created
// by the first Save.
func Open(opts *Options) (*Store, error) {
	if opts == nil {
		opts = &Options{}
	}
	if err := opts.validate(); err != nil {
		return nil, err
	}

	l := opts.Logger
	if l == nil {
		l = logger.NewNopLogger()
	}
	clock := opts.Clock
	if clock == nil {
		clock = time.Now
	}

	path := opts.Path
	if path == "" {
		var err error
		path, err = DefaultPath()
		if err != nil {
			return nil, storeErr("open", DefaultFileName, ErrInvalidConfig, err)
		}
		l.Warning("no cookie store path specified, using %s", path)
	}

	format, err := ValidatePath(path)
	if err != nil {
		l.Error("cannot open cookie store %s: %v", path, err)
		return nil, err
	}

	db, err := openDB(path, false)
	if err != nil {
		return nil, storeErr("open", path, ErrStorageRead, err)
	}
	db.SetMaxOpenConns(1)

	// An absent file stays absent until the first Save.
	if format != FormatAbsent {
		if err := db.Ping(); err != nil {
			db.Close()
			return nil, storeErr("open", path, ErrStorageRead, err)
		}
	}

	l.Info("opened cookie store %s (%s)", path, format)
	return &Store{
		db:        db,
		path:      path,
		log:       l,
		clock:     clock,
		hasSchema: format == FormatValid,
	}, nil
}

// Path returns the resolved store path.
func (s *Store) Path() string {
	return s.path
}

// Load returns every live cookie in the store, ordered by domain, path and
// name. Expired rows are deleted in the same transaction, so they are gone
// from the file once Load returns.
func (s *Store) Load() ([]Record, error) {
	if s.closed {
		return nil, storeErr("load", s.path, ErrClosed, nil)
	}
	if err := s.refreshSchema("load"); err != nil {
		return nil, err
	}
	if !s.hasSchema {
		return nil, nil
	}
	now := s.clock()

	tx, err := s.db.Begin()
	if err != nil {
		return nil, storeErr("load", s.path, ErrStorageRead, err)
	}
	defer tx.Rollback()

	rows, err := readRows(tx)
	if err != nil {
		return nil, storeErr("load", s.path, ErrStorageRead, err)
	}

	live := make([]Record, 0, len(rows))
	expired := 0
	for _, r := range rows {
		rec, gone := decode(r, now)
		if gone {
			expired++
			continue
		}
		live = append(live, rec)
	}

	if expired > 0 {
		if _, err := tx.Exec(deleteExpiredSQL, now.Unix()); err != nil {
			return nil, storeErr("load", s.path, ErrStorageRead, fmt.Errorf("flush expired cookies: %w", err))
		}
	}
	if err := tx.Commit(); err != nil {
		return nil, storeErr("load", s.path, ErrStorageRead, err)
	}

	if expired > 0 {
		s.log.Info("flushed %d expired cookies from %s", expired, s.path)
	}
	for _, rec := range live {
		s.log.Info("loaded cookie [domain: %s, name: %s]", rec.Domain, rec.Name)
	}
	return live, nil
}

// Save replaces the whole persisted set with the durable cookies in records.
// Session and expired cookies are dropped; for duplicate keys the last record
// wins. The replacement is one transaction: on failure the previous content
// is left as it was.
func (s *Store) Save(records []Record) error {
	if s.closed {
		return storeErr("save", s.path, ErrClosed, nil)
	}
	if err := s.refreshSchema("save"); err != nil {
		return err
	}
	now := s.clock()
	rows := s.encodeAll(records, now)

	if !s.hasSchema {
		if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
			return storeErr("save", s.path, ErrStorageWrite, err)
		}
	}

	tx, err := s.db.Begin()
	if err != nil {
		return storeErr("save", s.path, ErrStorageWrite, err)
	}
	defer tx.Rollback()

	if !s.hasSchema {
		// Checked again under the write transaction: a foreign database
		// may have replaced the file since refreshSchema.
		format, reason, err := fingerprint(tx)
		if err != nil {
			return storeErr("save", s.path, ErrStorageWrite, err)
		}
		switch format {
		case FormatForeign:
			return storeErr("save", s.path, ErrIncompatibleFormat, errors.New(reason))
		case FormatEmpty:
			if err := createSchema(tx); err != nil {
				return storeErr("save", s.path, ErrStorageWrite, err)
			}
		}
	}
	if err := replaceRows(tx, rows, now); err != nil {
		return storeErr("save", s.path, ErrStorageWrite, err)
	}
	if err := tx.Commit(); err != nil {
		return storeErr("save", s.path, ErrStorageWrite, err)
	}
	s.hasSchema = true

	for _, r := range rows {
		s.log.Info("saved cookie [domain: %s, name: %s]", r.domain, r.name)
	}
	return nil
}

// Count returns the number of rows on disk, expired ones included.
func (s *Store) Count() (int, error) {
	if s.closed {
		return 0, storeErr("count", s.path, ErrClosed, nil)
	}
	if err := s.refreshSchema("count"); err != nil {
		return 0, err
	}
	if !s.hasSchema {
		return 0, nil
	}
	var n int
	if err := s.db.QueryRow(countSQL).Scan(&n); err != nil {
		return 0, storeErr("count", s.path, ErrStorageRead, err)
	}
	return n, nil
}

// Close releases the database handle. Safe to call more than once.
func (s *Store) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	return s.db.Close()
}

// refreshSchema classifies the file again while no cookie table has been
// seen, so rows saved by another Store since Open are picked up. An absent
// file is not created.
func (s *Store) refreshSchema(op string) error {
	if s.hasSchema {
		return nil
	}
	format, reason, err := inspect(s.path)
	if err != nil {
		return storeErr(op, s.path, ErrStorageRead, err)
	}
	switch format {
	case FormatForeign:
		s.log.Error("cookie store %s is no longer compatible: %s", s.path, reason)
		return storeErr(op, s.path, ErrIncompatibleFormat, errors.New(reason))
	case FormatValid:
		s.hasSchema = true
	}
	return nil
}

// encodeAll filters records down to the persistable set, deduplicated by
// key and sorted by domain, path and name.
func (s *Store) encodeAll(records []Record, now time.Time) []row {
	byKey := make(map[Key]row, len(records))
	for _, rec := range records {
		r, err := encode(rec, now)
		if err != nil {
			if errors.Is(err, errMissingName) || errors.Is(err, errMissingDomain) {
				s.log.Warning("skipping cookie [domain: %s, name: %s]: %v", rec.Domain, rec.Name, err)
			}
			continue
		}
		byKey[r.key()] = r
	}

	rows := make([]row, 0, len(byKey))
	for _, r := range byKey {
		rows = append(rows, r)
	}
	sort.Slice(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if a.domain != b.domain {
			return a.domain < b.domain
		}
		if a.path != b.path {
			return a.path < b.path
		}
		return a.name < b.name
	})
	return rows
}

func readRows(tx *sql.Tx) ([]row, error) {
	rs, err := tx.Query(selectAllSQL)
	if err != nil {
		return nil, fmt.Errorf("query cookies: %w", err)
	}
	defer rs.Close()

	var rows []row
	for rs.Next() {
		var r row
		if err := rs.Scan(&r.id, &r.domain, &r.name, &r.value, &r.path,
			&r.expiry, &r.lastAccess, &r.created, &r.secure, &r.httpOnly); err != nil {
			return nil, fmt.Errorf("scan cookie row: %w", err)
		}
		rows = append(rows, r)
	}
	if err := rs.Err(); err != nil {
		return nil, fmt.Errorf("iterate cookie rows: %w", err)
	}
	return rows, nil
}

type stamps struct {
	created    int64
	lastAccess int64
}

// replaceRows swaps the table content for rows. Bookkeeping timestamps the
// caller did not supply are carried over from the row being replaced, or set
// to now for new cookies. Ids are dense from 1 in row order, so saving the
// same set twice writes identical rows.
func replaceRows(tx *sql.Tx, rows []row, now time.Time) error {
	previous, err := readStamps(tx)
	if err != nil {
		return err
	}
	if _, err := tx.Exec(deleteAllSQL); err != nil {
		return fmt.Errorf("clear cookies: %w", err)
	}

	stmt, err := tx.Prepare(insertSQL)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, r := range rows {
		prev, seen := previous[r.key()]
		if r.created == 0 {
			r.created = now.Unix()
			if seen {
				r.created = prev.created
			}
		}
		if r.lastAccess == 0 {
			r.lastAccess = now.Unix()
			if seen {
				r.lastAccess = prev.lastAccess
			}
		}
		if _, err := stmt.Exec(int64(i+1), r.domain, r.name, r.value, r.path,
			r.expiry, r.lastAccess, r.created, r.secure, r.httpOnly); err != nil {
			return fmt.Errorf("insert cookie [domain: %s, name: %s]: %w", r.domain, r.name, err)
		}
	}
	return nil
}

func readStamps(tx *sql.Tx) (map[Key]stamps, error) {
	rs, err := tx.Query(selectStampsSQL)
	if err != nil {
		return nil, fmt.Errorf("query cookie timestamps: %w", err)
	}
	defer rs.Close()

	out := make(map[Key]stamps)
	for rs.Next() {
		var (
			k  Key
			st stamps
		)
		if err := rs.Scan(&k.Domain, &k.Path, &k.Name, &st.created, &st.lastAccess); err != nil {
			return nil, fmt.Errorf("scan cookie timestamps: %w", err)
		}
		out[k] = st
	}
	if err := rs.Err(); err != nil {
		return nil, fmt.Errorf("iterate cookie timestamps: %w", err)
	}
	return out, nil
}
