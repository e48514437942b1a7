package sqlitejar

import (
	"errors"
	"time"
)

// Reasons a record is kept out of the persisted set.
var (
	errSessionCookie = errors.New("session cookie")
	errExpiredCookie = errors.New("cookie already expired")
	errMissingName   = errors.New("cookie has no name")
	errMissingDomain = errors.New("cookie has no domain")
)

// row is the persisted form of a Record. Timestamps are Unix seconds and a
// zero creation or access time means "not known yet".
type row struct {
	id         int64
	domain     string
	name       string
	value      string
	path       string
	expiry     int64
	lastAccess int64
	created    int64
	secure     bool
	httpOnly   bool
}

func (r row) key() Key {
	return Key{Domain: r.domain, Path: r.path, Name: r.name}
}

// encode converts rec into a row, or reports why it must not be persisted.
// Only durable cookies that are still alive at now are encoded.
func encode(rec Record, now time.Time) (row, error) {
	if rec.Name == "" {
		return row{}, errMissingName
	}
	if rec.Domain == "" {
		return row{}, errMissingDomain
	}
	if rec.IsSession() {
		return row{}, errSessionCookie
	}
	expiry := rec.Expires.Unix()
	if isExpired(expiry, now) {
		return row{}, errExpiredCookie
	}
	return row{
		domain:     rec.Domain,
		name:       rec.Name,
		value:      rec.Value,
		path:       normalizePath(rec.Path),
		expiry:     expiry,
		lastAccess: unixOrZero(rec.LastAccess),
		created:    unixOrZero(rec.Created),
		secure:     rec.Secure,
		httpOnly:   rec.HttpOnly,
	}, nil
}

// decode converts r into a Record and reports whether it has expired at now.
func decode(r row, now time.Time) (Record, bool) {
	rec := Record{
		Name:     r.name,
		Value:    r.value,
		Domain:   r.domain,
		Path:     r.path,
		Secure:   r.secure,
		HttpOnly: r.httpOnly,
		Expires:  time.Unix(r.expiry, 0),
	}
	if r.created != 0 {
		rec.Created = time.Unix(r.created, 0)
	}
	if r.lastAccess != 0 {
		rec.LastAccess = time.Unix(r.lastAccess, 0)
	}
	return rec, isExpired(r.expiry, now)
}

// isExpired reports expiry <= now, with expiry in whole seconds. The same
// rule backs deleteExpiredSQL when it is bound to now.Unix().
func isExpired(expiry int64, now time.Time) bool {
	return !time.Unix(expiry, 0).After(now)
}

func normalizePath(p string) string {
	if p == "" {
		return "/"
	}
	return p
}

func unixOrZero(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.Unix()
}
