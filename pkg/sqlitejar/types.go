package sqlitejar

import "time"

// Record is a single cookie as exchanged between a Store and an in-memory
// jar. The triple (Domain, Path, Name) identifies a record within a store.
type Record struct {
	// Name is the cookie name. Required.
	Name string
	// Value is the cookie value. SENSITIVE, never logged.
	Value string
	// Domain is the cookie domain, with a leading dot for cookies that
	// include subdomains. Required.
	Domain string
	// Path is the cookie path scope. An empty path is stored as "/".
	Path string
	// Secure restricts the cookie to encrypted transport.
	Secure bool
	// HttpOnly hides the cookie from client-side scripts. Opaque to the store.
	HttpOnly bool
	// Expires is the absolute expiry. A zero value marks a session cookie.
	Expires time.Time
	// Session marks a cookie to be discarded when the client session ends,
	// regardless of Expires.
	Session bool
	// Created is when the cookie was first stored. Filled in by Load; on
	// Save a zero value keeps the previously stored creation time.
	Created time.Time
	// LastAccess is the last time the cookie was stored or used. Same rules
	// as Created.
	LastAccess time.Time
}

// Key is the identity of a record within a store.
type Key struct {
	Domain string
	Path   string
	Name   string
}

// Key returns the identity of r, with an empty path normalised to "/".
func (r Record) Key() Key {
	return Key{Domain: r.Domain, Path: normalizePath(r.Path), Name: r.Name}
}

// IsSession reports whether r would be discarded at the end of a session.
func (r Record) IsSession() bool {
	return r.Session || r.Expires.IsZero()
}

// Equal reports whether r and o describe the same cookie. The bookkeeping
// timestamps Created and LastAccess are ignored.
func (r Record) Equal(o Record) bool {
	return r.Key() == o.Key() &&
		r.Value == o.Value &&
		r.Secure == o.Secure &&
		r.HttpOnly == o.HttpOnly &&
		r.IsSession() == o.IsSession() &&
		r.Expires.Equal(o.Expires)
}

// Format is the classification of a candidate store path.
type Format int

const (
	// FormatAbsent means nothing exists at the path yet. The file is created
	// on the first Save.
	FormatAbsent Format = iota
	// FormatEmpty means the file exists but holds no tables, e.g. a freshly
	// created or zero-length file.
	FormatEmpty
	// FormatValid means the file matches the cookie store fingerprint.
	FormatValid
	// FormatForeign means the file exists but is not a cookie store.
	FormatForeign
)

func (f Format) String() string {
	switch f {
	case FormatAbsent:
		return "absent"
	case FormatEmpty:
		return "empty"
	case FormatValid:
		return "valid"
	case FormatForeign:
		return "foreign"
	default:
		return "unknown"
	}
}
