// Package sqlitejar persists HTTP cookies in a single-table SQLite database.
//
// A Store only owns the on-disk representation. Matching, domain and path
// rules live in a separate in-memory jar, which is paired with a Store through
// the narrow Jar interface and the Restore/Persist helpers.
//
// Only durable cookies are stored. Session cookies (no expiry, or marked to be
// discarded on exit) and cookies that are already expired are dropped on
// Save, and expired rows are flushed from the database on every Load. Asking
// a Store to keep either kind fails with ErrInvalidConfig.
//
// The database is self-identifying: it holds exactly one table named
// "cookie" with a fixed column layout, and its header carries an application
// id and a schema version. Classify uses that fingerprint to tell a store
// apart from an arbitrary SQLite file, and Open refuses foreign files with
// ErrIncompatibleFormat without touching them.
//
// Cookie values are never logged. Only names and domains may appear in logs.
package sqlitejar
