package cmd

const envFile = "SQLITEJAR_FILE"

const description = `
sqlitejar manages a SQLite cookie store: a single-table database that
keeps the durable cookies of an HTTP cookie jar across restarts. Session
cookies are never stored and expired cookies are flushed on every load.
`

const (
	listDescription = `The list command loads the cookie store, flushing any
expired cookies, and prints the live cookies. Values are masked
unless --show-values is given.

Example:
        sqlitejar list --site example.com

`
	importDescription = `The import command merges a Netscape cookies.txt file
(the format written by curl and browser extensions) into the
cookie store. Session and expired cookies in the file are ignored.

Example:
        sqlitejar import ~/Downloads/cookies.txt

`
	exportDescription = `The export command writes the live cookies of the store
to a Netscape cookies.txt file.

Example:
        sqlitejar export cookies.txt

`
	flushDescription = `The flush command removes expired cookies from the store
and reports how many were removed.

Example:
        sqlitejar flush

`
	checkDescription = `The check command inspects a file and reports whether it
is absent, empty, a valid cookie store or a foreign file. It
exits with an error for foreign files and never modifies them.

Example:
        sqlitejar -f ./cookies.sqlite check

`
)
