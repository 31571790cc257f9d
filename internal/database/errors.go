package database

import (
	"errors"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// Sentinel errors returned by Store methods. Anything else coming out of
// the store is a wrapped storage error.
var (
	// ErrNotFound indicates that the requested account or record does not exist.
	ErrNotFound = errors.New("not found")

	// ErrDuplicateRecord indicates that a record with identical text already
	// exists. Callers may report this differently from other failures.
	ErrDuplicateRecord = errors.New("record already exists")
)

// isUniqueViolation reports whether err is the sqlite unique-constraint
// error, which the schema reserves for duplicate record text.
func isUniqueViolation(err error) bool {
	var se *sqlite.Error
	if !errors.As(err, &se) {
		return false
	}
	return se.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE
}
