package sqlite

import "strings"

// isBusy reports whether err is SQLite lock contention
func isBusy(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "SQLITE_BUSY") || strings.Contains(msg, "database is locked")
}
